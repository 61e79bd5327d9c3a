package binary

import "encoding/binary"

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// BigEndian uses big-endian byte order.
	// Used by: PNG chunk lengths, Motorola-order TIFF.
	BigEndian Endianness = iota

	// LittleEndian uses little-endian byte order.
	// Used by: RIFF (WebP) chunk sizes, Intel-order TIFF.
	LittleEndian
)

func (e Endianness) order() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ReadBE reads a numeric value of type T at the given offset using big-endian byte order.
//
// Example:
//
//	off, err := binary.ReadBE[uint32](sr, 0, "Exif item header offset")
func ReadBE[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, BigEndian)
}

// ReadEndian reads a numeric value of type T at the given offset with specified byte order.
func ReadEndian[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string, endian Endianness) (T, error) {
	var zero T

	buf := make([]byte, sizeOf[T]())
	if err := sr.ReadAt(buf, off, what); err != nil {
		return zero, err
	}

	bo := endian.order()
	var val T
	switch any(zero).(type) {
	case uint8:
		val = T(buf[0])
	case uint16:
		val = T(bo.Uint16(buf))
	case uint32:
		val = T(bo.Uint32(buf))
	case uint64:
		val = T(bo.Uint64(buf))
	}

	return val, nil
}

func sizeOf[T uint8 | uint16 | uint32 | uint64]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}
