// Package fixture assembles minimal image files carrying EXIF payloads for
// tests. Nothing outside _test.go files should import it.
package fixture

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"unicode/utf16"
)

// TIFF field types.
const (
	TypeByte      uint16 = 1
	TypeASCII     uint16 = 2
	TypeShort     uint16 = 3
	TypeLong      uint16 = 4
	TypeRational  uint16 = 5
	TypeUndefined uint16 = 7
	TypeSRational uint16 = 10
)

// Tag IDs used by the tests.
const (
	TagMake             uint16 = 0x010F
	TagModel            uint16 = 0x0110
	TagOrientation      uint16 = 0x0112
	TagXResolution      uint16 = 0x011A
	TagDateTime         uint16 = 0x0132
	TagExifIFDPointer   uint16 = 0x8769
	TagGPSIFDPointer    uint16 = 0x8825
	TagExposureTime     uint16 = 0x829A
	TagFNumber          uint16 = 0x829D
	TagISOSpeedRatings  uint16 = 0x8827
	TagExifVersion      uint16 = 0x9000
	TagDateTimeOriginal uint16 = 0x9003
	TagFlash            uint16 = 0x9209
	TagFocalLength      uint16 = 0x920A
	TagUserComment      uint16 = 0x9286
)

// Entry is one IFD entry. Data holds the value bytes in little-endian
// order.
type Entry struct {
	Data  []byte
	Count uint32
	Tag   uint16
	Type  uint16
}

// ASCII returns a NUL-terminated ASCII entry.
func ASCII(tag uint16, s string) Entry {
	data := append([]byte(s), 0)
	return Entry{Tag: tag, Type: TypeASCII, Count: uint32(len(data)), Data: data}
}

// Short returns a SHORT entry.
func Short(tag uint16, vals ...uint16) Entry {
	data := make([]byte, 0, 2*len(vals))
	for _, v := range vals {
		data = binary.LittleEndian.AppendUint16(data, v)
	}
	return Entry{Tag: tag, Type: TypeShort, Count: uint32(len(vals)), Data: data}
}

// Long returns a LONG entry.
func Long(tag uint16, vals ...uint32) Entry {
	data := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		data = binary.LittleEndian.AppendUint32(data, v)
	}
	return Entry{Tag: tag, Type: TypeLong, Count: uint32(len(vals)), Data: data}
}

// Rational returns a RATIONAL entry from numerator/denominator pairs.
func Rational(tag uint16, pairs ...uint32) Entry {
	if len(pairs)%2 != 0 {
		panic("fixture: rational needs numerator/denominator pairs")
	}
	e := Long(tag, pairs...)
	e.Type = TypeRational
	e.Count = uint32(len(pairs) / 2)
	return e
}

// Undefined returns an UNDEFINED entry.
func Undefined(tag uint16, b []byte) Entry {
	return Entry{Tag: tag, Type: TypeUndefined, Count: uint32(len(b)), Data: b}
}

// TIFF assembles a little-endian TIFF stream with ifd0 as the first IFD
// and, when exif is non-empty, an Exif sub-IFD linked from ifd0.
func TIFF(ifd0, exif []Entry) []byte {
	ifd0 = slices.Clone(ifd0)
	const headerSize = 8

	if len(exif) > 0 {
		// Placeholder; the offset is known once IFD0 is sized.
		ifd0 = append(ifd0, Long(TagExifIFDPointer, 0))
	}
	sortEntries(ifd0)
	sortEntries(exif)

	exifOffset := headerSize + ifdSize(ifd0)
	if len(exif) > 0 {
		for i := range ifd0 {
			if ifd0[i].Tag == TagExifIFDPointer {
				ifd0[i] = Long(TagExifIFDPointer, exifOffset)
			}
		}
	}

	buf := &bytes.Buffer{}
	buf.WriteString("II")
	binary.Write(buf, binary.LittleEndian, uint16(42))
	binary.Write(buf, binary.LittleEndian, uint32(headerSize))
	writeIFD(buf, ifd0, headerSize)
	if len(exif) > 0 {
		writeIFD(buf, exif, exifOffset)
	}
	return buf.Bytes()
}

func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int { return int(a.Tag) - int(b.Tag) })
}

func padded(n int) uint32 {
	return uint32(n + n%2)
}

func ifdSize(entries []Entry) uint32 {
	size := uint32(2 + 12*len(entries) + 4)
	for _, e := range entries {
		if len(e.Data) > 4 {
			size += padded(len(e.Data))
		}
	}
	return size
}

// writeIFD writes entries as an IFD starting at offset, followed by the
// out-of-line value area. The next-IFD link is always zero.
func writeIFD(buf *bytes.Buffer, entries []Entry, offset uint32) {
	dataOffset := offset + uint32(2+12*len(entries)+4)
	var area []byte

	binary.Write(buf, binary.LittleEndian, uint16(len(entries)))
	for _, e := range entries {
		binary.Write(buf, binary.LittleEndian, e.Tag)
		binary.Write(buf, binary.LittleEndian, e.Type)
		binary.Write(buf, binary.LittleEndian, e.Count)
		if len(e.Data) <= 4 {
			val := make([]byte, 4)
			copy(val, e.Data)
			buf.Write(val)
			continue
		}
		binary.Write(buf, binary.LittleEndian, dataOffset+uint32(len(area)))
		area = append(area, e.Data...)
		if len(e.Data)%2 != 0 {
			area = append(area, 0)
		}
	}
	binary.Write(buf, binary.LittleEndian, uint32(0))
	buf.Write(area)
}

// CanonTIFF returns a TIFF payload with Make "Canon" and ISOSpeedRatings
// 400.
func CanonTIFF() []byte {
	return TIFF(
		[]Entry{ASCII(TagMake, "Canon")},
		[]Entry{Short(TagISOSpeedRatings, 400)},
	)
}

// BrokenGPSTIFF returns a TIFF payload with Make "Canon" whose GPS IFD
// pointer lies past the end of the stream.
func BrokenGPSTIFF() []byte {
	return TIFF(
		[]Entry{
			ASCII(TagMake, "Canon"),
			Long(TagGPSIFDPointer, 0xFFFF),
		},
		nil,
	)
}

// UnicodeComment returns a UserComment value in the UNICODE character code,
// with the text encoded as UTF-16 in the given byte order.
func UnicodeComment(s string, order binary.AppendByteOrder) []byte {
	b := []byte("UNICODE\x00")
	for _, u := range utf16.Encode([]rune(s)) {
		b = order.AppendUint16(b, u)
	}
	return b
}

// JPEG wraps a TIFF payload in an APP1 Exif segment.
func JPEG(tiff []byte) []byte {
	buf := &bytes.Buffer{}
	buf.Write([]byte{0xFF, 0xD8})
	buf.Write([]byte{0xFF, 0xE1})
	binary.Write(buf, binary.BigEndian, uint16(2+6+len(tiff)))
	buf.WriteString("Exif\x00\x00")
	buf.Write(tiff)
	buf.Write([]byte{0xFF, 0xD9})
	return buf.Bytes()
}

// PlainJPEG returns a JPEG with a quantisation table segment and no APP1.
func PlainJPEG() []byte {
	return []byte{
		0xFF, 0xD8,
		0xFF, 0xDB, 0x00, 0x04, 0x00, 0x01,
		0xFF, 0xD9,
	}
}

// PNG returns a 1x1 PNG. A non-nil exif payload is stored in an eXIf chunk
// placed after IHDR.
func PNG(exif []byte) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("\x89PNG\r\n\x1a\n")

	ihdr := &bytes.Buffer{}
	binary.Write(ihdr, binary.BigEndian, uint32(1)) // width
	binary.Write(ihdr, binary.BigEndian, uint32(1)) // height
	ihdr.Write([]byte{8, 2, 0, 0, 0})
	writePNGChunk(buf, "IHDR", ihdr.Bytes())

	if exif != nil {
		writePNGChunk(buf, "eXIf", exif)
	}
	writePNGChunk(buf, "IDAT", []byte{0x78, 0x9C, 0x63, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01})
	writePNGChunk(buf, "IEND", nil)
	return buf.Bytes()
}

func writePNGChunk(buf *bytes.Buffer, typ string, data []byte) {
	binary.Write(buf, binary.BigEndian, uint32(len(data)))
	buf.WriteString(typ)
	buf.Write(data)
	binary.Write(buf, binary.BigEndian, crc32.ChecksumIEEE(append([]byte(typ), data...)))
}

// WebP returns an extended-format WebP. A non-nil exif payload is stored in
// an EXIF chunk; withPrefix prepends the "Exif\0\0" header some encoders
// write.
func WebP(exif []byte, withPrefix bool) []byte {
	body := &bytes.Buffer{}
	body.WriteString("WEBP")

	vp8x := make([]byte, 10)
	if exif != nil {
		vp8x[0] = 0x08 // EXIF flag
	}
	writeRIFFChunk(body, "VP8X", vp8x)

	if exif != nil {
		payload := exif
		if withPrefix {
			payload = append([]byte("Exif\x00\x00"), exif...)
		}
		writeRIFFChunk(body, "EXIF", payload)
	}

	buf := &bytes.Buffer{}
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(body.Len()))
	buf.Write(body.Bytes())
	return buf.Bytes()
}

func writeRIFFChunk(buf *bytes.Buffer, fourCC string, data []byte) {
	buf.WriteString(fourCC)
	binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)
	if len(data)%2 != 0 {
		buf.WriteByte(0)
	}
}

// HEIC returns a minimal HEIF file: ftyp, a meta box listing an image
// item and, when exif is non-nil, an Exif item stored in mdat. The Exif item
// carries the 4-byte TIFF header offset and the "Exif\0\0" marker.
func HEIC(exif []byte) []byte {
	ftyp := &bytes.Buffer{}
	ftyp.WriteString("heic")
	binary.Write(ftyp, binary.BigEndian, uint32(0))
	ftyp.WriteString("mif1heic")

	var item []byte
	if exif != nil {
		item = binary.BigEndian.AppendUint32(nil, 6)
		item = append(item, "Exif\x00\x00"...)
		item = append(item, exif...)
	}

	ftypBox := box("ftyp", ftyp.Bytes())
	// The meta box size does not depend on the extent offset, so size it
	// once with a placeholder.
	metaLen := len(heifMeta(item, 0))
	dataOffset := uint32(len(ftypBox) + metaLen + 8)

	buf := &bytes.Buffer{}
	buf.Write(ftypBox)
	buf.Write(heifMeta(item, dataOffset))
	buf.Write(box("mdat", item))
	return buf.Bytes()
}

func heifMeta(item []byte, offset uint32) []byte {
	iinf := &bytes.Buffer{}
	iinf.Write([]byte{0, 0, 0, 0}) // version 0, flags
	count := uint16(1)
	if item != nil {
		count = 2
	}
	binary.Write(iinf, binary.BigEndian, count)
	iinf.Write(infe(1, "hvc1"))
	if item != nil {
		iinf.Write(infe(2, "Exif"))
	}

	iloc := &bytes.Buffer{}
	iloc.Write([]byte{0, 0, 0, 0}) // version 0, flags
	iloc.Write([]byte{0x44, 0x00}) // offset_size 4, length_size 4, base_offset_size 0
	if item == nil {
		binary.Write(iloc, binary.BigEndian, uint16(0))
	} else {
		binary.Write(iloc, binary.BigEndian, uint16(1))
		binary.Write(iloc, binary.BigEndian, uint16(2)) // item ID
		binary.Write(iloc, binary.BigEndian, uint16(0)) // data reference index
		binary.Write(iloc, binary.BigEndian, uint16(1)) // extent count
		binary.Write(iloc, binary.BigEndian, offset)
		binary.Write(iloc, binary.BigEndian, uint32(len(item)))
	}

	meta := &bytes.Buffer{}
	meta.Write([]byte{0, 0, 0, 0}) // version 0, flags
	meta.Write(box("iinf", iinf.Bytes()))
	meta.Write(box("iloc", iloc.Bytes()))
	return box("meta", meta.Bytes())
}

// infe returns a version 2 item info entry with an empty name.
func infe(id uint16, itemType string) []byte {
	b := []byte{2, 0, 0, 0}
	b = binary.BigEndian.AppendUint16(b, id)
	b = binary.BigEndian.AppendUint16(b, 0) // protection index
	b = append(b, itemType...)
	b = append(b, 0)
	return box("infe", b)
}

func box(typ string, body []byte) []byte {
	b := binary.BigEndian.AppendUint32(nil, uint32(8+len(body)))
	b = append(b, typ...)
	return append(b, body...)
}

// WriteFile writes data to name inside dir and returns the full path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
