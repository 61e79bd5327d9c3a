// Package heic registers the HEIC/HEIF decoder, which reads the EXIF item
// referenced from the file's meta box.
package heic

import (
	"bytes"
	"errors"
	"io"

	"go4.org/media/heif"

	"github.com/simonhull/imagemeta/internal/binary"
	"github.com/simonhull/imagemeta/internal/exif"
	"github.com/simonhull/imagemeta/internal/registry"
	"github.com/simonhull/imagemeta/internal/types"
)

type decoder struct{}

// Decode implements registry.Decoder.
func (decoder) Decode(r io.ReaderAt, size int64, path string, opts types.DecodeOptions) (*types.Metadata, error) {
	item, err := heif.Open(io.NewSectionReader(r, 0, size)).EXIF()
	if err != nil {
		if errors.Is(err, heif.ErrNoEXIF) {
			return nil, &types.NoMetadataError{Path: path, Format: types.FormatHEIC}
		}
		return nil, &types.CorruptedFileError{Path: path, Reason: err.Error()}
	}

	payload, err := tiffPayload(item, path)
	if err != nil {
		return nil, err
	}
	return exif.Decode(bytes.NewReader(payload), path, types.FormatHEIC, opts)
}

// tiffPayload strips the Exif item header: a big-endian uint32 giving the
// distance from its end to the TIFF header, usually 6 for "Exif\0\0".
// Items that already start at the TIFF header or the "Exif" marker are
// returned unchanged.
func tiffPayload(item []byte, path string) ([]byte, error) {
	if len(item) >= 4 {
		switch string(item[:4]) {
		case "II*\x00", "MM\x00*", "Exif":
			return item, nil
		}
	}

	sr := binary.NewSafeReader(bytes.NewReader(item), int64(len(item)), path)
	off, err := binary.ReadBE[uint32](sr, 0, "Exif item header offset")
	if err != nil {
		return nil, &types.CorruptedFileError{Path: path, Reason: "Exif item too short"}
	}

	start := 4 + int64(off)
	if start >= int64(len(item)) {
		return nil, &types.CorruptedFileError{
			Path:   path,
			Reason: "Exif item header offset exceeds item",
			Offset: start,
		}
	}
	return item[start:], nil
}

func init() {
	registry.Register(types.FormatHEIC, decoder{})
}
