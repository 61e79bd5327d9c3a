// Package tiff registers the decoder for TIFF files and TIFF-based camera
// raw files, whose first IFD is the EXIF IFD0.
package tiff

import (
	"io"

	"github.com/simonhull/imagemeta/internal/binary"
	"github.com/simonhull/imagemeta/internal/exif"
	"github.com/simonhull/imagemeta/internal/registry"
	"github.com/simonhull/imagemeta/internal/types"
)

type decoder struct{}

// Decode implements registry.Decoder.
func (decoder) Decode(r io.ReaderAt, size int64, path string, opts types.DecodeOptions) (*types.Metadata, error) {
	sr := binary.NewSafeReader(r, size, path)
	header, err := sr.Bytes(0, 4, "TIFF header")
	if err != nil {
		return nil, err
	}
	switch string(header) {
	case "II*\x00", "MM\x00*":
	default:
		return nil, &types.CorruptedFileError{
			Path:   path,
			Reason: "missing TIFF byte-order header",
		}
	}

	return exif.Decode(io.NewSectionReader(r, 0, size), path, types.FormatTIFF, opts)
}

func init() {
	registry.Register(types.FormatTIFF, decoder{})
}
