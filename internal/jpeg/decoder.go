// Package jpeg registers the JPEG decoder. EXIF lives in the first APP1
// segment; goexif finds it on its own.
package jpeg

import (
	"io"

	"github.com/simonhull/imagemeta/internal/exif"
	"github.com/simonhull/imagemeta/internal/registry"
	"github.com/simonhull/imagemeta/internal/types"
)

type decoder struct{}

// Decode implements registry.Decoder.
func (decoder) Decode(r io.ReaderAt, size int64, path string, opts types.DecodeOptions) (*types.Metadata, error) {
	return exif.Decode(io.NewSectionReader(r, 0, size), path, types.FormatJPEG, opts)
}

func init() {
	registry.Register(types.FormatJPEG, decoder{})
}
