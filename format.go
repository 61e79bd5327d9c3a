package imagemeta

import (
	"io"

	"github.com/simonhull/imagemeta/internal/types"

	// Container decoders register themselves with internal/registry.
	_ "github.com/simonhull/imagemeta/internal/heic"
	_ "github.com/simonhull/imagemeta/internal/jpeg"
	_ "github.com/simonhull/imagemeta/internal/png"
	_ "github.com/simonhull/imagemeta/internal/tiff"
	_ "github.com/simonhull/imagemeta/internal/webp"
)

// Format is an alias to types.Format.
// Re-exporting from internal/types to maintain public API.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatJPEG    = types.FormatJPEG
	FormatTIFF    = types.FormatTIFF
	FormatPNG     = types.FormatPNG
	FormatWebP    = types.FormatWebP
	FormatHEIC    = types.FormatHEIC
)

// DetectFormat is a wrapper around types.DetectFormat.
// Maintains the public API while delegating to internal implementation.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}
