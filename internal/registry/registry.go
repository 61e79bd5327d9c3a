// Package registry maps image container formats to the decoders that pull
// EXIF fields out of them.
package registry

import (
	"io"
	"sync"

	"github.com/simonhull/imagemeta/internal/types"
)

// Decoder is the interface all container decoders implement.
type Decoder interface {
	// Decode locates the EXIF payload in the container and returns its
	// rendered fields.
	Decode(r io.ReaderAt, size int64, path string, opts types.DecodeOptions) (*types.Metadata, error)
}

var (
	mu       sync.RWMutex
	decoders = make(map[types.Format]Decoder)
)

// Register registers a decoder for a format, replacing any earlier one.
// This is called by container packages from their init functions.
func Register(format types.Format, d Decoder) {
	mu.Lock()
	defer mu.Unlock()
	decoders[format] = d
}

// Get returns the decoder for a given format.
// Returns nil if no decoder is registered for the format.
func Get(format types.Format) Decoder {
	mu.RLock()
	defer mu.RUnlock()
	return decoders[format]
}

// Formats returns every format with a registered decoder.
func Formats() []types.Format {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]types.Format, 0, len(decoders))
	for f := range decoders {
		out = append(out, f)
	}
	return out
}
