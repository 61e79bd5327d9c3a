package imagemeta

import (
	"log/slog"
	"runtime"

	"github.com/simonhull/imagemeta/internal/logging"
)

// Option configures Open, OpenContext and ExtractAll.
//
// Options use the functional options pattern:
//
//	file, err := imagemeta.Open("IMG_0001.jpg",
//	    imagemeta.WithPartialDecode(),
//	)
type Option func(*openOptions)

// openOptions holds configuration for extraction.
type openOptions struct {
	logger        *slog.Logger
	workers       int  // ExtractAll pool size
	partialDecode bool // Keep fields decoded before a non-critical error
	makerNotes    bool // Decode Canon/Nikon maker notes
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		logger:  logging.Discard(),
		workers: runtime.NumCPU(),
	}
}

// WithPartialDecode keeps the fields read before a non-critical decode
// error, such as an unreadable GPS sub-IFD, and records the error in
// File.Warnings.
//
// By default any decode error fails the file.
func WithPartialDecode() Option {
	return func(o *openOptions) {
		o.partialDecode = true
	}
}

// WithMakerNotes enables decoding of Canon and Nikon maker notes into
// additional fields.
//
// Maker-note parsers are registered process-wide the first time an
// operation runs with this option; later calls without it still see them.
// Registration waits for decodes already in flight, so the option is safe
// to pass from concurrent Open calls.
func WithMakerNotes() Option {
	return func(o *openOptions) {
		o.makerNotes = true
	}
}

// WithWorkers sets how many files ExtractAll decodes at once.
// Values below 1 keep the default of runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *openOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithLogger sets the logger ExtractAll reports skipped files to, at debug
// level. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *openOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
