package imagemeta

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/imagemeta/internal/exif"
)

// Stats summarises an ExtractAll run.
type Stats struct {
	Total     int
	Extracted int
	Skipped   int
}

// ExtractAll extracts metadata from every path concurrently and calls emit
// once for each file that succeeds.
//
// Files are decoded by a pool of runtime.NumCPU() goroutines (see
// WithWorkers). Paths are independent: a file that fails for any reason is
// skipped, logged at debug level and never affects the others. emit runs
// on the worker goroutines, in completion order, so it must be safe for
// concurrent use.
//
// ctx is only consulted before each path starts; once started a file runs
// to completion. Paths not started because ctx ended count as skipped.
//
// Example:
//
//	rep := report.New(os.Stdout)
//	stats := imagemeta.ExtractAll(ctx, paths, func(f *imagemeta.File) {
//		rep.Report(f)
//	})
func ExtractAll(ctx context.Context, paths []string, emit func(*File), opts ...Option) Stats {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	// Register up front so no worker blocks on registration mid-batch.
	if options.makerNotes {
		exif.EnableMakerNotes()
	}

	var extracted atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(options.workers)

	for _, path := range paths {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			file, err := extractOne(path, options)
			if err != nil {
				options.logger.Debug("skipping file", "path", path, "error", err)
				return nil
			}

			emit(file)
			extracted.Add(1)
			return nil
		})
	}

	// Workers never return errors; a failed path is already dropped.
	_ = g.Wait()

	n := int(extracted.Load())
	return Stats{
		Total:     len(paths),
		Extracted: n,
		Skipped:   len(paths) - n,
	}
}

// extractOne runs Open for one path, turning a decoder panic into an
// error for that path only.
func extractOne(path string, options *openOptions) (file *File, err error) {
	defer func() {
		if r := recover(); r != nil {
			file, err = nil, fmt.Errorf("%s: decoder panic: %v", path, r)
		}
	}()
	return open(path, options)
}
