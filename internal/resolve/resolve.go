// Package resolve expands a path glob into the list of files to process.
package resolve

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"
)

// PatternError is returned when the glob pattern itself is malformed.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid path pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Paths returns every regular file matching pattern, each path once.
//
// Patterns follow doublestar syntax: "*", "?", "[...]", "{a,b}" and "**"
// for any number of directories. A pattern without meta characters
// matches itself if the file exists. No matches is not an error.
//
// I/O errors met while walking directories (permissions, vanished
// entries) are logged at info level and the matches found are still
// returned. Only a malformed pattern fails, with a *PatternError.
func Paths(pattern string, logger *slog.Logger) ([]string, error) {
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, &PatternError{Pattern: pattern, Err: doublestar.ErrBadPattern}
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			return nil, &PatternError{Pattern: pattern, Err: err}
		}

		// Walk again skipping unreadable entries to keep what can be reached.
		logger.Info("error while expanding pattern", "pattern", pattern, "error", err)
		matches, err = doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			if errors.Is(err, doublestar.ErrBadPattern) {
				return nil, &PatternError{Pattern: pattern, Err: err}
			}
			logger.Info("error while expanding pattern", "pattern", pattern, "error", err)
		}
	}

	return lo.Uniq(matches), nil
}
