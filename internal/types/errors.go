package types

import (
	"fmt"

	"github.com/simonhull/imagemeta/internal/binary"
)

// OutOfBoundsError is returned when attempting to read beyond file bounds.
type OutOfBoundsError = binary.OutOfBoundsError

// UnsupportedFormatError is returned when the file is not an image
// container with a registered decoder.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when the container structure is invalid.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// NoMetadataError is returned when a supported container holds no EXIF
// payload.
type NoMetadataError struct {
	Path   string
	Format Format
}

func (e *NoMetadataError) Error() string {
	return fmt.Sprintf("%s: no EXIF metadata in %s container", e.Path, e.Format)
}

// Warning represents a non-fatal issue encountered during decoding.
//
// Warnings are only produced when partial decoding is enabled; by default
// any decode problem fails the file.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "container", "exif", "makernote"

	// Warning message
	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
