package imagemeta

import (
	"github.com/simonhull/imagemeta/internal/types"
)

// OutOfBoundsError is an alias to types.OutOfBoundsError.
// Re-exporting from internal/types to maintain public API.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exporting from internal/types to maintain public API.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is an alias to types.CorruptedFileError.
// Re-exporting from internal/types to maintain public API.
type CorruptedFileError = types.CorruptedFileError

// NoMetadataError is an alias to types.NoMetadataError.
// Re-exporting from internal/types to maintain public API.
type NoMetadataError = types.NoMetadataError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to maintain public API.
type Warning = types.Warning
