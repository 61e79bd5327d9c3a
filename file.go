package imagemeta

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/simonhull/imagemeta/internal/exif"
	"github.com/simonhull/imagemeta/internal/registry"
	"github.com/simonhull/imagemeta/internal/types"
)

// File is the metadata extracted from one image file.
//
// Fields maps each EXIF tag name to its coerced Value. A File holds no
// open handle; nothing needs closing.
type File = types.File

// Fields is an alias to types.Fields.
type Fields = types.Fields

// Open reads the EXIF metadata of the image at path.
//
// Supported containers: JPEG, TIFF (and TIFF-based raw), PNG, WebP, HEIC.
//
// Open detects the container, locates its EXIF payload, renders every
// field as display text and coerces that text into an integer, float or
// string Value. If a tag name occurs more than once the last occurrence
// wins. Any failure (the path cannot be read, the container is
// unsupported, there is no EXIF payload, or decoding fails) is returned as
// an error and no File is produced.
//
// Example:
//
//	file, err := imagemeta.Open("IMG_0001.jpg")
//	if err != nil {
//		return err
//	}
//	if v, ok := file.Fields.Get("Make"); ok {
//		fmt.Println(v)
//	}
func Open(path string, opts ...Option) (*File, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return open(path, options)
}

func open(path string, options *openOptions) (*File, error) {
	if options.makerNotes {
		exif.EnableMakerNotes()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if stat.IsDir() {
		return nil, &UnsupportedFormatError{Path: path, Reason: "is a directory"}
	}

	return openReader(f, stat.Size(), path, options)
}

// openReader extracts from an io.ReaderAt (internal, for testing)
func openReader(r io.ReaderAt, size int64, path string, options *openOptions) (*File, error) {
	format, err := DetectFormat(r, size, path)
	if err != nil {
		return nil, err
	}

	decoder := registry.Get(format)
	if decoder == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no decoder available for format %s", format),
		}
	}

	md, err := decoder.Decode(r, size, path, types.DecodeOptions{AllowPartial: options.partialDecode})
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	return &File{
		Path:     path,
		Format:   format,
		Size:     size,
		Fields:   types.NewFields(md.Fields),
		Warnings: md.Warnings,
	}, nil
}

// OpenContext is Open with a context check before any I/O starts.
//
// Decoding a single file is not interruptible; the context only prevents
// new work from starting.
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}
