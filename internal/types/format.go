package types

import (
	"io"

	"github.com/gabriel-vasile/mimetype"

	"github.com/simonhull/imagemeta/internal/binary"
)

// sniffLen is how much of the file header is handed to mimetype.
const sniffLen = 3072

// Format represents the detected image container format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatJPEG represents JPEG/JFIF files (EXIF in an APP1 segment).
	FormatJPEG
	// FormatTIFF represents TIFF files and TIFF-based camera raw files.
	FormatTIFF
	// FormatPNG represents PNG files (EXIF in an eXIf chunk).
	FormatPNG
	// FormatWebP represents WebP files (EXIF in a RIFF EXIF chunk).
	FormatWebP
	// FormatHEIC represents HEIC/HEIF files (EXIF in an Exif item).
	FormatHEIC
)

// String returns the display name of the format.
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "JPEG"
	case FormatTIFF:
		return "TIFF"
	case FormatPNG:
		return "PNG"
	case FormatWebP:
		return "WebP"
	case FormatHEIC:
		return "HEIC"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatJPEG:
		return []string{".jpg", ".jpeg", ".jpe"}
	case FormatTIFF:
		return []string{".tif", ".tiff", ".dng", ".nef", ".cr2", ".arw"}
	case FormatPNG:
		return []string{".png"}
	case FormatWebP:
		return []string{".webp"}
	case FormatHEIC:
		return []string{".heic", ".heif"}
	default:
		return nil
	}
}

// mimeFormats maps the MIME types reported by mimetype to formats.
var mimeFormats = map[string]Format{
	"image/jpeg": FormatJPEG,
	"image/tiff": FormatTIFF,
	"image/png":  FormatPNG,
	"image/webp": FormatWebP,
	"image/heic": FormatHEIC,
	"image/heif": FormatHEIC,
}

// DetectFormat determines the image container format by examining the
// file header.
//
// Detection sniffs the header with mimetype, walking up the MIME parent
// chain so formats derived from TIFF still resolve to FormatTIFF. Raw TIFF
// byte-order marks are checked directly as a fallback. Detection does not
// validate the container structure.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 4 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	n := min(size, sniffLen)
	header := make([]byte, n)
	if err := sr.ReadAt(header, 0, "file header"); err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	for m := mimetype.Detect(header); m != nil; m = m.Parent() {
		if format, ok := mimeFormats[m.String()]; ok {
			return format, nil
		}
	}

	// mimetype wants more than the byte-order mark for some TIFF variants
	switch string(header[:4]) {
	case "II*\x00", "MM\x00*":
		return FormatTIFF, nil
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unsupported file format",
	}
}
