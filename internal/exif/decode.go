// Package exif decodes EXIF payloads with goexif and renders every field
// as display text.
package exif

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/simonhull/imagemeta/internal/types"
)

// pointerFields are IFD offsets, not metadata.
var pointerFields = map[goexif.FieldName]bool{
	goexif.ExifIFDPointer:             true,
	goexif.GPSInfoIFDPointer:          true,
	goexif.InteroperabilityIFDPointer: true,
}

var typeNames = map[tiff.DataType]string{
	tiff.DTByte:      "BYTE",
	tiff.DTAscii:     "ASCII",
	tiff.DTShort:     "SHORT",
	tiff.DTLong:      "LONG",
	tiff.DTRational:  "RATIONAL",
	tiff.DTSByte:     "SBYTE",
	tiff.DTUndefined: "UNDEFINED",
	tiff.DTSShort:    "SSHORT",
	tiff.DTSLong:     "SLONG",
	tiff.DTSRational: "SRATIONAL",
	tiff.DTFloat:     "FLOAT",
	tiff.DTDouble:    "DOUBLE",
}

func typeName(dt tiff.DataType) string {
	if name, ok := typeNames[dt]; ok {
		return name
	}
	return fmt.Sprintf("TYPE(%d)", dt)
}

// parsersMu guards goexif's package-level parser list: Decode holds it
// for reading, registration for writing.
var (
	parsersMu      sync.RWMutex
	makerNotesOnce sync.Once
)

// EnableMakerNotes registers goexif's Canon and Nikon maker-note parsers.
//
// Safe to call at any time, including while other goroutines decode;
// registration waits for in-flight Decode calls to finish. Repeated calls
// are no-ops.
func EnableMakerNotes() {
	makerNotesOnce.Do(func() {
		parsersMu.Lock()
		defer parsersMu.Unlock()
		goexif.RegisterParsers(mknote.All...)
	})
}

// fieldCollector implements goexif.Walker.
type fieldCollector struct {
	order  binary.ByteOrder
	fields []types.RawField
}

func (c *fieldCollector) Walk(name goexif.FieldName, tag *tiff.Tag) error {
	if pointerFields[name] {
		return nil
	}
	c.fields = append(c.fields, types.RawField{
		Name: string(name),
		Text: Render(string(name), tag, c.order),
		Type: typeName(tag.Type),
		Tag:  tag.Id,
	})
	return nil
}

// Decode reads an EXIF stream and returns its rendered fields.
//
// r may be a whole JPEG file, a whole TIFF file, a bare TIFF structure or a
// payload starting with "Exif\x00\x00". A JPEG without an APP1 Exif segment
// yields a *types.NoMetadataError.
func Decode(r io.Reader, path string, format types.Format, opts types.DecodeOptions) (*types.Metadata, error) {
	parsersMu.RLock()
	x, err := goexif.Decode(r)
	parsersMu.RUnlock()

	var warnings []types.Warning
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &types.NoMetadataError{Path: path, Format: format}
		}
		if x == nil || !opts.AllowPartial || goexif.IsCriticalError(err) {
			return nil, fmt.Errorf("decode exif: %w", err)
		}
		warnings = append(warnings, types.Warning{
			Stage:   "exif",
			Message: err.Error(),
		})
	}

	loadUnknownTags(x)

	c := &fieldCollector{}
	if x.Tiff != nil {
		c.order = x.Tiff.Order
	}
	if err := x.Walk(c); err != nil {
		return nil, fmt.Errorf("walk exif fields: %w", err)
	}

	return &types.Metadata{Fields: c.fields, Warnings: warnings}, nil
}

// walkFunc adapts a function to goexif.Walker.
type walkFunc func(goexif.FieldName, *tiff.Tag) error

func (f walkFunc) Walk(name goexif.FieldName, tag *tiff.Tag) error { return f(name, tag) }

// loadUnknownTags adds the IFD0, Exif, GPS and Interoperability entries
// goexif has no name for, under goexif.UnknownPrefix plus the hex tag ID.
//
// goexif's name tables are unexported, so an entry counts as known when a
// named field already holds the same ID, type and value bytes.
func loadUnknownTags(x *goexif.Exif) {
	if x.Tiff == nil || len(x.Tiff.Dirs) == 0 {
		return
	}

	known := make(map[string]bool)
	_ = x.Walk(walkFunc(func(_ goexif.FieldName, tag *tiff.Tag) error {
		known[tagKey(tag)] = true
		return nil
	}))

	dirs := []*tiff.Dir{x.Tiff.Dirs[0]}
	for name := range pointerFields {
		if d := subDir(x, name); d != nil {
			dirs = append(dirs, d)
		}
	}

	for _, d := range dirs {
		var unknown []*tiff.Tag
		for _, tag := range d.Tags {
			if !known[tagKey(tag)] {
				unknown = append(unknown, tag)
			}
		}
		if len(unknown) > 0 {
			x.LoadTags(&tiff.Dir{Tags: unknown}, nil, true)
		}
	}
}

// subDir re-reads the sub-IFD the pointer field refers to, or returns nil.
// Errors were already reported by goexif's own pass.
func subDir(x *goexif.Exif, ptr goexif.FieldName) *tiff.Dir {
	tag, err := x.Get(ptr)
	if err != nil {
		return nil
	}
	off, err := tag.Int64(0)
	if err != nil || off <= 0 || off >= int64(len(x.Raw)) {
		return nil
	}

	r := bytes.NewReader(x.Raw)
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return nil
	}
	d, _, err := tiff.DecodeDir(r, x.Tiff.Order)
	if err != nil {
		return nil
	}
	return d
}

func tagKey(tag *tiff.Tag) string {
	return fmt.Sprintf("%04x/%d/%d/%x", tag.Id, tag.Type, tag.Count, tag.Val)
}
