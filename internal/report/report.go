// Package report writes extraction results as newline-delimited JSON.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/simonhull/imagemeta/internal/types"
)

// Reporter serialises each File's fields as one JSON object per line.
//
// Reporter is safe for concurrent use. Every line reaches the underlying
// writer in a single Write call made under a lock, so lines from
// different goroutines never interleave.
type Reporter struct {
	w     io.Writer
	mu    sync.Mutex
	lines int
}

// New returns a Reporter writing to w.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Report writes f.Fields as a single JSON line. A nil File writes nothing.
func (r *Reporter) Report(f *types.File) error {
	if f == nil {
		return nil
	}

	line, err := Encode(f.Fields)
	if err != nil {
		return fmt.Errorf("%s: encode fields: %w", f.Path, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.w.Write(line); err != nil {
		return fmt.Errorf("%s: write line: %w", f.Path, err)
	}
	r.lines++
	return nil
}

// Lines returns how many lines have been written.
func (r *Reporter) Lines() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lines
}

// Encode returns fields as a newline-terminated JSON object. Keys are
// sorted; text is not HTML-escaped. A nil map encodes as "{}".
func Encode(fields types.Fields) ([]byte, error) {
	if fields == nil {
		fields = types.Fields{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fields); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
