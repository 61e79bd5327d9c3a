package jpeg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/simonhull/imagemeta/internal/fixture"
	"github.com/simonhull/imagemeta/internal/registry"
	"github.com/simonhull/imagemeta/internal/types"
)

func TestDecode_APP1(t *testing.T) {
	data := fixture.JPEG(fixture.CanonTIFF())

	md, err := decoder{}.Decode(bytes.NewReader(data), int64(len(data)), "canon.jpg", types.DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(md.Fields) != 2 {
		t.Errorf("got %d fields, want 2: %v", len(md.Fields), md.Fields)
	}
}

func TestDecode_NoAPP1(t *testing.T) {
	data := fixture.PlainJPEG()

	_, err := decoder{}.Decode(bytes.NewReader(data), int64(len(data)), "plain.jpg", types.DecodeOptions{})

	var noMeta *types.NoMetadataError
	if !errors.As(err, &noMeta) {
		t.Fatalf("expected NoMetadataError, got %v", err)
	}
}

func TestRegistered(t *testing.T) {
	if registry.Get(types.FormatJPEG) == nil {
		t.Fatal("JPEG decoder not registered")
	}
}
