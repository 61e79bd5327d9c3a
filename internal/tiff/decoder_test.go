package tiff

import (
	"bytes"
	"errors"
	"testing"

	"github.com/simonhull/imagemeta/internal/fixture"
	"github.com/simonhull/imagemeta/internal/registry"
	"github.com/simonhull/imagemeta/internal/types"
)

func TestDecode_IFD0AndExifIFD(t *testing.T) {
	data := fixture.CanonTIFF()

	md, err := decoder{}.Decode(bytes.NewReader(data), int64(len(data)), "canon.tif", types.DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got := map[string]string{}
	for _, f := range md.Fields {
		got[f.Name] = f.Text
	}
	if got["Make"] != "Canon" || got["ISOSpeedRatings"] != "400" {
		t.Errorf("fields = %v", got)
	}
}

func TestDecode_BadHeader(t *testing.T) {
	data := []byte("IX*\x00\x08\x00\x00\x00")

	_, err := decoder{}.Decode(bytes.NewReader(data), int64(len(data)), "bad.tif", types.DecodeOptions{})

	var corrupted *types.CorruptedFileError
	if !errors.As(err, &corrupted) {
		t.Fatalf("expected CorruptedFileError, got %v", err)
	}
}

func TestRegistered(t *testing.T) {
	if registry.Get(types.FormatTIFF) == nil {
		t.Fatal("TIFF decoder not registered")
	}
}
