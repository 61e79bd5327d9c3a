package heic

import (
	"bytes"
	"errors"
	"testing"

	"github.com/simonhull/imagemeta/internal/fixture"
	"github.com/simonhull/imagemeta/internal/registry"
	"github.com/simonhull/imagemeta/internal/types"
)

func decode(t *testing.T, data []byte) (*types.Metadata, error) {
	t.Helper()
	return decoder{}.Decode(bytes.NewReader(data), int64(len(data)), "test.heic", types.DecodeOptions{})
}

func TestDecode_ExifItem(t *testing.T) {
	md, err := decode(t, fixture.HEIC(fixture.CanonTIFF()))
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

func TestDecode_NoExifItem(t *testing.T) {
	_, err := decode(t, fixture.HEIC(nil))

	var noMeta *types.NoMetadataError
	if !errors.As(err, &noMeta) {
		t.Fatalf("expected NoMetadataError, got %v", err)
	}
	if noMeta.Format != types.FormatHEIC {
		t.Errorf("Format = %v, want HEIC", noMeta.Format)
	}
}

func TestDecode_NotHEIF(t *testing.T) {
	_, err := decode(t, []byte("\x00\x00\x00\x08moov"))

	var corrupted *types.CorruptedFileError
	if !errors.As(err, &corrupted) {
		t.Fatalf("expected CorruptedFileError, got %v", err)
	}
}

func TestTIFFPayload(t *testing.T) {
	tiff := fixture.CanonTIFF()

	tests := []struct {
		name    string
		item    []byte
		want    []byte
		wantErr bool
	}{
		{"offset to marker", append([]byte{0, 0, 0, 6, 'E', 'x', 'i', 'f', 0, 0}, tiff...), tiff, false},
		{"zero offset", append([]byte{0, 0, 0, 0}, tiff...), tiff, false},
		{"already tiff", tiff, tiff, false},
		{"already marker", append([]byte("Exif\x00\x00"), tiff...), append([]byte("Exif\x00\x00"), tiff...), false},
		{"offset past end", []byte{0, 0, 0, 0x40, 'I', 'I'}, nil, true},
		{"too short", []byte{0, 0}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tiffPayload(tt.item, "test.heic")
			if tt.wantErr {
				var corrupted *types.CorruptedFileError
				if !errors.As(err, &corrupted) {
					t.Fatalf("expected CorruptedFileError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("tiffPayload() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("tiffPayload() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegistered(t *testing.T) {
	if registry.Get(types.FormatHEIC) == nil {
		t.Fatal("no decoder registered for HEIC")
	}
}
