package imagemeta_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/simonhull/imagemeta"
	"github.com/simonhull/imagemeta/internal/fixture"
)

func BenchmarkOpen(b *testing.B) {
	path := fixture.WriteFile(b, b.TempDir(), "bench.jpg", fixture.JPEG(fixture.CanonTIFF()))

	b.ReportAllocs()
	for b.Loop() {
		if _, err := imagemeta.Open(path); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExtractAll(b *testing.B) {
	dir := b.TempDir()
	data := fixture.JPEG(fixture.CanonTIFF())

	paths := make([]string, 64)
	for i := range paths {
		paths[i] = fixture.WriteFile(b, dir, fmt.Sprintf("bench_%02d.jpg", i), data)
	}

	b.ReportAllocs()
	for b.Loop() {
		stats := imagemeta.ExtractAll(context.Background(), paths, func(*imagemeta.File) {})
		if stats.Extracted != len(paths) {
			b.Fatalf("extracted %d of %d", stats.Extracted, len(paths))
		}
	}
}
