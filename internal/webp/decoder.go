// Package webp registers the WebP decoder, which reads EXIF from the RIFF
// "EXIF" chunk of extended-format files.
package webp

import (
	"bytes"
	"fmt"
	"io"

	"github.com/simonhull/imagemeta/internal/binary"
	"github.com/simonhull/imagemeta/internal/exif"
	"github.com/simonhull/imagemeta/internal/registry"
	"github.com/simonhull/imagemeta/internal/types"
)

type decoder struct{}

// Decode implements registry.Decoder.
func (decoder) Decode(r io.ReaderAt, size int64, path string, opts types.DecodeOptions) (*types.Metadata, error) {
	payload, err := findExif(binary.NewSafeReader(r, size, path))
	if err != nil {
		return nil, err
	}
	// Some encoders prefix the payload with "Exif\x00\x00"; goexif accepts
	// both forms.
	return exif.Decode(bytes.NewReader(payload), path, types.FormatWebP, opts)
}

func findExif(sr *binary.SafeReader) ([]byte, error) {
	path := sr.Path()

	rd := binary.NewReader(sr, 0, binary.LittleEndian)
	cr := binary.NewChainReader(rd)
	riff := cr.String(4, "RIFF tag")
	riffSize := binary.ReadChained[uint32](cr, "RIFF size")
	form := cr.String(4, "RIFF form type")
	if err := cr.Error(); err != nil || riff != "RIFF" || form != "WEBP" {
		return nil, &types.CorruptedFileError{Path: path, Reason: "missing RIFF WEBP header"}
	}

	// A RIFF size shorter than the file bounds the walk; a longer one is
	// a truncated file and the chunk checks below catch it.
	end := min(sr.Size(), 8+int64(riffSize))

	for rd.Offset()+8 <= end {
		start := rd.Offset()

		cr := binary.NewChainReader(rd)
		fourCC := cr.String(4, "chunk FourCC")
		chunkSize := binary.ReadChained[uint32](cr, "chunk size")
		if err := cr.Error(); err != nil {
			return nil, &types.CorruptedFileError{Path: path, Reason: err.Error(), Offset: start}
		}

		if int64(chunkSize) > end-rd.Offset() {
			return nil, &types.CorruptedFileError{
				Path:   path,
				Reason: fmt.Sprintf("chunk %q size %d exceeds file", fourCC, chunkSize),
				Offset: start,
			}
		}

		if fourCC == "EXIF" {
			if chunkSize == 0 {
				return nil, &types.NoMetadataError{Path: path, Format: types.FormatWebP}
			}
			return sr.Bytes(rd.Offset(), int(chunkSize), "EXIF chunk")
		}

		// Chunks are padded to an even size.
		rd.Skip(int64(chunkSize) + int64(chunkSize%2))
	}

	return nil, &types.NoMetadataError{Path: path, Format: types.FormatWebP}
}

func init() {
	registry.Register(types.FormatWebP, decoder{})
}
