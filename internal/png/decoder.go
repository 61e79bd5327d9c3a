// Package png registers the PNG decoder, which reads EXIF from the eXIf
// chunk defined by the PNG 1.5 extensions.
package png

import (
	"bytes"
	"fmt"
	"io"

	"github.com/simonhull/imagemeta/internal/binary"
	"github.com/simonhull/imagemeta/internal/exif"
	"github.com/simonhull/imagemeta/internal/registry"
	"github.com/simonhull/imagemeta/internal/types"
)

const signature = "\x89PNG\r\n\x1a\n"

type decoder struct{}

// Decode implements registry.Decoder.
func (decoder) Decode(r io.ReaderAt, size int64, path string, opts types.DecodeOptions) (*types.Metadata, error) {
	payload, err := findExif(binary.NewSafeReader(r, size, path))
	if err != nil {
		return nil, err
	}
	return exif.Decode(bytes.NewReader(payload), path, types.FormatPNG, opts)
}

// findExif walks the chunk list and returns the eXIf chunk data. Chunk
// CRCs are not verified.
func findExif(sr *binary.SafeReader) ([]byte, error) {
	path := sr.Path()

	sig, err := sr.Bytes(0, len(signature), "PNG signature")
	if err != nil || string(sig) != signature {
		return nil, &types.CorruptedFileError{Path: path, Reason: "missing PNG signature"}
	}

	rd := binary.NewReader(sr, int64(len(signature)), binary.BigEndian)
	for rd.Remaining() > 0 {
		start := rd.Offset()

		cr := binary.NewChainReader(rd)
		length := binary.ReadChained[uint32](cr, "PNG chunk length")
		typ := cr.String(4, "PNG chunk type")
		if err := cr.Error(); err != nil {
			return nil, &types.CorruptedFileError{Path: path, Reason: err.Error(), Offset: start}
		}

		// data + 4 byte CRC
		if int64(length)+4 > rd.Remaining() {
			return nil, &types.CorruptedFileError{
				Path:   path,
				Reason: fmt.Sprintf("chunk %q length %d exceeds file", typ, length),
				Offset: start,
			}
		}

		switch typ {
		case "eXIf":
			if length == 0 {
				return nil, &types.NoMetadataError{Path: path, Format: types.FormatPNG}
			}
			return sr.Bytes(rd.Offset(), int(length), "eXIf chunk")
		case "IEND":
			return nil, &types.NoMetadataError{Path: path, Format: types.FormatPNG}
		}

		rd.Skip(int64(length) + 4)
	}

	return nil, &types.NoMetadataError{Path: path, Format: types.FormatPNG}
}

func init() {
	registry.Register(types.FormatPNG, decoder{})
}
