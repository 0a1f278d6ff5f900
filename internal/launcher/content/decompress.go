package content

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz/lzma"
)

// decompress expands a downloaded body with the codec its source
// advertised.
func decompress(codec Compression, data []byte) ([]byte, error) {
	switch codec {
	case CompressionLZMA:
		reader, err := lzma.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return io.ReadAll(reader)
	case CompressionGzip:
		reader, err := pgzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = reader.Close()
		}()
		return io.ReadAll(reader)
	case CompressionNone:
		return data, nil
	default:
		return nil, fmt.Errorf("unknown compression codec %d", codec)
	}
}
