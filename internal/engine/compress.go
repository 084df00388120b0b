package engine

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// acceptEncoding is advertised on every fetch.
const acceptEncoding = "gzip, deflate, zstd"

var gzipMagic = []byte{0x1f, 0x8b}

// decompress undoes a gzip, deflate or zstd Content-Encoding. Other
// encodings pass through, as do gzip bodies the HTTP client already
// inflated. A positive limit caps the inflated size.
func decompress(body []byte, encoding string, limit int64) ([]byte, error) {
	var (
		reader io.Reader
		closer func()
	)
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "zstd":
		dec, err := zstd.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		reader, closer = dec, dec.Close
	case "gzip":
		if !bytes.HasPrefix(body, gzipMagic) {
			return body, nil
		}
		zr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		reader, closer = zr, func() { _ = zr.Close() }
	case "deflate":
		zr, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("deflate: %w", err)
		}
		reader, closer = zr, func() { _ = zr.Close() }
	default:
		return body, nil
	}
	defer closer()

	if limit > 0 {
		reader = io.LimitReader(reader, limit+1)
	}
	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to inflate %s body: %w", encoding, err)
	}
	if limit > 0 && int64(len(out)) > limit {
		return nil, fmt.Errorf("%w: inflated past %d bytes", ErrBodyTooLarge, limit)
	}
	return out, nil
}
