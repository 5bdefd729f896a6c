package httpclient

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
)

// AcceptEncoding is advertised by the Executor. Setting it by hand turns off
// net/http's transparent gzip handling, so decodeBody covers both.
const AcceptEncoding = "br, gzip"

// decodeBody undoes a Content-Encoding of gzip or br. Unknown or empty
// encodings return the body unchanged. A positive limit caps the decoded
// size; exceeding it yields ErrBodyTooLarge.
func decodeBody(encoding string, body []byte, limit int64) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return body, nil
	case "gzip":
		zr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		defer zr.Close()

		out, err := readLimited(zr, limit)
		if err != nil {
			return nil, fmt.Errorf("reading gzip content: %w", err)
		}
		return out, nil
	case "br":
		out, err := readLimited(brotli.NewReader(bytes.NewReader(body)), limit)
		if err != nil {
			return nil, fmt.Errorf("reading brotli content: %w", err)
		}
		return out, nil
	default:
		return body, nil
	}
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > limit {
		return nil, ErrBodyTooLarge
	}
	return out, nil
}
