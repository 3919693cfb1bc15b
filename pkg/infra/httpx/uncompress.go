package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// DecodeBody undoes the Content-Encoding chain of a response body. Encodings are
// removed in reverse order of application ("gzip, br" is brotli-decoded first).
// The boolean reports whether the body was rewritten.
func DecodeBody(contentEncoding string, body []byte) ([]byte, bool, error) {
	if strings.TrimSpace(contentEncoding) == "" {
		return body, false, nil
	}
	encodings := strings.Split(contentEncoding, ",")
	changed := false
	for i := len(encodings) - 1; i >= 0; i-- {
		enc := strings.TrimSpace(strings.ToLower(encodings[i]))
		out, decoded, err := decodeOne(enc, body)
		if err != nil {
			return nil, false, fmt.Errorf("decode %s: %w", enc, err)
		}
		if decoded {
			body = out
			changed = true
		}
	}
	return body, changed, nil
}

func decodeOne(enc string, body []byte) ([]byte, bool, error) {
	switch enc {
	case "", "identity":
		return body, false, nil
	case "br":
		out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
		return out, err == nil, err
	case "gzip", "x-gzip":
		gr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, false, err
		}
		return readAndClose(gr)
	case "zstd":
		dec, err := zstd.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, false, err
		}
		defer dec.Close()
		out, err := io.ReadAll(dec)
		return out, err == nil, err
	case "deflate":
		// RFC 9110 says zlib-wrapped, but some servers send raw DEFLATE.
		if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
			return readAndClose(zr)
		}
		return readAndClose(flate.NewReader(bytes.NewReader(body)))
	default:
		return nil, false, fmt.Errorf("unsupported content-encoding: %q", enc)
	}
}

func readAndClose(rc io.ReadCloser) ([]byte, bool, error) {
	out, err := io.ReadAll(rc)
	cerr := rc.Close()
	if err != nil {
		return nil, false, err
	}
	if cerr != nil {
		return nil, false, cerr
	}
	return out, true, nil
}
