package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generationPayload = `{"results":[{"generated_text":"Risk score: 0.82\n"}]}`

func gzipCompress(data []byte) []byte {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write(data)
	_ = gz.Close()
	return buf.Bytes()
}

func brCompress(data []byte) []byte {
	var buf bytes.Buffer
	br := brotli.NewWriter(&buf)
	_, _ = br.Write(data)
	_ = br.Close()
	return buf.Bytes()
}

func zstdCompress(data []byte) []byte {
	var buf bytes.Buffer
	zw, _ := zstd.NewWriter(&buf)
	_, _ = zw.Write(data)
	_ = zw.Close()
	return buf.Bytes()
}

func zlibDeflateCompress(data []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, _ = zw.Write(data)
	_ = zw.Close()
	return buf.Bytes()
}

func rawDeflateCompress(data []byte) []byte {
	var buf bytes.Buffer
	dw, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	_, _ = dw.Write(data)
	_ = dw.Close()
	return buf.Bytes()
}

func TestDecodeBody_SingleEncodings(t *testing.T) {
	payload := []byte(generationPayload)

	tests := []struct {
		name     string
		encoding string
		body     []byte
	}{
		{name: "gzip", encoding: "gzip", body: gzipCompress(payload)},
		{name: "brotli", encoding: "br", body: brCompress(payload)},
		{name: "zstd", encoding: "zstd", body: zstdCompress(payload)},
		{name: "zlib deflate", encoding: "deflate", body: zlibDeflateCompress(payload)},
		{name: "raw deflate", encoding: "deflate", body: rawDeflateCompress(payload)},
		{name: "upper case header", encoding: "GZIP", body: gzipCompress(payload)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, changed, err := DecodeBody(tt.encoding, tt.body)
			require.NoError(t, err)
			assert.True(t, changed)
			assert.Equal(t, generationPayload, string(out))
		})
	}
}

func TestDecodeBody_Chain(t *testing.T) {
	payload := []byte(generationPayload)
	body := brCompress(gzipCompress(payload))

	out, changed, err := DecodeBody("gzip, br", body)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, generationPayload, string(out))
}

func TestDecodeBody_NoEncoding(t *testing.T) {
	payload := []byte(generationPayload)

	out, changed, err := DecodeBody("", payload)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, payload, out)

	out, changed, err = DecodeBody("identity", payload)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, payload, out)
}

func TestDecodeBody_Unsupported(t *testing.T) {
	_, _, err := DecodeBody("compress-xyz", []byte("data"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content-encoding")
}

func TestDecodeBody_CorruptGzip(t *testing.T) {
	_, _, err := DecodeBody("gzip", []byte("not gzip at all"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode gzip")
}
