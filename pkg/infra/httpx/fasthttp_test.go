package httpx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastHTTPClient_Do_PostsBodyAndHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer T", r.Header.Get("Authorization"))
		assert.Equal(t, "2023-05-29", r.URL.Query().Get("version"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"input":"hi"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(generationPayload))
	}))
	defer server.Close()

	client := NewFastHTTPClient(WithTimeout(5*time.Second), WithUserAgent("fraudshield-test"))
	req, err := http.NewRequest(http.MethodPost, server.URL+"/ml/v1/text/generation?version=2023-05-29", strings.NewReader(`{"input":"hi"}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer T")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, generationPayload, string(body))
}

func TestFastHTTPClient_Do_DecodesGzip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(gzipCompress([]byte(generationPayload)))
	}))
	defer server.Close()

	client := NewFastHTTPClient()
	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, generationPayload, string(body))
	assert.Empty(t, resp.Header.Get("Content-Encoding"))
}

func TestFastHTTPClient_Do_NonOKStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errorCode":"BXNIM0415E"}`))
	}))
	defer server.Close()

	client := NewFastHTTPClient()
	req, err := http.NewRequest(http.MethodPost, server.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "BXNIM0415E")
}

func TestFastHTTPClient_Do_HonoursContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewFastHTTPClient(WithTimeout(10 * time.Second))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	start := time.Now()
	_, err = client.Do(req)

	assert.Error(t, err)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestFastHTTPClient_Do_CancelledContext(t *testing.T) {
	client := NewFastHTTPClient()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://127.0.0.1:1", nil)
	require.NoError(t, err)

	_, err = client.Do(req)

	assert.ErrorIs(t, err, context.Canceled)
}
