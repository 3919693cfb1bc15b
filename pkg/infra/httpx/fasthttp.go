package httpx

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	DefaultTimeout             = 30 * time.Second
	DefaultMaxConnsPerHost     = 512
	DefaultMaxIdleConnDuration = 10 * time.Second
	DefaultReadBufferSize      = 8192
	DefaultWriteBufferSize     = 8192
	DefaultMaxResponseBodySize = 10 * 1024 * 1024
)

type FastHTTPClientOptions struct {
	// Timeout bounds a whole request when the request context carries no deadline.
	Timeout             time.Duration
	InsecureSkipVerify  bool
	MaxConnsPerHost     int
	MaxIdleConnDuration time.Duration
	ReadBufferSize      int
	WriteBufferSize     int
	MaxResponseBodySize int
	UserAgent           string
}

type FastHTTPClientOption func(*FastHTTPClientOptions)

func WithTimeout(timeout time.Duration) FastHTTPClientOption {
	return func(o *FastHTTPClientOptions) {
		o.Timeout = timeout
	}
}

func WithInsecureSkipVerify(skip bool) FastHTTPClientOption {
	return func(o *FastHTTPClientOptions) {
		o.InsecureSkipVerify = skip
	}
}

func WithMaxConnsPerHost(max int) FastHTTPClientOption {
	return func(o *FastHTTPClientOptions) {
		o.MaxConnsPerHost = max
	}
}

func WithMaxResponseBodySize(size int) FastHTTPClientOption {
	return func(o *FastHTTPClientOptions) {
		o.MaxResponseBodySize = size
	}
}

func WithUserAgent(userAgent string) FastHTTPClientOption {
	return func(o *FastHTTPClientOptions) {
		o.UserAgent = userAgent
	}
}

// FastHTTPClient adapts a fasthttp.Client to the net/http shaped Client interface.
// Response bodies are fully buffered and transparently decoded according to
// their Content-Encoding.
type FastHTTPClient struct {
	client    *fasthttp.Client
	timeout   time.Duration
	userAgent string
}

func NewFastHTTPClient(opts ...FastHTTPClientOption) *FastHTTPClient {
	options := &FastHTTPClientOptions{
		Timeout:             DefaultTimeout,
		MaxConnsPerHost:     DefaultMaxConnsPerHost,
		MaxIdleConnDuration: DefaultMaxIdleConnDuration,
		ReadBufferSize:      DefaultReadBufferSize,
		WriteBufferSize:     DefaultWriteBufferSize,
		MaxResponseBodySize: DefaultMaxResponseBodySize,
	}

	for _, opt := range opts {
		opt(options)
	}

	client := &fasthttp.Client{
		MaxConnsPerHost:     options.MaxConnsPerHost,
		MaxIdleConnDuration: options.MaxIdleConnDuration,
		ReadBufferSize:      options.ReadBufferSize,
		WriteBufferSize:     options.WriteBufferSize,
		MaxResponseBodySize: options.MaxResponseBodySize,
		ReadTimeout:         options.Timeout,
		WriteTimeout:        options.Timeout,
	}

	if options.InsecureSkipVerify {
		client.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // intentionally configurable
		}
	}

	return &FastHTTPClient{
		client:    client,
		timeout:   options.Timeout,
		userAgent: options.UserAgent,
	}
}

// Do checks the request context before dispatch and bounds the call by the
// earlier of its deadline and the client timeout. Cancelling the context
// does not abort a request already in flight.
func (c *FastHTTPClient) Do(req *http.Request) (*http.Response, error) {
	fastReq := fasthttp.AcquireRequest()
	fastResp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(fastReq)
	defer fasthttp.ReleaseResponse(fastResp)

	if req.URL != nil {
		fastReq.SetRequestURI(req.URL.String())
	}
	fastReq.Header.SetMethod(req.Method)

	if req.Host != "" {
		fastReq.Header.SetHost(req.Host)
	} else if req.URL != nil && req.URL.Host != "" {
		fastReq.Header.SetHost(req.URL.Host)
	}

	for key, values := range req.Header {
		for i, value := range values {
			if i == 0 {
				fastReq.Header.Set(key, value)
				continue
			}
			fastReq.Header.Add(key, value)
		}
	}

	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		fastReq.Header.Set("User-Agent", c.userAgent)
	}

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		fastReq.SetBodyRaw(body)
	}

	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	var deadline time.Time
	if c.timeout > 0 {
		deadline = time.Now().Add(c.timeout)
	}
	if ctxDeadline, ok := req.Context().Deadline(); ok && (deadline.IsZero() || ctxDeadline.Before(deadline)) {
		deadline = ctxDeadline
	}

	var err error
	if deadline.IsZero() {
		err = c.client.Do(fastReq, fastResp)
	} else {
		err = c.client.DoDeadline(fastReq, fastResp, deadline)
	}
	if err != nil {
		return nil, err
	}

	// fastResp.Body() aliases a pooled buffer; DecodeBody or the copy below
	// must produce an independent slice before the response is released.
	body, changed, err := DecodeBody(string(fastResp.Header.Peek("Content-Encoding")), fastResp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	if !changed {
		body = append([]byte(nil), body...)
	}

	statusCode := fastResp.StatusCode()
	headers := make(http.Header)
	fastResp.Header.VisitAll(func(key, value []byte) {
		headers.Add(string(key), string(value))
	})
	if changed {
		headers.Del("Content-Encoding")
		headers.Del("Content-Length")
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		StatusCode:    statusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        headers,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}
