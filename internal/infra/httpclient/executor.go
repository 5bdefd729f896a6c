package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"
)

const defaultMaxBodyBytes = 16 << 20 // 16MB

// ErrBodyTooLarge is returned when a response body exceeds the configured cap.
var ErrBodyTooLarge = errors.New("response body too large")

// ResponseData captures the response details and duration.
// BodyBytes is already decoded from any Content-Encoding.
type ResponseData struct {
	Status    int
	Headers   http.Header
	BodyBytes []byte
	Duration  time.Duration
}

// Executor executes HTTP requests with timing.
type Executor struct {
	client       *http.Client
	timeout      time.Duration
	maxBodyBytes int64
}

// ExecutorOption allows configuring an Executor.
type ExecutorOption func(*Executor)

// WithTimeout sets the default timeout applied to requests.
func WithTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) { e.timeout = timeout }
}

// WithClient sets a custom HTTP client.
func WithClient(client *http.Client) ExecutorOption {
	return func(e *Executor) { e.client = client }
}

// WithMaxBodyBytes caps how much of a response body is read. Larger bodies
// fail with ErrBodyTooLarge.
func WithMaxBodyBytes(n int64) ExecutorOption {
	return func(e *Executor) { e.maxBodyBytes = n }
}

// NewExecutor builds an Executor with a default client and timeout.
func NewExecutor(opts ...ExecutorOption) *Executor {
	cfg := DefaultConfig()
	e := &Executor{
		client:       New(cfg),
		timeout:      cfg.Timeout,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Client exposes the underlying client, e.g. as the base for an OAuth transport.
func (e *Executor) Client() *http.Client {
	return e.client
}

// Do executes the request and returns response data plus duration.
func (e *Executor) Do(ctx context.Context, req *http.Request) (ResponseData, error) {
	start := time.Now()
	ctxWithTimeout := ctx
	cancel := func() {}
	if e.timeout > 0 {
		ctxWithTimeout, cancel = context.WithTimeout(ctx, e.timeout)
	}
	defer cancel()

	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", AcceptEncoding)
	}

	resp, err := e.client.Do(req.WithContext(ctxWithTimeout))
	duration := time.Since(start)
	if err != nil {
		return ResponseData{Duration: duration}, err
	}
	defer resp.Body.Close()

	var r io.Reader = resp.Body
	if e.maxBodyBytes > 0 {
		r = io.LimitReader(resp.Body, e.maxBodyBytes+1)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return ResponseData{Duration: time.Since(start)}, err
	}
	if e.maxBodyBytes > 0 && int64(len(body)) > e.maxBodyBytes {
		return ResponseData{Status: resp.StatusCode, Duration: time.Since(start)}, ErrBodyTooLarge
	}

	body, err = decodeBody(resp.Header.Get("Content-Encoding"), body, e.maxBodyBytes)
	if err != nil {
		return ResponseData{Status: resp.StatusCode, Duration: time.Since(start)}, err
	}

	headers := resp.Header.Clone()
	headers.Del("Content-Encoding")

	return ResponseData{
		Status:    resp.StatusCode,
		Headers:   headers,
		BodyBytes: body,
		Duration:  time.Since(start),
	}, nil
}
