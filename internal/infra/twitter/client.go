package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dghubble/oauth1"
	"go.uber.org/zap"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/infra/httpclient"
	"github.com/knockbot/knockbot/internal/ports"
)

const (
	DefaultBaseURL = "https://api.twitter.com"
	PermalinkHost  = "https://twitter.com"

	// MaxRunes is the post length limit.
	MaxRunes = 280
)

// Client posts through the v2 API using OAuth 1.0a user context.
// It is built per invocation from explicit credentials.
type Client struct {
	baseURL string
	base    *http.Client
	timeout time.Duration
	log     *zap.Logger

	exec *httpclient.Executor

	mu       sync.Mutex
	username string
}

type Option func(*Client)

// WithBaseURL points the client at another API host (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient sets the client that carries the signed requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.base = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

var _ ports.Publisher = (*Client)(nil)

func New(creds domain.Credentials, opts ...Option) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: httpclient.DefaultConfig().Timeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.base == nil {
		c.base = httpclient.New(httpclient.DefaultConfig())
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}

	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, c.base)
	signed := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret).
		Client(ctx, oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret))

	c.exec = httpclient.NewExecutor(
		httpclient.WithClient(signed),
		httpclient.WithTimeout(c.timeout),
	)
	return c, nil
}

type createRequest struct {
	Text string `json:"text"`
}

type createResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

type meResponse struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
}

// apiError covers both the problem-details shape and the legacy errors array.
type apiError struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) Publish(ctx context.Context, text string) (domain.PublishResult, error) {
	if err := ValidateText(text); err != nil {
		return domain.PublishResult{}, err
	}

	body, err := json.Marshal(createRequest{Text: text})
	if err != nil {
		return domain.PublishResult{}, publishErr("twitter.publish", err)
	}

	var created createResponse
	if err := c.call(ctx, http.MethodPost, "/2/tweets", body, &created); err != nil {
		return domain.PublishResult{}, err
	}
	id := strings.TrimSpace(created.Data.ID)
	if id == "" {
		return domain.PublishResult{}, publishErr("twitter.publish", fmt.Errorf("response carried no post id"))
	}

	c.log.Info("twitter.publish.done", zap.String("id", id))

	return domain.PublishResult{
		PostID:    id,
		Permalink: c.permalink(ctx, id),
	}, nil
}

// Username returns the handle of the authenticated account. The first
// successful lookup is cached.
func (c *Client) Username(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.username
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	var me meResponse
	if err := c.call(ctx, http.MethodGet, "/2/users/me", nil, &me); err != nil {
		return "", err
	}
	name := strings.TrimSpace(me.Data.Username)
	if name == "" {
		return "", publishErr("twitter.me", fmt.Errorf("response carried no username"))
	}

	c.mu.Lock()
	c.username = name
	c.mu.Unlock()
	return name, nil
}

func (c *Client) permalink(ctx context.Context, id string) string {
	user, err := c.Username(ctx)
	if err != nil {
		c.log.Warn("twitter.username.failed", zap.Error(err))
		return fmt.Sprintf("%s/i/web/status/%s", PermalinkHost, id)
	}
	return fmt.Sprintf("%s/%s/status/%s", PermalinkHost, user, id)
}

func (c *Client) call(ctx context.Context, method, path string, body []byte, out any) error {
	op := "twitter." + strings.ToLower(method)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return publishErr(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.exec.Do(ctx, req)
	if err != nil {
		return publishErr(op, err)
	}

	c.log.Debug("twitter.call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.Status),
		zap.Duration("duration", resp.Duration),
	)

	if resp.Status < 200 || resp.Status > 299 {
		return publishErr(op, fmt.Errorf("status %d: %s", resp.Status, describe(resp.BodyBytes)))
	}

	if err := json.Unmarshal(resp.BodyBytes, out); err != nil {
		return publishErr(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func describe(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil {
		parts := []string{}
		if e.Title != "" {
			parts = append(parts, e.Title)
		}
		if e.Detail != "" {
			parts = append(parts, e.Detail)
		}
		for _, m := range e.Errors {
			if m.Message != "" {
				parts = append(parts, m.Message)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ": ")
		}
	}

	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	if s == "" {
		s = "empty response"
	}
	return s
}

// ValidateText refuses empty posts and posts over MaxRunes.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return publishErr("twitter.validate", fmt.Errorf("refusing to post empty text"))
	}
	if n := utf8.RuneCountInString(text); n > MaxRunes {
		return publishErr("twitter.validate", fmt.Errorf("text is %d characters, limit is %d", n, MaxRunes))
	}
	return nil
}

func publishErr(op string, err error) error {
	return &domain.OpError{Op: op, Kind: domain.KindPublish, Err: err}
}
