package paste

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the sourcebin API.
	DefaultBaseURL = "https://sourceb.in"

	// DefaultShortURL is the host of the short links.
	DefaultShortURL = "https://srcb.in"

	// DefaultRawURL is the host that serves the raw bin files.
	DefaultRawURL = "https://cdn.sourceb.in"

	// maxResponseBody is the most of a response body that is read.
	maxResponseBody = 1 << 20
)

// ErrEmptyContent is returned when there is nothing to upload.
var ErrEmptyContent = errors.New("paste content is empty")

// TotalUploads is the total number of paste uploads by result.
var TotalUploads = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "paste_total_uploads",
		Help: "Total number of paste uploads",
	},
	[]string{"result"},
)

// Bin is an uploaded paste.
type Bin struct {
	// Key identifies the bin.
	Key string

	// URL is the full link to the bin.
	URL string

	// Short is the short link to the bin.
	Short string

	// Raw is the link to the raw content of the first file.
	Raw string
}

type createRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Files       []createFile `json:"files"`
}

type createFile struct {
	Content string `json:"content"`
}

type createResponse struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Client uploads text to a sourcebin compatible paste service.
type Client struct {
	l        *slog.Logger
	http     *http.Client
	baseURL  string
	shortURL string
	rawURL   string
	limiter  *rate.Limiter
}

// Option configures a Client.
type Option func(c *Client)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithBaseURL sets the URL of the API. The short and raw links are derived from it unless set explicitly.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithShortURL sets the host used for short links.
func WithShortURL(u string) Option {
	return func(c *Client) {
		c.shortURL = strings.TrimSuffix(u, "/")
	}
}

// WithRawURL sets the host used for raw links.
func WithRawURL(u string) Option {
	return func(c *Client) {
		c.rawURL = strings.TrimSuffix(u, "/")
	}
}

// WithLimiter sets the limiter that uploads wait on.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// NewClient creates a new paste client.
func NewClient(l *slog.Logger, opts ...Option) *Client {
	c := &Client{
		l:       l.With(slog.String("component", "paste")),
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: DefaultBaseURL,
		// Closing every ticket at once must not flood the service.
		limiter: rate.NewLimiter(rate.Limit(1), 5),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.shortURL == "" {
		if c.baseURL == DefaultBaseURL {
			c.shortURL = DefaultShortURL
		} else {
			c.shortURL = c.baseURL
		}
	}

	if c.rawURL == "" {
		if c.baseURL == DefaultBaseURL {
			c.rawURL = DefaultRawURL
		} else {
			c.rawURL = c.baseURL
		}
	}

	return c
}

// Post uploads the content under the given title.
func (c *Client) Post(ctx context.Context, content, title string) (bin *Bin, err error) {
	defer func() {
		result := "success"
		if err != nil {
			result = "error"
		}
		TotalUploads.WithLabelValues(result).Inc()
	}()

	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("error waiting for paste limiter: %w", err)
	}

	body, err := json.Marshal(&createRequest{
		Title: title,
		Files: []createFile{{Content: content}},
	})
	if err != nil {
		return nil, fmt.Errorf("error encoding paste: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/bins", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating paste request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error posting paste: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("error reading paste response: %w", err)
	}

	created := new(createResponse)
	if err := json.Unmarshal(raw, created); err != nil {
		return nil, fmt.Errorf("error decoding paste response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("paste service returned status %d: %s", resp.StatusCode, created.Message)
	} else if created.Key == "" {
		return nil, fmt.Errorf("paste service returned no key")
	}

	c.l.Debug("Uploaded paste", slog.String("key", created.Key), slog.String("title", title))

	return c.bin(created.Key), nil
}

func (c *Client) bin(key string) *Bin {
	return &Bin{
		Key:   key,
		URL:   c.baseURL + "/" + key,
		Short: c.shortURL + "/" + key,
		Raw:   c.rawURL + "/bins/" + key + "/0",
	}
}

// LogValue implements slog.LogValuer.
func (b *Bin) LogValue() slog.Value {
	return slog.GroupValue(slog.String("key", b.Key), slog.String("short", b.Short))
}

var _ slog.LogValuer = (*Bin)(nil)
