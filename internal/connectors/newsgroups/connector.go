// Package newsgroups downloads the 20 Newsgroups "bydate" archive over HTTP.
package newsgroups

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/custodia-labs/newsbayes/internal/connectors/archive"
	"github.com/custodia-labs/newsbayes/internal/core/domain"
	"github.com/custodia-labs/newsbayes/internal/core/ports/driven"
	"github.com/custodia-labs/newsbayes/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// DefaultProgressInterval is the minimum time between progress log lines.
const DefaultProgressInterval = 2 * time.Second

// Connector streams posts from a remote tar.gz archive.
// The archive is never written to disk.
type Connector struct {
	url              string
	client           *http.Client
	retry            RetryConfig
	progressInterval time.Duration

	mu     sync.Mutex
	closed bool
}

// Option configures the connector.
type Option func(*Connector)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Connector) {
		if client != nil {
			c.client = client
		}
	}
}

// WithRetryConfig replaces the default retry policy.
func WithRetryConfig(cfg RetryConfig) Option {
	return func(c *Connector) {
		c.retry = cfg
	}
}

// WithProgressInterval sets how often download progress is logged.
func WithProgressInterval(d time.Duration) Option {
	return func(c *Connector) {
		if d > 0 {
			c.progressInterval = d
		}
	}
}

// New creates a connector for the archive at rawURL.
func New(rawURL string, opts ...Option) *Connector {
	c := &Connector{
		url:              rawURL,
		client:           &http.Client{Timeout: 10 * time.Minute},
		retry:            DefaultRetryConfig(),
		progressInterval: DefaultProgressInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return string(domain.SourceNewsgroups)
}

// URL returns the archive URL.
func (c *Connector) URL() string {
	return c.url
}

// Validate checks the archive URL is an absolute http(s) URL.
func (c *Connector) Validate(ctx context.Context) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u, err := url.Parse(c.url)
	if err != nil {
		return fmt.Errorf("%w: corpus url: %v", domain.ErrInvalidInput, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: corpus url %q is not an http(s) URL", domain.ErrInvalidInput, c.url)
	}
	return nil
}

// FullSync downloads the archive and streams every post it contains.
// Failures are reported on the error channel wrapped in
// domain.ErrCorpusUnavailable.
func (c *Connector) FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error) {
	docsChan := make(chan domain.RawDocument)
	errsChan := make(chan error, 1)

	go func() {
		defer close(docsChan)
		defer close(errsChan)

		if err := c.checkOpen(); err != nil {
			errsChan <- err
			return
		}

		body, size, err := c.open(ctx)
		if err != nil {
			errsChan <- fmt.Errorf("%w: download %s: %w", domain.ErrCorpusUnavailable, c.url, err)
			return
		}
		defer body.Close()

		count := 0
		err = archive.Read(ctx, newProgressReader(body, size, c.progressInterval), func(doc domain.RawDocument) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case docsChan <- doc:
				count++
				return nil
			}
		})
		if err != nil {
			errsChan <- fmt.Errorf("%w: read %s: %w", domain.ErrCorpusUnavailable, c.url, err)
			return
		}
		logger.Debug("Read %d posts from %s", count, c.url)
	}()

	return docsChan, errsChan
}

// Close marks the connector closed.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *Connector) checkOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrConnectorClosed
	}
	return nil
}

// open issues the GET request, retrying transient failures, and returns the
// response body with its advertised length (-1 when unknown).
func (c *Connector) open(ctx context.Context) (io.ReadCloser, int64, error) {
	resp, err := withRetry(ctx, c.retry, logger.Warn, func(_ int) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, &statusError{code: resp.StatusCode}
		}
		return resp, nil
	})
	if err != nil {
		return nil, 0, err
	}
	logger.Info("Downloading %s", c.url)
	return resp.Body, resp.ContentLength, nil
}
