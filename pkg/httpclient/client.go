// Package httpclient performs the single GET requests job sources are read with.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultTimeout         = 15 * time.Second
	DefaultUserAgent       = "jobhub/1.0 (+https://github.com/honeycarbs/jobhub)"
	DefaultMaxIdleConns    = 100
	DefaultIdleConnTimeout = 90 * time.Second

	errorBodyLimit = 4096
)

// Config configures a Client.
type Config struct {
	// Timeout bounds every single request including reading the body.
	Timeout   time.Duration
	UserAgent string
	// HTTPClient overrides the underlying client; Timeout is ignored then.
	HTTPClient *http.Client
}

// Client fetches JSON documents and HTML pages.
type Client struct {
	http      *http.Client
	userAgent string
}

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d: %s", e.URL, e.Code, e.Body)
}

// New builds a Client, filling in defaults for zero fields.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        DefaultMaxIdleConns,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     DefaultIdleConnTimeout,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &Client{http: httpClient, userAgent: ua}
}

// GetJSON decodes the JSON body at url into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	resp, err := c.get(ctx, url, "application/json")
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// GetDocument parses the HTML page at url.
func (c *Client) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.get(ctx, url, "text/html,application/xhtml+xml")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	// relative links resolve against the final URL after redirects
	doc.Url = resp.Request.URL
	return doc, nil
}

func (c *Client) get(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		_ = resp.Body.Close()
		return nil, &StatusError{URL: url, Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return resp, nil
}
