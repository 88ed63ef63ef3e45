package recruitee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/honeycarbs/jobhub/pkg/httpclient"
)

const (
	defaultBaseURL = "https://career.recruitee.com"

	// PublishedLayout is the timestamp format of Offer.PublishedAt.
	PublishedLayout = "2006-01-02 15:04:05 MST"
)

// NewClient instantiates a Recruitee careers widget client
func NewClient(cfg Config) (*Client, error) {
	if cfg.CompanyID == "" {
		return nil, fmt.Errorf("recruitee: company id is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = httpclient.New(httpclient.Config{})
	}

	return &Client{
		companyID: cfg.CompanyID,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		http:      httpClient,
	}, nil
}

// WidgetURL is the endpoint listing every published offer.
func (c *Client) WidgetURL() string {
	return fmt.Sprintf("%s/api/c/%s/widget", c.baseURL, c.companyID)
}

// Offers returns all published offers of the company
func (c *Client) Offers(ctx context.Context) ([]Offer, error) {
	var payload widgetResponse
	if err := c.http.GetJSON(ctx, c.WidgetURL(), &payload); err != nil {
		return nil, fmt.Errorf("recruitee: %w", err)
	}
	return payload.Offers, nil
}

// ParsePublished parses the PublishedAt timestamp of an offer.
func ParsePublished(s string) (time.Time, error) {
	t, err := time.Parse(PublishedLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("recruitee: parse published_at: %w", err)
	}
	return t, nil
}
