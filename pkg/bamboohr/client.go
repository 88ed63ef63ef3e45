package bamboohr

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/jobhub/pkg/httpclient"
)

// NewClient instantiates a client for one BambooHR careers page,
// e.g. https://acme.bamboohr.com/careers
func NewClient(cfg Config) (*Client, error) {
	careers := strings.TrimSuffix(strings.TrimSpace(cfg.CareersURL), "/")
	if careers == "" {
		return nil, fmt.Errorf("bamboohr: careers url is required")
	}
	if !cfg.AllowAnyHost && !strings.Contains(careers, "bamboohr.com") {
		return nil, fmt.Errorf("bamboohr: %q is not a BambooHR careers page", careers)
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = httpclient.New(httpclient.Config{})
	}

	return &Client{careers: careers, http: httpClient}, nil
}

// JobURL is the public page of an opening.
func (c *Client) JobURL(id string) string {
	return c.careers + "/" + id
}

// Openings lists every open position on the careers page
func (c *Client) Openings(ctx context.Context) ([]Opening, error) {
	var payload listResponse
	if err := c.http.GetJSON(ctx, c.careers+"/list", &payload); err != nil {
		return nil, fmt.Errorf("bamboohr: %w", err)
	}
	return payload.Result, nil
}

// Detail fetches the description of one opening
func (c *Client) Detail(ctx context.Context, id string) (Detail, error) {
	var payload detailResponse
	if err := c.http.GetJSON(ctx, c.JobURL(id)+"/detail", &payload); err != nil {
		return Detail{}, fmt.Errorf("bamboohr: %w", err)
	}
	if payload.Result.JobOpening != (Detail{}) {
		return payload.Result.JobOpening, nil
	}
	return payload.Detail, nil
}
