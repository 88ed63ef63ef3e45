package harri

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/honeycarbs/jobhub/pkg/httpclient"
)

const defaultBaseURL = "https://gateway.harri.com/core-reader/api/v1"

// NewClient instantiates a Harri gateway client
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = httpclient.New(httpclient.Config{})
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}
}

// BrandJobs lists the open jobs of a brand
func (c *Client) BrandJobs(ctx context.Context, brandID string) ([]Job, error) {
	var payload brandResponse
	url := fmt.Sprintf("%s/profile/brand/%s", c.baseURL, brandID)
	if err := c.http.GetJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("harri: %w", err)
	}

	jobs := make([]Job, 0, len(payload.Data.Jobs))
	for _, entry := range payload.Data.Jobs {
		jobs = append(jobs, entry.Job)
	}
	return jobs, nil
}

// JobDescription fetches the HTML description of a single job
func (c *Client) JobDescription(ctx context.Context, jobID int64) (string, error) {
	var payload jobResponse
	url := fmt.Sprintf("%s/profile/job/%d", c.baseURL, jobID)
	if err := c.http.GetJSON(ctx, url, &payload); err != nil {
		return "", fmt.Errorf("harri: %w", err)
	}
	return payload.Data.Description, nil
}

// ParseDate parses the RFC 1123 timestamps Harri returns.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC1123, time.RFC1123Z} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("harri: unrecognized date %q", s)
}
