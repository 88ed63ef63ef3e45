// Package adzuna is a client for the Adzuna job search API.
package adzuna

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/honeycarbs/jobhub/pkg/httpclient"
)

const (
	defaultBaseURL  = "https://api.adzuna.com"
	defaultCountry  = "us"
	defaultPageSize = 50
	defaultMaxPages = 3
)

// NewClient instantiates an Adzuna API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.AppID == "" || cfg.AppKey == "" {
		return nil, errors.New("adzuna: app_id and app_key are required")
	}

	base, err := url.Parse(strings.TrimSuffix(cmpOr(cfg.BaseURL, defaultBaseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("adzuna: parse base url: %w", err)
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = httpclient.New(httpclient.Config{})
	}

	c := &Client{
		appID:    cfg.AppID,
		appKey:   cfg.AppKey,
		country:  strings.ToLower(cmpOr(cfg.Country, defaultCountry)),
		base:     base,
		http:     httpClient,
		pageSize: cfg.PageSize,
		maxPages: cfg.MaxPages,
	}
	if c.pageSize <= 0 {
		c.pageSize = defaultPageSize
	}
	if c.maxPages <= 0 {
		c.maxPages = defaultMaxPages
	}
	return c, nil
}

// SearchJobs pages through the results, newest first, until a short page or
// maxPages. A failure after the first page returns what was collected.
func (c *Client) SearchJobs(ctx context.Context, query string, params SearchParams) ([]Job, error) {
	if c == nil {
		return nil, errors.New("adzuna: client is nil")
	}
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("adzuna: query is required")
	}

	var jobs []Job
	for page := 1; page <= c.maxPages; page++ {
		var payload jobSearchResponse
		if err := c.http.GetJSON(ctx, c.searchURL(query, params, page), &payload); err != nil {
			if page > 1 && ctx.Err() == nil {
				return jobs, nil
			}
			return nil, fmt.Errorf("adzuna: search page %d: %w", page, err)
		}

		for _, posting := range payload.Results {
			jobs = append(jobs, posting.normalize())
		}
		if len(payload.Results) < c.pageSize {
			break
		}
	}
	return jobs, nil
}

func (c *Client) searchURL(query string, params SearchParams, page int) string {
	u := *c.base
	u.Path = strings.Join([]string{u.Path, "v1/api/jobs", c.country, "search", strconv.Itoa(page)}, "/")

	q := url.Values{
		"app_id":           {c.appID},
		"app_key":          {c.appKey},
		"what":             {query},
		"results_per_page": {strconv.Itoa(c.pageSize)},
		"content-type":     {"application/json"},
		"sort_by":          {"date"},
	}
	if params.Location != "" {
		q.Set("where", params.Location)
	}
	if params.MaxDaysOld > 0 {
		q.Set("max_days_old", strconv.Itoa(params.MaxDaysOld))
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (p jobPosting) normalize() Job {
	j := Job{
		ID:           p.ID,
		Title:        p.Title,
		CompanyName:  p.Company.DisplayName,
		Location:     p.Location.DisplayName,
		URL:          p.RedirectURL,
		Description:  p.Description,
		Category:     p.Category.Label,
		ContractTime: p.ContractTime,
		ContractType: p.ContractType,
		SalaryMin:    p.SalaryMin,
		SalaryMax:    p.SalaryMax,
	}
	if ts, err := time.Parse(time.RFC3339, p.Created); err == nil {
		j.PostedAt = ts
	}
	return j
}

func cmpOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
