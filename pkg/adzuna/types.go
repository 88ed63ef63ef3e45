package adzuna

import (
	"net/url"
	"time"

	"github.com/honeycarbs/jobhub/pkg/httpclient"
)

// Config defines Adzuna API client settings
type Config struct {
	AppID   string
	AppKey  string
	Country string
	BaseURL string
	HTTP    *httpclient.Client
	// PageSize is results_per_page, MaxPages bounds one search.
	PageSize int
	MaxPages int
}

// Client queries the Adzuna job search API
type Client struct {
	appID    string
	appKey   string
	country  string
	base     *url.URL
	http     *httpclient.Client
	pageSize int
	maxPages int
}

// SearchParams narrow a job search
type SearchParams struct {
	Location   string
	Category   string
	MaxDaysOld int
}

type jobSearchResponse struct {
	Count   int          `json:"count"`
	Results []jobPosting `json:"results"`
}

type jobPosting struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Company      companySummary  `json:"company"`
	Location     locationSummary `json:"location"`
	Description  string          `json:"description"`
	Created      string          `json:"created"`
	RedirectURL  string          `json:"redirect_url"`
	ContractTime string          `json:"contract_time"`
	ContractType string          `json:"contract_type"`
	Category     struct {
		Label string `json:"label"`
	} `json:"category"`
	SalaryMin float64 `json:"salary_min"`
	SalaryMax float64 `json:"salary_max"`
}

type companySummary struct {
	DisplayName string `json:"display_name"`
}

type locationSummary struct {
	DisplayName string `json:"display_name"`
}

// Job represents a normalized Adzuna job posting.
type Job struct {
	ID           string
	Title        string
	CompanyName  string
	Location     string
	URL          string
	Description  string
	Category     string
	ContractTime string // full_time, part_time
	ContractType string // permanent, contract
	PostedAt     time.Time
	SalaryMin    float64
	SalaryMax    float64
}
