package recruitee

import "github.com/honeycarbs/jobhub/pkg/httpclient"

// Config defines Recruitee client settings
type Config struct {
	CompanyID string
	BaseURL   string
	HTTP      *httpclient.Client
}

// Client reads the public careers widget of a Recruitee company
type Client struct {
	companyID string
	baseURL   string
	http      *httpclient.Client
}

type widgetResponse struct {
	Offers []Offer `json:"offers"`
}

// Offer is one published position.
type Offer struct {
	ID                 int64  `json:"id"`
	Title              string `json:"title"`
	Location           string `json:"location"`
	CategoryCode       string `json:"category_code"`
	EmploymentTypeCode string `json:"employment_type_code"`
	Description        string `json:"description"`
	Requirements       string `json:"requirements"`
	CareersURL         string `json:"careers_url"`
	PublishedAt        string `json:"published_at"`
	Remote             bool   `json:"remote"`
}
