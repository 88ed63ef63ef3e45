package harri

import "github.com/honeycarbs/jobhub/pkg/httpclient"

// Config defines Harri client settings
type Config struct {
	BaseURL string
	HTTP    *httpclient.Client
}

// Client queries the public Harri profile gateway
type Client struct {
	baseURL string
	http    *httpclient.Client
}

type brandResponse struct {
	Data struct {
		Jobs []struct {
			Job Job `json:"Job"`
		} `json:"Jobs"`
	} `json:"data"`
}

type jobResponse struct {
	Data struct {
		Description string `json:"description"`
	} `json:"data"`
}

// Job is a list entry of a brand profile.
type Job struct {
	ID            int64  `json:"id"`
	AliasPosition string `json:"alias_position"`
	PublishDate   string `json:"publish_date"`
	EndDate       string `json:"end_date"`
}
