package bamboohr

import (
	"encoding/json"

	"github.com/honeycarbs/jobhub/pkg/httpclient"
)

// Config defines BambooHR client settings
type Config struct {
	CareersURL string
	// AllowAnyHost skips the bamboohr.com host check, for test servers.
	AllowAnyHost bool
	HTTP         *httpclient.Client
}

// Client reads the public careers API of one BambooHR tenant
type Client struct {
	careers string
	http    *httpclient.Client
}

type listResponse struct {
	Result []Opening `json:"result"`
}

// Opening is an entry of the careers list.
type Opening struct {
	ID                    json.Number `json:"id"`
	JobOpeningName        string      `json:"jobOpeningName"`
	DepartmentID          json.Number `json:"departmentId"`
	DepartmentLabel       string      `json:"departmentLabel"`
	EmploymentStatusLabel string      `json:"employmentStatusLabel"`
	IsRemote              *bool       `json:"isRemote"`
	Location              Location    `json:"location"`
}

// Remote reports whether the opening is flagged as remote.
func (o Opening) Remote() bool {
	return o.IsRemote != nil && *o.IsRemote
}

// Location is the optional city and state of an opening.
type Location struct {
	City  *string `json:"city"`
	State *string `json:"state"`
}

// Detail is the body of a single opening. Older tenants return it at the top
// level, newer ones under result.jobOpening.
type Detail struct {
	EmploymentStatusLabel string `json:"employmentStatusLabel"`
	Description           string `json:"description"`
	DatePosted            string `json:"datePosted"`
}

type detailResponse struct {
	Detail
	Result struct {
		JobOpening Detail `json:"jobOpening"`
	} `json:"result"`
}
