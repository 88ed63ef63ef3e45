package adzuna

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchJobs_Paginates(t *testing.T) {
	var pages []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages = append(pages, r.URL.Path)
		assert.Equal(t, "golang", r.URL.Query().Get("what"))
		assert.Equal(t, "date", r.URL.Query().Get("sort_by"))

		switch {
		case strings.HasSuffix(r.URL.Path, "/search/1"):
			fmt.Fprint(w, `{"results":[
				{"id":"1","title":"Go dev","company":{"display_name":"Acme"},"location":{"display_name":"Berlin"},
				 "redirect_url":"https://adzuna.example/1","created":"2024-05-01T10:00:00Z","contract_time":"full_time"},
				{"id":"2","title":"SRE","company":{"display_name":"Acme"},"location":{"display_name":"Berlin"},
				 "redirect_url":"https://adzuna.example/2","contract_type":"contract"}]}`)
		default:
			fmt.Fprint(w, `{"results":[
				{"id":"3","title":"Platform","company":{"display_name":"Beta"},"location":{"display_name":"Remote"},
				 "redirect_url":"https://adzuna.example/3"}]}`)
		}
	}))
	defer srv.Close()

	c, err := NewClient(Config{AppID: "id", AppKey: "key", BaseURL: srv.URL, PageSize: 2, MaxPages: 5})
	require.NoError(t, err)

	jobs, err := c.SearchJobs(context.Background(), "golang", SearchParams{})
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, []string{"/v1/api/jobs/us/search/1", "/v1/api/jobs/us/search/2"}, pages)

	assert.Equal(t, "Acme", jobs[0].CompanyName)
	assert.Equal(t, "full_time", jobs[0].ContractTime)
	assert.Equal(t, 2024, jobs[0].PostedAt.Year())
	assert.Equal(t, "contract", jobs[1].ContractType)
}

func TestSearchJobs_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"exception":"AUTH_FAIL"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewClient(Config{AppID: "id", AppKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.SearchJobs(context.Background(), "golang", SearchParams{})
	require.ErrorContains(t, err, "401")
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{AppID: "id"})
	require.Error(t, err)
}
