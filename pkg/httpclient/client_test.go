package httpclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobhub/pkg/httpclient"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"name":"harri","count":2}`))
	}))
	defer srv.Close()

	c := httpclient.New(httpclient.Config{UserAgent: "test-agent"})

	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, c.GetJSON(context.Background(), srv.URL, &out))
	assert.Equal(t, "harri", out.Name)
	assert.Equal(t, 2, out.Count)
}

func TestGetJSON_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := httpclient.New(httpclient.Config{})
	err := c.GetJSON(context.Background(), srv.URL, &struct{}{})

	var statusErr *httpclient.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Equal(t, "maintenance", statusErr.Body)
}

func TestGetDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><a class="job" href="/jobs/1">Go developer</a></body></html>`))
	}))
	defer srv.Close()

	c := httpclient.New(httpclient.Config{})
	doc, err := c.GetDocument(context.Background(), srv.URL)
	require.NoError(t, err)

	link := doc.Find("a.job")
	assert.Equal(t, "Go developer", link.Text())
	href, _ := link.Attr("href")
	assert.Equal(t, srv.URL+"/jobs/1", doc.Url.ResolveReference(mustParse(t, href)).String())
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := httpclient.New(httpclient.Config{Timeout: 20 * time.Millisecond})
	err := c.GetJSON(context.Background(), srv.URL, &struct{}{})
	require.Error(t, err)
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
