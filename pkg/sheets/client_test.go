package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func TestTabRange(t *testing.T) {
	assert.Equal(t, "Sheet1!A1", TabRange("", "A1"))
	assert.Equal(t, "Jobs!A2:Z", TabRange("Jobs", "A2:Z"))
	assert.Equal(t, "'Open jobs'!A1", TabRange("Open jobs", "A1"))
	assert.Equal(t, "'Bob''s'!A1", TabRange("Bob's", "A1"))
	assert.Equal(t, "Jobs", TabRange("Jobs", ""))
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	require.Error(t, err)
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithoutAuthentication(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return &Client{service: svc}
}

func TestAppendValues(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, ":append"))
		assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		_, _ = w.Write([]byte(`{"updates":{"updatedRows":2}}`))
	})

	n, err := c.AppendValues(context.Background(), "doc", "Jobs!A1", [][]any{{"a"}, {"b"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, body["values"], 2)
}

func TestUpdateValues_Error(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"denied"}}`))
	})

	_, err := c.UpdateValues(context.Background(), "doc", "Jobs!A2", [][]any{{"a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheets: update Jobs!A2")
}

func TestNilClient(t *testing.T) {
	var c *Client
	require.Error(t, c.ClearValues(context.Background(), "doc", "Jobs"))
}
