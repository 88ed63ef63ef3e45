package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobhub/internal/domain/job"
)

func TestObserveFetch(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, reg)

	m.ObserveFetch("Harri", job.StatusActive, 12, 2, 1500*time.Millisecond)
	m.ObserveFetch("Harri", job.StatusFailed, 0, 0, time.Second)

	assert.InDelta(t, 1, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("Harri", "ACTIVE")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FetchesTotal.WithLabelValues("Harri", "FAILED")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.JobsCached.WithLabelValues("Harri")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.DroppedTotal.WithLabelValues("Harri")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.FetchDuration))
}

func TestObserveTool(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, reg)

	m.ObserveTool("list_jobs", nil)
	m.ObserveTool("list_jobs", errors.New("boom"))
	m.ObserveTool("list_jobs", nil)

	assert.InDelta(t, 2, testutil.ToFloat64(m.ToolCallsTotal.WithLabelValues("list_jobs", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ToolCallsTotal.WithLabelValues("list_jobs", "error")), 0)
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveFetch("Foras.ps", job.StatusActive, 3, 0, time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `jobhub_provider_jobs_cached{provider="Foras.ps"} 3`)
	assert.Contains(t, string(body), "go_goroutines")
}
