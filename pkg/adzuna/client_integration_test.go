package adzuna

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hits the live API; runs only with ADZUNA_APP_ID and ADZUNA_APP_KEY set.
func TestSearchJobs_Live(t *testing.T) {
	appID, appKey := os.Getenv("ADZUNA_APP_ID"), os.Getenv("ADZUNA_APP_KEY")
	if appID == "" || appKey == "" {
		t.Skip("ADZUNA_APP_ID and ADZUNA_APP_KEY not set")
	}

	c, err := NewClient(Config{
		AppID:    appID,
		AppKey:   appKey,
		Country:  os.Getenv("ADZUNA_COUNTRY"),
		PageSize: 10,
		MaxPages: 1,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	jobs, err := c.SearchJobs(ctx, "golang", SearchParams{MaxDaysOld: 30})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(jobs), 10)
	for _, j := range jobs {
		assert.NotEmpty(t, j.URL, j.ID)
		assert.NotEmpty(t, j.Title, j.ID)
	}
}
