package foras_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobhub/internal/domain/job"
	"github.com/honeycarbs/jobhub/internal/domain/job/providers/foras"
	"github.com/honeycarbs/jobhub/pkg/httpclient"
)

func card(title, deadline, location, href string) string {
	return fmt.Sprintf(`<div class="col-9 flex flex-col gap-y-2">
  <a href="/organizations/acme">Acme</a>
  <a href="%s"><h3 class="text-base font-bold line-clamp-2">%s</h3></a>
  <p class="line-clamp-2 md:line-clamp-3 text-sm h-[2.5rem] md:h-[3.5rem] mb-2">About %s</p>
  <div class="flex flex-col mt-2"><span>Deadline: %s</span><span class="text-xs text-gray-500">%s</span></div>
</div>`, href, title, title, deadline, location)
}

func TestProvider_Jobs(t *testing.T) {
	page := "<html><body><main>" +
		card("Junior Go Developer", "25/06/2024", "Ramallah", "/foras/101") +
		card("Expired role", "01/01/2024", "Nablus", "/foras/102") +
		card("Broken deadline", "soon", "Jenin", "/foras/103") +
		card("Senior Go Developer", "10/07/2024", "Remote", "/foras/104") +
		"</main></body></html>"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	now := func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	p, err := foras.New(httpclient.New(httpclient.Config{}), []foras.Option{
		foras.WithListURL(srv.URL),
		foras.WithClock(now),
	})
	require.NoError(t, err)

	jobs, err := p.Jobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	j := jobs[0]
	assert.Equal(t, "Junior Go Developer", j.Title())
	assert.Equal(t, "Ramallah", j.Location())
	assert.Equal(t, "https://foras.ps/foras/101", j.URI().String())
	assert.Equal(t, "About Junior Go Developer", j.Description())
	deadline, ok := j.Deadline()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC), deadline)
	assert.Same(t, p.DefaultPoster(), j.Poster())

	assert.Equal(t, "Senior Go Developer", jobs[1].Title())
	assert.Equal(t, 1, p.Diagnostics().Dropped)
	assert.Equal(t, job.StatusActive, p.Status())
}
