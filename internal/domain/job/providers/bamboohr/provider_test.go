package bamboohr_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobhub/internal/domain"
	"github.com/honeycarbs/jobhub/internal/domain/job/providers/bamboohr"
	bamboohrapi "github.com/honeycarbs/jobhub/pkg/bamboohr"
)

const openings = `{"result":[
  {"id":"101","jobOpeningName":"Frontend Engineer","departmentId":"18573","employmentStatusLabel":"Full-Time",
   "isRemote":null,"location":{"city":"Ramallah","state":"West Bank"}},
  {"id":"102","jobOpeningName":"Account Executive","departmentId":"20000","employmentStatusLabel":"Full-Time",
   "isRemote":true,"location":{"city":"Austin","state":"Texas"}},
  {"id":103,"jobOpeningName":"Backend Engineer","departmentId":18573,"employmentStatusLabel":"Contractor",
   "isRemote":true,"location":{"city":null,"state":null}},
  {"id":"104","jobOpeningName":"Support Engineer","departmentId":"18573","employmentStatusLabel":"Part-Time",
   "isRemote":false,"location":{"city":"Amman","state":"Jordan"}}
]}`

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/careers/list":
			fmt.Fprint(w, openings)
		case "/careers/101/detail":
			fmt.Fprint(w, `{"result":{"jobOpening":{"description":"<p>React</p>","datePosted":"2024-04-20","employmentStatusLabel":"Full-Time"}}}`)
		case "/careers/103/detail":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server) *bamboohrapi.Client {
	t.Helper()
	c, err := bamboohrapi.NewClient(bamboohrapi.Config{CareersURL: srv.URL + "/careers", AllowAnyHost: true})
	require.NoError(t, err)
	return c
}

func TestUserpilot(t *testing.T) {
	srv := newServer(t)
	p, err := bamboohr.New(bamboohr.Userpilot, newClient(t, srv), nil)
	require.NoError(t, err)

	jobs, err := p.Jobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	front := jobs[0]
	assert.Equal(t, "Frontend Engineer", front.Title())
	assert.Equal(t, "Ramallah, West Bank", front.Location())
	assert.Equal(t, "<p>React</p>", front.Description())
	assert.Equal(t, srv.URL+"/careers/101", front.URI().String())
	assert.Equal(t, domain.VacancyFullTime, front.VacancyType())
	_, ok := front.PublishDate()
	assert.True(t, ok)

	back := jobs[1]
	assert.Equal(t, "Backend Engineer", back.Title())
	assert.Equal(t, "Remote", back.Location())
	assert.Equal(t, bamboohr.NoDescription, back.Description())
	assert.Equal(t, domain.VacancyContractor, back.VacancyType())
}

func TestFoothillFiltersByDepartment(t *testing.T) {
	srv := newServer(t)
	p, err := bamboohr.New(bamboohr.Foothill, newClient(t, srv), nil)
	require.NoError(t, err)

	jobs, err := p.Jobs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestLocationFormats(t *testing.T) {
	city, state := "Ramallah", "West Bank"

	assert.Equal(t, "Ramallah, West Bank", bamboohr.CityState(bamboohrapi.Location{City: &city, State: &state}))
	assert.Equal(t, "Remote", bamboohr.CityState(bamboohrapi.Location{}))
	assert.Equal(t, "Not available", bamboohr.CityState(bamboohrapi.Location{City: &city}))
	assert.Equal(t, "West Bank,Ramallah", bamboohr.StateCity(bamboohrapi.Location{City: &city, State: &state}))
}

func TestNewClientRejectsForeignHost(t *testing.T) {
	_, err := bamboohrapi.NewClient(bamboohrapi.Config{CareersURL: "https://example.com/careers"})
	require.Error(t, err)
}
