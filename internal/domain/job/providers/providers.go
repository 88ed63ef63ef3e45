// Package providers assembles the fixed set of job providers.
package providers

import (
	"fmt"
	"strings"

	"github.com/honeycarbs/jobhub/internal/config"
	"github.com/honeycarbs/jobhub/internal/domain/job"
	adzunaprovider "github.com/honeycarbs/jobhub/internal/domain/job/providers/adzuna"
	bambooprovider "github.com/honeycarbs/jobhub/internal/domain/job/providers/bamboohr"
	"github.com/honeycarbs/jobhub/internal/domain/job/providers/foras"
	harriprovider "github.com/honeycarbs/jobhub/internal/domain/job/providers/harri"
	"github.com/honeycarbs/jobhub/internal/domain/job/providers/jobsps"
	recruiteeprovider "github.com/honeycarbs/jobhub/internal/domain/job/providers/recruitee"
	"github.com/honeycarbs/jobhub/pkg/adzuna"
	"github.com/honeycarbs/jobhub/pkg/bamboohr"
	"github.com/honeycarbs/jobhub/pkg/harri"
	"github.com/honeycarbs/jobhub/pkg/httpclient"
	"github.com/honeycarbs/jobhub/pkg/logging"
	"github.com/honeycarbs/jobhub/pkg/recruitee"
)

// Deps carries what every provider shares
type Deps struct {
	Config   config.Config
	HTTP     *httpclient.Client
	Logger   *logging.Logger
	Recorder job.Recorder
}

type entry struct {
	name  string
	build func(d Deps, common []job.ProviderOption) (*job.Provider, error)
}

// registry lists the providers in registration order.
var registry = []entry{
	{recruiteeprovider.Name, buildAsalTech},
	{harriprovider.Name, buildHarri},
	{bambooprovider.Userpilot.Name, bambooTenant(bambooprovider.Userpilot)},
	{bambooprovider.Foothill.Name, bambooTenant(bambooprovider.Foothill)},
	{jobsps.Name, buildJobsPS},
	{foras.Name, buildForas},
	{adzunaprovider.Name, buildAdzuna},
}

// Names returns every known provider name in registration order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, e := range registry {
		names = append(names, e.name)
	}
	return names
}

// Build creates the enabled providers in registration order. Adzuna is only
// built when credentials are configured.
func Build(d Deps) ([]*job.Provider, error) {
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	if d.HTTP == nil {
		d.HTTP = httpclient.New(httpclient.Config{
			Timeout:   d.Config.HTTPTimeout,
			UserAgent: d.Config.UserAgent,
		})
	}

	if err := checkNames(d.Config.Providers); err != nil {
		return nil, err
	}

	out := make([]*job.Provider, 0, len(registry))
	for _, e := range registry {
		if !d.Config.ProviderEnabled(e.name) {
			continue
		}
		if e.name == adzunaprovider.Name && !d.Config.AdzunaEnabled() {
			d.Logger.Info("adzuna credentials not set, provider disabled")
			continue
		}

		common := []job.ProviderOption{
			job.WithLogger(d.Logger),
			job.WithRecorder(d.Recorder),
			job.WithTTL(d.Config.CacheTTL),
		}
		p, err := e.build(d, common)
		if err != nil {
			return nil, fmt.Errorf("providers: build %s: %w", e.name, err)
		}
		out = append(out, p)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("providers: no provider enabled")
	}
	return out, nil
}

func checkNames(selected []string) error {
	var unknown []string
	for _, name := range selected {
		found := false
		for _, e := range registry {
			if strings.EqualFold(e.name, name) {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("providers: unknown provider(s) %s, known: %s",
			strings.Join(unknown, ", "), strings.Join(Names(), ", "))
	}
	return nil
}

func buildAsalTech(d Deps, common []job.ProviderOption) (*job.Provider, error) {
	client, err := recruitee.NewClient(recruitee.Config{
		CompanyID: recruiteeprovider.CompanyID,
		HTTP:      d.HTTP,
	})
	if err != nil {
		return nil, err
	}
	return recruiteeprovider.New(client, common...)
}

func buildHarri(d Deps, common []job.ProviderOption) (*job.Provider, error) {
	client := harri.NewClient(harri.Config{HTTP: d.HTTP})
	return harriprovider.New(client, []harriprovider.Option{
		harriprovider.WithConcurrency(d.Config.DetailConcurrency),
		harriprovider.WithLogger(d.Logger.Named("harri")),
	}, common...)
}

func bambooTenant(t bambooprovider.Tenant) func(Deps, []job.ProviderOption) (*job.Provider, error) {
	return func(d Deps, common []job.ProviderOption) (*job.Provider, error) {
		client, err := bamboohr.NewClient(bamboohr.Config{CareersURL: t.CareersURL, HTTP: d.HTTP})
		if err != nil {
			return nil, err
		}
		return bambooprovider.New(t, client, []bambooprovider.Option{
			bambooprovider.WithConcurrency(d.Config.DetailConcurrency),
			bambooprovider.WithLogger(d.Logger.Named(strings.ToLower(t.Name))),
		}, common...)
	}
}

func buildJobsPS(d Deps, common []job.ProviderOption) (*job.Provider, error) {
	return jobsps.New(d.HTTP, []jobsps.Option{
		jobsps.WithConcurrency(d.Config.DetailConcurrency),
		jobsps.WithLogger(d.Logger.Named("jobsps")),
	}, common...)
}

func buildForas(d Deps, common []job.ProviderOption) (*job.Provider, error) {
	return foras.New(d.HTTP, []foras.Option{
		foras.WithLogger(d.Logger.Named("foras")),
	}, common...)
}

func buildAdzuna(d Deps, common []job.ProviderOption) (*job.Provider, error) {
	client, err := adzuna.NewClient(adzuna.Config{
		AppID:   d.Config.Adzuna.AppID,
		AppKey:  d.Config.Adzuna.AppKey,
		Country: d.Config.Adzuna.Country,
		HTTP:    d.HTTP,
	})
	if err != nil {
		return nil, err
	}
	return adzunaprovider.New(client, d.Config.Adzuna.Query, d.Config.Adzuna.Where, common...)
}
