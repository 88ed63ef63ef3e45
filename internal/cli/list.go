package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobhub/internal/domain"
	"github.com/honeycarbs/jobhub/internal/domain/job"
)

type listFlags struct {
	provider    string
	query       string
	location    string
	vacancyType string
	activeOnly  bool
	limit       int
}

func newListCommand(o *options) *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		Long:  `List the jobs of every provider, or of one provider, in registration order.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := f.filter()
			if err != nil {
				return err
			}

			res, cleanup, err := o.resources(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			pred := filter.Match(time.Now())

			var jobs []domain.Job
			if f.provider == "" {
				jobs = res.Aggregator.AllJobsFiltered(cmd.Context(), pred)
			} else {
				p, ok := res.Aggregator.Provider(f.provider)
				if !ok {
					return fmt.Errorf("%w: %q", job.ErrUnknownProvider, f.provider)
				}
				jobs, err = res.Aggregator.JobsFromProviderFiltered(cmd.Context(), p, pred)
				if err != nil {
					return err
				}
			}

			total := len(jobs)
			if f.limit > 0 && len(jobs) > f.limit {
				jobs = jobs[:f.limit]
			}
			renderJobs(cmd.OutOrStdout(), domain.Summaries(jobs, false), total)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.provider, "provider", "p", "", "only jobs of this provider")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "match title, company or description")
	cmd.Flags().StringVar(&f.location, "location", "", "match location")
	cmd.Flags().StringVar(&f.vacancyType, "vacancy-type", "", "full-time, part-time, internship, contractor, temporary, volunteer or not-specified")
	cmd.Flags().BoolVar(&f.activeOnly, "active", false, "hide jobs past their deadline")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 50, "maximum rows, 0 for all")

	return cmd
}

func (f listFlags) filter() (job.Filter, error) {
	filter := job.Filter{
		Query:      f.query,
		Location:   f.location,
		ActiveOnly: f.activeOnly,
	}
	if f.vacancyType != "" {
		v, err := domain.ParseVacancyType(f.vacancyType)
		if err != nil {
			return job.Filter{}, err
		}
		filter.VacancyType = v
	}
	return filter, nil
}

func renderJobs(w io.Writer, jobs []domain.JobSummary, total int) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No jobs found")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Title", "Company", "Location", "Provider", "Type", "Deadline", "URL"})
	for _, j := range jobs {
		t.AppendRow(table.Row{j.Title, j.Company, j.Location, j.Provider, j.VacancyType, j.Deadline, j.URL})
	}
	if total > len(jobs) {
		t.AppendFooter(table.Row{fmt.Sprintf("%d of %d jobs", len(jobs), total)})
	} else {
		t.AppendFooter(table.Row{fmt.Sprintf("%d jobs", total)})
	}
	t.Render()
}
