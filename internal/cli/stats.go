package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobhub/internal/domain/analysis"
)

func newStatsCommand(o *options) *cobra.Command {
	var (
		horizonDays int
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize jobs per provider and vacancy type",
		Long:  `Fetch every provider and print totals, provider health, vacancy type counts and the deadlines coming up within the horizon.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if horizonDays < 0 {
				return fmt.Errorf("horizon-days must not be negative")
			}

			res, cleanup, err := o.resources(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := res.Analysis.Summarize(cmd.Context(), time.Duration(horizonDays)*24*time.Hour)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			renderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().IntVar(&horizonDays, "horizon-days", 7, "days ahead to look for deadlines")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func renderReport(w io.Writer, r analysis.Report) {
	fmt.Fprintf(w, "Total jobs: %d\n", r.TotalJobs)

	providers := table.NewWriter()
	providers.SetOutputMirror(w)
	providers.SetStyle(table.StyleLight)
	providers.SetTitle("Providers")
	providers.AppendHeader(table.Row{"Name", "Status", "Jobs", "Dropped", "Last Error"})
	for _, p := range r.Providers {
		providers.AppendRow(table.Row{p.Name, p.Status, p.Jobs, p.Dropped, p.LastError})
	}
	providers.Render()

	vacancies := table.NewWriter()
	vacancies.SetOutputMirror(w)
	vacancies.SetStyle(table.StyleLight)
	vacancies.SetTitle("Vacancy types")
	vacancies.AppendHeader(table.Row{"Type", "Jobs"})
	for _, v := range r.VacancyTypes {
		vacancies.AppendRow(table.Row{v.Type, v.Count})
	}
	vacancies.Render()

	if len(r.UpcomingDeadlines) == 0 {
		fmt.Fprintln(w, "No upcoming deadlines")
		return
	}
	deadlines := table.NewWriter()
	deadlines.SetOutputMirror(w)
	deadlines.SetStyle(table.StyleLight)
	deadlines.SetTitle("Upcoming deadlines")
	deadlines.AppendHeader(table.Row{"Deadline", "Title", "Company", "Provider"})
	for _, j := range r.UpcomingDeadlines {
		deadlines.AppendRow(table.Row{j.Deadline, j.Title, j.Company, j.Provider})
	}
	deadlines.Render()
}
