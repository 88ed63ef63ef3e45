package cli

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobhub/internal/domain/job"
)

func newProvidersCommand(o *options) *cobra.Command {
	var fetch bool

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Show the registered providers and their status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, cleanup, err := o.resources(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if fetch {
				res.Aggregator.Warm(cmd.Context())
			}
			renderProviders(cmd.OutOrStdout(), res.Aggregator.Providers())
			return nil
		},
	}

	cmd.Flags().BoolVar(&fetch, "fetch", true, "fetch every provider before printing its status")
	return cmd
}

func renderProviders(w io.Writer, providers []*job.Provider) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Location", "Status", "Jobs", "Dropped", "TTL", "Fetched", "Last Error"})
	for _, p := range providers {
		d := p.Diagnostics()
		fetched := ""
		if !d.FetchedAt.IsZero() {
			fetched = d.FetchedAt.Local().Format(time.DateTime)
		}
		t.AppendRow(table.Row{p.Name(), p.Location(), d.Status, d.Jobs, d.Dropped, p.TTL(), fetched, d.LastError})
	}
	t.Render()
}
