package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/rewired-gh/launchdash/internal/analysis"
	"github.com/rewired-gh/launchdash/internal/models"
)

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	return tw
}

func newSitesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List the launch sites offered by the site dropdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			ds, err := openDataset(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			tw := newTable()
			tw.AppendHeader(table.Row{"Label", "Value"})
			for _, opt := range analysis.ListSites(ds.Records()) {
				tw.AppendRow(table.Row{opt.Label, opt.Value})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			return err
		},
	}
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var site string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the success pie data for a site",
		Long: `Prints the data behind the success pie chart. For ALL the table holds
successful launches per site; for a single site it holds failure and success counts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			ds, err := openDataset(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			slices := analysis.PieData(ds.Records(), site)
			total := analysis.Total(slices)

			tw := newTable()
			tw.AppendHeader(table.Row{"Label", "Count", "Share"})
			for _, s := range slices {
				tw.AppendRow(table.Row{s.Label, humanize.Commaf(s.Value), share(s.Value, total)})
			}
			tw.AppendFooter(table.Row{"Total", humanize.Commaf(total), share(total, total)})
			tw.SetColumnConfigs([]table.ColumnConfig{
				{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
				{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
			})

			_, err = fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			return err
		},
	}
	cmd.Flags().StringVar(&site, "site", models.AllSites, "Launch site, or ALL for every site")
	return cmd
}

// share formats v as a percentage of total; an empty total has no share.
func share(v, total float64) string {
	if total <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", v/total*100)
}
