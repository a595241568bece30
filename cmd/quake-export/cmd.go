package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/mr1hm/go-quake-dashboard/internal/config"
	"github.com/mr1hm/go-quake-dashboard/internal/export"
	"github.com/mr1hm/go-quake-dashboard/internal/ingestion"
	"github.com/mr1hm/go-quake-dashboard/internal/logging"
	"github.com/mr1hm/go-quake-dashboard/internal/models"
	"github.com/mr1hm/go-quake-dashboard/internal/pipeline"
)

type options struct {
	feedURL      string
	minMagnitude float64
	start        string
	end          string
	out          string

	// overridable in tests
	fetcher pipeline.Fetcher
	clock   clockwork.Clock
}

func newRootCmd(opts *options) *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "quake-export",
		Short:         "One-shot export of the USGS earthquake feed",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			cfg = loaded
			// logs go to stderr so stdout stays clean for CSV/JSON
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format))

			if !cmd.Flags().Changed("feed-url") {
				opts.feedURL = cfg.Feed.URL
			}
			if !cmd.Flags().Changed("min-magnitude") {
				opts.minMagnitude = cfg.Filter.DefaultMinMagnitude
			}
			if opts.fetcher == nil {
				opts.fetcher = ingestion.NewClient(cfg.Feed.Timeout, nil, opts.clock)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.feedURL, "feed-url", config.DefaultFeedURL, "GeoJSON feed URL")
	flags.Float64Var(&opts.minMagnitude, "min-magnitude", models.DefaultMinMagnitude, "minimum magnitude, 0 to 10")
	flags.StringVar(&opts.start, "start", "", "first day to include (YYYY-MM-DD, default earliest in feed)")
	flags.StringVar(&opts.end, "end", "", "last day to include (YYYY-MM-DD, default latest in feed)")

	root.AddCommand(newCSVCmd(opts), newSummaryCmd(opts))
	return root
}

func newCSVCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Write the filtered events as CSV, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := opts.run(cmd)
			if err != nil {
				return err
			}

			write := func(w io.Writer) error {
				return export.WriteCSV(w, v.Events)
			}
			if opts.out == "" || opts.out == "-" {
				err = write(cmd.OutOrStdout())
			} else {
				err = writeFile(opts.out, write)
			}
			if err != nil {
				return err
			}
			slog.Info("csv exported", "rows", len(v.Events), "out", opts.out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default stdout, e.g. "+export.FileName+")")
	return cmd
}

// writeFile creates path and fills it with write. On any error, including
// the final close, the partial file is removed.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("error closing %s: %w", path, err)
	}
	return nil
}

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print count, max, mean and daily counts as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := opts.run(cmd)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), v)
		},
	}
}

func (o *options) query() (pipeline.Query, error) {
	q := pipeline.Query{MinMagnitude: o.minMagnitude}
	if o.start != "" {
		d, err := models.ParseDate(o.start)
		if err != nil {
			return q, err
		}
		q.Start = &d
	}
	if o.end != "" {
		d, err := models.ParseDate(o.end)
		if err != nil {
			return q, err
		}
		q.End = &d
	}
	return q, nil
}

func (o *options) run(cmd *cobra.Command) (pipeline.View, error) {
	q, err := o.query()
	if err != nil {
		return pipeline.View{}, err
	}
	runner := pipeline.NewRunner(o.fetcher, o.feedURL, nil, nil, o.clock)
	return runner.Run(cmd.Context(), q)
}

type summaryJSON struct {
	MinMagnitude  float64             `json:"min_magnitude"`
	Start         models.Date         `json:"start"`
	End           models.Date         `json:"end"`
	TotalCount    int                 `json:"total_count"`
	MaxMagnitude  *float64            `json:"max_magnitude"`
	MeanMagnitude *float64            `json:"mean_magnitude"`
	DailyCounts   []models.DailyCount `json:"daily_counts"`
}

func writeSummary(w io.Writer, v pipeline.View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaryJSON{
		MinMagnitude:  v.Criteria.MinMagnitude,
		Start:         v.Criteria.StartDate,
		End:           v.Criteria.EndDate,
		TotalCount:    v.Summary.TotalCount,
		MaxMagnitude:  v.Summary.MaxMagnitude,
		MeanMagnitude: v.Summary.MeanMagnitude,
		DailyCounts:   v.Summary.DailyCounts,
	})
}
