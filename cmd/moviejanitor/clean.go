package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wdm0006/moviejanitor/pkg/movies"
	"github.com/wdm0006/moviejanitor/pkg/report"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Run the cleaning pipeline and write the cleaned table.",
		Long: `Run the cleaning pipeline once, or keep running it when --watch
or --schedule is given. Output format follows --format or the output name's
extension (csv, csv.gz, jsonl, parquet, xlsx).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			r := &runner{
				cleaner: movies.New(cfg, movies.WithObserver(report.NewLogrus(log.StandardLogger()))),
				out:     cmd.OutOrStdout(),
			}
			watch, spec := getFlag(cmd, "watch"), getString(cmd, "schedule")
			if !watch && spec == "" {
				return r.run(contextOf(cmd))
			}
			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := r.run(ctx); err != nil {
				log.Error(err)
			}
			return r.serve(ctx, watch, spec)
		},
	}
	cmd.Flags().String("output-dir", "", "directory for the cleaned table")
	cmd.Flags().StringP("output", "o", "", "file name of the cleaned table")
	cmd.Flags().String("format", "", "output format: csv, jsonl, parquet or xlsx")
	cmd.Flags().Int("reference-year", 0, "year movie_age is measured from (default current year)")
	cmd.Flags().Bool("watch", false, "rerun whenever the input file changes")
	cmd.Flags().String("schedule", "", "rerun on a cron schedule, e.g. \"@hourly\"")
	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func summarize(res movies.Result) string {
	return fmt.Sprintf("wrote %d of %d rows to %s\n", res.RowsOut, res.RowsIn, res.Path)
}
