package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	j "github.com/wdm0006/moviejanitor/pkg/janitor"
	"github.com/wdm0006/moviejanitor/pkg/movies"
	"github.com/wdm0006/moviejanitor/pkg/profile"
	"github.com/wdm0006/moviejanitor/pkg/transform/dedup"
	std "github.com/wdm0006/moviejanitor/pkg/transform/standardize"
)

func newMissingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "missing",
		Short: "Print missing values per column of the deduplicated input.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := contextOf(cmd)
			f, err := movies.Load(ctx, cfg)
			if err != nil {
				return err
			}
			f, err = dedupe(ctx, cfg, f)
			if err != nil {
				return err
			}
			rep := profile.CollectMissing(f)
			fmt.Fprintf(cmd.OutOrStdout(), "%d rows\n%s", rep.Rows, rep.ReportText())
			return nil
		},
	}
}

func dedupe(ctx context.Context, cfg movies.Config, f *j.Frame) (*j.Frame, error) {
	return j.NewPipeline().
		Add(&std.Trim{Column: cfg.TitleColumn, Coerce: true}).
		Add(&dedup.Exact{}).
		Run(ctx, f)
}
