package main

import (
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wdm0006/moviejanitor/pkg/config"
	"github.com/wdm0006/moviejanitor/pkg/movies"
)

// Version is set with -ldflags at release time.
var Version string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "moviejanitor",
		Short:        "Clean movie metadata tables.",
		Long:         "Load a movie metadata CSV, deduplicate it, impute missing values, derive features and filter outliers.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if getFlag(cmd, "debug") {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().String("config", "", "YAML, TOML or JSON settings file")
	root.PersistentFlags().String("input", "", "input CSV path")
	root.PersistentFlags().BoolP("debug", "d", false, "report debug logs")
	root.AddCommand(newCleanCmd(), newMissingCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version.",
		Run: func(cmd *cobra.Command, args []string) {
			v := Version
			if v == "" {
				if info, ok := debug.ReadBuildInfo(); ok {
					v = info.Main.Version
				} else {
					v = "(unknown version)"
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "moviejanitor %s\n", v)
		},
	}
}

// loadConfig reads --config (if any) and applies flags the user set on top.
func loadConfig(cmd *cobra.Command) (movies.Config, error) {
	cfg := movies.DefaultConfig()
	if path := getString(cmd, "config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.InputPath = getString(cmd, "input")
	}
	if flags.Lookup("output-dir") != nil && flags.Changed("output-dir") {
		cfg.OutputDir = getString(cmd, "output-dir")
	}
	if flags.Lookup("output") != nil && flags.Changed("output") {
		cfg.OutputName = getString(cmd, "output")
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Output.Format = getString(cmd, "format")
	}
	if flags.Lookup("reference-year") != nil && flags.Changed("reference-year") {
		y, err := flags.GetInt("reference-year")
		if err != nil {
			return cfg, err
		}
		cfg.ReferenceYear = y
	}
	return cfg, cfg.Validate()
}

func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		log.Fatal(err)
	}
	return r
}

func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		log.Fatal(err)
	}
	return r
}
