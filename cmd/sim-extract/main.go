// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sim-extract CLI, which parses
// FLAMEGPU simulation console logs and writes per-iteration
// instrumentation timings as CSV tables.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/sim-extract/internal/logparse"
	"github.com/pdiddy/sim-extract/internal/report"
	"github.com/pdiddy/sim-extract/internal/scan"
	"github.com/pdiddy/sim-extract/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command; running it performs the extraction.
var rootCmd = &cobra.Command{
	Use:   "sim-extract",
	Short: "Extract instrumentation timings from FLAMEGPU simulation logs",
	Long: `sim-extract parses console logs produced by FLAMEGPU simulation runs,
collects the per-iteration instrumentation timings and agent population
counts, and writes one CSV table per input file into the output directory.

Inputs may be files or directories; directories are searched recursively.
The marker vocabulary is configurable through sim-extract.yaml or an
explicit patterns file (see "sim-extract patterns").`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := extractConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	files, err := scan.Resolve(cfg.InputPaths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no readable input files among %v", cfg.InputPaths)
	}

	runs, summary := logparse.ParseAll(files, cfg.Patterns, os.Stdout)

	written, err := report.WriteAll(runs, cfg, report.StdinConfirm, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("\nparsed %d of %d files, wrote %d CSV file(s) to %s\n",
		summary.Parsed, summary.Total(), written, cfg.OutputDir)
	if summary.HasFailures() {
		return fmt.Errorf("%d input file(s) failed to parse", summary.Failed)
	}
	return nil
}

// extractConfig builds the run configuration from flags and the viper
// config.
func extractConfig(cmd *cobra.Command) (types.ExtractConfig, error) {
	inputs, _ := cmd.Flags().GetStringSlice("input")
	output, _ := cmd.Flags().GetString("output")
	verbose, _ := cmd.Flags().GetBool("verbose")
	force, _ := cmd.Flags().GetBool("force")
	pretty, _ := cmd.Flags().GetBool("pretty")
	patternsFile, _ := cmd.Flags().GetString("patterns")

	pats, err := loadPatterns(patternsFile)
	if err != nil {
		return types.ExtractConfig{}, err
	}

	return types.ExtractConfig{
		InputPaths: inputs,
		OutputDir:  output,
		Verbose:    verbose,
		Force:      force,
		Pretty:     pretty,
		Patterns:   pats,
	}, nil
}

// loadPatterns returns the active marker vocabulary: the FLAMEGPU
// defaults, overlaid with the config file's patterns section, overlaid
// with an explicit patterns file when given.
func loadPatterns(path string) (types.PatternSet, error) {
	pats := types.DefaultPatterns()

	if viper.IsSet("patterns") {
		if err := viper.UnmarshalKey("patterns", &pats); err != nil {
			return pats, fmt.Errorf("parsing patterns config: %w", err)
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return pats, fmt.Errorf("reading patterns file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &pats); err != nil {
			return pats, fmt.Errorf("parsing patterns file %s: %w", path, err)
		}
	}

	return pats, nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringSliceP("input", "i", nil, "input log files or directories to parse")
	rootCmd.Flags().StringP("output", "o", "", "directory for output, one CSV file per input file")
	rootCmd.Flags().BoolP("verbose", "v", false, "increase verbosity of output")
	rootCmd.Flags().BoolP("force", "f", false, "force overwriting of existing output files")
	rootCmd.Flags().BoolP("pretty", "p", false, "print extracted tables to stdout in aligned columns")
	rootCmd.Flags().String("patterns", "", "YAML file overriding the marker patterns")
	rootCmd.MarkFlagRequired("input")
	rootCmd.MarkFlagRequired("output")

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sim-extract.yaml or ~/.config/sim-extract/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sim-extract")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sim-extract"))
		}
	}

	viper.SetEnvPrefix("SIM_EXTRACT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
