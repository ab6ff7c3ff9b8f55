// Command trialclean runs one cleaning pass over a raw clinical-trials
// registry export: it loads the delimited file, normalizes and filters the
// records, derives the sponsor/income/results categoricals, and writes the
// cleaned table, the published-only subset and the per-country count
// artifacts into the output directory.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trialops/trial-ingress/pkg/config"
	"github.com/trialops/trial-ingress/pkg/ingest"
	"github.com/trialops/trial-ingress/pkg/normalizer"
	"github.com/trialops/trial-ingress/pkg/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		inputPath     string
		outputDir     string
		maxSampleSize float64
	)

	cmd := &cobra.Command{
		Use:           "trialclean",
		Short:         "Clean a clinical-trials registry export",
		Long:          "trialclean normalizes a raw ICTRP-style CSV export and emits the cleaned table, the published-only subset and per-country statistics.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; environment wins over defaults, flags win over both.
			_ = godotenv.Load()

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.Flags().Changed("input") {
				cfg.InputPath = inputPath
			}
			if cmd.Flags().Changed("out") {
				cfg.OutputDir = outputDir
			}
			if cmd.Flags().Changed("max-sample-size") {
				cfg.MaxSampleSize = maxSampleSize
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := buildLogger(cfg)
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			return run(cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the raw registry export (overrides INPUT_PATH)")
	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "output directory (overrides OUTPUT_DIR)")
	cmd.Flags().Float64Var(&maxSampleSize, "max-sample-size", 0, "upper bound for plausible sample sizes (overrides MAX_SAMPLE_SIZE)")

	return cmd
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.LogFormat == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// run wires one pipeline pass: load, normalize, persist, report. Nothing is
// written until the whole transform sequence has completed.
func run(cfg *config.Config, logger *zap.Logger) error {
	source, err := ingest.NewCSVSource(cfg.InputPath, logger)
	if err != nil {
		return err
	}
	table, skipped, err := source.Load()
	if err != nil {
		return err
	}

	norm, err := normalizer.New(cfg, logger)
	if err != nil {
		return err
	}
	result, err := norm.Normalize(table)
	if err != nil {
		return err
	}
	result.Metrics.RowsMalformed = skipped

	sink, err := ingest.NewCSVSink(cfg.OutputDir, logger)
	if err != nil {
		return err
	}
	if err := sink.WriteTable("cleaned_ictrp.csv", result.Cleaned); err != nil {
		return err
	}
	if err := sink.WriteTable("published_trials.csv", result.Published); err != nil {
		return err
	}

	reporter, err := report.NewReporter(logger)
	if err != nil {
		return err
	}
	if err := reporter.WriteCountryArtifacts(sink, result); err != nil {
		return err
	}
	reporter.LogSummary(result)
	logger.Info("Run outputs written", zap.String("dir", sink.Dir()))

	return nil
}
