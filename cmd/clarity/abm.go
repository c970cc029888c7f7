package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/config"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/processor"
)

func newABMCmd() *cobra.Command {
	var (
		limit          int
		monthsBack     int
		batchSize      int
		skipGeneration bool
		outputDir      string
		delayMS        int
	)

	cmd := &cobra.Command{
		Use:   "abm",
		Short: "Run the pipeline over account-based-marketing campaigns only",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger := newLogger(cfg.LogLevel)

			proc, err := buildProcessor(cmd.Context(), cfg, logger, skipGeneration, outputDir)
			if err != nil {
				return err
			}

			path, err := proc.Run(cmd.Context(), processor.Options{
				MonthsBack: monthsBack,
				BatchSize:  batchSize,
				Preview:    skipGeneration,
				CallDelay:  time.Duration(delayMS) * time.Millisecond,
				ABM:        true,
				ABMLimit:   limit,
			})
			if errors.Is(err, processor.ErrNoCampaigns) {
				logger.Warn().Msg("no ABM campaigns matched the extraction window, nothing to report")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ABM report written to", path)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 15, "max ABM campaigns to include")
	cmd.Flags().IntVar(&monthsBack, "months-back", 12, "member lookback window in months")
	cmd.Flags().IntVar(&batchSize, "batch-size", 5, "records per processing batch")
	cmd.Flags().BoolVar(&skipGeneration, "skip-generation", false, "preview mode, compose prompts but skip the generation API")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory for the xlsx report")
	cmd.Flags().IntVar(&delayMS, "delay-ms", 500, "delay between generation calls in milliseconds")
	return cmd
}
