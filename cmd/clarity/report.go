package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/config"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/processor"
)

func newReportCmd() *cobra.Command {
	var (
		monthsBack     int
		memberLimit    int
		batchSize      int
		noCache        bool
		skipGeneration bool
		outputDir      string
		delayMS        int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the full campaign description pipeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger := newLogger(cfg.LogLevel)

			proc, err := buildProcessor(cmd.Context(), cfg, logger, skipGeneration, outputDir)
			if err != nil {
				return err
			}

			path, err := proc.Run(cmd.Context(), processor.Options{
				MonthsBack:  monthsBack,
				MemberLimit: memberLimit,
				BatchSize:   batchSize,
				BypassCache: noCache,
				Preview:     skipGeneration,
				CallDelay:   time.Duration(delayMS) * time.Millisecond,
			})
			if errors.Is(err, processor.ErrNoCampaigns) {
				logger.Warn().Msg("no campaigns matched the extraction window, nothing to report")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "report written to", path)
			return nil
		},
	}

	cmd.Flags().IntVar(&monthsBack, "months-back", 12, "member lookback window in months")
	cmd.Flags().IntVar(&memberLimit, "member-limit", 1000, "max campaign member rows to query, 0 for unlimited")
	cmd.Flags().IntVar(&batchSize, "batch-size", 10, "records per processing batch")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the extraction cache")
	cmd.Flags().BoolVar(&skipGeneration, "skip-generation", false, "preview mode, compose prompts but skip the generation API")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory for the xlsx report")
	cmd.Flags().IntVar(&delayMS, "delay-ms", 500, "delay between generation calls in milliseconds")
	return cmd
}
