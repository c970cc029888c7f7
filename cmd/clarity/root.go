package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/cache"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/config"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/enrich"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/openai"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/processor"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/prompt"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/report"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/salesforce"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clarity",
		Short:         "Generate AI sales descriptions for Salesforce marketing campaigns",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newReportCmd(),
		newABMCmd(),
		newSingleCmd(),
		newCacheCmd(),
	)
	return root
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}

// buildProcessor assembles the pipeline from configuration: Salesforce login,
// mapping table, generator (real or preview), cache, and report sink.
func buildProcessor(ctx context.Context, cfg config.Config, logger zerolog.Logger, preview bool, outputDir string) (*processor.Processor, error) {
	if err := cfg.Validate(!preview); err != nil {
		return nil, err
	}

	sf, err := salesforce.Login(ctx, salesforce.Credentials{
		Username:      cfg.SFUsername,
		Password:      cfg.SFPassword,
		SecurityToken: cfg.SFSecurityToken,
		Domain:        cfg.SFDomain,
	}, cfg.SFAPIVersion, logger)
	if err != nil {
		return nil, fmt.Errorf("salesforce login: %w", err)
	}

	table, err := enrich.LoadTable(cfg.MappingsPath)
	if err != nil {
		return nil, fmt.Errorf("load field mappings: %w", err)
	}

	var gen processor.Generator
	if preview {
		gen = openai.Preview{}
	} else {
		gen = openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, prompt.CombinedCharBudget, logger)
	}

	store := cache.NewStore(cfg.CacheDir, logger)
	sink := report.NewWriter(outputDir, logger)

	return processor.New(sf, gen, table, store, sink, logger), nil
}
