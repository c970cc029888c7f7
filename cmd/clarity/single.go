package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/config"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/enrich"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/openai"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/processor"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/prompt"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/salesforce"
)

func newSingleCmd() *cobra.Command {
	var (
		skipGeneration bool
		outputDir      string
	)

	cmd := &cobra.Command{
		Use:   "single <campaign-id>",
		Short: "Process one campaign by id and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			cfg := config.Load()
			logger := newLogger(cfg.LogLevel)

			if err := cfg.Validate(!skipGeneration); err != nil {
				return err
			}

			sf, err := salesforce.Login(cmd.Context(), salesforce.Credentials{
				Username:      cfg.SFUsername,
				Password:      cfg.SFPassword,
				SecurityToken: cfg.SFSecurityToken,
				Domain:        cfg.SFDomain,
			}, cfg.SFAPIVersion, logger)
			if err != nil {
				return fmt.Errorf("salesforce login: %w", err)
			}

			table, err := enrich.LoadTable(cfg.MappingsPath)
			if err != nil {
				return fmt.Errorf("load field mappings: %w", err)
			}

			var gen processor.Generator
			if skipGeneration {
				gen = openai.Preview{}
			} else {
				gen = openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, prompt.CombinedCharBudget, logger)
			}

			rec, err := sf.CampaignByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			enriched := table.Enrich(*rec)
			strategy := prompt.Select(rec.Channel)
			composed := prompt.Build(enriched, strategy)

			description, err := gen.Generate(cmd.Context(), composed)
			if err != nil {
				return fmt.Errorf("generate description: %w", err)
			}

			var out strings.Builder
			fmt.Fprintf(&out, "Campaign: %s (%s)\n", rec.Name, rec.ID)
			fmt.Fprintf(&out, "Strategy: %s\n\n", strategy.Name)
			fmt.Fprintf(&out, "=== Enriched Context ===\n%s\n\n", enriched)
			fmt.Fprintf(&out, "=== Prompt ===\n%s\n\n", composed)
			fmt.Fprintf(&out, "=== Description ===\n%s\n", description)

			fmt.Fprint(cmd.OutOrStdout(), out.String())

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			name := fmt.Sprintf("campaign_%s_%s.txt", rec.ID, time.Now().Format("20060102_150405"))
			path := filepath.Join(outputDir, name)
			if err := os.WriteFile(path, []byte(out.String()), 0o644); err != nil {
				return fmt.Errorf("write artifact: %w", err)
			}
			logger.Info().Str("path", path).Msg("artifact saved")
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipGeneration, "skip-generation", false, "preview mode, compose the prompt but skip the generation API")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory for the txt artifact")
	return cmd
}
