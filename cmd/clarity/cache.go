package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/cache"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/config"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the extraction cache",
	}

	info := &cobra.Command{
		Use:   "info",
		Short: "Show the cached extraction, if any",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger := newLogger(cfg.LogLevel)
			store := cache.NewStore(cfg.CacheDir, logger)

			i := store.Info()
			if i == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no cached extraction")
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Extracted:     %s (%d days ago)\n", i.ExtractedAt.Format("2006-01-02 15:04:05 MST"), i.AgeDays)
			fmt.Fprintf(out, "Campaigns:     %d\n", i.Campaigns)
			fmt.Fprintf(out, "Members:       %d\n", i.TotalMembers)
			fmt.Fprintf(out, "Total queried: %d\n", i.TotalQueried)
			if i.Limit == cache.Unlimited {
				fmt.Fprintf(out, "Limit:         unlimited\n")
			} else {
				fmt.Fprintf(out, "Limit:         %d\n", i.Limit)
			}
			fmt.Fprintf(out, "Window:        %d months\n", i.WindowMonths)
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Delete the cached extraction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger := newLogger(cfg.LogLevel)
			return cache.NewStore(cfg.CacheDir, logger).Clear()
		},
	}

	cmd.AddCommand(info, clear)
	return cmd
}
