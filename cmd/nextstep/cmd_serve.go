package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"nextstep/internal/bot"
	"nextstep/internal/linkmeta"
	"nextstep/internal/store"
)

const gcInterval = 10 * time.Minute

var enrichOut string

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot until interrupted",
	Long: `Serve the career bank, bookmarks, recents and the interest quiz over
Telegram. Requires TELEGRAM_BOT_TOKEN. Each chat gets its own bookmarks,
recents and profile.`,
	Args: cobra.NoArgs,
	RunE: runBot,
}

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill missing resource titles and descriptions from their pages",
	Long: `Visit every resource whose URL is http(s) and whose description is
missing or title is the default, using a headless browser. Writes the
resulting resources as JSON. Authored titles are never replaced.`,
	Args: cobra.NoArgs,
	RunE: runEnrich,
}

func init() {
	enrichCmd.Flags().StringVarP(&enrichOut, "out", "o", "", "write JSON to this file instead of stdout")
	rootCmd.AddCommand(botCmd, enrichCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := current.cfg
	if err := cfg.RequireBotToken(); err != nil {
		return err
	}
	bank, err := loadBank(cmd)
	if err != nil {
		return err
	}
	deps := bot.Deps{
		Catalog: current.catalog(cmd),
		Bank:    bank,
		Repo:    current.repo,
		StoreOptions: store.Options{
			RecentCap:   cfg.RecentCap,
			BookmarkCap: cfg.BookmarkCap,
			ProfileTTL:  cfg.ProfileTTL,
		},
		QuizRecentCap: cfg.QuizRecentCap,
		PageSize:      cfg.PageSize,
	}
	h, err := bot.NewHandler(cfg.TelegramBotToken, deps, current.log)
	if err != nil {
		return err
	}

	go current.repo.RunGC(ctx, gcInterval)

	current.log.WithFields(logrus.Fields{
		"careers": len(deps.Catalog.Careers),
		"tracks":  len(bank.Tracks()),
	}).Info("Bot starting. Press Ctrl+C to stop.")
	h.Start(ctx)
	current.log.Info("Shutting down")
	return nil
}

func runEnrich(cmd *cobra.Command, args []string) error {
	cat := current.catalog(cmd)
	sc := linkmeta.NewRodScraper(current.cfg.EnrichTimeout, current.log)
	defer func() {
		if err := sc.Close(); err != nil {
			current.log.WithError(err).Warn("Failed to close browser")
		}
	}()

	resources, stats := linkmeta.Enrich(cmd.Context(), cat.Resources, sc, current.log)
	fmt.Fprintf(cmd.ErrOrStderr(), "checked %d, enriched %d, failed %d\n", stats.Checked, stats.Enriched, stats.Failed)

	var w io.Writer = cmd.OutOrStdout()
	if enrichOut != "" {
		f, err := os.Create(enrichOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", enrichOut, err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resources); err != nil {
		return fmt.Errorf("failed to write resources: %w", err)
	}
	return nil
}
