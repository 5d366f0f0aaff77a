package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"nextstep/internal/config"
	"nextstep/internal/content"
	"nextstep/internal/storage"
	"nextstep/internal/store"
)

var (
	// Global flags
	configDir string
	profile   string
	verbose   bool
)

// app is the state shared by subcommands, built in PersistentPreRunE.
type app struct {
	cfg  config.Config
	log  *logrus.Logger
	repo *storage.BadgerRepository
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "nextstep",
	Short: "NextStep Navigator - career guidance from the terminal",
	Long: `Browse the career bank and learning resources, keep bookmarks,
take the interest quiz and run the Telegram bot.

Content is read from CONTENT_BASE_URL (a directory or an http(s) URL);
bookmarks and recents are kept in BadgerDB at BADGERDB_PATH.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "./configs", "directory holding config.yaml")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "default", "storage profile (separate bookmarks and recents)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func newLogger(level string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(out)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("Invalid LOG_LEVEL, using info")
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	// Logs go to stderr so command output stays clean on stdout.
	log := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	log.WithFields(logrus.Fields{
		"badgerdb_path": cfg.BadgerDBPath,
		"content":       cfg.ContentBaseURL,
	}).Debug("Configuration loaded")

	repo, err := storage.NewBadgerRepository(cfg.BadgerDBPath, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	current = &app{cfg: cfg, log: log, repo: repo}
	return nil
}

func teardown() {
	if current == nil {
		return
	}
	if err := current.repo.Close(); err != nil {
		current.log.WithError(err).Error("Error closing database")
	}
	current = nil
}

// store binds the persistent store to the selected profile.
func (a *app) store() *store.Store {
	return store.New(a.repo, "cli:"+profile, store.Options{
		RecentCap:   a.cfg.RecentCap,
		BookmarkCap: a.cfg.BookmarkCap,
		ProfileTTL:  a.cfg.ProfileTTL,
	}, a.log)
}

func (a *app) loader() *content.Loader {
	return content.NewLoader(a.cfg.ContentBaseURL, a.cfg.FetchTimeout, a.log)
}

// catalog loads every collection and prints fallback notices to stderr.
func (a *app) catalog(cmd *cobra.Command) *content.Catalog {
	cat := content.LoadCatalog(cmd.Context(), a.loader())
	for _, notice := range cat.Notices {
		fmt.Fprintln(cmd.ErrOrStderr(), notice)
	}
	return cat
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	teardown()
	if err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
