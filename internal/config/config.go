package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values are read by viper from configs/config.yaml or environment variables.
type Config struct {
	BadgerDBPath     string        `mapstructure:"BADGERDB_PATH"`
	ContentBaseURL   string        `mapstructure:"CONTENT_BASE_URL"`
	FetchTimeout     time.Duration `mapstructure:"FETCH_TIMEOUT"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	RecentCap        int           `mapstructure:"RECENT_CAP"`
	QuizRecentCap    int           `mapstructure:"QUIZ_RECENT_CAP"`
	BookmarkCap      int           `mapstructure:"BOOKMARK_CAP"`
	PageSize         int           `mapstructure:"PAGE_SIZE"`
	ProfileTTL       time.Duration `mapstructure:"PROFILE_TTL"`
	EnrichTimeout    time.Duration `mapstructure:"ENRICH_TIMEOUT"`
	TelegramBotToken string        `mapstructure:"TELEGRAM_BOT_TOKEN"`
}

// ErrMissingBotToken is returned by RequireBotToken.
var ErrMissingBotToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

var defaults = map[string]any{
	"BADGERDB_PATH":      "./badger_data",
	"CONTENT_BASE_URL":   "./data",
	"FETCH_TIMEOUT":      "10s",
	"LOG_LEVEL":          "info",
	"RECENT_CAP":         8,
	"QUIZ_RECENT_CAP":    20,
	"BOOKMARK_CAP":       200,
	"PAGE_SIZE":          12,
	"PROFILE_TTL":        "12h",
	"ENRICH_TIMEOUT":     "30s",
	"TELEGRAM_BOT_TOKEN": "",
}

// LoadConfig reads a .env file if present, then config.yaml from path, then
// the environment. Environment variables win over the file.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.FetchTimeout <= 0:
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	case c.RecentCap <= 0 || c.QuizRecentCap <= 0 || c.BookmarkCap <= 0:
		return errors.New("RECENT_CAP, QUIZ_RECENT_CAP and BOOKMARK_CAP must be positive")
	case c.PageSize <= 0:
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	return nil
}

// RequireBotToken fails when the Telegram token is missing. Only the bot
// command needs it.
func (c Config) RequireBotToken() error {
	if strings.TrimSpace(c.TelegramBotToken) == "" {
		return ErrMissingBotToken
	}
	return nil
}
