package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "NEWS_CURATOR_CONFIG"
	databaseDSNEnv    = "DATABASE_DSN"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	readerEndpointEnv = "READER_ENDPOINT"

	defaultRefreshInterval = 6 * time.Hour
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Feeds         []FeedConfig       `yaml:"feeds"`
	Curation      CurationConfig     `yaml:"curation"`
	Macro         MacroConfig        `yaml:"macro"`
	Extraction    ExtractionConfig   `yaml:"extraction"`
	Database      DatabaseConfig     `yaml:"database"`
	Notifications NotificationConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Output        OutputConfig       `yaml:"output"`
}

// LoggingConfig controls the console logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FeedConfig describes one pre-aggregated feed document to load.
type FeedConfig struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	URL  string `yaml:"url"`
	Path string `yaml:"path"`
}

// CurationConfig exposes the classification heuristics as tuning
// parameters. The allow/deny lists are tuned against specific news
// sources, so deployments override them here rather than in code.
type CurationConfig struct {
	LanguageMode         string   `yaml:"languageMode"`
	DefaultLanguage      string   `yaml:"defaultLanguage"`
	FallbackWhenEmpty    bool     `yaml:"fallbackWhenEmpty"`
	PreviewMode          string   `yaml:"previewMode"`
	PreviewMinChars      int      `yaml:"previewMinChars"`
	PreviewMaxChars      int      `yaml:"previewMaxChars"`
	PreviewLooseMaxChars int      `yaml:"previewLooseMaxChars"`
	URLDenyPaths         []string `yaml:"urlDenyPaths"`
	URLDenyPrefixes      []string `yaml:"urlDenyPrefixes"`
	URLAllowPrefixes     []string `yaml:"urlAllowPrefixes"`
	URLMinSlugLength     int      `yaml:"urlMinSlugLength"`
	LedgerDisplayCap     int      `yaml:"ledgerDisplayCap"`
	BriefBullets         int      `yaml:"briefBullets"`
}

// MetricConfig names one indicator to fetch from the macro API.
type MetricConfig struct {
	Code  string `yaml:"code"`
	Label string `yaml:"label"`
}

// MacroConfig describes the IMF DataMapper integration.
type MacroConfig struct {
	Enabled bool           `yaml:"enabled"`
	BaseURL string         `yaml:"baseUrl"`
	Country string         `yaml:"country"`
	Metrics []MetricConfig `yaml:"metrics"`
}

// ExtractionConfig controls preview backfill for items without one.
type ExtractionConfig struct {
	Enabled        bool   `yaml:"enabled"`
	ReaderEndpoint string `yaml:"readerEndpoint"`
	MaxPerRun      int    `yaml:"maxPerRun"`
}

// DatabaseConfig describes Postgres connection details for the audit store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SchedulerConfig defines the periodic refresh cadence.
type SchedulerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Interval string `yaml:"interval"`
}

// RefreshInterval resolves the interval string to a duration.
func (s SchedulerConfig) RefreshInterval() time.Duration {
	interval, err := time.ParseDuration(s.Interval)
	if err != nil || interval <= 0 {
		return defaultRefreshInterval
	}
	return interval
}

// OutputConfig describes where view-model documents are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Feeds) == 0 {
		cfg.Feeds = defaultConfig().Feeds
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(readerEndpointEnv); v != "" {
		c.Extraction.ReaderEndpoint = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if len(override.Feeds) > 0 {
		base.Feeds = override.Feeds
	}

	base.Curation = mergeCuration(base.Curation, override.Curation)

	if override.Macro.BaseURL != "" || override.Macro.Country != "" || len(override.Macro.Metrics) > 0 {
		merged := base.Macro
		merged.Enabled = override.Macro.Enabled
		if override.Macro.BaseURL != "" {
			merged.BaseURL = override.Macro.BaseURL
		}
		if override.Macro.Country != "" {
			merged.Country = override.Macro.Country
		}
		if len(override.Macro.Metrics) > 0 {
			merged.Metrics = override.Macro.Metrics
		}
		base.Macro = merged
	} else if override.Macro.Enabled != base.Macro.Enabled {
		base.Macro.Enabled = override.Macro.Enabled
	}

	if override.Extraction.Enabled {
		base.Extraction.Enabled = true
	}
	if override.Extraction.ReaderEndpoint != "" {
		base.Extraction.ReaderEndpoint = override.Extraction.ReaderEndpoint
	}
	if override.Extraction.MaxPerRun > 0 {
		base.Extraction.MaxPerRun = override.Extraction.MaxPerRun
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Scheduler.Enabled {
		base.Scheduler.Enabled = true
	}
	if override.Scheduler.Interval != "" {
		base.Scheduler.Interval = override.Scheduler.Interval
	}

	if override.Output.Dir != "" {
		base.Output = override.Output
	}

	return base
}

func mergeCuration(base, override CurationConfig) CurationConfig {
	if override.LanguageMode != "" {
		base.LanguageMode = override.LanguageMode
	}
	if override.DefaultLanguage != "" {
		base.DefaultLanguage = override.DefaultLanguage
		base.FallbackWhenEmpty = override.FallbackWhenEmpty
	}
	if override.PreviewMode != "" {
		base.PreviewMode = override.PreviewMode
	}
	if override.PreviewMinChars > 0 {
		base.PreviewMinChars = override.PreviewMinChars
	}
	if override.PreviewMaxChars > 0 {
		base.PreviewMaxChars = override.PreviewMaxChars
	}
	if override.PreviewLooseMaxChars > 0 {
		base.PreviewLooseMaxChars = override.PreviewLooseMaxChars
	}
	if len(override.URLDenyPaths) > 0 {
		base.URLDenyPaths = override.URLDenyPaths
	}
	if len(override.URLDenyPrefixes) > 0 {
		base.URLDenyPrefixes = override.URLDenyPrefixes
	}
	if len(override.URLAllowPrefixes) > 0 {
		base.URLAllowPrefixes = override.URLAllowPrefixes
	}
	if override.URLMinSlugLength > 0 {
		base.URLMinSlugLength = override.URLMinSlugLength
	}
	if override.LedgerDisplayCap > 0 {
		base.LedgerDisplayCap = override.LedgerDisplayCap
	}
	if override.BriefBullets > 0 {
		base.BriefBullets = override.BriefBullets
	}
	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Feeds: []FeedConfig{
			{Name: "latest", Kind: "file", Path: "docs/data/latest.json"},
		},
		Curation: CurationConfig{
			LanguageMode:         "heuristic",
			DefaultLanguage:      "en",
			FallbackWhenEmpty:    true,
			PreviewMode:          "strict",
			PreviewMinChars:      80,
			PreviewMaxChars:      350,
			PreviewLooseMaxChars: 380,
			URLDenyPaths: []string{
				"", "/", "/en", "/es", "/news", "/rss", "/rss.xml",
				"/feed", "/feeds", "/home", "/en/news", "/en/news/",
			},
			URLDenyPrefixes: []string{
				"/rss", "/feed", "/feeds", "/topic/", "/topics/",
				"/category/", "/categories/", "/country/", "/countries/",
				"/about", "/search", "/sitemap",
			},
			URLAllowPrefixes: []string{
				"/publication", "/publications", "/report", "/reports",
				"/document", "/documents", "/press-release", "/press-releases",
				"/news/story", "/news/feature", "/resources", "/library",
			},
			URLMinSlugLength: 12,
			LedgerDisplayCap: 50,
			BriefBullets:     5,
		},
		Macro: MacroConfig{
			Enabled: false,
			BaseURL: "https://www.imf.org/external/datamapper/api/v1",
			Country: "VEN",
			Metrics: []MetricConfig{
				{Code: "NGDP_RPCH", Label: "Real GDP growth"},
				{Code: "NGDPD", Label: "GDP, current prices"},
				{Code: "NGDPDPC", Label: "GDP per capita"},
				{Code: "PCPIPCH", Label: "Inflation (avg)"},
				{Code: "LUR", Label: "Unemployment rate"},
				{Code: "BCA_NGDPD", Label: "Current account (% GDP)"},
				{Code: "GGXCNL_NGDP", Label: "Fiscal balance (% GDP)"},
				{Code: "GGXWDG_NGDP", Label: "Government debt (% GDP)"},
			},
		},
		Extraction: ExtractionConfig{
			Enabled:        false,
			ReaderEndpoint: "https://r.jina.ai",
			MaxPerRun:      8,
		},
		Database: DatabaseConfig{DSN: ""},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Scheduler: SchedulerConfig{Enabled: false, Interval: "6h"},
		Output:    OutputConfig{Dir: "docs/data"},
	}
}
