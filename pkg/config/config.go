package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gorhill/cronexpr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`
	LLM      LLMConfig      `yaml:"llm" json:"llm" jsonschema:"description=LLM judge configuration"`
	Feed     FeedConfig     `yaml:"feed" json:"feed" jsonschema:"description=News feed source configuration"`
	Content  ContentConfig  `yaml:"content" json:"content" jsonschema:"description=Content resolution configuration"`
	Pipeline PipelineConfig `yaml:"pipeline" json:"pipeline" jsonschema:"description=Vetting pipeline configuration"`
	Gate     GateConfig     `yaml:"gate" json:"gate" jsonschema:"description=Report threshold gate configuration"`
	Report   ReportConfig   `yaml:"report" json:"report" jsonschema:"description=Report synthesis configuration"`
	SMTP     SMTPConfig     `yaml:"smtp" json:"smtp" jsonschema:"description=Report delivery over SMTP (optional)"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=5m,description=HTTP server timeout covering on-demand refresh"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:topicwatch.db?cache=shared&mode=rwc&_txlock=immediate&_pragma=foreign_keys(1),description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ScheduleConfig holds batch scheduler settings
type ScheduleConfig struct {
	Cron           string        `yaml:"cron" json:"cron" jsonschema:"default=0 * * * *,description=Cron expression for refresh cycles"`
	MaxParallel    int           `yaml:"max_parallel" json:"max_parallel" jsonschema:"default=1,minimum=1,description=Topics processed in parallel"`
	DatastorePause time.Duration `yaml:"datastore_pause" json:"datastore_pause" jsonschema:"default=5s,description=Pause after a datastore connectivity failure"`
}

// LLMConfig holds LLM judge configuration
type LLMConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=OpenAI-compatible API endpoint"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"required,description=Model name (e.g. meta-llama/llama-4-scout)"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=4096,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=2m,description=Request timeout"`
	Attempts    int           `yaml:"attempts" json:"attempts" jsonschema:"default=3,minimum=1,description=Attempts when a structured action is required"`
}

// FeedConfig holds feed harvester settings
type FeedConfig struct {
	SearchURL    string        `yaml:"search_url" json:"search_url" jsonschema:"default=https://news.google.com/rss/search?q={query}+when:{hours}h,description=Search feed URL template"`
	Limit        int           `yaml:"limit" json:"limit" jsonschema:"default=15,minimum=1,description=Maximum harvested items per search"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Feed request timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; Topicwatch/1.0),description=User agent for feed requests"`
	AllowUpdated bool          `yaml:"allow_updated" json:"allow_updated" jsonschema:"default=false,description=Use updated time when publish time is missing"`
}

// ContentConfig holds content resolver settings
type ContentConfig struct {
	NavigateTimeout time.Duration `yaml:"navigate_timeout" json:"navigate_timeout" jsonschema:"default=7s,description=Page navigation timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" json:"idle_timeout" jsonschema:"default=5s,description=Best-effort network quiescence wait"`
	ExtractTimeout  time.Duration `yaml:"extract_timeout" json:"extract_timeout" jsonschema:"default=30s,description=Article download timeout"`
	MaxChars        int           `yaml:"max_chars" json:"max_chars" jsonschema:"default=3000,description=Extracted text is truncated to this many characters"`
	MinChars        int           `yaml:"min_chars" json:"min_chars" jsonschema:"default=200,description=Shorter text is treated as a stub page"`
	UserAgent       string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; Topicwatch/1.0),description=User agent for article requests"`
	ChromePath      string        `yaml:"chrome_path" json:"chrome_path" jsonschema:"description=Chrome executable path (optional)"`
	Headful         bool          `yaml:"headful" json:"headful" jsonschema:"default=false,description=Run the browser with a window (debugging)"`
}

// PipelineConfig holds vetting pipeline settings
type PipelineConfig struct {
	MaxAccepted int     `yaml:"max_accepted" json:"max_accepted" jsonschema:"default=10,minimum=1,description=Maximum items accepted by the fine classifier per cycle"`
	MatchCutoff float64 `yaml:"match_cutoff" json:"match_cutoff" jsonschema:"default=0.5,minimum=0,maximum=1,description=Minimum title similarity ratio"`
}

// GateConfig holds threshold gate settings
type GateConfig struct {
	CadenceGrace time.Duration `yaml:"cadence_grace" json:"cadence_grace" jsonschema:"default=0s,description=Grace window subtracted from the contact cadence"`
	HoldPolicy   string        `yaml:"hold_policy" json:"hold_policy" jsonschema:"default=discard,enum=discard,enum=accumulate,description=What to do with new items when sources suffice but the cadence has not elapsed"`
}

// ReportConfig holds report synthesis settings
type ReportConfig struct {
	MinWords int `yaml:"min_words" json:"min_words" jsonschema:"default=750,description=Minimum report length in words"`
	Attempts int `yaml:"attempts" json:"attempts" jsonschema:"default=3,minimum=1,description=Generation attempts when the report breaks the citation contract"`
}

// SMTPConfig holds report delivery settings
type SMTPConfig struct {
	Host     string `yaml:"host" json:"host" jsonschema:"description=SMTP host (reports are only logged when empty)"`
	Port     int    `yaml:"port" json:"port" jsonschema:"default=587,description=SMTP port"`
	Username string `yaml:"username" json:"username" jsonschema:"description=SMTP username"`
	Password string `yaml:"password" json:"password" jsonschema:"description=SMTP password"`
	From     string `yaml:"from" json:"from" jsonschema:"description=Sender address"`
}

// hold policies
const (
	HoldDiscard    = "discard"
	HoldAccumulate = "accumulate"
)

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	SetDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// SetDefaults fills zero values with defaults
func SetDefaults(cfg *Config) {
	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 5 * time.Minute
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:topicwatch.db?cache=shared&mode=rwc&_txlock=immediate&_pragma=foreign_keys(1)"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for schedule
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 * * * *"
	}
	if cfg.Schedule.MaxParallel == 0 {
		cfg.Schedule.MaxParallel = 1
	}
	if cfg.Schedule.DatastorePause == 0 {
		cfg.Schedule.DatastorePause = 5 * time.Second
	}

	// set defaults for LLM
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 4096
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 2 * time.Minute
	}
	if cfg.LLM.Attempts == 0 {
		cfg.LLM.Attempts = 3
	}

	// set defaults for feed
	if cfg.Feed.SearchURL == "" {
		cfg.Feed.SearchURL = "https://news.google.com/rss/search?q={query}+when:{hours}h"
	}
	if cfg.Feed.Limit == 0 {
		cfg.Feed.Limit = 15
	}
	if cfg.Feed.Timeout == 0 {
		cfg.Feed.Timeout = 30 * time.Second
	}
	if cfg.Feed.UserAgent == "" {
		cfg.Feed.UserAgent = "Mozilla/5.0 (compatible; Topicwatch/1.0)"
	}

	// set defaults for content
	if cfg.Content.NavigateTimeout == 0 {
		cfg.Content.NavigateTimeout = 7 * time.Second
	}
	if cfg.Content.IdleTimeout == 0 {
		cfg.Content.IdleTimeout = 5 * time.Second
	}
	if cfg.Content.ExtractTimeout == 0 {
		cfg.Content.ExtractTimeout = 30 * time.Second
	}
	if cfg.Content.MaxChars == 0 {
		cfg.Content.MaxChars = 3000
	}
	if cfg.Content.MinChars == 0 {
		cfg.Content.MinChars = 200
	}
	if cfg.Content.UserAgent == "" {
		cfg.Content.UserAgent = "Mozilla/5.0 (compatible; Topicwatch/1.0)"
	}

	// set defaults for pipeline
	if cfg.Pipeline.MaxAccepted == 0 {
		cfg.Pipeline.MaxAccepted = 10
	}
	if cfg.Pipeline.MatchCutoff == 0 {
		cfg.Pipeline.MatchCutoff = 0.5
	}

	// set defaults for gate
	if cfg.Gate.HoldPolicy == "" {
		cfg.Gate.HoldPolicy = HoldDiscard
	}

	// set defaults for report
	if cfg.Report.MinWords == 0 {
		cfg.Report.MinWords = 750
	}
	if cfg.Report.Attempts == 0 {
		cfg.Report.Attempts = 3
	}

	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate LLM config
	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.Attempts < 1 {
		return fmt.Errorf("llm.attempts must be at least 1")
	}

	if _, err := cronexpr.Parse(cfg.Schedule.Cron); err != nil {
		return fmt.Errorf("schedule.cron is invalid: %w", err)
	}
	if cfg.Schedule.MaxParallel < 1 {
		return fmt.Errorf("schedule.max_parallel must be at least 1")
	}

	if cfg.Feed.Limit < 1 {
		return fmt.Errorf("feed.limit must be at least 1")
	}

	if cfg.Content.MinChars < 0 || cfg.Content.MaxChars < cfg.Content.MinChars {
		return fmt.Errorf("content.max_chars must be greater or equal to content.min_chars")
	}
	if cfg.Content.NavigateTimeout < time.Second {
		return fmt.Errorf("content.navigate_timeout must be at least 1 second")
	}

	if cfg.Pipeline.MaxAccepted < 1 {
		return fmt.Errorf("pipeline.max_accepted must be at least 1")
	}
	if cfg.Pipeline.MatchCutoff < 0 || cfg.Pipeline.MatchCutoff > 1 {
		return fmt.Errorf("pipeline.match_cutoff must be between 0 and 1")
	}

	if cfg.Gate.HoldPolicy != HoldDiscard && cfg.Gate.HoldPolicy != HoldAccumulate {
		return fmt.Errorf("gate.hold_policy must be %q or %q", HoldDiscard, HoldAccumulate)
	}
	if cfg.Gate.CadenceGrace < 0 {
		return fmt.Errorf("gate.cadence_grace must be non-negative")
	}

	if cfg.Report.Attempts < 1 {
		return fmt.Errorf("report.attempts must be at least 1")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
