package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// source types
const (
	SourceTypeFeed   = "feed"
	SourceTypeSearch = "search"
	SourceTypeJSON   = "json"
)

// search query modes
const (
	QueryModeAll    = "all"
	QueryModeRotate = "rotate"
)

// affiliate minter modes
const (
	AffiliateModeNone = "none"
	AffiliateModeTag  = "tag"
	AffiliateModeHTTP = "http"
)

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server" jsonschema:"description=HTTP command channel configuration"`
	Database   DatabaseConfig   `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Schedule   ScheduleConfig   `yaml:"schedule" json:"schedule" jsonschema:"description=Cycle scheduler configuration"`
	Scoring    ScoringConfig    `yaml:"scoring" json:"scoring" jsonschema:"description=Scoring weights and publish thresholds"`
	Categories CategoriesConfig `yaml:"categories" json:"categories" jsonschema:"description=Per-category quotas for one cycle"`
	Lists      ListsConfig      `yaml:"lists" json:"lists" jsonschema:"description=Hot-reloaded blacklist and hot-term files"`
	Sources    []SourceConfig   `yaml:"sources" json:"sources" jsonschema:"description=Listing sources"`
	Trends     TrendsConfig     `yaml:"trends" json:"trends" jsonschema:"description=Trending terms provider"`
	Affiliate  AffiliateConfig  `yaml:"affiliate" json:"affiliate" jsonschema:"description=Affiliate link minting"`
	Telegram   TelegramConfig   `yaml:"telegram" json:"telegram" jsonschema:"description=Telegram notifier and command listener"`
	LLM        LLMConfig        `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for deal headlines"`
}

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Listen   string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	Password string        `yaml:"password" json:"password" jsonschema:"description=Basic auth password for the API, disabled if empty"`
	BaseURL  string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for the RSS feed"`
	RSSLimit int           `yaml:"rss_limit" json:"rss_limit" jsonschema:"default=50,minimum=1,description=Published deals in the RSS feed"`
}

// DatabaseConfig holds sqlite connection settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:dealscope.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ScheduleConfig holds cycle loop settings
type ScheduleConfig struct {
	Interval        time.Duration `yaml:"interval" json:"interval" jsonschema:"default=30m,description=Pause between cycles"`
	Cooldown        time.Duration `yaml:"cooldown" json:"cooldown" jsonschema:"default=1m,description=Pause after a failed cycle"`
	MaxWorkers      int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,description=Maximum concurrent source fetches"`
	PublishDelay    time.Duration `yaml:"publish_delay" json:"publish_delay" jsonschema:"default=5s,description=Minimum delay between outbound messages"`
	ReportEvery     int           `yaml:"report_every" json:"report_every" jsonschema:"default=10,description=Send status report every N cycles, 0 disables"`
	Retention       time.Duration `yaml:"retention" json:"retention" jsonschema:"default=360h,description=Seen items older than this are purged"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval" jsonschema:"default=24h,description=How often to run the retention sweep"`
	Autonomous      bool          `yaml:"autonomous" json:"autonomous" jsonschema:"default=false,description=Initial mode when no mode is stored yet"`
}

// ScoringConfig holds score weights and thresholds
type ScoringConfig struct {
	Base           *float64 `yaml:"base" json:"base" jsonschema:"default=20,description=Base credit for every listing"`
	VolumeBonus    *float64 `yaml:"volume_bonus" json:"volume_bonus" jsonschema:"default=30,description=Bonus for volume-category origin"`
	TrendBonus     *float64 `yaml:"trend_bonus" json:"trend_bonus" jsonschema:"default=45,description=Bonus for a trending term match"`
	DiscountWeight *float64 `yaml:"discount_weight" json:"discount_weight" jsonschema:"default=0.5,description=Points per discount percent"`
	DiscountCap    *float64 `yaml:"discount_cap" json:"discount_cap" jsonschema:"default=30,description=Maximum points from discount"`
	MinPublish     float64  `yaml:"min_publish" json:"min_publish" jsonschema:"default=30,description=Listings scoring below are discarded"`
	MinAutonomous  float64  `yaml:"min_autonomous" json:"min_autonomous" jsonschema:"default=60,description=Minimum score to publish without review"`
}

// CategoriesConfig holds the ordered category keyword table
type CategoriesConfig struct {
	DefaultMax int              `yaml:"default_max" json:"default_max" jsonschema:"default=5,description=Quota for unmatched listings (other)"`
	Items      []CategoryConfig `yaml:"items" json:"items" jsonschema:"description=Categories in match order"`
}

// CategoryConfig is one category with its keywords and quota
type CategoryConfig struct {
	Name     string   `yaml:"name" json:"name" jsonschema:"required,description=Category label"`
	Keywords []string `yaml:"keywords" json:"keywords" jsonschema:"description=Lower-case title keywords"`
	Max      int      `yaml:"max" json:"max" jsonschema:"minimum=0,description=Maximum listings per cycle"`
}

// ListsConfig holds paths of the line-delimited list files
type ListsConfig struct {
	Blacklist string `yaml:"blacklist" json:"blacklist" jsonschema:"default=blacklist.txt,description=Blacklist terms file"`
	HotTerms  string `yaml:"hot_terms" json:"hot_terms" jsonschema:"default=hot_terms.txt,description=Hot search terms file"`
}

// SourceConfig is a single listing source
type SourceConfig struct {
	Name        string            `yaml:"name" json:"name" jsonschema:"description=Source name, defaults to URL"`
	Type        string            `yaml:"type" json:"type" jsonschema:"enum=feed,enum=search,enum=json,default=feed,description=Source adapter"`
	URL         string            `yaml:"url" json:"url" jsonschema:"required,description=Feed URL or URL template with {query}"`
	Origin      string            `yaml:"origin" json:"origin" jsonschema:"enum=volume-category,enum=trend-search,enum=feed,description=Origin tag for scoring"`
	Store       string            `yaml:"store" json:"store" jsonschema:"description=Marketplace label, detected from URLs if empty"`
	Every       int               `yaml:"every" json:"every" jsonschema:"default=1,minimum=1,description=Run every N cycles"`
	MaxResults  int               `yaml:"max_results" json:"max_results" jsonschema:"default=20,description=Maximum listings per fetch"`
	Delay       time.Duration     `yaml:"delay" json:"delay" jsonschema:"default=2s,description=Delay between consecutive queries"`
	Timeout     time.Duration     `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Timeout per request"`
	MinDiscount float64           `yaml:"min_discount" json:"min_discount" jsonschema:"description=Drop listings with a smaller best discount"`
	QueryMode   string            `yaml:"query_mode" json:"query_mode" jsonschema:"enum=all,enum=rotate,default=all,description=How search sources pick hot terms"`
	Queries     []string          `yaml:"queries" json:"queries" jsonschema:"description=Static queries used when no hot terms are set"`
	Fields      map[string]string `yaml:"fields" json:"fields" jsonschema:"description=JSON field mapping for json sources"`
	Headers     map[string]string `yaml:"headers" json:"headers" jsonschema:"description=Extra request headers"`
}

// TrendsConfig holds trending terms provider settings
type TrendsConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable trending terms"`
	URL       string        `yaml:"url" json:"url" jsonschema:"description=Trends RSS feed URL"`
	TTL       time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=6h,description=Cache lifetime"`
	CacheFile string        `yaml:"cache_file" json:"cache_file" jsonschema:"default=trends_cache.json,description=Cache file path"`
	Category  string        `yaml:"category" json:"category" jsonschema:"description=Category tag assigned to fetched terms"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Fetch timeout"`
	Terms     []string      `yaml:"terms" json:"terms" jsonschema:"description=Fixed terms used when no url is set"`
}

// AffiliateConfig holds link minting settings
type AffiliateConfig struct {
	Mode     string            `yaml:"mode" json:"mode" jsonschema:"enum=none,enum=tag,enum=http,default=none,description=Link minter"`
	Tags     map[string]string `yaml:"tags" json:"tags" jsonschema:"description=Tag value per store key (amazon, mercadolivre, shopee)"`
	Endpoint string            `yaml:"endpoint" json:"endpoint" jsonschema:"description=Shortener endpoint for http mode"`
	APIKey   string            `yaml:"api_key" json:"api_key" jsonschema:"description=Shortener API key"`
	Timeout  time.Duration     `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Mint request timeout"`
}

// TelegramConfig holds bot settings
type TelegramConfig struct {
	Token       string        `yaml:"token" json:"token" jsonschema:"description=Bot token (can use environment variable)"`
	APIURL      string        `yaml:"api_url" json:"api_url" jsonschema:"default=https://api.telegram.org,description=Bot API base URL"`
	ChannelID   string        `yaml:"channel_id" json:"channel_id" jsonschema:"description=Channel for published deals"`
	AdminID     int64         `yaml:"admin_id" json:"admin_id" jsonschema:"description=Reviewer chat and the only user allowed to send commands"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Send timeout"`
	PollTimeout time.Duration `yaml:"poll_timeout" json:"poll_timeout" jsonschema:"default=30s,description=Long poll timeout for commands"`
	Listen      bool          `yaml:"listen" json:"listen" jsonschema:"default=true,description=Accept commands from the admin chat"`
}

// LLMConfig holds LLM configuration for headline generation
type LLMConfig struct {
	Enabled      bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Generate headlines with the LLM"`
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=60,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=20s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt override"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Config{Telegram: TelegramConfig{Listen: true}}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}
	if c.Server.RSSLimit == 0 {
		c.Server.RSSLimit = 50
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:dealscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// schedule
	if c.Schedule.Interval == 0 {
		c.Schedule.Interval = 30 * time.Minute
	}
	if c.Schedule.Cooldown == 0 {
		c.Schedule.Cooldown = time.Minute
	}
	if c.Schedule.MaxWorkers == 0 {
		c.Schedule.MaxWorkers = 5
	}
	if c.Schedule.PublishDelay == 0 {
		c.Schedule.PublishDelay = 5 * time.Second
	}
	if c.Schedule.Retention == 0 {
		c.Schedule.Retention = 15 * 24 * time.Hour
	}
	if c.Schedule.CleanupInterval == 0 {
		c.Schedule.CleanupInterval = 24 * time.Hour
	}

	// scoring
	// weights keep an explicit zero, only absent ones get defaults
	setFloat(&c.Scoring.Base, 20)
	setFloat(&c.Scoring.VolumeBonus, 30)
	setFloat(&c.Scoring.TrendBonus, 45)
	setFloat(&c.Scoring.DiscountWeight, 0.5)
	setFloat(&c.Scoring.DiscountCap, 30)
	if c.Scoring.MinPublish == 0 {
		c.Scoring.MinPublish = 30
	}
	if c.Scoring.MinAutonomous == 0 {
		c.Scoring.MinAutonomous = 60
	}

	// categories
	if c.Categories.DefaultMax == 0 {
		c.Categories.DefaultMax = 5
	}
	for i := range c.Categories.Items {
		for j, kw := range c.Categories.Items[i].Keywords {
			c.Categories.Items[i].Keywords[j] = strings.ToLower(kw)
		}
	}

	// lists
	if c.Lists.Blacklist == "" {
		c.Lists.Blacklist = "blacklist.txt"
	}
	if c.Lists.HotTerms == "" {
		c.Lists.HotTerms = "hot_terms.txt"
	}

	// sources
	for i := range c.Sources {
		s := &c.Sources[i]
		if s.Type == "" {
			s.Type = SourceTypeFeed
		}
		if s.Name == "" {
			s.Name = s.URL
		}
		if s.Origin == "" {
			switch s.Type {
			case SourceTypeSearch:
				s.Origin = "trend-search"
			case SourceTypeJSON:
				s.Origin = "volume-category"
			default:
				s.Origin = "feed"
			}
		}
		if s.Every == 0 {
			s.Every = 1
		}
		if s.MaxResults == 0 {
			s.MaxResults = 20
		}
		if s.Delay == 0 && s.Type != SourceTypeFeed {
			s.Delay = 2 * time.Second
		}
		if s.Timeout == 0 {
			s.Timeout = 30 * time.Second
		}
		if s.MinDiscount == 0 && s.Type == SourceTypeFeed {
			s.MinDiscount = 20
		}
		if s.QueryMode == "" {
			s.QueryMode = QueryModeAll
		}
	}

	// trends
	if c.Trends.TTL == 0 {
		c.Trends.TTL = 6 * time.Hour
	}
	if c.Trends.CacheFile == "" {
		c.Trends.CacheFile = "trends_cache.json"
	}
	if c.Trends.Timeout == 0 {
		c.Trends.Timeout = 30 * time.Second
	}

	// affiliate
	if c.Affiliate.Mode == "" {
		c.Affiliate.Mode = AffiliateModeNone
	}
	if c.Affiliate.Timeout == 0 {
		c.Affiliate.Timeout = 15 * time.Second
	}

	// telegram
	if c.Telegram.APIURL == "" {
		c.Telegram.APIURL = "https://api.telegram.org"
	}
	if c.Telegram.Timeout == 0 {
		c.Telegram.Timeout = 30 * time.Second
	}
	if c.Telegram.PollTimeout == 0 {
		c.Telegram.PollTimeout = 30 * time.Second
	}

	// llm
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 60
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 20 * time.Second
	}
}

func setFloat(v **float64, def float64) {
	if *v == nil {
		*v = &def
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Schedule.Interval < time.Second {
		return fmt.Errorf("schedule.interval must be at least 1 second")
	}
	if cfg.Schedule.MaxWorkers < 1 {
		return fmt.Errorf("schedule.max_workers must be at least 1")
	}
	for name, w := range map[string]*float64{"base": cfg.Scoring.Base, "volume_bonus": cfg.Scoring.VolumeBonus,
		"trend_bonus": cfg.Scoring.TrendBonus, "discount_weight": cfg.Scoring.DiscountWeight, "discount_cap": cfg.Scoring.DiscountCap} {
		if w != nil && *w < 0 {
			return fmt.Errorf("scoring.%s must be non-negative", name)
		}
	}
	if cfg.Scoring.MinAutonomous < cfg.Scoring.MinPublish {
		return fmt.Errorf("scoring.min_autonomous must not be below scoring.min_publish")
	}
	if cfg.Categories.DefaultMax < 0 {
		return fmt.Errorf("categories.default_max must be non-negative")
	}
	for _, c := range cfg.Categories.Items {
		if c.Name == "" {
			return fmt.Errorf("category name is required")
		}
		if c.Max < 0 {
			return fmt.Errorf("category %s: max must be non-negative", c.Name)
		}
	}

	names := make(map[string]bool, len(cfg.Sources))
	for _, s := range cfg.Sources {
		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}
		if names[s.Name] {
			return fmt.Errorf("source %q: duplicate name", s.Name)
		}
		names[s.Name] = true
		switch s.Type {
		case SourceTypeFeed, SourceTypeJSON:
		case SourceTypeSearch:
			if !strings.Contains(s.URL, "{query}") {
				return fmt.Errorf("source %q: search url must contain {query}", s.Name)
			}
		default:
			return fmt.Errorf("source %q: unknown type %q", s.Name, s.Type)
		}
		if s.QueryMode != QueryModeAll && s.QueryMode != QueryModeRotate {
			return fmt.Errorf("source %q: unknown query_mode %q", s.Name, s.QueryMode)
		}
	}

	if cfg.Trends.Enabled && cfg.Trends.URL == "" && len(cfg.Trends.Terms) == 0 {
		return fmt.Errorf("trends.url or trends.terms is required when trends are enabled")
	}

	switch cfg.Affiliate.Mode {
	case AffiliateModeNone, AffiliateModeTag:
	case AffiliateModeHTTP:
		if cfg.Affiliate.Endpoint == "" {
			return fmt.Errorf("affiliate.endpoint is required in http mode")
		}
	default:
		return fmt.Errorf("unknown affiliate.mode %q", cfg.Affiliate.Mode)
	}

	if cfg.LLM.Enabled && cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required when llm is enabled")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetRSSConfig returns the base url and the item limit of the published deals feed
func (c *Config) GetRSSConfig() (baseURL string, limit int) {
	return c.Server.BaseURL, c.Server.RSSLimit
}

// GetAuthPassword returns the api basic auth password, empty disables auth
func (c *Config) GetAuthPassword() string {
	return c.Server.Password
}

// TelegramEnabled reports if a token and at least one target are set
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.Token != "" && (c.Telegram.ChannelID != "" || c.Telegram.AdminID != 0)
}
