package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configPath := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
schedule:
  interval: 10m
  publish_delay: 3s
categories:
  default_max: 2
  items:
    - name: electronics
      keywords: [Fone, notebook]
      max: 3
sources:
  - name: ml
    type: json
    url: https://api.example.com/search
    every: 2
  - name: promo
    url: https://example.com/feed.xml
  - name: search
    type: search
    url: https://example.com/search?q={query}
    query_mode: rotate
`)
		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 10*time.Minute, cfg.Schedule.Interval)
		assert.Equal(t, 3*time.Second, cfg.Schedule.PublishDelay)

		require.Len(t, cfg.Categories.Items, 1)
		assert.Equal(t, []string{"fone", "notebook"}, cfg.Categories.Items[0].Keywords, "keywords lower-cased")
		assert.Equal(t, 2, cfg.Categories.DefaultMax)

		require.Len(t, cfg.Sources, 3)
		assert.Equal(t, "volume-category", cfg.Sources[0].Origin)
		assert.Equal(t, 2, cfg.Sources[0].Every)
		assert.Equal(t, 2*time.Second, cfg.Sources[0].Delay)
		assert.InDelta(t, 0, cfg.Sources[0].MinDiscount, 0.001)

		assert.Equal(t, "feed", cfg.Sources[1].Origin)
		assert.Equal(t, 1, cfg.Sources[1].Every)
		assert.InDelta(t, 20, cfg.Sources[1].MinDiscount, 0.001, "feeds default to 20% min discount")
		assert.Equal(t, time.Duration(0), cfg.Sources[1].Delay)

		assert.Equal(t, "trend-search", cfg.Sources[2].Origin)
		assert.Equal(t, QueryModeRotate, cfg.Sources[2].QueryMode)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "sources: []\n"))
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 50, cfg.Server.RSSLimit)
		assert.Contains(t, cfg.Database.DSN, "dealscope.db")
		assert.Equal(t, 30*time.Minute, cfg.Schedule.Interval)
		assert.Equal(t, 5*time.Second, cfg.Schedule.PublishDelay)
		assert.Equal(t, 15*24*time.Hour, cfg.Schedule.Retention)
		assert.InDelta(t, 20, *cfg.Scoring.Base, 0.001)
		assert.InDelta(t, 30, *cfg.Scoring.VolumeBonus, 0.001)
		assert.InDelta(t, 45, *cfg.Scoring.TrendBonus, 0.001)
		assert.InDelta(t, 0.5, *cfg.Scoring.DiscountWeight, 0.001)
		assert.InDelta(t, 30, *cfg.Scoring.DiscountCap, 0.001)
		assert.InDelta(t, 30, cfg.Scoring.MinPublish, 0.001)
		assert.InDelta(t, 60, cfg.Scoring.MinAutonomous, 0.001)
		assert.Equal(t, 6*time.Hour, cfg.Trends.TTL)
		assert.Equal(t, AffiliateModeNone, cfg.Affiliate.Mode)
		assert.Equal(t, "https://api.telegram.org", cfg.Telegram.APIURL)
		assert.True(t, cfg.Telegram.Listen)
		assert.False(t, cfg.TelegramEnabled())
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("DEALSCOPE_TEST_TOKEN", "123:abc")
		cfg, err := Load(writeConfig(t, "telegram:\n  token: ${DEALSCOPE_TEST_TOKEN}\n  channel_id: \"@deals\"\n"))
		require.NoError(t, err)
		assert.Equal(t, "123:abc", cfg.Telegram.Token)
		assert.True(t, cfg.TelegramEnabled())
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "invalid yaml content\n  with bad indentation\n    and no structure\n"))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "search without placeholder", content: "sources:\n  - type: search\n    url: https://example.com/s\n",
			errMsg: "must contain {query}"},
		{name: "unknown source type", content: "sources:\n  - type: scraper\n    url: https://example.com\n",
			errMsg: "unknown type"},
		{name: "duplicate source", content: "sources:\n  - name: a\n    url: https://a.com\n  - name: a\n    url: https://b.com\n",
			errMsg: "duplicate name"},
		{name: "missing url", content: "sources:\n  - name: a\n", errMsg: "url is required"},
		{name: "bad query mode", content: "sources:\n  - url: https://a.com\n    query_mode: random\n",
			errMsg: "unknown query_mode"},
		{name: "thresholds inverted", content: "scoring:\n  min_publish: 70\n  min_autonomous: 50\n",
			errMsg: "min_autonomous"},
		{name: "trends without url", content: "trends:\n  enabled: true\n", errMsg: "trends.url"},
		{name: "http minter without endpoint", content: "affiliate:\n  mode: http\n", errMsg: "affiliate.endpoint"},
		{name: "unknown minter", content: "affiliate:\n  mode: magic\n", errMsg: "unknown affiliate.mode"},
		{name: "llm without endpoint", content: "llm:\n  enabled: true\n", errMsg: "llm.endpoint"},
		{name: "negative category max", content: "categories:\n  items:\n    - name: x\n      max: -1\n",
			errMsg: "max must be non-negative"},
		{name: "server timeout", content: "server:\n  timeout: 10ms\n", errMsg: "server timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_ZeroWeights(t *testing.T) {
	cfg, err := Load(writeConfig(t, "scoring:\n  volume_bonus: 0\n  trend_bonus: 0\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Scoring.VolumeBonus)
	assert.InDelta(t, 0, *cfg.Scoring.VolumeBonus, 0.001)
	assert.InDelta(t, 0, *cfg.Scoring.TrendBonus, 0.001)
	assert.InDelta(t, 20, *cfg.Scoring.Base, 0.001, "absent weight gets the default")

	_, err = Load(writeConfig(t, "scoring:\n  discount_cap: -5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scoring.discount_cap must be non-negative")
}

func TestLoad_TrendsTerms(t *testing.T) {
	cfg, err := Load(writeConfig(t, "trends:\n  enabled: true\n  terms: [air fryer, kindle]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"air fryer", "kindle"}, cfg.Trends.Terms)
	assert.Empty(t, cfg.Trends.URL)
}

func TestLoad_Example(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	cfg, err := Load("../../config.example.yml")
	require.NoError(t, err)
	require.NoError(t, VerifyAgainstEmbeddedSchema(cfg))

	assert.Len(t, cfg.Sources, 4)
	assert.Equal(t, QueryModeRotate, cfg.Sources[3].QueryMode)
	assert.Equal(t, QueryModeAll, cfg.Sources[0].QueryMode)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, AffiliateModeTag, cfg.Affiliate.Mode)
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Listen: ":9090", Timeout: 45 * time.Second, Password: "secret",
		BaseURL: "https://deals.example.com", RSSLimit: 20}}
	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)

	baseURL, limit := cfg.GetRSSConfig()
	assert.Equal(t, "https://deals.example.com", baseURL)
	assert.Equal(t, 20, limit)
	assert.Equal(t, "secret", cfg.GetAuthPassword())
}
