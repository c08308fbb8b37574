package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	return verify(cfg, []byte(embeddedSchema))
}

// VerifyAgainstSchema validates the config against the JSON schema from file
func VerifyAgainstSchema(cfg *Config, schemaPath string) error {
	schemaData, err := os.ReadFile(schemaPath) //nolint:gosec // schema path is controlled by us
	if err != nil {
		return fmt.Errorf("read schema file: %w", err)
	}
	return verify(cfg, schemaData)
}

func verify(cfg *Config, schemaData []byte) error {
	var schema jsonschema.Schema
	if err := json.Unmarshal(schemaData, &schema); err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	// convert config to JSON for key comparison
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]json.RawMessage
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// every section of the config must be known to the schema
	root, ok := schema.Definitions["Config"]
	if !ok || root.Properties == nil {
		return fmt.Errorf("schema has no Config definition")
	}
	var unknown []string
	for key := range configMap {
		if _, found := root.Properties.Get(key); !found {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("schema is stale, unknown sections %v", unknown)
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	for _, s := range cfg.Sources {
		if s.URL == "" {
			return fmt.Errorf("sources.url is required")
		}
		if s.Every < 1 {
			return fmt.Errorf("sources.every must be at least 1 for %s", s.Name)
		}
	}
	if cfg.Affiliate.Mode == AffiliateModeHTTP && cfg.Affiliate.Endpoint == "" {
		return fmt.Errorf("affiliate.endpoint is required when mode is http")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
