package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dario.cat/mergo"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// operatorYAMLConfig is the raw shape of operator.yaml.
type operatorYAMLConfig struct {
	Host      string      `yaml:"host"`
	Port      int         `yaml:"port"`
	GRPCPort  int         `yaml:"grpc_port"`
	LogFormat string      `yaml:"log_format"`
	Auth      *AuthConfig `yaml:"auth"`
}

// Initialize loads, overrides, and validates configuration, returning
// a ready-to-use Config. This is the primary entry point.
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("initializing configuration")

	cfg, err := load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := NewValidator(cfg).ValidateAll(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	stats := cfg.Stats()
	log.Info("configuration initialized",
		"admin_keys", stats.AdminKeys,
		"agent_keys", stats.AgentKeys,
		"automation_keys", stats.AutomationKeys,
		"data_keys", stats.DataKeys,
		"host", cfg.Host, "port", cfg.Port)

	return cfg, nil
}

func load(configDir string) (*Config, error) {
	path := filepath.Join(configDir, "operator.yaml")

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case os.IsNotExist(err):
		// No file on disk is not fatal: defaults (plus env overrides)
		// are a complete configuration on their own.
		return DefaultConfig(), nil
	default:
		return nil, NewLoadError(path, err)
	}

	data = ExpandEnv(data)

	var raw operatorYAMLConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, NewLoadError(path, fmt.Errorf("%w: %v", ErrInvalidYAML, err))
	}

	cfg := DefaultConfig()
	cfg.configDir = configDir

	loaded := &Config{
		Host:      raw.Host,
		Port:      raw.Port,
		GRPCPort:  raw.GRPCPort,
		LogFormat: raw.LogFormat,
	}
	if raw.Auth != nil {
		loaded.Auth = *raw.Auth
	}

	if err := mergo.Merge(cfg, loaded, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge configuration: %w", err)
	}
	cfg.configDir = configDir

	return cfg, nil
}

// applyEnvOverrides applies OPERATOR_* environment variables over the
// loaded configuration, taking precedence over both the YAML file and
// the compiled-in defaults.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPERATOR_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("OPERATOR_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("OPERATOR_GRPC_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.GRPCPort = port
		}
	}
	if v := os.Getenv("OPERATOR_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("OPERATOR_ADMIN_API_KEYS"); v != "" {
		cfg.Auth.AdminAPIKeys = append(cfg.Auth.AdminAPIKeys, parseUUIDList(v)...)
	}
	if v := os.Getenv("OPERATOR_AGENT_API_KEYS"); v != "" {
		cfg.Auth.AgentAPIKeys = append(cfg.Auth.AgentAPIKeys, parseUUIDList(v)...)
	}
	if v := os.Getenv("OPERATOR_AUTOMATION_API_KEYS"); v != "" {
		cfg.Auth.AutomationAPIKeys = append(cfg.Auth.AutomationAPIKeys, parseUUIDList(v)...)
	}
	if v := os.Getenv("OPERATOR_DATA_API_KEYS"); v != "" {
		cfg.Auth.DataAPIKeys = append(cfg.Auth.DataAPIKeys, parseUUIDList(v)...)
	}
}

func parseUUIDList(raw string) []uuid.UUID {
	var out []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		if id, err := uuid.Parse(strings.TrimSpace(part)); err == nil {
			out = append(out, id)
		}
	}
	return out
}
