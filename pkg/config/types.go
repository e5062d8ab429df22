// Package config loads and validates the operator's startup
// configuration: listen address, auth key sets, and log format.
package config

import (
	"github.com/google/uuid"
)

// Config is the resolved, validated configuration the rest of the
// operator is constructed from.
type Config struct {
	configDir string

	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	GRPCPort  int    `yaml:"grpc_port"`
	LogFormat string `yaml:"log_format"`

	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig holds the four independent API-key sets spec.md's
// transport layer gates every endpoint against.
type AuthConfig struct {
	AdminAPIKeys      []uuid.UUID `yaml:"admin_api_keys"`
	AgentAPIKeys      []uuid.UUID `yaml:"agent_api_keys"`
	AutomationAPIKeys []uuid.UUID `yaml:"automation_api_keys"`
	DataAPIKeys       []uuid.UUID `yaml:"data_api_keys"`
}

// ConfigDir returns the directory configuration was loaded from.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// ConfigStats summarizes loaded configuration for startup logging.
type ConfigStats struct {
	AdminKeys      int
	AgentKeys      int
	AutomationKeys int
	DataKeys       int
}

// Stats returns configuration statistics for logging/monitoring.
func (c *Config) Stats() ConfigStats {
	return ConfigStats{
		AdminKeys:      len(c.Auth.AdminAPIKeys),
		AgentKeys:      len(c.Auth.AgentAPIKeys),
		AutomationKeys: len(c.Auth.AutomationAPIKeys),
		DataKeys:       len(c.Auth.DataAPIKeys),
	}
}

// HasAdminKey reports whether key belongs to the admin key set.
func (c *Config) HasAdminKey(key uuid.UUID) bool { return contains(c.Auth.AdminAPIKeys, key) }

// HasAgentKey reports whether key belongs to the agent key set.
func (c *Config) HasAgentKey(key uuid.UUID) bool { return contains(c.Auth.AgentAPIKeys, key) }

// HasAutomationKey reports whether key belongs to the automation key set.
func (c *Config) HasAutomationKey(key uuid.UUID) bool {
	return contains(c.Auth.AutomationAPIKeys, key)
}

// HasDataKey reports whether key belongs to the data key set.
func (c *Config) HasDataKey(key uuid.UUID) bool { return contains(c.Auth.DataAPIKeys, key) }

func contains(keys []uuid.UUID, key uuid.UUID) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
