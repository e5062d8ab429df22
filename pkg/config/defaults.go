package config

// DefaultConfig returns the compiled-in defaults every loaded config is
// merged over, per spec.md §6's host/port defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:      "0.0.0.0",
		Port:      6322,
		GRPCPort:  0,
		LogFormat: "text",
	}
}
