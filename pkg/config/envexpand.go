package config

import "os"

// ExpandEnv expands environment variables in YAML content using Go's standard library.
// Supports both ${VAR} and $VAR syntax (standard shell-style).
//
// Examples:
//   - ${OPERATOR_ADMIN_KEY} → value of OPERATOR_ADMIN_KEY environment variable
//   - $CONFIG_DIR → value of CONFIG_DIR environment variable
//   - ${OPERATOR_HOST}:${OPERATOR_PORT} → hostname:port with both variables expanded
//
// Missing variables expand to empty string. Validation should catch required fields that are empty.
func ExpandEnv(data []byte) []byte {
	expanded := os.ExpandEnv(string(data))
	return []byte(expanded)
}
