package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAllAcceptsDefaults(t *testing.T) {
	err := NewValidator(DefaultConfig()).ValidateAll()
	assert.NoError(t, err)
}

func TestValidateAllCollectsMultipleErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = ""
	cfg.Port = 70000
	cfg.LogFormat = "xml"

	err := NewValidator(cfg).ValidateAll()
	require.Error(t, err)

	verrs, ok := err.(ValidationErrors)
	require.True(t, ok)
	assert.Len(t, verrs, 3)
}

func TestValidateAllRejectsOutOfRangeGRPCPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GRPCPort = -1

	err := NewValidator(cfg).ValidateAll()
	require.Error(t, err)
}

func TestValidateAllAllowsZeroGRPCPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GRPCPort = 0

	assert.NoError(t, NewValidator(cfg).ValidateAll())
}
