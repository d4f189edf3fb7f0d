package config_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsobakin/battleships/internal/config"
)

type envTestConfig struct {
	Size int `env:"BATTLESHIP_TEST_SIZE" envDefault:"7"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig
	require.NoError(t, config.ParseEnv(&cfg))
	assert.Equal(t, 7, cfg.Size)
}

func TestParseEnvOverride(t *testing.T) {
	t.Setenv("BATTLESHIP_TEST_SIZE", "13")

	var cfg envTestConfig
	require.NoError(t, config.ParseEnv(&cfg))
	assert.Equal(t, 13, cfg.Size)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("BATTLESHIP_TEST_SIZE", "huge")

	var cfg envTestConfig
	err := config.ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := config.NewLogger(&buf, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "seat", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown seat=1")

	_, err = config.NewLogger(&buf, "loud")
	assert.Error(t, err)
}
