package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "alchemy-elements", cfg.DynamoDBTable)
	assert.Equal(t, "PairIndex", cfg.PairIndexName)
	assert.Equal(t, "CreatedIndex", cfg.ListIndexName)
	assert.Equal(t, "gpt-4o-mini", cfg.TextModel)
	assert.Equal(t, "dall-e-3", cfg.ImageModel)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("TABLE_NAME", "elements-test")
	t.Setenv("OPENAI_TEXT_MODEL", "gpt-4o")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.ServerAddress)
	assert.Equal(t, "elements-test", cfg.DynamoDBTable)
	assert.Equal(t, "gpt-4o", cfg.TextModel)
}

func TestValidate_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestValidate_RejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("FUSION_TIMEOUT_SECONDS", "0")

	_, err := LoadConfig()
	assert.Error(t, err)
}
