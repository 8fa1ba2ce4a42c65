package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GENERATOR_MODE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Context.WindowSize)
	assert.Equal(t, ContextStoreMemory, cfg.Context.Store)
	assert.Equal(t, 10000, cfg.Context.MaxSessions)
	assert.Equal(t, ProductSourceJSON, cfg.Catalog.ProductSource)
	assert.Equal(t, GeneratorModeCanned, cfg.Generator.Mode)
	assert.False(t, cfg.Generator.Enabled)
	assert.Equal(t, 150, cfg.Generator.MaxNewTokens)
	assert.True(t, cfg.Generator.Truncation)
	assert.Empty(t, cfg.Warnings)
}

func TestLoad_GenerateModeWhenKeyPresent(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GENERATOR_MODE", "")
	t.Setenv("OPENAI_API_BASE", "http://localhost:8000/v1/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Generator.Enabled)
	assert.Equal(t, GeneratorModeGenerate, cfg.Generator.Mode)
	assert.Equal(t, "http://localhost:8000/v1", cfg.Generator.APIBase)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CONTEXT_WINDOW_SIZE", "three")
	t.Setenv("CONTEXT_TTL", "soon")
	t.Setenv("GENERATOR_TRUNCATION", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Context.WindowSize)
	assert.Equal(t, 30*time.Minute, cfg.Context.TTL)
	assert.True(t, cfg.Generator.Truncation)

	require.Len(t, cfg.Warnings, 3)
	assert.Contains(t, cfg.Warnings[0], "CONTEXT_WINDOW_SIZE")
	assert.Contains(t, cfg.Warnings[1], "CONTEXT_TTL")
	assert.Contains(t, cfg.Warnings[2], "GENERATOR_TRUNCATION")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{name: "sqlite source", env: map[string]string{"CATALOG_PRODUCT_SOURCE": "SQLite"}},
		{name: "redis store", env: map[string]string{"CONTEXT_STORE": "redis"}},
		{name: "unknown source", env: map[string]string{"CATALOG_PRODUCT_SOURCE": "mongo"}, wantErr: true},
		{name: "unknown store", env: map[string]string{"CONTEXT_STORE": "disk"}, wantErr: true},
		{name: "unknown mode", env: map[string]string{"GENERATOR_MODE": "magic"}, wantErr: true},
		{name: "zero window", env: map[string]string{"CONTEXT_WINDOW_SIZE": "0"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetPostgreSQLDSN(t *testing.T) {
	cfg := &Config{PostgreSQL: PostgreSQLConfig{
		Host: "db", Port: 5433, User: "shop", Password: "pw", Database: "petchat", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5433 user=shop password=pw dbname=petchat sslmode=disable", cfg.GetPostgreSQLDSN())

	cfg.PostgreSQL.DSN = "postgres://shop@db/petchat"
	assert.Equal(t, "postgres://shop@db/petchat", cfg.GetPostgreSQLDSN())
}
