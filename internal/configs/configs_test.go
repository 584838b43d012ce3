package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestFromEnvProduction(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"ENVIRONMENT":     "production",
		"PORT":            "8080",
		"ALLOWED_ORIGINS": " https://a.example.com, ,https://b.example.com ",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestFromEnvRejectsBadPort(t *testing.T) {
	for _, port := range []string{"http", "80", "70000"} {
		t.Run(port, func(t *testing.T) {
			_, err := FromEnv(envOf(map[string]string{"PORT": port}))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigWithoutDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "4000")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 4000, cfg.Port)
}
