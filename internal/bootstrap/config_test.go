package bootstrap

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnos-app/turnos/config"
)

func TestValidateServiceConfig(t *testing.T) {
	tests := []struct {
		name     string
		services string
		wantErr  string
	}{
		{name: "http", services: "http"},
		{name: "http and reaper", services: "http,reaper"},
		{name: "reaper alone", services: "reaper", wantErr: "reaper requires the http service"},
		{name: "unknown", services: "scheduler", wantErr: "invalid service configuration"},
		{name: "empty", services: "", wantErr: "invalid service configuration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateServiceConfig(&config.AppConfig{Services: tt.services})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	assert.Error(t, ValidateServiceConfig(nil))
}

func TestGetEnabledServices(t *testing.T) {
	assert.Equal(t, []string{"http", "reaper"}, GetEnabledServices(&config.AppConfig{Services: "reaper, http"}))
	assert.Empty(t, GetEnabledServices(&config.AppConfig{Services: "bogus"}))
	assert.Empty(t, GetEnabledServices(nil))
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env file here
	t.Setenv("API_BASE_URL", "https://clinica.example.com/api/")
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("SERVICES", "http")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://clinica.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, config.SessionBackendMemory, cfg.Session.Backend)
	assert.True(t, cfg.IsHTTPServerEnabled())
	assert.False(t, cfg.IsReaperEnabled())
}

func TestLoadConfig_InvalidBackend(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_BACKEND", "sqlite")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "parse config")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false).Debug("hidden")
	newLogger(&buf, false).Info("shown", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])

	buf.Reset()
	newLogger(&buf, true).Debug("dev debug")
	assert.Contains(t, buf.String(), "msg=\"dev debug\"")
}
