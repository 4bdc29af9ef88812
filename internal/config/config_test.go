package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the loader at an empty config file so a stray config.yaml
// in the working directory cannot leak into the test.
func isolate(t *testing.T, yamlBody string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0644))
	t.Setenv(ConfigFileEnv, path)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, ":8000", cfg.Server.Addr())
	assert.Equal(t, DefaultAllowedOrigins, cfg.Security.AllowedOrigins)
	assert.True(t, cfg.Security.EnableCORS)
	assert.True(t, cfg.Security.AllowCredentials)
	assert.Equal(t, "A", cfg.Report.Variant)
	assert.Equal(t, "result", cfg.Report.SourceSheet)
	assert.Equal(t, int64(32<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, AppName, cfg.Telemetry.ServiceName)
}

func TestLoadFileThenEnv(t *testing.T) {
	isolate(t, `
server:
  port: 9100
  request_timeout: 5s
report:
  variant: B
  source_sheet: datos
logging:
  level: debug
security:
  allow_credentials: false
`)
	t.Setenv("RESUMEN_SERVER_PORT", "9200")
	t.Setenv("RESUMEN_SECURITY_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Server.Port, "env wins over file")
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout, "file wins over default")
	assert.Equal(t, "B", cfg.Report.Variant)
	assert.Equal(t, "datos", cfg.Report.SourceSheet)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.AllowedOrigins)
	assert.False(t, cfg.Security.AllowCredentials)
	assert.True(t, cfg.Security.EnableCORS, "sections are merged, not replaced")
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout, "untouched fields keep defaults")
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		yaml string
	}{
		{name: "unknown variant", env: map[string]string{"RESUMEN_REPORT_VARIANT": "Z"}},
		{name: "port out of range", env: map[string]string{"RESUMEN_SERVER_PORT": "70000"}},
		{name: "bad log output", env: map[string]string{"RESUMEN_LOGGING_OUTPUT": "syslog"}},
		{name: "non numeric port", env: map[string]string{"RESUMEN_SERVER_PORT": "eighty"}},
		{name: "malformed yaml", yaml: "server: [port"},
		{name: "cors without origins", yaml: "security:\n  enable_cors: true\n  allowed_origins: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t, tt.yaml)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, Default().Validate())
	})

	t.Run("lower case variant accepted", func(t *testing.T) {
		cfg := Default()
		cfg.Report.Variant = "c"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("file output needs a path", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Output = "file"
		cfg.Logging.FilePath = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FilePath")
	})

	t.Run("unzip limit below upload limit", func(t *testing.T) {
		cfg := Default()
		cfg.Upload.MaxUnzipBytes = cfg.Upload.MaxBytes - 1
		assert.Error(t, cfg.Validate())
	})

	t.Run("cors disabled allows empty origins", func(t *testing.T) {
		cfg := Default()
		cfg.Security.EnableCORS = false
		cfg.Security.AllowedOrigins = nil
		assert.NoError(t, cfg.Validate())
	})
}
