package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	_, v := NormalizeAndValidate(cfg)
	assert.True(t, v.OK(), "errors: %v", v.Errors)
	assert.Equal(t, 10, cfg.Sources.TimeoutSeconds)
	assert.True(t, cfg.Sources.Seek.Enabled)
	assert.False(t, cfg.Sources.Adzuna.Enabled)
}

func TestThresholdIsNotConfigurable(t *testing.T) {
	assert.NotContains(t, string(defaultYAML), "threshold")
	b, err := yaml.Marshal(Default())
	require.NoError(t, err)
	assert.NotContains(t, string(b), "matching")
}

func TestEnsureUserConfigWritesDefaultOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	p, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yml"), p)

	require.NoError(t, os.WriteFile(p, []byte("app:\n  port: 9000\n"), 0o644))
	p2, err := EnsureUserConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, p, p2)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.App.Port)
	// keys absent from the file keep defaults
	assert.True(t, cfg.Sources.Indeed.Enabled)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(p, []byte("app: [unclosed"), 0o644))
	_, err := Load(p)
	assert.Error(t, err)
}

func TestSaveAtomicKeepsBackup(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	require.NoError(t, SaveAtomic(p, cfg))

	cfg.App.Port = 4000
	require.NoError(t, SaveAtomic(p, cfg))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 4000, got.App.Port)

	bak, err := Load(p + ".bak")
	require.NoError(t, err)
	assert.Equal(t, Default().App.Port, bak.App.Port)
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	cfg.Sources.TimeoutSeconds = 0
	err := SaveAtomic(p, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sources.timeout_seconds")
	_, statErr := os.Stat(p)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNormalizeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
		wantWrn string
	}{
		{
			name:    "no sources",
			mutate:  func(c *Config) { c.Sources.Seek.Enabled, c.Sources.Indeed.Enabled, c.Sources.Monster.Enabled = false, false, false },
			wantErr: "No sources enabled: enable at least one of seek, indeed, monster or adzuna",
		},
		{
			name:    "bad base url",
			mutate:  func(c *Config) { c.Sources.Indeed.BaseURL = "indeed.local" },
			wantErr: "sources.indeed.base_url must be an absolute http(s) URL",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Sources.TimeoutSeconds = 0 },
			wantErr: "sources.timeout_seconds must be > 0",
		},
		{
			name: "notify without username",
			mutate: func(c *Config) {
				c.Notify.Enabled = true
			},
			wantErr: "notify.username is required when notify.enabled=true",
		},
		{
			name: "notify imap without port",
			mutate: func(c *Config) {
				c.Notify.Enabled = true
				c.Notify.Username = "me@example.com"
				c.Notify.IMAPAddr = "imap.example.com"
			},
			wantErr: "notify.imap_addr must be host:port",
		},
		{
			name:    "adzuna without app id",
			mutate:  func(c *Config) { c.Sources.Adzuna.Enabled = true },
			wantWrn: "sources.adzuna is enabled but app_id is empty; Adzuna will return no postings.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			_, v := NormalizeAndValidate(cfg)
			if tt.wantErr != "" {
				assert.Contains(t, v.Errors, tt.wantErr)
			} else {
				assert.True(t, v.OK(), "errors: %v", v.Errors)
			}
			if tt.wantWrn != "" {
				assert.Contains(t, v.Warnings, tt.wantWrn)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDataDir, "/tmp/jm")
	t.Setenv(EnvAdzunaAppID, " abc ")
	cfg := ApplyEnv(Default())
	assert.Equal(t, "/tmp/jm", cfg.App.DataDir)
	assert.Equal(t, "abc", cfg.Sources.Adzuna.AppID)
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("ADZUNA_APP_ID=fromfile\n"), 0o644))
	t.Setenv(EnvAdzunaAppID, "fromenv")
	require.NoError(t, LoadDotEnv(p))
	assert.Equal(t, "fromenv", os.Getenv(EnvAdzunaAppID))
}

func TestHolder(t *testing.T) {
	h := NewHolder(Default())
	c := h.Get()
	c.App.Port = 1
	h.Set(c)
	assert.Equal(t, 1, h.Get().App.Port)
}
