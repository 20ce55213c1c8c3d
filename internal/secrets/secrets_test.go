package secrets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"jobmatch-engine/internal/config"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Sources.Adzuna.AppID = "app-1"
	cfg.Notify.Username = "me@example.com"
	return cfg
}

func TestKeyringRoundTrip(t *testing.T) {
	keyring.MockInit()
	cfg := testConfig()

	require.NoError(t, Set(AdzunaKey, cfg, "k3y"))
	got, err := Get(AdzunaKey, cfg)
	require.NoError(t, err)
	assert.Equal(t, "k3y", got)

	require.NoError(t, Delete(AdzunaKey, cfg))
	t.Setenv(config.EnvAdzunaAppKey, "")
	_, err = Get(AdzunaKey, cfg)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteMissing(t *testing.T) {
	keyring.MockInit()
	err := Delete(SMTPPassword, testConfig())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestEnvFallback(t *testing.T) {
	keyring.MockInit()
	t.Setenv(config.EnvSMTPPassword, "from-env")
	got, err := Get(SMTPPassword, testConfig())
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)
}

func TestSetRejectsEmpty(t *testing.T) {
	keyring.MockInit()
	assert.Error(t, Set(SMTPPassword, testConfig(), "  "))
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind(" SMTP ")
	assert.True(t, ok)
	assert.Equal(t, SMTPPassword, k)
	_, ok = ParseKind("imap")
	assert.False(t, ok)
}

func TestAccount(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, "jobmatch:adzuna:app-1", Account(AdzunaKey, cfg))
	assert.Equal(t, "jobmatch:smtp:me@example.com@smtp.gmail.com", Account(SMTPPassword, cfg))
}
