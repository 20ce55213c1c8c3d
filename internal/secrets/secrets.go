package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"jobmatch-engine/internal/config"
)

const (
	// “Service” groups the app’s secrets in the OS keychain.
	KeyringService = "jobmatch"
)

var ErrNotFound = errors.New("secret not found (set it in keychain or via env)")

// Kind names a secret the engine knows how to look up.
type Kind string

const (
	AdzunaKey    Kind = "adzuna"
	SMTPPassword Kind = "smtp"
)

func (k Kind) env() string {
	switch k {
	case AdzunaKey:
		return config.EnvAdzunaAppKey
	case SMTPPassword:
		return config.EnvSMTPPassword
	}
	return ""
}

// ParseKind accepts the path segment used by the secrets endpoint.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case AdzunaKey:
		return AdzunaKey, true
	case SMTPPassword:
		return SMTPPassword, true
	}
	return "", false
}

// Account is the keyring account a secret of kind k is stored under.
func Account(k Kind, cfg config.Config) string {
	switch k {
	case AdzunaKey:
		return fmt.Sprintf("jobmatch:adzuna:%s", cfg.Sources.Adzuna.AppID)
	case SMTPPassword:
		return fmt.Sprintf("jobmatch:smtp:%s@%s", cfg.Notify.Username, cfg.Notify.SMTPHost)
	}
	return ""
}

// Get returns the secret from the keyring, falling back to its environment
// variable.
func Get(k Kind, cfg config.Config) (string, error) {
	// 1) Keyring first (recommended)
	if acct := Account(k, cfg); acct != "" {
		v, err := keyring.Get(KeyringService, acct)
		if err == nil && strings.TrimSpace(v) != "" {
			return v, nil
		}
	}
	// 2) Env fallback
	if name := k.env(); name != "" {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("%s: %w", k, ErrNotFound)
}

func Set(k Kind, cfg config.Config, value string) error {
	acct := Account(k, cfg)
	if acct == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret is empty")
	}
	return keyring.Set(KeyringService, acct, value)
}

func Delete(k Kind, cfg config.Config) error {
	acct := Account(k, cfg)
	if acct == "" {
		return errors.New("keyring account name is empty")
	}
	if err := keyring.Delete(KeyringService, acct); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%s: %w", k, ErrNotFound)
		}
		return err
	}
	return nil
}
