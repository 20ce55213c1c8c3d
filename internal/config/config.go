// engine/internal/config/config.go
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultYAML []byte

type Source struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
}

type Adzuna struct {
	Source `yaml:",inline"`
	AppID  string `yaml:"app_id" json:"app_id"`
}

type Sources struct {
	Parallel       bool   `yaml:"parallel" json:"parallel"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent" json:"user_agent"`
	Seek           Source `yaml:"seek" json:"seek"`
	Indeed         Source `yaml:"indeed" json:"indeed"`
	Monster        Source `yaml:"monster" json:"monster"`
	Adzuna         Adzuna `yaml:"adzuna" json:"adzuna"`
}

func (s Sources) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

type Notify struct {
	Enabled     bool   `yaml:"enabled" json:"enabled"`
	SMTPHost    string `yaml:"smtp_host" json:"smtp_host"`
	SMTPPort    int    `yaml:"smtp_port" json:"smtp_port"`
	Username    string `yaml:"username" json:"username"`
	From        string `yaml:"from" json:"from"`
	IMAPAddr    string `yaml:"imap_addr" json:"imap_addr"`
	SentMailbox string `yaml:"sent_mailbox" json:"sent_mailbox"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Sources Sources `yaml:"sources" json:"sources"`

	Skills struct {
		VocabularyPath string `yaml:"vocabulary_path" json:"vocabulary_path"`
	} `yaml:"skills" json:"skills"`

	Export struct {
		Dir string `yaml:"dir" json:"dir"`
	} `yaml:"export" json:"export"`

	Notify Notify `yaml:"notify" json:"notify"`
}

// Default returns the embedded default configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default: %v", err))
	}
	return cfg
}

// Load reads path over the embedded defaults, so keys missing from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Holder publishes the live config to concurrent readers. Writers replace
// the whole value.
type Holder struct {
	v atomic.Value
}

func NewHolder(cfg Config) *Holder {
	h := &Holder{}
	h.v.Store(cfg)
	return h
}

func (h *Holder) Get() Config  { return h.v.Load().(Config) }
func (h *Holder) Set(c Config) { h.v.Store(c) }
