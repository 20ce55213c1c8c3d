package config

import (
	"fmt"
	"net"
	"net/mail"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a trimmed copy of cfg and what is wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Sources.UserAgent = strings.TrimSpace(out.Sources.UserAgent)
	out.Sources.Adzuna.AppID = strings.TrimSpace(out.Sources.Adzuna.AppID)
	out.Skills.VocabularyPath = strings.TrimSpace(out.Skills.VocabularyPath)
	out.Export.Dir = strings.TrimSpace(out.Export.Dir)
	out.Notify.SMTPHost = strings.TrimSpace(out.Notify.SMTPHost)
	out.Notify.Username = strings.TrimSpace(out.Notify.Username)
	out.Notify.From = strings.TrimSpace(out.Notify.From)
	out.Notify.IMAPAddr = strings.TrimSpace(out.Notify.IMAPAddr)
	out.Notify.SentMailbox = strings.TrimSpace(out.Notify.SentMailbox)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Sources.TimeoutSeconds <= 0 {
		res.addErr("sources.timeout_seconds must be > 0")
	} else if out.Sources.TimeoutSeconds > 60 {
		res.addWarn("sources.timeout_seconds is %d; a slow board will hold up every run.", out.Sources.TimeoutSeconds)
	}

	named := []struct {
		key string
		src Source
	}{
		{"seek", out.Sources.Seek},
		{"indeed", out.Sources.Indeed},
		{"monster", out.Sources.Monster},
		{"adzuna", out.Sources.Adzuna.Source},
	}
	enabled := 0
	for _, n := range named {
		if n.src.Enabled {
			enabled++
		}
		if n.src.BaseURL == "" {
			continue
		}
		u, err := url.Parse(n.src.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			res.addErr("sources.%s.base_url must be an absolute http(s) URL", n.key)
		}
	}
	if enabled == 0 {
		res.addErr("No sources enabled: enable at least one of seek, indeed, monster or adzuna")
	}
	if out.Sources.Adzuna.Enabled && out.Sources.Adzuna.AppID == "" {
		res.addWarn("sources.adzuna is enabled but app_id is empty; Adzuna will return no postings.")
	}

	// password not required here; it lives in the keychain
	if out.Notify.Enabled {
		if out.Notify.SMTPHost == "" {
			res.addErr("notify.smtp_host is required when notify.enabled=true")
		}
		if out.Notify.SMTPPort <= 0 || out.Notify.SMTPPort > 65535 {
			res.addErr("notify.smtp_port must be 1..65535 when notify.enabled=true")
		}
		if out.Notify.Username == "" {
			res.addErr("notify.username is required when notify.enabled=true")
		}
		if out.Notify.From != "" {
			if _, err := mail.ParseAddress(out.Notify.From); err != nil {
				res.addErr("notify.from is not a valid address: %q", out.Notify.From)
			}
		}
		if out.Notify.IMAPAddr != "" {
			if _, _, err := net.SplitHostPort(out.Notify.IMAPAddr); err != nil {
				res.addErr("notify.imap_addr must be host:port")
			}
			if out.Notify.SentMailbox == "" {
				res.addWarn("notify.sent_mailbox is empty; defaulting to Sent.")
				out.Notify.SentMailbox = "Sent"
			}
		}
	}

	return out, res
}
