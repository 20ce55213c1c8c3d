// Package notify emails matched jobs to a recipient.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"jobmatch-engine/internal/domain"
)

const Subject = "New Job Matches Found!"

// Body lists each job as a title/description pair.
func Body(jobs []domain.JobPosting) string {
	var b strings.Builder
	for _, j := range jobs {
		fmt.Fprintf(&b, "Title: %s\nDescription: %s\n\n", j.Title, j.Description)
	}
	return b.String()
}

// Sender delivers a match notification.
type Sender interface {
	Send(ctx context.Context, to string, jobs []domain.JobPosting) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// From defaults to Username.
	From string
}

type Mailer struct {
	cfg    Config
	log    *zap.Logger
	copier *SentCopier
	send   func(*gomail.Message) error
}

// NewMailer returns a Mailer relaying through cfg.Host. copier may be nil.
func NewMailer(cfg Config, copier *SentCopier, log *zap.Logger) *Mailer {
	if log == nil {
		log = zap.NewNop()
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Mailer{cfg: cfg, log: log, copier: copier, send: func(msg *gomail.Message) error { return d.DialAndSend(msg) }}
}

func (m *Mailer) message(to string, jobs []domain.JobPosting) *gomail.Message {
	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", Subject)
	msg.SetBody("text/plain", Body(jobs))
	return msg
}

// Send mails jobs to to. When a SentCopier is configured the same message is
// appended to the sent mailbox; a failed copy is logged and not returned.
func (m *Mailer) Send(ctx context.Context, to string, jobs []domain.JobPosting) error {
	if _, err := mail.ParseAddress(to); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	if len(jobs) == 0 {
		return errors.New("no jobs to send")
	}
	if m.cfg.Host == "" || m.cfg.Password == "" {
		return errors.New("smtp relay not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := m.message(to, jobs)
	if err := m.send(msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	m.log.Info("notification sent", zap.String("to", to), zap.Int("jobs", len(jobs)))

	if m.copier != nil {
		var buf bytes.Buffer
		if _, err := msg.WriteTo(&buf); err != nil {
			m.log.Warn("render sent copy", zap.Error(err))
			return nil
		}
		if err := m.copier.Append(ctx, buf.Bytes()); err != nil {
			m.log.Warn("imap append sent copy", zap.Error(err), zap.String("mailbox", m.copier.Mailbox))
		}
	}
	return nil
}
