package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// SentCopier appends delivered messages to an IMAP mailbox so they show up
// in the sender's mail client.
type SentCopier struct {
	Addr     string
	Username string
	Password string
	Mailbox  string
	TLS      *tls.Config
}

func (s *SentCopier) tlsConfig() *tls.Config {
	if s.TLS != nil {
		return s.TLS
	}
	host, _, _ := net.SplitHostPort(s.Addr)
	return &tls.Config{MinVersion: tls.VersionTLS12, ServerName: host}
}

func (s *SentCopier) Append(ctx context.Context, msg []byte) error {
	if s.Addr == "" {
		return errors.New("imap addr is required")
	}
	if s.Username == "" || s.Password == "" {
		return errors.New("imap username/password is required")
	}
	mailbox := s.Mailbox
	if mailbox == "" {
		mailbox = "Sent"
	}

	// DialTLS expects *imapclient.Options, not *tls.Config.
	c, err := imapclient.DialTLS(s.Addr, &imapclient.Options{TLSConfig: s.tlsConfig()})
	if err != nil {
		return fmt.Errorf("imap dial tls: %w", err)
	}
	defer c.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = c.Close()
		case <-done:
		}
	}()

	if err := c.Login(s.Username, s.Password).Wait(); err != nil {
		return fmt.Errorf("imap login: %w", err)
	}

	cmd := c.Append(mailbox, int64(len(msg)), &imap.AppendOptions{
		Flags: []imap.Flag{imap.FlagSeen},
		Time:  time.Now(),
	})
	if _, err := cmd.Write(msg); err != nil {
		_ = cmd.Close()
		return fmt.Errorf("imap append write: %w", err)
	}
	if err := cmd.Close(); err != nil {
		return fmt.Errorf("imap append close: %w", err)
	}
	if _, err := cmd.Wait(); err != nil {
		return fmt.Errorf("imap append: %w", err)
	}

	_ = c.Logout().Wait()
	return nil
}
