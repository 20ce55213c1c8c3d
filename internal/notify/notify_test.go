package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"jobmatch-engine/internal/domain"
)

var jobs = []domain.JobPosting{
	{Source: domain.SourceSeek, Title: "Data Analyst", Description: "SQL and Python"},
	{Source: domain.SourceIndeed, Title: "Engineer", Description: "Go"},
}

func TestBody(t *testing.T) {
	want := "Title: Data Analyst\nDescription: SQL and Python\n\n" +
		"Title: Engineer\nDescription: Go\n\n"
	assert.Equal(t, want, Body(jobs))
	assert.Empty(t, Body(nil))
}

func newTestMailer(send func(*gomail.Message) error) *Mailer {
	m := NewMailer(Config{Host: "smtp.example.com", Port: 587, Username: "me@example.com", Password: "pw"}, nil, nil)
	m.send = send
	return m
}

func TestSend(t *testing.T) {
	var sent *gomail.Message
	m := newTestMailer(func(msg *gomail.Message) error {
		sent = msg
		return nil
	})

	require.NoError(t, m.Send(context.Background(), "you@example.com", jobs))
	require.NotNil(t, sent)
	assert.Equal(t, []string{Subject}, sent.GetHeader("Subject"))
	assert.Equal(t, []string{"me@example.com"}, sent.GetHeader("From"))
	assert.Equal(t, []string{"you@example.com"}, sent.GetHeader("To"))

	var buf bytes.Buffer
	_, err := sent.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Title: Engineer")
}

func TestSendErrors(t *testing.T) {
	ok := func(*gomail.Message) error { return nil }

	assert.Error(t, newTestMailer(ok).Send(context.Background(), "not-an-address", jobs))
	assert.Error(t, newTestMailer(ok).Send(context.Background(), "you@example.com", nil))

	relayDown := newTestMailer(func(*gomail.Message) error { return errors.New("dial tcp: refused") })
	err := relayDown.Send(context.Background(), "you@example.com", jobs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp send")

	unconfigured := NewMailer(Config{}, nil, nil)
	unconfigured.send = ok
	assert.EqualError(t, unconfigured.Send(context.Background(), "you@example.com", jobs), "smtp relay not configured")
}

func TestSendCopyFailureIsNotReturned(t *testing.T) {
	m := newTestMailer(func(*gomail.Message) error { return nil })
	m.copier = &SentCopier{Addr: "127.0.0.1:1", Username: "u", Password: "p"}
	assert.NoError(t, m.Send(context.Background(), "you@example.com", jobs))
}

func TestSentCopierRequiresSettings(t *testing.T) {
	assert.Error(t, (&SentCopier{}).Append(context.Background(), []byte("x")))
	assert.Error(t, (&SentCopier{Addr: "imap.example.com:993"}).Append(context.Background(), []byte("x")))
}
