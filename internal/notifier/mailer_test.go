package notifier

import (
	"testing"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func TestNewSMTPMailer(t *testing.T) {
	_, err := NewSMTPMailer(SMTPConfig{From: "bank@example.com"})
	require.Error(t, err)

	_, err = NewSMTPMailer(SMTPConfig{Host: "smtp.example.com"})
	require.Error(t, err)

	m, err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", From: "bank@example.com"})
	require.NoError(t, err)
	assert.Equal(t, mail.DefaultPortTLS, m.cfg.Port)
	assert.Len(t, m.clientOptions(), 2)

	withAuth, err := NewSMTPMailer(SMTPConfig{
		Host: "smtp.example.com", Port: 2525, From: "bank@example.com", Username: "u", Password: "p", TLS: true,
	})
	require.NoError(t, err)
	assert.Len(t, withAuth.clientOptions(), 5)
}

func TestLogMailer(t *testing.T) {
	m := NewLogMailer(logrus.New())
	assert.NoError(t, m.Send(t.Context(), domain.MailMessage{To: "a@example.com", Subject: "s", HTMLBody: "<p></p>"}))
}
