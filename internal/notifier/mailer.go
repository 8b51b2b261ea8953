package notifier

import (
	"context"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// TLS требовать ли STARTTLS. При false соединение шифруется, только если сервер это поддерживает.
	TLS bool
}

// SMTPMailer отправляет письма через SMTP сервер. На каждое письмо открывается отдельное соединение,
// воркеры процессора не делят клиента между собой.
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is empty")
	}
	if cfg.From == "" {
		return nil, errors.New("smtp sender address is empty")
	}
	if cfg.Port == 0 {
		cfg.Port = mail.DefaultPortTLS
	}
	return &SMTPMailer{cfg: cfg}, nil
}

func (s *SMTPMailer) Send(ctx context.Context, msg domain.MailMessage) error {
	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return errors.Wrapf(err, "setting sender `%s`", s.cfg.From)
	}
	if err := m.To(msg.To); err != nil {
		return errors.Wrapf(err, "setting recipient `%s`", msg.To)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)

	client, clientErr := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if clientErr != nil {
		return errors.Wrap(clientErr, "creating smtp client")
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return errors.Wrapf(err, "sending mail to `%s`", msg.To)
	}
	return nil
}

func (s *SMTPMailer) clientOptions() []mail.Option {
	opts := []mail.Option{mail.WithPort(s.cfg.Port)}
	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}

// LogMailer пишет письма в лог вместо отправки. Используется, когда SMTP сервер не настроен.
type LogMailer struct {
	l *logrus.Entry
}

func NewLogMailer(l *logrus.Logger) *LogMailer {
	return &LogMailer{l: l.WithFields(logrus.Fields{
		"component": "notifier",
		"module":    "log_mailer",
	})}
}

func (m *LogMailer) Send(_ context.Context, msg domain.MailMessage) error {
	m.l.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Debug(msg.HTMLBody)
	m.l.WithField("to", msg.To).Info("mail delivered to log")
	return nil
}
