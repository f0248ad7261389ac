package mailer

import (
	"context"

	"leavedesk/internal/config"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type Status string

const (
	StatusSent          Status = "email_sent"
	StatusConfigMissing Status = "config_missing"
	StatusSendFailed    Status = "send_failed"
)

// Outcome is the structured result of a delivery attempt. Failures are
// captured here, never raised: the caller decides what a failed send means.
type Outcome struct {
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func (o Outcome) Sent() bool {
	return o.Status == StatusSent
}

type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) Outcome
}

// SMTPMailer delivers over an authenticated STARTTLS connection.
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig, logger ...*zap.Logger) *SMTPMailer {
	l := zap.L().Named("mailer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mailer")
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPMailer{cfg: cfg, logger: l}
}

func (m *SMTPMailer) Send(ctx context.Context, recipient, subject, body string) Outcome {
	if !m.cfg.Configured() {
		m.logger.Warn("email skipped, sender credentials not set",
			zap.String("recipient", recipient),
			zap.String("subject", subject),
		)
		return Outcome{Status: StatusConfigMissing, Reason: "sender credentials not set"}
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return Outcome{Status: StatusSendFailed, Reason: err.Error()}
	}
	if err := msg.To(recipient); err != nil {
		return Outcome{Status: StatusSendFailed, Reason: err.Error()}
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		m.logger.Error("mail client setup failed", zap.Error(err))
		return Outcome{Status: StatusSendFailed, Reason: err.Error()}
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		m.logger.Error("email send failed",
			zap.String("recipient", recipient),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return Outcome{Status: StatusSendFailed, Reason: err.Error()}
	}

	m.logger.Info("email sent",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
	)
	return Outcome{Status: StatusSent}
}
