package mailer_test

import (
	"context"
	"testing"

	"leavedesk/internal/config"
	"leavedesk/internal/mailer"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSMTPMailer_SkipsWhenNotConfigured(t *testing.T) {
	m := mailer.NewSMTPMailer(config.SMTPConfig{Host: "smtp.gmail.com", Port: 587}, zap.NewNop())

	outcome := m.Send(context.Background(), "priya.k@example.com", "Leave Confirmation", "Submitted.")

	assert.False(t, outcome.Sent())
	assert.Equal(t, mailer.StatusConfigMissing, outcome.Status)
	assert.NotEmpty(t, outcome.Reason)
}

func TestOutcome_Sent(t *testing.T) {
	assert.True(t, mailer.Outcome{Status: mailer.StatusSent}.Sent())
	assert.False(t, mailer.Outcome{Status: mailer.StatusSendFailed}.Sent())
	assert.False(t, mailer.Outcome{Status: mailer.StatusConfigMissing}.Sent())
}
