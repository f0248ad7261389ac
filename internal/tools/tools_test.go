package tools_test

import (
	"context"
	"testing"

	"leavedesk/internal/employee"
	"leavedesk/internal/mailer"
	"leavedesk/internal/tools"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newHRISTool(t *testing.T) (*tools.HRISTool, *employee.Store) {
	t.Helper()
	store := employee.NewStore(employee.SeedData()...)
	return tools.NewHRISTool(store, zap.NewNop()), store
}

func TestHRISTool_GetLeaveBalance(t *testing.T) {
	tool, _ := newHRISTool(t)

	t.Run("known employee", func(t *testing.T) {
		result := tool.GetLeaveBalance(context.Background(), "E101")

		assert.True(t, result.Found)
		assert.Equal(t, `{"balance": 8, "total": 20}`, result.String())
	})

	t.Run("unknown employee", func(t *testing.T) {
		result := tool.GetLeaveBalance(context.Background(), "E999")

		assert.False(t, result.Found)
		assert.Equal(t, `{"error": "Employee not found"}`, result.String())
	})
}

func TestHRISTool_SubmitLeaveApplication(t *testing.T) {
	t.Run("deducts and reports new balance", func(t *testing.T) {
		tool, store := newHRISTool(t)

		result := tool.SubmitLeaveApplication(context.Background(), "E101", 3)

		assert.True(t, result.Success)
		assert.Equal(t, `{"status": "success", "new_balance": 5}`, result.String())

		emp, _ := store.Get("E101")
		assert.Equal(t, 5, emp.LeaveBalance)
	})

	t.Run("insufficient balance leaves record untouched", func(t *testing.T) {
		tool, store := newHRISTool(t)

		result := tool.SubmitLeaveApplication(context.Background(), "E102", 5)

		assert.False(t, result.Success)
		assert.Contains(t, result.String(), "failure")

		emp, _ := store.Get("E102")
		assert.Equal(t, 3, emp.LeaveBalance)
	})

	t.Run("unknown employee", func(t *testing.T) {
		tool, _ := newHRISTool(t)

		result := tool.SubmitLeaveApplication(context.Background(), "E999", 1)

		assert.False(t, result.Success)
	})
}

type recordingMailer struct {
	recipient string
	subject   string
	body      string
}

func (m *recordingMailer) Send(ctx context.Context, recipient, subject, body string) mailer.Outcome {
	m.recipient = recipient
	m.subject = subject
	m.body = body
	return mailer.Outcome{Status: mailer.StatusSent}
}

func TestEmailTool_SendEmail(t *testing.T) {
	m := &recordingMailer{}
	tool := tools.NewEmailTool(m)

	outcome := tool.SendEmail(context.Background(), "priya.k@example.com", "Leave Confirmation", "Submitted.")

	assert.True(t, outcome.Sent())
	assert.Equal(t, "priya.k@example.com", m.recipient)
	assert.Equal(t, "Leave Confirmation", m.subject)
	assert.Equal(t, "Submitted.", m.body)
}
