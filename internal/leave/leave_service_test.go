package leave_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"leavedesk/internal/employee"
	"leavedesk/internal/leave"
	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/mailer"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type sentEmail struct {
	recipient string
	subject   string
	body      string
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentEmail
	outcome mailer.Outcome
}

func (f *fakeMailer) Send(ctx context.Context, recipient, subject, body string) mailer.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{recipient: recipient, subject: subject, body: body})
	if f.outcome.Status == "" {
		return mailer.Outcome{Status: mailer.StatusSent}
	}
	return f.outcome
}

func (f *fakeMailer) lastSent(t *testing.T) sentEmail {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	assert.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

type leaveServiceDeps struct {
	employees *employee.Store
	requests  *leave.RequestStore
	mailer    *fakeMailer
	signer    *leave.ApprovalSigner
	service   leave.Service
}

func setupLeaveServiceTest(t *testing.T, seed ...employee.Employee) *leaveServiceDeps {
	t.Helper()

	if len(seed) == 0 {
		seed = employee.SeedData()
	}
	employees := employee.NewStore(seed...)
	requests := leave.NewRequestStore()
	m := &fakeMailer{}
	signer := leave.NewApprovalSigner("test-secret", time.Hour)
	svc := leave.NewService(employees, requests, m, signer, "http://127.0.0.1:3000", zap.NewNop())

	return &leaveServiceDeps{
		employees: employees,
		requests:  requests,
		mailer:    m,
		signer:    signer,
		service:   svc,
	}
}

func TestLeaveService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending request and notifies manager", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		resp, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{
			EmployeeID:    "E101",
			DaysRequested: 3,
			Reason:        "Family event",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, resp.RequestID)
		assert.Equal(t, leave.StatusPendingApproval, resp.Status)
		assert.Equal(t, "Request successfully submitted. Awaiting manager approval.", resp.Message)

		// Balance is untouched until approval.
		emp, _ := deps.employees.Get("E101")
		assert.Equal(t, 8, emp.LeaveBalance)

		mail := deps.mailer.lastSent(t)
		assert.Equal(t, "vikram.singh@example.com", mail.recipient)
		assert.Contains(t, mail.subject, "Leave Request from Priya K.")
		assert.Contains(t, mail.body, "action=approve")
		assert.Contains(t, mail.body, "action=deny")
		assert.Contains(t, mail.body, "token=")
		assert.Contains(t, mail.body, resp.RequestID)
	})

	t.Run("unknown employee mutates nothing", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{
			EmployeeID:    "E999",
			DaysRequested: 1,
		})
		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
		assert.Empty(t, deps.mailer.sent)
	})

	t.Run("insufficient balance creates no record", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{
			EmployeeID:    "E102",
			DaysRequested: 5,
			Reason:        "Trip",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
		assert.Empty(t, deps.mailer.sent)

		emp, _ := deps.employees.Get("E102")
		assert.Equal(t, 3, emp.LeaveBalance)
	})

	t.Run("unresolvable manager", func(t *testing.T) {
		deps := setupLeaveServiceTest(t, employee.Employee{
			ID: "E301", Name: "Orphan", Email: "o@example.com",
			LeaveBalance: 10, TotalLeaves: 20, ManagerID: "M999",
		})

		_, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{
			EmployeeID:    "E301",
			DaysRequested: 2,
		})
		assert.ErrorIs(t, err, leaveerrors.ErrManagerNotFound)
		assert.Empty(t, deps.mailer.sent)
	})

	t.Run("notification failure does not fail the submission", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		deps.mailer.outcome = mailer.Outcome{Status: mailer.StatusSendFailed, Reason: "relay down"}

		resp, err := deps.service.Submit(ctx, leave.SubmitLeaveRequest{
			EmployeeID:    "E101",
			DaysRequested: 2,
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, resp.RequestID)
	})
}

func submitAndToken(t *testing.T, deps *leaveServiceDeps, employeeID string, days int) (string, string) {
	t.Helper()

	resp, err := deps.service.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID:    employeeID,
		DaysRequested: days,
		Reason:        "Family event",
	})
	assert.NoError(t, err)

	token, err := deps.signer.Issue(resp.RequestID, "M501")
	assert.NoError(t, err)
	return resp.RequestID, token
}

func TestLeaveService_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("approve deducts balance and notifies employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		requestID, token := submitAndToken(t, deps, "E101", 3)

		resp, err := deps.service.Decide(ctx, requestID, leave.ActionApprove, token)
		assert.NoError(t, err)
		assert.Contains(t, resp.Message, "APPROVED")

		emp, _ := deps.employees.Get("E101")
		assert.Equal(t, 5, emp.LeaveBalance)

		mail := deps.mailer.lastSent(t)
		assert.Equal(t, "priya.k@example.com", mail.recipient)
		assert.Equal(t, "Leave Request Approved", mail.subject)

		status, err := deps.service.Status(ctx, requestID)
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, status.Status)
		assert.Equal(t, 3, status.DaysRequested)
		assert.NotEmpty(t, status.DecidedAt)
	})

	t.Run("deny performs no balance mutation", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		requestID, token := submitAndToken(t, deps, "E101", 3)

		resp, err := deps.service.Decide(ctx, requestID, leave.ActionDeny, token)
		assert.NoError(t, err)
		assert.Contains(t, resp.Message, "DENIED")

		emp, _ := deps.employees.Get("E101")
		assert.Equal(t, 8, emp.LeaveBalance)

		mail := deps.mailer.lastSent(t)
		assert.Equal(t, "Leave Request Denied", mail.subject)
	})

	t.Run("second decide is rejected and state unchanged", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		requestID, token := submitAndToken(t, deps, "E101", 3)

		_, err := deps.service.Decide(ctx, requestID, leave.ActionApprove, token)
		assert.NoError(t, err)

		_, err = deps.service.Decide(ctx, requestID, leave.ActionDeny, token)
		assert.ErrorIs(t, err, leaveerrors.ErrRequestNotFound)

		status, _ := deps.service.Status(ctx, requestID)
		assert.Equal(t, leave.StatusApproved, status.Status)
		emp, _ := deps.employees.Get("E101")
		assert.Equal(t, 5, emp.LeaveBalance)
	})

	t.Run("invalid action", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		requestID, token := submitAndToken(t, deps, "E101", 3)

		_, err := deps.service.Decide(ctx, requestID, "escalate", token)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidAction)
	})

	t.Run("missing or forged token", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		requestID, _ := submitAndToken(t, deps, "E101", 3)

		_, err := deps.service.Decide(ctx, requestID, leave.ActionApprove, "")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidApprovalToken)

		emp, _ := deps.employees.Get("E101")
		assert.Equal(t, 8, emp.LeaveBalance)
	})

	t.Run("token issued for another manager", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		requestID, _ := submitAndToken(t, deps, "E101", 3)

		wrong, err := deps.signer.Issue(requestID, "M999")
		assert.NoError(t, err)

		_, err = deps.service.Decide(ctx, requestID, leave.ActionApprove, wrong)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidApprovalToken)
	})

	t.Run("unknown request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		token, err := deps.signer.Issue("missing", "M501")
		assert.NoError(t, err)

		_, err = deps.service.Decide(ctx, "missing", leave.ActionApprove, token)
		assert.ErrorIs(t, err, leaveerrors.ErrRequestNotFound)
	})
}

func TestLeaveService_Status(t *testing.T) {
	ctx := context.Background()

	t.Run("returns full record", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		requestID, _ := submitAndToken(t, deps, "E101", 3)

		resp, err := deps.service.Status(ctx, requestID)
		assert.NoError(t, err)
		assert.Equal(t, requestID, resp.RequestID)
		assert.Equal(t, "E101", resp.EmployeeID)
		assert.Equal(t, "M501", resp.ManagerID)
		assert.Equal(t, leave.StatusPendingApproval, resp.Status)
		assert.Equal(t, 3, resp.DaysRequested)
		assert.Equal(t, "Family event", resp.Reason)
		assert.NotEmpty(t, resp.CreatedAt)
	})

	t.Run("unknown request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Status(ctx, "missing")
		assert.ErrorIs(t, err, leaveerrors.ErrRequestMissing)
	})
}

func TestLeaveService_ApprovalLinkFromEmail(t *testing.T) {
	// The token embedded in the manager email is honored end to end.
	deps := setupLeaveServiceTest(t)

	resp, err := deps.service.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID:    "E101",
		DaysRequested: 3,
		Reason:        "Family event",
	})
	assert.NoError(t, err)

	var token string
	for _, line := range strings.Split(deps.mailer.lastSent(t).body, "\n") {
		if strings.Contains(line, "action=approve") {
			_, token, _ = strings.Cut(line, "token=")
		}
	}
	assert.NotEmpty(t, token)

	decided, err := deps.service.Decide(context.Background(), resp.RequestID, leave.ActionApprove, token)
	assert.NoError(t, err)
	assert.Contains(t, decided.Message, "APPROVED")
}
