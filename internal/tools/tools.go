package tools

import (
	"context"
	"fmt"

	"leavedesk/internal/employee"
	"leavedesk/internal/mailer"

	"go.uber.org/zap"
)

// Tool results implement fmt.Stringer; the rendered form is what the agent
// loop appends to the transcript as the observation.

type BalanceResult struct {
	Found   bool `json:"found"`
	Balance int  `json:"balance"`
	Total   int  `json:"total"`
}

func (r BalanceResult) String() string {
	if !r.Found {
		return `{"error": "Employee not found"}`
	}
	return fmt.Sprintf(`{"balance": %d, "total": %d}`, r.Balance, r.Total)
}

type SubmitResult struct {
	Success    bool   `json:"success"`
	Reason     string `json:"reason,omitempty"`
	NewBalance int    `json:"new_balance"`
}

func (r SubmitResult) String() string {
	if !r.Success {
		return fmt.Sprintf(`{"status": "failure", "reason": %q}`, r.Reason)
	}
	return fmt.Sprintf(`{"status": "success", "new_balance": %d}`, r.NewBalance)
}

// HRISTool exposes the leave-balance lookup and the balance-mutating
// submission over the shared employee store. It is the same store the
// stateful workflow mutates, so the two paths cannot diverge.
type HRISTool struct {
	employees *employee.Store
	logger    *zap.Logger
}

func NewHRISTool(employees *employee.Store, logger ...*zap.Logger) *HRISTool {
	l := zap.L().Named("tools.hris")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tools.hris")
	}
	return &HRISTool{employees: employees, logger: l}
}

func (t *HRISTool) GetLeaveBalance(ctx context.Context, employeeID string) BalanceResult {
	emp, ok := t.employees.Get(employeeID)
	if !ok {
		t.logger.Warn("balance lookup for unknown employee", zap.String("employee_id", employeeID))
		return BalanceResult{Found: false}
	}
	return BalanceResult{Found: true, Balance: emp.LeaveBalance, Total: emp.TotalLeaves}
}

func (t *HRISTool) SubmitLeaveApplication(ctx context.Context, employeeID string, days int) SubmitResult {
	newBalance, err := t.employees.DeductLeave(employeeID, days)
	if err != nil {
		t.logger.Warn("leave application rejected",
			zap.String("employee_id", employeeID),
			zap.Int("days", days),
			zap.Error(err),
		)
		return SubmitResult{Success: false, Reason: err.Error()}
	}

	t.logger.Info("leave application submitted",
		zap.String("employee_id", employeeID),
		zap.Int("days", days),
		zap.Int("new_balance", newBalance),
	)
	return SubmitResult{Success: true, NewBalance: newBalance}
}

// GetEmployee is used by the agent loop to resolve email recipients.
func (t *HRISTool) GetEmployee(employeeID string) (employee.Employee, bool) {
	return t.employees.Get(employeeID)
}

// EmailTool dispatches mail and reports the structured outcome; delivery
// failures are part of the result, never an error.
type EmailTool struct {
	mailer mailer.Mailer
}

func NewEmailTool(m mailer.Mailer) *EmailTool {
	return &EmailTool{mailer: m}
}

func (t *EmailTool) SendEmail(ctx context.Context, recipient, subject, body string) mailer.Outcome {
	return t.mailer.Send(ctx, recipient, subject, body)
}
