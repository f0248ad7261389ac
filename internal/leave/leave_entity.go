package leave

import "time"

const (
	StatusPendingApproval = "PENDING_APPROVAL"
	StatusApproved        = "APPROVED"
	StatusDenied          = "DENIED"
)

type LeaveRequest struct {
	ID            string     `json:"request_id"`
	EmployeeID    string     `json:"employee_id"`
	ManagerID     string     `json:"manager_id"`
	Status        string     `json:"status"`
	DaysRequested int        `json:"days_requested"`
	Reason        string     `json:"reason"`
	CreatedAt     time.Time  `json:"created_at"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
}

// Terminal reports whether the request has left PENDING_APPROVAL. There is
// no transition out of a terminal state.
func (r LeaveRequest) Terminal() bool {
	return r.Status == StatusApproved || r.Status == StatusDenied
}
