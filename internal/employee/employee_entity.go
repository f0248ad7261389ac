package employee

type Employee struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	LeaveBalance int    `json:"leave_balance"`
	TotalLeaves  int    `json:"total_leaves"`
	// ManagerID is empty for top-level managers.
	ManagerID string `json:"manager_id"`
}
