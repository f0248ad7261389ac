package leave

type SubmitLeaveRequest struct {
	EmployeeID    string `form:"employee_id" binding:"required"`
	DaysRequested int    `form:"days_requested" binding:"required,gt=0"`
	Reason        string `form:"reason"`
}

type SubmitLeaveResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

type DecideLeaveResponse struct {
	Message string `json:"message"`
}

type LeaveRequestResponse struct {
	RequestID     string `json:"request_id"`
	EmployeeID    string `json:"employee_id"`
	ManagerID     string `json:"manager_id"`
	Status        string `json:"status"`
	DaysRequested int    `json:"days_requested"`
	Reason        string `json:"reason"`
	CreatedAt     string `json:"created_at"`
	DecidedAt     string `json:"decided_at,omitempty"`
}
