package agent

type ApplyForLeaveRequest struct {
	Query string `json:"query" binding:"required"`
}
