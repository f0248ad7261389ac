package agent

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	runner *Runner
}

func NewHandler(runner *Runner) *Handler {
	return &Handler{runner: runner}
}

func (h *Handler) ApplyForLeave(c *gin.Context) {
	var req ApplyForLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	// The runner folds every failure mode into the result, so this is always
	// a 200 with a complete or incomplete status.
	result := h.runner.Run(c.Request.Context(), req.Query)
	response.Success(c, http.StatusOK, result)
}
