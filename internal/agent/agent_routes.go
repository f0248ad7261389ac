package agent

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/apply-for-leave", h.ApplyForLeave)
}
