package leave

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/request-leave", h.Submit)
	r.GET("/handle-approval", h.HandleApproval)
	r.GET("/request-status/:request_id", h.Status)
}
