package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. guard runs
// in front of the mutating routes only.
func (h *Handler) Register(rg *gin.RouterGroup, guard ...gin.HandlerFunc) {
	rg.GET("", h.list)

	mutate := rg.Group("", guard...)
	mutate.POST("", h.create)
	mutate.PUT("", h.update)
	mutate.PUT("/:id", h.update)
	mutate.DELETE("", h.delete)
	mutate.DELETE("/:id", h.delete)
}
