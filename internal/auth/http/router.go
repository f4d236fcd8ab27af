package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/google/login", h.Login)
	rg.GET("/google/callback", h.Callback)
	rg.POST("/logout", h.Logout)
	rg.GET("/session", h.Session)
}
