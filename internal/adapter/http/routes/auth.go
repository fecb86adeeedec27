package routes

import (
	"climatec_os/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathAuth = "/auth"

func addAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler, requireAuth gin.HandlerFunc) {
	authGroup := rg.Group(PathAuth)
	{
		authGroup.POST("/sign-up", h.SignUp)
		authGroup.POST("/sign-in", h.SignIn)
		authGroup.POST("/sign-out", requireAuth, h.SignOut)
		authGroup.GET("/me", requireAuth, h.Me)
	}
}
