package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionStatus reports whether the session registry has finished starting.
type SessionStatus interface {
	Loading() bool
}

func addPingRoutes(rg *gin.RouterGroup, sessions SessionStatus) {
	rg.GET("/ping", func(c *gin.Context) {
		body := gin.H{"message": "pong"}
		if sessions != nil {
			body["sessions_loading"] = sessions.Loading()
		}
		c.JSON(http.StatusOK, body)
	})
}
