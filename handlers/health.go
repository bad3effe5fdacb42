package handlers

import (
	"net/http"

	"reservodojo/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest backing-service snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	healthy := status.Mongo
	for _, ok := range status.Redis {
		healthy = healthy && ok
	}
	code := http.StatusOK
	state := "ok"
	if status.CheckedAt.IsZero() {
		state = "starting"
	} else if !healthy {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "services": status, "message": "Hi, I'm ReservoDojo"})
}
