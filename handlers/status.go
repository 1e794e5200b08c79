package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status is the liveness probe.
func Status(c *gin.Context) {
	c.String(http.StatusOK, "server on")
}
