package handlers

import (
	"net/http"
	"time"

	"gamerental/concurrent"

	"github.com/gin-gonic/gin"
)

const statsTimeout = 5 * time.Second

// GetStats GET /stats - catalog size and copies rented out right now.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := concurrent.CollectInventoryStats(c.Request.Context(), h.stats, statsTimeout)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("X-Query-Time", stats.QueryTime.String())
	c.JSON(http.StatusOK, stats)
}
