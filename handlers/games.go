package handlers

import (
	"net/http"

	"gamerental/models"

	"github.com/gin-gonic/gin"
)

// GetGames GET /games?name=<prefix>
func (h *Handler) GetGames(c *gin.Context) {
	games, err := h.games.List(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// CreateGame POST /games
func (h *Handler) CreateGame(c *gin.Context) {
	var input models.GameInput
	if !bindAndValidate(c, &input) {
		return
	}
	game, err := h.games.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}
