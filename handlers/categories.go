package handlers

import (
	"net/http"

	"gamerental/models"

	"github.com/gin-gonic/gin"
)

// GetCategories GET /categories
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory POST /categories
func (h *Handler) CreateCategory(c *gin.Context) {
	var input models.CategoryInput
	if !bindAndValidate(c, &input) {
		return
	}
	category, err := h.categories.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}
