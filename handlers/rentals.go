package handlers

import (
	"net/http"

	"gamerental/models"

	"github.com/gin-gonic/gin"
)

// GetRentals GET /rentals?customerId=&gameId=
func (h *Handler) GetRentals(c *gin.Context) {
	customerID, ok := parseOptionalID(c, "customerId")
	if !ok {
		return
	}
	gameID, ok := parseOptionalID(c, "gameId")
	if !ok {
		return
	}
	rentals, err := h.rentals.List(c.Request.Context(), models.RentalFilter{
		CustomerID: customerID,
		GameID:     gameID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rentals)
}

// CreateRental POST /rentals
func (h *Handler) CreateRental(c *gin.Context) {
	var input models.RentalInput
	if !bindAndValidate(c, &input) {
		return
	}
	rental, err := h.rentals.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rental)
}
