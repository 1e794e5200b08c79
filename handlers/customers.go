package handlers

import (
	"net/http"

	"gamerental/models"

	"github.com/gin-gonic/gin"
)

// GetCustomers GET /customers?cpf=<prefix>
func (h *Handler) GetCustomers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context(), c.Query("cpf"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomerByID GET /customers/:id
func (h *Handler) GetCustomerByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	customer, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// CreateCustomer POST /customers
func (h *Handler) CreateCustomer(c *gin.Context) {
	var input models.CustomerInput
	if !bindAndValidate(c, &input) {
		return
	}
	customer, err := h.customers.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer PUT /customers/:id
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.CustomerInput
	if !bindAndValidate(c, &input) {
		return
	}
	customer, err := h.customers.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}
