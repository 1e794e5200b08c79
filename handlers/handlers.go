package handlers

import (
	"gamerental/repository"
	"gamerental/service"

	"github.com/gin-gonic/gin"
)

// Handler serves the HTTP API on top of the services.
type Handler struct {
	categories service.CategoryService
	games      service.GameService
	customers  service.CustomerService
	rentals    service.RentalService
	stats      repository.StatsRepository
}

func New(
	categories service.CategoryService,
	games service.GameService,
	customers service.CustomerService,
	rentals service.RentalService,
	stats repository.StatsRepository,
) *Handler {
	return &Handler{
		categories: categories,
		games:      games,
		customers:  customers,
		rentals:    rentals,
		stats:      stats,
	}
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/status", Status)
	r.GET("/stats", h.GetStats)

	r.GET("/categories", h.GetCategories)
	r.POST("/categories", h.CreateCategory)

	r.GET("/games", h.GetGames)
	r.POST("/games", h.CreateGame)

	r.GET("/customers", h.GetCustomers)
	r.GET("/customers/:id", h.GetCustomerByID)
	r.POST("/customers", h.CreateCustomer)
	r.PUT("/customers/:id", h.UpdateCustomer)

	r.GET("/rentals", h.GetRentals)
	r.POST("/rentals", h.CreateRental)
}
