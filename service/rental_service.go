package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gamerental/apierror"
	"gamerental/models"
	"gamerental/monitoring"
	"gamerental/repository"
	"gamerental/utils"

	"github.com/shopspring/decimal"
)

type RentalService interface {
	List(ctx context.Context, filter models.RentalFilter) ([]models.RentalView, error)
	// Create rents one copy of a game to a customer. It fails with NotFound
	// when the customer or game does not exist, Invalid when daysRented is
	// not positive and Conflict when every copy is already rented out.
	// Nothing is written on failure.
	Create(ctx context.Context, in models.RentalInput) (*models.Rental, error)
}

type rentalService struct {
	repo repository.RentalRepository
	now  func() time.Time
}

// NewRentalService builds the rental workflow. now defaults to the current
// UTC time, so rent dates are UTC calendar days.
func NewRentalService(repo repository.RentalRepository, now func() time.Time) RentalService {
	if now == nil {
		now = utcNow
	}
	return &rentalService{repo: repo, now: now}
}

func (s *rentalService) List(ctx context.Context, filter models.RentalFilter) ([]models.RentalView, error) {
	rentals, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	views := make([]models.RentalView, 0, len(rentals))
	for _, r := range rentals {
		views = append(views, models.NewRentalView(r))
	}
	return views, nil
}

func (s *rentalService) Create(ctx context.Context, in models.RentalInput) (*models.Rental, error) {
	var rental *models.Rental
	err := s.repo.Atomically(ctx, func(store repository.RentalStore) error {
		var err error
		rental, err = s.create(ctx, store, in)
		return err
	})
	if err != nil {
		if apiErr, ok := apierror.As(err); ok {
			monitoring.RentalRejections.WithLabelValues(apiErr.Kind.String()).Inc()
		}
		return nil, err
	}

	monitoring.RentalsCreated.Inc()
	utils.LogInfo("Rental created", map[string]interface{}{
		"rental_id":      rental.ID,
		"customer_id":    rental.CustomerID,
		"game_id":        rental.GameID,
		"days_rented":    rental.DaysRented,
		"original_price": rental.OriginalPrice.String(),
	})
	return rental, nil
}

func (s *rentalService) create(ctx context.Context, store repository.RentalStore, in models.RentalInput) (*models.Rental, error) {
	customer, err := store.FindCustomerByID(ctx, in.CustomerID)
	if err != nil {
		return nil, notFoundOr(err, "customer")
	}
	game, err := store.FindGameByID(ctx, in.GameID)
	if err != nil {
		return nil, notFoundOr(err, "game")
	}

	if in.DaysRented <= 0 {
		return nil, apierror.Invalid("daysRented", "daysRented must be greater than 0")
	}

	price := RentalPrice(game.PricePerDay, in.DaysRented)
	if !models.FitsMoney(price) {
		return nil, apierror.Invalid("daysRented", "daysRented is too large for this game's price")
	}

	open, err := store.CountOpenRentals(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("count open rentals: %w", err)
	}
	if open >= int64(game.StockTotal) {
		return nil, apierror.Conflict("gameId", "no stock available")
	}

	rental := &models.Rental{
		CustomerID:    customer.ID,
		GameID:        game.ID,
		RentDate:      models.NewDate(s.now()),
		DaysRented:    in.DaysRented,
		OriginalPrice: price,
	}
	if err := store.InsertRental(ctx, rental); err != nil {
		return nil, fmt.Errorf("insert rental: %w", err)
	}
	return rental, nil
}

// RentalPrice is the price of renting for days days at pricePerDay.
func RentalPrice(pricePerDay decimal.Decimal, days int) decimal.Decimal {
	return pricePerDay.Mul(decimal.NewFromInt(int64(days)))
}

func utcNow() time.Time { return time.Now().UTC() }

func notFoundOr(err error, entity string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apierror.NotFound(entity)
	}
	return fmt.Errorf("find %s: %w", entity, err)
}
