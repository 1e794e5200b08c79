package repository

import (
	"context"

	"gamerental/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RentalStore is what the rental workflow reads and writes. Inside
// Atomically every call runs on one transaction, and FindGameByID locks the
// game row until it commits, so concurrent rentals of one title serialize on
// the stock check.
type RentalStore interface {
	FindCustomerByID(ctx context.Context, id uint) (*models.Customer, error)
	FindGameByID(ctx context.Context, id uint) (*models.Game, error)
	CountOpenRentals(ctx context.Context, gameID uint) (int64, error)
	InsertRental(ctx context.Context, r *models.Rental) error
	Atomically(ctx context.Context, fn func(store RentalStore) error) error
}

type RentalRepository interface {
	RentalStore
	// List returns rentals with their customer and game (with category)
	// loaded, filtered by the non-zero fields of filter.
	List(ctx context.Context, filter models.RentalFilter) ([]models.Rental, error)
}

type rentalRepository struct {
	db   *gorm.DB
	inTx bool
}

func NewRentalRepository(db *gorm.DB) RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Atomically(ctx context.Context, fn func(store RentalStore) error) error {
	if r.inTx {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&rentalRepository{db: tx, inTx: true})
	})
}

func (r *rentalRepository) FindCustomerByID(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *rentalRepository) FindGameByID(ctx context.Context, id uint) (*models.Game, error) {
	query := r.db.WithContext(ctx)
	if r.inTx {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var g models.Game
	if err := query.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *rentalRepository) CountOpenRentals(ctx context.Context, gameID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Rental{}).
		Where("game_id = ? AND return_date IS NULL", gameID).
		Count(&count).Error
	return count, err
}

func (r *rentalRepository) InsertRental(ctx context.Context, rental *models.Rental) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rental).Error
}

func (r *rentalRepository) List(ctx context.Context, filter models.RentalFilter) ([]models.Rental, error) {
	rentals := []models.Rental{}
	query := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Game.Category")
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.GameID != 0 {
		query = query.Where("game_id = ?", filter.GameID)
	}
	err := query.Order("id").Find(&rentals).Error
	return rentals, err
}
