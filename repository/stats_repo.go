package repository

import (
	"context"

	"gamerental/models"

	"gorm.io/gorm"
)

// StatsRepository answers the aggregate queries behind GET /stats.
type StatsRepository interface {
	CountCategories(ctx context.Context) (int64, error)
	CountGames(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	// SumStock is the number of copies across every game.
	SumStock(ctx context.Context) (int64, error)
	// CountAllOpenRentals counts rentals of any game not returned yet.
	CountAllOpenRentals(ctx context.Context) (int64, error)
}

type statsRepository struct{ db *gorm.DB }

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountCategories(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Category{})
}

func (r *statsRepository) CountGames(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Game{})
}

func (r *statsRepository) CountCustomers(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Customer{})
}

func (r *statsRepository) SumStock(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Select("COALESCE(SUM(stock_total), 0)").
		Scan(&total).Error
	return total, err
}

func (r *statsRepository) CountAllOpenRentals(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Rental{}).
		Where("return_date IS NULL").
		Count(&count).Error
	return count, err
}

func (r *statsRepository) count(ctx context.Context, model interface{}) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).Count(&count).Error
	return count, err
}
