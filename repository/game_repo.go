package repository

import (
	"context"

	"gamerental/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GameRepository interface {
	// List returns games with their category name, optionally only those
	// whose name starts with namePrefix (case-insensitive).
	List(ctx context.Context, namePrefix string) ([]models.Game, error)
	FindByID(ctx context.Context, id uint) (*models.Game, error)
	FindByName(ctx context.Context, name string) (*models.Game, error)
	Create(ctx context.Context, g *models.Game) error
}

type gameRepository struct{ db *gorm.DB }

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) List(ctx context.Context, namePrefix string) ([]models.Game, error) {
	games := []models.Game{}
	query := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Select("games.*, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = games.category_id")
	if namePrefix != "" {
		query = query.Where("games.name ILIKE ?", prefixPattern(namePrefix))
	}
	err := query.Order("games.id").Find(&games).Error
	return games, err
}

func (r *gameRepository) FindByID(ctx context.Context, id uint) (*models.Game, error) {
	var g models.Game
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gameRepository) FindByName(ctx context.Context, name string) (*models.Game, error) {
	var g models.Game
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gameRepository) Create(ctx context.Context, g *models.Game) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(g).Error
}
