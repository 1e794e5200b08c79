package service

import (
	"context"
	"errors"
	"fmt"

	"gamerental/apierror"
	"gamerental/models"
	"gamerental/repository"
)

type GameService interface {
	List(ctx context.Context, namePrefix string) ([]models.Game, error)
	Create(ctx context.Context, in models.GameInput) (*models.Game, error)
}

type gameService struct {
	games      repository.GameRepository
	categories repository.CategoryRepository
}

func NewGameService(games repository.GameRepository, categories repository.CategoryRepository) GameService {
	return &gameService{games: games, categories: categories}
}

func (s *gameService) List(ctx context.Context, namePrefix string) ([]models.Game, error) {
	games, err := s.games.List(ctx, namePrefix)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

func (s *gameService) Create(ctx context.Context, in models.GameInput) (*models.Game, error) {
	category, err := s.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apierror.Invalid("categoryId", "categoryId does not reference an existing category")
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	_, err = s.games.FindByName(ctx, in.Name)
	switch {
	case err == nil:
		return nil, errGameExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("find game by name: %w", err)
	}

	game := &models.Game{
		Name:        in.Name,
		Image:       in.Image,
		StockTotal:  in.StockTotal,
		CategoryID:  category.ID,
		PricePerDay: in.PricePerDay,
	}
	if err := s.games.Create(ctx, game); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errGameExists
		}
		return nil, fmt.Errorf("create game: %w", err)
	}
	game.CategoryName = category.Name
	return game, nil
}

var errGameExists = apierror.Conflict("name", "game already exists")
