package service

import (
	"context"
	"errors"
	"fmt"

	"gamerental/apierror"
	"gamerental/models"
	"gamerental/repository"
)

type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, in models.CategoryInput) (*models.Category, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Create(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	_, err := s.repo.FindByName(ctx, in.Name)
	switch {
	case err == nil:
		return nil, errCategoryExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("find category by name: %w", err)
	}

	category := &models.Category{Name: in.Name}
	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errCategoryExists
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

var errCategoryExists = apierror.Conflict("name", "category already exists")
