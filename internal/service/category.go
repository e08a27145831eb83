package service

import (
	"context"
	"errors"

	"expense-ledger/internal/models"
	"expense-ledger/internal/repository"
)

// CategoryService manages the shared category list.
type CategoryService struct {
	repo repository.Repository
}

func NewCategoryService(repo repository.Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

// Create adds a category. Names are unique, compared case-sensitively.
func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	if _, err := s.repo.GetCategoryByName(ctx, name); err == nil {
		return nil, Validation("Category already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, Internal(err)
	}

	cat := &models.Category{Name: name}
	if err := s.repo.CreateCategory(ctx, cat); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, Validation("Category already exists")
		}
		return nil, Internal(err)
	}
	return cat, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	cat, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Category not found")
		}
		return nil, Internal(err)
	}
	return cat, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, Internal(err)
	}
	return cats, nil
}
