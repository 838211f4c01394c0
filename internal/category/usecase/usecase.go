package usecase

import (
	"context"

	"github.com/fekuna/omnipos-restaurant-service/internal/category"
	"github.com/fekuna/omnipos-restaurant-service/internal/category/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/fekuna/omnipos-restaurant-service/pkg/cache"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"go.uber.org/zap"
)

// Menu item listings embed their category, so category writes drop them too.
const menuCachePattern = "menu:items:*"

type categoryUseCase struct {
	repo   category.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, cache *cache.RedisClient, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	cat := &model.Category{
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// GetCategory returns the category with its menu items.
func (uc *categoryUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFound("Category", id)
	}

	items, err := uc.repo.FindMenuItems(ctx, id)
	if err != nil {
		return nil, err
	}
	cat.MenuItems = items
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFound("Category", input.ID)
	}

	if input.Name != nil {
		cat.Name = *input.Name
	}
	if input.Description != nil {
		cat.Description = input.Description
	}
	if input.ImageURL != nil {
		cat.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		cat.IsActive = *input.IsActive
	}

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}

	go uc.invalidateMenuCache(context.Background())
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id int64) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("Category", id)
	}

	go uc.invalidateMenuCache(context.Background())
	return nil
}

func (uc *categoryUseCase) invalidateMenuCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteByPattern(ctx, menuCachePattern); err != nil {
		uc.logger.Error("failed to invalidate menu cache", zap.Error(err))
	}
}
