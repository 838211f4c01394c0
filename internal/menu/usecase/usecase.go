package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-restaurant-service/internal/category"
	"github.com/fekuna/omnipos-restaurant-service/internal/menu"
	"github.com/fekuna/omnipos-restaurant-service/internal/menu/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/fekuna/omnipos-restaurant-service/pkg/cache"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/fekuna/omnipos-restaurant-service/pkg/search"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"
)

const (
	indexName     = "menu_items"
	cachePrefix   = "menu:items:list:"
	cachePattern  = "menu:items:*"
	cacheTTL      = 5 * time.Minute
	indexMappings = `{
		"mappings": {
			"properties": {
				"name": { "type": "text" },
				"description": { "type": "text" },
				"categoryId": { "type": "long" },
				"isAvailable": { "type": "boolean" },
				"price": { "type": "double" },
				"createdAt": { "type": "date" }
			}
		}
	}`
)

type menuUseCase struct {
	repo       menu.Repository
	categories category.Repository
	cache      *cache.RedisClient
	es         *search.Client
	logger     logger.ZapLogger
}

type cachedList struct {
	Items []model.MenuItem
	Count int
}

func NewMenuUseCase(repo menu.Repository, categories category.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) menu.UseCase {
	return &menuUseCase{
		repo:       repo,
		categories: categories,
		cache:      cache,
		es:         es,
		logger:     log,
	}
}

func (uc *menuUseCase) CreateMenuItem(ctx context.Context, input *dto.CreateMenuItemInput) (*model.MenuItem, error) {
	if input.Price.IsNegative() {
		return nil, apperror.Validation("price must not be negative")
	}
	cat, err := uc.requireCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	item := &model.MenuItem{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		IsAvailable: true,
		ImageURL:    input.ImageURL,
		Variations:  toJSONText(input.Variations),
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	item.Category = cat

	go uc.invalidateMenuCache(context.Background())
	go uc.syncToElastic(context.Background(), *item)

	return item, nil
}

func (uc *menuUseCase) GetMenuItem(ctx context.Context, id int64) (*model.MenuItem, error) {
	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NotFound("Menu item", id)
	}

	item.Category, err = uc.categories.FindByID(ctx, item.CategoryID)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *menuUseCase) ListMenuItems(ctx context.Context, filters *dto.MenuItemFilters) ([]model.MenuItem, int, error) {
	cacheKey := uc.generateCacheKey(filters)
	if uc.cache != nil && cacheKey != "" {
		var cached cachedList
		err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil {
			return cached.Items, cached.Count, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			uc.logger.Warn("menu cache read failed", zap.Error(err))
		}
	}

	items, count, err := uc.search(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.attachCategories(ctx, items); err != nil {
		return nil, 0, err
	}

	if uc.cache != nil && cacheKey != "" {
		if err := uc.cache.SetJSON(ctx, cacheKey, cachedList{Items: items, Count: count}, cacheTTL); err != nil {
			uc.logger.Warn("menu cache write failed", zap.Error(err))
		}
	}

	return items, count, nil
}

// search answers free-text queries from Elasticsearch and falls back to the
// database when the index is unavailable.
func (uc *menuUseCase) search(ctx context.Context, filters *dto.MenuItemFilters) ([]model.MenuItem, int, error) {
	if filters.SearchQuery != "" && uc.es != nil {
		items, total, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return items, total, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *menuUseCase) searchElastic(ctx context.Context, filters *dto.MenuItemFilters) ([]model.MenuItem, int, error) {
	filterClauses := []map[string]interface{}{}
	if filters.IsAvailable != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"isAvailable": *filters.IsAvailable},
		})
	}
	if filters.CategoryID != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"categoryId": *filters.CategoryID},
		})
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"multi_match": map[string]interface{}{
							"query":     filters.SearchQuery,
							"fields":    []string{"name^3", "description"},
							"fuzziness": "AUTO",
						},
					},
				},
				"filter": filterClauses,
			},
		},
	}
	if filters.PageSize > 0 {
		q["from"] = (filters.Page - 1) * filters.PageSize
		q["size"] = filters.PageSize
	}

	res, err := uc.es.Search(ctx, indexName, q)
	if err != nil {
		return nil, 0, err
	}

	items := make([]model.MenuItem, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var item model.MenuItem
		if err := json.Unmarshal(hit.Source, &item); err != nil {
			uc.logger.Warn("skipping malformed search hit", zap.String("id", hit.ID), zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items, res.Hits.Total.Value, nil
}

func (uc *menuUseCase) UpdateMenuItem(ctx context.Context, input *dto.UpdateMenuItemInput) (*model.MenuItem, error) {
	item, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NotFound("Menu item", input.ID)
	}

	if input.CategoryID != nil {
		if _, err := uc.requireCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		item.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.Validation("price must not be negative")
		}
		item.Price = *input.Price
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}
	if input.ImageURL != nil {
		item.ImageURL = input.ImageURL
	}
	if input.Variations != nil {
		item.Variations = toJSONText(input.Variations)
	}

	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	item.Category, err = uc.categories.FindByID(ctx, item.CategoryID)
	if err != nil {
		return nil, err
	}

	go uc.invalidateMenuCache(context.Background())
	go uc.syncToElastic(context.Background(), *item)

	return item, nil
}

func (uc *menuUseCase) DeleteMenuItem(ctx context.Context, id int64) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("Menu item", id)
	}

	go uc.invalidateMenuCache(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), indexName, fmt.Sprint(id)); err != nil {
				uc.logger.Error("failed to delete menu item from ES", zap.Int64("id", id), zap.Error(err))
			}
		}()
	}

	return nil
}

func (uc *menuUseCase) requireCategory(ctx context.Context, id int64) (*model.Category, error) {
	cat, err := uc.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFound("Category", id)
	}
	return cat, nil
}

func (uc *menuUseCase) attachCategories(ctx context.Context, items []model.MenuItem) error {
	seen := map[int64]bool{}
	ids := []int64{}
	for _, item := range items {
		if !seen[item.CategoryID] {
			seen[item.CategoryID] = true
			ids = append(ids, item.CategoryID)
		}
	}

	cats, err := uc.categories.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[int64]*model.Category, len(cats))
	for i := range cats {
		byID[cats[i].ID] = &cats[i]
	}
	for i := range items {
		items[i].Category = byID[items[i].CategoryID]
	}
	return nil
}

func (uc *menuUseCase) syncToElastic(ctx context.Context, item model.MenuItem) {
	if uc.es == nil {
		return
	}
	_ = uc.es.CreateIndex(ctx, indexName, indexMappings)

	item.Category = nil
	if err := uc.es.Index(ctx, indexName, fmt.Sprint(item.ID), item); err != nil {
		uc.logger.Error("failed to index menu item", zap.Int64("id", item.ID), zap.Error(err))
	}
}

func (uc *menuUseCase) generateCacheKey(filters *dto.MenuItemFilters) string {
	data, err := json.Marshal(filters)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s%x", cachePrefix, md5.Sum(data))
}

func (uc *menuUseCase) invalidateMenuCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteByPattern(ctx, cachePattern); err != nil {
		uc.logger.Error("failed to invalidate menu cache", zap.Error(err))
	}
}

func toJSONText(raw json.RawMessage) types.NullJSONText {
	if len(raw) == 0 || string(raw) == "null" {
		return types.NullJSONText{}
	}
	return types.NullJSONText{JSONText: types.JSONText(raw), Valid: true}
}
