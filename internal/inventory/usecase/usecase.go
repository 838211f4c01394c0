package usecase

import (
	"context"

	"github.com/fekuna/omnipos-restaurant-service/internal/inventory"
	"github.com/fekuna/omnipos-restaurant-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/menu"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo      inventory.Repository
	menuItems menu.Repository
	logger    logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, menuItems menu.Repository, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:      repo,
		menuItems: menuItems,
		logger:    log,
	}
}

func (uc *inventoryUseCase) CreateItem(ctx context.Context, input *dto.CreateInventoryItemInput) (*model.InventoryItem, error) {
	if input.MinimumStock.IsNegative() || input.UnitPrice.IsNegative() {
		return nil, apperror.Validation("minimumStock and unitPrice must not be negative")
	}

	item := &model.InventoryItem{
		Name:         input.Name,
		Description:  input.Description,
		CurrentStock: input.CurrentStock,
		MinimumStock: input.MinimumStock,
		UnitPrice:    input.UnitPrice,
		Unit:         input.Unit,
		Supplier:     input.Supplier,
		IsActive:     true,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *inventoryUseCase) GetItem(ctx context.Context, id int64) (*model.InventoryItem, error) {
	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NotFound("Inventory item", id)
	}
	return item, nil
}

func (uc *inventoryUseCase) ListItems(ctx context.Context, filters *dto.InventoryFilters) ([]model.InventoryItem, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, page, pageSize int) ([]model.InventoryItem, int, error) {
	return uc.repo.FindAll(ctx, &dto.InventoryFilters{
		LowStock: true,
		Page:     page,
		PageSize: pageSize,
	})
}

func (uc *inventoryUseCase) UpdateItem(ctx context.Context, input *dto.UpdateInventoryItemInput) (*model.InventoryItem, error) {
	item, err := uc.GetItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.CurrentStock != nil {
		item.CurrentStock = *input.CurrentStock
	}
	if input.MinimumStock != nil {
		item.MinimumStock = *input.MinimumStock
	}
	if input.UnitPrice != nil {
		item.UnitPrice = *input.UnitPrice
	}
	if input.Unit != nil {
		item.Unit = input.Unit
	}
	if input.Supplier != nil {
		item.Supplier = input.Supplier
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if item.MinimumStock.IsNegative() || item.UnitPrice.IsNegative() {
		return nil, apperror.Validation("minimumStock and unitPrice must not be negative")
	}

	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *inventoryUseCase) DeleteItem(ctx context.Context, id int64) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("Inventory item", id)
	}
	return nil
}

// UpdateStock adds delta, which may be negative, to the current stock. There
// is no floor.
func (uc *inventoryUseCase) UpdateStock(ctx context.Context, id int64, delta decimal.Decimal) (*model.InventoryItem, error) {
	item, err := uc.repo.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NotFound("Inventory item", id)
	}

	if item.IsLowStock() {
		uc.logger.Warn("inventory item is low on stock",
			zap.Int64("id", item.ID),
			zap.String("name", item.Name),
			zap.String("current_stock", item.CurrentStock.String()),
			zap.String("minimum_stock", item.MinimumStock.String()),
		)
	}
	return item, nil
}

func (uc *inventoryUseCase) AddIngredient(ctx context.Context, input *dto.CreateIngredientInput) (*model.Ingredient, error) {
	if !input.Quantity.IsPositive() {
		return nil, apperror.Validation("quantity must be positive")
	}

	menuItem, err := uc.menuItems.FindByID(ctx, input.MenuItemID)
	if err != nil {
		return nil, err
	}
	if menuItem == nil {
		return nil, apperror.NotFound("Menu item", input.MenuItemID)
	}
	if _, err := uc.GetItem(ctx, input.InventoryItemID); err != nil {
		return nil, err
	}

	ing := &model.Ingredient{
		MenuItemID:      input.MenuItemID,
		InventoryItemID: input.InventoryItemID,
		Quantity:        input.Quantity,
		Unit:            input.Unit,
	}
	if err := uc.repo.CreateIngredient(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (uc *inventoryUseCase) ListIngredients(ctx context.Context, menuItemID int64) ([]model.Ingredient, error) {
	return uc.repo.FindIngredientsByMenuItem(ctx, menuItemID)
}

func (uc *inventoryUseCase) RemoveIngredient(ctx context.Context, id int64) error {
	deleted, err := uc.repo.DeleteIngredient(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("Ingredient", id)
	}
	return nil
}
