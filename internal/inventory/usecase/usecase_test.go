package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-restaurant-service/internal/inventory/dto"
	menudto "github.com/fekuna/omnipos-restaurant-service/internal/menu/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items       map[int64]*model.InventoryItem
	ingredients map[int64]*model.Ingredient
	nextID      int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int64]*model.InventoryItem{}, ingredients: map[int64]*model.Ingredient{}}
}

func (r *fakeRepo) Create(ctx context.Context, item *model.InventoryItem) error {
	r.nextID++
	item.ID = r.nextID
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id int64) (*model.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeRepo) FindAll(ctx context.Context, f *dto.InventoryFilters) ([]model.InventoryItem, int, error) {
	out := []model.InventoryItem{}
	for id := int64(1); id <= r.nextID; id++ {
		item, ok := r.items[id]
		if !ok {
			continue
		}
		if f.LowStock && !item.IsLowStock() {
			continue
		}
		out = append(out, *item)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(ctx context.Context, item *model.InventoryItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *fakeRepo) AdjustStock(ctx context.Context, id int64, delta decimal.Decimal) (*model.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	item.CurrentStock = item.CurrentStock.Add(delta)
	cp := *item
	return &cp, nil
}

func (r *fakeRepo) CreateIngredient(ctx context.Context, ing *model.Ingredient) error {
	r.nextID++
	ing.ID = r.nextID
	cp := *ing
	r.ingredients[ing.ID] = &cp
	return nil
}

func (r *fakeRepo) FindIngredientsByMenuItem(ctx context.Context, menuItemID int64) ([]model.Ingredient, error) {
	out := []model.Ingredient{}
	for _, ing := range r.ingredients {
		if ing.MenuItemID == menuItemID {
			out = append(out, *ing)
		}
	}
	return out, nil
}

func (r *fakeRepo) DeleteIngredient(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.ingredients[id]; !ok {
		return false, nil
	}
	delete(r.ingredients, id)
	return true, nil
}

type fakeMenuRepo struct {
	items map[int64]model.MenuItem
}

func (r *fakeMenuRepo) Create(ctx context.Context, m *model.MenuItem) error { return nil }

func (r *fakeMenuRepo) FindByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *fakeMenuRepo) FindByIDs(ctx context.Context, ids []int64) ([]model.MenuItem, error) {
	return nil, nil
}

func (r *fakeMenuRepo) FindAll(ctx context.Context, f *menudto.MenuItemFilters) ([]model.MenuItem, int, error) {
	return nil, 0, nil
}

func (r *fakeMenuRepo) Update(ctx context.Context, m *model.MenuItem) error { return nil }

func (r *fakeMenuRepo) Delete(ctx context.Context, id int64) (bool, error) { return false, nil }

func newUseCase() (*fakeRepo, *inventoryUseCase) {
	repo := newFakeRepo()
	menus := &fakeMenuRepo{items: map[int64]model.MenuItem{
		1: {BaseModel: model.BaseModel{ID: 1}, Name: "Steak"},
	}}
	return repo, NewInventoryUseCase(repo, menus, logger.NewNop()).(*inventoryUseCase)
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestUpdateStockHasNoFloor(t *testing.T) {
	_, uc := newUseCase()
	item, err := uc.CreateItem(context.Background(), &dto.CreateInventoryItemInput{
		Name: "Beef", CurrentStock: d("10"), MinimumStock: d("2"), UnitPrice: d("12.50"),
	})
	require.NoError(t, err)

	delta := item.CurrentStock.Neg().Sub(decimal.NewFromInt(1))
	got, err := uc.UpdateStock(context.Background(), item.ID, delta)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(d("-1")), got.CurrentStock.String())
	assert.True(t, got.IsLowStock())

	got, err = uc.UpdateStock(context.Background(), item.ID, d("5.5"))
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(d("4.5")))

	_, err = uc.UpdateStock(context.Background(), 999, d("1"))
	assert.EqualError(t, err, "Inventory item with ID 999 not found")
}

func TestListLowStock(t *testing.T) {
	repo, uc := newUseCase()
	repo.Create(context.Background(), &model.InventoryItem{Name: "Flour", CurrentStock: d("2"), MinimumStock: d("2"), IsActive: true})
	repo.Create(context.Background(), &model.InventoryItem{Name: "Salt", CurrentStock: d("20"), MinimumStock: d("2"), IsActive: true})
	repo.Create(context.Background(), &model.InventoryItem{Name: "Old oil", CurrentStock: d("0"), MinimumStock: d("5"), IsActive: false})

	items, count, err := uc.ListLowStock(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "Flour", items[0].Name)
}

func TestUpdateItemPartial(t *testing.T) {
	_, uc := newUseCase()
	item, err := uc.CreateItem(context.Background(), &dto.CreateInventoryItemInput{Name: "Rice", MinimumStock: d("1")})
	require.NoError(t, err)

	supplier := "Acme"
	got, err := uc.UpdateItem(context.Background(), &dto.UpdateInventoryItemInput{ID: item.ID, Supplier: &supplier})
	require.NoError(t, err)
	assert.Equal(t, "Rice", got.Name)
	assert.Equal(t, "Acme", *got.Supplier)

	negative := d("-3")
	_, err = uc.UpdateItem(context.Background(), &dto.UpdateInventoryItemInput{ID: item.ID, UnitPrice: &negative})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestIngredients(t *testing.T) {
	_, uc := newUseCase()
	beef, err := uc.CreateItem(context.Background(), &dto.CreateInventoryItemInput{Name: "Beef"})
	require.NoError(t, err)

	ing, err := uc.AddIngredient(context.Background(), &dto.CreateIngredientInput{
		MenuItemID: 1, InventoryItemID: beef.ID, Quantity: d("0.25"),
	})
	require.NoError(t, err)

	list, err := uc.ListIngredients(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.AddIngredient(context.Background(), &dto.CreateIngredientInput{
		MenuItemID: 9999, InventoryItemID: beef.ID, Quantity: d("1"),
	})
	assert.EqualError(t, err, "Menu item with ID 9999 not found")

	_, err = uc.AddIngredient(context.Background(), &dto.CreateIngredientInput{
		MenuItemID: 1, InventoryItemID: beef.ID, Quantity: d("0"),
	})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	require.NoError(t, uc.RemoveIngredient(context.Background(), ing.ID))
	assert.True(t, apperror.Is(uc.RemoveIngredient(context.Background(), ing.ID), apperror.KindNotFound))
}
