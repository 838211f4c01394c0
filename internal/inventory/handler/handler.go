package handler

import (
	"strconv"

	"github.com/fekuna/omnipos-restaurant-service/internal/inventory"
	"github.com/fekuna/omnipos-restaurant-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/fekuna/omnipos-restaurant-service/pkg/resp"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var input dto.CreateInventoryItemInput
	if !resp.BindJSON(c, &input) {
		return
	}

	item, err := h.uc.CreateItem(c.Request.Context(), &input)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to create inventory item", zap.Error(err))
		}
		resp.Error(c, err)
		return
	}
	resp.Created(c, item)
}

func (h *InventoryHandler) List(c *gin.Context) {
	filters := &dto.InventoryFilters{}
	if a := c.Query("isActive"); a != "" {
		active, err := strconv.ParseBool(a)
		if err != nil {
			resp.BadRequest(c, "invalid isActive")
			return
		}
		filters.IsActive = &active
	}
	filters.Page, filters.PageSize = resp.Pagination(c)

	items, count, err := h.uc.ListItems(c.Request.Context(), filters)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.Header("X-Total-Count", strconv.Itoa(count))
	resp.OK(c, items)
}

func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	page, pageSize := resp.Pagination(c)

	items, count, err := h.uc.ListLowStock(c.Request.Context(), page, pageSize)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.Header("X-Total-Count", strconv.Itoa(count))
	resp.OK(c, items)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	item, err := h.uc.GetItem(c.Request.Context(), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}
	var input dto.UpdateInventoryItemInput
	if !resp.BindJSON(c, &input) {
		return
	}
	input.ID = id

	item, err := h.uc.UpdateItem(c.Request.Context(), &input)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// UpdateStock handles PATCH /inventory/:id/stock/:quantity. The quantity is a
// signed delta.
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}
	delta, err := decimal.NewFromString(c.Param("quantity"))
	if err != nil {
		resp.BadRequest(c, "invalid quantity")
		return
	}

	item, err := h.uc.UpdateStock(c.Request.Context(), id, delta)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to update stock", zap.Int64("id", id), zap.Error(err))
		}
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.DeleteItem(c.Request.Context(), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}

func (h *InventoryHandler) AddIngredient(c *gin.Context) {
	var input dto.CreateIngredientInput
	if !resp.BindJSON(c, &input) {
		return
	}

	ing, err := h.uc.AddIngredient(c.Request.Context(), &input)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, ing)
}

func (h *InventoryHandler) ListIngredients(c *gin.Context) {
	menuItemID, ok := resp.ParamID(c, "menuItemId")
	if !ok {
		return
	}

	ingredients, err := h.uc.ListIngredients(c.Request.Context(), menuItemID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, ingredients)
}

func (h *InventoryHandler) RemoveIngredient(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.RemoveIngredient(c.Request.Context(), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}
