package handler

import (
	"strconv"

	"github.com/fekuna/omnipos-restaurant-service/internal/menu"
	"github.com/fekuna/omnipos-restaurant-service/internal/menu/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/fekuna/omnipos-restaurant-service/pkg/resp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MenuHandler struct {
	uc     menu.UseCase
	logger logger.ZapLogger
}

func NewMenuHandler(uc menu.UseCase, log logger.ZapLogger) *MenuHandler {
	return &MenuHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *MenuHandler) Create(c *gin.Context) {
	var input dto.CreateMenuItemInput
	if !resp.BindJSON(c, &input) {
		return
	}

	item, err := h.uc.CreateMenuItem(c.Request.Context(), &input)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to create menu item", zap.Error(err))
		}
		resp.Error(c, err)
		return
	}
	resp.Created(c, item)
}

// List returns available items ordered by name. ?search runs a full-text
// query, ?categoryId narrows to one category and ?all=true includes items
// that are switched off.
func (h *MenuHandler) List(c *gin.Context) {
	filters := &dto.MenuItemFilters{SearchQuery: c.Query("search")}
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			resp.BadRequest(c, "invalid categoryId")
			return
		}
		filters.CategoryID = &id
	}
	h.list(c, filters)
}

func (h *MenuHandler) ListByCategory(c *gin.Context) {
	id, ok := resp.ParamID(c, "categoryId")
	if !ok {
		return
	}
	h.list(c, &dto.MenuItemFilters{CategoryID: &id})
}

func (h *MenuHandler) list(c *gin.Context, filters *dto.MenuItemFilters) {
	if all, _ := strconv.ParseBool(c.Query("all")); !all {
		available := true
		filters.IsAvailable = &available
	}
	filters.Page, filters.PageSize = resp.Pagination(c)

	items, count, err := h.uc.ListMenuItems(c.Request.Context(), filters)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.Header("X-Total-Count", strconv.Itoa(count))
	resp.OK(c, items)
}

func (h *MenuHandler) Get(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	item, err := h.uc.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}
	var input dto.UpdateMenuItemInput
	if !resp.BindJSON(c, &input) {
		return
	}
	input.ID = id

	item, err := h.uc.UpdateMenuItem(c.Request.Context(), &input)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to update menu item", zap.Int64("id", id), zap.Error(err))
		}
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.DeleteMenuItem(c.Request.Context(), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}
