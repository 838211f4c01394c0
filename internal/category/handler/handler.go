package handler

import (
	"strconv"

	"github.com/fekuna/omnipos-restaurant-service/internal/category"
	"github.com/fekuna/omnipos-restaurant-service/internal/category/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/fekuna/omnipos-restaurant-service/pkg/resp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var input dto.CreateCategoryInput
	if !resp.BindJSON(c, &input) {
		return
	}

	cat, err := h.uc.CreateCategory(c.Request.Context(), &input)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to create category", zap.Error(err))
		}
		resp.Error(c, err)
		return
	}
	resp.Created(c, cat)
}

// List returns active categories unless ?all=true is given.
func (h *CategoryHandler) List(c *gin.Context) {
	filters := &dto.CategoryFilters{}
	if all, _ := strconv.ParseBool(c.Query("all")); !all {
		active := true
		filters.IsActive = &active
	}
	filters.Page, filters.PageSize = resp.Pagination(c)

	categories, count, err := h.uc.ListCategories(c.Request.Context(), filters)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.Header("X-Total-Count", strconv.Itoa(count))
	resp.OK(c, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	cat, err := h.uc.GetCategory(c.Request.Context(), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cat)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}
	var input dto.UpdateCategoryInput
	if !resp.BindJSON(c, &input) {
		return
	}
	input.ID = id

	cat, err := h.uc.UpdateCategory(c.Request.Context(), &input)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to update category", zap.Int64("id", id), zap.Error(err))
		}
		resp.Error(c, err)
		return
	}
	resp.OK(c, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.DeleteCategory(c.Request.Context(), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}
