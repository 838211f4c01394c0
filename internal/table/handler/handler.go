package handler

import (
	"context"
	"strconv"

	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/table"
	"github.com/fekuna/omnipos-restaurant-service/internal/table/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/fekuna/omnipos-restaurant-service/pkg/resp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TableHandler struct {
	uc     table.UseCase
	logger logger.ZapLogger
}

func NewTableHandler(uc table.UseCase, log logger.ZapLogger) *TableHandler {
	return &TableHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *TableHandler) Create(c *gin.Context) {
	var input dto.CreateTableInput
	if !resp.BindJSON(c, &input) {
		return
	}

	t, err := h.uc.CreateTable(c.Request.Context(), &input)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to create table", zap.Int("table_number", input.TableNumber), zap.Error(err))
		}
		resp.Error(c, err)
		return
	}
	resp.Created(c, t)
}

func (h *TableHandler) List(c *gin.Context) {
	filters := &dto.TableFilters{}
	if s := c.Query("status"); s != "" {
		status := model.TableStatus(s)
		filters.Status = &status
	}
	filters.Page, filters.PageSize = resp.Pagination(c)

	tables, count, err := h.uc.ListTables(c.Request.Context(), filters)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.Header("X-Total-Count", strconv.Itoa(count))
	resp.OK(c, tables)
}

func (h *TableHandler) ListAvailable(c *gin.Context) {
	tables, err := h.uc.ListAvailableTables(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, tables)
}

func (h *TableHandler) Get(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	t, err := h.uc.GetTable(c.Request.Context(), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, t)
}

func (h *TableHandler) Update(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}
	var input dto.UpdateTableInput
	if !resp.BindJSON(c, &input) {
		return
	}
	input.ID = id

	t, err := h.uc.UpdateTable(c.Request.Context(), &input)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to update table", zap.Int64("id", id), zap.Error(err))
		}
		resp.Error(c, err)
		return
	}
	resp.OK(c, t)
}

func (h *TableHandler) Delete(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.DeleteTable(c.Request.Context(), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}

func (h *TableHandler) Open(c *gin.Context) {
	h.transition(c, "open", table.UseCase.OpenTable)
}

func (h *TableHandler) Reserve(c *gin.Context) {
	h.transition(c, "reserve", table.UseCase.ReserveTable)
}

func (h *TableHandler) Close(c *gin.Context) {
	h.transition(c, "close", table.UseCase.CloseTable)
}

func (h *TableHandler) transition(c *gin.Context, action string, fn func(uc table.UseCase, ctx context.Context, id int64) (*model.Table, error)) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	t, err := fn(h.uc, c.Request.Context(), id)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to "+action+" table", zap.Int64("id", id), zap.Error(err))
		}
		resp.Error(c, err)
		return
	}
	resp.OK(c, t)
}
