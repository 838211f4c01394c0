package handler

import (
	"strconv"

	"github.com/fekuna/omnipos-restaurant-service/internal/auth"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/order"
	"github.com/fekuna/omnipos-restaurant-service/internal/order/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/fekuna/omnipos-restaurant-service/pkg/resp"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

type totalResponse struct {
	Total decimal.Decimal `json:"total"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var input dto.CreateOrderInput
	if !resp.BindJSON(c, &input) {
		return
	}
	if input.WaiterID == 0 {
		input.WaiterID = auth.GetUserID(c)
	}

	o, err := h.uc.CreateOrder(c.Request.Context(), &input)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to create order", zap.Int64("table_id", input.TableID), zap.Error(err))
		}
		resp.Error(c, err)
		return
	}
	resp.Created(c, o)
}

// List returns orders newest first, optionally narrowed by ?status,
// ?tableId and ?waiterId.
func (h *OrderHandler) List(c *gin.Context) {
	filters := &dto.OrderFilters{}
	if s := c.Query("status"); s != "" {
		status := model.OrderStatus(s)
		filters.Status = &status
	}
	for param, dst := range map[string]**int64{"tableId": &filters.TableID, "waiterId": &filters.WaiterID} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			resp.BadRequest(c, "invalid "+param)
			return
		}
		*dst = &id
	}
	h.list(c, filters)
}

func (h *OrderHandler) ListByStatus(c *gin.Context) {
	status := model.OrderStatus(c.Param("status"))
	h.list(c, &dto.OrderFilters{Status: &status})
}

func (h *OrderHandler) ListByTable(c *gin.Context) {
	id, ok := resp.ParamID(c, "tableId")
	if !ok {
		return
	}
	h.list(c, &dto.OrderFilters{TableID: &id})
}

func (h *OrderHandler) list(c *gin.Context, filters *dto.OrderFilters) {
	filters.Page, filters.PageSize = resp.Pagination(c)

	orders, count, err := h.uc.ListOrders(c.Request.Context(), filters)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.Header("X-Total-Count", strconv.Itoa(count))
	resp.OK(c, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	o, err := h.uc.GetOrder(c.Request.Context(), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

func (h *OrderHandler) Total(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	total, err := h.uc.GetOrderTotal(c.Request.Context(), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, totalResponse{Total: total})
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}
	var input dto.UpdateOrderInput
	if !resp.BindJSON(c, &input) {
		return
	}
	input.ID = id

	o, err := h.uc.UpdateOrder(c.Request.Context(), &input)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to update order", zap.Int64("order_id", id), zap.Error(err))
		}
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	o, err := h.uc.UpdateOrderStatus(c.Request.Context(), id, model.OrderStatus(c.Param("status")))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.DeleteOrder(c.Request.Context(), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}
