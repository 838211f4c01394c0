package handler

import (
	"context"
	"strconv"

	"github.com/fekuna/omnipos-restaurant-service/internal/auth"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/payment"
	"github.com/fekuna/omnipos-restaurant-service/internal/payment/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/fekuna/omnipos-restaurant-service/pkg/resp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	uc     payment.UseCase
	logger logger.ZapLogger
}

func NewPaymentHandler(uc payment.UseCase, log logger.ZapLogger) *PaymentHandler {
	return &PaymentHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var input dto.CreatePaymentInput
	if !resp.BindJSON(c, &input) {
		return
	}
	if input.ProcessedBy == 0 {
		input.ProcessedBy = auth.GetUserID(c)
	}

	p, err := h.uc.CreatePayment(c.Request.Context(), &input)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to create payment", zap.Int64("order_id", input.OrderID), zap.Error(err))
		}
		resp.Error(c, err)
		return
	}
	resp.Created(c, p)
}

func (h *PaymentHandler) List(c *gin.Context) {
	filters := &dto.PaymentFilters{}
	if s := c.Query("status"); s != "" {
		status := model.PaymentStatus(s)
		filters.Status = &status
	}
	h.list(c, filters)
}

func (h *PaymentHandler) ListByStatus(c *gin.Context) {
	status := model.PaymentStatus(c.Param("status"))
	h.list(c, &dto.PaymentFilters{Status: &status})
}

func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	id, ok := resp.ParamID(c, "orderId")
	if !ok {
		return
	}
	h.list(c, &dto.PaymentFilters{OrderID: &id})
}

func (h *PaymentHandler) list(c *gin.Context, filters *dto.PaymentFilters) {
	filters.Page, filters.PageSize = resp.Pagination(c)

	payments, count, err := h.uc.ListPayments(c.Request.Context(), filters)
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.Header("X-Total-Count", strconv.Itoa(count))
	resp.OK(c, payments)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	p, err := h.uc.GetPayment(c.Request.Context(), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, p)
}

func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}
	var input dto.UpdatePaymentInput
	if !resp.BindJSON(c, &input) {
		return
	}
	input.ID = id

	p, err := h.uc.UpdatePayment(c.Request.Context(), &input)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to update payment", zap.Int64("payment_id", id), zap.Error(err))
		}
		resp.Error(c, err)
		return
	}
	resp.OK(c, p)
}

func (h *PaymentHandler) Process(c *gin.Context) {
	h.transition(c, payment.UseCase.ProcessPayment)
}

func (h *PaymentHandler) Refund(c *gin.Context) {
	h.transition(c, payment.UseCase.RefundPayment)
}

func (h *PaymentHandler) transition(c *gin.Context, fn func(uc payment.UseCase, ctx context.Context, id int64) (*model.Payment, error)) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	p, err := fn(h.uc, c.Request.Context(), id)
	if err != nil {
		if resp.IsServerError(err) {
			h.logger.Error("failed to change payment status", zap.Int64("payment_id", id), zap.Error(err))
		}
		resp.Error(c, err)
		return
	}
	resp.OK(c, p)
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := resp.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.DeletePayment(c.Request.Context(), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.NoContent(c)
}

func (h *PaymentHandler) TableBill(c *gin.Context) {
	id, ok := resp.ParamID(c, "tableId")
	if !ok {
		return
	}

	bill, err := h.uc.GetTableBill(c.Request.Context(), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, bill)
}
