package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fekuna/omnipos-restaurant-service/internal/auth"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/order/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUseCase struct {
	created *dto.CreateOrderInput
	filters *dto.OrderFilters
}

func (f *fakeUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	f.created = input
	return &model.Order{BaseModel: model.BaseModel{ID: 1}, WaiterID: input.WaiterID, TableID: input.TableID, Status: model.OrderPending}, nil
}

func (f *fakeUseCase) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	return nil, apperror.NotFound("Order", id)
}

func (f *fakeUseCase) GetOrderTotal(ctx context.Context, id int64) (decimal.Decimal, error) {
	return decimal.RequireFromString("195.00"), nil
}

func (f *fakeUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	f.filters = filters
	return []model.Order{}, 0, nil
}

func (f *fakeUseCase) UpdateOrder(ctx context.Context, input *dto.UpdateOrderInput) (*model.Order, error) {
	return nil, nil
}

func (f *fakeUseCase) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, apperror.Validation("invalid order status")
	}
	return &model.Order{BaseModel: model.BaseModel{ID: id}, Status: status}, nil
}

func (f *fakeUseCase) DeleteOrder(ctx context.Context, id int64) error { return nil }

func setup(uc *fakeUseCase, caller int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewOrderHandler(uc, logger.NewNop())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		auth.SetIdentity(c, &auth.Identity{UserID: caller, Role: model.RoleWaiter})
		c.Next()
	})
	r.POST("/orders", h.Create)
	r.GET("/orders/table/:tableId", h.ListByTable)
	r.GET("/orders/:id", h.Get)
	r.GET("/orders/:id/total", h.Total)
	r.PATCH("/orders/:id/status/:status", h.UpdateStatus)
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateDefaultsWaiterToCaller(t *testing.T) {
	uc := &fakeUseCase{}
	r := setup(uc, 12)

	w := serve(r, http.MethodPost, "/orders", `{"tableId":3,"orderItems":[{"menuItemId":1,"quantity":2}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(12), uc.created.WaiterID)

	w = serve(r, http.MethodPost, "/orders", `{"tableId":3,"waiterId":5,"orderItems":[{"menuItemId":1,"quantity":1}]}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(5), uc.created.WaiterID)
}

func TestCreateRejectsEmptyOrder(t *testing.T) {
	r := setup(&fakeUseCase{}, 12)

	w := serve(r, http.MethodPost, "/orders", `{"tableId":3,"orderItems":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/orders", `{"tableId":3,"orderItems":[{"menuItemId":1,"quantity":0}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReadEndpoints(t *testing.T) {
	uc := &fakeUseCase{}
	r := setup(uc, 1)

	w := serve(r, http.MethodGet, "/orders/table/3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), *uc.filters.TableID)
	assert.Equal(t, "0", w.Header().Get("X-Total-Count"))

	w = serve(r, http.MethodGet, "/orders/9999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Order with ID 9999 not found")

	w = serve(r, http.MethodGet, "/orders/4/total", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":"195"}`, w.Body.String())

	w = serve(r, http.MethodPatch, "/orders/4/status/eaten", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPatch, "/orders/4/status/served", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"served"`)
}
