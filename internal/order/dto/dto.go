package dto

import (
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/shopspring/decimal"
)

type OrderFilters struct {
	Status   *model.OrderStatus
	TableID  *int64
	WaiterID *int64
	Page     int
	PageSize int
}

type OrderCreatedPayload struct {
	OrderID     int64                `json:"orderId"`
	TableID     int64                `json:"tableId"`
	WaiterID    int64                `json:"waiterId"`
	Status      model.OrderStatus    `json:"status"`
	TotalAmount decimal.Decimal      `json:"totalAmount"`
	Items       []OrderedItemPayload `json:"items"`
}

type OrderedItemPayload struct {
	MenuItemID int64 `json:"menuItemId"`
	Quantity   int   `json:"quantity"`
}

type OrderStatusChangedPayload struct {
	OrderID int64             `json:"orderId"`
	TableID int64             `json:"tableId"`
	Status  model.OrderStatus `json:"status"`
}
