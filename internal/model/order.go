package model

import "github.com/shopspring/decimal"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderServed, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	BaseModel
	WaiterID    int64           `db:"waiter_id" json:"waiterId"`
	TableID     int64           `db:"table_id" json:"tableId"`
	Status      OrderStatus     `db:"status" json:"status"`
	Notes       *string         `db:"notes" json:"notes"`
	TotalAmount decimal.Decimal `db:"total_amount" json:"totalAmount"`
	OrderItems  []OrderItem     `db:"-" json:"orderItems"`
	Waiter      *User           `db:"-" json:"waiter,omitempty"`
	Table       *Table          `db:"-" json:"table,omitempty"`
}

// OrderItem prices are a snapshot of the menu item at order time.
type OrderItem struct {
	ID                  int64           `db:"id" json:"id"`
	OrderID             int64           `db:"order_id" json:"orderId"`
	MenuItemID          int64           `db:"menu_item_id" json:"menuItemId"`
	Quantity            int             `db:"quantity" json:"quantity"`
	UnitPrice           decimal.Decimal `db:"unit_price" json:"unitPrice"`
	TotalPrice          decimal.Decimal `db:"total_price" json:"totalPrice"`
	SpecialInstructions *string         `db:"special_instructions" json:"specialInstructions"`
	MenuItem            *MenuItem       `db:"-" json:"menuItem,omitempty"`
}

// SumTotals adds up the line totals of items.
func SumTotals(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return total
}
