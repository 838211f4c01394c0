package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-restaurant-service/internal/menu"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/order"
	"github.com/fekuna/omnipos-restaurant-service/internal/order/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/table"
	"github.com/fekuna/omnipos-restaurant-service/internal/user"
	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/fekuna/omnipos-restaurant-service/pkg/broker"
	"github.com/fekuna/omnipos-restaurant-service/pkg/cache"
	"github.com/fekuna/omnipos-restaurant-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const tableLockTTL = 10 * time.Second

type orderUseCase struct {
	repo      order.Repository
	users     user.Repository
	tables    table.Repository
	menuItems menu.Repository
	tx        postgres.TxManager
	cache     *cache.RedisClient
	events    order.EventPublisher
	topic     string
	logger    logger.ZapLogger
}

func NewOrderUseCase(
	repo order.Repository,
	users user.Repository,
	tables table.Repository,
	menuItems menu.Repository,
	tx postgres.TxManager,
	cache *cache.RedisClient,
	events order.EventPublisher,
	topic string,
	log logger.ZapLogger,
) order.UseCase {
	return &orderUseCase{
		repo:      repo,
		users:     users,
		tables:    tables,
		menuItems: menuItems,
		tx:        tx,
		cache:     cache,
		events:    events,
		topic:     topic,
		logger:    log,
	}
}

// CreateOrder writes the order, its items and its total in one transaction.
// Each line snapshots the menu item's current price.
func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	if len(input.OrderItems) == 0 {
		return nil, apperror.Validation("order must contain at least one item")
	}
	for _, line := range input.OrderItems {
		if line.Quantity < 1 {
			return nil, apperror.Validation("quantity must be at least 1")
		}
	}

	var created *model.Order
	err := uc.withTableLock(ctx, input.TableID, func() error {
		return uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			created, err = uc.createOrder(ctx, input)
			return err
		})
	})
	if errors.Is(err, cache.ErrLockNotAcquired) {
		return nil, apperror.Conflict("Table is busy, please try again")
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("order created",
		zap.Int64("order_id", created.ID),
		zap.Int64("table_id", created.TableID),
		zap.String("total_amount", created.TotalAmount.String()),
	)

	payload := dto.OrderCreatedPayload{
		OrderID:     created.ID,
		TableID:     created.TableID,
		WaiterID:    created.WaiterID,
		Status:      created.Status,
		TotalAmount: created.TotalAmount,
		Items:       make([]dto.OrderedItemPayload, 0, len(created.OrderItems)),
	}
	for _, item := range created.OrderItems {
		payload.Items = append(payload.Items, dto.OrderedItemPayload{MenuItemID: item.MenuItemID, Quantity: item.Quantity})
	}
	go uc.publish(context.Background(), order.EventOrderCreated, created.ID, payload)

	return created, nil
}

func (uc *orderUseCase) createOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	waiter, err := uc.users.FindByID(ctx, input.WaiterID)
	if err != nil {
		return nil, err
	}
	if waiter == nil {
		return nil, apperror.NotFound("Waiter", input.WaiterID)
	}

	tbl, err := uc.tables.FindByIDForUpdate(ctx, input.TableID)
	if err != nil {
		return nil, err
	}
	if tbl == nil {
		return nil, apperror.NotFound("Table", input.TableID)
	}

	o := &model.Order{
		WaiterID:    waiter.ID,
		TableID:     tbl.ID,
		Status:      model.OrderPending,
		Notes:       input.Notes,
		TotalAmount: decimal.Zero,
	}
	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(input.OrderItems))
	for _, line := range input.OrderItems {
		ids = append(ids, line.MenuItemID)
	}
	found, err := uc.menuItems.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	menuItems := make(map[int64]model.MenuItem, len(found))
	for _, mi := range found {
		menuItems[mi.ID] = mi
	}

	items := make([]model.OrderItem, 0, len(input.OrderItems))
	for _, line := range input.OrderItems {
		mi, ok := menuItems[line.MenuItemID]
		if !ok {
			return nil, apperror.NotFound("Menu item", line.MenuItemID)
		}

		item := model.OrderItem{
			OrderID:             o.ID,
			MenuItemID:          mi.ID,
			Quantity:            line.Quantity,
			UnitPrice:           mi.Price,
			TotalPrice:          mi.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
			SpecialInstructions: line.SpecialInstructions,
		}
		if err := uc.repo.CreateItem(ctx, &item); err != nil {
			return nil, err
		}
		item.MenuItem = &mi
		items = append(items, item)
	}

	o.TotalAmount = model.SumTotals(items)
	if err := uc.repo.UpdateTotal(ctx, o.ID, o.TotalAmount); err != nil {
		return nil, err
	}

	o.OrderItems = items
	o.Waiter = waiter
	o.Table = tbl
	return o, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.NotFound("Order", id)
	}

	orders := []model.Order{*o}
	if err := uc.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	o = &orders[0]

	if o.Waiter, err = uc.users.FindByID(ctx, o.WaiterID); err != nil {
		return nil, err
	}
	if o.Table, err = uc.tables.FindByID(ctx, o.TableID); err != nil {
		return nil, err
	}
	return o, nil
}

func (uc *orderUseCase) GetOrderTotal(ctx context.Context, id int64) (decimal.Decimal, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	if o == nil {
		return decimal.Zero, apperror.NotFound("Order", id)
	}
	return o.TotalAmount, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	if filters.Status != nil && !filters.Status.Valid() {
		return nil, 0, apperror.Validation("invalid order status")
	}

	orders, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.attachItems(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

// UpdateOrder applies notes and status as given. Status changes are not
// checked against the current status.
func (uc *orderUseCase) UpdateOrder(ctx context.Context, input *dto.UpdateOrderInput) (*model.Order, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, apperror.Validation("invalid order status")
	}

	o, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.NotFound("Order", input.ID)
	}

	statusChanged := input.Status != nil && *input.Status != o.Status
	if input.Status != nil {
		o.Status = *input.Status
	}
	if input.Notes != nil {
		o.Notes = input.Notes
	}
	o.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if statusChanged {
		go uc.publishStatusChanged(context.Background(), o)
	}
	return uc.GetOrder(ctx, o.ID)
}

// UpdateOrderStatus overwrites the status unconditionally.
func (uc *orderUseCase) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, apperror.Validation("invalid order status")
	}

	o, err := uc.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperror.NotFound("Order", id)
	}

	orders := []model.Order{*o}
	if err := uc.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	go uc.publishStatusChanged(context.Background(), o)
	return &orders[0], nil
}

func (uc *orderUseCase) DeleteOrder(ctx context.Context, id int64) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound("Order", id)
	}
	return nil
}

// attachItems loads the items of every order, with their menu items, in two queries.
func (uc *orderUseCase) attachItems(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	items, err := uc.repo.FindItemsByOrderIDs(ctx, ids)
	if err != nil {
		return err
	}

	menuIDs := []int64{}
	seen := map[int64]bool{}
	for _, item := range items {
		if !seen[item.MenuItemID] {
			seen[item.MenuItemID] = true
			menuIDs = append(menuIDs, item.MenuItemID)
		}
	}
	menuItems, err := uc.menuItems.FindByIDs(ctx, menuIDs)
	if err != nil {
		return err
	}
	byMenuID := make(map[int64]*model.MenuItem, len(menuItems))
	for i := range menuItems {
		byMenuID[menuItems[i].ID] = &menuItems[i]
	}

	byOrder := make(map[int64][]model.OrderItem, len(orders))
	for _, item := range items {
		item.MenuItem = byMenuID[item.MenuItemID]
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].OrderItems = byOrder[orders[i].ID]
		if orders[i].OrderItems == nil {
			orders[i].OrderItems = []model.OrderItem{}
		}
	}
	return nil
}

// withTableLock serializes order creation per table through Redis. When Redis
// cannot be reached fn still runs: the table row lock taken inside the
// transaction keeps writers apart on its own.
func (uc *orderUseCase) withTableLock(ctx context.Context, tableID int64, fn func() error) error {
	if uc.cache == nil {
		return fn()
	}
	err := uc.cache.WithLock(ctx, tableLockKey(tableID), tableLockTTL, fn)
	if errors.Is(err, cache.ErrLockUnavailable) {
		uc.logger.Warn("table lock unavailable, relying on row lock", zap.Int64("table_id", tableID), zap.Error(err))
		return fn()
	}
	return err
}

func tableLockKey(tableID int64) string {
	return fmt.Sprintf("lock:order:table:%d", tableID)
}

func (uc *orderUseCase) publishStatusChanged(ctx context.Context, o *model.Order) {
	uc.publish(ctx, order.EventOrderStatusChanged, o.ID, dto.OrderStatusChangedPayload{
		OrderID: o.ID,
		TableID: o.TableID,
		Status:  o.Status,
	})
}

func (uc *orderUseCase) publish(ctx context.Context, eventType string, orderID int64, payload interface{}) {
	if uc.events == nil {
		return
	}

	msg, err := broker.NewEvent(eventType, payload)
	if err != nil {
		uc.logger.Error("failed to encode order event", zap.String("event_type", eventType), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := uc.events.Publish(ctx, uc.topic, strconv.FormatInt(orderID, 10), msg); err != nil {
		uc.logger.Error("failed to publish order event",
			zap.String("event_type", eventType),
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
	}
}
