package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	menudto "github.com/fekuna/omnipos-restaurant-service/internal/menu/dto"
	"github.com/fekuna/omnipos-restaurant-service/internal/model"
	"github.com/fekuna/omnipos-restaurant-service/internal/order"
	"github.com/fekuna/omnipos-restaurant-service/internal/order/dto"
	tabledto "github.com/fekuna/omnipos-restaurant-service/internal/table/dto"
	userdto "github.com/fekuna/omnipos-restaurant-service/internal/user/dto"
	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/fekuna/omnipos-restaurant-service/pkg/broker"
	"github.com/fekuna/omnipos-restaurant-service/pkg/cache"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	orders      map[int64]*model.Order
	items       []model.OrderItem
	nextID      int64
	totalWrites int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]*model.Order{}}
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *model.Order) error {
	r.nextID++
	o.ID = r.nextID
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) CreateItem(ctx context.Context, item *model.OrderItem) error {
	item.ID = int64(len(r.items) + 1)
	cp := *item
	cp.MenuItem = nil
	r.items = append(r.items, cp)
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id int64) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) FindAll(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	out := []model.Order{}
	for id := r.nextID; id >= 1; id-- {
		o, ok := r.orders[id]
		if !ok {
			continue
		}
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		if f.TableID != nil && o.TableID != *f.TableID {
			continue
		}
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (r *fakeOrderRepo) FindItemsByOrderIDs(ctx context.Context, ids []int64) ([]model.OrderItem, error) {
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []model.OrderItem{}
	for _, item := range r.items {
		if want[item.OrderID] {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, o *model.Order) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	o.Status = status
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	r.totalWrites++
	r.orders[id].TotalAmount = total
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.orders[id]; !ok {
		return false, nil
	}
	delete(r.orders, id)
	return true, nil
}

// fakeTx restores the order repo to its state before fn when fn fails.
type fakeTx struct {
	repo  *fakeOrderRepo
	calls int
}

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	orders := map[int64]*model.Order{}
	for id, o := range f.repo.orders {
		cp := *o
		orders[id] = &cp
	}
	items := append([]model.OrderItem(nil), f.repo.items...)

	if err := fn(ctx); err != nil {
		f.repo.orders = orders
		f.repo.items = items
		return err
	}
	return nil
}

func (f *fakeTx) WithinReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct{ users map[int64]*model.User }

func (r *fakeUserRepo) Create(ctx context.Context, u *model.User) error { return nil }

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, f *userdto.UserFilters) ([]model.User, int, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *model.User) error { return nil }

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) (bool, error) { return false, nil }

type fakeTableRepo struct {
	tables map[int64]*model.Table
	locked []int64
}

func (r *fakeTableRepo) Create(ctx context.Context, t *model.Table) error { return nil }

func (r *fakeTableRepo) FindByID(ctx context.Context, id int64) (*model.Table, error) {
	if t, ok := r.tables[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeTableRepo) FindByIDForUpdate(ctx context.Context, id int64) (*model.Table, error) {
	r.locked = append(r.locked, id)
	return r.FindByID(ctx, id)
}

func (r *fakeTableRepo) FindAll(ctx context.Context, f *tabledto.TableFilters) ([]model.Table, int, error) {
	return nil, 0, nil
}

func (r *fakeTableRepo) Update(ctx context.Context, t *model.Table) error { return nil }

func (r *fakeTableRepo) UpdateStatus(ctx context.Context, id int64, status model.TableStatus) (*model.Table, error) {
	return nil, nil
}

func (r *fakeTableRepo) Delete(ctx context.Context, id int64) (bool, error) { return false, nil }

type fakeMenuRepo struct{ items map[int64]*model.MenuItem }

func (r *fakeMenuRepo) Create(ctx context.Context, m *model.MenuItem) error { return nil }

func (r *fakeMenuRepo) FindByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	if m, ok := r.items[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeMenuRepo) FindByIDs(ctx context.Context, ids []int64) ([]model.MenuItem, error) {
	out := []model.MenuItem{}
	for _, id := range ids {
		if m, ok := r.items[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMenuRepo) FindAll(ctx context.Context, f *menudto.MenuItemFilters) ([]model.MenuItem, int, error) {
	return nil, 0, nil
}

func (r *fakeMenuRepo) Update(ctx context.Context, m *model.MenuItem) error { return nil }

func (r *fakeMenuRepo) Delete(ctx context.Context, id int64) (bool, error) { return false, nil }

type publishedEvent struct {
	topic string
	key   string
	value []byte
}

type fakePublisher struct{ events chan publishedEvent }

func (p *fakePublisher) Publish(ctx context.Context, topic, key string, value []byte) error {
	p.events <- publishedEvent{topic: topic, key: key, value: value}
	return nil
}

type fixture struct {
	uc     order.UseCase
	orders *fakeOrderRepo
	tables *fakeTableRepo
	tx     *fakeTx
	events chan publishedEvent
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithCache(t, nil)
}

func newFixtureWithCache(t *testing.T, rc *cache.RedisClient) *fixture {
	t.Helper()

	orders := newFakeOrderRepo()
	users := &fakeUserRepo{users: map[int64]*model.User{
		7: {BaseModel: model.BaseModel{ID: 7}, Email: "waiter@example.com", Role: model.RoleWaiter, IsActive: true},
	}}
	tables := &fakeTableRepo{tables: map[int64]*model.Table{
		1: {BaseModel: model.BaseModel{ID: 1}, TableNumber: 1, Capacity: 4, Status: model.TableOccupied},
	}}
	menuItems := &fakeMenuRepo{items: map[int64]*model.MenuItem{
		1: {BaseModel: model.BaseModel{ID: 1}, Name: "Ribeye", Price: decimal.RequireFromString("85.00"), IsAvailable: true},
		2: {BaseModel: model.BaseModel{ID: 2}, Name: "Caesar salad", Price: decimal.RequireFromString("25.00"), IsAvailable: true},
	}}
	tx := &fakeTx{repo: orders}
	events := make(chan publishedEvent, 8)

	uc := NewOrderUseCase(orders, users, tables, menuItems, tx, rc, &fakePublisher{events: events}, "restaurant.orders", logger.NewNop())
	return &fixture{uc: uc, orders: orders, tables: tables, tx: tx, events: events}
}

func (f *fixture) nextEvent(t *testing.T) (publishedEvent, broker.Event) {
	t.Helper()
	select {
	case ev := <-f.events:
		var decoded broker.Event
		require.NoError(t, json.Unmarshal(ev.value, &decoded))
		return ev, decoded
	case <-time.After(time.Second):
		t.Fatal("no event published")
		return publishedEvent{}, broker.Event{}
	}
}

func standardOrder() *dto.CreateOrderInput {
	return &dto.CreateOrderInput{
		TableID:  1,
		WaiterID: 7,
		OrderItems: []dto.CreateOrderItemInput{
			{MenuItemID: 1, Quantity: 2},
			{MenuItemID: 2, Quantity: 1},
		},
	}
}

func TestCreateOrderComputesTotals(t *testing.T) {
	f := newFixture(t)

	o, err := f.uc.CreateOrder(context.Background(), standardOrder())
	require.NoError(t, err)

	assert.Equal(t, model.OrderPending, o.Status)
	assert.True(t, decimal.RequireFromString("195.00").Equal(o.TotalAmount), o.TotalAmount.String())
	require.Len(t, o.OrderItems, 2)
	assert.True(t, decimal.RequireFromString("85.00").Equal(o.OrderItems[0].UnitPrice))
	assert.True(t, decimal.RequireFromString("170.00").Equal(o.OrderItems[0].TotalPrice))
	assert.True(t, decimal.RequireFromString("25.00").Equal(o.OrderItems[1].TotalPrice))
	assert.Equal(t, "Ribeye", o.OrderItems[0].MenuItem.Name)
	assert.Equal(t, int64(7), o.Waiter.ID)
	assert.Equal(t, 1, o.Table.TableNumber)

	sum := decimal.Zero
	for _, item := range o.OrderItems {
		sum = sum.Add(item.TotalPrice)
	}
	assert.True(t, sum.Equal(o.TotalAmount))

	stored, err := f.uc.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.True(t, o.TotalAmount.Equal(stored.TotalAmount))
	assert.Len(t, stored.OrderItems, 2)

	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []int64{1}, f.tables.locked)

	ev, decoded := f.nextEvent(t)
	assert.Equal(t, "restaurant.orders", ev.topic)
	assert.Equal(t, "1", ev.key)
	assert.Equal(t, order.EventOrderCreated, decoded.EventType)

	var payload dto.OrderCreatedPayload
	require.NoError(t, json.Unmarshal(decoded.Payload, &payload))
	assert.Equal(t, int64(1), payload.TableID)
	assert.Len(t, payload.Items, 2)
}

func TestCreateOrderUnknownMenuItemRollsBack(t *testing.T) {
	f := newFixture(t)

	input := standardOrder()
	input.OrderItems = append(input.OrderItems, dto.CreateOrderItemInput{MenuItemID: 9999, Quantity: 1})

	_, err := f.uc.CreateOrder(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, "Menu item with ID 9999 not found", err.Error())

	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.orders.items)
	assert.Zero(t, f.orders.totalWrites)
}

func TestCreateOrderMissingReferences(t *testing.T) {
	cases := map[string]struct {
		mutate func(in *dto.CreateOrderInput)
		want   string
	}{
		"waiter": {func(in *dto.CreateOrderInput) { in.WaiterID = 99 }, "Waiter with ID 99 not found"},
		"table":  {func(in *dto.CreateOrderInput) { in.TableID = 42 }, "Table with ID 42 not found"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			input := standardOrder()
			tc.mutate(input)

			_, err := f.uc.CreateOrder(context.Background(), input)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, apperror.KindNotFound))
			assert.Equal(t, tc.want, err.Error())
			assert.Empty(t, f.orders.orders)
		})
	}
}

func TestCreateOrderTableBusy(t *testing.T) {
	mr := miniredis.RunT(t)
	rc, err := cache.NewRedisClient(&cache.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	f := newFixtureWithCache(t, rc)

	require.NoError(t, mr.Set("lock:order:table:1", "another-request"))

	_, err = f.uc.CreateOrder(context.Background(), standardOrder())
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, "Table is busy, please try again", err.Error())
	assert.Empty(t, f.orders.orders)
	assert.Equal(t, 0, f.tx.calls)

	mr.Del("lock:order:table:1")
	o, err := f.uc.CreateOrder(context.Background(), standardOrder())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("195.00").Equal(o.TotalAmount))
	assert.False(t, mr.Exists("lock:order:table:1"))
}

func TestCreateOrderWithoutRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := &cache.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})}
	t.Cleanup(func() { _ = rc.Close() })
	mr.Close()
	f := newFixtureWithCache(t, rc)

	o, err := f.uc.CreateOrder(context.Background(), standardOrder())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("195.00").Equal(o.TotalAmount))
	assert.Len(t, f.orders.orders, 1)
	assert.Equal(t, 1, f.tx.calls)
}

func TestCreateOrderRejectsEmptyOrZeroQuantity(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateOrder(context.Background(), &dto.CreateOrderInput{TableID: 1, WaiterID: 7})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	input := standardOrder()
	input.OrderItems[1].Quantity = 0
	_, err = f.uc.CreateOrder(context.Background(), input)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Zero(t, f.tx.calls)
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture(t)

	o, err := f.uc.CreateOrder(context.Background(), standardOrder())
	require.NoError(t, err)
	f.nextEvent(t)

	updated, err := f.uc.UpdateOrderStatus(context.Background(), o.ID, model.OrderServed)
	require.NoError(t, err)
	assert.Equal(t, model.OrderServed, updated.Status)
	assert.Len(t, updated.OrderItems, 2)

	_, decoded := f.nextEvent(t)
	assert.Equal(t, order.EventOrderStatusChanged, decoded.EventType)

	// any valid status may follow any other
	back, err := f.uc.UpdateOrderStatus(context.Background(), o.ID, model.OrderPending)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, back.Status)

	_, err = f.uc.UpdateOrderStatus(context.Background(), o.ID, model.OrderStatus("eaten"))
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.uc.UpdateOrderStatus(context.Background(), 500, model.OrderReady)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUpdateOrderNotesKeepsTotal(t *testing.T) {
	f := newFixture(t)

	o, err := f.uc.CreateOrder(context.Background(), standardOrder())
	require.NoError(t, err)

	notes := "no onions"
	updated, err := f.uc.UpdateOrder(context.Background(), &dto.UpdateOrderInput{ID: o.ID, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "no onions", *updated.Notes)
	assert.Equal(t, model.OrderPending, updated.Status)
	assert.True(t, decimal.RequireFromString("195").Equal(updated.TotalAmount))

	total, err := f.uc.GetOrderTotal(context.Background(), o.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("195").Equal(total))
}

func TestListAndDeleteOrders(t *testing.T) {
	f := newFixture(t)

	first, err := f.uc.CreateOrder(context.Background(), standardOrder())
	require.NoError(t, err)
	second, err := f.uc.CreateOrder(context.Background(), standardOrder())
	require.NoError(t, err)

	orders, count, err := f.uc.ListOrders(context.Background(), &dto.OrderFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Len(t, orders[1].OrderItems, 2)

	bogus := model.OrderStatus("nope")
	_, _, err = f.uc.ListOrders(context.Background(), &dto.OrderFilters{Status: &bogus})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	require.NoError(t, f.uc.DeleteOrder(context.Background(), first.ID))
	err = f.uc.DeleteOrder(context.Background(), first.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	_, err = f.uc.GetOrder(context.Background(), first.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
