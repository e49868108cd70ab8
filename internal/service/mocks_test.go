package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/repository"
	"go-shop-backoffice/internal/ws"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, p *model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) CreateBatch(ctx context.Context, products []model.Product) error {
	return m.Called(ctx, products).Error(0)
}

func (m *mockProductRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) ListOptions(ctx context.Context) ([]model.ProductOption, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.ProductOption), args.Error(1)
}

type mockStockRepo struct {
	mock.Mock
}

func (m *mockStockRepo) Create(ctx context.Context, s *model.Stock) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockStockRepo) CreateBatch(ctx context.Context, stocks []model.Stock) error {
	return m.Called(ctx, stocks).Error(0)
}

func (m *mockStockRepo) FindAll(ctx context.Context) ([]model.Stock, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Stock), args.Error(1)
}

func (m *mockStockRepo) FindByName(ctx context.Context, name string) (*model.Stock, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stock), args.Error(1)
}

func (m *mockStockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStockRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStockRepo) Increment(ctx context.Context, id string, delta int) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *mockStockRepo) AddByName(ctx context.Context, name string, quantity int, create func() *model.Stock) (*model.Stock, error) {
	args := m.Called(ctx, name, quantity)
	if args.Get(0) == nil {
		return create(), args.Error(1)
	}
	return args.Get(0).(*model.Stock), args.Error(1)
}

// memorySales is an in-memory ledger ordered the way the SQL store orders it.
type memorySales struct {
	mu      sync.Mutex
	records []model.SaleRecord
	failOn  string
	err     error
}

func (m *memorySales) fail(op string) error {
	if m.failOn == op {
		return m.err
	}
	return nil
}

func (m *memorySales) Create(_ context.Context, sale *model.SaleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("create"); err != nil {
		return err
	}
	m.records = append(m.records, *sale)
	return nil
}

func (m *memorySales) sorted(ascending bool) []model.SaleRecord {
	out := append([]model.SaleRecord(nil), m.records...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			before := out[j-1].Timestamp.After(out[j].Timestamp)
			if !ascending {
				before = out[j-1].Timestamp.Before(out[j].Timestamp)
			}
			if !before {
				break
			}
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func (m *memorySales) Recent(_ context.Context, limit int) ([]model.SaleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("recent"); err != nil {
		return nil, err
	}
	out := m.sorted(false)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memorySales) FindAll(_ context.Context, ascending bool) ([]model.SaleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(ascending), m.fail("findall")
}

func (m *memorySales) Query(_ context.Context, q repository.SaleQuery) ([]model.SaleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("query"); err != nil {
		return nil, err
	}
	var out []model.SaleRecord
	for _, r := range m.sorted(false) {
		if q.Start != nil && r.Timestamp.Before(*q.Start) {
			continue
		}
		if q.End != nil && r.Timestamp.After(*q.End) {
			continue
		}
		if q.Item != nil && r.Item != *q.Item {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memorySales) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.records)), m.fail("count")
}

type memoryShops struct {
	shops map[string]*model.Shop
}

func newMemoryShops(shops ...*model.Shop) *memoryShops {
	m := &memoryShops{shops: map[string]*model.Shop{}}
	for _, s := range shops {
		m.shops[s.ID.String()] = s
	}
	return m
}

func (m *memoryShops) FindByUsername(_ context.Context, shopName, username string) (*model.Shop, error) {
	for _, s := range m.shops {
		if s.ShopName == shopName && s.Username == username {
			return s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryShops) FindByID(_ context.Context, id string) (*model.Shop, error) {
	if s, ok := m.shops[id]; ok {
		return s, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memoryShops) Create(_ context.Context, shop *model.Shop) error {
	m.shops[shop.ID.String()] = shop
	return nil
}

func (m *memoryShops) Update(_ context.Context, shop *model.Shop) error {
	m.shops[shop.ID.String()] = shop
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ws.Event
}

func (p *recordingPublisher) Publish(ev ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
