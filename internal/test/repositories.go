package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Add stores a prepared user, assigning an ID when missing.
func (s *UserRepositoryStub) Add(user *model.User) *model.User {
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	if user.ID == 0 {
		user.ID = s.Next
	}
	if user.ID >= s.Next {
		s.Next = user.ID + 1
	}
	s.Users[user.Email] = user
	s.ByID[user.ID] = user
	return user
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *user
	stored.ID = 0
	if stored.Role == "" {
		stored.Role = model.RoleUser
	}
	return s.Add(&stored), nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderUpdateCall stores information about UpdateStatus invocations.
type OrderUpdateCall struct {
	OrderID     int64
	From        model.OrderStatus
	Status      model.OrderStatus
	DeliveredAt *time.Time
}

// OrderRepositoryStub keeps orders in memory and lets tests override each call.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn      func(context.Context, int64) (*model.Order, error)
	ListByUserFn   func(context.Context, int64) ([]model.Order, error)
	ListAllFn      func(context.Context) ([]model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus, model.OrderStatus, *time.Time) error
	DeleteFn       func(context.Context, int64) error

	Orders      map[int64]*model.Order
	Created     []model.Order
	UpdateCalls []OrderUpdateCall
	Deleted     []int64
	next        int64
}

// NewOrderRepositoryStub constructs an empty order store.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order)}
}

// Put stores an order as if it had been created earlier.
func (s *OrderRepositoryStub) Put(order model.Order) {
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.Order)
	}
	if order.ID > s.next {
		s.next = order.ID
	}
	s.Orders[order.ID] = &order
}

// Create assigns an identifier and stores the order.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	s.Created = append(s.Created, *order)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.next++
	stored := *order
	stored.ID = s.next
	s.Put(stored)
	out := stored
	return &out, nil
}

// GetByID returns a copy of the stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if o, ok := s.Orders[id]; ok {
		out := *o
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns the user's orders, newest first.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	var out []model.Order
	for _, o := range s.sorted() {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// ListAll returns every order, newest first.
func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx)
	}
	return s.sorted(), nil
}

// UpdateStatus records the call and applies it when the stored status still matches from.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id int64, from, status model.OrderStatus, deliveredAt *time.Time) error {
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{OrderID: id, From: from, Status: status, DeliveredAt: deliveredAt})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, from, status, deliveredAt)
	}
	o, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if o.Status != from {
		return domainErrors.ErrInvalidState
	}
	o.Status = status
	if deliveredAt != nil {
		o.DeliveredAt = deliveredAt
	}
	return nil
}

// Delete removes the stored order.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id int64) error {
	s.Deleted = append(s.Deleted, id)
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	if _, ok := s.Orders[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Orders, id)
	return nil
}

func (s *OrderRepositoryStub) sorted() []model.Order {
	out := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// StockCall stores information about AdjustStock invocations.
type StockCall struct {
	ProductID int64
	SizeIndex int
	Quantity  int
}

// ProductRepositoryStub keeps products in memory and applies stock decrements.
type ProductRepositoryStub struct {
	AdjustStockFn func(context.Context, int64, int, int) (*model.Product, error)
	GetByIDFn     func(context.Context, int64) (*model.Product, error)
	Err           error

	Products   map[int64]*model.Product
	StockCalls []StockCall
	Deleted    []int64
	mu         sync.Mutex
	next       int64
}

// NewProductRepositoryStub constructs stub seeded with the given products.
func NewProductRepositoryStub(products ...model.Product) *ProductRepositoryStub {
	s := &ProductRepositoryStub{Products: make(map[int64]*model.Product)}
	for _, p := range products {
		s.Put(p)
	}
	return s
}

// Put stores a product as-is.
func (s *ProductRepositoryStub) Put(p model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Products == nil {
		s.Products = make(map[int64]*model.Product)
	}
	if p.ID > s.next {
		s.next = p.ID
	}
	s.Products[p.ID] = &p
}

// Get returns the stored product for assertions.
func (s *ProductRepositoryStub) Get(id int64) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Products[id]
	if !ok {
		return model.Product{}, false
	}
	return *p, true
}

// Create assigns an identifier and stores the product.
func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	s.next++
	stored := *product
	stored.ID = s.next
	s.mu.Unlock()
	s.Put(stored)
	return &stored, nil
}

// GetByID returns a copy of the stored product.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Get(id)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &p, nil
}

// List returns products ordered by identifier, newest first.
func (s *ProductRepositoryStub) List(ctx context.Context) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Update overwrites a stored product.
func (s *ProductRepositoryStub) Update(ctx context.Context, product *model.Product) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Get(product.ID); !ok {
		return domainErrors.ErrNotFound
	}
	s.Put(*product)
	return nil
}

// Delete removes a stored product.
func (s *ProductRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, id)
	if _, ok := s.Products[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Products, id)
	return nil
}

// AdjustStock records the call and decrements stock like the database does.
func (s *ProductRepositoryStub) AdjustStock(ctx context.Context, productID int64, sizeIndex, quantity int) (*model.Product, error) {
	s.mu.Lock()
	s.StockCalls = append(s.StockCalls, StockCall{ProductID: productID, SizeIndex: sizeIndex, Quantity: quantity})
	s.mu.Unlock()
	if s.AdjustStockFn != nil {
		return s.AdjustStockFn(ctx, productID, sizeIndex, quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Products[productID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	p.Stock, p.Sizes = model.DecrementStock(p.Stock, sizeIndex, quantity)
	out := *p
	return &out, nil
}
