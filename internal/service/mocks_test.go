package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Mrfarooqui038501/Ecommerce/internal/cache"
	"github.com/Mrfarooqui038501/Ecommerce/internal/domain"
	"github.com/Mrfarooqui038501/Ecommerce/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memState is the in-memory document store backing the service tests.
type memState struct {
	users    map[primitive.ObjectID]domain.User
	products map[primitive.ObjectID]domain.Product
	carts    map[primitive.ObjectID]domain.Cart // keyed by owning user
	orders   map[primitive.ObjectID]domain.Order
}

func newMemState() *memState {
	return &memState{
		users:    make(map[primitive.ObjectID]domain.User),
		products: make(map[primitive.ObjectID]domain.Product),
		carts:    make(map[primitive.ObjectID]domain.Cart),
		orders:   make(map[primitive.ObjectID]domain.Order),
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.carts {
		v.Items = append([]domain.CartItem(nil), v.Items...)
		c.carts[k] = v
	}
	for k, v := range s.orders {
		v.Items = append([]domain.OrderItem(nil), v.Items...)
		c.orders[k] = v
	}
	return c
}

// memFixture implements repository.TxRunner with clone-and-restore
// semantics: a failing transaction leaves the pre-state fully intact,
// and concurrent transactions serialize on the mutex.
type memFixture struct {
	mu    sync.Mutex
	state *memState
}

func newFixture() *memFixture {
	return &memFixture{state: newMemState()}
}

func (f *memFixture) WithTransaction(_ context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	snapshot := f.state.clone()
	if err := fn(context.Background()); err != nil {
		f.state = snapshot
		return err
	}
	return nil
}

func (f *memFixture) addProduct(name string, price float64, quantity int) domain.Product {
	p := domain.Product{
		ID:        primitive.NewObjectID(),
		ProductID: name,
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
	f.state.products[p.ID] = p
	return p
}

func (f *memFixture) addUser(name, email string) domain.User {
	u := domain.User{
		ID:    primitive.NewObjectID(),
		Name:  name,
		Email: email,
	}
	f.state.users[u.ID] = u
	return u
}

func (f *memFixture) productQuantity(id primitive.ObjectID) int {
	return f.state.products[id].Quantity
}

func (f *memFixture) cartOf(userID primitive.ObjectID) (domain.Cart, bool) {
	c, ok := f.state.carts[userID]
	return c, ok
}

func (f *memFixture) ordersOf(userID primitive.ObjectID) []domain.Order {
	var out []domain.Order
	for _, o := range f.state.orders {
		if o.User == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type memUsers struct{ f *memFixture }

func (m memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := m.f.state.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (m memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.f.state.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m memUsers) Insert(_ context.Context, user *domain.User) error {
	for _, u := range m.f.state.users {
		if u.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	user.ID = primitive.NewObjectID()
	m.f.state.users[user.ID] = *user
	return nil
}

func (m memUsers) SetLabel(_ context.Context, id primitive.ObjectID, label string) error {
	u, ok := m.f.state.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.UserID = label
	m.f.state.users[id] = u
	return nil
}

func (m memUsers) Count(context.Context) (int64, error) {
	return int64(len(m.f.state.users)), nil
}

type memProducts struct{ f *memFixture }

func (m memProducts) List(context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.f.state.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m memProducts) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	p, ok := m.f.state.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (m memProducts) FindByLabel(_ context.Context, productID string) (*domain.Product, error) {
	for _, p := range m.f.state.products {
		if p.ProductID == productID {
			return &p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m memProducts) Insert(_ context.Context, product *domain.Product) error {
	for _, p := range m.f.state.products {
		if p.ProductID == product.ProductID {
			return repository.ErrDuplicateLabel
		}
	}
	product.ID = primitive.NewObjectID()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	m.f.state.products[product.ID] = *product
	return nil
}

func (m memProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.f.state.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(m.f.state.products, id)
	return nil
}

func (m memProducts) AdjustStock(_ context.Context, id primitive.ObjectID, delta int) error {
	p, ok := m.f.state.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	if p.Quantity+delta < 0 {
		return repository.ErrStockConflict
	}
	p.Quantity += delta
	m.f.state.products[id] = p
	return nil
}

type memCarts struct{ f *memFixture }

func (m memCarts) FindByUser(_ context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	c, ok := m.f.state.carts[userID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	c.Items = append([]domain.CartItem(nil), c.Items...)
	return &c, nil
}

func (m memCarts) Save(_ context.Context, cart *domain.Cart) error {
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	stored := *cart
	stored.Items = append([]domain.CartItem(nil), cart.Items...)
	m.f.state.carts[cart.User] = stored
	return nil
}

func (m memCarts) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	if _, ok := m.f.state.carts[userID]; !ok {
		return repository.ErrCartNotFound
	}
	delete(m.f.state.carts, userID)
	return nil
}

type memOrders struct{ f *memFixture }

func (m memOrders) Insert(_ context.Context, order *domain.Order) error {
	order.ID = primitive.NewObjectID()
	stored := *order
	stored.Items = append([]domain.OrderItem(nil), order.Items...)
	m.f.state.orders[order.ID] = stored
	return nil
}

func (m memOrders) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	return m.f.ordersOf(userID), nil
}

func (m memOrders) FindBySessionID(_ context.Context, sessionID string) (*domain.Order, error) {
	for _, o := range m.f.state.orders {
		if o.StripeSessionID == sessionID {
			return &o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m memOrders) SetSessionID(_ context.Context, orderID primitive.ObjectID, sessionID string) error {
	o, ok := m.f.state.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.StripeSessionID = sessionID
	m.f.state.orders[orderID] = o
	return nil
}

// noopCache always misses so tests exercise the repository path.
type noopCache struct{}

func (noopCache) Get(context.Context, string) (*domain.CartView, error) {
	return nil, cache.ErrCacheMiss
}
func (noopCache) Set(context.Context, string, *domain.CartView) error { return nil }
func (noopCache) Delete(context.Context, string) error                { return nil }

func newCartService(f *memFixture) *CartService {
	return NewCartService(memProducts{f}, memCarts{f}, f, noopCache{})
}
