// Package testutil holds in-memory repositories for handler and service tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopwave/ecommerce-backend/internal/models"
	"github.com/shopwave/ecommerce-backend/internal/repository"
)

// Store backs the in-memory repositories. Every read and write copies so
// services never share memory with the store, as with a real database.
type Store struct {
	mu       sync.Mutex
	clock    time.Time
	users    map[uuid.UUID]models.User
	products map[uuid.UUID]models.Product
	carts    map[uuid.UUID]models.Cart
	orders   map[uuid.UUID]models.Order
	reviews  []models.Review
	features []models.FeatureImage
	audits   []models.AuditLog
}

func NewStore() *Store {
	return &Store{
		clock:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		users:    map[uuid.UUID]models.User{},
		products: map[uuid.UUID]models.Product{},
		carts:    map[uuid.UUID]models.Cart{},
		orders:   map[uuid.UUID]models.Order{},
	}
}

func (m *Store) stamp(base *models.BaseModel) {
	m.clock = m.clock.Add(time.Second)
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = m.clock
	}
	base.UpdatedAt = m.clock
}

func (m *Store) AddProduct(title string, price, sale float64, stock int) models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := models.Product{
		Title:      title,
		Category:   "men",
		Brand:      "nike",
		Price:      decimal.NewFromFloat(price),
		SalePrice:  decimal.NewFromFloat(sale),
		TotalStock: stock,
	}
	m.stamp(&p.BaseModel)
	m.products[p.ID] = p
	return p
}

func (m *Store) AddUser(name string, role models.UserRole) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := models.User{UserName: name, Email: strings.ToLower(name) + "@example.com", Role: role}
	_ = u.SetPassword("secret123")
	m.stamp(&u.BaseModel)
	m.users[u.ID] = u
	return u
}

func (m *Store) DeleteProduct(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
}

func (m *Store) CartFor(userID uuid.UUID) (models.Cart, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.carts {
		if c.UserID == userID {
			return copyCart(c), true
		}
	}
	return models.Cart{}, false
}

func (m *Store) Order(id uuid.UUID) models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyOrder(m.orders[id])
}

func copyCart(c models.Cart) models.Cart {
	c.Items = append([]models.CartItem(nil), c.Items...)
	for i := range c.Items {
		c.Items[i].Product = nil
	}
	return c
}

func copyOrder(o models.Order) models.Order {
	o.CartItems = append([]models.OrderItem(nil), o.CartItems...)
	for i := range o.CartItems {
		o.CartItems[i].Product = nil
	}
	o.User = nil
	return o
}

// users

type Users struct{ *Store }

var _ repository.UserRepository = Users{}

func (r Users) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.stamp(&user.BaseModel)
	r.users[user.ID] = *user
	return nil
}

func (r Users) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r Users) GetByIDs(_ context.Context, ids []uuid.UUID) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r Users) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r Users) UpdateRole(_ context.Context, id uuid.UUID, role models.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	r.users[id] = u
	return nil
}

func (r Users) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r Users) List(_ context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// products

type Products struct{ *Store }

var _ repository.ProductRepository = Products{}

func (r Products) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stamp(&product.BaseModel)
	r.products[product.ID] = *product
	return nil
}

func (r Products) GetByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r Products) GetByIDs(_ context.Context, ids []uuid.UUID) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r Products) Search(_ context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in := func(v string, set []string) bool {
		if len(set) == 0 {
			return true
		}
		for _, s := range set {
			if s == v {
				return true
			}
		}
		return false
	}
	var matched []models.Product
	for _, p := range r.products {
		if in(p.Category, filter.Categories) && in(p.Brand, filter.Brands) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch filter.SortBy {
		case repository.SortPriceHighToLow:
			return a.Price.GreaterThan(b.Price)
		case repository.SortTitleAToZ:
			return a.Title < b.Title
		case repository.SortTitleZToA:
			return a.Title > b.Title
		}
		return a.Price.LessThan(b.Price)
	})
	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

func (r Products) SearchKeyword(_ context.Context, keyword string) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	keyword = strings.ToLower(keyword)
	var out []models.Product
	for _, p := range r.products {
		hay := strings.ToLower(strings.Join([]string{p.Title, p.Description, p.Category, p.Brand}, " "))
		if strings.Contains(hay, keyword) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r Products) UpdateAverageReview(_ context.Context, id uuid.UUID, average decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.AverageReview = average
	r.products[id] = p
	return nil
}

// carts

type Carts struct {
	*Store
	SaveErr error
}

var _ repository.CartRepository = (*Carts)(nil)

func (r *Carts) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Cart, error) {
	c, ok := r.CartFor(userID)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *Carts) GetByID(_ context.Context, id uuid.UUID) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c = copyCart(c)
	return &c, nil
}

func (r *Carts) Save(_ context.Context, cart *models.Cart) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if cart.ID == uuid.Nil {
		for _, c := range r.carts {
			if c.UserID == cart.UserID {
				return repository.ErrDuplicate
			}
		}
	}
	r.stamp(&cart.BaseModel)
	cart.RecalculateTotal()
	r.carts[cart.ID] = copyCart(*cart)
	return nil
}

// orders

type Orders struct{ *Store }

var _ repository.OrderRepository = Orders{}

func (r Orders) CreateWithCartPrune(_ context.Context, order *models.Order, cartID *uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stamp(&order.BaseModel)
	r.orders[order.ID] = copyOrder(*order)

	if cartID == nil {
		return nil
	}
	c, ok := r.carts[*cartID]
	if !ok || c.UserID != order.UserID {
		return nil
	}
	c = copyCart(c)
	if c.RemoveProducts(order.ProductIDs()) > 0 {
		c.RecalculateTotal()
		r.carts[c.ID] = c
	}
	return nil
}

func (r Orders) GetByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o = copyOrder(o)
	return &o, nil
}

func (r Orders) list(keep func(models.Order) bool) []models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r Orders) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	return r.list(func(o models.Order) bool { return o.UserID == userID }), nil
}

func (r Orders) ListAll(_ context.Context) ([]models.Order, error) {
	return r.list(func(models.Order) bool { return true }), nil
}

func (r Orders) Update(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[order.ID]
	if !ok {
		return repository.ErrNotFound
	}
	o.PaymentStatus = order.PaymentStatus
	o.OrderStatus = order.OrderStatus
	o.RazorpayOrderID = order.RazorpayOrderID
	o.RazorpayPaymentID = order.RazorpayPaymentID
	r.orders[o.ID] = o
	return nil
}

func (r Orders) UpdateStatus(_ context.Context, id uuid.UUID, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.OrderStatus = status
	r.orders[id] = o
	return nil
}

func (r Orders) UpdatePaymentStatus(_ context.Context, id uuid.UUID, status models.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.PaymentStatus = status
	r.orders[id] = o
	return nil
}

func (r Orders) ExistsWithProductInStatuses(_ context.Context, userID, productID uuid.UUID, statuses []models.OrderStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.UserID != userID {
			continue
		}
		statusOK := false
		for _, s := range statuses {
			if o.OrderStatus == s {
				statusOK = true
			}
		}
		if !statusOK {
			continue
		}
		if _, ok := o.ProductIDs()[productID]; ok {
			return true, nil
		}
	}
	return false, nil
}

// reviews

type Reviews struct{ *Store }

var _ repository.ReviewRepository = Reviews{}

func (r Reviews) Exists(_ context.Context, productID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.ProductID == productID && rv.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r Reviews) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.reviews {
		if rv.ProductID == review.ProductID && rv.UserID == review.UserID {
			return repository.ErrDuplicate
		}
	}
	r.stamp(&review.BaseModel)
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r Reviews) ListByProduct(_ context.Context, productID uuid.UUID) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for i := len(r.reviews) - 1; i >= 0; i-- {
		if r.reviews[i].ProductID == productID {
			out = append(out, r.reviews[i])
		}
	}
	return out, nil
}

// feature images

type Features struct{ *Store }

var _ repository.FeatureRepository = Features{}

func (r Features) Create(_ context.Context, image *models.FeatureImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stamp(&image.BaseModel)
	r.features = append(r.features, *image)
	return nil
}

func (r Features) List(_ context.Context) ([]models.FeatureImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.FeatureImage, 0, len(r.features))
	for i := len(r.features) - 1; i >= 0; i-- {
		out = append(out, r.features[i])
	}
	return out, nil
}

// audit log

type AuditLogs struct{ *Store }

var _ repository.AuditLogRepository = AuditLogs{}

func (r AuditLogs) Create(_ context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stamp(&entry.BaseModel)
	r.audits = append(r.audits, *entry)
	return nil
}

// Entries returns the audit entries written so far, oldest first.
func (r AuditLogs) Entries() []models.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.AuditLog(nil), r.audits...)
}
