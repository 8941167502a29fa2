package services_test

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/nimamdd/medident/internal/models"
	"github.com/nimamdd/medident/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeStore is an in-memory repository.Store. The single mutex plays the role
// of the database row locks: everything inside Transaction is serialized, and
// a returned error restores the pre-transaction snapshot, mirroring rollback.
type fakeStore struct {
	mu    *sync.Mutex
	state *fakeState
	held  bool
}

type fakeState struct {
	Users      map[string]*models.User
	Categories map[string]*models.Category
	Products   map[string]*models.Product
	Reviews    map[string]*models.ProductReview
	Orders     map[string]*models.Order
	Daily      map[string]*models.DailySales
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		mu: &sync.Mutex{},
		state: &fakeState{
			Users:      make(map[string]*models.User),
			Categories: make(map[string]*models.Category),
			Products:   make(map[string]*models.Product),
			Reviews:    make(map[string]*models.ProductReview),
			Orders:     make(map[string]*models.Order),
			Daily:      make(map[string]*models.DailySales),
		},
	}
}

func jsonClone[T any](v T) T {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return out
}

// lock acquires the store mutex unless it is already held by a transaction.
func (s *fakeStore) lock() func() {
	if s.held {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *fakeStore) Transaction(fn func(repository.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := jsonClone(s.state)
	tx := &fakeStore{mu: s.mu, state: s.state, held: true}
	if err := fn(tx); err != nil {
		*s.state = *snapshot
		return err
	}
	return nil
}

func (s *fakeStore) Users() repository.UserRepository { return fakeUsers{s} }

func (s *fakeStore) Categories() repository.CategoryRepository { return fakeCategories{s} }

func (s *fakeStore) Products() repository.ProductRepository { return fakeProducts{s} }

func (s *fakeStore) Orders() repository.OrderRepository { return fakeOrders{s} }

func (s *fakeStore) Sales() repository.SalesRepository { return fakeSales{s} }

type fakeUsers struct{ s *fakeStore }

func (r fakeUsers) Create(user *models.User) error {
	defer r.s.lock()()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now().UTC()
	}
	r.s.state.Users[user.ID] = jsonClone(user)
	return nil
}

func (r fakeUsers) GetByID(id string) (*models.User, error) {
	defer r.s.lock()()
	user, ok := r.s.state.Users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return jsonClone(user), nil
}

func (r fakeUsers) GetByPhone(phone string) (*models.User, error) {
	defer r.s.lock()()
	for _, user := range r.s.state.Users {
		if user.Phone == phone {
			return jsonClone(user), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeUsers) Update(user *models.User) error {
	defer r.s.lock()()
	r.s.state.Users[user.ID] = jsonClone(user)
	return nil
}

func (r fakeUsers) GetAll() ([]models.User, error) {
	defer r.s.lock()()
	var out []models.User
	for _, user := range r.s.state.Users {
		out = append(out, *jsonClone(user))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateJoined.After(out[j].DateJoined) })
	return out, nil
}

type fakeCategories struct{ s *fakeStore }

func (r fakeCategories) Create(category *models.Category) error {
	defer r.s.lock()()
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	r.s.state.Categories[category.ID] = jsonClone(category)
	return nil
}

func (r fakeCategories) GetBySlug(slug string) (*models.Category, error) {
	defer r.s.lock()()
	for _, category := range r.s.state.Categories {
		if category.Slug == slug {
			return jsonClone(category), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeCategories) GetAll() ([]models.Category, error) {
	defer r.s.lock()()
	var out []models.Category
	for _, category := range r.s.state.Categories {
		out = append(out, *jsonClone(category))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

type fakeProducts struct{ s *fakeStore }

func (r fakeProducts) Create(product *models.Product) error {
	defer r.s.lock()()
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	r.s.state.Products[product.ID] = jsonClone(product)
	return nil
}

func (r fakeProducts) GetByID(id string) (*models.Product, error) {
	defer r.s.lock()()
	product, ok := r.s.state.Products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return jsonClone(product), nil
}

func (r fakeProducts) GetBySlug(slug string) (*models.Product, error) {
	defer r.s.lock()()
	for _, product := range r.s.state.Products {
		if product.Slug == slug {
			return jsonClone(product), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeProducts) GetByIDs(ids []string) ([]models.Product, error) {
	defer r.s.lock()()
	var out []models.Product
	for _, id := range ids {
		if product, ok := r.s.state.Products[id]; ok {
			out = append(out, *jsonClone(product))
		}
	}
	return out, nil
}

// LockByIDs behaves like GetByIDs; exclusivity comes from the store mutex
// held for the whole transaction.
func (r fakeProducts) LockByIDs(ids []string) ([]models.Product, error) {
	return r.GetByIDs(ids)
}

func (r fakeProducts) DecrementStock(id string, quantity int) error {
	defer r.s.lock()()
	product, ok := r.s.state.Products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if product.StockQuantity != nil {
		*product.StockQuantity -= quantity
	}
	return nil
}

func (r fakeProducts) List(categorySlug string) ([]models.Product, error) {
	defer r.s.lock()()
	var out []models.Product
	for _, product := range r.s.state.Products {
		if categorySlug != "" {
			category, ok := r.s.state.Categories[product.CategoryID]
			if !ok || category.Slug != categorySlug {
				continue
			}
		}
		out = append(out, *jsonClone(product))
	}
	return out, nil
}

func (r fakeProducts) CreateReview(review *models.ProductReview) error {
	defer r.s.lock()()
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	r.s.state.Reviews[review.ID] = jsonClone(review)
	return nil
}

func (r fakeProducts) GetReviewByID(id string) (*models.ProductReview, error) {
	defer r.s.lock()()
	review, ok := r.s.state.Reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return jsonClone(review), nil
}

func (r fakeProducts) UpdateReview(review *models.ProductReview) error {
	defer r.s.lock()()
	r.s.state.Reviews[review.ID] = jsonClone(review)
	return nil
}

type fakeOrders struct{ s *fakeStore }

func (r fakeOrders) Create(order *models.Order) error {
	defer r.s.lock()()
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	if order.Checkout != nil {
		if order.Checkout.ID == "" {
			order.Checkout.ID = uuid.NewString()
		}
		order.Checkout.OrderID = order.ID
		if order.Checkout.CreatedAt.IsZero() {
			order.Checkout.CreatedAt = order.CreatedAt
		}
		for i := range order.Checkout.Items {
			item := &order.Checkout.Items[i]
			if item.ID == "" {
				item.ID = uuid.NewString()
			}
			item.CheckoutID = order.Checkout.ID
		}
	}
	r.s.state.Orders[order.ID] = jsonClone(order)
	return nil
}

func (r fakeOrders) find(orderNumber string) *models.Order {
	for _, order := range r.s.state.Orders {
		if order.OrderNumber == orderNumber {
			return order
		}
	}
	return nil
}

func (r fakeOrders) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	defer r.s.lock()()
	order := r.find(orderNumber)
	if order == nil {
		return nil, gorm.ErrRecordNotFound
	}
	out := jsonClone(order)
	if user, ok := r.s.state.Users[out.UserID]; ok {
		out.User = jsonClone(user)
	}
	return out, nil
}

func (r fakeOrders) GetByOrderNumberForUser(orderNumber, userID string) (*models.Order, error) {
	defer r.s.lock()()
	order := r.find(orderNumber)
	if order == nil || order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return jsonClone(order), nil
}

func (r fakeOrders) LockByOrderNumber(orderNumber string) (*models.Order, error) {
	defer r.s.lock()()
	order := r.find(orderNumber)
	if order == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return jsonClone(order), nil
}

func (r fakeOrders) UpdatePaymentStatus(id string, payment models.PaymentStatus, status models.OrderStatus) error {
	defer r.s.lock()()
	order, ok := r.s.state.Orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.PaymentStatus = payment
	order.Status = status
	return nil
}

func (r fakeOrders) UpdateFulfillmentStatus(id string, fulfillment models.FulfillmentStatus) error {
	defer r.s.lock()()
	order, ok := r.s.state.Orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.FulfillmentStatus = fulfillment
	return nil
}

func (r fakeOrders) ListByUser(userID string) ([]models.Order, error) {
	defer r.s.lock()()
	var out []models.Order
	for _, order := range r.s.state.Orders {
		if order.UserID == userID {
			out = append(out, *jsonClone(order))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r fakeOrders) ListAll() ([]models.Order, error) {
	defer r.s.lock()()
	var out []models.Order
	for _, order := range r.s.state.Orders {
		out = append(out, *jsonClone(order))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeSales struct{ s *fakeStore }

func (r fakeSales) IncrementDaily(date time.Time, amountToman int64) error {
	defer r.s.lock()()
	key := date.Format("2006-01-02")
	if row, ok := r.s.state.Daily[key]; ok {
		row.TotalToman += amountToman
		row.OrderCount++
		return nil
	}
	r.s.state.Daily[key] = &models.DailySales{
		Date:       date,
		TotalToman: amountToman,
		OrderCount: 1,
	}
	return nil
}

func (r fakeSales) ListDaily() ([]models.DailySales, error) {
	defer r.s.lock()()
	var out []models.DailySales
	for _, row := range r.s.state.Daily {
		out = append(out, *jsonClone(row))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r fakeSales) PaidTotals() (int64, int64, error) {
	defer r.s.lock()()
	var revenue, orders int64
	for _, order := range r.s.state.Orders {
		if order.PaymentStatus == models.PaymentPaid {
			revenue += order.AmountToman
			orders++
		}
	}
	return revenue, orders, nil
}

func (r fakeSales) CountCustomers() (int64, error) {
	defer r.s.lock()()
	seen := make(map[string]struct{})
	for _, order := range r.s.state.Orders {
		seen[order.UserID] = struct{}{}
	}
	return int64(len(seen)), nil
}

func (r fakeSales) TopProducts(limit int) ([]repository.ProductSales, error) {
	defer r.s.lock()()
	quantities := make(map[string]int64)
	for _, order := range r.s.state.Orders {
		if order.PaymentStatus != models.PaymentPaid || order.Checkout == nil {
			continue
		}
		for _, item := range order.Checkout.Items {
			quantities[item.ProductID] += int64(item.Quantity)
		}
	}

	var out []repository.ProductSales
	for id, qty := range quantities {
		row := repository.ProductSales{ProductID: id, Quantity: qty}
		if product, ok := r.s.state.Products[id]; ok {
			row.Title = product.Title
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
