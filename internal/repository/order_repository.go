package repository

import (
	"github.com/nimamdd/medident/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	// Create persists the order together with its nested checkout snapshot
	// and items in one insert graph.
	Create(order *models.Order) error
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	GetByOrderNumberForUser(orderNumber, userID string) (*models.Order, error)
	// LockByOrderNumber loads the order row under FOR UPDATE so the
	// read-then-write of a status transition is serialized per order.
	LockByOrderNumber(orderNumber string) (*models.Order, error)
	UpdatePaymentStatus(id string, payment models.PaymentStatus, status models.OrderStatus) error
	UpdateFulfillmentStatus(id string, fulfillment models.FulfillmentStatus) error
	ListByUser(userID string) ([]models.Order, error)
	ListAll() ([]models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("User").
		Preload("Checkout").
		Preload("Checkout.Items").
		Preload("Checkout.Items.Product").
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByOrderNumberForUser(orderNumber, userID string) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Checkout").
		Preload("Checkout.Items").
		Preload("Checkout.Items.Product").
		Where("order_number = ? AND user_id = ?", orderNumber, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) LockByOrderNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_number = ?", orderNumber).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) UpdatePaymentStatus(id string, payment models.PaymentStatus, status models.OrderStatus) error {
	return r.db.Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": payment,
			"status":         status,
		}).Error
}

func (r *orderRepository) UpdateFulfillmentStatus(id string, fulfillment models.FulfillmentStatus) error {
	return r.db.Model(&models.Order{}).
		Where("id = ?", id).
		UpdateColumn("fulfillment_status", fulfillment).
		Error
}

func (r *orderRepository) ListByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("Checkout").
		Preload("Checkout.Items").
		Preload("Checkout.Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("User").
		Preload("Checkout").
		Preload("Checkout.Items").
		Preload("Checkout.Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}
