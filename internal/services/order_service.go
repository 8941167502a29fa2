package services

import (
	"errors"

	"github.com/nimamdd/medident/internal/models"
	"github.com/nimamdd/medident/internal/repository"

	"gorm.io/gorm"
)

type OrderService interface {
	// SetPaymentStatus transitions payment_status for the order. On the
	// payment-confirmation edge (previous status != PAID, new status = PAID)
	// it also marks the order COMPLETED and records the sale exactly once.
	SetPaymentStatus(orderNumber string, status models.PaymentStatus) (*models.Order, error)
	// SetFulfillmentStatus sets fulfillment_status unconditionally. No
	// ordering is enforced between fulfillment states; the surrounding admin
	// workflow is the source of truth for legitimate transitions.
	SetFulfillmentStatus(orderNumber string, status models.FulfillmentStatus) (*models.Order, error)

	GetOrderForUser(orderNumber, userID string) (*models.Order, error)
	ListOrdersForUser(userID string) ([]models.Order, error)
	GetOrder(orderNumber string) (*models.Order, error)
	ListOrders() ([]models.Order, error)
}

type orderService struct {
	store repository.Store
	sales SalesService
}

func NewOrderService(store repository.Store, sales SalesService) OrderService {
	return &orderService{store: store, sales: sales}
}

func (s *orderService) SetPaymentStatus(orderNumber string, status models.PaymentStatus) (*models.Order, error) {
	if !models.ValidPaymentStatus(status) {
		return nil, &ValidationError{Reason: "invalid payment status"}
	}

	var updated *models.Order
	err := s.store.Transaction(func(tx repository.Store) error {
		// The row lock makes the read of the previous status and the write
		// of the new one atomic per order, so two concurrent confirmations
		// cannot both observe "not yet PAID".
		order, err := tx.Orders().LockByOrderNumber(orderNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		wasPaid := order.PaymentStatus == models.PaymentPaid

		order.PaymentStatus = status
		if status == models.PaymentPaid {
			order.Status = models.OrderCompleted
		}
		if err := tx.Orders().UpdatePaymentStatus(order.ID, order.PaymentStatus, order.Status); err != nil {
			return err
		}

		if !wasPaid && status == models.PaymentPaid {
			if err := s.sales.RecordSale(tx, order); err != nil {
				return err
			}
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *orderService) SetFulfillmentStatus(orderNumber string, status models.FulfillmentStatus) (*models.Order, error) {
	if !models.ValidFulfillmentStatus(status) {
		return nil, &ValidationError{Reason: "invalid fulfillment status"}
	}

	var updated *models.Order
	err := s.store.Transaction(func(tx repository.Store) error {
		order, err := tx.Orders().LockByOrderNumber(orderNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		order.FulfillmentStatus = status
		if err := tx.Orders().UpdateFulfillmentStatus(order.ID, status); err != nil {
			return err
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *orderService) GetOrderForUser(orderNumber, userID string) (*models.Order, error) {
	order, err := s.store.Orders().GetByOrderNumberForUser(orderNumber, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrdersForUser(userID string) ([]models.Order, error) {
	return s.store.Orders().ListByUser(userID)
}

func (s *orderService) GetOrder(orderNumber string) (*models.Order, error) {
	order, err := s.store.Orders().GetByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrders() ([]models.Order, error) {
	return s.store.Orders().ListAll()
}
