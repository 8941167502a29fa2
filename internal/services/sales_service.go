package services

import (
	"time"

	"github.com/nimamdd/medident/internal/models"
	"github.com/nimamdd/medident/internal/repository"
)

type SalesService interface {
	// RecordSale adds the order to the DailySales row for its creation day.
	// It must be called exactly once per order, on the payment-confirmation
	// edge, inside the same transaction that flips the payment status. The
	// aggregator itself does not deduplicate by order id.
	RecordSale(tx repository.Store, order *models.Order) error
	GetDailySales() ([]models.DailySales, error)
}

type salesService struct {
	store repository.Store
}

func NewSalesService(store repository.Store) SalesService {
	return &salesService{store: store}
}

// SaleDate normalizes a timestamp to its UTC calendar day, the DailySales key.
func SaleDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *salesService) RecordSale(tx repository.Store, order *models.Order) error {
	return tx.Sales().IncrementDaily(SaleDate(order.CreatedAt), order.AmountToman)
}

func (s *salesService) GetDailySales() ([]models.DailySales, error) {
	return s.store.Sales().ListDaily()
}
