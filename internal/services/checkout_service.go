package services

import (
	"strings"

	"github.com/nimamdd/medident/internal/models"
	"github.com/nimamdd/medident/internal/repository"

	"github.com/google/uuid"
)

// CartItem is one requested line of a checkout.
type CartItem struct {
	ProductID string
	Quantity  int
}

// ShippingSnapshot carries the contact data frozen into the checkout record.
type ShippingSnapshot struct {
	Phone      string
	NationalID string
	City       string
	Address    string
	PostalCode string
}

type CheckoutService interface {
	// CreateOrder validates the cart against the catalog inside a single
	// transaction and either persists Order+Checkout+Items and decrements
	// stock, or fails without any side effects.
	CreateOrder(userID string, snapshot ShippingSnapshot, clientTotalToman int64, items []CartItem) (*models.Order, error)
}

type checkoutService struct {
	store repository.Store
}

func NewCheckoutService(store repository.Store) CheckoutService {
	return &checkoutService{store: store}
}

// generateOrderNumber returns a 16-char uppercase hex token, unique enough at
// this scale and safe to put in a URL.
func generateOrderNumber() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
}

func (s *checkoutService) CreateOrder(userID string, snapshot ShippingSnapshot, clientTotalToman int64, items []CartItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Reason: "at least one item is required"}
	}
	for _, item := range items {
		if item.ProductID == "" {
			return nil, &ValidationError{Reason: "productId is required"}
		}
		if item.Quantity < 1 {
			return nil, &ValidationError{Reason: "quantity must be at least 1"}
		}
	}
	if clientTotalToman < 0 {
		return nil, &ValidationError{Reason: "clientTotalToman must not be negative"}
	}

	var created *models.Order
	err := s.store.Transaction(func(tx repository.Store) error {
		ids := make([]string, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}

		// Row-level locks serialize concurrent checkouts touching the same
		// products; stock is re-read under the lock, never cached.
		products, err := tx.Products().LockByIDs(ids)
		if err != nil {
			return err
		}

		byID := make(map[string]*models.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		var missing []string
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return &ProductsNotFoundError{IDs: missing}
		}

		// A product may appear on several cart lines; availability is checked
		// against the summed quantity, not per line.
		requested := make(map[string]int, len(items))
		for _, item := range items {
			requested[item.ProductID] += item.Quantity
		}
		checked := make(map[string]bool, len(requested))
		for _, item := range items {
			if checked[item.ProductID] {
				continue
			}
			checked[item.ProductID] = true
			product := byID[item.ProductID]

			if !product.InStock {
				return &OutOfStockError{Title: product.Title}
			}
			if product.StockQuantity != nil && requested[item.ProductID] > *product.StockQuantity {
				return &InsufficientStockError{Title: product.Title}
			}
		}

		var serverTotal int64
		lines := make([]models.CheckoutItem, 0, len(items))
		for _, item := range items {
			product := byID[item.ProductID]

			// The catalog price is authoritative; client-submitted prices are
			// never trusted.
			unitPrice := product.PriceToman
			lineTotal := unitPrice * int64(item.Quantity)
			serverTotal += lineTotal

			lines = append(lines, models.CheckoutItem{
				ProductID:      product.ID,
				Quantity:       item.Quantity,
				UnitPriceToman: unitPrice,
				LineTotalToman: lineTotal,
			})
		}

		// Exact match required: any difference means price tampering or a
		// stale cart, and the caller has to resubmit.
		if clientTotalToman != serverTotal {
			return ErrTotalMismatch
		}

		order := &models.Order{
			OrderNumber:       generateOrderNumber(),
			UserID:            userID,
			AmountToman:       serverTotal,
			Status:            models.OrderRequiresPayment,
			PaymentStatus:     models.PaymentUnpaid,
			FulfillmentStatus: models.FulfillmentUntracked,
			Checkout: &models.Checkout{
				Phone:            snapshot.Phone,
				NationalID:       snapshot.NationalID,
				City:             snapshot.City,
				Address:          snapshot.Address,
				PostalCode:       snapshot.PostalCode,
				ClientTotalToman: clientTotalToman,
				Items:            lines,
			},
		}
		if err := tx.Orders().Create(order); err != nil {
			return err
		}

		decremented := make(map[string]bool, len(requested))
		for _, item := range items {
			if decremented[item.ProductID] {
				continue
			}
			decremented[item.ProductID] = true
			product := byID[item.ProductID]
			if product.StockQuantity == nil {
				continue
			}
			if err := tx.Products().DecrementStock(product.ID, requested[item.ProductID]); err != nil {
				return err
			}
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
