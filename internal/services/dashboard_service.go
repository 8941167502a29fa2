package services

import (
	"math"

	"github.com/nimamdd/medident/internal/repository"
)

const topProductsLimit = 5

// Overview is the admin dashboard aggregate, recomputed on every request.
type Overview struct {
	TotalRevenueToman int64                     `json:"totalRevenueToman"`
	TotalOrders       int64                     `json:"totalOrders"`
	TotalCustomers    int64                     `json:"totalCustomers"`
	ConversionRate    float64                   `json:"conversionRate"`
	TopProducts       []repository.ProductSales `json:"topProducts"`
}

type DashboardService interface {
	GetOverview() (*Overview, error)
}

type dashboardService struct {
	store repository.Store
}

func NewDashboardService(store repository.Store) DashboardService {
	return &dashboardService{store: store}
}

func (s *dashboardService) GetOverview() (*Overview, error) {
	revenue, orders, err := s.store.Sales().PaidTotals()
	if err != nil {
		return nil, err
	}

	customers, err := s.store.Sales().CountCustomers()
	if err != nil {
		return nil, err
	}

	// Paid orders over distinct customers, defined as exactly 0 when nobody
	// has ordered yet.
	var rate float64
	if customers > 0 {
		rate = math.Round(float64(orders)/float64(customers)*10000) / 10000
	}

	top, err := s.store.Sales().TopProducts(topProductsLimit)
	if err != nil {
		return nil, err
	}

	return &Overview{
		TotalRevenueToman: revenue,
		TotalOrders:       orders,
		TotalCustomers:    customers,
		ConversionRate:    rate,
		TopProducts:       top,
	}, nil
}
