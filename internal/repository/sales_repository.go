package repository

import (
	"time"

	"github.com/nimamdd/medident/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductSales is one row of the dashboard top-products aggregate.
type ProductSales struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int64  `json:"quantity"`
}

type SalesRepository interface {
	// IncrementDaily upserts the DailySales row for the given calendar day,
	// incrementing totals at the database level so concurrent payment
	// confirmations on the same day never lose updates.
	IncrementDaily(date time.Time, amountToman int64) error
	ListDaily() ([]models.DailySales, error)

	// PaidTotals returns sum(amount) and count over orders with payment_status=PAID.
	PaidTotals() (revenue int64, orders int64, err error)
	// CountCustomers counts distinct users who placed any order.
	CountCustomers() (int64, error)
	// TopProducts returns up to limit products by summed quantity across
	// items of paid orders, descending.
	TopProducts(limit int) ([]ProductSales, error)
}

type salesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) IncrementDaily(date time.Time, amountToman int64) error {
	row := models.DailySales{
		Date:       date,
		TotalToman: amountToman,
		OrderCount: 1,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_toman": gorm.Expr("daily_sales.total_toman + ?", amountToman),
			"order_count": gorm.Expr("daily_sales.order_count + 1"),
		}),
	}).Create(&row).Error
}

func (r *salesRepository) ListDaily() ([]models.DailySales, error) {
	var rows []models.DailySales
	err := r.db.Order("date DESC").Find(&rows).Error
	return rows, err
}

func (r *salesRepository) PaidTotals() (int64, int64, error) {
	type totals struct {
		Revenue int64
		Orders  int64
	}
	var t totals
	err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(amount_toman), 0) AS revenue, COUNT(*) AS orders").
		Where("payment_status = ?", models.PaymentPaid).
		Scan(&t).Error
	return t.Revenue, t.Orders, err
}

func (r *salesRepository) CountCustomers() (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

func (r *salesRepository) TopProducts(limit int) ([]ProductSales, error) {
	var rows []ProductSales
	err := r.db.Model(&models.CheckoutItem{}).
		Select("checkout_items.product_id AS product_id, products.title AS title, SUM(checkout_items.quantity) AS quantity").
		Joins("JOIN checkouts ON checkouts.id = checkout_items.checkout_id").
		Joins("JOIN orders ON orders.id = checkouts.order_id").
		Joins("JOIN products ON products.id = checkout_items.product_id").
		Where("orders.payment_status = ?", models.PaymentPaid).
		Group("checkout_items.product_id, products.title").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
