package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderCreated         OrderStatus = "CREATED"
	OrderRequiresPayment OrderStatus = "REQUIRES_PAYMENT"
	OrderCompleted       OrderStatus = "COMPLETED"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
	PaymentFailed PaymentStatus = "FAILED"
)

type FulfillmentStatus string

const (
	FulfillmentUntracked FulfillmentStatus = "UNTRACKED"
	FulfillmentFailed    FulfillmentStatus = "FAILED"
	FulfillmentShipping  FulfillmentStatus = "SHIPPING"
	FulfillmentShipped   FulfillmentStatus = "SHIPPED"
)

// ValidPaymentStatus reports whether s is one of the persisted payment states.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentUnpaid, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// ValidFulfillmentStatus reports whether s is one of the persisted fulfillment states.
func ValidFulfillmentStatus(s FulfillmentStatus) bool {
	switch s {
	case FulfillmentUntracked, FulfillmentFailed, FulfillmentShipping, FulfillmentShipped:
		return true
	}
	return false
}

// Order is a financial record: created once by checkout, mutated only through
// status updates, never deleted.
type Order struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	OrderNumber string `json:"order_number" gorm:"size:32;uniqueIndex;not null"`
	UserID      string `json:"user_id" gorm:"type:uuid;index;not null"`
	User        *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`

	AmountToman int64 `json:"amount_toman" gorm:"not null"`

	Status            OrderStatus       `json:"status" gorm:"size:32;default:'CREATED'"`
	PaymentStatus     PaymentStatus     `json:"payment_status" gorm:"size:16;default:'UNPAID'"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillment_status" gorm:"size:16;default:'UNTRACKED'"`

	Checkout *Checkout `json:"checkout,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Checkout is the immutable shipping/contact snapshot captured at order time.
type Checkout struct {
	ID      string `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID string `json:"order_id" gorm:"type:uuid;uniqueIndex;not null"`

	Phone      string `json:"phone" gorm:"size:32;not null"`
	NationalID string `json:"national_id" gorm:"size:10"`
	City       string `json:"city" gorm:"size:64"`
	Address    string `json:"address" gorm:"type:text"`
	PostalCode string `json:"postal_code" gorm:"size:10"`

	ClientTotalToman int64 `json:"client_total_toman" gorm:"not null"`

	Items []CheckoutItem `json:"items,omitempty" gorm:"foreignKey:CheckoutID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

func (c *Checkout) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CheckoutItem freezes the unit price and line total at order time so later
// catalog changes never touch historical orders.
type CheckoutItem struct {
	ID         string   `json:"id" gorm:"type:uuid;primaryKey"`
	CheckoutID string   `json:"checkout_id" gorm:"type:uuid;index;not null"`
	ProductID  string   `json:"product_id" gorm:"type:uuid;not null"`
	Product    *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`

	Quantity       int   `json:"quantity" gorm:"not null"`
	UnitPriceToman int64 `json:"unit_price_toman" gorm:"not null"`
	LineTotalToman int64 `json:"line_total_toman" gorm:"not null"`
}

func (i *CheckoutItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// DailySales accumulates paid-order revenue per calendar day. Rows are only
// ever incremented, never recomputed from scratch.
type DailySales struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Date       time.Time `json:"date" gorm:"type:date;uniqueIndex;not null"`
	TotalToman int64     `json:"total_toman" gorm:"not null"`
	OrderCount int64     `json:"order_count" gorm:"not null"`
}
