package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Slug      string    `json:"slug" gorm:"unique;not null"`
	Title     string    `json:"title" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Product struct {
	ID               string    `json:"id" gorm:"type:uuid;primaryKey"`
	Slug             string    `json:"slug" gorm:"unique;not null"`
	Title            string    `json:"title" gorm:"not null"`
	ShortDescription string    `json:"short_description" gorm:"type:text"`
	Description      string    `json:"description" gorm:"type:text"`
	SKU              string    `json:"sku" gorm:"size:64"`
	Brand            string    `json:"brand" gorm:"size:128"`
	CategoryID       string    `json:"category_id" gorm:"type:uuid;not null"`
	Category         *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`

	PriceToman          int64  `json:"price_toman" gorm:"not null"`
	CompareAtPriceToman *int64 `json:"compare_at_price_toman"`

	// StockQuantity nil means the product does not track a finite stock.
	InStock       bool `json:"in_stock" gorm:"default:true"`
	StockQuantity *int `json:"stock_quantity"`

	Rating *float64 `json:"rating"`

	Images  []ProductImage  `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Specs   []ProductSpec   `json:"specs,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reviews []ProductReview `json:"reviews,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type ProductImage struct {
	ID        string `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID string `json:"product_id" gorm:"type:uuid;index;not null"`
	Alt       string `json:"alt"`
	Src       string `json:"src"`
	Width     *int   `json:"width"`
	Height    *int   `json:"height"`
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

type ProductSpec struct {
	ID        string `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID string `json:"product_id" gorm:"type:uuid;uniqueIndex:idx_product_spec_key;not null"`
	Key       string `json:"key" gorm:"size:128;uniqueIndex:idx_product_spec_key;not null"`
	Value     string `json:"value" gorm:"type:text"`
}

func (s *ProductSpec) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

type ProductReview struct {
	ID         string     `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID  string     `json:"product_id" gorm:"type:uuid;index;not null"`
	AuthorID   string     `json:"author_id" gorm:"type:uuid;not null"`
	Author     *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Rating     int        `json:"rating" gorm:"not null"`
	Title      string     `json:"title"`
	Body       string     `json:"body" gorm:"type:text"`
	Status     string     `json:"status" gorm:"size:16;default:'pending'"`
	ApprovedAt *time.Time `json:"approved_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (r *ProductReview) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
