package repository

import (
	"github.com/nimamdd/medident/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id string) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	GetByIDs(ids []string) ([]models.Product, error)
	// LockByIDs loads the given products under a row-level FOR UPDATE lock.
	// Must be called inside a Store.Transaction; the locks are held until the
	// transaction commits or rolls back.
	LockByIDs(ids []string) ([]models.Product, error)
	// DecrementStock subtracts quantity from stock_quantity in a single
	// expression update so concurrent checkouts never lose updates.
	DecrementStock(id string, quantity int) error
	List(categorySlug string) ([]models.Product, error)

	CreateReview(review *models.ProductReview) error
	GetReviewByID(id string) (*models.ProductReview, error)
	UpdateReview(review *models.ProductReview) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.
		Preload("Category").
		Preload("Images").
		Preload("Specs").
		Preload("Reviews", "status = ?", string(models.ReviewApproved)).
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByIDs(ids []string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepository) LockByIDs(ids []string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepository) DecrementStock(id string, quantity int) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity)).
		Error
}

func (r *productRepository) List(categorySlug string) ([]models.Product, error) {
	query := r.db.Preload("Category").Preload("Images").Order("created_at DESC")
	if categorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	var products []models.Product
	err := query.Find(&products).Error
	return products, err
}

func (r *productRepository) CreateReview(review *models.ProductReview) error {
	return r.db.Create(review).Error
}

func (r *productRepository) GetReviewByID(id string) (*models.ProductReview, error) {
	var review models.ProductReview
	err := r.db.Where("id = ?", id).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *productRepository) UpdateReview(review *models.ProductReview) error {
	return r.db.Save(review).Error
}
