package services

import (
	"errors"
	"time"

	"github.com/nimamdd/medident/internal/models"
	"github.com/nimamdd/medident/internal/repository"

	"gorm.io/gorm"
)

type ProductService interface {
	ListProducts(categorySlug string) ([]models.Product, error)
	GetProduct(slug string) (*models.Product, error)
	ListCategories() ([]models.Category, error)
	SubmitReview(productSlug, authorID string, rating int, title, body string) (*models.ProductReview, error)
	ModerateReview(reviewID string, approve bool) (*models.ProductReview, error)
}

type productService struct {
	store repository.Store
}

func NewProductService(store repository.Store) ProductService {
	return &productService{store: store}
}

func (s *productService) ListProducts(categorySlug string) ([]models.Product, error) {
	return s.store.Products().List(categorySlug)
}

func (s *productService) GetProduct(slug string) (*models.Product, error) {
	product, err := s.store.Products().GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListCategories() ([]models.Category, error) {
	return s.store.Categories().GetAll()
}

func (s *productService) SubmitReview(productSlug, authorID string, rating int, title, body string) (*models.ProductReview, error) {
	if rating < 1 || rating > 5 {
		return nil, &ValidationError{Reason: "rating must be between 1 and 5"}
	}

	product, err := s.GetProduct(productSlug)
	if err != nil {
		return nil, err
	}

	review := &models.ProductReview{
		ProductID: product.ID,
		AuthorID:  authorID,
		Rating:    rating,
		Title:     title,
		Body:      body,
		Status:    string(models.ReviewPending),
	}
	if err := s.store.Products().CreateReview(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *productService) ModerateReview(reviewID string, approve bool) (*models.ProductReview, error) {
	review, err := s.store.Products().GetReviewByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if approve {
		now := time.Now()
		review.Status = string(models.ReviewApproved)
		review.ApprovedAt = &now
	} else {
		review.Status = string(models.ReviewRejected)
		review.ApprovedAt = nil
	}
	if err := s.store.Products().UpdateReview(review); err != nil {
		return nil, err
	}
	return review, nil
}
