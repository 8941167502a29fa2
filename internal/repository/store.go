package repository

import (
	"gorm.io/gorm"
)

// Store bundles the repositories behind a single transactional boundary.
// Transaction runs fn against a Store bound to one database transaction;
// returning an error rolls everything back, including stock decrements and
// sales increments.
type Store interface {
	Users() UserRepository
	Categories() CategoryRepository
	Products() ProductRepository
	Orders() OrderRepository
	Sales() SalesRepository
	Transaction(fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository { return NewUserRepository(s.db) }

func (s *gormStore) Categories() CategoryRepository { return NewCategoryRepository(s.db) }

func (s *gormStore) Products() ProductRepository { return NewProductRepository(s.db) }

func (s *gormStore) Orders() OrderRepository { return NewOrderRepository(s.db) }

func (s *gormStore) Sales() SalesRepository { return NewSalesRepository(s.db) }

func (s *gormStore) Transaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
