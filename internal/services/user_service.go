package services

import (
	"errors"

	"github.com/nimamdd/medident/internal/models"
	"github.com/nimamdd/medident/internal/repository"

	"gorm.io/gorm"
)

type UserService interface {
	GetUserByID(id string) (*models.User, error)
	// GetOrCreateByPhone returns the user for the phone, creating a customer
	// account on first login.
	GetOrCreateByPhone(phone string) (*models.User, error)
	UpdateUser(user *models.User) error
	GetAllUsers() ([]models.User, error)
}

type userService struct {
	store repository.Store
}

func NewUserService(store repository.Store) UserService {
	return &userService{store: store}
}

func (s *userService) GetUserByID(id string) (*models.User, error) {
	return s.store.Users().GetByID(id)
}

func (s *userService) GetOrCreateByPhone(phone string) (*models.User, error) {
	user, err := s.store.Users().GetByPhone(phone)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &models.User{
		Phone:    phone,
		Role:     string(models.RoleCustomer),
		IsActive: true,
	}
	if err := s.store.Users().Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(user *models.User) error {
	return s.store.Users().Update(user)
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	return s.store.Users().GetAll()
}
