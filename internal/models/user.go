package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	Phone      string    `json:"phone" gorm:"size:11;unique;not null"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	NationalID string    `json:"national_id" gorm:"size:10"`
	City       string    `json:"city"`
	Address    string    `json:"address" gorm:"type:text"`
	Role       string    `json:"role" gorm:"size:16;default:'customer'"` // customer, staff, admin
	IsActive   bool      `json:"is_active" gorm:"default:true"`
	DateJoined time.Time `json:"date_joined" gorm:"autoCreateTime"`
}

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleStaff    UserRole = "staff"
	RoleAdmin    UserRole = "admin"
)

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsStaff reports whether the user may access admin endpoints.
func (u *User) IsStaff() bool {
	return u.Role == string(RoleStaff) || u.Role == string(RoleAdmin)
}
