package models

import (
	"time"
)

type UserType string

const (
	UserTypeCustomer UserType = "Customer"
	UserTypeWorker   UserType = "Worker"
)

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "Active"
	AccountStatusSuspended AccountStatus = "Suspended"
	AccountStatusClosed    AccountStatus = "Closed"
)

type User struct {
	ID               uint          `json:"id" gorm:"primaryKey"`
	Email            string        `json:"email" gorm:"size:100;uniqueIndex;not null"`
	PasswordHash     string        `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	PhoneNumber      *string       `json:"phone_number" gorm:"size:20"`
	UserType         UserType      `json:"user_type" gorm:"type:varchar(20);not null;check:user_type IN ('Customer','Worker')"`
	RegistrationDate time.Time     `json:"registration_date" gorm:"autoCreateTime"`
	LastActive       *time.Time    `json:"last_active"`
	IsVerified       bool          `json:"is_verified" gorm:"default:false"`
	AccountStatus    AccountStatus `json:"account_status" gorm:"type:varchar(20);default:'Active'"`

	// Relationships
	Notifications []Notification `json:"notifications,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsWorker checks if the user registered as a worker
func (u *User) IsWorker() bool {
	return u.UserType == UserTypeWorker
}

// IsCustomer checks if the user registered as a customer
func (u *User) IsCustomer() bool {
	return u.UserType == UserTypeCustomer
}
