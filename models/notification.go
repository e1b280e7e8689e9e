package models

import (
	"time"
)

// Notification types emitted by the workflow.
const (
	NotificationTypeBidAccepted = "BidAccepted"
	NotificationTypeJobUpdate   = "JobUpdate"
)

// Notification is a side-effect row written by workflow transitions. Only
// the read flag is ever mutated afterwards.
type Notification struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserID            uint      `json:"user_id" gorm:"not null;index"`
	NotificationType  *string   `json:"notification_type" gorm:"size:50"`
	Title             *string   `json:"title" gorm:"size:100"`
	Message           *string   `json:"message" gorm:"type:text"`
	CreatedDate       time.Time `json:"created_date" gorm:"autoCreateTime"`
	IsRead            bool      `json:"is_read" gorm:"default:false"`
	RelatedEntityID   *uint     `json:"related_entity_id"`
	RelatedEntityType *string   `json:"related_entity_type" gorm:"size:50"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
