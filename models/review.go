package models

import (
	"time"
)

// Review is a post-completion rating attached to a booking. It feeds the
// reporting aggregates, the workflow never mutates it.
type Review struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	BookingID         uint      `json:"booking_id" gorm:"not null;index"`
	ReviewerID        uint      `json:"reviewer_id" gorm:"not null"`
	ReviewedID        uint      `json:"reviewed_id" gorm:"not null;index"`
	Rating            int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment           *string   `json:"comment" gorm:"type:text"`
	ReviewDate        time.Time `json:"review_date" gorm:"autoCreateTime"`
	IsDisputed        bool      `json:"is_disputed" gorm:"default:false"`
	DisputeResolution *string   `json:"dispute_resolution" gorm:"type:text"`
	WasHelpful        int       `json:"was_helpful" gorm:"default:0"`

	// Relationships
	Booking  Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Reviewer User    `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
	Reviewed User    `json:"reviewed,omitempty" gorm:"foreignKey:ReviewedID"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}

// ReviewCreate is the payload for submitting a review.
type ReviewCreate struct {
	BookingID  uint    `json:"booking_id" binding:"required"`
	ReviewerID uint    `json:"reviewer_id" binding:"required"`
	ReviewedID uint    `json:"reviewed_id" binding:"required"`
	Rating     int     `json:"rating" binding:"required,min=1,max=5"`
	Comment    *string `json:"comment"`
}
