package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusScheduled  BookingStatus = "Scheduled"
	BookingStatusInProgress BookingStatus = "InProgress"
	BookingStatusCompleted  BookingStatus = "Completed"
	BookingStatusCancelled  BookingStatus = "Cancelled"
)

// Booking is the confirmed engagement created when a bid is accepted. Once
// Completed the row must never be deleted (audit retention).
type Booking struct {
	ID                 uint          `json:"id" gorm:"primaryKey"`
	JobID              uint          `json:"job_id" gorm:"not null;index"`
	WorkerID           uint          `json:"worker_id" gorm:"not null;index"`
	BidID              uint          `json:"bid_id" gorm:"not null"`
	ScheduledStart     *time.Time    `json:"scheduled_start"`
	ScheduledEnd       *time.Time    `json:"scheduled_end"`
	ActualStart        *time.Time    `json:"actual_start"`
	ActualEnd          *time.Time    `json:"actual_end"`
	Status             BookingStatus `json:"status" gorm:"type:varchar(20);default:'Scheduled';check:status IN ('Scheduled','InProgress','Completed','Cancelled')"`
	CancellationReason *string       `json:"cancellation_reason" gorm:"size:255"`
	BookingCode        *string       `json:"booking_code" gorm:"size:20;uniqueIndex"`
	CompletionNotes    *string       `json:"completion_notes" gorm:"type:text"`

	// Relationships
	Job     Job      `json:"job,omitempty" gorm:"foreignKey:JobID"`
	Worker  Worker   `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	Bid     Bid      `json:"bid,omitempty" gorm:"foreignKey:BidID"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:BookingID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// BookingCreate is the payload for creating a booking directly (outside the
// bid-acceptance flow).
type BookingCreate struct {
	JobID          uint       `json:"job_id" binding:"required"`
	WorkerID       uint       `json:"worker_id" binding:"required"`
	BidID          uint       `json:"bid_id" binding:"required"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
}

// BookingUpdate is the payload for editing a booking.
type BookingUpdate struct {
	ScheduledStart     *time.Time `json:"scheduled_start"`
	ScheduledEnd       *time.Time `json:"scheduled_end"`
	ActualStart        *time.Time `json:"actual_start"`
	ActualEnd          *time.Time `json:"actual_end"`
	Status             *string    `json:"status"`
	CancellationReason *string    `json:"cancellation_reason"`
	CompletionNotes    *string    `json:"completion_notes"`
}

// BookingDetail is the read model returned by both data-access variants.
type BookingDetail struct {
	ID                 uint       `json:"id" db:"id"`
	JobID              uint       `json:"job_id" db:"job_id"`
	WorkerID           uint       `json:"worker_id" db:"worker_id"`
	BidID              uint       `json:"bid_id" db:"bid_id"`
	ScheduledStart     *time.Time `json:"scheduled_start" db:"scheduled_start"`
	ScheduledEnd       *time.Time `json:"scheduled_end" db:"scheduled_end"`
	ActualStart        *time.Time `json:"actual_start" db:"actual_start"`
	ActualEnd          *time.Time `json:"actual_end" db:"actual_end"`
	Status             string     `json:"status" db:"status"`
	CancellationReason *string    `json:"cancellation_reason" db:"cancellation_reason"`
	BookingCode        *string    `json:"booking_code" db:"booking_code"`
	CompletionNotes    *string    `json:"completion_notes" db:"completion_notes"`
	JobTitle           string     `json:"job_title" db:"job_title"`
	WorkerName         string     `json:"worker_name" db:"worker_name"`
	CustomerName       string     `json:"customer_name" db:"customer_name"`
}

// BookingCategorySummary is one row of the booking-summary-by-category view.
type BookingCategorySummary struct {
	CategoryName            string  `json:"category_name" db:"category_name"`
	ScheduledCount          int     `json:"scheduled_count" db:"scheduled_count"`
	InProgressCount         int     `json:"in_progress_count" db:"in_progress_count"`
	CompletedCount          int     `json:"completed_count" db:"completed_count"`
	CancelledCount          int     `json:"cancelled_count" db:"cancelled_count"`
	TotalBookings           int     `json:"total_bookings" db:"total_bookings"`
	AverageCompletionRating float64 `json:"average_completion_rating" db:"average_completion_rating"`
}
