package models

import (
	"time"
)

type JobStatus string

const (
	JobStatusOpen       JobStatus = "Open"
	JobStatusAssigned   JobStatus = "Assigned"
	JobStatusInProgress JobStatus = "InProgress"
	JobStatusCompleted  JobStatus = "Completed"
	JobStatusCancelled  JobStatus = "Cancelled"
)

type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "Low"
	UrgencyMedium UrgencyLevel = "Medium"
	UrgencyHigh   UrgencyLevel = "High"
	UrgencyUrgent UrgencyLevel = "Urgent"
)

// IsValidUrgency reports whether a string is one of the urgency levels.
func IsValidUrgency(s string) bool {
	switch UrgencyLevel(s) {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyUrgent:
		return true
	default:
		return false
	}
}

// Job is a task posted by a customer. Its status only ever advances: bids
// move it from Open to Assigned, completed bookings to Completed.
type Job struct {
	ID               uint          `json:"id" gorm:"primaryKey"`
	CustomerID       uint          `json:"customer_id" gorm:"not null;index"`
	CategoryID       uint          `json:"category_id" gorm:"not null;index"`
	Title            string        `json:"title" gorm:"size:100;not null"`
	Description      *string       `json:"description" gorm:"type:text"`
	Budget           *float64      `json:"budget" gorm:"type:decimal(10,2)"`
	PostedDate       time.Time     `json:"posted_date" gorm:"autoCreateTime"`
	StartDate        *time.Time    `json:"start_date"`
	EndDate          *time.Time    `json:"end_date"`
	Location         *string       `json:"location" gorm:"size:200"`
	Latitude         *float64      `json:"latitude" gorm:"type:decimal(10,7)"`
	Longitude        *float64      `json:"longitude" gorm:"type:decimal(10,7)"`
	Status           JobStatus     `json:"status" gorm:"type:varchar(20);default:'Open';check:status IN ('Open','Assigned','InProgress','Completed','Cancelled')"`
	UrgencyLevel     *UrgencyLevel `json:"urgency_level" gorm:"type:varchar(20)"`
	RequiredWorkers  int           `json:"required_workers" gorm:"default:1"`
	CompletedWorkers int           `json:"completed_workers" gorm:"default:0"`

	// Relationships
	Customer    Customer        `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Category    ServiceCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Bids        []Bid           `json:"bids,omitempty" gorm:"foreignKey:JobID"`
	Bookings    []Booking       `json:"bookings,omitempty" gorm:"foreignKey:JobID"`
	Attachments []JobAttachment `json:"attachments,omitempty" gorm:"foreignKey:JobID"`
}

// TableName specifies the table name for the Job model
func (Job) TableName() string {
	return "jobs"
}

// JobAttachment is a file attached to a job post. The file bytes live in
// object storage, only the URL is kept here.
type JobAttachment struct {
	ID           uint      `json:"id" db:"id" gorm:"primaryKey"`
	JobID        uint      `json:"job_id" db:"job_id" gorm:"not null;index"`
	FileURL      *string   `json:"file_url" db:"file_url" gorm:"size:255"`
	FileType     *string   `json:"file_type" db:"file_type" gorm:"size:50"`
	UploadedDate time.Time `json:"uploaded_date" db:"uploaded_date" gorm:"autoCreateTime"`
	Description  *string   `json:"description" db:"description" gorm:"size:255"`

	Job Job `json:"job,omitempty" db:"-" gorm:"foreignKey:JobID"`
}

// TableName specifies the table name for the JobAttachment model
func (JobAttachment) TableName() string {
	return "job_attachments"
}

// JobCreate is the payload for posting a job.
type JobCreate struct {
	CustomerID      uint       `json:"customer_id" binding:"required"`
	CategoryID      uint       `json:"category_id" binding:"required"`
	Title           string     `json:"title" binding:"required,max=100"`
	Description     *string    `json:"description"`
	Budget          *float64   `json:"budget"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Location        *string    `json:"location"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	UrgencyLevel    *string    `json:"urgency_level"`
	RequiredWorkers int        `json:"required_workers"`
}

// JobUpdate is the payload for editing a posted job.
type JobUpdate struct {
	Title           string     `json:"title" binding:"required,max=100"`
	Description     *string    `json:"description"`
	Budget          *float64   `json:"budget"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Location        *string    `json:"location"`
	Status          *string    `json:"status"`
	UrgencyLevel    *string    `json:"urgency_level"`
	RequiredWorkers int        `json:"required_workers"`
}

// JobDetail is the read model returned by both data-access variants; it
// carries the joined customer and category names.
type JobDetail struct {
	ID               uint       `json:"id" db:"id"`
	CustomerID       uint       `json:"customer_id" db:"customer_id"`
	CategoryID       uint       `json:"category_id" db:"category_id"`
	Title            string     `json:"title" db:"title"`
	Description      *string    `json:"description" db:"description"`
	Budget           *float64   `json:"budget" db:"budget"`
	PostedDate       time.Time  `json:"posted_date" db:"posted_date"`
	StartDate        *time.Time `json:"start_date" db:"start_date"`
	EndDate          *time.Time `json:"end_date" db:"end_date"`
	Location         *string    `json:"location" db:"location"`
	Status           string     `json:"status" db:"status"`
	UrgencyLevel     *string    `json:"urgency_level" db:"urgency_level"`
	RequiredWorkers  int        `json:"required_workers" db:"required_workers"`
	CompletedWorkers int        `json:"completed_workers" db:"completed_workers"`
	CustomerName     string     `json:"customer_name" db:"customer_name"`
	CategoryName     string     `json:"category_name" db:"category_name"`
}

// ActiveJobWithBids is one row of the active-jobs-with-bids view.
type ActiveJobWithBids struct {
	ID              uint      `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Budget          *float64  `json:"budget" db:"budget"`
	Status          string    `json:"status" db:"status"`
	UrgencyLevel    *string   `json:"urgency_level" db:"urgency_level"`
	PostedDate      time.Time `json:"posted_date" db:"posted_date"`
	RequiredWorkers int       `json:"required_workers" db:"required_workers"`
	CustomerName    string    `json:"customer_name" db:"customer_name"`
	CategoryName    string    `json:"category_name" db:"category_name"`
	TotalBids       int       `json:"total_bids" db:"total_bids"`
	AcceptedBids    int       `json:"accepted_bids" db:"accepted_bids"`
}
