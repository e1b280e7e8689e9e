package models

import (
	"time"
)

type BidStatus string

const (
	BidStatusPending   BidStatus = "Pending"
	BidStatusAccepted  BidStatus = "Accepted"
	BidStatusRejected  BidStatus = "Rejected"
	BidStatusWithdrawn BidStatus = "Withdrawn"
)

// Bid is a worker's priced offer on an open job. At most one bid per job
// ends up with IsWinningBid set.
type Bid struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	JobID             uint       `json:"job_id" gorm:"not null;index"`
	WorkerID          uint       `json:"worker_id" gorm:"not null;index"`
	BidAmount         *float64   `json:"bid_amount" gorm:"type:decimal(10,2)"`
	ProposedStartTime *time.Time `json:"proposed_start_time"`
	EstimatedDuration *int       `json:"estimated_duration"` // minutes
	CoverLetter       *string    `json:"cover_letter" gorm:"type:text"`
	BidDate           time.Time  `json:"bid_date" gorm:"autoCreateTime"`
	Status            BidStatus  `json:"status" gorm:"type:varchar(20);default:'Pending';check:status IN ('Pending','Accepted','Rejected','Withdrawn')"`
	IsWinningBid      bool       `json:"is_winning_bid" gorm:"default:false"`

	// Relationships
	Job    Job    `json:"job,omitempty" gorm:"foreignKey:JobID"`
	Worker Worker `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
}

// TableName specifies the table name for the Bid model
func (Bid) TableName() string {
	return "bids"
}

// BidCreate is the payload for placing a bid.
type BidCreate struct {
	JobID             uint       `json:"job_id" binding:"required"`
	WorkerID          uint       `json:"worker_id" binding:"required"`
	BidAmount         float64    `json:"bid_amount" binding:"required,gt=0"`
	ProposedStartTime *time.Time `json:"proposed_start_time"`
	EstimatedDuration *int       `json:"estimated_duration"`
	CoverLetter       *string    `json:"cover_letter"`
}

// BidUpdate is the payload for editing a pending bid.
type BidUpdate struct {
	BidAmount         float64    `json:"bid_amount" binding:"required,gt=0"`
	ProposedStartTime *time.Time `json:"proposed_start_time"`
	EstimatedDuration *int       `json:"estimated_duration"`
	CoverLetter       *string    `json:"cover_letter"`
	Status            *string    `json:"status"`
}

// BidDetail is the read model returned by both data-access variants.
type BidDetail struct {
	ID                uint       `json:"id" db:"id"`
	JobID             uint       `json:"job_id" db:"job_id"`
	WorkerID          uint       `json:"worker_id" db:"worker_id"`
	BidAmount         *float64   `json:"bid_amount" db:"bid_amount"`
	ProposedStartTime *time.Time `json:"proposed_start_time" db:"proposed_start_time"`
	EstimatedDuration *int       `json:"estimated_duration" db:"estimated_duration"`
	CoverLetter       *string    `json:"cover_letter" db:"cover_letter"`
	BidDate           time.Time  `json:"bid_date" db:"bid_date"`
	Status            string     `json:"status" db:"status"`
	IsWinningBid      bool       `json:"is_winning_bid" db:"is_winning_bid"`
	WorkerName        string     `json:"worker_name" db:"worker_name"`
	JobTitle          string     `json:"job_title" db:"job_title"`
}

// BidStats aggregates the bids placed on one job.
type BidStats struct {
	JobID            uint    `json:"job_id" db:"job_id"`
	TotalBids        int     `json:"total_bids" db:"total_bids"`
	AverageBidAmount float64 `json:"average_bid_amount" db:"average_bid_amount"`
	MinBidAmount     float64 `json:"min_bid_amount" db:"min_bid_amount"`
	MaxBidAmount     float64 `json:"max_bid_amount" db:"max_bid_amount"`
	AcceptedBids     int     `json:"accepted_bids" db:"accepted_bids"`
}
