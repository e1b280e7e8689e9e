package models

import (
	"time"
)

// Worker extends a User with the worker-side profile. The row shares its
// primary key with the owning user.
type Worker struct {
	ID                    uint       `json:"id" gorm:"primaryKey;autoIncrement:false"`
	FirstName             string     `json:"first_name" gorm:"size:50;not null"`
	LastName              string     `json:"last_name" gorm:"size:50;not null"`
	DateOfBirth           *time.Time `json:"date_of_birth"`
	Address               *string    `json:"address" gorm:"size:200"`
	City                  *string    `json:"city" gorm:"size:50"`
	PostalCode            *string    `json:"postal_code" gorm:"size:10"`
	BackgroundCheckStatus *string    `json:"background_check_status" gorm:"size:20"`
	BackgroundCheckDate   *time.Time `json:"background_check_date"`
	ProfilePhotoURL       *string    `json:"profile_photo_url" gorm:"size:255"`
	Bio                   *string    `json:"bio" gorm:"type:text"`
	ExperienceYears       *int       `json:"experience_years"`
	HourlyRate            *float64   `json:"hourly_rate" gorm:"type:decimal(10,2)"`
	OverallRating         *float64   `json:"overall_rating" gorm:"type:decimal(3,2)"`
	TotalJobsCompleted    int        `json:"total_jobs_completed" gorm:"default:0"`

	// Relationships
	User     User          `json:"user,omitempty" gorm:"foreignKey:ID"`
	Skills   []WorkerSkill `json:"skills,omitempty" gorm:"foreignKey:WorkerID"`
	Bids     []Bid         `json:"bids,omitempty" gorm:"foreignKey:WorkerID"`
	Bookings []Booking     `json:"bookings,omitempty" gorm:"foreignKey:WorkerID"`
}

// TableName specifies the table name for the Worker model
func (Worker) TableName() string {
	return "workers"
}

// WorkerSkill links a worker to a service category with proficiency info.
type WorkerSkill struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	WorkerID           uint       `json:"worker_id" gorm:"not null;index"`
	CategoryID         uint       `json:"category_id" gorm:"not null;index"`
	SkillLevel         *string    `json:"skill_level" gorm:"size:20"` // Beginner, Intermediate, Expert
	CertificationURL   *string    `json:"certification_url" gorm:"size:255"`
	CertificationExpiry *time.Time `json:"certification_expiry"`
	YearsExperience    *int       `json:"years_experience"`

	// Relationships
	Worker   Worker          `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	Category ServiceCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// TableName specifies the table name for the WorkerSkill model
func (WorkerSkill) TableName() string {
	return "worker_skills"
}

// WorkerCreate is the payload for registering a worker together with its
// user record.
type WorkerCreate struct {
	Email           string     `json:"email" binding:"required,email"`
	Password        string     `json:"password" binding:"required,min=8"`
	PhoneNumber     *string    `json:"phone_number"`
	FirstName       string     `json:"first_name" binding:"required"`
	LastName        string     `json:"last_name" binding:"required"`
	DateOfBirth     *time.Time `json:"date_of_birth"`
	Address         *string    `json:"address"`
	City            *string    `json:"city"`
	PostalCode      *string    `json:"postal_code"`
	Bio             *string    `json:"bio"`
	ExperienceYears *int       `json:"experience_years"`
	HourlyRate      *float64   `json:"hourly_rate"`
}

// WorkerUpdate is the payload for updating a worker profile.
type WorkerUpdate struct {
	FirstName       string     `json:"first_name" binding:"required"`
	LastName        string     `json:"last_name" binding:"required"`
	PhoneNumber     *string    `json:"phone_number"`
	DateOfBirth     *time.Time `json:"date_of_birth"`
	Address         *string    `json:"address"`
	City            *string    `json:"city"`
	PostalCode      *string    `json:"postal_code"`
	Bio             *string    `json:"bio"`
	ExperienceYears *int       `json:"experience_years"`
	HourlyRate      *float64   `json:"hourly_rate"`
}

// WorkerDetail is the read model returned by both data-access variants.
type WorkerDetail struct {
	ID                 uint       `json:"id" db:"id"`
	Email              string     `json:"email" db:"email"`
	FirstName          string     `json:"first_name" db:"first_name"`
	LastName           string     `json:"last_name" db:"last_name"`
	PhoneNumber        *string    `json:"phone_number" db:"phone_number"`
	DateOfBirth        *time.Time `json:"date_of_birth" db:"date_of_birth"`
	Address            *string    `json:"address" db:"address"`
	City               *string    `json:"city" db:"city"`
	PostalCode         *string    `json:"postal_code" db:"postal_code"`
	Bio                *string    `json:"bio" db:"bio"`
	ExperienceYears    *int       `json:"experience_years" db:"experience_years"`
	HourlyRate         *float64   `json:"hourly_rate" db:"hourly_rate"`
	OverallRating      *float64   `json:"overall_rating" db:"overall_rating"`
	TotalJobsCompleted int        `json:"total_jobs_completed" db:"total_jobs_completed"`
}

// WorkerPerformance aggregates a worker's bidding and review history.
type WorkerPerformance struct {
	WorkerID           uint     `json:"worker_id" db:"worker_id"`
	FullName           string   `json:"full_name" db:"full_name"`
	HourlyRate         *float64 `json:"hourly_rate" db:"hourly_rate"`
	OverallRating      *float64 `json:"overall_rating" db:"overall_rating"`
	TotalJobsCompleted int      `json:"total_jobs_completed" db:"total_jobs_completed"`
	TotalBidsPlaced    int      `json:"total_bids_placed" db:"total_bids_placed"`
	WinningBids        int      `json:"winning_bids" db:"winning_bids"`
	AverageRating      float64  `json:"average_rating" db:"average_rating"`
	TotalReviews       int      `json:"total_reviews" db:"total_reviews"`
}

// TopPerformer is one row of the per-category top-performers ranking.
type TopPerformer struct {
	WorkerID           uint     `json:"worker_id" db:"worker_id"`
	FullName           string   `json:"full_name" db:"full_name"`
	HourlyRate         *float64 `json:"hourly_rate" db:"hourly_rate"`
	OverallRating      *float64 `json:"overall_rating" db:"overall_rating"`
	TotalJobsCompleted int      `json:"total_jobs_completed" db:"total_jobs_completed"`
	TotalBids          int      `json:"total_bids" db:"total_bids"`
	WinningBids        int      `json:"winning_bids" db:"winning_bids"`
	WinRatePercentage  float64  `json:"win_rate_percentage" db:"win_rate_percentage"`
}

// TopRatedWorker is one row of the top-rated workers view.
type TopRatedWorker struct {
	WorkerID           uint     `json:"worker_id" db:"worker_id"`
	FullName           string   `json:"full_name" db:"full_name"`
	HourlyRate         *float64 `json:"hourly_rate" db:"hourly_rate"`
	OverallRating      *float64 `json:"overall_rating" db:"overall_rating"`
	TotalJobsCompleted int      `json:"total_jobs_completed" db:"total_jobs_completed"`
	City               *string  `json:"city" db:"city"`
	CategoryName       *string  `json:"category_name" db:"category_name"`
	SkillLevel         *string  `json:"skill_level" db:"skill_level"`
	ReviewCount        int      `json:"review_count" db:"review_count"`
	AverageRating      *float64 `json:"average_rating" db:"average_rating"`
}

// AvailableWorker is one row of the candidate-worker lookup for a job.
type AvailableWorker struct {
	WorkerID           uint     `json:"worker_id" db:"worker_id"`
	FullName           string   `json:"full_name" db:"full_name"`
	HourlyRate         *float64 `json:"hourly_rate" db:"hourly_rate"`
	OverallRating      *float64 `json:"overall_rating" db:"overall_rating"`
	TotalJobsCompleted int      `json:"total_jobs_completed" db:"total_jobs_completed"`
	SkillLevel         *string  `json:"skill_level" db:"skill_level"`
	YearsExperience    *int     `json:"years_experience" db:"years_experience"`
}
