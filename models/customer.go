package models

// Customer extends a User with the customer-side profile. The row shares its
// primary key with the owning user.
type Customer struct {
	ID              uint     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	FirstName       string   `json:"first_name" gorm:"size:50;not null"`
	LastName        string   `json:"last_name" gorm:"size:50;not null"`
	Address         *string  `json:"address" gorm:"size:200"`
	City            *string  `json:"city" gorm:"size:50"`
	PostalCode      *string  `json:"postal_code" gorm:"size:10"`
	ProfilePhotoURL *string  `json:"profile_photo_url" gorm:"size:255"`
	CustomerRating  *float64 `json:"customer_rating" gorm:"type:decimal(3,2)"`
	TotalJobsPosted int      `json:"total_jobs_posted" gorm:"default:0"`

	// Relationships
	User User  `json:"user,omitempty" gorm:"foreignKey:ID"`
	Jobs []Job `json:"jobs,omitempty" gorm:"foreignKey:CustomerID"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// CustomerCreate is the payload for registering a customer together with its
// user record.
type CustomerCreate struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	PhoneNumber *string `json:"phone_number"`
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	PostalCode  *string `json:"postal_code"`
}

// CustomerUpdate is the payload for updating a customer profile.
type CustomerUpdate struct {
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	PostalCode  *string `json:"postal_code"`
}

// CustomerDetail is the read model returned by both data-access variants.
type CustomerDetail struct {
	ID              uint     `json:"id" db:"id"`
	Email           string   `json:"email" db:"email"`
	FirstName       string   `json:"first_name" db:"first_name"`
	LastName        string   `json:"last_name" db:"last_name"`
	PhoneNumber     *string  `json:"phone_number" db:"phone_number"`
	Address         *string  `json:"address" db:"address"`
	City            *string  `json:"city" db:"city"`
	PostalCode      *string  `json:"postal_code" db:"postal_code"`
	CustomerRating  *float64 `json:"customer_rating" db:"customer_rating"`
	TotalJobsPosted int      `json:"total_jobs_posted" db:"total_jobs_posted"`
}

// CustomerAnalytics is one row of the per-customer analytics view.
type CustomerAnalytics struct {
	CustomerID      uint     `json:"customer_id" db:"customer_id"`
	CustomerName    string   `json:"customer_name" db:"customer_name"`
	City            *string  `json:"city" db:"city"`
	CustomerRating  *float64 `json:"customer_rating" db:"customer_rating"`
	TotalJobsPosted int      `json:"total_jobs_posted" db:"total_jobs_posted"`
	ActiveJobs      int      `json:"active_jobs" db:"active_jobs"`
	CompletedJobs   int      `json:"completed_jobs" db:"completed_jobs"`
	TotalSpend      float64  `json:"total_spend" db:"total_spend"`
}
