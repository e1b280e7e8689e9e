package services

import (
	"serviceconnect-server/models"
)

// JobService manages posted jobs and their read views.
type JobService interface {
	GetAll() ([]models.JobDetail, error)
	GetByID(id uint) (*models.JobDetail, error)
	Create(req *models.JobCreate) (*models.Job, error)
	Update(id uint, req *models.JobUpdate) error
	Delete(id uint) error
	GetOpen() ([]models.JobDetail, error)
	GetByCategory(categoryID uint) ([]models.JobDetail, error)
	GetByCustomer(customerID uint) ([]models.JobDetail, error)
	GetByLocation(city string, categoryID uint) ([]models.JobDetail, error)
	GetActiveWithBids() ([]models.ActiveJobWithBids, error)
	AddAttachment(jobID uint, fileURL, fileType string, description *string) (*models.JobAttachment, error)
	GetAttachments(jobID uint) ([]models.JobAttachment, error)
}

// BidService manages bids and the bid-acceptance transition.
type BidService interface {
	GetAll() ([]models.BidDetail, error)
	GetByID(id uint) (*models.BidDetail, error)
	Create(req *models.BidCreate) (*models.Bid, error)
	Update(id uint, req *models.BidUpdate) error
	Delete(id uint) error
	GetByJob(jobID uint) ([]models.BidDetail, error)
	GetByWorker(workerID uint) ([]models.BidDetail, error)
	// Accept marks the bid as the job's winning bid, rejects the other
	// pending bids, creates the booking and notifies the worker, all in one
	// transaction. Returns the generated booking code.
	Accept(bidID uint) (string, error)
	Stats(jobID uint) (*models.BidStats, error)
}

// BookingService manages bookings and the completion transition.
type BookingService interface {
	GetAll() ([]models.BookingDetail, error)
	GetByID(id uint) (*models.BookingDetail, error)
	Create(req *models.BookingCreate) (*models.Booking, error)
	Update(id uint, req *models.BookingUpdate) error
	Delete(id uint) error
	GetByWorker(workerID uint) ([]models.BookingDetail, error)
	GetByCustomer(customerID uint) ([]models.BookingDetail, error)
	// Complete marks the booking and its job as Completed and recomputes the
	// job's completed-worker count, all in one transaction.
	Complete(bookingID uint, completionNotes *string) error
	SummaryByCategory() ([]models.BookingCategorySummary, error)
}

// WorkerService manages worker profiles and the worker-side reports.
type WorkerService interface {
	GetAll() ([]models.WorkerDetail, error)
	GetByID(id uint) (*models.WorkerDetail, error)
	Create(req *models.WorkerCreate) (*models.Worker, error)
	Update(id uint, req *models.WorkerUpdate) error
	Delete(id uint) error
	GetBySkill(categoryID uint) ([]models.WorkerDetail, error)
	GetByCity(city string) ([]models.WorkerDetail, error)
	AvailableForJob(categoryID uint) ([]models.AvailableWorker, error)
	Performance(workerID uint) (*models.WorkerPerformance, error)
	TopPerformersByCategory(categoryID uint) ([]models.TopPerformer, error)
	ReliabilityScore(workerID uint) (float64, error)
	TopRated() ([]models.TopRatedWorker, error)
}

// CustomerService manages customer profiles and the customer analytics view.
type CustomerService interface {
	GetAll() ([]models.CustomerDetail, error)
	GetByID(id uint) (*models.CustomerDetail, error)
	Create(req *models.CustomerCreate) (*models.Customer, error)
	Update(id uint, req *models.CustomerUpdate) error
	Delete(id uint) error
	GetByCity(city string) ([]models.CustomerDetail, error)
	Analytics() ([]models.CustomerAnalytics, error)
}

// CategoryService manages the service-category taxonomy.
type CategoryService interface {
	GetAll() ([]models.ServiceCategory, error)
	GetActive() ([]models.ServiceCategory, error)
	GetByID(id uint) (*models.ServiceCategory, error)
	Create(req *models.ServiceCategoryRequest) (*models.ServiceCategory, error)
	Update(id uint, req *models.ServiceCategoryRequest) error
	Delete(id uint) error
}
