package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"serviceconnect-server/models"
)

const bookingDetailColumns = `bookings.id, bookings.job_id, bookings.worker_id, bookings.bid_id,
	bookings.scheduled_start, bookings.scheduled_end, bookings.actual_start, bookings.actual_end,
	bookings.status, bookings.cancellation_reason, bookings.booking_code, bookings.completion_notes,
	jobs.title AS job_title,
	workers.first_name || ' ' || workers.last_name AS worker_name,
	customers.first_name || ' ' || customers.last_name AS customer_name`

// BookingServiceORM is the gorm-backed booking service.
type BookingServiceORM struct {
	db *gorm.DB
}

// NewBookingServiceORM creates a BookingService backed by gorm.
func NewBookingServiceORM(db *gorm.DB) *BookingServiceORM {
	return &BookingServiceORM{db: db}
}

func (s *BookingServiceORM) detailQuery() *gorm.DB {
	return s.db.Table("bookings").
		Select(bookingDetailColumns).
		Joins("JOIN jobs ON jobs.id = bookings.job_id").
		Joins("JOIN workers ON workers.id = bookings.worker_id").
		Joins("JOIN customers ON customers.id = jobs.customer_id")
}

func (s *BookingServiceORM) GetAll() ([]models.BookingDetail, error) {
	var bookings []models.BookingDetail
	err := s.detailQuery().
		Order("bookings.scheduled_start DESC, bookings.id DESC").
		Limit(100).
		Scan(&bookings).Error
	return bookings, err
}

func (s *BookingServiceORM) GetByID(id uint) (*models.BookingDetail, error) {
	var booking models.BookingDetail
	err := s.detailQuery().
		Where("bookings.id = ?", id).
		Scan(&booking).Error
	if err != nil {
		return nil, err
	}
	if booking.ID == 0 {
		return nil, NewNotFound("Booking", id)
	}
	return &booking, nil
}

func (s *BookingServiceORM) Create(req *models.BookingCreate) (*models.Booking, error) {
	code, err := newUniqueBookingCode(func(code string) (bool, error) {
		var n int64
		if err := s.db.Model(&models.Booking{}).Where("booking_code = ?", code).Count(&n).Error; err != nil {
			return false, err
		}
		return n > 0, nil
	})
	if err != nil {
		return nil, err
	}

	booking := models.Booking{
		JobID:          req.JobID,
		WorkerID:       req.WorkerID,
		BidID:          req.BidID,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
		Status:         models.BookingStatusScheduled,
		BookingCode:    &code,
	}
	if err := s.db.Create(&booking).Error; err != nil {
		return nil, err
	}

	log.Printf("✅ Booking %s created for job %d", code, booking.JobID)
	return &booking, nil
}

func (s *BookingServiceORM) Update(id uint, req *models.BookingUpdate) error {
	var booking models.Booking
	if err := s.db.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFound("Booking", id)
		}
		return err
	}

	booking.ScheduledStart = req.ScheduledStart
	booking.ScheduledEnd = req.ScheduledEnd
	booking.ActualStart = req.ActualStart
	booking.ActualEnd = req.ActualEnd
	booking.CancellationReason = req.CancellationReason
	booking.CompletionNotes = req.CompletionNotes
	if req.Status != nil {
		booking.Status = models.BookingStatus(*req.Status)
	}

	return s.db.Save(&booking).Error
}

// Delete removes a booking unless it is Completed; completed bookings are
// retained for audit.
func (s *BookingServiceORM) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFound("Booking", id)
			}
			return err
		}

		if booking.Status == models.BookingStatusCompleted {
			return NewConflict("cannot delete completed bookings for audit purposes")
		}

		return tx.Delete(&booking).Error
	})
}

func (s *BookingServiceORM) GetByWorker(workerID uint) ([]models.BookingDetail, error) {
	var bookings []models.BookingDetail
	err := s.detailQuery().
		Where("bookings.worker_id = ?", workerID).
		Order("bookings.scheduled_start DESC").
		Scan(&bookings).Error
	return bookings, err
}

func (s *BookingServiceORM) GetByCustomer(customerID uint) ([]models.BookingDetail, error) {
	var bookings []models.BookingDetail
	err := s.detailQuery().
		Where("jobs.customer_id = ?", customerID).
		Order("bookings.scheduled_start DESC").
		Scan(&bookings).Error
	return bookings, err
}

// Complete marks the booking and its job as Completed and refreshes the
// job's completed-worker count from the bookings table, all in one
// transaction. Completing twice is a conflict.
func (s *BookingServiceORM) Complete(bookingID uint, completionNotes *string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFound("Booking", bookingID)
			}
			return err
		}

		if booking.Status == models.BookingStatusCompleted {
			return NewConflict(fmt.Sprintf("booking %d is already completed", bookingID))
		}

		now := time.Now()
		booking.Status = models.BookingStatusCompleted
		booking.ActualEnd = &now
		booking.CompletionNotes = completionNotes
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Job{}).
			Where("id = ?", booking.JobID).
			Update("status", models.JobStatusCompleted).Error; err != nil {
			return err
		}

		var completedCount int64
		if err := tx.Model(&models.Booking{}).
			Where("job_id = ? AND status = ?", booking.JobID, models.BookingStatusCompleted).
			Count(&completedCount).Error; err != nil {
			return err
		}

		return tx.Model(&models.Job{}).
			Where("id = ?", booking.JobID).
			Update("completed_workers", completedCount).Error
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Booking %d completed", bookingID)
	return nil
}

func (s *BookingServiceORM) SummaryByCategory() ([]models.BookingCategorySummary, error) {
	var summary []models.BookingCategorySummary
	err := s.db.Table("bookings").
		Select(`service_categories.name AS category_name,
			SUM(CASE WHEN bookings.status = 'Scheduled' THEN 1 ELSE 0 END) AS scheduled_count,
			SUM(CASE WHEN bookings.status = 'InProgress' THEN 1 ELSE 0 END) AS in_progress_count,
			SUM(CASE WHEN bookings.status = 'Completed' THEN 1 ELSE 0 END) AS completed_count,
			SUM(CASE WHEN bookings.status = 'Cancelled' THEN 1 ELSE 0 END) AS cancelled_count,
			COUNT(*) AS total_bookings,
			COALESCE((SELECT AVG(CAST(reviews.rating AS FLOAT)) FROM reviews
				JOIN bookings b2 ON b2.id = reviews.booking_id
				JOIN jobs j2 ON j2.id = b2.job_id
				WHERE j2.category_id = jobs.category_id), 0) AS average_completion_rating`).
		Joins("JOIN jobs ON jobs.id = bookings.job_id").
		Joins("JOIN service_categories ON service_categories.id = jobs.category_id").
		Group("service_categories.name, jobs.category_id").
		Scan(&summary).Error
	return summary, err
}
