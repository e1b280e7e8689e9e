package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"serviceconnect-server/models"
)

// BookingServiceSQL is the hand-written-SQL booking service.
type BookingServiceSQL struct {
	db *sqlx.DB
}

// NewBookingServiceSQL creates a BookingService backed by sqlx.
func NewBookingServiceSQL(db *sqlx.DB) *BookingServiceSQL {
	return &BookingServiceSQL{db: db}
}

const bookingDetailSelect = `
	SELECT bk.id, bk.job_id, bk.worker_id, bk.bid_id, bk.scheduled_start, bk.scheduled_end,
	       bk.actual_start, bk.actual_end, bk.status, bk.cancellation_reason,
	       bk.booking_code, bk.completion_notes,
	       j.title AS job_title,
	       w.first_name || ' ' || w.last_name AS worker_name,
	       c.first_name || ' ' || c.last_name AS customer_name
	FROM bookings bk
	JOIN jobs j ON j.id = bk.job_id
	JOIN workers w ON w.id = bk.worker_id
	JOIN customers c ON c.id = j.customer_id`

func (s *BookingServiceSQL) GetAll() ([]models.BookingDetail, error) {
	bookings := []models.BookingDetail{}
	err := s.db.Select(&bookings, bookingDetailSelect+` ORDER BY bk.scheduled_start DESC, bk.id DESC LIMIT 100`)
	return bookings, err
}

func (s *BookingServiceSQL) GetByID(id uint) (*models.BookingDetail, error) {
	var booking models.BookingDetail
	err := s.db.Get(&booking, s.db.Rebind(bookingDetailSelect+` WHERE bk.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewNotFound("Booking", id)
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingServiceSQL) Create(req *models.BookingCreate) (*models.Booking, error) {
	code, err := newUniqueBookingCode(func(code string) (bool, error) {
		var n int
		if err := s.db.Get(&n, s.db.Rebind(`SELECT COUNT(*) FROM bookings WHERE booking_code = ?`), code); err != nil {
			return false, err
		}
		return n > 0, nil
	})
	if err != nil {
		return nil, err
	}

	var id uint
	err = s.db.Get(&id, s.db.Rebind(
		`INSERT INTO bookings (job_id, worker_id, bid_id, scheduled_start, scheduled_end, status, booking_code)
		 VALUES (?, ?, ?, ?, ?, 'Scheduled', ?) RETURNING id`),
		req.JobID, req.WorkerID, req.BidID, req.ScheduledStart, req.ScheduledEnd, code)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:             id,
		JobID:          req.JobID,
		WorkerID:       req.WorkerID,
		BidID:          req.BidID,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
		Status:         models.BookingStatusScheduled,
		BookingCode:    &code,
	}
	log.Printf("✅ Booking %s created for job %d", code, booking.JobID)
	return booking, nil
}

func (s *BookingServiceSQL) Update(id uint, req *models.BookingUpdate) error {
	var current string
	err := s.db.Get(&current, s.db.Rebind(`SELECT status FROM bookings WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return NewNotFound("Booking", id)
	}
	if err != nil {
		return err
	}

	status := current
	if req.Status != nil {
		status = *req.Status
	}

	_, err = s.db.Exec(s.db.Rebind(
		`UPDATE bookings SET scheduled_start = ?, scheduled_end = ?, actual_start = ?, actual_end = ?,
		                     status = ?, cancellation_reason = ?, completion_notes = ?
		 WHERE id = ?`),
		req.ScheduledStart, req.ScheduledEnd, req.ActualStart, req.ActualEnd,
		status, req.CancellationReason, req.CompletionNotes, id)
	return err
}

// Delete removes a booking unless it is Completed; completed bookings are
// retained for audit.
func (s *BookingServiceSQL) Delete(id uint) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status string
	err = tx.Get(&status, tx.Rebind(`SELECT status FROM bookings WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return NewNotFound("Booking", id)
	}
	if err != nil {
		return err
	}

	if status == string(models.BookingStatusCompleted) {
		return NewConflict("cannot delete completed bookings for audit purposes")
	}

	if _, err := tx.Exec(tx.Rebind(`DELETE FROM bookings WHERE id = ?`), id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *BookingServiceSQL) GetByWorker(workerID uint) ([]models.BookingDetail, error) {
	bookings := []models.BookingDetail{}
	err := s.db.Select(&bookings, s.db.Rebind(
		bookingDetailSelect+` WHERE bk.worker_id = ? ORDER BY bk.scheduled_start DESC`), workerID)
	return bookings, err
}

func (s *BookingServiceSQL) GetByCustomer(customerID uint) ([]models.BookingDetail, error) {
	bookings := []models.BookingDetail{}
	err := s.db.Select(&bookings, s.db.Rebind(
		bookingDetailSelect+` WHERE j.customer_id = ? ORDER BY bk.scheduled_start DESC`), customerID)
	return bookings, err
}

// Complete marks the booking and its job as Completed and refreshes the
// job's completed-worker count, all in one transaction. Completing twice
// is a conflict.
func (s *BookingServiceSQL) Complete(bookingID uint, completionNotes *string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var booking struct {
		JobID  uint   `db:"job_id"`
		Status string `db:"status"`
	}
	err = tx.Get(&booking, tx.Rebind(`SELECT job_id, status FROM bookings WHERE id = ?`), bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return NewNotFound("Booking", bookingID)
	}
	if err != nil {
		return err
	}
	if booking.Status == string(models.BookingStatusCompleted) {
		return NewConflict(fmt.Sprintf("booking %d is already completed", bookingID))
	}

	if _, err := tx.Exec(tx.Rebind(
		`UPDATE bookings SET status = 'Completed', actual_end = ?, completion_notes = ? WHERE id = ?`),
		time.Now(), completionNotes, bookingID); err != nil {
		return err
	}

	if _, err := tx.Exec(tx.Rebind(
		`UPDATE jobs SET status = 'Completed',
		                 completed_workers = (SELECT COUNT(*) FROM bookings
		                                      WHERE bookings.job_id = jobs.id AND bookings.status = 'Completed')
		 WHERE id = ?`), booking.JobID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("✅ Booking %d completed", bookingID)
	return nil
}

func (s *BookingServiceSQL) SummaryByCategory() ([]models.BookingCategorySummary, error) {
	summary := []models.BookingCategorySummary{}
	err := s.db.Select(&summary, `
		SELECT sc.name AS category_name,
		       SUM(CASE WHEN bk.status = 'Scheduled' THEN 1 ELSE 0 END) AS scheduled_count,
		       SUM(CASE WHEN bk.status = 'InProgress' THEN 1 ELSE 0 END) AS in_progress_count,
		       SUM(CASE WHEN bk.status = 'Completed' THEN 1 ELSE 0 END) AS completed_count,
		       SUM(CASE WHEN bk.status = 'Cancelled' THEN 1 ELSE 0 END) AS cancelled_count,
		       COUNT(*) AS total_bookings,
		       COALESCE((SELECT AVG(CAST(r.rating AS FLOAT)) FROM reviews r
		                 JOIN bookings b2 ON b2.id = r.booking_id
		                 JOIN jobs j2 ON j2.id = b2.job_id
		                 WHERE j2.category_id = j.category_id), 0) AS average_completion_rating
		FROM bookings bk
		JOIN jobs j ON j.id = bk.job_id
		JOIN service_categories sc ON sc.id = j.category_id
		GROUP BY sc.name, j.category_id`)
	return summary, err
}
