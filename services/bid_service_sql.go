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

// BidServiceSQL is the hand-written-SQL bid service. Queries use `?`
// bindvars and are rebound for the active driver, so the same SQL runs on
// postgres and the sqlite test driver.
type BidServiceSQL struct {
	db *sqlx.DB
}

// NewBidServiceSQL creates a BidService backed by sqlx.
func NewBidServiceSQL(db *sqlx.DB) *BidServiceSQL {
	return &BidServiceSQL{db: db}
}

const bidDetailSelect = `
	SELECT b.id, b.job_id, b.worker_id, b.bid_amount, b.proposed_start_time,
	       b.estimated_duration, b.cover_letter, b.bid_date, b.status, b.is_winning_bid,
	       w.first_name || ' ' || w.last_name AS worker_name,
	       j.title AS job_title
	FROM bids b
	JOIN workers w ON w.id = b.worker_id
	JOIN jobs j ON j.id = b.job_id`

func (s *BidServiceSQL) GetAll() ([]models.BidDetail, error) {
	bids := []models.BidDetail{}
	err := s.db.Select(&bids, bidDetailSelect+` ORDER BY b.bid_date DESC LIMIT 100`)
	return bids, err
}

func (s *BidServiceSQL) GetByID(id uint) (*models.BidDetail, error) {
	var bid models.BidDetail
	err := s.db.Get(&bid, s.db.Rebind(bidDetailSelect+` WHERE b.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewNotFound("Bid", id)
	}
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// Create places a bid. The job must still be Open and the worker may not
// hold another live bid on the same job.
func (s *BidServiceSQL) Create(req *models.BidCreate) (*models.Bid, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var jobStatus string
	err = tx.Get(&jobStatus, tx.Rebind(`SELECT status FROM jobs WHERE id = ?`), req.JobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewNotFound("Job", req.JobID)
	}
	if err != nil {
		return nil, err
	}
	if jobStatus != string(models.JobStatusOpen) {
		return nil, NewConflict(fmt.Sprintf("job %d is %s, bids are only accepted on open jobs", req.JobID, jobStatus))
	}

	var existing int
	err = tx.Get(&existing, tx.Rebind(
		`SELECT COUNT(*) FROM bids WHERE job_id = ? AND worker_id = ? AND status IN ('Pending', 'Accepted')`),
		req.JobID, req.WorkerID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, NewConflict(fmt.Sprintf("worker %d already has a live bid on job %d", req.WorkerID, req.JobID))
	}

	now := time.Now()
	var id uint
	err = tx.Get(&id, tx.Rebind(
		`INSERT INTO bids (job_id, worker_id, bid_amount, proposed_start_time, estimated_duration,
		                   cover_letter, bid_date, status, is_winning_bid)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 'Pending', ?) RETURNING id`),
		req.JobID, req.WorkerID, req.BidAmount, req.ProposedStartTime,
		req.EstimatedDuration, req.CoverLetter, now, false)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	amount := req.BidAmount
	bid := &models.Bid{
		ID:                id,
		JobID:             req.JobID,
		WorkerID:          req.WorkerID,
		BidAmount:         &amount,
		ProposedStartTime: req.ProposedStartTime,
		EstimatedDuration: req.EstimatedDuration,
		CoverLetter:       req.CoverLetter,
		BidDate:           now,
		Status:            models.BidStatusPending,
	}
	log.Printf("✅ Bid %d placed on job %d by worker %d", bid.ID, bid.JobID, bid.WorkerID)
	return bid, nil
}

func (s *BidServiceSQL) Update(id uint, req *models.BidUpdate) error {
	status := string(models.BidStatusPending)
	if req.Status != nil {
		status = *req.Status
	}

	res, err := s.db.Exec(s.db.Rebind(
		`UPDATE bids SET bid_amount = ?, proposed_start_time = ?, estimated_duration = ?,
		                 cover_letter = ?, status = ? WHERE id = ?`),
		req.BidAmount, req.ProposedStartTime, req.EstimatedDuration, req.CoverLetter, status, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return NewNotFound("Bid", id)
	}
	return nil
}

func (s *BidServiceSQL) Delete(id uint) error {
	res, err := s.db.Exec(s.db.Rebind(`DELETE FROM bids WHERE id = ?`), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return NewNotFound("Bid", id)
	}
	return nil
}

func (s *BidServiceSQL) GetByJob(jobID uint) ([]models.BidDetail, error) {
	bids := []models.BidDetail{}
	err := s.db.Select(&bids, s.db.Rebind(bidDetailSelect+` WHERE b.job_id = ? ORDER BY b.bid_date DESC`), jobID)
	return bids, err
}

func (s *BidServiceSQL) GetByWorker(workerID uint) ([]models.BidDetail, error) {
	bids := []models.BidDetail{}
	err := s.db.Select(&bids, s.db.Rebind(bidDetailSelect+` WHERE b.worker_id = ? ORDER BY b.bid_date DESC`), workerID)
	return bids, err
}

// Accept runs the bid-acceptance transition inside one transaction. The
// job row is advanced from Open to Assigned with a guarded update, so of
// two racing accepts on the same job exactly one wins.
func (s *BidServiceSQL) Accept(bidID uint) (string, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var bid struct {
		ID                uint       `db:"id"`
		JobID             uint       `db:"job_id"`
		WorkerID          uint       `db:"worker_id"`
		ProposedStartTime *time.Time `db:"proposed_start_time"`
	}
	err = tx.Get(&bid, tx.Rebind(`SELECT id, job_id, worker_id, proposed_start_time FROM bids WHERE id = ?`), bidID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", NewNotFound("Bid", bidID)
	}
	if err != nil {
		return "", err
	}

	res, err := tx.Exec(tx.Rebind(`UPDATE jobs SET status = 'Assigned' WHERE id = ? AND status = 'Open'`), bid.JobID)
	if err != nil {
		return "", err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if rows == 0 {
		return "", NewConflict(fmt.Sprintf("job %d is no longer open for assignment", bid.JobID))
	}

	if _, err := tx.Exec(tx.Rebind(
		`UPDATE bids SET status = 'Accepted', is_winning_bid = ? WHERE id = ?`), true, bidID); err != nil {
		return "", err
	}

	if _, err := tx.Exec(tx.Rebind(
		`UPDATE bids SET status = 'Rejected' WHERE job_id = ? AND id <> ? AND status = 'Pending'`),
		bid.JobID, bidID); err != nil {
		return "", err
	}

	code, err := newUniqueBookingCode(func(code string) (bool, error) {
		var n int
		if err := tx.Get(&n, tx.Rebind(`SELECT COUNT(*) FROM bookings WHERE booking_code = ?`), code); err != nil {
			return false, err
		}
		return n > 0, nil
	})
	if err != nil {
		return "", err
	}

	if _, err := tx.Exec(tx.Rebind(
		`INSERT INTO bookings (job_id, worker_id, bid_id, scheduled_start, status, booking_code)
		 VALUES (?, ?, ?, ?, 'Scheduled', ?)`),
		bid.JobID, bid.WorkerID, bid.ID, bid.ProposedStartTime, code); err != nil {
		return "", err
	}

	message := fmt.Sprintf("Congratulations! Your bid has been accepted for Job ID: %d", bid.JobID)
	if _, err := tx.Exec(tx.Rebind(
		`INSERT INTO notifications (user_id, notification_type, title, message, created_date,
		                            is_read, related_entity_id, related_entity_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 'Job')`),
		bid.WorkerID, models.NotificationTypeBidAccepted, "Your Bid Has Been Accepted!",
		message, time.Now(), false, bid.JobID); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	log.Printf("✅ Bid %d accepted, booking %s created", bidID, code)
	return code, nil
}

func (s *BidServiceSQL) Stats(jobID uint) (*models.BidStats, error) {
	var stats models.BidStats
	err := s.db.Get(&stats, s.db.Rebind(`
		SELECT COUNT(*) AS total_bids,
		       COALESCE(AVG(bid_amount), 0) AS average_bid_amount,
		       COALESCE(MIN(bid_amount), 0) AS min_bid_amount,
		       COALESCE(MAX(bid_amount), 0) AS max_bid_amount,
		       COALESCE(SUM(CASE WHEN status = 'Accepted' THEN 1 ELSE 0 END), 0) AS accepted_bids
		FROM bids WHERE job_id = ?`), jobID)
	if err != nil {
		return nil, err
	}
	stats.JobID = jobID
	return &stats, nil
}
