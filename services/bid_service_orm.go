package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"serviceconnect-server/models"
)

const bidDetailColumns = `bids.id, bids.job_id, bids.worker_id, bids.bid_amount,
	bids.proposed_start_time, bids.estimated_duration, bids.cover_letter,
	bids.bid_date, bids.status, bids.is_winning_bid,
	workers.first_name || ' ' || workers.last_name AS worker_name,
	jobs.title AS job_title`

// BidServiceORM is the gorm-backed bid service.
type BidServiceORM struct {
	db *gorm.DB
}

// NewBidServiceORM creates a BidService backed by gorm.
func NewBidServiceORM(db *gorm.DB) *BidServiceORM {
	return &BidServiceORM{db: db}
}

func (s *BidServiceORM) detailQuery() *gorm.DB {
	return s.db.Table("bids").
		Select(bidDetailColumns).
		Joins("JOIN workers ON workers.id = bids.worker_id").
		Joins("JOIN jobs ON jobs.id = bids.job_id")
}

func (s *BidServiceORM) GetAll() ([]models.BidDetail, error) {
	var bids []models.BidDetail
	err := s.detailQuery().
		Order("bids.bid_date DESC").
		Limit(100).
		Scan(&bids).Error
	return bids, err
}

func (s *BidServiceORM) GetByID(id uint) (*models.BidDetail, error) {
	var bid models.BidDetail
	err := s.detailQuery().
		Where("bids.id = ?", id).
		Scan(&bid).Error
	if err != nil {
		return nil, err
	}
	if bid.ID == 0 {
		return nil, NewNotFound("Bid", id)
	}
	return &bid, nil
}

// Create places a bid. The job must still be Open and the worker may not
// hold another live bid on the same job.
func (s *BidServiceORM) Create(req *models.BidCreate) (*models.Bid, error) {
	var bid models.Bid

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, req.JobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFound("Job", req.JobID)
			}
			return err
		}
		if job.Status != models.JobStatusOpen {
			return NewConflict(fmt.Sprintf("job %d is %s, bids are only accepted on open jobs", job.ID, job.Status))
		}

		var existing int64
		if err := tx.Model(&models.Bid{}).
			Where("job_id = ? AND worker_id = ? AND status IN ?",
				req.JobID, req.WorkerID,
				[]models.BidStatus{models.BidStatusPending, models.BidStatusAccepted}).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return NewConflict(fmt.Sprintf("worker %d already has a live bid on job %d", req.WorkerID, req.JobID))
		}

		amount := req.BidAmount
		bid = models.Bid{
			JobID:             req.JobID,
			WorkerID:          req.WorkerID,
			BidAmount:         &amount,
			ProposedStartTime: req.ProposedStartTime,
			EstimatedDuration: req.EstimatedDuration,
			CoverLetter:       req.CoverLetter,
			Status:            models.BidStatusPending,
			IsWinningBid:      false,
		}
		return tx.Create(&bid).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Bid %d placed on job %d by worker %d", bid.ID, bid.JobID, bid.WorkerID)
	return &bid, nil
}

func (s *BidServiceORM) Update(id uint, req *models.BidUpdate) error {
	var bid models.Bid
	if err := s.db.First(&bid, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFound("Bid", id)
		}
		return err
	}

	amount := req.BidAmount
	bid.BidAmount = &amount
	bid.ProposedStartTime = req.ProposedStartTime
	bid.EstimatedDuration = req.EstimatedDuration
	bid.CoverLetter = req.CoverLetter
	if req.Status != nil {
		bid.Status = models.BidStatus(*req.Status)
	}

	return s.db.Save(&bid).Error
}

func (s *BidServiceORM) Delete(id uint) error {
	res := s.db.Delete(&models.Bid{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NewNotFound("Bid", id)
	}
	return nil
}

func (s *BidServiceORM) GetByJob(jobID uint) ([]models.BidDetail, error) {
	var bids []models.BidDetail
	err := s.detailQuery().
		Where("bids.job_id = ?", jobID).
		Order("bids.bid_date DESC").
		Scan(&bids).Error
	return bids, err
}

func (s *BidServiceORM) GetByWorker(workerID uint) ([]models.BidDetail, error) {
	var bids []models.BidDetail
	err := s.detailQuery().
		Where("bids.worker_id = ?", workerID).
		Order("bids.bid_date DESC").
		Scan(&bids).Error
	return bids, err
}

// Accept runs the bid-acceptance transition. The job row is advanced from
// Open to Assigned with a guarded update, so of two racing accepts on the
// same job exactly one wins and the loser gets a conflict.
func (s *BidServiceORM) Accept(bidID uint) (string, error) {
	var bookingCode string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var bid models.Bid
		if err := tx.First(&bid, bidID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFound("Bid", bidID)
			}
			return err
		}

		res := tx.Model(&models.Job{}).
			Where("id = ? AND status = ?", bid.JobID, models.JobStatusOpen).
			Update("status", models.JobStatusAssigned)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NewConflict(fmt.Sprintf("job %d is no longer open for assignment", bid.JobID))
		}

		bid.Status = models.BidStatusAccepted
		bid.IsWinningBid = true
		if err := tx.Save(&bid).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Bid{}).
			Where("job_id = ? AND id <> ? AND status = ?", bid.JobID, bid.ID, models.BidStatusPending).
			Update("status", models.BidStatusRejected).Error; err != nil {
			return err
		}

		code, err := newUniqueBookingCode(func(code string) (bool, error) {
			var n int64
			if err := tx.Model(&models.Booking{}).Where("booking_code = ?", code).Count(&n).Error; err != nil {
				return false, err
			}
			return n > 0, nil
		})
		if err != nil {
			return err
		}

		booking := models.Booking{
			JobID:          bid.JobID,
			WorkerID:       bid.WorkerID,
			BidID:          bid.ID,
			ScheduledStart: bid.ProposedStartTime,
			Status:         models.BookingStatusScheduled,
			BookingCode:    &code,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		notifType := models.NotificationTypeBidAccepted
		title := "Your Bid Has Been Accepted!"
		message := fmt.Sprintf("Congratulations! Your bid has been accepted for Job ID: %d", bid.JobID)
		relatedType := "Job"
		relatedID := bid.JobID
		notification := models.Notification{
			UserID:            bid.WorkerID,
			NotificationType:  &notifType,
			Title:             &title,
			Message:           &message,
			CreatedDate:       time.Now(),
			IsRead:            false,
			RelatedEntityID:   &relatedID,
			RelatedEntityType: &relatedType,
		}
		if err := tx.Create(&notification).Error; err != nil {
			return err
		}

		bookingCode = code
		return nil
	})
	if err != nil {
		return "", err
	}

	log.Printf("✅ Bid %d accepted, booking %s created", bidID, bookingCode)
	return bookingCode, nil
}

func (s *BidServiceORM) Stats(jobID uint) (*models.BidStats, error) {
	var stats models.BidStats
	err := s.db.Table("bids").
		Select(`COUNT(*) AS total_bids,
			COALESCE(AVG(bid_amount), 0) AS average_bid_amount,
			COALESCE(MIN(bid_amount), 0) AS min_bid_amount,
			COALESCE(MAX(bid_amount), 0) AS max_bid_amount,
			COALESCE(SUM(CASE WHEN status = 'Accepted' THEN 1 ELSE 0 END), 0) AS accepted_bids`).
		Where("job_id = ?", jobID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	stats.JobID = jobID
	return &stats, nil
}
