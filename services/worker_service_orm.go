package services

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"serviceconnect-server/models"
)

const workerDetailColumns = `workers.id, users.email, workers.first_name, workers.last_name,
	users.phone_number, workers.date_of_birth, workers.address, workers.city, workers.postal_code,
	workers.bio, workers.experience_years, workers.hourly_rate, workers.overall_rating,
	workers.total_jobs_completed`

// WorkerServiceORM is the gorm-backed worker service.
type WorkerServiceORM struct {
	db *gorm.DB
}

// NewWorkerServiceORM creates a WorkerService backed by gorm.
func NewWorkerServiceORM(db *gorm.DB) *WorkerServiceORM {
	return &WorkerServiceORM{db: db}
}

func (s *WorkerServiceORM) detailQuery() *gorm.DB {
	return s.db.Table("workers").
		Select(workerDetailColumns).
		Joins("JOIN users ON users.id = workers.id")
}

func (s *WorkerServiceORM) GetAll() ([]models.WorkerDetail, error) {
	var workers []models.WorkerDetail
	err := s.detailQuery().Scan(&workers).Error
	return workers, err
}

func (s *WorkerServiceORM) GetByID(id uint) (*models.WorkerDetail, error) {
	var worker models.WorkerDetail
	err := s.detailQuery().
		Where("workers.id = ?", id).
		Scan(&worker).Error
	if err != nil {
		return nil, err
	}
	if worker.ID == 0 {
		return nil, NewNotFound("Worker", id)
	}
	return &worker, nil
}

// Create registers the user row and the worker profile in one transaction;
// both share the same primary key.
func (s *WorkerServiceORM) Create(req *models.WorkerCreate) (*models.Worker, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var worker models.Worker
	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Email:         req.Email,
			PasswordHash:  string(hash),
			PhoneNumber:   req.PhoneNumber,
			UserType:      models.UserTypeWorker,
			IsVerified:    false,
			AccountStatus: models.AccountStatusActive,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		zero := 0.0
		worker = models.Worker{
			ID:              user.ID,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			DateOfBirth:     req.DateOfBirth,
			Address:         req.Address,
			City:            req.City,
			PostalCode:      req.PostalCode,
			Bio:             req.Bio,
			ExperienceYears: req.ExperienceYears,
			HourlyRate:      req.HourlyRate,
			OverallRating:   &zero,
		}
		return tx.Create(&worker).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Worker registered: %s %s (ID: %d)", worker.FirstName, worker.LastName, worker.ID)
	return &worker, nil
}

func (s *WorkerServiceORM) Update(id uint, req *models.WorkerUpdate) error {
	var worker models.Worker
	if err := s.db.Preload("User").First(&worker, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFound("Worker", id)
		}
		return err
	}

	worker.FirstName = req.FirstName
	worker.LastName = req.LastName
	worker.DateOfBirth = req.DateOfBirth
	worker.Address = req.Address
	worker.City = req.City
	worker.PostalCode = req.PostalCode
	worker.Bio = req.Bio
	worker.ExperienceYears = req.ExperienceYears
	worker.HourlyRate = req.HourlyRate

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&worker).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", id).
			Update("phone_number", req.PhoneNumber).Error
	})
}

func (s *WorkerServiceORM) Delete(id uint) error {
	res := s.db.Delete(&models.Worker{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NewNotFound("Worker", id)
	}
	return nil
}

func (s *WorkerServiceORM) GetBySkill(categoryID uint) ([]models.WorkerDetail, error) {
	var workers []models.WorkerDetail
	err := s.detailQuery().
		Where("workers.id IN (SELECT worker_id FROM worker_skills WHERE category_id = ?)", categoryID).
		Order("workers.total_jobs_completed DESC").
		Limit(100).
		Scan(&workers).Error
	return workers, err
}

func (s *WorkerServiceORM) GetByCity(city string) ([]models.WorkerDetail, error) {
	var workers []models.WorkerDetail
	err := s.detailQuery().
		Where("workers.city = ?", city).
		Scan(&workers).Error
	return workers, err
}

func (s *WorkerServiceORM) AvailableForJob(categoryID uint) ([]models.AvailableWorker, error) {
	var workers []models.AvailableWorker
	err := s.db.Table("workers").
		Select(`workers.id AS worker_id,
			workers.first_name || ' ' || workers.last_name AS full_name,
			workers.hourly_rate, workers.overall_rating, workers.total_jobs_completed,
			worker_skills.skill_level, worker_skills.years_experience`).
		Joins("JOIN worker_skills ON worker_skills.worker_id = workers.id").
		Where("worker_skills.category_id = ?", categoryID).
		Where("workers.overall_rating >= ?", 3.0).
		Where("workers.total_jobs_completed > 0").
		Order("workers.overall_rating DESC, workers.total_jobs_completed DESC").
		Scan(&workers).Error
	return workers, err
}

func (s *WorkerServiceORM) Performance(workerID uint) (*models.WorkerPerformance, error) {
	var worker models.Worker
	if err := s.db.First(&worker, workerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("Worker", workerID)
		}
		return nil, err
	}

	perf := models.WorkerPerformance{
		WorkerID:           worker.ID,
		FullName:           worker.FirstName + " " + worker.LastName,
		HourlyRate:         worker.HourlyRate,
		OverallRating:      worker.OverallRating,
		TotalJobsCompleted: worker.TotalJobsCompleted,
	}

	var totalBids, winningBids, totalReviews int64
	if err := s.db.Model(&models.Bid{}).Where("worker_id = ?", workerID).Count(&totalBids).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Bid{}).Where("worker_id = ? AND is_winning_bid = ?", workerID, true).Count(&winningBids).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Review{}).Where("reviewed_id = ?", workerID).Count(&totalReviews).Error; err != nil {
		return nil, err
	}

	var avgRating *float64
	if err := s.db.Model(&models.Review{}).
		Where("reviewed_id = ?", workerID).
		Select("AVG(CAST(rating AS FLOAT))").
		Scan(&avgRating).Error; err != nil {
		return nil, err
	}

	perf.TotalBidsPlaced = int(totalBids)
	perf.WinningBids = int(winningBids)
	perf.TotalReviews = int(totalReviews)
	if avgRating != nil {
		perf.AverageRating = *avgRating
	}

	return &perf, nil
}

func (s *WorkerServiceORM) TopPerformersByCategory(categoryID uint) ([]models.TopPerformer, error) {
	var performers []models.TopPerformer
	err := s.db.Table("workers").
		Select(`workers.id AS worker_id,
			workers.first_name || ' ' || workers.last_name AS full_name,
			workers.hourly_rate, workers.overall_rating, workers.total_jobs_completed,
			(SELECT COUNT(*) FROM bids WHERE bids.worker_id = workers.id) AS total_bids,
			(SELECT COUNT(*) FROM bids WHERE bids.worker_id = workers.id AND bids.is_winning_bid) AS winning_bids,
			CASE WHEN (SELECT COUNT(*) FROM bids WHERE bids.worker_id = workers.id) > 0
				THEN (SELECT COUNT(*) FROM bids WHERE bids.worker_id = workers.id AND bids.is_winning_bid) * 100.0
					/ (SELECT COUNT(*) FROM bids WHERE bids.worker_id = workers.id)
				ELSE 0 END AS win_rate_percentage`).
		Joins("JOIN worker_skills ON worker_skills.worker_id = workers.id").
		Where("worker_skills.category_id = ?", categoryID).
		Order("workers.overall_rating DESC, workers.total_jobs_completed DESC").
		Limit(20).
		Scan(&performers).Error
	return performers, err
}

// ReliabilityScore is completed bookings over total bookings as a
// percentage, 0 when the worker has no bookings.
func (s *WorkerServiceORM) ReliabilityScore(workerID uint) (float64, error) {
	var total, completed int64
	if err := s.db.Model(&models.Booking{}).Where("worker_id = ?", workerID).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	if err := s.db.Model(&models.Booking{}).
		Where("worker_id = ? AND status = ?", workerID, models.BookingStatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, err
	}
	return float64(completed) * 100.0 / float64(total), nil
}

func (s *WorkerServiceORM) TopRated() ([]models.TopRatedWorker, error) {
	var workers []models.TopRatedWorker
	err := s.db.Table("workers").
		Select(`workers.id AS worker_id,
			workers.first_name || ' ' || workers.last_name AS full_name,
			workers.hourly_rate, workers.overall_rating, workers.total_jobs_completed, workers.city,
			service_categories.name AS category_name,
			worker_skills.skill_level,
			(SELECT COUNT(*) FROM reviews WHERE reviews.reviewed_id = workers.id) AS review_count,
			(SELECT AVG(CAST(rating AS FLOAT)) FROM reviews WHERE reviews.reviewed_id = workers.id) AS average_rating`).
		Joins("LEFT JOIN worker_skills ON worker_skills.worker_id = workers.id").
		Joins("LEFT JOIN service_categories ON service_categories.id = worker_skills.category_id").
		Order("workers.overall_rating DESC").
		Scan(&workers).Error
	return workers, err
}
