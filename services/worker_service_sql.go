package services

import (
	"database/sql"
	"errors"
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"serviceconnect-server/models"
)

// WorkerServiceSQL is the hand-written-SQL worker service.
type WorkerServiceSQL struct {
	db *sqlx.DB
}

// NewWorkerServiceSQL creates a WorkerService backed by sqlx.
func NewWorkerServiceSQL(db *sqlx.DB) *WorkerServiceSQL {
	return &WorkerServiceSQL{db: db}
}

const workerDetailSelect = `
	SELECT w.id, u.email, w.first_name, w.last_name, u.phone_number, w.date_of_birth,
	       w.address, w.city, w.postal_code, w.bio, w.experience_years, w.hourly_rate,
	       w.overall_rating, w.total_jobs_completed
	FROM workers w
	JOIN users u ON u.id = w.id`

func (s *WorkerServiceSQL) GetAll() ([]models.WorkerDetail, error) {
	workers := []models.WorkerDetail{}
	err := s.db.Select(&workers, workerDetailSelect)
	return workers, err
}

func (s *WorkerServiceSQL) GetByID(id uint) (*models.WorkerDetail, error) {
	var worker models.WorkerDetail
	err := s.db.Get(&worker, s.db.Rebind(workerDetailSelect+` WHERE w.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewNotFound("Worker", id)
	}
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

// Create registers the user row and the worker profile in one transaction;
// both share the same primary key.
func (s *WorkerServiceSQL) Create(req *models.WorkerCreate) (*models.Worker, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var userID uint
	err = tx.Get(&userID, tx.Rebind(
		`INSERT INTO users (email, password_hash, phone_number, user_type, is_verified, account_status)
		 VALUES (?, ?, ?, 'Worker', ?, 'Active') RETURNING id`),
		req.Email, string(hash), req.PhoneNumber, false)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(tx.Rebind(
		`INSERT INTO workers (id, first_name, last_name, date_of_birth, address, city, postal_code,
		                      bio, experience_years, hourly_rate, overall_rating, total_jobs_completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0)`),
		userID, req.FirstName, req.LastName, req.DateOfBirth, req.Address, req.City,
		req.PostalCode, req.Bio, req.ExperienceYears, req.HourlyRate); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	zero := 0.0
	worker := &models.Worker{
		ID:              userID,
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
	log.Printf("✅ Worker registered: %s %s (ID: %d)", worker.FirstName, worker.LastName, worker.ID)
	return worker, nil
}

func (s *WorkerServiceSQL) Update(id uint, req *models.WorkerUpdate) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(tx.Rebind(
		`UPDATE workers SET first_name = ?, last_name = ?, date_of_birth = ?, address = ?,
		                    city = ?, postal_code = ?, bio = ?, experience_years = ?, hourly_rate = ?
		 WHERE id = ?`),
		req.FirstName, req.LastName, req.DateOfBirth, req.Address, req.City,
		req.PostalCode, req.Bio, req.ExperienceYears, req.HourlyRate, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return NewNotFound("Worker", id)
	}

	if _, err := tx.Exec(tx.Rebind(`UPDATE users SET phone_number = ? WHERE id = ?`), req.PhoneNumber, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *WorkerServiceSQL) Delete(id uint) error {
	res, err := s.db.Exec(s.db.Rebind(`DELETE FROM workers WHERE id = ?`), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return NewNotFound("Worker", id)
	}
	return nil
}

func (s *WorkerServiceSQL) GetBySkill(categoryID uint) ([]models.WorkerDetail, error) {
	workers := []models.WorkerDetail{}
	err := s.db.Select(&workers, s.db.Rebind(
		workerDetailSelect+` WHERE w.id IN (SELECT worker_id FROM worker_skills WHERE category_id = ?)
		 ORDER BY w.total_jobs_completed DESC LIMIT 100`), categoryID)
	return workers, err
}

func (s *WorkerServiceSQL) GetByCity(city string) ([]models.WorkerDetail, error) {
	workers := []models.WorkerDetail{}
	err := s.db.Select(&workers, s.db.Rebind(workerDetailSelect+` WHERE w.city = ?`), city)
	return workers, err
}

func (s *WorkerServiceSQL) AvailableForJob(categoryID uint) ([]models.AvailableWorker, error) {
	workers := []models.AvailableWorker{}
	err := s.db.Select(&workers, s.db.Rebind(`
		SELECT w.id AS worker_id,
		       w.first_name || ' ' || w.last_name AS full_name,
		       w.hourly_rate, w.overall_rating, w.total_jobs_completed,
		       ws.skill_level, ws.years_experience
		FROM workers w
		JOIN worker_skills ws ON ws.worker_id = w.id
		WHERE ws.category_id = ? AND w.overall_rating >= 3.0 AND w.total_jobs_completed > 0
		ORDER BY w.overall_rating DESC, w.total_jobs_completed DESC`), categoryID)
	return workers, err
}

func (s *WorkerServiceSQL) Performance(workerID uint) (*models.WorkerPerformance, error) {
	var perf models.WorkerPerformance
	err := s.db.Get(&perf, s.db.Rebind(`
		SELECT w.id AS worker_id,
		       w.first_name || ' ' || w.last_name AS full_name,
		       w.hourly_rate, w.overall_rating, w.total_jobs_completed,
		       (SELECT COUNT(*) FROM bids WHERE bids.worker_id = w.id) AS total_bids_placed,
		       (SELECT COUNT(*) FROM bids WHERE bids.worker_id = w.id AND bids.is_winning_bid) AS winning_bids,
		       COALESCE((SELECT AVG(CAST(rating AS FLOAT)) FROM reviews WHERE reviews.reviewed_id = w.id), 0) AS average_rating,
		       (SELECT COUNT(*) FROM reviews WHERE reviews.reviewed_id = w.id) AS total_reviews
		FROM workers w WHERE w.id = ?`), workerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewNotFound("Worker", workerID)
	}
	if err != nil {
		return nil, err
	}
	return &perf, nil
}

func (s *WorkerServiceSQL) TopPerformersByCategory(categoryID uint) ([]models.TopPerformer, error) {
	performers := []models.TopPerformer{}
	err := s.db.Select(&performers, s.db.Rebind(`
		SELECT w.id AS worker_id,
		       w.first_name || ' ' || w.last_name AS full_name,
		       w.hourly_rate, w.overall_rating, w.total_jobs_completed,
		       (SELECT COUNT(*) FROM bids WHERE bids.worker_id = w.id) AS total_bids,
		       (SELECT COUNT(*) FROM bids WHERE bids.worker_id = w.id AND bids.is_winning_bid) AS winning_bids,
		       CASE WHEN (SELECT COUNT(*) FROM bids WHERE bids.worker_id = w.id) > 0
		            THEN (SELECT COUNT(*) FROM bids WHERE bids.worker_id = w.id AND bids.is_winning_bid) * 100.0
		                 / (SELECT COUNT(*) FROM bids WHERE bids.worker_id = w.id)
		            ELSE 0 END AS win_rate_percentage
		FROM workers w
		JOIN worker_skills ws ON ws.worker_id = w.id
		WHERE ws.category_id = ?
		ORDER BY w.overall_rating DESC, w.total_jobs_completed DESC
		LIMIT 20`), categoryID)
	return performers, err
}

// ReliabilityScore is completed bookings over total bookings as a
// percentage, 0 when the worker has no bookings.
func (s *WorkerServiceSQL) ReliabilityScore(workerID uint) (float64, error) {
	var counts struct {
		Total     int `db:"total"`
		Completed int `db:"completed"`
	}
	err := s.db.Get(&counts, s.db.Rebind(`
		SELECT COUNT(*) AS total,
		       COALESCE(SUM(CASE WHEN status = 'Completed' THEN 1 ELSE 0 END), 0) AS completed
		FROM bookings WHERE worker_id = ?`), workerID)
	if err != nil {
		return 0, err
	}
	if counts.Total == 0 {
		return 0, nil
	}
	return float64(counts.Completed) * 100.0 / float64(counts.Total), nil
}

func (s *WorkerServiceSQL) TopRated() ([]models.TopRatedWorker, error) {
	workers := []models.TopRatedWorker{}
	err := s.db.Select(&workers, `
		SELECT w.id AS worker_id,
		       w.first_name || ' ' || w.last_name AS full_name,
		       w.hourly_rate, w.overall_rating, w.total_jobs_completed, w.city,
		       sc.name AS category_name,
		       ws.skill_level,
		       (SELECT COUNT(*) FROM reviews WHERE reviews.reviewed_id = w.id) AS review_count,
		       (SELECT AVG(CAST(rating AS FLOAT)) FROM reviews WHERE reviews.reviewed_id = w.id) AS average_rating
		FROM workers w
		LEFT JOIN worker_skills ws ON ws.worker_id = w.id
		LEFT JOIN service_categories sc ON sc.id = ws.category_id
		ORDER BY w.overall_rating DESC`)
	return workers, err
}
