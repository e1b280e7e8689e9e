package services

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"serviceconnect-server/models"
)

// JobServiceSQL is the hand-written-SQL job service.
type JobServiceSQL struct {
	db *sqlx.DB
}

// NewJobServiceSQL creates a JobService backed by sqlx.
func NewJobServiceSQL(db *sqlx.DB) *JobServiceSQL {
	return &JobServiceSQL{db: db}
}

const jobDetailSelect = `
	SELECT j.id, j.customer_id, j.category_id, j.title, j.description, j.budget,
	       j.posted_date, j.start_date, j.end_date, j.location, j.status,
	       j.urgency_level, j.required_workers, j.completed_workers,
	       c.first_name || ' ' || c.last_name AS customer_name,
	       sc.name AS category_name
	FROM jobs j
	JOIN customers c ON c.id = j.customer_id
	JOIN service_categories sc ON sc.id = j.category_id`

func (s *JobServiceSQL) GetAll() ([]models.JobDetail, error) {
	jobs := []models.JobDetail{}
	err := s.db.Select(&jobs, jobDetailSelect+` ORDER BY j.posted_date DESC LIMIT 100`)
	return jobs, err
}

func (s *JobServiceSQL) GetByID(id uint) (*models.JobDetail, error) {
	var job models.JobDetail
	err := s.db.Get(&job, s.db.Rebind(jobDetailSelect+` WHERE j.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewNotFound("Job", id)
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobServiceSQL) Create(req *models.JobCreate) (*models.Job, error) {
	if req.UrgencyLevel != nil && !models.IsValidUrgency(*req.UrgencyLevel) {
		return nil, NewValidation("urgency_level", "must be one of Low, Medium, High, Urgent")
	}

	requiredWorkers := req.RequiredWorkers
	if requiredWorkers <= 0 {
		requiredWorkers = 1
	}

	now := time.Now()
	var id uint
	err := s.db.Get(&id, s.db.Rebind(
		`INSERT INTO jobs (customer_id, category_id, title, description, budget, posted_date,
		                   start_date, end_date, location, latitude, longitude, status,
		                   urgency_level, required_workers, completed_workers)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'Open', ?, ?, 0) RETURNING id`),
		req.CustomerID, req.CategoryID, req.Title, req.Description, req.Budget, now,
		req.StartDate, req.EndDate, req.Location, req.Latitude, req.Longitude,
		req.UrgencyLevel, requiredWorkers)
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		ID:              id,
		CustomerID:      req.CustomerID,
		CategoryID:      req.CategoryID,
		Title:           req.Title,
		Description:     req.Description,
		Budget:          req.Budget,
		PostedDate:      now,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Location:        req.Location,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Status:          models.JobStatusOpen,
		RequiredWorkers: requiredWorkers,
	}
	if req.UrgencyLevel != nil {
		u := models.UrgencyLevel(*req.UrgencyLevel)
		job.UrgencyLevel = &u
	}

	log.Printf("✅ Job created: %s (ID: %d)", job.Title, job.ID)
	return job, nil
}

func (s *JobServiceSQL) Update(id uint, req *models.JobUpdate) error {
	if req.UrgencyLevel != nil && !models.IsValidUrgency(*req.UrgencyLevel) {
		return NewValidation("urgency_level", "must be one of Low, Medium, High, Urgent")
	}

	var current string
	err := s.db.Get(&current, s.db.Rebind(`SELECT status FROM jobs WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return NewNotFound("Job", id)
	}
	if err != nil {
		return err
	}

	status := current
	if req.Status != nil {
		status = *req.Status
	}

	_, err = s.db.Exec(s.db.Rebind(
		`UPDATE jobs SET title = ?, description = ?, budget = ?, start_date = ?, end_date = ?,
		                 location = ?, status = ?, urgency_level = ?, required_workers = ?
		 WHERE id = ?`),
		req.Title, req.Description, req.Budget, req.StartDate, req.EndDate,
		req.Location, status, req.UrgencyLevel, req.RequiredWorkers, id)
	return err
}

func (s *JobServiceSQL) Delete(id uint) error {
	res, err := s.db.Exec(s.db.Rebind(`DELETE FROM jobs WHERE id = ?`), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return NewNotFound("Job", id)
	}
	return nil
}

func (s *JobServiceSQL) GetOpen() ([]models.JobDetail, error) {
	jobs := []models.JobDetail{}
	err := s.db.Select(&jobs, jobDetailSelect+` WHERE j.status = 'Open' ORDER BY j.posted_date DESC`)
	return jobs, err
}

func (s *JobServiceSQL) GetByCategory(categoryID uint) ([]models.JobDetail, error) {
	jobs := []models.JobDetail{}
	err := s.db.Select(&jobs, s.db.Rebind(
		jobDetailSelect+` WHERE j.category_id = ? ORDER BY j.posted_date DESC`), categoryID)
	return jobs, err
}

func (s *JobServiceSQL) GetByCustomer(customerID uint) ([]models.JobDetail, error) {
	jobs := []models.JobDetail{}
	err := s.db.Select(&jobs, s.db.Rebind(
		jobDetailSelect+` WHERE j.customer_id = ? ORDER BY j.posted_date DESC`), customerID)
	return jobs, err
}

func (s *JobServiceSQL) GetByLocation(city string, categoryID uint) ([]models.JobDetail, error) {
	jobs := []models.JobDetail{}
	err := s.db.Select(&jobs, s.db.Rebind(
		jobDetailSelect+` WHERE j.location LIKE ? AND j.category_id = ?
		 AND j.status IN ('Open', 'Assigned')`),
		"%"+city+"%", categoryID)
	return jobs, err
}

func (s *JobServiceSQL) AddAttachment(jobID uint, fileURL, fileType string, description *string) (*models.JobAttachment, error) {
	var exists int
	if err := s.db.Get(&exists, s.db.Rebind(`SELECT COUNT(*) FROM jobs WHERE id = ?`), jobID); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, NewNotFound("Job", jobID)
	}

	attachment := models.JobAttachment{
		JobID:        jobID,
		FileURL:      &fileURL,
		FileType:     &fileType,
		UploadedDate: time.Now(),
		Description:  description,
	}
	err := s.db.Get(&attachment.ID, s.db.Rebind(
		`INSERT INTO job_attachments (job_id, file_url, file_type, uploaded_date, description)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`),
		attachment.JobID, attachment.FileURL, attachment.FileType, attachment.UploadedDate, attachment.Description)
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (s *JobServiceSQL) GetAttachments(jobID uint) ([]models.JobAttachment, error) {
	attachments := []models.JobAttachment{}
	err := s.db.Select(&attachments, s.db.Rebind(
		`SELECT id, job_id, file_url, file_type, uploaded_date, description
		 FROM job_attachments WHERE job_id = ? ORDER BY uploaded_date DESC`), jobID)
	return attachments, err
}

func (s *JobServiceSQL) GetActiveWithBids() ([]models.ActiveJobWithBids, error) {
	jobs := []models.ActiveJobWithBids{}
	err := s.db.Select(&jobs, `
		SELECT j.id, j.title, j.budget, j.status, j.urgency_level, j.posted_date, j.required_workers,
		       c.first_name || ' ' || c.last_name AS customer_name,
		       sc.name AS category_name,
		       (SELECT COUNT(*) FROM bids WHERE bids.job_id = j.id) AS total_bids,
		       (SELECT COUNT(*) FROM bids WHERE bids.job_id = j.id AND bids.status = 'Accepted') AS accepted_bids
		FROM jobs j
		JOIN customers c ON c.id = j.customer_id
		JOIN service_categories sc ON sc.id = j.category_id
		WHERE j.status IN ('Open', 'Assigned')`)
	return jobs, err
}
