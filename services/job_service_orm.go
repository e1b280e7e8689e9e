package services

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"serviceconnect-server/models"
)

// jobDetailColumns is the select list shared by the job read views. The
// `||` concat works on both postgres and the sqlite test driver.
const jobDetailColumns = `jobs.id, jobs.customer_id, jobs.category_id, jobs.title, jobs.description,
	jobs.budget, jobs.posted_date, jobs.start_date, jobs.end_date, jobs.location,
	jobs.status, jobs.urgency_level, jobs.required_workers, jobs.completed_workers,
	customers.first_name || ' ' || customers.last_name AS customer_name,
	service_categories.name AS category_name`

// JobServiceORM is the gorm-backed job service.
type JobServiceORM struct {
	db *gorm.DB
}

// NewJobServiceORM creates a JobService backed by gorm.
func NewJobServiceORM(db *gorm.DB) *JobServiceORM {
	return &JobServiceORM{db: db}
}

func (s *JobServiceORM) detailQuery() *gorm.DB {
	return s.db.Table("jobs").
		Select(jobDetailColumns).
		Joins("JOIN customers ON customers.id = jobs.customer_id").
		Joins("JOIN service_categories ON service_categories.id = jobs.category_id")
}

func (s *JobServiceORM) GetAll() ([]models.JobDetail, error) {
	var jobs []models.JobDetail
	err := s.detailQuery().
		Order("jobs.posted_date DESC").
		Limit(100).
		Scan(&jobs).Error
	return jobs, err
}

func (s *JobServiceORM) GetByID(id uint) (*models.JobDetail, error) {
	var job models.JobDetail
	err := s.detailQuery().
		Where("jobs.id = ?", id).
		Scan(&job).Error
	if err != nil {
		return nil, err
	}
	if job.ID == 0 {
		return nil, NewNotFound("Job", id)
	}
	return &job, nil
}

func (s *JobServiceORM) Create(req *models.JobCreate) (*models.Job, error) {
	if req.UrgencyLevel != nil && !models.IsValidUrgency(*req.UrgencyLevel) {
		return nil, NewValidation("urgency_level", "must be one of Low, Medium, High, Urgent")
	}

	requiredWorkers := req.RequiredWorkers
	if requiredWorkers <= 0 {
		requiredWorkers = 1
	}

	job := models.Job{
		CustomerID:      req.CustomerID,
		CategoryID:      req.CategoryID,
		Title:           req.Title,
		Description:     req.Description,
		Budget:          req.Budget,
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

	if err := s.db.Create(&job).Error; err != nil {
		return nil, err
	}

	log.Printf("✅ Job created: %s (ID: %d)", job.Title, job.ID)
	return &job, nil
}

func (s *JobServiceORM) Update(id uint, req *models.JobUpdate) error {
	var job models.Job
	if err := s.db.First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFound("Job", id)
		}
		return err
	}

	job.Title = req.Title
	job.Description = req.Description
	job.Budget = req.Budget
	job.StartDate = req.StartDate
	job.EndDate = req.EndDate
	job.Location = req.Location
	job.RequiredWorkers = req.RequiredWorkers
	if req.Status != nil {
		job.Status = models.JobStatus(*req.Status)
	}
	if req.UrgencyLevel != nil {
		if !models.IsValidUrgency(*req.UrgencyLevel) {
			return NewValidation("urgency_level", "must be one of Low, Medium, High, Urgent")
		}
		u := models.UrgencyLevel(*req.UrgencyLevel)
		job.UrgencyLevel = &u
	}

	return s.db.Save(&job).Error
}

func (s *JobServiceORM) Delete(id uint) error {
	res := s.db.Delete(&models.Job{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NewNotFound("Job", id)
	}
	return nil
}

func (s *JobServiceORM) GetOpen() ([]models.JobDetail, error) {
	var jobs []models.JobDetail
	err := s.detailQuery().
		Where("jobs.status = ?", models.JobStatusOpen).
		Order("jobs.posted_date DESC").
		Scan(&jobs).Error
	return jobs, err
}

func (s *JobServiceORM) GetByCategory(categoryID uint) ([]models.JobDetail, error) {
	var jobs []models.JobDetail
	err := s.detailQuery().
		Where("jobs.category_id = ?", categoryID).
		Order("jobs.posted_date DESC").
		Scan(&jobs).Error
	return jobs, err
}

func (s *JobServiceORM) GetByCustomer(customerID uint) ([]models.JobDetail, error) {
	var jobs []models.JobDetail
	err := s.detailQuery().
		Where("jobs.customer_id = ?", customerID).
		Order("jobs.posted_date DESC").
		Scan(&jobs).Error
	return jobs, err
}

func (s *JobServiceORM) GetByLocation(city string, categoryID uint) ([]models.JobDetail, error) {
	var jobs []models.JobDetail
	err := s.detailQuery().
		Where("jobs.location LIKE ?", "%"+city+"%").
		Where("jobs.category_id = ?", categoryID).
		Where("jobs.status IN ?", []models.JobStatus{models.JobStatusOpen, models.JobStatusAssigned}).
		Scan(&jobs).Error
	return jobs, err
}

func (s *JobServiceORM) AddAttachment(jobID uint, fileURL, fileType string, description *string) (*models.JobAttachment, error) {
	var job models.Job
	if err := s.db.First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("Job", jobID)
		}
		return nil, err
	}

	attachment := models.JobAttachment{
		JobID:       jobID,
		FileURL:     &fileURL,
		FileType:    &fileType,
		Description: description,
	}
	if err := s.db.Create(&attachment).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (s *JobServiceORM) GetAttachments(jobID uint) ([]models.JobAttachment, error) {
	var attachments []models.JobAttachment
	err := s.db.Where("job_id = ?", jobID).
		Order("uploaded_date DESC").
		Find(&attachments).Error
	return attachments, err
}

func (s *JobServiceORM) GetActiveWithBids() ([]models.ActiveJobWithBids, error) {
	var jobs []models.ActiveJobWithBids
	err := s.db.Table("jobs").
		Select(`jobs.id, jobs.title, jobs.budget, jobs.status, jobs.urgency_level,
			jobs.posted_date, jobs.required_workers,
			customers.first_name || ' ' || customers.last_name AS customer_name,
			service_categories.name AS category_name,
			(SELECT COUNT(*) FROM bids WHERE bids.job_id = jobs.id) AS total_bids,
			(SELECT COUNT(*) FROM bids WHERE bids.job_id = jobs.id AND bids.status = 'Accepted') AS accepted_bids`).
		Joins("JOIN customers ON customers.id = jobs.customer_id").
		Joins("JOIN service_categories ON service_categories.id = jobs.category_id").
		Where("jobs.status IN ?", []models.JobStatus{models.JobStatusOpen, models.JobStatusAssigned}).
		Scan(&jobs).Error
	return jobs, err
}
