package services

import (
	"errors"

	"gorm.io/gorm"

	"serviceconnect-server/models"
)

// CategoryServiceORM is the gorm-backed service-category service.
type CategoryServiceORM struct {
	db *gorm.DB
}

// NewCategoryServiceORM creates a CategoryService backed by gorm.
func NewCategoryServiceORM(db *gorm.DB) *CategoryServiceORM {
	return &CategoryServiceORM{db: db}
}

func (s *CategoryServiceORM) GetAll() ([]models.ServiceCategory, error) {
	var categories []models.ServiceCategory
	err := s.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (s *CategoryServiceORM) GetActive() ([]models.ServiceCategory, error) {
	var categories []models.ServiceCategory
	err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (s *CategoryServiceORM) GetByID(id uint) (*models.ServiceCategory, error) {
	var category models.ServiceCategory
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("ServiceCategory", id)
		}
		return nil, err
	}
	return &category, nil
}

func (s *CategoryServiceORM) Create(req *models.ServiceCategoryRequest) (*models.ServiceCategory, error) {
	category := models.ServiceCategory{
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
		BaseRate:    req.BaseRate,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryServiceORM) Update(id uint, req *models.ServiceCategoryRequest) error {
	var category models.ServiceCategory
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFound("ServiceCategory", id)
		}
		return err
	}

	category.Name = req.Name
	category.Description = req.Description
	category.IconURL = req.IconURL
	category.BaseRate = req.BaseRate
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	return s.db.Save(&category).Error
}

func (s *CategoryServiceORM) Delete(id uint) error {
	res := s.db.Delete(&models.ServiceCategory{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NewNotFound("ServiceCategory", id)
	}
	return nil
}
