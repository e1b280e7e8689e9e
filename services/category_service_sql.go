package services

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"serviceconnect-server/models"
)

// categoryRow mirrors the service_categories table for sqlx scanning.
type categoryRow struct {
	ID          uint     `db:"id"`
	Name        string   `db:"name"`
	Description *string  `db:"description"`
	IconURL     *string  `db:"icon_url"`
	BaseRate    *float64 `db:"base_rate"`
	IsActive    bool     `db:"is_active"`
}

func (r categoryRow) toModel() models.ServiceCategory {
	return models.ServiceCategory{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IconURL:     r.IconURL,
		BaseRate:    r.BaseRate,
		IsActive:    r.IsActive,
	}
}

// CategoryServiceSQL is the hand-written-SQL service-category service.
type CategoryServiceSQL struct {
	db *sqlx.DB
}

// NewCategoryServiceSQL creates a CategoryService backed by sqlx.
func NewCategoryServiceSQL(db *sqlx.DB) *CategoryServiceSQL {
	return &CategoryServiceSQL{db: db}
}

const categorySelect = `SELECT id, name, description, icon_url, base_rate, is_active FROM service_categories`

func rowsToCategories(rows []categoryRow) []models.ServiceCategory {
	categories := make([]models.ServiceCategory, 0, len(rows))
	for _, r := range rows {
		categories = append(categories, r.toModel())
	}
	return categories
}

func (s *CategoryServiceSQL) GetAll() ([]models.ServiceCategory, error) {
	rows := []categoryRow{}
	if err := s.db.Select(&rows, categorySelect+` ORDER BY name ASC`); err != nil {
		return nil, err
	}
	return rowsToCategories(rows), nil
}

func (s *CategoryServiceSQL) GetActive() ([]models.ServiceCategory, error) {
	rows := []categoryRow{}
	if err := s.db.Select(&rows, s.db.Rebind(categorySelect+` WHERE is_active = ? ORDER BY name ASC`), true); err != nil {
		return nil, err
	}
	return rowsToCategories(rows), nil
}

func (s *CategoryServiceSQL) GetByID(id uint) (*models.ServiceCategory, error) {
	var row categoryRow
	err := s.db.Get(&row, s.db.Rebind(categorySelect+` WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewNotFound("ServiceCategory", id)
	}
	if err != nil {
		return nil, err
	}
	category := row.toModel()
	return &category, nil
}

func (s *CategoryServiceSQL) Create(req *models.ServiceCategoryRequest) (*models.ServiceCategory, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var id uint
	err := s.db.Get(&id, s.db.Rebind(
		`INSERT INTO service_categories (name, description, icon_url, base_rate, is_active)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`),
		req.Name, req.Description, req.IconURL, req.BaseRate, isActive)
	if err != nil {
		return nil, err
	}

	return &models.ServiceCategory{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
		BaseRate:    req.BaseRate,
		IsActive:    isActive,
	}, nil
}

func (s *CategoryServiceSQL) Update(id uint, req *models.ServiceCategoryRequest) error {
	var current bool
	err := s.db.Get(&current, s.db.Rebind(`SELECT is_active FROM service_categories WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return NewNotFound("ServiceCategory", id)
	}
	if err != nil {
		return err
	}

	isActive := current
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	_, err = s.db.Exec(s.db.Rebind(
		`UPDATE service_categories SET name = ?, description = ?, icon_url = ?, base_rate = ?, is_active = ?
		 WHERE id = ?`),
		req.Name, req.Description, req.IconURL, req.BaseRate, isActive, id)
	return err
}

func (s *CategoryServiceSQL) Delete(id uint) error {
	res, err := s.db.Exec(s.db.Rebind(`DELETE FROM service_categories WHERE id = ?`), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return NewNotFound("ServiceCategory", id)
	}
	return nil
}
