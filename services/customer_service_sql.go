package services

import (
	"database/sql"
	"errors"
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"serviceconnect-server/models"
)

// CustomerServiceSQL is the hand-written-SQL customer service.
type CustomerServiceSQL struct {
	db *sqlx.DB
}

// NewCustomerServiceSQL creates a CustomerService backed by sqlx.
func NewCustomerServiceSQL(db *sqlx.DB) *CustomerServiceSQL {
	return &CustomerServiceSQL{db: db}
}

const customerDetailSelect = `
	SELECT c.id, u.email, c.first_name, c.last_name, u.phone_number, c.address,
	       c.city, c.postal_code, c.customer_rating, c.total_jobs_posted
	FROM customers c
	JOIN users u ON u.id = c.id`

func (s *CustomerServiceSQL) GetAll() ([]models.CustomerDetail, error) {
	customers := []models.CustomerDetail{}
	err := s.db.Select(&customers, customerDetailSelect+` ORDER BY c.total_jobs_posted DESC LIMIT 100`)
	return customers, err
}

func (s *CustomerServiceSQL) GetByID(id uint) (*models.CustomerDetail, error) {
	var customer models.CustomerDetail
	err := s.db.Get(&customer, s.db.Rebind(customerDetailSelect+` WHERE c.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewNotFound("Customer", id)
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Create registers the user row and the customer profile in one
// transaction; both share the same primary key.
func (s *CustomerServiceSQL) Create(req *models.CustomerCreate) (*models.Customer, error) {
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
		 VALUES (?, ?, ?, 'Customer', ?, 'Active') RETURNING id`),
		req.Email, string(hash), req.PhoneNumber, false)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(tx.Rebind(
		`INSERT INTO customers (id, first_name, last_name, address, city, postal_code, total_jobs_posted)
		 VALUES (?, ?, ?, ?, ?, ?, 0)`),
		userID, req.FirstName, req.LastName, req.Address, req.City, req.PostalCode); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		ID:         userID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
	}
	log.Printf("✅ Customer registered: %s %s (ID: %d)", customer.FirstName, customer.LastName, customer.ID)
	return customer, nil
}

func (s *CustomerServiceSQL) Update(id uint, req *models.CustomerUpdate) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(tx.Rebind(
		`UPDATE customers SET first_name = ?, last_name = ?, address = ?, city = ?, postal_code = ?
		 WHERE id = ?`),
		req.FirstName, req.LastName, req.Address, req.City, req.PostalCode, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return NewNotFound("Customer", id)
	}

	if _, err := tx.Exec(tx.Rebind(`UPDATE users SET phone_number = ? WHERE id = ?`), req.PhoneNumber, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *CustomerServiceSQL) Delete(id uint) error {
	res, err := s.db.Exec(s.db.Rebind(`DELETE FROM customers WHERE id = ?`), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return NewNotFound("Customer", id)
	}
	return nil
}

func (s *CustomerServiceSQL) GetByCity(city string) ([]models.CustomerDetail, error) {
	customers := []models.CustomerDetail{}
	err := s.db.Select(&customers, s.db.Rebind(customerDetailSelect+` WHERE c.city = ?`), city)
	return customers, err
}

func (s *CustomerServiceSQL) Analytics() ([]models.CustomerAnalytics, error) {
	analytics := []models.CustomerAnalytics{}
	err := s.db.Select(&analytics, `
		SELECT c.id AS customer_id,
		       c.first_name || ' ' || c.last_name AS customer_name,
		       c.city, c.customer_rating, c.total_jobs_posted,
		       (SELECT COUNT(*) FROM jobs WHERE jobs.customer_id = c.id
		        AND jobs.status IN ('Open', 'Assigned')) AS active_jobs,
		       (SELECT COUNT(*) FROM jobs WHERE jobs.customer_id = c.id
		        AND jobs.status = 'Completed') AS completed_jobs,
		       COALESCE((SELECT SUM(budget) FROM jobs WHERE jobs.customer_id = c.id), 0) AS total_spend
		FROM customers c`)
	return analytics, err
}
