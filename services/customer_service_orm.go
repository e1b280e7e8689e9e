package services

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"serviceconnect-server/models"
)

const customerDetailColumns = `customers.id, users.email, customers.first_name, customers.last_name,
	users.phone_number, customers.address, customers.city, customers.postal_code,
	customers.customer_rating, customers.total_jobs_posted`

// CustomerServiceORM is the gorm-backed customer service.
type CustomerServiceORM struct {
	db *gorm.DB
}

// NewCustomerServiceORM creates a CustomerService backed by gorm.
func NewCustomerServiceORM(db *gorm.DB) *CustomerServiceORM {
	return &CustomerServiceORM{db: db}
}

func (s *CustomerServiceORM) detailQuery() *gorm.DB {
	return s.db.Table("customers").
		Select(customerDetailColumns).
		Joins("JOIN users ON users.id = customers.id")
}

func (s *CustomerServiceORM) GetAll() ([]models.CustomerDetail, error) {
	var customers []models.CustomerDetail
	err := s.detailQuery().
		Order("customers.total_jobs_posted DESC").
		Limit(100).
		Scan(&customers).Error
	return customers, err
}

func (s *CustomerServiceORM) GetByID(id uint) (*models.CustomerDetail, error) {
	var customer models.CustomerDetail
	err := s.detailQuery().
		Where("customers.id = ?", id).
		Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, NewNotFound("Customer", id)
	}
	return &customer, nil
}

// Create registers the user row and the customer profile in one
// transaction; both share the same primary key.
func (s *CustomerServiceORM) Create(req *models.CustomerCreate) (*models.Customer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var customer models.Customer
	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Email:         req.Email,
			PasswordHash:  string(hash),
			PhoneNumber:   req.PhoneNumber,
			UserType:      models.UserTypeCustomer,
			IsVerified:    false,
			AccountStatus: models.AccountStatusActive,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		customer = models.Customer{
			ID:         user.ID,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Address:    req.Address,
			City:       req.City,
			PostalCode: req.PostalCode,
		}
		return tx.Create(&customer).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Customer registered: %s %s (ID: %d)", customer.FirstName, customer.LastName, customer.ID)
	return &customer, nil
}

func (s *CustomerServiceORM) Update(id uint, req *models.CustomerUpdate) error {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFound("Customer", id)
		}
		return err
	}

	customer.FirstName = req.FirstName
	customer.LastName = req.LastName
	customer.Address = req.Address
	customer.City = req.City
	customer.PostalCode = req.PostalCode

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&customer).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", id).
			Update("phone_number", req.PhoneNumber).Error
	})
}

func (s *CustomerServiceORM) Delete(id uint) error {
	res := s.db.Delete(&models.Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return NewNotFound("Customer", id)
	}
	return nil
}

func (s *CustomerServiceORM) GetByCity(city string) ([]models.CustomerDetail, error) {
	var customers []models.CustomerDetail
	err := s.detailQuery().
		Where("customers.city = ?", city).
		Scan(&customers).Error
	return customers, err
}

func (s *CustomerServiceORM) Analytics() ([]models.CustomerAnalytics, error) {
	var analytics []models.CustomerAnalytics
	err := s.db.Table("customers").
		Select(`customers.id AS customer_id,
			customers.first_name || ' ' || customers.last_name AS customer_name,
			customers.city, customers.customer_rating, customers.total_jobs_posted,
			(SELECT COUNT(*) FROM jobs WHERE jobs.customer_id = customers.id
				AND jobs.status IN ('Open', 'Assigned')) AS active_jobs,
			(SELECT COUNT(*) FROM jobs WHERE jobs.customer_id = customers.id
				AND jobs.status = 'Completed') AS completed_jobs,
			COALESCE((SELECT SUM(budget) FROM jobs WHERE jobs.customer_id = customers.id), 0) AS total_spend`).
		Scan(&analytics).Error
	return analytics, err
}
