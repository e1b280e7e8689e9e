package services

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// BLLType selects which data-access implementation backs the service
// interfaces. The choice is made once at construction time, it is not a
// runtime-mutable switch.
type BLLType string

const (
	// BLLTypeORM serves every operation through gorm.
	BLLTypeORM BLLType = "orm"
	// BLLTypeSQL serves every operation through hand-written SQL over sqlx.
	BLLTypeSQL BLLType = "sql"
)

// ParseBLLType normalizes a configured BLL type string.
func ParseBLLType(s string) (BLLType, error) {
	switch BLLType(s) {
	case BLLTypeORM, BLLTypeSQL:
		return BLLType(s), nil
	case "":
		return BLLTypeORM, nil
	default:
		return "", fmt.Errorf("unknown BLL type %q (want %q or %q)", s, BLLTypeORM, BLLTypeSQL)
	}
}

// Factory holds one concrete implementation of every service interface.
type Factory struct {
	Type       BLLType
	Jobs       JobService
	Bids       BidService
	Bookings   BookingService
	Workers    WorkerService
	Customers  CustomerService
	Categories CategoryService
}

// NewFactory builds the service set for the requested BLL type. The ORM
// variant needs the gorm handle, the SQL variant the sqlx handle.
func NewFactory(bllType BLLType, gdb *gorm.DB, sdb *sqlx.DB) (*Factory, error) {
	switch bllType {
	case BLLTypeORM:
		if gdb == nil {
			return nil, fmt.Errorf("gorm handle required for BLL type %q", bllType)
		}
		return &Factory{
			Type:       bllType,
			Jobs:       NewJobServiceORM(gdb),
			Bids:       NewBidServiceORM(gdb),
			Bookings:   NewBookingServiceORM(gdb),
			Workers:    NewWorkerServiceORM(gdb),
			Customers:  NewCustomerServiceORM(gdb),
			Categories: NewCategoryServiceORM(gdb),
		}, nil
	case BLLTypeSQL:
		if sdb == nil {
			return nil, fmt.Errorf("sqlx handle required for BLL type %q", bllType)
		}
		return &Factory{
			Type:       bllType,
			Jobs:       NewJobServiceSQL(sdb),
			Bids:       NewBidServiceSQL(sdb),
			Bookings:   NewBookingServiceSQL(sdb),
			Workers:    NewWorkerServiceSQL(sdb),
			Customers:  NewCustomerServiceSQL(sdb),
			Categories: NewCategoryServiceSQL(sdb),
		}, nil
	default:
		return nil, fmt.Errorf("unknown BLL type %q", bllType)
	}
}
