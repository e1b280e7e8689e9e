package services

import (
	"math"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"serviceconnect-server/models"
)

func newTestGormDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A second pooled connection would see a different in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("underlying db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Worker{},
		&models.WorkerSkill{},
		&models.ServiceCategory{},
		&models.Job{},
		&models.JobAttachment{},
		&models.Bid{},
		&models.Booking{},
		&models.Review{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, email, first, last string) models.Customer {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", UserType: models.UserTypeCustomer, AccountStatus: models.AccountStatusActive}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed customer user: %v", err)
	}
	customer := models.Customer{ID: user.ID, FirstName: first, LastName: last}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func seedWorker(t *testing.T, db *gorm.DB, email, first, last string) models.Worker {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", UserType: models.UserTypeWorker, AccountStatus: models.AccountStatusActive}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed worker user: %v", err)
	}
	worker := models.Worker{ID: user.ID, FirstName: first, LastName: last}
	if err := db.Create(&worker).Error; err != nil {
		t.Fatalf("seed worker: %v", err)
	}
	return worker
}

func seedCategory(t *testing.T, db *gorm.DB, name string) models.ServiceCategory {
	t.Helper()
	category := models.ServiceCategory{Name: name, IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return category
}

func seedJob(t *testing.T, db *gorm.DB, customerID, categoryID uint, title string, status models.JobStatus) models.Job {
	t.Helper()
	job := models.Job{
		CustomerID:      customerID,
		CategoryID:      categoryID,
		Title:           title,
		Status:          status,
		RequiredWorkers: 1,
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func seedBid(t *testing.T, db *gorm.DB, jobID, workerID uint, amount float64) models.Bid {
	t.Helper()
	bid := models.Bid{JobID: jobID, WorkerID: workerID, BidAmount: &amount, Status: models.BidStatusPending}
	if err := db.Create(&bid).Error; err != nil {
		t.Fatalf("seed bid: %v", err)
	}
	return bid
}

func TestAcceptBidORM(t *testing.T) {
	db := newTestGormDB(t)
	customer := seedCustomer(t, db, "amy@example.com", "Amy", "Pond")
	winner := seedWorker(t, db, "rory@example.com", "Rory", "Williams")
	loser := seedWorker(t, db, "jack@example.com", "Jack", "Harkness")
	category := seedCategory(t, db, "Plumbing")
	job := seedJob(t, db, customer.ID, category.ID, "Fix kitchen sink", models.JobStatusOpen)
	winningBid := seedBid(t, db, job.ID, winner.ID, 150)
	losingBid := seedBid(t, db, job.ID, loser.ID, 200)

	svc := NewBidServiceORM(db)
	code, err := svc.Accept(winningBid.ID)
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if !strings.HasPrefix(code, "BK") || len(code) != 8 {
		t.Errorf("booking code = %q, want BK plus six digits", code)
	}

	var got models.Bid
	if err := db.First(&got, winningBid.ID).Error; err != nil {
		t.Fatalf("reload winning bid: %v", err)
	}
	if got.Status != models.BidStatusAccepted || !got.IsWinningBid {
		t.Errorf("winning bid = (%s, winning=%v), want (Accepted, true)", got.Status, got.IsWinningBid)
	}

	// Reload into a zero struct: reusing got would keep the winning bid's
	// primary key in the gorm query conditions.
	var rejected models.Bid
	if err := db.First(&rejected, losingBid.ID).Error; err != nil {
		t.Fatalf("reload losing bid: %v", err)
	}
	if rejected.Status != models.BidStatusRejected || rejected.IsWinningBid {
		t.Errorf("losing bid = (%s, winning=%v), want (Rejected, false)", rejected.Status, rejected.IsWinningBid)
	}

	var reloaded models.Job
	if err := db.First(&reloaded, job.ID).Error; err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if reloaded.Status != models.JobStatusAssigned {
		t.Errorf("job status = %s, want Assigned", reloaded.Status)
	}

	var booking models.Booking
	if err := db.Where("job_id = ?", job.ID).First(&booking).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if booking.WorkerID != winner.ID || booking.BidID != winningBid.ID {
		t.Errorf("booking links = (worker %d, bid %d), want (%d, %d)", booking.WorkerID, booking.BidID, winner.ID, winningBid.ID)
	}
	if booking.Status != models.BookingStatusScheduled {
		t.Errorf("booking status = %s, want Scheduled", booking.Status)
	}
	if booking.BookingCode == nil || *booking.BookingCode != code {
		t.Errorf("booking code mismatch: %v vs %q", booking.BookingCode, code)
	}

	var notification models.Notification
	if err := db.Where("user_id = ?", winner.ID).First(&notification).Error; err != nil {
		t.Fatalf("load notification: %v", err)
	}
	if notification.NotificationType == nil || *notification.NotificationType != models.NotificationTypeBidAccepted {
		t.Errorf("notification type = %v, want BidAccepted", notification.NotificationType)
	}
	if notification.RelatedEntityID == nil || *notification.RelatedEntityID != job.ID {
		t.Errorf("notification related entity = %v, want job %d", notification.RelatedEntityID, job.ID)
	}
}

func TestAcceptBidORMJobAlreadyAssigned(t *testing.T) {
	db := newTestGormDB(t)
	customer := seedCustomer(t, db, "amy@example.com", "Amy", "Pond")
	w1 := seedWorker(t, db, "w1@example.com", "One", "Worker")
	w2 := seedWorker(t, db, "w2@example.com", "Two", "Worker")
	category := seedCategory(t, db, "Electrical")
	job := seedJob(t, db, customer.ID, category.ID, "Rewire garage", models.JobStatusOpen)
	first := seedBid(t, db, job.ID, w1.ID, 300)
	second := seedBid(t, db, job.ID, w2.ID, 280)

	svc := NewBidServiceORM(db)
	if _, err := svc.Accept(first.ID); err != nil {
		t.Fatalf("first Accept() error = %v", err)
	}

	_, err := svc.Accept(second.ID)
	if !IsConflict(err) {
		t.Fatalf("second Accept() error = %v, want conflict", err)
	}

	// The losing accept must not have produced a second booking.
	var bookings int64
	if err := db.Model(&models.Booking{}).Where("job_id = ?", job.ID).Count(&bookings).Error; err != nil {
		t.Fatalf("count bookings: %v", err)
	}
	if bookings != 1 {
		t.Errorf("bookings = %d, want 1", bookings)
	}
}

func TestAcceptBidORMNotFound(t *testing.T) {
	db := newTestGormDB(t)
	svc := NewBidServiceORM(db)

	_, err := svc.Accept(4242)
	if !IsNotFound(err) {
		t.Fatalf("Accept() error = %v, want not found", err)
	}

	var bookings int64
	if err := db.Model(&models.Booking{}).Count(&bookings).Error; err != nil {
		t.Fatalf("count bookings: %v", err)
	}
	if bookings != 0 {
		t.Errorf("bookings = %d, want 0 after failed accept", bookings)
	}
}

func TestPlaceBidORMGuards(t *testing.T) {
	db := newTestGormDB(t)
	customer := seedCustomer(t, db, "amy@example.com", "Amy", "Pond")
	worker := seedWorker(t, db, "w@example.com", "Will", "Worker")
	category := seedCategory(t, db, "Cleaning")
	open := seedJob(t, db, customer.ID, category.ID, "Deep clean flat", models.JobStatusOpen)
	assigned := seedJob(t, db, customer.ID, category.ID, "Weekly clean", models.JobStatusAssigned)

	svc := NewBidServiceORM(db)

	if _, err := svc.Create(&models.BidCreate{JobID: assigned.ID, WorkerID: worker.ID, BidAmount: 50}); !IsConflict(err) {
		t.Errorf("bid on assigned job error = %v, want conflict", err)
	}

	if _, err := svc.Create(&models.BidCreate{JobID: 999, WorkerID: worker.ID, BidAmount: 50}); !IsNotFound(err) {
		t.Errorf("bid on missing job error = %v, want not found", err)
	}

	if _, err := svc.Create(&models.BidCreate{JobID: open.ID, WorkerID: worker.ID, BidAmount: 50}); err != nil {
		t.Fatalf("first bid error = %v", err)
	}
	if _, err := svc.Create(&models.BidCreate{JobID: open.ID, WorkerID: worker.ID, BidAmount: 45}); !IsConflict(err) {
		t.Errorf("duplicate live bid error = %v, want conflict", err)
	}
}

func TestCompleteBookingORM(t *testing.T) {
	db := newTestGormDB(t)
	customer := seedCustomer(t, db, "amy@example.com", "Amy", "Pond")
	worker := seedWorker(t, db, "w@example.com", "Will", "Worker")
	category := seedCategory(t, db, "Painting")
	job := seedJob(t, db, customer.ID, category.ID, "Paint hallway", models.JobStatusOpen)
	bid := seedBid(t, db, job.ID, worker.ID, 120)

	bids := NewBidServiceORM(db)
	if _, err := bids.Accept(bid.ID); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}

	var booking models.Booking
	if err := db.Where("job_id = ?", job.ID).First(&booking).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}

	notes := "all walls done, two coats"
	svc := NewBookingServiceORM(db)
	if err := svc.Complete(booking.ID, &notes); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if err := db.First(&booking, booking.ID).Error; err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if booking.Status != models.BookingStatusCompleted {
		t.Errorf("booking status = %s, want Completed", booking.Status)
	}
	if booking.ActualEnd == nil {
		t.Error("actual_end not set on completion")
	}
	if booking.CompletionNotes == nil || *booking.CompletionNotes != notes {
		t.Errorf("completion notes = %v, want %q", booking.CompletionNotes, notes)
	}

	var reloaded models.Job
	if err := db.First(&reloaded, job.ID).Error; err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if reloaded.Status != models.JobStatusCompleted {
		t.Errorf("job status = %s, want Completed", reloaded.Status)
	}
	if reloaded.CompletedWorkers != 1 {
		t.Errorf("completed workers = %d, want 1", reloaded.CompletedWorkers)
	}

	// A second completion is a conflict, not a silent no-op.
	if err := svc.Complete(booking.ID, nil); !IsConflict(err) {
		t.Errorf("repeat Complete() error = %v, want conflict", err)
	}

	// Completed bookings are retained for audit.
	if err := svc.Delete(booking.ID); !IsConflict(err) {
		t.Errorf("Delete() of completed booking error = %v, want conflict", err)
	}
}

func TestDeleteBookingORM(t *testing.T) {
	db := newTestGormDB(t)
	customer := seedCustomer(t, db, "amy@example.com", "Amy", "Pond")
	worker := seedWorker(t, db, "w@example.com", "Will", "Worker")
	category := seedCategory(t, db, "Painting")
	job := seedJob(t, db, customer.ID, category.ID, "Paint hallway", models.JobStatusAssigned)
	bid := seedBid(t, db, job.ID, worker.ID, 120)

	code := "BK222222"
	booking := models.Booking{
		JobID:       job.ID,
		WorkerID:    worker.ID,
		BidID:       bid.ID,
		Status:      models.BookingStatusScheduled,
		BookingCode: &code,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	svc := NewBookingServiceORM(db)
	if err := svc.Delete(booking.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(booking.ID); !IsNotFound(err) {
		t.Errorf("repeat Delete() error = %v, want not found", err)
	}
}

func TestBidStatsORM(t *testing.T) {
	db := newTestGormDB(t)
	customer := seedCustomer(t, db, "amy@example.com", "Amy", "Pond")
	w1 := seedWorker(t, db, "w1@example.com", "One", "Worker")
	w2 := seedWorker(t, db, "w2@example.com", "Two", "Worker")
	w3 := seedWorker(t, db, "w3@example.com", "Three", "Worker")
	category := seedCategory(t, db, "HVAC")
	job := seedJob(t, db, customer.ID, category.ID, "Service AC unit", models.JobStatusOpen)

	seedBid(t, db, job.ID, w1.ID, 100)
	seedBid(t, db, job.ID, w2.ID, 200)
	accepted := seedBid(t, db, job.ID, w3.ID, 300)
	if err := db.Model(&models.Bid{}).Where("id = ?", accepted.ID).Update("status", models.BidStatusAccepted).Error; err != nil {
		t.Fatalf("mark accepted: %v", err)
	}

	svc := NewBidServiceORM(db)
	stats, err := svc.Stats(job.ID)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalBids != 3 {
		t.Errorf("total bids = %d, want 3", stats.TotalBids)
	}
	if stats.AverageBidAmount != 200 {
		t.Errorf("average bid = %v, want 200", stats.AverageBidAmount)
	}
	if stats.MinBidAmount != 100 || stats.MaxBidAmount != 300 {
		t.Errorf("min/max = %v/%v, want 100/300", stats.MinBidAmount, stats.MaxBidAmount)
	}
	if stats.AcceptedBids != 1 {
		t.Errorf("accepted bids = %d, want 1", stats.AcceptedBids)
	}
}

func TestBidStatsORMEmptyJob(t *testing.T) {
	db := newTestGormDB(t)
	svc := NewBidServiceORM(db)

	stats, err := svc.Stats(77)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalBids != 0 || stats.AverageBidAmount != 0 || stats.AcceptedBids != 0 {
		t.Errorf("empty job stats = %+v, want zeroes", stats)
	}
}

func TestReliabilityScoreORM(t *testing.T) {
	db := newTestGormDB(t)
	customer := seedCustomer(t, db, "amy@example.com", "Amy", "Pond")
	worker := seedWorker(t, db, "w@example.com", "Will", "Worker")
	category := seedCategory(t, db, "Carpentry")

	svc := NewWorkerServiceORM(db)

	score, err := svc.ReliabilityScore(worker.ID)
	if err != nil {
		t.Fatalf("ReliabilityScore() error = %v", err)
	}
	if score != 0 {
		t.Errorf("score with no bookings = %v, want 0", score)
	}

	statuses := []models.BookingStatus{
		models.BookingStatusCompleted,
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
	}
	for i, status := range statuses {
		job := seedJob(t, db, customer.ID, category.ID, "Job", models.JobStatusAssigned)
		code := GenerateBookingCode()
		booking := models.Booking{
			JobID: job.ID, WorkerID: worker.ID, BidID: uint(i + 1),
			Status: status, BookingCode: &code,
		}
		if err := db.Create(&booking).Error; err != nil {
			t.Fatalf("seed booking: %v", err)
		}
	}

	score, err = svc.ReliabilityScore(worker.ID)
	if err != nil {
		t.Fatalf("ReliabilityScore() error = %v", err)
	}
	if math.Abs(score-66.666666) > 0.001 {
		t.Errorf("score = %v, want ~66.67", score)
	}
}

func TestWorkerCreateORMSharedPrimaryKey(t *testing.T) {
	db := newTestGormDB(t)
	svc := NewWorkerServiceORM(db)

	rate := 42.5
	worker, err := svc.Create(&models.WorkerCreate{
		Email:      "pat@example.com",
		Password:   "correct-horse",
		FirstName:  "Pat",
		LastName:   "Smith",
		HourlyRate: &rate,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if worker.ID == 0 {
		t.Fatal("worker ID not assigned")
	}

	var user models.User
	if err := db.First(&user, worker.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.UserType != models.UserTypeWorker {
		t.Errorf("user type = %s, want Worker", user.UserType)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")); err != nil {
		t.Error("stored password hash does not verify")
	}

	detail, err := svc.GetByID(worker.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if detail.Email != "pat@example.com" || detail.FirstName != "Pat" {
		t.Errorf("detail = %+v", detail)
	}
}

func TestCustomerAnalyticsORM(t *testing.T) {
	db := newTestGormDB(t)
	customer := seedCustomer(t, db, "amy@example.com", "Amy", "Pond")
	category := seedCategory(t, db, "Landscaping")

	budgets := []struct {
		amount float64
		status models.JobStatus
	}{
		{500, models.JobStatusOpen},
		{800, models.JobStatusAssigned},
		{1200, models.JobStatusCompleted},
	}
	for _, b := range budgets {
		amount := b.amount
		job := models.Job{
			CustomerID: customer.ID, CategoryID: category.ID,
			Title: "Yard work", Budget: &amount, Status: b.status, RequiredWorkers: 1,
		}
		if err := db.Create(&job).Error; err != nil {
			t.Fatalf("seed job: %v", err)
		}
	}

	svc := NewCustomerServiceORM(db)
	rows, err := svc.Analytics()
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("analytics rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.CustomerID != customer.ID {
		t.Errorf("customer id = %d, want %d", row.CustomerID, customer.ID)
	}
	if row.ActiveJobs != 2 {
		t.Errorf("active jobs = %d, want 2", row.ActiveJobs)
	}
	if row.CompletedJobs != 1 {
		t.Errorf("completed jobs = %d, want 1", row.CompletedJobs)
	}
	if row.TotalSpend != 2500 {
		t.Errorf("total spend = %v, want 2500", row.TotalSpend)
	}
}

func TestJobCRUDORM(t *testing.T) {
	db := newTestGormDB(t)
	customer := seedCustomer(t, db, "amy@example.com", "Amy", "Pond")
	category := seedCategory(t, db, "Plumbing")

	svc := NewJobServiceORM(db)

	urgency := "Urgent"
	budget := 6000.0
	job, err := svc.Create(&models.JobCreate{
		CustomerID:      customer.ID,
		CategoryID:      category.ID,
		Title:           "Replace boiler",
		Budget:          &budget,
		UrgencyLevel:    &urgency,
		RequiredWorkers: 2,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if job.Status != models.JobStatusOpen {
		t.Errorf("new job status = %s, want Open", job.Status)
	}

	detail, err := svc.GetByID(job.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if detail.CustomerName != "Amy Pond" {
		t.Errorf("customer name = %q, want %q", detail.CustomerName, "Amy Pond")
	}
	if detail.CategoryName != "Plumbing" {
		t.Errorf("category name = %q, want %q", detail.CategoryName, "Plumbing")
	}

	if _, err := svc.GetByID(9999); !IsNotFound(err) {
		t.Errorf("GetByID(missing) error = %v, want not found", err)
	}

	bad := "Yesterday"
	if _, err := svc.Create(&models.JobCreate{
		CustomerID: customer.ID, CategoryID: category.ID, Title: "X", UrgencyLevel: &bad,
	}); !IsValidation(err) {
		t.Errorf("invalid urgency error = %v, want validation", err)
	}

	if err := svc.Delete(job.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(job.ID); !IsNotFound(err) {
		t.Errorf("repeat Delete() error = %v, want not found", err)
	}
}

func TestJobDefaultRequiredWorkersORM(t *testing.T) {
	db := newTestGormDB(t)
	customer := seedCustomer(t, db, "amy@example.com", "Amy", "Pond")
	category := seedCategory(t, db, "Cleaning")

	svc := NewJobServiceORM(db)
	job, err := svc.Create(&models.JobCreate{
		CustomerID: customer.ID, CategoryID: category.ID, Title: "Tidy up",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if job.RequiredWorkers != 1 {
		t.Errorf("required workers = %d, want default 1", job.RequiredWorkers)
	}
}
