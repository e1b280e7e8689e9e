package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"serviceconnect-server/models"
	"serviceconnect-server/services"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	factory, err := services.NewFactory(services.BLLTypeORM, db, nil)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}

	router := gin.New()
	Register(router, factory, nil, db)
	return router, db
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return body
}

func seedAcceptFixture(t *testing.T, db *gorm.DB) (jobID, bidID uint) {
	t.Helper()
	user := models.User{Email: "amy@example.com", PasswordHash: "x", UserType: models.UserTypeCustomer, AccountStatus: models.AccountStatusActive}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed customer user: %v", err)
	}
	customer := models.Customer{ID: user.ID, FirstName: "Amy", LastName: "Pond"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	workerUser := models.User{Email: "rory@example.com", PasswordHash: "x", UserType: models.UserTypeWorker, AccountStatus: models.AccountStatusActive}
	if err := db.Create(&workerUser).Error; err != nil {
		t.Fatalf("seed worker user: %v", err)
	}
	worker := models.Worker{ID: workerUser.ID, FirstName: "Rory", LastName: "Williams"}
	if err := db.Create(&worker).Error; err != nil {
		t.Fatalf("seed worker: %v", err)
	}
	category := models.ServiceCategory{Name: "Plumbing", IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	budget := 6000.0
	urgency := models.UrgencyUrgent
	job := models.Job{
		CustomerID:      customer.ID,
		CategoryID:      category.ID,
		Title:           "Burst pipe in basement",
		Budget:          &budget,
		UrgencyLevel:    &urgency,
		Status:          models.JobStatusOpen,
		RequiredWorkers: 2,
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	amount := 150.0
	bid := models.Bid{JobID: job.ID, WorkerID: worker.ID, BidAmount: &amount, Status: models.BidStatusPending}
	if err := db.Create(&bid).Error; err != nil {
		t.Fatalf("seed bid: %v", err)
	}
	return job.ID, bid.ID
}

func TestGetJobNotFound(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/jobs/999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Job with ID 999 not found" {
		t.Errorf("error = %v, want typed not-found message", body["error"])
	}
}

func TestInvalidIDParam(t *testing.T) {
	router, _ := newTestServer(t)

	for _, path := range []string{"/api/v1/jobs/abc", "/api/v1/jobs/0", "/api/v1/workers/-3"} {
		rec := doRequest(t, router, http.MethodGet, path, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, rec.Code)
		}
	}
}

func TestAcceptBidEndpoint(t *testing.T) {
	router, db := newTestServer(t)
	jobID, bidID := seedAcceptFixture(t, db)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/bids/"+itoa(bidID)+"/accept", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s, want 200", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	code, _ := body["booking_code"].(string)
	if len(code) != 8 || !strings.HasPrefix(code, "BK") {
		t.Errorf("booking_code = %q, want BK followed by six digits", code)
	}

	// The job is Assigned now, accepting again must conflict.
	rec = doRequest(t, router, http.MethodPost, "/api/v1/bids/"+itoa(bidID)+"/accept", "")
	if rec.Code != http.StatusConflict {
		t.Errorf("repeat accept status = %d, want 409", rec.Code)
	}

	var job models.Job
	if err := db.First(&job, jobID).Error; err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if job.Status != models.JobStatusAssigned {
		t.Errorf("job status = %s, want Assigned", job.Status)
	}
}

func TestJobComplexityEndpoint(t *testing.T) {
	router, db := newTestServer(t)
	jobID, _ := seedAcceptFixture(t, db)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/jobs/"+itoa(jobID)+"/complexity", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if score, _ := body["complexity_score"].(float64); score != 90 {
		t.Errorf("complexity_score = %v, want 90 for 6000/Urgent/2", body["complexity_score"])
	}
}

func TestCreateJobValidation(t *testing.T) {
	router, db := newTestServer(t)
	seedAcceptFixture(t, db)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/jobs",
		`{"customer_id": 1, "category_id": 1, "title": "Paint fence", "urgency_level": "Mild"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d body %s, want 400", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, "urgency_level") {
		t.Errorf("error = %q, want urgency_level validation message", msg)
	}
}

func TestBLLTypeEndpoint(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/config/bll-type", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["bll_type"] != "orm" {
		t.Errorf("bll_type = %v, want orm", body["bll_type"])
	}
}

func TestInternalErrorsAreSanitized(t *testing.T) {
	router, db := newTestServer(t)

	// Break the schema so the handler hits a database error.
	if err := db.Exec("DROP TABLE jobs").Error; err != nil {
		t.Fatalf("drop table: %v", err)
	}

	rec := doRequest(t, router, http.MethodGet, "/api/v1/jobs", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "internal server error" {
		t.Errorf("error = %v, want opaque internal server error", body["error"])
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
