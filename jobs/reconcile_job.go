package jobs

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// ReconcileJob periodically recomputes the denormalized worker aggregates
// (overall rating from reviews, total completed jobs from bookings) so they
// cannot drift from the source rows.
type ReconcileJob struct {
	db       *gorm.DB
	interval time.Duration
	stopChan chan bool
}

// NewReconcileJob creates a new reconcile job
func NewReconcileJob(db *gorm.DB, interval time.Duration) *ReconcileJob {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &ReconcileJob{
		db:       db,
		interval: interval,
		stopChan: make(chan bool),
	}
}

// Start begins the reconcile job
func (j *ReconcileJob) Start() {
	go j.run()
	log.Println("🚀 Worker aggregate reconcile job started")
}

// Stop stops the reconcile job
func (j *ReconcileJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Worker aggregate reconcile job stopped")
}

func (j *ReconcileJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.Reconcile()
		case <-j.stopChan:
			return
		}
	}
}

// Reconcile runs one reconciliation pass.
func (j *ReconcileJob) Reconcile() {
	res := j.db.Exec(`
		UPDATE workers SET overall_rating = (
			SELECT COALESCE(AVG(CAST(r.rating AS FLOAT)), 0)
			FROM reviews r WHERE r.reviewed_id = workers.id
		)`)
	if res.Error != nil {
		log.Printf("❌ Failed to reconcile worker ratings: %v", res.Error)
		return
	}

	res = j.db.Exec(`
		UPDATE workers SET total_jobs_completed = (
			SELECT COUNT(*) FROM bookings b
			WHERE b.worker_id = workers.id AND b.status = 'Completed'
		)`)
	if res.Error != nil {
		log.Printf("❌ Failed to reconcile completed job counts: %v", res.Error)
		return
	}

	log.Println("✅ Worker aggregates reconciled")
}
