package background

import (
	"context"
	"log"
	"time"

	"warsztatplus/internal/services"

	"github.com/go-co-op/gocron/v2"
)

const defaultAuditRetentionDays = 365

// JobScheduler runs the maintenance jobs: audit trail pruning and warming
// the public directory cache. Contract lifecycle transitions are applied
// lazily on reads and are deliberately absent here.
type JobScheduler struct {
	scheduler          gocron.Scheduler
	auditService       *services.AuditService
	workshopService    *services.WorkshopService
	auditRetentionDays int
}

func NewJobScheduler(auditService *services.AuditService, workshopService *services.WorkshopService, auditRetentionDays int) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	if auditRetentionDays <= 0 {
		auditRetentionDays = defaultAuditRetentionDays
	}
	js := &JobScheduler{
		scheduler:          scheduler,
		auditService:       auditService,
		workshopService:    workshopService,
		auditRetentionDays: auditRetentionDays,
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.pruneAuditTrail),
		gocron.WithName("audit-trail-prune"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create audit prune job: %v", err)
	}

	_, err = js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.warmPublicDirectory),
		gocron.WithName("public-directory-warmup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create directory warmup job: %v", err)
	}
}

func (js *JobScheduler) pruneAuditTrail() {
	deleted, err := js.auditService.Prune(context.Background(), js.auditRetentionDays)
	if err != nil {
		log.Printf("Failed to prune audit trail: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Pruned %d audit entries older than %d days", deleted, js.auditRetentionDays)
	}
}

// warmPublicDirectory keeps the unauthenticated workshop directory cached
// so cold lookups stay rare.
func (js *JobScheduler) warmPublicDirectory() {
	if _, err := js.workshopService.ListPublic(context.Background()); err != nil {
		log.Printf("Failed to warm public workshop directory: %v", err)
	}
}
