package cron

import (
	"core/services"
	"log"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron             *cron.Cron
	autoCloseService *services.AutoCloseService
}

func NewScheduler(autoCloseService *services.AutoCloseService) *Scheduler {
	// Create cron with seconds precision and logging
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &Scheduler{
		cron:             c,
		autoCloseService: autoCloseService,
	}
}

// Start initializes and starts all scheduled jobs
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// Schedule auto-close job to run every hour
	// Cron expression: "0 0 * * * *" = at minute 0 of every hour
	_, err := s.cron.AddFunc("0 0 * * * *", s.runAutoClose)
	if err != nil {
		log.Printf("Error scheduling auto-close job: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cron.Stop()
	log.Println("Cron scheduler stopped")
}

// runAutoClose is the job function that completes overdue fights
func (s *Scheduler) runAutoClose() {
	log.Println("Running auto-close job...")

	overdueCount, err := s.autoCloseService.GetOverdueFightsCount()
	if err != nil {
		log.Printf("Error checking overdue fights count: %v", err)
		return
	}

	if overdueCount == 0 {
		log.Println("No overdue fights to close")
		return
	}

	log.Printf("Found %d overdue fights to close", overdueCount)

	if err := s.autoCloseService.CloseOverdueFights(); err != nil {
		log.Printf("Error during auto-close: %v", err)
		return
	}

	log.Println("Auto-close job completed successfully")
}

// RunNow manually triggers the auto-close job (useful for testing)
func (s *Scheduler) RunNow() {
	log.Println("Manually triggering auto-close job...")
	s.runAutoClose()
}
