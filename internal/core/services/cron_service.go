package services

import (
	"context"
	"log"
	"time"

	"studyon-billing/internal/config"

	"github.com/robfig/cron/v3"
)

const tokenCleanupSpec = "30 3 * * *"

// CronService schedules the report mails and token cleanup
type CronService struct {
	cron    *cron.Cron
	reports *ReportService
	auth    *AuthService
	now     Clock
}

// NewCronService registers the jobs described by cfg
func NewCronService(reports *ReportService, auth *AuthService, cfg config.JobsConfig, now Clock) (*CronService, error) {
	if now == nil {
		now = SystemClock
	}
	s := &CronService{
		cron:    cron.New(),
		reports: reports,
		auth:    auth,
		now:     now,
	}

	if _, err := s.cron.AddFunc(cfg.ReportSpec, s.RunMonthlyReport); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(cfg.RentNoticeSpec, s.RunRentNotices); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(tokenCleanupSpec, s.RunTokenCleanup); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the scheduler in its own goroutine
func (s *CronService) Start() {
	s.cron.Start()
	log.Printf("🚀 CronService started (%d jobs)", len(s.cron.Entries()))
}

// Stop waits for running jobs and stops the scheduler
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 CronService stopped")
}

// RunMonthlyReport reports on the month that ended yesterday
func (s *CronService) RunMonthlyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if _, err := s.reports.SendMonthlyReport(ctx, s.now().AddDate(0, 0, -1)); err != nil {
		log.Printf("❌ Payment report failed: %v", err)
	}
}

// RunRentNotices notifies users about rentals that just ended
func (s *CronService) RunRentNotices() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if _, err := s.reports.SendRentEndingNotices(ctx, s.now()); err != nil {
		log.Printf("❌ Rent ending notices failed: %v", err)
	}
}

// RunTokenCleanup deletes expired refresh tokens
func (s *CronService) RunTokenCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.auth.CleanupExpiredTokens(ctx); err != nil {
		log.Printf("❌ Refresh token cleanup failed: %v", err)
	}
}
