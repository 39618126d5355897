package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Alchinkaz/dream-rent-crm-new/config"
	"github.com/Alchinkaz/dream-rent-crm-new/database"
)

// Scheduler runs the background reconciliation jobs
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates a scheduler with all jobs registered
func NewScheduler() *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{cron: c}
	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	_, err := s.cron.AddFunc(config.AppConfig.OverdueScanSpec, ProposeOverdueRentals)
	if err != nil {
		zap.L().Error("failed to register overdue scan job", zap.Error(err))
	}
}

// Start begins job execution
func (s *Scheduler) Start() {
	s.cron.Start()
	zap.L().Info("scheduler started", zap.String("overdue_scan", config.AppConfig.OverdueScanSpec))
}

// Stop halts job execution, waiting for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// ProposeOverdueRentals scans for rented rentals whose period end has
// passed and writes an unread notification for each, once. Whether a late
// rental is actually "overdue" (vs. lost, or just renegotiated) is a staff
// judgment, so the pass proposes and never changes the status itself.
func ProposeOverdueRentals() {
	now := time.Now()

	var rentals []database.Rental
	err := database.DB.
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", database.RentalStatusRented, now).
		Find(&rentals).Error
	if err != nil {
		zap.L().Error("overdue scan failed", zap.Error(err))
		return
	}

	proposed := 0
	for _, rental := range rentals {
		var count int64
		err := database.DB.Model(&database.Notification{}).
			Where("rental_id = ? AND type = ?", rental.ID, database.NotificationTypeOverdueProposal).
			Count(&count).Error
		if err != nil {
			zap.L().Error("overdue scan failed", zap.Error(err))
			return
		}
		if count > 0 {
			continue
		}

		notification := database.Notification{
			CompanyID: rental.CompanyID,
			RentalID:  rental.ID,
			Type:      database.NotificationTypeOverdueProposal,
			Title:     "Аренда просрочена?",
			Message:   fmt.Sprintf("Срок аренды #%s истек. Проверьте и отметьте статус вручную.", rental.ID),
		}
		if err := database.DB.Create(&notification).Error; err != nil {
			zap.L().Error("overdue proposal write failed", zap.Error(err))
			return
		}
		proposed++
	}

	if proposed > 0 {
		zap.L().Info("overdue proposals created", zap.Int("count", proposed))
	}
}
