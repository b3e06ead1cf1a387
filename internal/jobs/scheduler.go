// Package jobs runs background tasks: the daily waste report email.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"wastetrade-service/internal/usecase"
)

// Scheduler emails the previous day's waste report to the admin inbox every
// morning.
type Scheduler struct {
	cron       *cron.Cron
	wasteUC    *usecase.WasteUsecase
	sender     usecase.NotificationSender
	adminEmail string
	log        *zap.Logger
}

func NewScheduler(wasteUC *usecase.WasteUsecase, sender usecase.NotificationSender, adminEmail string, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		wasteUC:    wasteUC,
		sender:     sender,
		adminEmail: adminEmail,
		log:        log,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	if s.adminEmail == "" {
		s.log.Info("daily report job disabled, no admin email configured")
		return
	}

	// Daily report at 07:00
	s.cron.AddFunc("0 7 * * *", func() {
		if err := s.sendDailyReport(ctx); err != nil {
			s.log.Error("daily waste report failed", zap.Error(err))
		}
	})

	s.cron.Start()
	s.log.Info("scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) sendDailyReport(ctx context.Context) error {
	now := time.Now()
	start := now.AddDate(0, 0, -1).Truncate(24 * time.Hour)
	end := start.Add(24*time.Hour - time.Nanosecond)

	report, err := s.wasteUC.GenerateWasteReport(ctx, start, end)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h3>Waste report for %s</h3><ul>", start.Format("2006-01-02")))
	for _, line := range report {
		b.WriteString(fmt.Sprintf("<li>#%d %s qty %s at %s, agent: %s</li>",
			line.WasteID, line.Category, line.Quantity, line.Price.String(), line.AssignedAgent))
	}
	b.WriteString("</ul>")

	subject := fmt.Sprintf("Daily waste report %s (%d lots)", start.Format("2006-01-02"), len(report))
	return s.sender.Send(s.adminEmail, subject, b.String())
}
