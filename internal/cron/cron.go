package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/squadhq/squad-backend/internal/repository"
	"github.com/squadhq/squad-backend/internal/types"
)

// Scheduler handles scheduled tasks. Invite expiration is reconciled lazily
// on reads, so the scheduler never mutates invites; it only reports on them.
type Scheduler struct {
	cron       *cron.Cron
	inviteRepo repository.InviteRepository
}

// NewScheduler creates a new scheduler
func NewScheduler(inviteRepo repository.InviteRepository) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		inviteRepo: inviteRepo,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every hour - invite status snapshot
	s.cron.AddFunc("0 * * * *", func() {
		log.Println("[Cron] Running invite stats snapshot...")
		s.logInviteStats()
	})

	s.cron.Start()
	log.Println("[Cron] Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

// logInviteStats logs stored per-status invite counts. Counts reflect the
// stored state; PENDING invites past their deadline stay PENDING until a read
// reconciles them.
func (s *Scheduler) logInviteStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	counts, err := s.inviteRepo.CountByStatus(ctx)
	if err != nil {
		log.Printf("[Cron] Error counting invites: %v", err)
		return
	}

	log.Printf("[Cron] Invite stats: pending=%d accepted=%d expired=%d",
		counts[types.InviteStatusPending],
		counts[types.InviteStatusAccepted],
		counts[types.InviteStatusExpired],
	)
}

// ManualTrigger allows manual triggering of scheduled checks (for testing)
func (s *Scheduler) ManualTrigger(checkType string) {
	switch checkType {
	case "stats", "all":
		s.logInviteStats()
	}
}
