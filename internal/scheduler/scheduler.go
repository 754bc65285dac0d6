// Package scheduler wires up the cron job that builds the daily 9AM digest
// for every user with a stored preference record.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"jobtrack/matcher-service/internal/digest"
	"jobtrack/matcher-service/internal/tracker"
)

// Scheduler wraps robfig/cron and manages the digest build loop.
type Scheduler struct {
	cron *cron.Cron
	trk  *tracker.Service
	dig  *digest.Service
	spec string // cron spec, e.g. "0 9 * * *"
}

// New creates a Scheduler firing on the given cron spec.
func New(trk *tracker.Service, dig *digest.Service, spec string) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLogger(cron.DefaultLogger)),
		trk:  trk,
		dig:  dig,
		spec: spec,
	}
}

// Start registers the job and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runBuild(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// runBuild creates today's digest for every user holding preferences.
// Builds are idempotent per (user, day), so a user who already generated
// their digest interactively keeps the one they saw.
func (s *Scheduler) runBuild(ctx context.Context) {
	log.Println("[scheduler] Digest cycle started")

	users, err := s.trk.UsersWithPreferences(ctx)
	if err != nil {
		log.Printf("[scheduler] UsersWithPreferences error: %v", err)
		return
	}

	if len(users) == 0 {
		log.Println("[scheduler] No users with preferences — nothing to build")
		return
	}

	date := digest.Today()
	var built, empty int
	for _, userID := range users {
		snap, err := s.dig.Build(ctx, userID, date)
		if err != nil {
			if errors.Is(err, digest.ErrNoPreferences) {
				continue // record deleted between listing and build
			}
			log.Printf("[scheduler] Build error for user %s: %v", userID, err)
			continue
		}
		built++
		if snap.Empty() {
			empty++
		}
	}

	log.Printf("[scheduler] Digest cycle complete — users=%d built=%d empty=%d",
		len(users), built, empty)
}
