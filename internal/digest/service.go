// Package digest owns the daily top-10 snapshot lifecycle: building at most
// one digest per (user, calendar day), serving the stored snapshot untouched
// on repeated views, and the explicit discard-then-rebuild path. Snapshots
// live in Redis keyed by user and date; the ranking itself is computed by the
// pure match package.
package digest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"jobtrack/matcher-service/internal/match"
	"jobtrack/matcher-service/internal/model"
	"jobtrack/matcher-service/internal/tracker"
)

// Service builds and stores digest snapshots.
type Service struct {
	rdb *redis.Client
	trk *tracker.Service
}

// NewService returns a configured Service.
func NewService(rdb *redis.Client, trk *tracker.Service) *Service {
	return &Service{rdb: rdb, trk: trk}
}

func digestKey(userID, date string) string {
	return fmt.Sprintf("digest:%s:%s", userID, date)
}

// Today returns the current calendar date in the digest's key format.
func Today() string { return time.Now().UTC().Format("2006-01-02") }

// ─── Sentinel errors ─────────────────────────────────────────────────────────

// ErrNoDigest is returned by Get when no snapshot exists for the date.
// Distinct from an existing snapshot with zero jobs.
var ErrNoDigest = fmt.Errorf("no digest generated for this date")

// ErrNoPreferences is returned by Build when the user has no preference
// record — there is nothing to rank against.
var ErrNoPreferences = fmt.Errorf("preferences not configured")

// ─── Operations ──────────────────────────────────────────────────────────────

// Get returns the stored snapshot for the date, or ErrNoDigest.
func (s *Service) Get(ctx context.Context, userID, date string) (*model.DigestSnapshot, error) {
	raw, err := s.rdb.Get(ctx, digestKey(userID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoDigest
	}
	if err != nil {
		return nil, fmt.Errorf("digest load: %w", err)
	}

	var snap model.DigestSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("digest unmarshal: %w", err)
	}
	return &snap, nil
}

// Build creates the digest for (userID, date) if none exists yet and returns
// it. When a snapshot is already stored the stored one is returned unchanged:
// building is idempotent per calendar day, and later feed changes never leak
// into an existing digest. The first successful build announces
// EVENT_DIGEST_READY.
func (s *Service) Build(ctx context.Context, userID, date string) (*model.DigestSnapshot, error) {
	scored, prefs, err := s.trk.ScoredFeed(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		return nil, ErrNoPreferences
	}

	snap := match.BuildDigest(scored, date, time.Now().UTC())
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("digest marshal: %w", err)
	}

	// SetNX is the once-per-day gate: a concurrent or repeated build loses
	// the race and reads back whatever was stored first.
	created, err := s.rdb.SetNX(ctx, digestKey(userID, date), raw, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("digest store: %w", err)
	}
	if !created {
		return s.Get(ctx, userID, date)
	}

	event, _ := json.Marshal(map[string]string{
		"type":   "EVENT_DIGEST_READY",
		"userId": userID,
		"date":   date,
	})
	if err := s.rdb.Publish(ctx, "EVENT_DIGEST_READY", event).Err(); err != nil {
		slog.Warn("publish EVENT_DIGEST_READY failed", "err", err)
	}

	return &snap, nil
}

// Discard deletes the stored snapshot for the date. Discarding a date that
// has no snapshot is a no-op.
func (s *Service) Discard(ctx context.Context, userID, date string) error {
	if err := s.rdb.Del(ctx, digestKey(userID, date)).Err(); err != nil {
		return fmt.Errorf("digest discard: %w", err)
	}
	return nil
}

// Regenerate is the explicit two-step rebuild: discard the existing snapshot
// for the date, then build unconditionally.
func (s *Service) Regenerate(ctx context.Context, userID, date string) (*model.DigestSnapshot, error) {
	if err := s.Discard(ctx, userID, date); err != nil {
		return nil, err
	}
	return s.Build(ctx, userID, date)
}
