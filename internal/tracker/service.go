// Package tracker contains the job-tracking business logic: listing and
// ingesting postings, preferences lifecycle, saved jobs, and status updates
// with the bounded history log. It is transport-agnostic; the HTTP layer in
// handler.go adapts it to the wire.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"jobtrack/matcher-service/internal/history"
	"jobtrack/matcher-service/internal/match"
	"jobtrack/matcher-service/internal/model"
)

// Service encapsulates all tracker business logic over Postgres and Redis.
type Service struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool, rdb *redis.Client) *Service {
	return &Service{pool: pool, rdb: rdb}
}

func historyKey(userID string) string { return "history:" + userID }

// ─── Jobs ────────────────────────────────────────────────────────────────────

const jobColumns = `id, title, company, location, mode, experience, description,
	       skills, salary_range, source, apply_url,
	       (CURRENT_DATE - posted_at)::int AS posted_days_ago`

func scanJob(row pgx.Row) (model.Job, error) {
	var j model.Job
	err := row.Scan(
		&j.ID, &j.Title, &j.Company, &j.Location, &j.Mode, &j.Experience,
		&j.Description, &j.Skills, &j.SalaryRange, &j.Source, &j.ApplyURL,
		&j.PostedDaysAgo,
	)
	return j, err
}

// ScoredFeed loads every posting and annotates it with the user's match
// score. The preference record is returned alongside so callers can tell a
// zero score under real preferences apart from "no preferences configured".
func (s *Service) ScoredFeed(ctx context.Context, userID string) ([]model.ScoredJob, *model.Preferences, error) {
	jobs, err := s.loadJobs(ctx)
	if err != nil {
		return nil, nil, err
	}

	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return match.Annotate(jobs, prefs), prefs, nil
}

// ListJobs returns the user's job feed view: every posting annotated with its
// match score against the stored preferences, then filtered and sorted per
// the interactive filter state. Returns the view and whether preferences
// exist (the threshold toggle is inert without them).
func (s *Service) ListJobs(ctx context.Context, userID string, f match.Filters) ([]model.ScoredJob, bool, error) {
	scored, prefs, err := s.ScoredFeed(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	statuses, err := s.loadStatuses(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	view := match.Apply(scored, f, prefs, statuses)
	return view, prefs != nil, nil
}

// UsersWithPreferences lists every user holding a preference record. The
// digest scheduler walks this set each morning.
func (s *Service) UsersWithPreferences(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT user_id FROM preferences`)
	if err != nil {
		return nil, fmt.Errorf("usersWithPreferences: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("usersWithPreferences scan: %w", err)
		}
		users = append(users, id)
	}
	return users, rows.Err()
}

func (s *Service) loadJobs(ctx context.Context) ([]model.Job, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY posted_at DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listJobs query: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("listJobs scan: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// IngestJob inserts a posting, skipping duplicates by apply URL.
// Returns ErrDuplicate when an identical apply URL already exists.
func (s *Service) IngestJob(ctx context.Context, job model.Job) (*model.Job, error) {
	if job.Title == "" || job.Company == "" {
		return nil, &ValidationError{Msg: "title and company are required"}
	}
	if job.ApplyURL == "" {
		return nil, &ValidationError{Msg: "applyUrl is required"}
	}

	var inserted model.Job
	err := s.pool.QueryRow(ctx,
		`WITH ins AS (
		   INSERT INTO jobs (title, company, location, mode, experience, description,
		                     skills, salary_range, source, apply_url, posted_at)
		   SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, CURRENT_DATE - $11::int
		   WHERE NOT EXISTS (SELECT 1 FROM jobs WHERE apply_url = $10)
		   RETURNING *
		 )
		 SELECT `+jobColumns+` FROM ins`,
		job.Title, job.Company, job.Location, job.Mode, job.Experience,
		job.Description, job.Skills, job.SalaryRange, job.Source, job.ApplyURL,
		job.PostedDaysAgo,
	).Scan(
		&inserted.ID, &inserted.Title, &inserted.Company, &inserted.Location,
		&inserted.Mode, &inserted.Experience, &inserted.Description,
		&inserted.Skills, &inserted.SalaryRange, &inserted.Source,
		&inserted.ApplyURL, &inserted.PostedDaysAgo,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("ingestJob: %w", err)
	}
	return &inserted, nil
}

func (s *Service) getJob(ctx context.Context, jobID string) (*model.Job, error) {
	j, err := scanJob(s.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID))
	if err != nil {
		return nil, ErrNotFound
	}
	return &j, nil
}

// ─── Preferences ─────────────────────────────────────────────────────────────

// GetPreferences loads the user's preference record. A missing record is not
// an error: (nil, nil) is the "no preferences configured yet" sentinel.
func (s *Service) GetPreferences(ctx context.Context, userID string) (*model.Preferences, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM preferences WHERE user_id = $1`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getPreferences: %w", err)
	}

	var prefs model.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return nil, fmt.Errorf("getPreferences unmarshal: %w", err)
	}
	return &prefs, nil
}

// SavePreferences replaces the user's preference record wholesale.
func (s *Service) SavePreferences(ctx context.Context, userID string, prefs model.Preferences) error {
	if prefs.MinMatchScore < 0 || prefs.MinMatchScore > 100 {
		return &ValidationError{Msg: "minMatchScore must be between 0 and 100"}
	}

	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("savePreferences marshal: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO preferences (user_id, data, updated_at)
		 VALUES ($1, $2::jsonb, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET data = $2::jsonb, updated_at = NOW()`,
		userID, string(raw),
	)
	if err != nil {
		return fmt.Errorf("savePreferences: %w", err)
	}
	return nil
}

// ResetPreferences deletes the user's preference record. After reset the
// sentinel applies again; scores are recomputed as zero, never merged with
// stale defaults.
func (s *Service) ResetPreferences(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM preferences WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("resetPreferences: %w", err)
	}
	return nil
}

// ─── Status tracking ─────────────────────────────────────────────────────────

func (s *Service) loadStatuses(ctx context.Context, userID string) (map[string]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT job_id, status FROM job_status WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("loadStatuses: %w", err)
	}
	defer rows.Close()

	statuses := make(map[string]string)
	for rows.Next() {
		var jobID, st string
		if err := rows.Scan(&jobID, &st); err != nil {
			return nil, fmt.Errorf("loadStatuses scan: %w", err)
		}
		statuses[jobID] = st
	}
	return statuses, rows.Err()
}

// SetStatus updates the tracked status of a job for the user. Recordable
// transitions (Applied, Rejected, Selected) are appended to the bounded
// history log and announced on the EVENT_STATUS_CHANGED channel.
func (s *Service) SetStatus(ctx context.Context, userID, jobID, statusStr string) (model.Status, error) {
	status, err := model.ParseStatus(statusStr)
	if err != nil {
		return "", &ValidationError{Msg: err.Error()}
	}

	job, err := s.getJob(ctx, jobID)
	if err != nil {
		return "", err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO job_status (user_id, job_id, status, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (user_id, job_id) DO UPDATE SET status = $3, updated_at = NOW()`,
		userID, jobID, string(status),
	)
	if err != nil {
		return "", fmt.Errorf("setStatus: %w", err)
	}

	if status.Recordable() {
		if err := s.appendHistory(ctx, userID, *job, status); err != nil {
			slog.Warn("appendHistory failed", "userId", userID, "jobId", jobID, "err", err)
		}

		event, _ := json.Marshal(map[string]string{
			"type":   "EVENT_STATUS_CHANGED",
			"userId": userID,
			"jobId":  jobID,
			"status": string(status),
		})
		if err := s.rdb.Publish(ctx, "EVENT_STATUS_CHANGED", event).Err(); err != nil {
			slog.Warn("publish EVENT_STATUS_CHANGED failed", "err", err)
		}
	}

	return status, nil
}

// appendHistory runs the load-append-truncate-store cycle on the user's
// Redis-backed history log.
func (s *Service) appendHistory(ctx context.Context, userID string, job model.Job, status model.Status) error {
	log, err := s.loadHistory(ctx, userID)
	if err != nil {
		return err
	}

	log.Append(job, status, time.Now().UTC())

	raw, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("history marshal: %w", err)
	}
	if err := s.rdb.Set(ctx, historyKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("history store: %w", err)
	}
	return nil
}

func (s *Service) loadHistory(ctx context.Context, userID string) (*history.Log, error) {
	log := history.New()
	raw, err := s.rdb.Get(ctx, historyKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return log, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history load: %w", err)
	}
	if err := json.Unmarshal(raw, log); err != nil {
		return nil, fmt.Errorf("history unmarshal: %w", err)
	}
	return log, nil
}

// History returns the user's status history, newest first, at most
// history.Capacity entries.
func (s *Service) History(ctx context.Context, userID string) ([]history.Entry, error) {
	log, err := s.loadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return log.Entries(), nil
}

// ─── Saved jobs ──────────────────────────────────────────────────────────────

// ToggleSaved bookmarks a job, or removes the bookmark if one exists.
// Returns the resulting saved state.
func (s *Service) ToggleSaved(ctx context.Context, userID, jobID string) (bool, error) {
	if _, err := s.getJob(ctx, jobID); err != nil {
		return false, err
	}

	tag, err := s.pool.Exec(ctx,
		`DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return false, fmt.Errorf("toggleSaved delete: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO saved_jobs (user_id, job_id, saved_at) VALUES ($1, $2, NOW())`,
		userID, jobID)
	if err != nil {
		return false, fmt.Errorf("toggleSaved insert: %w", err)
	}
	return true, nil
}

// ListSaved returns the user's bookmarked jobs, newest bookmark first,
// annotated with match scores.
func (s *Service) ListSaved(ctx context.Context, userID string) ([]model.ScoredJob, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs j
		 JOIN saved_jobs sj ON sj.job_id = j.id
		 WHERE sj.user_id = $1
		 ORDER BY sj.saved_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listSaved: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("listSaved scan: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	return match.Annotate(jobs, prefs), nil
}

// ─── Sentinel errors ─────────────────────────────────────────────────────────

// ErrNotFound is returned when a job is missing.
var ErrNotFound = fmt.Errorf("job not found")

// ErrDuplicate is returned when an ingested posting's apply URL already exists.
var ErrDuplicate = fmt.Errorf("job already ingested")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
