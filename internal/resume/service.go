// Package resume stores résumé documents and exposes their ATS evaluation.
// One jsonb record per user, replaced wholesale on every save.
package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobtrack/matcher-service/internal/ats"
	"jobtrack/matcher-service/internal/model"
)

// Service encapsulates résumé storage and scoring.
type Service struct {
	pool *pgxpool.Pool
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// ErrNotFound is returned when the user has no stored résumé.
var ErrNotFound = fmt.Errorf("resume not found")

// Get loads the user's résumé document.
func (s *Service) Get(ctx context.Context, userID string) (*model.Resume, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM resumes WHERE user_id = $1`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getResume: %w", err)
	}

	var r model.Resume
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("getResume unmarshal: %w", err)
	}
	return &r, nil
}

// Save replaces the user's résumé document wholesale.
func (s *Service) Save(ctx context.Context, userID string, r model.Resume) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("saveResume marshal: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO resumes (user_id, data, updated_at)
		 VALUES ($1, $2::jsonb, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET data = $2::jsonb, updated_at = NOW()`,
		userID, string(raw),
	)
	if err != nil {
		return fmt.Errorf("saveResume: %w", err)
	}
	return nil
}

// Score evaluates the stored résumé against the ATS rule table.
func (s *Service) Score(ctx context.Context, userID string) (*ats.Report, error) {
	r, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	report := ats.Evaluate(*r)
	return &report, nil
}
