package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/centsible/centsible/internal/model"
)

// GetConfidence returns the stored confidence and its last update time
// for a detector. A detector that has never run yields zero confidence
// and a zero time, not an error.
func (s *SQLiteStorage) GetConfidence(ctx context.Context, detector model.BehaviorType) (float64, time.Time, error) {
	if err := validateContext(ctx); err != nil {
		return 0, time.Time{}, err
	}
	if err := validateString(string(detector), "detector"); err != nil {
		return 0, time.Time{}, err
	}

	var confidence float64
	var updatedAt time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT confidence, updated_at FROM confidence_state WHERE detector = ?
	`, string(detector)).Scan(&confidence, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, time.Time{}, nil
	}
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to load confidence for %s: %w", detector, err)
	}

	return confidence, updatedAt, nil
}

// SaveConfidence upserts the confidence returned by a detector run.
func (s *SQLiteStorage) SaveConfidence(ctx context.Context, detector model.BehaviorType, confidence float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(string(detector), "detector"); err != nil {
		return err
	}
	if confidence < 0 || confidence > 1 {
		return fmt.Errorf("confidence must be in [0, 1], got %v", confidence)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO confidence_state (detector, confidence, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(detector) DO UPDATE SET
			confidence = excluded.confidence,
			updated_at = CURRENT_TIMESTAMP
	`, string(detector), confidence)
	if err != nil {
		return fmt.Errorf("failed to save confidence for %s: %w", detector, err)
	}

	return nil
}
