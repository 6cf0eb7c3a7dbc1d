package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/centsible/centsible/internal/behavior"
	"github.com/centsible/centsible/internal/category"
	"github.com/centsible/centsible/internal/config"
	"github.com/centsible/centsible/internal/storage"
)

// defaultDBPath is used when database.path is not configured.
func defaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "centsible", "centsible.db"), nil
}

// initStorage opens the database and brings the schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		var err error
		dbPath, err = defaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate storage: %w", err)
	}

	return store, nil
}

// buildEngine wires the detection engine from configuration.
func buildEngine() (*behavior.Engine, config.Thresholds, error) {
	thresholds, err := config.LoadThresholds(viper.GetViper())
	if err != nil {
		return nil, config.Thresholds{}, err
	}

	classifier := category.NewClassifierFromViper(viper.GetViper())
	return behavior.NewEngine(thresholds, classifier), thresholds, nil
}

// detectionWindow returns the date range wide enough to cover every
// detector's lookback. Callers bound the window before invoking the
// engine; the detectors themselves never query storage.
func detectionWindow(t config.Thresholds) (time.Time, time.Time) {
	days := t.SmallRecurring.LookbackDays
	if d := t.StressSpending.LookbackDays; d > days {
		days = d
	}
	if d := 7 * t.SavingHabit.WindowWeeks; d > days {
		days = d
	}
	// Month-end comparison needs the full current month.
	if days < 31 {
		days = 31
	}

	now := time.Now()
	return now.AddDate(0, 0, -days), now
}
