package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/plaugmann/family-meal-planner/internal/store"
)

type SchedulerService struct {
	store *store.Store
}

func NewSchedulerService(store *store.Store) *SchedulerService {
	return &SchedulerService{store: store}
}

func (s *SchedulerService) Start(ctx context.Context) {
	go s.runSessionCleanup(ctx)
}

// runSessionCleanup deletes expired household sessions once a day.
func (s *SchedulerService) runSessionCleanup(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	// Run immediately on startup
	s.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup(ctx)
		}
	}
}

func (s *SchedulerService) cleanup(ctx context.Context) {
	count, err := s.store.DeleteExpiredSessions(ctx)
	if err != nil {
		slog.Error("session cleanup failed", "error", err)
		return
	}
	if count > 0 {
		slog.Info("deleted expired sessions", "count", count)
	}
}
