package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/slogx"
)

// HousekeepingService periodically deletes expired refresh tokens and
// password reset codes.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs a sweep immediately and then every Interval until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping started", "interval", s.Interval)
}

// Stop blocks until an in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background(), time.Now())
	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background(), time.Now())
		case <-s.stopCh:
			return
		}
	}
}

// SweepResult counts the rows one sweep removed.
type SweepResult struct {
	RefreshTokens int64
	ResetCodes    int64
}

// Sweep deletes everything that expired before now. A failing table does not
// stop the others.
func (s *HousekeepingService) Sweep(ctx context.Context, now time.Time) SweepResult {
	var res SweepResult
	var err error

	if res.RefreshTokens, err = s.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx, now); err != nil {
		s.Logger.Error("failed to delete expired refresh tokens", slogx.Err(err))
	}
	if res.ResetCodes, err = s.Store.PasswordResetCodes().DeleteExpiredCodes(ctx, now); err != nil {
		s.Logger.Error("failed to delete expired reset codes", slogx.Err(err))
	}

	s.Logger.Info("housekeeping sweep completed",
		slog.Int64("refresh_tokens", res.RefreshTokens),
		slog.Int64("reset_codes", res.ResetCodes),
	)
	return res
}
