package workers

import (
	"context"
	"time"

	"notehub_backend/internal/logger"
	"notehub_backend/internal/services"

	"gorm.io/gorm"
)

// TokenWorker periodically deletes expired refresh, verify-email and
// reset-password tokens. Consumption already rejects expired tokens, so the
// sweep only keeps the table from growing.
type TokenWorker struct {
	db       *gorm.DB
	tokens   services.TokenService
	interval time.Duration
}

func NewTokenWorker(db *gorm.DB, tokens services.TokenService, interval time.Duration) *TokenWorker {
	return &TokenWorker{
		db:       db,
		tokens:   tokens,
		interval: interval,
	}
}

// Start launches the sweep loop. It runs until ctx is cancelled.
func (w *TokenWorker) Start(ctx context.Context) {
	go w.sweepExpiredTokens(ctx)
}

func (w *TokenWorker) sweepExpiredTokens(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Token worker stopped")
			return
		case <-ticker.C:
			if err := w.tokens.CleanExpired(w.db); err != nil {
				logger.Error("Failed to clean expired tokens", "error", err)
			}
		}
	}
}
