package service

import (
	"time"

	"webbu/skill-api/store"

	"go.uber.org/zap"
)

// TokenCleanup periodically deletes token pairs older than maxAge: magic
// links that were never clicked and remember-me sessions long abandoned.
// A pair disappearing here just forces the next request through the normal
// re-login path.
func TokenCleanup(tick, maxAge time.Duration, creds *store.Credentials) {
	ticker := time.NewTicker(tick)

	zap.L().Debug("Token cleanup attached", zap.Duration("tick_every", tick))

	go func() {
		for range ticker.C {
			n, err := creds.DeleteTokenPairsBefore(time.Now().Add(-maxAge))
			if err != nil {
				zap.L().Error("Failed to clean up old token pairs", zap.Error(err))
				continue
			}

			if n > 0 {
				zap.L().Debug("Cleaned up old token pairs", zap.Int64("deleted", n))
			}
		}
	}()
}
