package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"tecsoqr/internal/pkg/metrics"
)

// Purger deletes expired history rows.
type Purger interface {
	PurgeExpired() (int64, error)
}

// PurgeExpiredCodes runs one purge pass.
func PurgeExpiredCodes(p Purger) (int64, error) {
	n, err := p.PurgeExpired()
	if err != nil {
		return 0, err
	}
	metrics.ExpiredPurged.Add(float64(n))
	if n > 0 {
		log.Info().Int64("deleted", n).Msg("purged expired codes")
	}
	return n, nil
}

// RunEvery calls fn immediately and then on every tick until ctx ends.
func RunEvery(ctx context.Context, name string, interval time.Duration, fn func() error) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := fn(); err != nil {
			log.Error().Err(err).Str("worker", name).Msg("worker run failed")
		}
		select {
		case <-ctx.Done():
			log.Info().Str("worker", name).Msg("worker stopped")
			return
		case <-ticker.C:
		}
	}
}
