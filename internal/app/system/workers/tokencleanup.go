// internal/app/system/workers/tokencleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/kestrelworks/clienthub/internal/app/store/emailverify"
	"github.com/kestrelworks/clienthub/internal/app/store/oauthstate"
	"go.uber.org/zap"
)

// TokenCleanup is a background worker that sweeps expired email
// verification tokens and OAuth state rows. Mongo's TTL monitor already
// removes these eventually; the sweep keeps counts honest between TTL
// passes and covers deployments where the monitor is disabled.
type TokenCleanup struct {
	verify   *emailverify.Store
	states   *oauthstate.Store
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewTokenCleanup creates a new token cleanup worker.
func NewTokenCleanup(verify *emailverify.Store, states *oauthstate.Store, logger *zap.Logger, interval time.Duration) *TokenCleanup {
	return &TokenCleanup{
		verify:   verify,
		states:   states,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *TokenCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("token cleanup worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *TokenCleanup) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("token cleanup worker stopped")
}

func (w *TokenCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *TokenCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if n, err := w.verify.CleanupExpired(ctx); err != nil {
		w.log.Error("failed to sweep expired email verifications", zap.Error(err))
	} else if n > 0 {
		w.log.Debug("swept expired email verifications", zap.Int64("count", n))
	}

	if n, err := w.states.CleanupExpired(ctx); err != nil {
		w.log.Error("failed to sweep expired OAuth states", zap.Error(err))
	} else if n > 0 {
		w.log.Debug("swept expired OAuth states", zap.Int64("count", n))
	}
}
