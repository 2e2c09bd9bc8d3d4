package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/campuscell/events-portal/internal/claim"
	"github.com/campuscell/events-portal/internal/domain/entity"
	"go.uber.org/zap"
)

// ClaimStore is the slice of the programme store the auditor needs
type ClaimStore interface {
	ListWithClaims() ([]*entity.Programme, error)
	Update(p *entity.Programme) error
}

// ClaimAuditor periodically re-reconciles stored claim bills and repairs
// any whose amount fields or totals have drifted from their item statuses.
// Drift should not happen through the portal's own write paths; the audit
// catches rows touched by older portal versions or manual edits.
type ClaimAuditor struct {
	store    ClaimStore
	logger   *zap.Logger
	interval time.Duration

	mu        sync.Mutex
	isRunning bool
	ctx       context.Context
	cancel    context.CancelFunc

	// busy guards against overlapping runs when an audit outlasts the
	// ticker interval
	busy atomic.Bool
}

// NewClaimAuditor creates a new claim auditor
func NewClaimAuditor(store ClaimStore, interval time.Duration, logger *zap.Logger) *ClaimAuditor {
	return &ClaimAuditor{
		store:    store,
		logger:   logger,
		interval: interval,
	}
}

// Start starts the audit loop
func (a *ClaimAuditor) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isRunning {
		return fmt.Errorf("claim auditor is already running")
	}

	a.ctx, a.cancel = context.WithCancel(ctx)
	a.isRunning = true

	a.logger.Info("ClaimAuditor started", zap.Duration("interval", a.interval))

	go a.loop()
	return nil
}

// Stop stops the audit loop
func (a *ClaimAuditor) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.isRunning {
		return
	}

	a.isRunning = false
	if a.cancel != nil {
		a.cancel()
	}

	a.logger.Info("ClaimAuditor stopped")
}

// Name returns the worker name for identification
func (a *ClaimAuditor) Name() string {
	return "ClaimAuditor"
}

func (a *ClaimAuditor) loop() {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	// audit once at startup
	a.RunOnce()

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
			a.RunOnce()
		}
	}
}

// RunOnce audits every stored claim once. Overlapping invocations are
// skipped, not queued.
func (a *ClaimAuditor) RunOnce() {
	if !a.busy.CompareAndSwap(false, true) {
		a.logger.Warn("Skipping claim audit, previous run still in progress")
		return
	}
	defer a.busy.Store(false)

	programmes, err := a.store.ListWithClaims()
	if err != nil {
		a.logger.Error("Claim audit failed to list programmes", zap.Error(err))
		return
	}

	repaired := 0
	for _, p := range programmes {
		if claim.IsReconciled(*p.Claim) {
			continue
		}

		reconciled := claim.Reconcile(*p.Claim)
		p.Claim = &reconciled
		p.UpdatedAt = time.Now().UTC()

		if err := a.store.Update(p); err != nil {
			a.logger.Error("Failed to repair drifted claim",
				zap.String("programme", p.PublicID),
				zap.Error(err))
			continue
		}

		repaired++
		a.logger.Warn("Repaired drifted claim bill",
			zap.String("programme", p.PublicID),
			zap.Float64("total_approved", reconciled.TotalApprovedAmount))
	}

	a.logger.Info("Claim audit complete",
		zap.Int("claims", len(programmes)),
		zap.Int("repaired", repaired))
}
