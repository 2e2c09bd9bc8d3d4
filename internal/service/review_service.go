package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/campuscell/events-portal/internal/claim"
	"github.com/campuscell/events-portal/internal/domain/entity"
	"go.uber.org/zap"
)

// ReviewDecision is one reviewer action on a claim item. ApprovedAmount is
// optional: when absent, approval falls back to the item's actual or
// budgeted figure.
type ReviewDecision struct {
	Status          string
	ApprovedAmount  *float64
	RejectionReason string
	ReviewedBy      string
}

// ReviewService applies HOD/admin decisions to claim items
type ReviewService interface {
	ReviewItem(publicID string, index int, decision ReviewDecision) (*entity.Programme, error)
}

type reviewServiceImpl struct {
	store  ProgrammeStore
	logger *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(store ProgrammeStore, logger *zap.Logger) ReviewService {
	return &reviewServiceImpl{store: store, logger: logger}
}

// ReviewItem transitions one expense item and reconciles the claim before
// persisting. Re-review (flipping a decision) and same-status amendment
// (changing the approved figure) both pass through here; the transition
// table decides legality.
func (s *reviewServiceImpl) ReviewItem(publicID string, index int, decision ReviewDecision) (*entity.Programme, error) {
	p, err := s.store.GetByPublicID(publicID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrProgrammeNotFound, publicID)
	}
	if p.Claim == nil {
		return nil, fmt.Errorf("programme %s: %w", publicID, claim.ErrClaimBillNotFound)
	}
	if index < 0 || index >= len(p.Claim.Expenses) {
		return nil, fmt.Errorf("%w: index %d", claim.ErrItemNotFound, index)
	}

	item := &p.Claim.Expenses[index]

	if err := claim.ValidateTransition(item.ItemStatus, decision.Status); err != nil {
		return nil, err
	}

	switch decision.Status {
	case entity.ItemStatusApproved:
		if decision.ApprovedAmount != nil {
			item.ApprovedAmount = entity.NewAmount(*decision.ApprovedAmount)
		}
		item.RejectionReason = ""
	case entity.ItemStatusRejected:
		if strings.TrimSpace(decision.RejectionReason) == "" {
			return nil, claim.ErrRejectionReasonNeeded
		}
		item.RejectionReason = decision.RejectionReason
	}

	now := time.Now().UTC()
	item.ItemStatus = decision.Status
	item.ReviewedBy = decision.ReviewedBy
	item.ReviewDate = &now

	reconciled := claim.Reconcile(*p.Claim)
	p.Claim = &reconciled
	p.UpdatedAt = now

	if err := s.store.Update(p); err != nil {
		return nil, err
	}

	s.logger.Info("Claim item reviewed",
		zap.String("programme", publicID),
		zap.Int("item", index),
		zap.String("status", decision.Status),
		zap.String("reviewed_by", decision.ReviewedBy),
		zap.Float64("total_approved", reconciled.TotalApprovedAmount))

	return p, nil
}
