package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/campuscell/events-portal/internal/claim"
	"github.com/campuscell/events-portal/internal/domain/entity"
	"github.com/campuscell/events-portal/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateProgrammeInput is the payload for programme creation
type CreateProgrammeInput struct {
	Title           string
	StartDate       time.Time
	EndDate         time.Time
	Venue           string
	Mode            string
	Duration        string
	Coordinators    []entity.Coordinator
	TargetAudience  []string
	ResourcePersons []string
	Budget          entity.BudgetBreakdown
}

// ProgrammeService manages programme lifecycle and claim submission
type ProgrammeService interface {
	Create(input CreateProgrammeInput) (*entity.Programme, error)
	Get(publicID string) (*entity.Programme, error)
	List(limit, offset int) ([]*entity.Programme, error)
	SubmitClaim(publicID string, expenses []entity.ExpenseItem, submittedBy string) (*entity.Programme, error)
}

type programmeServiceImpl struct {
	store  ProgrammeStore
	logger *zap.Logger
}

// NewProgrammeService creates a new ProgrammeService
func NewProgrammeService(store ProgrammeStore, logger *zap.Logger) ProgrammeService {
	return &programmeServiceImpl{store: store, logger: logger}
}

// Create validates and persists a new programme
func (s *programmeServiceImpl) Create(input CreateProgrammeInput) (*entity.Programme, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(input.Coordinators) == 0 {
		return nil, fmt.Errorf("%w: at least one coordinator is required", ErrInvalidInput)
	}
	switch input.Mode {
	case entity.ModeOnline, entity.ModeOffline, entity.ModeHybrid:
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, input.Mode)
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, fmt.Errorf("%w: end date precedes start date", ErrInvalidInput)
	}
	for i, row := range input.Budget.Expenses {
		if err := utils.ValidateAmount(row.Amount); err != nil {
			return nil, fmt.Errorf("%w: budget expense %d: %v", ErrInvalidInput, i+1, err)
		}
	}

	now := time.Now().UTC()
	p := &entity.Programme{
		PublicID:        uuid.NewString(),
		Title:           utils.SanitizeString(strings.TrimSpace(input.Title)),
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Venue:           utils.SanitizeString(input.Venue),
		Mode:            input.Mode,
		Duration:        input.Duration,
		Status:          entity.ProgrammeStatusDraft,
		Coordinators:    input.Coordinators,
		TargetAudience:  input.TargetAudience,
		ResourcePersons: input.ResourcePersons,
		Budget:          input.Budget,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.Create(p); err != nil {
		return nil, err
	}

	s.logger.Info("Programme created",
		zap.String("public_id", p.PublicID),
		zap.String("title", p.Title))

	return p, nil
}

// Get retrieves a programme by public id
func (s *programmeServiceImpl) Get(publicID string) (*entity.Programme, error) {
	p, err := s.store.GetByPublicID(publicID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrProgrammeNotFound, publicID)
	}
	return p, nil
}

// List returns programmes newest first
func (s *programmeServiceImpl) List(limit, offset int) ([]*entity.Programme, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(limit, offset)
}

// SubmitClaim attaches a claim bill to a programme. Expenses arrive
// wholesale; the bill replaces any previous submission. Every item starts
// pending, its originally claimed figure is captured once, and the bill is
// reconciled before it is ever persisted.
func (s *programmeServiceImpl) SubmitClaim(publicID string, expenses []entity.ExpenseItem, submittedBy string) (*entity.Programme, error) {
	p, err := s.Get(publicID)
	if err != nil {
		return nil, err
	}

	for i := range expenses {
		if strings.TrimSpace(expenses[i].Category) == "" {
			return nil, fmt.Errorf("%w: expense %d has no category", ErrInvalidInput, i+1)
		}
		if expenses[i].ItemStatus == "" {
			expenses[i].ItemStatus = entity.ItemStatusPending
		}
		switch expenses[i].ItemStatus {
		case entity.ItemStatusPending, entity.ItemStatusApproved, entity.ItemStatusRejected:
		default:
			return nil, fmt.Errorf("%w: expense %d has unknown status %q",
				ErrInvalidInput, i+1, expenses[i].ItemStatus)
		}
		expenses[i].ClaimedAmount = expenses[i].EffectiveAmount()
	}

	now := time.Now().UTC()
	bill := claim.Reconcile(entity.ClaimBill{
		Expenses:    expenses,
		SubmittedBy: submittedBy,
		SubmittedAt: &now,
	})

	p.Claim = &bill
	p.Status = entity.ProgrammeStatusSubmitted
	p.UpdatedAt = now

	if err := s.store.Update(p); err != nil {
		return nil, err
	}

	s.logger.Info("Claim bill submitted",
		zap.String("programme", p.PublicID),
		zap.Int("items", len(bill.Expenses)),
		zap.Float64("total_approved", bill.TotalApprovedAmount))

	return p, nil
}
