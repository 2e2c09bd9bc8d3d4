package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/campuscell/events-portal/internal/certificate"
	"github.com/campuscell/events-portal/internal/claim"
	"github.com/campuscell/events-portal/internal/document"
	"github.com/campuscell/events-portal/internal/domain/entity"
	"go.uber.org/zap"
)

// CertificateRequest asks for one certificate. TemplateID may be empty, in
// which case the registry recommends a template from the event type.
type CertificateRequest struct {
	TemplateID string
	Version    int
	EventType  string
	Preference string
	Fields     map[string]string
}

// DocumentService composes and records programme documents
type DocumentService interface {
	NoteOrder(publicID string, sink document.Sink) (*entity.GeneratedDocument, error)
	ClaimReceipt(publicID string, sink document.Sink) (*entity.GeneratedDocument, error)
	BudgetSheet(publicID string, w io.Writer) (*entity.GeneratedDocument, error)
	Certificate(req CertificateRequest) ([]byte, string, error)
	History(publicID string) ([]*entity.GeneratedDocument, error)
}

// BudgetWriter renders a programme budget as a spreadsheet
type BudgetWriter interface {
	Write(p entity.Programme, w io.Writer) error
}

type documentServiceImpl struct {
	store    ProgrammeStore
	docs     DocumentStore
	composer *document.Composer
	budget   BudgetWriter
	registry *certificate.Registry
	renderer *certificate.Renderer
	logger   *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	store ProgrammeStore,
	docs DocumentStore,
	composer *document.Composer,
	budget BudgetWriter,
	registry *certificate.Registry,
	renderer *certificate.Renderer,
	logger *zap.Logger,
) DocumentService {
	return &documentServiceImpl{
		store:    store,
		docs:     docs,
		composer: composer,
		budget:   budget,
		registry: registry,
		renderer: renderer,
		logger:   logger,
	}
}

// countingSink wraps a sink so the recorded document carries its size
type countingSink struct {
	inner document.Sink
	n     int64
}

func (s *countingSink) Write(p []byte) (int, error) {
	n, err := s.inner.Write(p)
	s.n += int64(n)
	return n, err
}

func (s *countingSink) End() error {
	return s.inner.End()
}

// NoteOrder composes the note-order document and records the generation
func (s *documentServiceImpl) NoteOrder(publicID string, sink document.Sink) (*entity.GeneratedDocument, error) {
	p, err := s.get(publicID)
	if err != nil {
		return nil, err
	}

	counted := &countingSink{inner: sink}
	if err := s.composer.NoteOrder(*p, counted); err != nil {
		return nil, err
	}

	return s.record(p, entity.DocTypeNoteOrder, "note_order.pdf", "application/pdf", counted.n)
}

// ClaimReceipt composes the claim-bill statement. On the first
// composition, every item is stamped with its receipt number in item
// order; the numbers never change afterwards.
func (s *documentServiceImpl) ClaimReceipt(publicID string, sink document.Sink) (*entity.GeneratedDocument, error) {
	p, err := s.get(publicID)
	if err != nil {
		return nil, err
	}
	if p.Claim == nil {
		return nil, fmt.Errorf("programme %s: %w", publicID, claim.ErrClaimBillNotFound)
	}

	if s.assignReceiptNumbers(p) {
		if err := s.store.Update(p); err != nil {
			return nil, err
		}
	}

	counted := &countingSink{inner: sink}
	if err := s.composer.ClaimReceipt(*p, counted); err != nil {
		return nil, err
	}

	return s.record(p, entity.DocTypeClaimReceipt, "claim_receipt.pdf", "application/pdf", counted.n)
}

// BudgetSheet writes the xlsx budget rendition
func (s *documentServiceImpl) BudgetSheet(publicID string, w io.Writer) (*entity.GeneratedDocument, error) {
	p, err := s.get(publicID)
	if err != nil {
		return nil, err
	}

	if err := s.budget.Write(*p, w); err != nil {
		return nil, err
	}

	return s.record(p, entity.DocTypeBudgetSheet, "budget_sheet.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", 0)
}

// Certificate resolves the template and renders the certificate bytes
func (s *documentServiceImpl) Certificate(req CertificateRequest) ([]byte, string, error) {
	templateID := req.TemplateID
	if templateID == "" {
		templateID = s.registry.Recommend(req.EventType, req.Preference)
	}

	tpl, err := s.registry.Get(templateID, req.Version)
	if err != nil {
		return nil, "", err
	}

	return s.renderer.Render(tpl, req.Fields)
}

// History lists the documents generated for a programme
func (s *documentServiceImpl) History(publicID string) ([]*entity.GeneratedDocument, error) {
	p, err := s.get(publicID)
	if err != nil {
		return nil, err
	}
	return s.docs.ListByProgramme(p.ID)
}

func (s *documentServiceImpl) get(publicID string) (*entity.Programme, error) {
	p, err := s.store.GetByPublicID(publicID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrProgrammeNotFound, publicID)
	}
	return p, nil
}

// assignReceiptNumbers stamps items missing a receipt number, in item
// order. Reports whether anything changed.
func (s *documentServiceImpl) assignReceiptNumbers(p *entity.Programme) bool {
	prefix := strings.SplitN(p.PublicID, "-", 2)[0]
	changed := false
	for i := range p.Claim.Expenses {
		item := &p.Claim.Expenses[i]
		if item.ReceiptNumber != "" {
			continue
		}
		item.ReceiptNumber = fmt.Sprintf("RCPT-%s-%03d", strings.ToUpper(prefix), i+1)
		item.ReceiptGenerated = true
		changed = true
	}
	if changed {
		p.UpdatedAt = time.Now().UTC()
	}
	return changed
}

func (s *documentServiceImpl) record(p *entity.Programme, docType, fileName, mime string, size int64) (*entity.GeneratedDocument, error) {
	doc := &entity.GeneratedDocument{
		ProgrammeID: p.ID,
		DocType:     docType,
		FileName:    fileName,
		MimeType:    mime,
		ByteSize:    size,
	}
	if err := s.docs.Create(doc); err != nil {
		// the document already reached the caller; history is best effort
		s.logger.Warn("Failed to record generated document",
			zap.String("programme", p.PublicID),
			zap.String("doc_type", docType),
			zap.Error(err))
		return doc, nil
	}

	s.logger.Info("Document generated",
		zap.String("programme", p.PublicID),
		zap.String("doc_type", docType),
		zap.Int64("bytes", size))

	return doc, nil
}
