package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campuscell/events-portal/internal/certificate"
	"github.com/campuscell/events-portal/internal/claim"
	"github.com/campuscell/events-portal/internal/document"
	"github.com/campuscell/events-portal/internal/domain/entity"
	"github.com/campuscell/events-portal/internal/service"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	programmes service.ProgrammeService
	reviews    service.ReviewService
	documents  service.DocumentService
	templates  *certificate.Registry
	logger     *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	programmes service.ProgrammeService,
	reviews service.ReviewService,
	documents service.DocumentService,
	templates *certificate.Registry,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		programmes: programmes,
		reviews:    reviews,
		documents:  documents,
		templates:  templates,
		logger:     logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// CreateProgrammeRequest is the JSON body for POST /api/v1/programmes
type CreateProgrammeRequest struct {
	Title           string                 `json:"title"`
	StartDate       time.Time              `json:"startDate"`
	EndDate         time.Time              `json:"endDate"`
	Venue           string                 `json:"venue"`
	Mode            string                 `json:"mode"`
	Duration        string                 `json:"duration"`
	Coordinators    []entity.Coordinator   `json:"coordinators"`
	TargetAudience  []string               `json:"targetAudience"`
	ResourcePersons []string               `json:"resourcePersons"`
	Budget          entity.BudgetBreakdown `json:"budgetBreakdown"`
}

// SubmitClaimRequest is the JSON body for POST /api/v1/programmes/:id/claim
type SubmitClaimRequest struct {
	Expenses    []entity.ExpenseItem `json:"expenses"`
	SubmittedBy string               `json:"submittedBy"`
}

// ReviewRequest is the JSON body for a claim item review decision
type ReviewRequest struct {
	Status          string   `json:"status"`
	ApprovedAmount  *float64 `json:"approvedAmount"`
	RejectionReason string   `json:"rejectionReason"`
	ReviewedBy      string   `json:"reviewedBy"`
}

// CertificateRequestBody is the JSON body for POST /api/v1/certificates
type CertificateRequestBody struct {
	TemplateID string            `json:"templateId"`
	Version    int               `json:"version"`
	EventType  string            `json:"eventType"`
	Preference string            `json:"preference"`
	Fields     map[string]string `json:"fields"`
}

// ListProgrammesRequest represents query parameters for listing programmes
type ListProgrammesRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// CreateProgramme handles POST /api/v1/programmes
func (h *Handlers) CreateProgramme(c *gin.Context) {
	var req CreateProgrammeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return
	}

	programme, err := h.programmes.Create(service.CreateProgrammeInput{
		Title:           req.Title,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Venue:           req.Venue,
		Mode:            req.Mode,
		Duration:        req.Duration,
		Coordinators:    req.Coordinators,
		TargetAudience:  req.TargetAudience,
		ResourcePersons: req.ResourcePersons,
		Budget:          req.Budget,
	})
	if err != nil {
		h.fail(c, err, "Failed to create programme")
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: programme})
}

// ListProgrammes handles GET /api/v1/programmes
func (h *Handlers) ListProgrammes(c *gin.Context) {
	var req ListProgrammesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, "invalid query parameters", err)
		return
	}

	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	programmes, err := h.programmes.List(req.Limit, req.Offset)
	if err != nil {
		h.fail(c, err, "Failed to list programmes")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: programmes})
}

// GetProgramme handles GET /api/v1/programmes/:id
func (h *Handlers) GetProgramme(c *gin.Context) {
	programme, err := h.programmes.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to get programme")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: programme})
}

// SubmitClaim handles POST /api/v1/programmes/:id/claim
func (h *Handlers) SubmitClaim(c *gin.Context) {
	var req SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return
	}

	programme, err := h.programmes.SubmitClaim(c.Param("id"), req.Expenses, req.SubmittedBy)
	if err != nil {
		h.fail(c, err, "Failed to submit claim")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: programme})
}

// ReviewClaimItem handles POST /api/v1/programmes/:id/claim/items/:index/review
func (h *Handlers) ReviewClaimItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.badRequest(c, "invalid item index", err)
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return
	}

	programme, err := h.reviews.ReviewItem(c.Param("id"), index, service.ReviewDecision{
		Status:          req.Status,
		ApprovedAmount:  req.ApprovedAmount,
		RejectionReason: req.RejectionReason,
		ReviewedBy:      req.ReviewedBy,
	})
	if err != nil {
		h.fail(c, err, "Failed to review claim item")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: programme})
}

// NoteOrder handles GET /api/v1/programmes/:id/documents/note-order
func (h *Handlers) NoteOrder(c *gin.Context) {
	sink := &document.BufferSink{}
	doc, err := h.documents.NoteOrder(c.Param("id"), sink)
	if err != nil {
		h.fail(c, err, "Failed to compose note order")
		return
	}

	data, err := sink.Bytes()
	if err != nil {
		h.fail(c, err, "Failed to read composed note order")
		return
	}

	h.sendFile(c, doc.FileName, doc.MimeType, data)
}

// ClaimReceipt handles GET /api/v1/programmes/:id/documents/claim-receipt
func (h *Handlers) ClaimReceipt(c *gin.Context) {
	sink := &document.BufferSink{}
	doc, err := h.documents.ClaimReceipt(c.Param("id"), sink)
	if err != nil {
		h.fail(c, err, "Failed to compose claim receipt")
		return
	}

	data, err := sink.Bytes()
	if err != nil {
		h.fail(c, err, "Failed to read composed claim receipt")
		return
	}

	h.sendFile(c, doc.FileName, doc.MimeType, data)
}

// BudgetSheet handles GET /api/v1/programmes/:id/documents/budget-sheet
func (h *Handlers) BudgetSheet(c *gin.Context) {
	var buf bytes.Buffer
	doc, err := h.documents.BudgetSheet(c.Param("id"), &buf)
	if err != nil {
		h.fail(c, err, "Failed to export budget sheet")
		return
	}

	h.sendFile(c, doc.FileName, doc.MimeType, buf.Bytes())
}

// DocumentHistory handles GET /api/v1/programmes/:id/documents
func (h *Handlers) DocumentHistory(c *gin.Context) {
	docs, err := h.documents.History(c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to list documents")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: docs})
}

// GenerateCertificate handles POST /api/v1/certificates
func (h *Handlers) GenerateCertificate(c *gin.Context) {
	var req CertificateRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return
	}

	data, mime, err := h.documents.Certificate(service.CertificateRequest{
		TemplateID: req.TemplateID,
		Version:    req.Version,
		EventType:  req.EventType,
		Preference: req.Preference,
		Fields:     req.Fields,
	})
	if err != nil {
		h.fail(c, err, "Failed to generate certificate")
		return
	}

	ext := "pdf"
	if mime == "image/png" {
		ext = "png"
	}
	h.sendFile(c, "certificate."+ext, mime, data)
}

// RecommendTemplate handles GET /api/v1/templates/recommend
func (h *Handlers) RecommendTemplate(c *gin.Context) {
	id := h.templates.Recommend(c.Query("eventType"), c.Query("preference"))
	tpl, err := h.templates.Get(id, 0)
	if err != nil {
		h.fail(c, err, "Failed to resolve recommended template")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{
		"templateId":    tpl.ID,
		"name":          tpl.Name,
		"output":        tpl.Output,
		"latestVersion": tpl.Latest(),
	}})
}

func (h *Handlers) sendFile(c *gin.Context, fileName, mime string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, mime, data)
}

func (h *Handlers) badRequest(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: msg})
}

// fail maps service errors onto HTTP statuses
func (h *Handlers) fail(c *gin.Context, err error, logMsg string) {
	h.logger.Error(logMsg, zap.Error(err))

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrProgrammeNotFound),
		errors.Is(err, claim.ErrClaimBillNotFound),
		errors.Is(err, claim.ErrItemNotFound),
		errors.Is(err, certificate.ErrTemplateNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, document.ErrValidation),
		errors.Is(err, claim.ErrInvalidTransition),
		errors.Is(err, claim.ErrUnknownStatus),
		errors.Is(err, claim.ErrRejectionReasonNeeded),
		errors.Is(err, certificate.ErrUnsupportedTemplateVersion):
		status = http.StatusBadRequest
	}

	c.JSON(status, Response{Success: false, Error: err.Error()})
}
