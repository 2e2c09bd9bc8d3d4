package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campuscell/events-portal/internal/certificate"
	"github.com/campuscell/events-portal/internal/document"
	"github.com/campuscell/events-portal/internal/domain/entity"
	"github.com/campuscell/events-portal/internal/export"
	"github.com/campuscell/events-portal/internal/service"
)

type memoryStore struct {
	programmes map[string]*entity.Programme
	docs       []*entity.GeneratedDocument
	nextID     int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{programmes: make(map[string]*entity.Programme)}
}

func (m *memoryStore) Create(p *entity.Programme) error {
	m.nextID++
	p.ID = m.nextID
	m.programmes[p.PublicID] = p
	return nil
}

func (m *memoryStore) Update(p *entity.Programme) error {
	m.programmes[p.PublicID] = p
	return nil
}

func (m *memoryStore) GetByPublicID(publicID string) (*entity.Programme, error) {
	p, ok := m.programmes[publicID]
	if !ok {
		return nil, nil
	}
	clone := *p
	if p.Claim != nil {
		bill := *p.Claim
		bill.Expenses = append([]entity.ExpenseItem(nil), p.Claim.Expenses...)
		clone.Claim = &bill
	}
	return &clone, nil
}

func (m *memoryStore) List(limit, offset int) ([]*entity.Programme, error) {
	out := make([]*entity.Programme, 0, len(m.programmes))
	for _, p := range m.programmes {
		out = append(out, p)
	}
	return out, nil
}

func (m *memoryStore) ListWithClaims() ([]*entity.Programme, error) {
	var out []*entity.Programme
	for _, p := range m.programmes {
		if p.Claim != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryStore) CreateDoc(doc *entity.GeneratedDocument) error {
	m.docs = append(m.docs, doc)
	return nil
}

func (m *memoryStore) ListByProgramme(programmeID int64) ([]*entity.GeneratedDocument, error) {
	var out []*entity.GeneratedDocument
	for _, d := range m.docs {
		if d.ProgrammeID == programmeID {
			out = append(out, d)
		}
	}
	return out, nil
}

type docStoreAdapter struct{ *memoryStore }

func (a docStoreAdapter) Create(doc *entity.GeneratedDocument) error {
	return a.CreateDoc(doc)
}

func newTestServer(t *testing.T) (*Server, *memoryStore) {
	t.Helper()

	logger := zap.NewNop()
	store := newMemoryStore()

	composer := document.NewComposer(document.Config{
		InstitutionName: "Anna University Regional Campus",
		CentreName:      "Centre for Competency and Skill Development",
		Place:           "Coimbatore",
	}, logger)

	registry := certificate.NewRegistry()
	renderer := certificate.NewRenderer(logger)
	budget := export.NewBudgetSheetWriter(30, logger)

	programmes := service.NewProgrammeService(store, logger)
	reviews := service.NewReviewService(store, logger)
	documents := service.NewDocumentService(store, docStoreAdapter{store}, composer, budget, registry, renderer, logger)

	srv := NewServer(DefaultConfig(), programmes, reviews, documents, registry, logger)
	return srv, store
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func createProgramme(t *testing.T, srv *Server) string {
	t.Helper()

	w := doJSON(t, srv, http.MethodPost, "/api/v1/programmes", map[string]interface{}{
		"title":     "Workshop on Embedded Systems",
		"startDate": "2026-01-05T00:00:00Z",
		"endDate":   "2026-01-07T00:00:00Z",
		"venue":     "Seminar Hall",
		"mode":      "offline",
		"duration":  "3 days",
		"coordinators": []map[string]string{
			{"name": "Dr. S. Kumar", "designation": "Assistant Professor", "department": "ECE"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    entity.Programme `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Data.PublicID)
	return resp.Data.PublicID
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestCreateProgrammeValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/programmes", map[string]interface{}{
		"title": "",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProgrammeNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/api/v1/programmes/no-such-id", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitClaimAndReview(t *testing.T) {
	srv, _ := newTestServer(t)
	id := createProgramme(t, srv)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/programmes/"+id+"/claim", map[string]interface{}{
		"submittedBy": "Dr. S. Kumar",
		"expenses": []map[string]interface{}{
			{"category": "Honorarium", "actualAmount": 2500},
			{"category": "Refreshments", "actualAmount": 2030},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data entity.Programme `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.Claim)
	assert.Equal(t, entity.ItemStatusPending, resp.Data.Claim.Expenses[0].ItemStatus)

	// nothing is approved yet, so every total is zero
	assert.Equal(t, 0.0, resp.Data.Claim.TotalExpenditure)
	assert.Equal(t, 0.0, resp.Data.Claim.TotalApprovedAmount)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/programmes/"+id+"/claim/items/0/review", map[string]interface{}{
		"status":     entity.ItemStatusApproved,
		"reviewedBy": "HOD",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2500.0, resp.Data.Claim.TotalApprovedAmount)
	assert.Equal(t, 2500.0, resp.Data.Claim.TotalExpenditure)

	// rejecting without a reason is refused
	w = doJSON(t, srv, http.MethodPost, "/api/v1/programmes/"+id+"/claim/items/1/review", map[string]interface{}{
		"status":     entity.ItemStatusRejected,
		"reviewedBy": "HOD",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// out of range item
	w = doJSON(t, srv, http.MethodPost, "/api/v1/programmes/"+id+"/claim/items/9/review", map[string]interface{}{
		"status":     entity.ItemStatusApproved,
		"reviewedBy": "HOD",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/programmes/"+id+"/claim/items/1/review", map[string]interface{}{
		"status":     entity.ItemStatusApproved,
		"reviewedBy": "HOD",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4530.0, resp.Data.Claim.TotalApprovedAmount)
	assert.Equal(t, 4530.0, resp.Data.Claim.TotalExpenditure)
	assert.Equal(t, 4530.0, resp.Data.Claim.TotalBudgetAmount)
}

func TestDocumentEndpoints(t *testing.T) {
	srv, store := newTestServer(t)
	id := createProgramme(t, srv)

	w := doJSON(t, srv, http.MethodGet, "/api/v1/programmes/"+id+"/documents/note-order", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	// no claim submitted yet
	w = doJSON(t, srv, http.MethodGet, "/api/v1/programmes/"+id+"/documents/claim-receipt", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/programmes/"+id+"/claim", map[string]interface{}{
		"expenses": []map[string]interface{}{
			{"category": "Honorarium", "actualAmount": 2500},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/v1/programmes/"+id+"/documents/claim-receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = doJSON(t, srv, http.MethodGet, "/api/v1/programmes/"+id+"/documents/budget-sheet", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotZero(t, w.Body.Len())

	w = doJSON(t, srv, http.MethodGet, "/api/v1/programmes/"+id+"/documents", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.docs, 3)
}

func TestGenerateCertificate(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/certificates", map[string]interface{}{
		"eventType": "workshop",
		"fields": map[string]string{
			"participant": "A. Student",
			"title":       "Workshop on Embedded Systems",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	w = doJSON(t, srv, http.MethodPost, "/api/v1/certificates", map[string]interface{}{
		"templateId": "classic",
		"version":    99,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/v1/certificates", map[string]interface{}{
		"templateId": "nonexistent",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecommendTemplate(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		eventType string
		want      string
	}{
		{"workshop", "classic"},
		{"seminar", "formal"},
		{"hackathon", "modern"},
		{"unknown", "classic"},
	}

	for _, tc := range cases {
		t.Run(tc.eventType, func(t *testing.T) {
			w := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/templates/recommend?eventType=%s", tc.eventType), nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), fmt.Sprintf("%q", tc.want))
		})
	}
}
