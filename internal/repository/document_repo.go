package repository

import (
	"database/sql"
	"fmt"

	"github.com/campuscell/events-portal/internal/domain/entity"
	"go.uber.org/zap"
)

// DocumentRepository records the documents generated for each programme
type DocumentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *sql.DB, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

// Create records a generated document
func (r *DocumentRepository) Create(doc *entity.GeneratedDocument) error {
	query := `
		INSERT INTO generated_documents (
			programme_id, doc_type, file_name, mime_type, byte_size
		) VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		doc.ProgrammeID, doc.DocType, doc.FileName, doc.MimeType, doc.ByteSize,
	)
	if err != nil {
		r.logger.Error("Failed to record generated document", zap.Error(err))
		return fmt.Errorf("failed to record generated document: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	doc.ID = id
	return nil
}

// ListByProgramme returns the generation history for a programme, newest
// first
func (r *DocumentRepository) ListByProgramme(programmeID int64) ([]*entity.GeneratedDocument, error) {
	query := `
		SELECT id, programme_id, doc_type, file_name, mime_type, byte_size, created_at
		FROM generated_documents
		WHERE programme_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, programmeID)
	if err != nil {
		r.logger.Error("Failed to list documents", zap.Int64("programme_id", programmeID), zap.Error(err))
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*entity.GeneratedDocument
	for rows.Next() {
		var doc entity.GeneratedDocument
		if err := rows.Scan(
			&doc.ID, &doc.ProgrammeID, &doc.DocType, &doc.FileName,
			&doc.MimeType, &doc.ByteSize, &doc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}
