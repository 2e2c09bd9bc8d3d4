// Package service wires the reconciliation and composition cores to the
// programme store and exposes the operations the HTTP layer calls.
package service

import "github.com/campuscell/events-portal/internal/domain/entity"

// ProgrammeStore is the persistence contract the services depend on
type ProgrammeStore interface {
	Create(p *entity.Programme) error
	Update(p *entity.Programme) error
	GetByPublicID(publicID string) (*entity.Programme, error)
	List(limit, offset int) ([]*entity.Programme, error)
	ListWithClaims() ([]*entity.Programme, error)
}

// DocumentStore records generated documents
type DocumentStore interface {
	Create(doc *entity.GeneratedDocument) error
	ListByProgramme(programmeID int64) ([]*entity.GeneratedDocument, error)
}
