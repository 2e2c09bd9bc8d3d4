package entity

import "time"

// Document type constants
const (
	DocTypeNoteOrder    = "note_order"
	DocTypeClaimReceipt = "claim_receipt"
	DocTypeBudgetSheet  = "budget_sheet"
	DocTypeCertificate  = "certificate"
)

// GeneratedDocument records one document composed for a programme
type GeneratedDocument struct {
	ID          int64     `json:"id"`
	ProgrammeID int64     `json:"programmeId"`
	DocType     string    `json:"docType"`
	FileName    string    `json:"fileName"`
	MimeType    string    `json:"mimeType"`
	ByteSize    int64     `json:"byteSize"`
	CreatedAt   time.Time `json:"createdAt"`
}
