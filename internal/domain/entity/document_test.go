package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratedDocumentJSONKeys(t *testing.T) {
	doc := GeneratedDocument{
		ID:          1,
		ProgrammeID: 7,
		DocType:     DocTypeNoteOrder,
		FileName:    "note_order.pdf",
		MimeType:    "application/pdf",
		ByteSize:    1024,
		CreatedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var keys map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &keys))

	// same camelCase casing as the other API entities
	for _, key := range []string{"programmeId", "docType", "fileName", "mimeType", "byteSize", "createdAt"} {
		assert.Contains(t, keys, key)
	}
}
