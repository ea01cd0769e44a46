package tag

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a clinical concept attached to questions. ConceptID is the
// stable identifier derived from the concept's surface form, so the
// same term always resolves to the same tag row.
type Tag struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	ConceptID   string    `db:"concept_id" json:"concept_id"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
