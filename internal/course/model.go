package course

import (
	"time"

	"github.com/gofrs/uuid"
)

// Course is a teaching unit owned by exactly one user. EstimatedTime and
// MaterialsNeeded are optional free-text fields.
type Course struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	EstimatedTime   *string   `json:"estimatedTime" db:"estimated_time"`
	MaterialsNeeded *string   `json:"materialsNeeded" db:"materials_needed"`
	UserID          uuid.UUID `json:"userId" db:"user_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}
