package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/heat-tracker/constants"
)

// Sheet represents a stored heat sheet for data transfer between layers.
type Sheet struct {
	ID          uuid.UUID             `json:"id"`
	ContentHash []byte                `json:"-"`
	SourcePath  string                `json:"source_path"`
	SourceType  string                `json:"source_type"`
	Strategy    string                `json:"strategy"`
	Metadata    Metadata              `json:"metadata"`
	HeatCount   int                   `json:"heat_count"`
	DiscardedA  int                   `json:"discarded_a"`
	DiscardedB  int                   `json:"discarded_b"`
	Status      constants.SheetStatus `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
}

// NeedsReview reports whether the sheet was flagged during parsing.
func (s *Sheet) NeedsReview() bool {
	return s.Status == constants.SheetStatusReview
}
