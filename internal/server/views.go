package server

import (
	"github.com/joseph-ayodele/heat-tracker/internal/entity"
	"github.com/joseph-ayodele/heat-tracker/internal/parser"
)

// SheetView is the response document of ParseText and GetSheet.
type SheetView struct {
	Sheet        *entity.Sheet       `json:"sheet" yaml:"sheet"`
	Heats        []entity.Heat       `json:"heats" yaml:"heats"`
	Diagnostics  *parser.Diagnostics `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Deduplicated bool                `json:"deduplicated" yaml:"deduplicated"`
}

// SheetList is the response document of ListSheets.
type SheetList struct {
	Sheets []*entity.Sheet `json:"sheets" yaml:"sheets"`
}

// IngestReply is the response document of IngestFile and IngestDirectory.
type IngestReply struct {
	Queued  int `json:"queued"`
	Matched int `json:"matched"`
	Failed  int `json:"failed"`
}
