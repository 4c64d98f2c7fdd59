package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/heat-tracker/internal/entity"
	"github.com/joseph-ayodele/heat-tracker/internal/repository"
)

// SheetName is the worksheet holding the heats.
const SheetName = "Ritten"

const (
	headerRow    = 5
	firstDataRow = headerRow + 1
)

var headers = []string{
	"Rit",
	"A Nr", "A Naam", "A Cat", "A Land", "A PR", "A SB", "A Tijd",
	"B Nr", "B Naam", "B Cat", "B Land", "B PR", "B SB", "B Tijd",
}

// Service is a tiny façade over the sheet repository that produces XLSX bytes for exports.
type Service struct {
	sheets repository.SheetRepository
	logger *slog.Logger
}

func NewService(sheets repository.SheetRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{sheets: sheets, logger: logger}
}

// ExportSheetXLSX returns an XLSX workbook (as bytes) for a stored sheet.
func (s *Service) ExportSheetXLSX(ctx context.Context, sheetID uuid.UUID) ([]byte, error) {
	start := time.Now()

	sheet, err := s.sheets.GetByID(ctx, sheetID)
	if err != nil {
		return nil, fmt.Errorf("load sheet: %w", err)
	}
	heats, err := s.sheets.Heats(ctx, sheetID)
	if err != nil {
		return nil, fmt.Errorf("load heats: %w", err)
	}

	b, err := WriteHeatsXLSX(sheet.Metadata, heats)
	if err != nil {
		s.logger.Error("export.xlsx.failed", "sheet_id", sheetID.String(), "error", err)
		return nil, err
	}
	s.logger.Info("export.xlsx.ok",
		"sheet_id", sheetID.String(),
		"rows", len(heats),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return b, nil
}

// WriteHeatsXLSX renders metadata title rows, a header row and one row per heat.
func WriteHeatsXLSX(meta entity.Metadata, heats []entity.Heat) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	_ = f.SetCellValue(SheetName, "A1", meta.Event)
	_ = f.SetCellValue(SheetName, "A2", meta.Distance)
	_ = f.SetCellValue(SheetName, "A3", meta.Extras)

	headerCell, _ := excelize.CoordinatesToCellName(1, headerRow)
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := f.SetSheetRow(SheetName, headerCell, &row); err != nil {
		return nil, fmt.Errorf("xlsx header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(headers), headerRow)
		_ = f.SetCellStyle(SheetName, "A1", "A1", bold)
		_ = f.SetCellStyle(SheetName, headerCell, lastHeader, bold)
	}

	for i, h := range heats {
		cell, _ := excelize.CoordinatesToCellName(1, firstDataRow+i)
		values := append([]any{h.Number}, laneValues(h.LaneA)...)
		values = append(values, laneValues(h.LaneB)...)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx heat %d: %w", h.Number, err)
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(SheetName, "A", "A", 6)  // heat
	_ = f.SetColWidth(SheetName, "C", "C", 28) // lane A name
	_ = f.SetColWidth(SheetName, "J", "J", 28) // lane B name

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func laneValues(l entity.LaneRecord) []any {
	return []any{l.Bib, l.Name, l.Category, l.Nation, l.PersonalRecord, l.SeasonBest, l.RaceTime}
}
