package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hqplabs/idcard-ocr/internal/corpus"
)

// Service produces XLSX bytes from the stored corpus for offline review.
type Service struct {
	store  corpus.Corpus
	logger *slog.Logger
}

func NewService(store corpus.Corpus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// ExportXLSX returns an XLSX workbook with one row per stored record. If from
// or to are set, rows outside the (inclusive) window are skipped.
func (s *Service) ExportXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	recs, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Records"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet so the workbook has exactly one.
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Extracted At",
		"User ID",
		"Name",
		"Date of Birth",
		"Gender",
		"ID Number",
		"VID Number",
		"Address",
		"Postal Code",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	exported := 0
	for _, r := range recs {
		at := r.ExtractedAt.UTC()
		if from != nil && at.Before(*from) {
			continue
		}
		if to != nil && at.After(*to) {
			continue
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, at.Format(time.RFC3339))
		write(2, r.UserID)
		write(3, r.Name)
		write(4, r.DateOfBirth)
		write(5, string(r.Gender))
		write(6, r.IDNumber)
		write(7, r.VIDNumber)
		write(8, truncate(r.Address, 140))
		write(9, r.PostalCode)
		row++
		exported++
	}

	_ = f.SetColWidth(sheet, "A", "A", 22)
	_ = f.SetColWidth(sheet, "C", "C", 24)
	_ = f.SetColWidth(sheet, "F", "G", 20)
	_ = f.SetColWidth(sheet, "H", "H", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", exported,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
