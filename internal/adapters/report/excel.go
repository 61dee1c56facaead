package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"weddingplanner/internal/domain"
)

const (
	sheetName  = "Events"
	timeLayout = "2006-01-02 15:04"
)

type excelWriter struct{}

// NewExcelWriter returns an EventReportWriter producing .xlsx documents.
func NewExcelWriter() domain.EventReportWriter {
	return &excelWriter{}
}

func (w *excelWriter) WriteEvents(rows []domain.EventReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	header := []any{"Name", "Start", "End", "Address", "Organizers"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		values := []any{
			row.Name,
			row.StartDateTime.Format(timeLayout),
			row.EndDateTime.Format(timeLayout),
			row.Address,
			strings.Join(row.OrganizerEmails, ", "),
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
