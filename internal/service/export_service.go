package service

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// complaintExportHeader is the column layout of the admin export.
var complaintExportHeader = []string{
	"ID",
	"Student Name",
	"Department",
	"Issue Title",
	"Description",
	"Status",
	"Created At",
	"Updated At",
}

// ExportService renders complaint reports for administrators.
type ExportService struct{}

// NewExportService constructs the service.
func NewExportService() *ExportService {
	return &ExportService{}
}

// ComplaintsWorkbook builds an .xlsx workbook with one row per complaint.
func (s *ExportService) ComplaintsWorkbook(complaints []domain.Complaint) ([]byte, error) {
	f := excelize.NewFile()

	const sheetName = "Complaints"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &complaintExportHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(complaintExportHeader))
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, c := range complaints {
		row := []interface{}{
			c.ID,
			c.StudentName,
			c.Department,
			c.IssueTitle,
			c.Description,
			string(c.Status),
			c.CreatedAt.Format(time.RFC3339),
			c.UpdatedAt.Format(time.RFC3339),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	_ = f.Close()
	return buf.Bytes(), nil
}
