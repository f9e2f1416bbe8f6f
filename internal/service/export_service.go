package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const historySheet = "Riwayat Donor"

var historyExportHeader = []string{
	"Tanggal",
	"Waktu",
	"Lokasi",
	"Nama",
	"Email",
	"Telepon",
	"Golongan Darah",
	"Status",
}

// HistoryExportRow is one donation rendered for a spreadsheet.
type HistoryExportRow struct {
	Date       string
	Time       string
	Location   string
	Name       string
	Email      string
	Phone      string
	BloodGroup string
	Status     string
}

func (r HistoryExportRow) values() []interface{} {
	return []interface{}{r.Date, r.Time, r.Location, r.Name, r.Email, r.Phone, r.BloodGroup, r.Status}
}

type ExportService interface {
	HistoriesWorkbook(rows []HistoryExportRow) ([]byte, error)
}

type exportService struct{}

func NewExportService() ExportService {
	return &exportService{}
}

// HistoriesWorkbook renders the rows as an XLSX file with a bold header row.
func (s *exportService) HistoriesWorkbook(rows []HistoryExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(historySheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#FDE2E2"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(historyExportHeader))
	for i, h := range historyExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(historySheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, err := excelize.CoordinatesToCellName(len(historyExportHeader), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(historySheet, "A1", lastCol, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := row.values()
		if err := f.SetSheetRow(historySheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	widths := []float64{14, 10, 40, 25, 30, 16, 16, 12}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(historySheet, col, col, width); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
