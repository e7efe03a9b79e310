package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjperalta/edufees-api/internal/format"
	"github.com/sjperalta/edufees-api/internal/ledger"
	"github.com/sjperalta/edufees-api/internal/models"
	"github.com/xuri/excelize/v2"
)

// Content types for statement downloads
const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

var statementHeader = []string{"Receipt", "Course", "Course Fees", "Paid", "Due", "Date", "Status"}

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// Render produces a fee statement in the requested format and returns the
// file contents, a download file name and the content type
func (s *ExportService) Render(details *FeeDetails, statementFormat string) ([]byte, string, string, error) {
	var (
		data        []byte
		contentType string
		err         error
	)

	switch strings.ToLower(statementFormat) {
	case models.StatementFormatCSV:
		data, err = s.renderCSV(details)
		contentType = ContentTypeCSV
	case models.StatementFormatXLSX:
		data, err = s.renderXLSX(details)
		contentType = ContentTypeXLSX
	case models.StatementFormatPDF:
		data, err = s.renderPDF(details)
		contentType = ContentTypePDF
	default:
		return nil, "", "", fmt.Errorf("%w: %q", ErrInvalidFormat, statementFormat)
	}
	if err != nil {
		return nil, "", "", err
	}

	return data, statementFilename(details, strings.ToLower(statementFormat)), contentType, nil
}

func statementFilename(details *FeeDetails, ext string) string {
	name := "fee_statement"
	if details.Student.ContactID != "" {
		name += "_" + details.Student.ContactID
	}
	return fmt.Sprintf("%s_%s.%s", name, time.Now().Format("2006-01-02"), ext)
}

func statementRow(e ledger.LedgerEntry) []string {
	return []string{
		e.ReceiptNumber,
		e.Course,
		format.Currency(e.CourseFees),
		format.Currency(e.PaidAmount),
		format.Currency(e.SettledBalance),
		format.Date(e.Date, e.DateValid),
		string(e.Status),
	}
}

func summaryRows(sum ledger.Summary) [][]string {
	return [][]string{
		{"Total Amount", format.Currency(sum.TotalAmount)},
		{"Total Paid", format.Currency(sum.TotalPaid)},
		{"Total Due", format.Currency(sum.TotalDue)},
		{"Payments", fmt.Sprintf("%d", sum.TotalPayments)},
		{"Current Balance", format.Currency(sum.CurrentBalance)},
	}
}

func (s *ExportService) renderCSV(details *FeeDetails) ([]byte, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Fee Statement", details.Student.Name, details.Student.ContactID, time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})

	_ = writer.Write(statementHeader)
	for _, e := range details.NewestFirst() {
		_ = writer.Write(statementRow(e))
	}
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Summary"})
	for _, row := range summaryRows(details.Summary) {
		_ = writer.Write(row)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv statement: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ExportService) renderXLSX(details *FeeDetails) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Statement"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Fee Statement")
	_ = f.SetCellValue(sheet, "B1", details.Student.Name)
	_ = f.SetCellValue(sheet, "C1", details.Student.ContactID)

	for col, title := range statementHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 3)
		_ = f.SetCellValue(sheet, cell, title)
	}
	_ = f.SetCellStyle(sheet, "A3", "G3", headerStyle)

	row := 4
	for _, e := range details.NewestFirst() {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.ReceiptNumber)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.Course)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), models.Amount(e.CourseFees))
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), models.Amount(e.PaidAmount))
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), models.Amount(e.SettledBalance))
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), format.Date(e.Date, e.DateValid))
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), string(e.Status))
		row++
	}

	row++
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Summary")
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), headerStyle)
	row++
	sum := details.Summary
	for _, item := range []struct {
		label string
		value interface{}
	}{
		{"Total Amount", models.Amount(sum.TotalAmount)},
		{"Total Paid", models.Amount(sum.TotalPaid)},
		{"Total Due", models.Amount(sum.TotalDue)},
		{"Payments", sum.TotalPayments},
		{"Current Balance", models.Amount(sum.CurrentBalance)},
	} {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.label)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.value)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx statement: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ExportService) renderPDF(details *FeeDetails) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Fee Statement")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 8, fmt.Sprintf("%s (%s)", details.Student.Name, details.Student.ContactID))
	pdf.Ln(12)

	widths := []float64{35, 70, 35, 35, 35, 30, 25}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(224, 224, 224)
	for i, title := range statementHeader {
		pdf.CellFormat(widths[i], 8, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, e := range details.NewestFirst() {
		for i, value := range statementRow(e) {
			align := "L"
			if i >= 2 && i <= 4 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 7, value, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, row := range summaryRows(details.Summary) {
		pdf.Cell(50, 7, row[0]+":")
		pdf.Cell(40, 7, row[1])
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf statement: %w", err)
	}
	return buf.Bytes(), nil
}
