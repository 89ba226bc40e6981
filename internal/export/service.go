// Package export renders a WorkOrderRecord as a formatted XLSX workbook:
// one styled sheet per record section plus extraction metadata.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/coalops/workorder-extractor/internal/extract"
)

const (
	darkBlue  = "1F3864"
	midBlue   = "2E5FAA"
	lightGray = "F5F5F5"
	white     = "FFFFFF"
	greenBG   = "E2EFDA"
	greenFG   = "375623"
	grayFG    = "888888"
	borderHex = "D0D0D0"
)

// Service renders records to XLSX bytes and files.
type Service struct {
	outputDir string
	logger    *slog.Logger
}

func NewService(outputDir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{outputDir: outputDir, logger: logger}
}

// styleSet holds the style IDs registered on one workbook.
type styleSet struct {
	banner   int
	header   int
	body     int
	bodyAlt  int
	bold     int
	boldAlt  int
	topWrap  int
	topAlt   int
	money    int
	moneyAlt int
	note     int
}

// SaveXLSX writes the workbook for rec next to the configured output dir and
// returns the file path. The name is derived from the source PDF plus a
// timestamp.
func (s *Service) SaveXLSX(rec extract.Record, pdfPath string) (string, error) {
	data, err := s.RenderXLSX(rec)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	outPath := filepath.Join(s.outputDir,
		fmt.Sprintf("%s_extracted_%s.xlsx", base, time.Now().Format("20060102_150405")))
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write xlsx: %w", err)
	}
	s.logger.Info("export.xlsx.saved", "path", outPath, "bytes", len(data))
	return outPath, nil
}

// RenderXLSX produces the workbook bytes for a record.
func (s *Service) RenderXLSX(rec extract.Record) ([]byte, error) {
	start := time.Now()
	f := excelize.NewFile()

	st, err := buildStyles(f)
	if err != nil {
		return nil, fmt.Errorf("register styles: %w", err)
	}

	if err := s.writeFieldSheet(f, st, "Header", "Work Order — Header Information",
		[]string{"Field", "Value"}, orderedPairs(rec.Header, extract.HeaderFieldOrder), []float64{32, 55}, false); err != nil {
		return nil, err
	}
	if err := s.writeServicesSheet(f, st, rec.Services); err != nil {
		return nil, err
	}
	if err := s.writeFieldSheet(f, st, "Pricing", "Pricing & Rate Information",
		[]string{"Field", "Value"}, orderedPairs(rec.Pricing, extract.PricingFieldOrder), []float64{32, 40}, true); err != nil {
		return nil, err
	}
	if err := s.writeTextBlocksSheet(f, st, rec.TextBlocks); err != nil {
		return nil, err
	}
	if err := s.writeChangeOrdersSheet(f, st, rec.ChangeOrders); err != nil {
		return nil, err
	}
	if err := s.writeMetadataSheet(f, st, rec.Metadata); err != nil {
		return nil, err
	}

	// Drop the default blank sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex("Header"); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"header_fields", len(rec.Header),
		"services", len(rec.Services),
		"change_orders", len(rec.ChangeOrders),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) writeFieldSheet(f *excelize.File, st styleSet, sheet, title string, cols []string, pairs [][2]string, widths []float64, highlightMoney bool) error {
	if err := newSheet(f, sheet, title, len(cols), st); err != nil {
		return err
	}
	writeHeaderRow(f, sheet, 2, cols, st)
	for i, pair := range pairs {
		row := 3 + i
		alt := i%2 == 0
		_ = f.SetRowHeight(sheet, row, 20)
		setCell(f, sheet, 1, row, pair[0], pickStyle(alt, st.bold, st.boldAlt))
		valStyle := pickStyle(alt, st.body, st.bodyAlt)
		if highlightMoney && isMoneyField(pair[0]) {
			valStyle = pickStyle(alt, st.money, st.moneyAlt)
		}
		setCell(f, sheet, 2, row, pair[1], valStyle)
	}
	setWidths(f, sheet, widths)
	return freezeHeader(f, sheet)
}

func (s *Service) writeServicesSheet(f *excelize.File, st styleSet, services []extract.ServiceLine) error {
	const sheet = "Services"
	cols := []string{"Sr No", "SrvLnNo", "SrvNo", "Brief Description", "Long Text", "Rate", "Unit"}
	if err := newSheet(f, sheet, "Service Line Items", len(cols), st); err != nil {
		return err
	}
	writeHeaderRow(f, sheet, 2, cols, st)
	for i, svc := range services {
		row := 3 + i
		alt := i%2 == 0
		_ = f.SetRowHeight(sheet, row, 60)
		style := pickStyle(alt, st.body, st.bodyAlt)
		values := []string{svc.SrNo, svc.ServiceLineNo, svc.ServiceNo, svc.BriefDescription, svc.LongText, svc.Rate, svc.Unit}
		for c, v := range values {
			setCell(f, sheet, c+1, row, v, style)
		}
	}
	setWidths(f, sheet, []float64{8, 10, 14, 30, 65, 10, 22})
	return freezeHeader(f, sheet)
}

func (s *Service) writeTextBlocksSheet(f *excelize.File, st styleSet, blocks map[string]string) error {
	const sheet = "Text Blocks"
	if err := newSheet(f, sheet, "Extracted Text Blocks", 2, st); err != nil {
		return err
	}
	writeHeaderRow(f, sheet, 2, []string{"Section", "Content"}, st)
	for i, pair := range orderedPairs(blocks, extract.TextBlockOrder) {
		row := 3 + i
		alt := i%2 == 0
		_ = f.SetRowHeight(sheet, row, 80)
		setCell(f, sheet, 1, row, pair[0], pickStyle(alt, st.bold, st.boldAlt))
		setCell(f, sheet, 2, row, pair[1], pickStyle(alt, st.topWrap, st.topAlt))
	}
	setWidths(f, sheet, []float64{28, 120})
	return freezeHeader(f, sheet)
}

func (s *Service) writeChangeOrdersSheet(f *excelize.File, st styleSet, orders []extract.ChangeOrder) error {
	const sheet = "Change Orders"
	cols := []string{"C/O Date", "Amendment Type", "Description", "New Validity", "Ceiling Change"}
	if err := newSheet(f, sheet, "Contract Change Orders (Amendments)", len(cols), st); err != nil {
		return err
	}
	writeHeaderRow(f, sheet, 2, cols, st)
	if len(orders) == 0 {
		setCell(f, sheet, 1, 3, "No change orders found in document", st.note)
	}
	for i, co := range orders {
		row := 3 + i
		alt := i%2 == 0
		_ = f.SetRowHeight(sheet, row, 45)
		style := pickStyle(alt, st.body, st.bodyAlt)
		values := []string{co.Date, co.AmendmentType, co.Description, co.NewValidity, co.CeilingChange}
		for c, v := range values {
			setCell(f, sheet, c+1, row, v, style)
		}
	}
	setWidths(f, sheet, []float64{14, 22, 80, 16, 20})
	return freezeHeader(f, sheet)
}

func (s *Service) writeMetadataSheet(f *excelize.File, st styleSet, meta extract.Metadata) error {
	const sheet = "Metadata"
	if err := newSheet(f, sheet, "Extraction Metadata", 2, st); err != nil {
		return err
	}
	writeHeaderRow(f, sheet, 2, []string{"Property", "Value"}, st)
	rows := [][2]string{
		{"Source PDF", filepath.Base(meta.SourceFile)},
		{"Extraction Time", meta.ExtractedAt},
		{"Layout Model", meta.Model},
		{"Pages Analyzed", fmt.Sprintf("%d", meta.Pages)},
		{"Paragraphs", fmt.Sprintf("%d", meta.Paragraphs)},
		{"KV Pairs Found", fmt.Sprintf("%d", meta.KVPairs)},
		{"Tables Found", fmt.Sprintf("%d", meta.Tables)},
	}
	for i, pair := range rows {
		row := 3 + i
		alt := i%2 == 0
		_ = f.SetRowHeight(sheet, row, 20)
		setCell(f, sheet, 1, row, pair[0], pickStyle(alt, st.bold, st.boldAlt))
		setCell(f, sheet, 2, row, pair[1], pickStyle(alt, st.body, st.bodyAlt))
	}
	setWidths(f, sheet, []float64{28, 50})
	return nil
}

// newSheet creates a sheet with gridlines hidden and the merged banner row.
func newSheet(f *excelize.File, sheet, title string, numCols int, st styleSet) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("new sheet %s: %w", sheet, err)
	}
	showGrid := false
	if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{ShowGridLines: &showGrid}); err != nil {
		return fmt.Errorf("sheet view %s: %w", sheet, err)
	}
	_ = f.SetRowHeight(sheet, 1, 30)
	last, _ := excelize.CoordinatesToCellName(numCols, 1)
	if err := f.MergeCell(sheet, "A1", last); err != nil {
		return fmt.Errorf("merge banner %s: %w", sheet, err)
	}
	setCell(f, sheet, 1, 1, title, st.banner)
	return nil
}

func writeHeaderRow(f *excelize.File, sheet string, row int, headers []string, st styleSet) {
	_ = f.SetRowHeight(sheet, row, 20)
	for i, h := range headers {
		setCell(f, sheet, i+1, row, h, st.header)
	}
}

func setCell(f *excelize.File, sheet string, col, row int, value string, style int) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	_ = f.SetCellValue(sheet, cell, value)
	_ = f.SetCellStyle(sheet, cell, cell, style)
}

func setWidths(f *excelize.File, sheet string, widths []float64) {
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}
}

func freezeHeader(f *excelize.File, sheet string) error {
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      2,
		TopLeftCell: "A3",
		ActivePane:  "bottomLeft",
	})
}

func pickStyle(alt bool, base, altStyle int) int {
	if alt {
		return altStyle
	}
	return base
}

func isMoneyField(field string) bool {
	lower := strings.ToLower(field)
	for _, kw := range []string{"price", "rate", "ceiling", "value"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func buildStyles(f *excelize.File) (styleSet, error) {
	var st styleSet
	var err error

	thin := []excelize.Border{
		{Type: "top", Style: 1, Color: borderHex},
		{Type: "bottom", Style: 1, Color: borderHex},
		{Type: "left", Style: 1, Color: borderHex},
		{Type: "right", Style: 1, Color: borderHex},
	}
	left := &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true}
	top := &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true}

	if st.banner, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Arial", Bold: true, Size: 13, Color: white},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{midBlue}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return st, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Arial", Bold: true, Size: 10, Color: white},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{darkBlue}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thin,
	}); err != nil {
		return st, err
	}

	bodyStyle := func(bg string, bold bool, fg string, align *excelize.Alignment) *excelize.Style {
		if fg == "" {
			fg = "000000"
		}
		return &excelize.Style{
			Font:      &excelize.Font{Family: "Arial", Bold: bold, Size: 10, Color: fg},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{bg}},
			Alignment: align,
			Border:    thin,
		}
	}

	if st.body, err = f.NewStyle(bodyStyle(white, false, "", left)); err != nil {
		return st, err
	}
	if st.bodyAlt, err = f.NewStyle(bodyStyle(lightGray, false, "", left)); err != nil {
		return st, err
	}
	if st.bold, err = f.NewStyle(bodyStyle(white, true, "", left)); err != nil {
		return st, err
	}
	if st.boldAlt, err = f.NewStyle(bodyStyle(lightGray, true, "", left)); err != nil {
		return st, err
	}
	if st.topWrap, err = f.NewStyle(bodyStyle(white, false, "", top)); err != nil {
		return st, err
	}
	if st.topAlt, err = f.NewStyle(bodyStyle(lightGray, false, "", top)); err != nil {
		return st, err
	}
	if st.money, err = f.NewStyle(bodyStyle(greenBG, true, greenFG, left)); err != nil {
		return st, err
	}
	if st.moneyAlt, err = f.NewStyle(bodyStyle(greenBG, true, greenFG, left)); err != nil {
		return st, err
	}
	if st.note, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Arial", Italic: true, Size: 10, Color: grayFG},
	}); err != nil {
		return st, err
	}
	return st, nil
}
