// Package report renders the finished run into a formatted xlsx workbook:
// one row per processed campaign plus summary and breakdown sheets.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/campaign"
	"github.com/meganfung38/SFDC-Campaign-Clarity/internal/stats"
)

const (
	descriptionsSheet = "Campaign Descriptions"
	summarySheet      = "Summary"
	channelSheet      = "Channel Breakdown"
	verticalSheet     = "Vertical Breakdown"

	headerFillColor = "366092"
	maxColWidth     = 50
)

// Row is one processed campaign ready for the report.
type Row struct {
	Record      campaign.Record
	ABMClass    string // set on ABM runs only
	Strategy    string
	Prompt      string
	Description string
	Succeeded   bool
}

// Writer renders rows and a summary into a timestamped workbook under a fixed
// output directory.
type Writer struct {
	outputDir string
	logger    zerolog.Logger
}

func NewWriter(outputDir string, logger zerolog.Logger) *Writer {
	if outputDir == "" {
		outputDir = "."
	}
	return &Writer{outputDir: outputDir, logger: logger}
}

type column struct {
	header string
	value  func(Row) any
}

func columns(abm bool) []column {
	cols := []column{
		{"AI_Sales_Description", func(r Row) any { return r.Description }},
		{"AI_Prompt", func(r Row) any { return r.Prompt }},
		{"Prompt_Strategy", func(r Row) any { return r.Strategy }},
	}
	if abm {
		cols = append(cols, column{"ABM_Classification", func(r Row) any { return r.ABMClass }})
	}
	return append(cols, []column{
		{"Description", func(r Row) any { return r.Record.Description }},
		{"Short_Description_for_Sales__c", func(r Row) any { return r.Record.ShortDescriptionForSales }},
		{"Id", func(r Row) any { return r.Record.ID }},
		{"Name", func(r Row) any { return r.Record.Name }},
		{"BMID__c", func(r Row) any { return r.Record.BMID }},
		{"Intended_Product__c", func(r Row) any { return r.Record.IntendedProduct }},
		{"Channel__c", func(r Row) any { return r.Record.Channel }},
		{"Sub_Channel__c", func(r Row) any { return r.Record.SubChannel }},
		{"Sub_Channel_Detail__c", func(r Row) any { return r.Record.SubChannelDetail }},
		{"Type", func(r Row) any { return r.Record.Type }},
		{"Integrated_Marketing__c", func(r Row) any { return r.Record.IntegratedMarketing }},
		{"Intended_Country__c", func(r Row) any { return r.Record.IntendedCountry }},
		{"Marketing_Message__c", func(r Row) any { return r.Record.MarketingMessage }},
		{"Non_Attributable__c", func(r Row) any { return r.Record.NonAttributable }},
		{"Program__c", func(r Row) any { return r.Record.Program }},
		{"TCP_Campaign__c", func(r Row) any { return r.Record.TCPCampaign }},
		{"TCP_Program__c", func(r Row) any { return r.Record.TCPProgram }},
		{"TCP_Theme__c", func(r Row) any { return r.Record.TCPTheme }},
		{"Territory__c", func(r Row) any { return r.Record.Territory }},
		{"Vendor__c", func(r Row) any { return r.Record.Vendor }},
		{"Vertical__c", func(r Row) any { return r.Record.Vertical }},
		{"Recent_Member_Count", func(r Row) any { return r.Record.MemberCount }},
	}...)
}

// WriteReport renders the workbook and returns its path. Any write failure is
// an error; a partial report file must never be left looking complete.
func (w *Writer) WriteReport(rows []Row, summary stats.Summary, preview bool) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("campaign_descriptions_%s.xlsx", timestamp)
	if preview {
		name = fmt.Sprintf("campaign_descriptions_PREVIEW_%s.xlsx", timestamp)
	}
	path := filepath.Join(w.outputDir, name)

	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	abm := false
	for _, r := range rows {
		if r.ABMClass != "" {
			abm = true
			break
		}
	}

	if err := w.writeDescriptions(f, rows, abm); err != nil {
		return "", err
	}
	if err := w.writeSummary(f, summary); err != nil {
		return "", err
	}
	if err := writeBreakdown(f, channelSheet, "Channel", summary.ChannelCounts); err != nil {
		return "", err
	}
	if err := writeBreakdown(f, verticalSheet, "Vertical", summary.VerticalCounts); err != nil {
		return "", err
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}

	w.logger.Info().Str("path", path).Int("rows", len(rows)).Msg("report saved")
	return path, nil
}

func (w *Writer) writeDescriptions(f *excelize.File, rows []Row, abm bool) error {
	if err := f.SetSheetName("Sheet1", descriptionsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	cols := columns(abm)
	widths := make([]int, len(cols))

	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(descriptionsSheet, cell, col.header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		widths[i] = len(col.header)
	}

	for ri, row := range rows {
		for ci, col := range cols {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return fmt.Errorf("row cell: %w", err)
			}
			v := col.value(row)
			if err := f.SetCellValue(descriptionsSheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", ri+1, err)
			}
			if n := len(fmt.Sprint(v)); n > widths[ci] {
				widths[ci] = n
			}
		}
	}

	if err := styleHeader(f, descriptionsSheet, len(cols)); err != nil {
		return err
	}

	for i, width := range widths {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		adjusted := float64(width + 2)
		if adjusted > maxColWidth {
			adjusted = maxColWidth
		}
		if err := f.SetColWidth(descriptionsSheet, colName, colName, adjusted); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return nil
}

func (w *Writer) writeSummary(f *excelize.File, s stats.Summary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	metrics := []struct {
		name  string
		value any
	}{
		{"Run ID", s.RunID},
		{"Total Campaigns Queried", s.Queried},
		{"Total Campaigns Processed", s.Processed},
		{"Campaigns with AI Descriptions", s.Succeeded},
		{"Generation Errors", s.Errored},
		{"Processing Success Rate", fmt.Sprintf("%.1f%%", s.SuccessRate*100)},
		{"Average Description Length", fmt.Sprintf("%.1f chars", s.AvgDescriptionLen)},
		{"Unique Channels", s.DistinctChannels},
		{"Unique Verticals", s.DistinctVerticals},
		{"Unique Territories", s.DistinctTerritories},
		{"Attribution Tracked", s.Attributable},
		{"Non Attributable", s.NonAttributable},
		{"Sales Generated", s.SalesGenerated},
		{"Marketing Sourced", s.MarketingSourced},
		{"Elapsed Seconds", fmt.Sprintf("%.1f", s.ElapsedSeconds)},
	}

	if err := f.SetCellValue(summarySheet, "A1", "Metric"); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	if err := f.SetCellValue(summarySheet, "B1", "Value"); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for i, m := range metrics {
		row := i + 2
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), m.name); err != nil {
			return fmt.Errorf("write summary metric: %w", err)
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), m.value); err != nil {
			return fmt.Errorf("write summary value: %w", err)
		}
	}

	if err := styleHeader(f, summarySheet, 2); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 32); err != nil {
		return fmt.Errorf("set summary width: %w", err)
	}
	return f.SetColWidth(summarySheet, "B", "B", 24)
}

func writeBreakdown(f *excelize.File, sheet, label string, counts map[string]int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheet, err)
	}

	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	if err := f.SetCellValue(sheet, "A1", label); err != nil {
		return fmt.Errorf("write breakdown header: %w", err)
	}
	if err := f.SetCellValue(sheet, "B1", "Count"); err != nil {
		return fmt.Errorf("write breakdown header: %w", err)
	}
	for i, e := range entries {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.name); err != nil {
			return fmt.Errorf("write breakdown row: %w", err)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.count); err != nil {
			return fmt.Errorf("write breakdown row: %w", err)
		}
	}

	if err := styleHeader(f, sheet, 2); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "A", 32)
}

// styleHeader applies the bold white-on-blue header row used on every sheet.
func styleHeader(f *excelize.File, sheet string, cols int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return fmt.Errorf("header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	return nil
}
