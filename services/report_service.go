package services

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/mdferoz/electricity-board-api/models"
	"github.com/mdferoz/electricity-board-api/store"
)

// Report is the admin summary over all complaints.
type Report struct {
	TotalComplaints  int                 `json:"total_complaints"`
	OpenComplaints   int                 `json:"open_complaints"`
	InProgress       int                 `json:"in_progress"`
	Resolved         int                 `json:"resolved"`
	CategoryCounts   map[string]int      `json:"category_counts"`
	RecentComplaints []*models.Complaint `json:"recent_complaints"`
}

// BuildReport computes status and category counts plus the five most recent
// complaints by submission date.
func BuildReport() (*Report, error) {
	complaints, err := store.Complaints().List()
	if err != nil {
		return nil, err
	}

	report := &Report{
		TotalComplaints: len(complaints),
		CategoryCounts:  make(map[string]int),
	}
	for _, c := range complaints {
		switch c.Status {
		case models.StatusOpen:
			report.OpenComplaints++
		case models.StatusInProgress:
			report.InProgress++
		case models.StatusResolved:
			report.Resolved++
		}
		if c.Category != "" {
			report.CategoryCounts[c.Category]++
		}
	}

	recent := make([]*models.Complaint, len(complaints))
	copy(recent, complaints)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].SubmissionDate > recent[j].SubmissionDate
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	report.RecentComplaints = recent
	return report, nil
}

// ExportComplaintsWorkbook renders all complaints into a downloadable
// workbook: the full table plus status and category summary sheets, each
// with a chart.
func ExportComplaintsWorkbook() ([]byte, error) {
	complaints, err := store.Complaints().List()
	if err != nil {
		return nil, err
	}
	report, err := BuildReport()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const mainSheet = "All Complaints"
	if err := f.SetSheetName("Sheet1", mainSheet); err != nil {
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}
	for i, col := range models.ComplaintColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(mainSheet, cell, col); err != nil {
			return nil, fmt.Errorf("export: header: %w", err)
		}
	}
	for r, c := range complaints {
		for i, value := range c.Row() {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellStr(mainSheet, cell, value); err != nil {
				return nil, fmt.Errorf("export: row %d: %w", r, err)
			}
		}
	}

	statusRows := [][]interface{}{
		{models.StatusOpen, report.OpenComplaints},
		{models.StatusInProgress, report.InProgress},
		{models.StatusResolved, report.Resolved},
	}
	if err := writeSummarySheet(f, "Status Summary", "Status", statusRows); err != nil {
		return nil, err
	}
	if err := addSummaryChart(f, "Status Summary", excelize.Pie, "Complaints by Status", len(statusRows)); err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(report.CategoryCounts))
	for cat := range report.CategoryCounts {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	categoryRows := make([][]interface{}, 0, len(categories))
	for _, cat := range categories {
		categoryRows = append(categoryRows, []interface{}{cat, report.CategoryCounts[cat]})
	}
	if err := writeSummarySheet(f, "Category Summary", "Category", categoryRows); err != nil {
		return nil, err
	}
	if len(categoryRows) > 0 {
		if err := addSummaryChart(f, "Category Summary", excelize.Col, "Complaints by Category", len(categoryRows)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, sheet, label string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("export: create %s: %w", sheet, err)
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{label, "Count"}); err != nil {
		return fmt.Errorf("export: %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: %s row %d: %w", sheet, i, err)
		}
	}
	return nil
}

func addSummaryChart(f *excelize.File, sheet string, chartType excelize.ChartType, title string, rows int) error {
	if rows == 0 {
		return nil
	}
	err := f.AddChart(sheet, "D2", &excelize.Chart{
		Type: chartType,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", sheet),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, rows+1),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", sheet, rows+1),
		}},
		Title: []excelize.RichTextRun{{Text: title}},
	})
	if err != nil {
		return fmt.Errorf("export: %s chart: %w", sheet, err)
	}
	return nil
}
