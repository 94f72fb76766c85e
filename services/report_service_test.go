package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mdferoz/electricity-board-api/models"
	"github.com/mdferoz/electricity-board-api/store"
)

func seedReportComplaints(t *testing.T) {
	t.Helper()
	store.Init(t.TempDir())

	seed := []struct {
		category string
		status   string
		date     string
	}{
		{"Power Outage", models.StatusOpen, "2026-02-01 09:00:00"},
		{"Power Outage", models.StatusInProgress, "2026-02-02 09:00:00"},
		{"Billing Issue", models.StatusResolved, "2026-02-03 09:00:00"},
		{"Voltage Fluctuation", models.StatusOpen, "2026-02-04 09:00:00"},
		{"Power Outage", models.StatusResolved, "2026-02-05 09:00:00"},
		{"Meter Fault", models.StatusOpen, "2026-02-06 09:00:00"},
	}
	for _, s := range seed {
		_, err := store.Complaints().Create(&models.Complaint{
			UserID:         "UID0001",
			Category:       s.category,
			Description:    "seed",
			Location:       "Sector 7",
			SubmissionDate: s.date,
			Status:         s.status,
		})
		require.NoError(t, err)
	}
}

func TestBuildReport(t *testing.T) {
	seedReportComplaints(t)

	report, err := BuildReport()
	require.NoError(t, err)

	assert.Equal(t, 6, report.TotalComplaints)
	assert.Equal(t, 3, report.OpenComplaints)
	assert.Equal(t, 1, report.InProgress)
	assert.Equal(t, 2, report.Resolved)
	assert.Equal(t, map[string]int{
		"Power Outage":        3,
		"Billing Issue":       1,
		"Voltage Fluctuation": 1,
		"Meter Fault":         1,
	}, report.CategoryCounts)

	require.Len(t, report.RecentComplaints, 5)
	assert.Equal(t, "2026-02-06 09:00:00", report.RecentComplaints[0].SubmissionDate)
	assert.Equal(t, "2026-02-02 09:00:00", report.RecentComplaints[4].SubmissionDate)
}

func TestBuildReportEmptyStore(t *testing.T) {
	store.Init(t.TempDir())

	report, err := BuildReport()
	require.NoError(t, err)
	assert.Zero(t, report.TotalComplaints)
	assert.Empty(t, report.RecentComplaints)
	assert.Empty(t, report.CategoryCounts)
}

func TestExportComplaintsWorkbook(t *testing.T) {
	seedReportComplaints(t)

	data, err := ExportComplaintsWorkbook()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"All Complaints", "Status Summary", "Category Summary"},
		f.GetSheetList())

	rows, err := f.GetRows("All Complaints")
	require.NoError(t, err)
	require.Len(t, rows, 7, "header plus one row per complaint")
	assert.Equal(t, models.ComplaintColumns, rows[0][:len(models.ComplaintColumns)])

	statusRows, err := f.GetRows("Status Summary")
	require.NoError(t, err)
	require.Len(t, statusRows, 4)
	assert.Equal(t, []string{models.StatusOpen, "3"}, statusRows[1][:2])
}

func TestExportComplaintsWorkbookEmptyStore(t *testing.T) {
	store.Init(t.TempDir())

	data, err := ExportComplaintsWorkbook()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("All Complaints")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
