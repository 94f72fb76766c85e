package services

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mdferoz/electricity-board-api/models"
	"github.com/mdferoz/electricity-board-api/store"
)

func uploadWorkbook(t *testing.T, header []string, rows [][]string) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, col := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, col))
	}
	for r, row := range rows {
		for i, value := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellStr("Sheet1", cell, value))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestImportComplaintsMergesByID(t *testing.T) {
	store.Init(t.TempDir())
	existing := &models.Complaint{
		UserID:         "UID0001",
		Category:       "Power Outage",
		Description:    "original row",
		Location:       "Sector 7",
		SubmissionDate: "2026-02-01 09:00:00",
		Status:         models.StatusOpen,
	}
	existingID, err := store.Complaints().Create(existing)
	require.NoError(t, err)

	header := []string{"complaint_id", "user_id", "category", "description", "location", "submission_date", "status"}
	upload := uploadWorkbook(t, header, [][]string{
		{existingID, "UID0002", "Billing Issue", "conflicting row", "Sector 9", "2026-02-02 09:00:00", models.StatusOpen},
		{"CID0050", "UID0002", "Meter Fault", "new row", "Sector 9", "2026-02-03 09:00:00", models.StatusResolved},
	})

	added, err := ImportComplaints(upload)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	all, err := store.Complaints().List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "original row", all[0].Description, "conflicting upload row is skipped, not applied")
	assert.Equal(t, "CID0050", all[1].ComplaintID)
	assert.Equal(t, models.StatusResolved, all[1].Status)
}

func TestImportComplaintsColumnOrderDoesNotMatter(t *testing.T) {
	store.Init(t.TempDir())

	header := []string{"status", "submission_date", "location", "description", "category", "user_id", "complaint_id"}
	upload := uploadWorkbook(t, header, [][]string{
		{models.StatusOpen, "2026-02-01 09:00:00", "Sector 7", "shuffled columns", "Power Outage", "UID0001", "CID0001"},
	})

	added, err := ImportComplaints(upload)
	require.NoError(t, err)
	require.Equal(t, 1, added)

	imported, err := store.Complaints().FindByID("CID0001")
	require.NoError(t, err)
	assert.Equal(t, "shuffled columns", imported.Description)
	assert.Equal(t, "Power Outage", imported.Category)
}

func TestImportComplaintsMissingRequiredColumn(t *testing.T) {
	store.Init(t.TempDir())

	header := []string{"complaint_id", "user_id", "category", "description", "location", "submission_date"}
	upload := uploadWorkbook(t, header, nil)

	_, err := ImportComplaints(upload)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrCorruptData))
	assert.Contains(t, err.Error(), "status")
}

func TestImportComplaintsRejectsGarbage(t *testing.T) {
	store.Init(t.TempDir())

	_, err := ImportComplaints(bytes.NewReader([]byte("not a workbook")))
	assert.True(t, errors.Is(err, store.ErrCorruptData))
}

func TestBackupTablesSnapshotsEveryTable(t *testing.T) {
	dataDir := t.TempDir()
	backupDir := filepath.Join(t.TempDir(), "backups")
	store.Init(dataDir)

	_, err := store.Users().Create(newBackupUser())
	require.NoError(t, err)
	_, err = store.Technicians().Create(&models.Technician{
		FullName: "Tech", Aadhar: "222233334444", Email: "tech@example.com",
		Phone: "9000000002", Address: "Field Office", PasswordHash: "x",
	})
	require.NoError(t, err)
	_, err = store.Complaints().Create(&models.Complaint{
		UserID: "UID0001", Category: "Power Outage",
		SubmissionDate: "2026-02-01 09:00:00", Status: models.StatusOpen,
	})
	require.NoError(t, err)

	timestamp, err := BackupTables(dataDir, backupDir)
	require.NoError(t, err)
	require.NotEmpty(t, timestamp)

	for _, name := range []string{"users", "technician", "complaints"} {
		path := filepath.Join(backupDir, name+"_backup_"+timestamp+".xlsx")
		info, err := os.Stat(path)
		require.NoError(t, err, "backup of %s table", name)
		assert.Positive(t, info.Size())
	}

	src, err := os.ReadFile(filepath.Join(dataDir, store.ComplaintsFile))
	require.NoError(t, err)
	dst, err := os.ReadFile(filepath.Join(backupDir, "complaints_backup_"+timestamp+".xlsx"))
	require.NoError(t, err)
	assert.Equal(t, src, dst, "backup is a byte-for-byte image")
}

func TestBackupTablesSkipsAbsentTables(t *testing.T) {
	dataDir := t.TempDir()
	backupDir := filepath.Join(t.TempDir(), "backups")
	store.Init(dataDir)

	timestamp, err := BackupTables(dataDir, backupDir)
	require.NoError(t, err)

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no tables on disk, nothing to copy for %s", timestamp)
}

func newBackupUser() *models.User {
	return &models.User{
		FullName:         "Backup User",
		Aadhar:           "111122223333",
		Email:            "backup@example.com",
		Phone:            "9000000001",
		Address:          "Sector 7",
		PasswordHash:     "x",
		Role:             models.RoleCustomer,
		RegistrationDate: "2026-02-01 09:00:00",
	}
}
