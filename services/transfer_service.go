package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mdferoz/electricity-board-api/config"
	"github.com/mdferoz/electricity-board-api/models"
	"github.com/mdferoz/electricity-board-api/store"
)

// importRequiredColumns is the fixed column set an uploaded complaints
// workbook must carry. Any other complaint column is optional and defaults
// to empty.
var importRequiredColumns = []string{
	"complaint_id", "user_id", "category", "description",
	"location", "submission_date", "status",
}

// ImportComplaints parses an uploaded complaints workbook and merges its
// rows into the complaints table by complaint_id, skipping rows whose id
// already exists. Returns how many rows were added.
func ImportComplaints(r io.Reader) (int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot parse uploaded workbook: %v", store.ErrCorruptData, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) == 0 {
		return 0, fmt.Errorf("%w: uploaded workbook has no rows", store.ErrCorruptData)
	}

	// Column positions by header name; order in the upload does not matter.
	position := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		position[strings.TrimSpace(col)] = i
	}
	for _, required := range importRequiredColumns {
		if _, ok := position[required]; !ok {
			return 0, fmt.Errorf("%w: required column %q not found in uploaded workbook",
				store.ErrCorruptData, required)
		}
	}

	cell := func(row []string, col string) string {
		i, ok := position[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	complaints := make([]*models.Complaint, 0, len(rows)-1)
	for _, row := range rows[1:] {
		complaints = append(complaints, &models.Complaint{
			ComplaintID:     cell(row, "complaint_id"),
			UserID:          cell(row, "user_id"),
			Category:        cell(row, "category"),
			Description:     cell(row, "description"),
			Location:        cell(row, "location"),
			SubmissionDate:  cell(row, "submission_date"),
			Status:          cell(row, "status"),
			AssignedTo:      cell(row, "assigned_to"),
			TechnicianName:  cell(row, "technician_name"),
			AttachmentPath:  cell(row, "attachment_path"),
			ResolutionNotes: cell(row, "resolution_notes"),
			ResolutionDate:  cell(row, "resolution_date"),
			VoiceComplaint:  strings.EqualFold(cell(row, "voice_complaint"), "true"),
		})
	}

	added, err := store.Complaints().Merge(complaints)
	if err != nil {
		return 0, err
	}
	config.Logger().Info("complaints imported",
		zap.Int("added", added),
		zap.Int("uploaded", len(complaints)))
	return added, nil
}

// BackupTables snapshot-copies every table to the backup directory under a
// timestamped suffix. The files are copied byte-for-byte so a backup is an
// exact image of the live table. Returns the timestamp used.
func BackupTables(dataDir, backupDir string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create backup dir: %v", store.ErrIO, err)
	}

	tables := map[string]string{
		store.ComplaintsFile:  "complaints",
		store.UsersFile:       "users",
		store.TechniciansFile: "technician",
	}
	for file, name := range tables {
		src := filepath.Join(dataDir, file)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		dst := filepath.Join(backupDir, fmt.Sprintf("%s_backup_%s.xlsx", name, timestamp))
		if err := copyFile(src, dst); err != nil {
			return "", fmt.Errorf("%w: backup %s: %v", store.ErrIO, file, err)
		}
	}

	config.Logger().Info("backup created", zap.String("timestamp", timestamp))
	return timestamp, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
