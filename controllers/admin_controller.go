package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mdferoz/electricity-board-api/config"
	"github.com/mdferoz/electricity-board-api/services"
	"github.com/mdferoz/electricity-board-api/store"
)

// AdminDashboard handles GET /api/v1/admin/dashboard - all complaints newest
// first, status counts and the technician roster for assignment.
func AdminDashboard(c *gin.Context) {
	complaints, err := store.Complaints().List()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	reverse(complaints)

	technicians, err := store.Technicians().List()
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"complaints":  complaints,
		"technicians": technicians,
		"stats":       statusCounts(complaints),
	})
}

// GetReport handles GET /api/v1/admin/report - summary statistics.
func GetReport(c *gin.Context) {
	report, err := services.BuildReport()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}

// ExportReport handles GET /api/v1/admin/report/export - downloads the
// complaints workbook with summary sheets.
func ExportReport(c *gin.Context) {
	workbook, err := services.ExportComplaintsWorkbook()
	if err != nil {
		respondStoreError(c, err)
		return
	}

	filename := fmt.Sprintf("complaints_report_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

// ImportComplaints handles POST /api/v1/admin/complaints/import - merges an
// uploaded complaints workbook by complaint id. The live tables are backed
// up before the merge.
func ImportComplaints(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "NO_FILE", "No file part in the request")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "NO_FILE", "Could not read uploaded file")
		return
	}
	defer file.Close()

	cfg := config.GetConfig()
	if _, err := services.BackupTables(cfg.DataDir, cfg.BackupDir); err != nil {
		respondStoreError(c, err)
		return
	}

	added, err := services.ImportComplaints(file)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	message := fmt.Sprintf("Successfully imported %d new complaints", added)
	if added == 0 {
		message = "No new complaints to import"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imported": added,
		"message":  message,
	})
}

// BackupDatabase handles POST /api/v1/admin/backup - snapshots all tables.
func BackupDatabase(c *gin.Context) {
	cfg := config.GetConfig()
	timestamp, err := services.BackupTables(cfg.DataDir, cfg.BackupDir)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Backup created at " + timestamp,
	})
}
