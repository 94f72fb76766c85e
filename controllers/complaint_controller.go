package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdferoz/electricity-board-api/middleware"
	"github.com/mdferoz/electricity-board-api/models"
	"github.com/mdferoz/electricity-board-api/services"
	"github.com/mdferoz/electricity-board-api/store"
	"github.com/mdferoz/electricity-board-api/utils"
)

// AssignTechnicianRequest selects the technician for a complaint.
type AssignTechnicianRequest struct {
	TechnicianID string `json:"technician_id" binding:"required"`
}

// UpdateStatusRequest carries a status change with optional resolution notes.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes" binding:"omitempty"`
}

// SubmitComplaint handles POST /api/v1/complaints - multipart form with the
// complaint fields and an optional attachment. Customers with unpaid bills
// are refused before anything is stored.
func SubmitComplaint(c *gin.Context) {
	userID := middleware.CallerID(c)
	user, err := store.Users().FindByID(userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	status, err := services.GetBilling().CheckPaymentStatus(user.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "BILLING_ERROR",
			"Could not verify billing status")
		return
	}
	if status == services.PaymentUnpaid {
		respondError(c, http.StatusPaymentRequired, "UNPAID_BILLS",
			"You must pay your pending bills before submitting a complaint")
		return
	}

	category := c.PostForm("category")
	description := c.PostForm("description")
	location := c.PostForm("location")
	if category == "" || description == "" || location == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"category, description and location are required")
		return
	}

	attachmentPath := ""
	if fileHeader, err := c.FormFile("attachment"); err == nil && fileHeader != nil {
		if err := utils.ValidateAttachment(fileHeader); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_ATTACHMENT", err.Error())
			return
		}
		attachmentPath, err = services.GetAttachmentStore().Save(fileHeader)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "UPLOAD_ERROR",
				"Failed to store attachment")
			return
		}
	}

	complaint, err := services.SubmitComplaint(userID, services.ComplaintFields{
		Category:       category,
		Description:    description,
		Location:       location,
		AttachmentPath: attachmentPath,
		VoiceComplaint: c.PostForm("voice_used") != "",
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    complaint,
	})
}

// ListMyComplaints handles GET /api/v1/complaints - the caller's complaints,
// newest first, with status counts.
func ListMyComplaints(c *gin.Context) {
	complaints, err := store.Complaints().ListByUser(middleware.CallerID(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	reverse(complaints)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complaints,
		"stats":   statusCounts(complaints),
	})
}

// GetComplaint handles GET /api/v1/complaints/:id - visible to the owner,
// admins and the assigned technician.
func GetComplaint(c *gin.Context) {
	complaint, err := store.Complaints().FindByID(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	callerID := middleware.CallerID(c)
	role := middleware.CallerRole(c)
	if role != models.RoleAdmin && complaint.UserID != callerID && complaint.AssignedTo != callerID {
		respondError(c, http.StatusForbidden, "FORBIDDEN",
			"You are not authorized to view this complaint")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complaint,
	})
}

// TrackComplaint handles GET /api/v1/complaints/track/:id - unauthenticated
// status tracking by complaint id.
func TrackComplaint(c *gin.Context) {
	complaint, err := store.Complaints().FindByID(c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"complaint_id":    complaint.ComplaintID,
			"category":        complaint.Category,
			"submission_date": complaint.SubmissionDate,
			"status":          complaint.Status,
			"technician_name": complaint.TechnicianName,
			"resolution_date": complaint.ResolutionDate,
		},
	})
}

// AssignTechnician handles POST /api/v1/complaints/:id/assign - admin only.
func AssignTechnician(c *gin.Context) {
	var req AssignTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "No technician selected")
		return
	}

	complaint, err := services.AssignTechnician(c.Param("id"), req.TechnicianID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complaint,
		"message": "Complaint assigned to " + complaint.TechnicianName,
	})
}

// UpdateComplaintStatus handles POST /api/v1/complaints/:id/status - admins
// may update any complaint, technicians only those assigned to them.
func UpdateComplaintStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "status is required")
		return
	}

	id := c.Param("id")
	if middleware.CallerRole(c) == models.RoleTechnician {
		complaint, err := store.Complaints().FindByID(id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		if complaint.AssignedTo != middleware.CallerID(c) {
			respondError(c, http.StatusForbidden, "FORBIDDEN",
				"You are not authorized to update this complaint")
			return
		}
	}

	complaint, err := services.UpdateStatus(id, req.Status, req.Notes)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complaint,
		"message": "Complaint updated successfully",
	})
}

// ListAssignedComplaints handles GET /api/v1/technicians/me/complaints -
// the complaints assigned to the calling technician, with status counts.
func ListAssignedComplaints(c *gin.Context) {
	complaints, err := store.Complaints().ListByTechnician(middleware.CallerID(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	reverse(complaints)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complaints,
		"stats":   statusCounts(complaints),
	})
}

func statusCounts(complaints []*models.Complaint) gin.H {
	open, inProgress, resolved := 0, 0, 0
	for _, c := range complaints {
		switch c.Status {
		case models.StatusOpen:
			open++
		case models.StatusInProgress:
			inProgress++
		case models.StatusResolved:
			resolved++
		}
	}
	return gin.H{
		"total":       len(complaints),
		"open":        open,
		"in_progress": inProgress,
		"resolved":    resolved,
	}
}

func reverse(complaints []*models.Complaint) {
	for i, j := 0, len(complaints)-1; i < j; i, j = i+1, j-1 {
		complaints[i], complaints[j] = complaints[j], complaints[i]
	}
}
