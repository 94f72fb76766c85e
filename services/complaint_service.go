package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mdferoz/electricity-board-api/config"
	"github.com/mdferoz/electricity-board-api/models"
	"github.com/mdferoz/electricity-board-api/store"
)

// ComplaintFields are the customer-supplied parts of a new complaint.
type ComplaintFields struct {
	Category       string
	Description    string
	Location       string
	AttachmentPath string
	VoiceComplaint bool
}

// SubmitComplaint allocates the next complaint id, stamps the submission
// time and persists a new Open complaint for the given user. The billing
// gate is the request layer's job; by the time this runs the caller is
// authenticated and clear to file.
func SubmitComplaint(userID string, fields ComplaintFields) (*models.Complaint, error) {
	complaint := &models.Complaint{
		UserID:         userID,
		Category:       fields.Category,
		Description:    fields.Description,
		Location:       fields.Location,
		SubmissionDate: time.Now().Format(models.TimeLayout),
		Status:         models.StatusOpen,
		AttachmentPath: fields.AttachmentPath,
		VoiceComplaint: fields.VoiceComplaint,
	}
	if _, err := store.Complaints().Create(complaint); err != nil {
		return nil, err
	}
	config.Logger().Info("complaint submitted",
		zap.String("complaint_id", complaint.ComplaintID),
		zap.String("user_id", userID),
		zap.String("category", fields.Category))
	return complaint, nil
}

// AssignTechnician assigns a technician to a complaint, snapshotting the
// technician's name onto the record. Assigning an Open complaint advances
// it to In Progress as a side effect; any other status is left alone.
// Returns ErrNotFound when either id is absent.
func AssignTechnician(complaintID, technicianID string) (*models.Complaint, error) {
	technician, err := store.Technicians().FindByID(technicianID)
	if err != nil {
		return nil, err
	}

	var updated *models.Complaint
	found, err := store.Complaints().Update(complaintID, func(c *models.Complaint) {
		c.AssignedTo = technician.TechnicianID
		c.TechnicianName = technician.FullName
		if c.Status == models.StatusOpen {
			c.Status = models.StatusInProgress
		}
		updated = c
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: complaint %s", store.ErrNotFound, complaintID)
	}

	config.Logger().Info("technician assigned",
		zap.String("complaint_id", complaintID),
		zap.String("technician_id", technicianID))
	return updated, nil
}

// UpdateStatus sets the complaint's status. Non-empty notes set the
// resolution notes and stamp the resolution date together; without notes
// neither field is touched. On success the owning user is notified by email
// on a background goroutine; a failed send is logged and never surfaces to
// the caller. Returns ErrNotFound when the complaint is absent.
func UpdateStatus(complaintID, status, notes string) (*models.Complaint, error) {
	var updated *models.Complaint
	found, err := store.Complaints().Update(complaintID, func(c *models.Complaint) {
		c.Status = status
		if notes != "" {
			c.ResolutionNotes = notes
			c.ResolutionDate = time.Now().Format(models.TimeLayout)
		}
		updated = c
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: complaint %s", store.ErrNotFound, complaintID)
	}

	config.Logger().Info("complaint status updated",
		zap.String("complaint_id", complaintID),
		zap.String("status", status))

	go notifyStatusUpdate(updated)
	return updated, nil
}

// notifyStatusUpdate emails the complaint's owner about the update.
// Best-effort: every failure path logs and returns.
func notifyStatusUpdate(complaint *models.Complaint) {
	logger := config.Logger()

	mailer := GetMailer()
	if mailer == nil {
		logger.Warn("status notification skipped: no mailer configured",
			zap.String("complaint_id", complaint.ComplaintID))
		return
	}

	user, err := store.Users().FindByID(complaint.UserID)
	if err != nil {
		logger.Warn("status notification skipped: owner lookup failed",
			zap.String("complaint_id", complaint.ComplaintID),
			zap.Error(err))
		return
	}

	subject := "Electricity Complaint Status Update"
	text, html := statusUpdateBodies(user, complaint)
	if err := mailer.Send(user.Email, subject, text, html); err != nil {
		logger.Warn("status notification failed",
			zap.String("complaint_id", complaint.ComplaintID),
			zap.String("to", user.Email),
			zap.Error(err))
		return
	}
	logger.Info("status notification sent",
		zap.String("complaint_id", complaint.ComplaintID),
		zap.String("to", user.Email))
}

func statusUpdateBodies(user *models.User, complaint *models.Complaint) (text, html string) {
	support := "1800-123-456"
	if cfg := config.GetConfig(); cfg != nil && cfg.SupportContact != "" {
		support = cfg.SupportContact
	}

	text = fmt.Sprintf(
		"Dear %s,\n\n"+
			"Thank you for contacting the Electricity Board.\n"+
			"Your complaint (ID: %s) registered on %s has been updated.\n\n"+
			"Current Status: %s\n"+
			"Resolution Time: %s\n\n"+
			"If you have further issues, please contact our support at %s.\n\n"+
			"Thank you,\n"+
			"Electricity Board Support Team",
		user.FullName, complaint.ComplaintID, complaint.SubmissionDate,
		complaint.Status, complaint.ResolutionDate, support)

	html = fmt.Sprintf(`<html>
<body>
  <h2>Electricity Complaint Status Update</h2>
  <p>Dear <strong>%s</strong>,</p>
  <p>Thank you for contacting the Electricity Board.<br>
  Your complaint details are as follows:</p>
  <div>
    <p><strong>Complaint ID:</strong> %s<br>
    <strong>Date Registered:</strong> %s<br>
    <strong>Status:</strong> %s<br>
    <strong>Resolution Time:</strong> %s</p>
  </div>
  <p>If you have further issues, please contact our support at <strong>%s</strong>.</p>
  <div>
    Thank you,<br>
    Electricity Board Support Team
  </div>
</body>
</html>`,
		user.FullName, complaint.ComplaintID, complaint.SubmissionDate,
		complaint.Status, complaint.ResolutionDate, support)
	return text, html
}
