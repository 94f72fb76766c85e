package models

// Complaint statuses. The store persists whatever status it is given;
// the lifecycle service owns the Open -> In Progress -> Resolved flow.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// Complaint represents one electricity-service complaint.
// TechnicianName is a denormalized snapshot taken at assignment time.
type Complaint struct {
	ComplaintID     string `json:"complaint_id"`
	UserID          string `json:"user_id"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	SubmissionDate  string `json:"submission_date"`
	Status          string `json:"status"`
	AssignedTo      string `json:"assigned_to"`
	TechnicianName  string `json:"technician_name"`
	AttachmentPath  string `json:"attachment_path"`
	ResolutionNotes string `json:"resolution_notes"`
	ResolutionDate  string `json:"resolution_date"`
	VoiceComplaint  bool   `json:"voice_complaint"`
}

// ComplaintColumns is the header of the complaints table, in file order.
var ComplaintColumns = []string{
	"complaint_id", "user_id", "category", "description",
	"location", "submission_date", "status", "assigned_to",
	"technician_name", "attachment_path", "resolution_notes",
	"resolution_date", "voice_complaint",
}

// Row serializes the complaint in ComplaintColumns order.
func (c *Complaint) Row() []string {
	voice := "false"
	if c.VoiceComplaint {
		voice = "true"
	}
	return []string{
		c.ComplaintID, c.UserID, c.Category, c.Description,
		c.Location, c.SubmissionDate, c.Status, c.AssignedTo,
		c.TechnicianName, c.AttachmentPath, c.ResolutionNotes,
		c.ResolutionDate, voice,
	}
}

// ComplaintFromRow builds a Complaint from a row in ComplaintColumns order.
func ComplaintFromRow(row []string) *Complaint {
	return &Complaint{
		ComplaintID:     row[0],
		UserID:          row[1],
		Category:        row[2],
		Description:     row[3],
		Location:        row[4],
		SubmissionDate:  row[5],
		Status:          row[6],
		AssignedTo:      row[7],
		TechnicianName:  row[8],
		AttachmentPath:  row[9],
		ResolutionNotes: row[10],
		ResolutionDate:  row[11],
		VoiceComplaint:  row[12] == "true" || row[12] == "True" || row[12] == "TRUE",
	}
}
