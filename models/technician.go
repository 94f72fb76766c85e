package models

// Technician represents a field technician who resolves complaints.
type Technician struct {
	TechnicianID string `json:"technician_id"`
	FullName     string `json:"fullName"`
	Aadhar       string `json:"aadhar"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// TechnicianColumns is the header of the technician table, in file order.
var TechnicianColumns = []string{
	"technician_id", "fullName", "aadhar", "email", "phone",
	"address", "password", "role",
}

// Row serializes the technician in TechnicianColumns order.
func (t *Technician) Row() []string {
	return []string{
		t.TechnicianID, t.FullName, t.Aadhar, t.Email, t.Phone,
		t.Address, t.PasswordHash, t.Role,
	}
}

// TechnicianFromRow builds a Technician from a row in TechnicianColumns order.
func TechnicianFromRow(row []string) *Technician {
	return &Technician{
		TechnicianID: row[0],
		FullName:     row[1],
		Aadhar:       row[2],
		Email:        row[3],
		Phone:        row[4],
		Address:      row[5],
		PasswordHash: row[6],
		Role:         row[7],
	}
}
