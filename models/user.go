package models

// Time layout used for every timestamp persisted to the spreadsheet tables.
const TimeLayout = "2006-01-02 15:04:05"

// User roles.
const (
	RoleAdmin      = "admin"
	RoleCustomer   = "customer"
	RoleTechnician = "technician"
)

// User represents a registered account (customer or admin).
// Every field round-trips as text through the users table.
type User struct {
	UserID           string `json:"user_id"`
	FullName         string `json:"fullName"`
	Aadhar           string `json:"aadhar"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	PasswordHash     string `json:"-"`
	Role             string `json:"role"`
	RegistrationDate string `json:"registration_date"`
}

// UserColumns is the header of the users table, in file order.
var UserColumns = []string{
	"user_id", "fullName", "aadhar", "email", "phone",
	"address", "password", "role", "registration_date",
}

// Row serializes the user in UserColumns order.
func (u *User) Row() []string {
	return []string{
		u.UserID, u.FullName, u.Aadhar, u.Email, u.Phone,
		u.Address, u.PasswordHash, u.Role, u.RegistrationDate,
	}
}

// UserFromRow builds a User from a row in UserColumns order.
func UserFromRow(row []string) *User {
	return &User{
		UserID:           row[0],
		FullName:         row[1],
		Aadhar:           row[2],
		Email:            row[3],
		Phone:            row[4],
		Address:          row[5],
		PasswordHash:     row[6],
		Role:             row[7],
		RegistrationDate: row[8],
	}
}
