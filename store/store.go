package store

import "path/filepath"

// Default table file names under the data directory, matching the layout the
// service has always used.
const (
	UsersFile       = "users.xlsx"
	TechniciansFile = "technician.xlsx"
	ComplaintsFile  = "complaints.xlsx"
)

var (
	usersInstance       *UserStore
	techniciansInstance *TechnicianStore
	complaintsInstance  *ComplaintStore
)

// Init wires the package-level stores to the tables under dataDir.
func Init(dataDir string) {
	usersInstance = NewUserStore(filepath.Join(dataDir, UsersFile))
	techniciansInstance = NewTechnicianStore(filepath.Join(dataDir, TechniciansFile))
	complaintsInstance = NewComplaintStore(filepath.Join(dataDir, ComplaintsFile))
}

// Users returns the user store instance.
func Users() *UserStore { return usersInstance }

// Technicians returns the technician store instance.
func Technicians() *TechnicianStore { return techniciansInstance }

// Complaints returns the complaint store instance.
func Complaints() *ComplaintStore { return complaintsInstance }

// SetStores replaces the package-level instances (primarily for testing).
func SetStores(u *UserStore, t *TechnicianStore, c *ComplaintStore) {
	usersInstance = u
	techniciansInstance = t
	complaintsInstance = c
}
