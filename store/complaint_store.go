package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mdferoz/electricity-board-api/models"
)

// ComplaintIDPrefix is the prefix of allocated complaint ids.
const ComplaintIDPrefix = "CID"

// ComplaintStore provides typed CRUD over the complaints table.
type ComplaintStore struct {
	path string
	mu   sync.Mutex
}

// NewComplaintStore returns a store backed by the table at path.
func NewComplaintStore(path string) *ComplaintStore {
	return &ComplaintStore{path: path}
}

func (s *ComplaintStore) load() (*Table, error) {
	table, err := LoadTable(s.path, models.ComplaintColumns)
	if errors.Is(err, ErrNotFound) {
		return &Table{Columns: models.ComplaintColumns}, nil
	}
	return table, err
}

// List returns all complaints in file order, oldest first. Callers wanting
// newest-first reverse explicitly.
func (s *ComplaintStore) List() ([]*models.Complaint, error) {
	table, err := s.load()
	if err != nil {
		return nil, err
	}
	complaints := make([]*models.Complaint, 0, len(table.Rows))
	for _, row := range table.Rows {
		complaints = append(complaints, models.ComplaintFromRow(row))
	}
	return complaints, nil
}

// ListByUser returns the complaints owned by the given user, in file order.
func (s *ComplaintStore) ListByUser(userID string) ([]*models.Complaint, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var mine []*models.Complaint
	for _, c := range all {
		if c.UserID == userID {
			mine = append(mine, c)
		}
	}
	return mine, nil
}

// ListByTechnician returns the complaints assigned to the given technician.
func (s *ComplaintStore) ListByTechnician(technicianID string) ([]*models.Complaint, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var assigned []*models.Complaint
	for _, c := range all {
		if c.AssignedTo == technicianID {
			assigned = append(assigned, c)
		}
	}
	return assigned, nil
}

// FindByID returns the complaint with the given id, or ErrNotFound.
func (s *ComplaintStore) FindByID(id string) (*models.Complaint, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		if c.ComplaintID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: complaint %s", ErrNotFound, id)
}

// Create allocates the next complaint id and appends the complaint.
// Allocation and append happen under the same lock, so concurrent
// submissions can never share an id. Returns the allocated id.
func (s *ComplaintStore) Create(c *models.Complaint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.load()
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		ids = append(ids, models.ComplaintFromRow(row).ComplaintID)
	}
	c.ComplaintID = NextID(ComplaintIDPrefix, ids)
	table.Rows = append(table.Rows, c.Row())
	if err := SaveTable(s.path, table); err != nil {
		return "", err
	}
	return c.ComplaintID, nil
}

// Merge appends complaints that already carry ids, skipping any whose id is
// present in the table. Used by bulk import; rows are never updated on
// conflict. Returns how many rows were added.
func (s *ComplaintStore) Merge(complaints []*models.Complaint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.load()
	if err != nil {
		return 0, err
	}
	existing := make(map[string]bool, len(table.Rows))
	for _, row := range table.Rows {
		existing[models.ComplaintFromRow(row).ComplaintID] = true
	}

	added := 0
	for _, c := range complaints {
		if c.ComplaintID == "" || existing[c.ComplaintID] {
			continue
		}
		existing[c.ComplaintID] = true
		table.Rows = append(table.Rows, c.Row())
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := SaveTable(s.path, table); err != nil {
		return 0, err
	}
	return added, nil
}

// Update applies mutate to the complaint with the given id and persists the
// table. Returns false, without writing, when the id is absent.
func (s *ComplaintStore) Update(id string, mutate func(*models.Complaint)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.load()
	if err != nil {
		return false, err
	}
	for i, row := range table.Rows {
		c := models.ComplaintFromRow(row)
		if c.ComplaintID != id {
			continue
		}
		mutate(c)
		c.ComplaintID = id
		table.Rows[i] = c.Row()
		if err := SaveTable(s.path, table); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
