package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mdferoz/electricity-board-api/models"
)

// TechnicianIDPrefix is the prefix of allocated technician ids.
const TechnicianIDPrefix = "TID"

// TechnicianStore provides typed CRUD over the technician table. Same
// locking discipline as UserStore: mutations serialize on the store's lock,
// reads see atomic snapshots.
type TechnicianStore struct {
	path string
	mu   sync.Mutex
}

// NewTechnicianStore returns a store backed by the table at path.
func NewTechnicianStore(path string) *TechnicianStore {
	return &TechnicianStore{path: path}
}

func (s *TechnicianStore) load() (*Table, error) {
	table, err := LoadTable(s.path, models.TechnicianColumns)
	if errors.Is(err, ErrNotFound) {
		return &Table{Columns: models.TechnicianColumns}, nil
	}
	return table, err
}

// List returns all technicians in file order.
func (s *TechnicianStore) List() ([]*models.Technician, error) {
	table, err := s.load()
	if err != nil {
		return nil, err
	}
	techs := make([]*models.Technician, 0, len(table.Rows))
	for _, row := range table.Rows {
		techs = append(techs, models.TechnicianFromRow(row))
	}
	return techs, nil
}

// FindByID returns the technician with the given id, or ErrNotFound.
func (s *TechnicianStore) FindByID(id string) (*models.Technician, error) {
	techs, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, t := range techs {
		if t.TechnicianID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: technician %s", ErrNotFound, id)
}

// FindByLogin returns the technician whose email or id matches the
// identifier, or ErrNotFound.
func (s *TechnicianStore) FindByLogin(identifier string) (*models.Technician, error) {
	techs, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, t := range techs {
		if t.Email == identifier || t.TechnicianID == identifier {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: technician %s", ErrNotFound, identifier)
}

// Create allocates the next technician id, enforces aadhar/email/phone
// uniqueness and appends the technician. Returns the allocated id.
func (s *TechnicianStore) Create(t *models.Technician) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.load()
	if err != nil {
		return "", err
	}

	ids := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		existing := models.TechnicianFromRow(row)
		ids = append(ids, existing.TechnicianID)
		switch {
		case existing.Aadhar == t.Aadhar:
			return "", &DuplicateFieldError{Field: "aadhar", Value: t.Aadhar}
		case existing.Email == t.Email:
			return "", &DuplicateFieldError{Field: "email", Value: t.Email}
		case existing.Phone == t.Phone:
			return "", &DuplicateFieldError{Field: "phone", Value: t.Phone}
		}
	}

	t.TechnicianID = NextID(TechnicianIDPrefix, ids)
	t.Role = models.RoleTechnician
	table.Rows = append(table.Rows, t.Row())
	if err := SaveTable(s.path, table); err != nil {
		return "", err
	}
	return t.TechnicianID, nil
}

// Update applies mutate to the technician with the given id. Returns false,
// without writing, when the id is absent.
func (s *TechnicianStore) Update(id string, mutate func(*models.Technician)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.load()
	if err != nil {
		return false, err
	}
	for i, row := range table.Rows {
		t := models.TechnicianFromRow(row)
		if t.TechnicianID != id {
			continue
		}
		mutate(t)
		t.TechnicianID = id
		table.Rows[i] = t.Row()
		if err := SaveTable(s.path, table); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Delete removes the technician with the given id. Returns false, without
// writing, when the id is absent. Technicians are the only entity the
// product hard-deletes.
func (s *TechnicianStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.load()
	if err != nil {
		return false, err
	}
	for i, row := range table.Rows {
		if models.TechnicianFromRow(row).TechnicianID != id {
			continue
		}
		table.Rows = append(table.Rows[:i], table.Rows[i+1:]...)
		if err := SaveTable(s.path, table); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
