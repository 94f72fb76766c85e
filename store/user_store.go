package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mdferoz/electricity-board-api/models"
)

// UserIDPrefix is the prefix of allocated user ids.
const UserIDPrefix = "UID"

// UserStore provides typed CRUD over the users table. All mutations hold the
// store's lock for the whole load-mutate-save cycle, so two writers can never
// silently drop each other's rows. Reads go without the lock: SaveTable
// replaces the file atomically, so a reader always sees a complete table.
type UserStore struct {
	path string
	mu   sync.Mutex
}

// NewUserStore returns a store backed by the table at path.
func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

func (s *UserStore) load() (*Table, error) {
	table, err := LoadTable(s.path, models.UserColumns)
	if errors.Is(err, ErrNotFound) {
		return &Table{Columns: models.UserColumns}, nil
	}
	return table, err
}

// List returns all users in file order, oldest first.
func (s *UserStore) List() ([]*models.User, error) {
	table, err := s.load()
	if err != nil {
		return nil, err
	}
	users := make([]*models.User, 0, len(table.Rows))
	for _, row := range table.Rows {
		users = append(users, models.UserFromRow(row))
	}
	return users, nil
}

// FindByID returns the user with the given id, or ErrNotFound.
func (s *UserStore) FindByID(id string) (*models.User, error) {
	users, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.UserID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
}

// FindByLogin returns the user whose email, aadhar or phone matches the
// identifier, or ErrNotFound. This is the login lookup.
func (s *UserStore) FindByLogin(identifier string) (*models.User, error) {
	users, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == identifier || u.Aadhar == identifier || u.Phone == identifier {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", ErrNotFound, identifier)
}

// Create allocates the next user id, enforces the aadhar/email/phone
// uniqueness constraints and appends the user. On a DuplicateFieldError the
// table is left untouched. Returns the allocated id.
func (s *UserStore) Create(u *models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.load()
	if err != nil {
		return "", err
	}

	ids := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		existing := models.UserFromRow(row)
		ids = append(ids, existing.UserID)
		switch {
		case existing.Aadhar == u.Aadhar:
			return "", &DuplicateFieldError{Field: "aadhar", Value: u.Aadhar}
		case existing.Email == u.Email:
			return "", &DuplicateFieldError{Field: "email", Value: u.Email}
		case existing.Phone == u.Phone:
			return "", &DuplicateFieldError{Field: "phone", Value: u.Phone}
		}
	}

	u.UserID = NextID(UserIDPrefix, ids)
	table.Rows = append(table.Rows, u.Row())
	if err := SaveTable(s.path, table); err != nil {
		return "", err
	}
	return u.UserID, nil
}

// Update applies mutate to the user with the given id and persists the
// table. Returns false, without writing, when the id is absent.
func (s *UserStore) Update(id string, mutate func(*models.User)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := s.load()
	if err != nil {
		return false, err
	}
	for i, row := range table.Rows {
		u := models.UserFromRow(row)
		if u.UserID != id {
			continue
		}
		mutate(u)
		u.UserID = id // id is immutable
		table.Rows[i] = u.Row()
		if err := SaveTable(s.path, table); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
