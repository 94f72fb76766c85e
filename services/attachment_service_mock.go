package services

import (
	"fmt"
	"mime/multipart"
	"sync"
)

// MockAttachmentStore is an AttachmentStore that keeps uploads in memory.
type MockAttachmentStore struct {
	mu    sync.RWMutex
	saved map[string][]byte
}

// NewMockAttachmentStore creates a new mock attachment store.
func NewMockAttachmentStore() *MockAttachmentStore {
	return &MockAttachmentStore{saved: make(map[string][]byte)}
}

// SetAsMockForTesting sets this mock as the global attachment store.
func (m *MockAttachmentStore) SetAsMockForTesting() {
	SetAttachmentStore(m)
}

// Save records the file content under a mock reference.
func (m *MockAttachmentStore) Save(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content := make([]byte, fileHeader.Size)
	if _, err := file.Read(content); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	ref := fmt.Sprintf("attachments/mock_%s", fileHeader.Filename)
	m.mu.Lock()
	m.saved[ref] = content
	m.mu.Unlock()
	return ref, nil
}

// SavedCount returns how many attachments were stored.
func (m *MockAttachmentStore) SavedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.saved)
}

// Exists checks whether a reference was stored.
func (m *MockAttachmentStore) Exists(ref string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.saved[ref]
	return ok
}
