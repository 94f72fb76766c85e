package services

import (
	"errors"
	"sync"
)

// SentMail records one message handed to the mock mailer.
type SentMail struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// MockMailer is a Mailer that records messages instead of sending them.
type MockMailer struct {
	mu   sync.Mutex
	sent []SentMail

	// FailSends makes every Send return an error, for testing the
	// fire-and-forget contract.
	FailSends bool
}

// NewMockMailer creates a new mock mailer.
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// SetAsMockForTesting sets this mock as the global mailer instance.
func (m *MockMailer) SetAsMockForTesting() {
	SetMailer(m)
}

// Send records the message, or fails if FailSends is set.
func (m *MockMailer) Send(to, subject, textBody, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSends {
		return errors.New("mock mailer: send failed")
	}
	m.sent = append(m.sent, SentMail{
		To:       to,
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	})
	return nil
}

// Sent returns a copy of the recorded messages.
func (m *MockMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

// SentCount returns how many messages were recorded.
func (m *MockMailer) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// Clear removes all recorded messages.
func (m *MockMailer) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
}
