package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		existing []string
		expected string
	}{
		{
			name:     "empty table starts at 0001",
			prefix:   "CID",
			existing: nil,
			expected: "CID0001",
		},
		{
			name:     "increments past the highest suffix",
			prefix:   "UID",
			existing: []string{"UID0001", "UID0002", "UID0003"},
			expected: "UID0004",
		},
		{
			name:     "max over all rows, not the last one",
			prefix:   "CID",
			existing: []string{"CID0001", "CID0009", "CID0002"},
			expected: "CID0010",
		},
		{
			name:     "gap from a deleted row never reissues an id",
			prefix:   "TID",
			existing: []string{"TID0001", "TID0003"},
			expected: "TID0004",
		},
		{
			name:     "suffix grows past four digits without wrapping",
			prefix:   "CID",
			existing: []string{"CID9999"},
			expected: "CID10000",
		},
		{
			name:     "rows without digits are ignored",
			prefix:   "TID",
			existing: []string{"legacy", "TID0002"},
			expected: "TID0003",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextID(tt.prefix, tt.existing))
		})
	}
}

func TestNextIDStrictlyIncreasing(t *testing.T) {
	var allocated []string
	for i := 0; i < 25; i++ {
		id := NextID("CID", allocated)
		for _, prev := range allocated {
			assert.NotEqual(t, prev, id)
			assert.Less(t, prev, id) // zero padding keeps numeric order lexicographic
		}
		allocated = append(allocated, id)
	}
}
