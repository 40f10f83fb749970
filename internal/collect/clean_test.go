package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/leadscout/internal/model"
)

func TestCleanDropsShortPhones(t *testing.T) {
	leads := []model.Lead{
		{Phone: "0821234567", Email: "keep@example.com"},
		{Phone: "12345", Email: "short@example.com"},
		{Phone: "", Email: "nophone@example.com"},
	}

	got := Clean(leads)

	require.Len(t, got, 1)
	assert.Equal(t, "keep@example.com", got[0].Email)
}

func TestCleanDedupesByPhoneFirstWins(t *testing.T) {
	leads := []model.Lead{
		{Phone: "0821234567", Email: "first@example.com"},
		{Phone: "0821234567", Email: "second@example.com"},
	}

	got := Clean(leads)

	require.Len(t, got, 1)
	assert.Equal(t, "first@example.com", got[0].Email)
}

func TestCleanDedupesByEmail(t *testing.T) {
	leads := []model.Lead{
		{Phone: "0821234567", Email: "dup@example.com"},
		{Phone: "0839876543", Email: "dup@example.com"},
	}

	got := Clean(leads)

	require.Len(t, got, 1)
	assert.Equal(t, "0821234567", got[0].Phone)
}

func TestCleanPreservesOrder(t *testing.T) {
	leads := []model.Lead{
		{Phone: "0821111111", Email: "a@example.com"},
		{Phone: "0822222222", Email: "b@example.com"},
		{Phone: "0823333333", Email: "c@example.com"},
	}

	got := Clean(leads)

	require.Len(t, got, 3)
	assert.Equal(t, "a@example.com", got[0].Email)
	assert.Equal(t, "c@example.com", got[2].Email)
}

func TestUsablePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"0821234567", true},
		{"082 123 4567", true},
		{"+27 82 123 4567", true},
		{"123456789", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, usablePhone(tt.phone), "phone %q", tt.phone)
	}
}
