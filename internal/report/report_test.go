package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/leadforge/leadscout/internal/model"
)

func TestWriteLeadsFull(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	leads := []model.Lead{
		{
			ID:        "lead-1",
			FirstName: "Jane",
			LastName:  "Doe",
			Company:   "Acme Realty",
			Niche:     "real_estate",
			Email:     "jane@example.com",
			Score:     84.7,
			CreatedAt: &created,
		},
		{ID: "lead-2", Company: "Drains R Us", Score: 35},
	}

	path := filepath.Join(t.TempDir(), "leads.xlsx")
	require.NoError(t, WriteLeadsXLSX(path, leads))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	assert.Equal(t, "Leads", sheet.Name)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "ID", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "lead-1", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "Jane Doe", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "84.70", sheet.Rows[1].Cells[9].String())
	assert.Equal(t, "Excellent", sheet.Rows[1].Cells[10].String())
	assert.Equal(t, "2026-03-01", sheet.Rows[1].Cells[11].String())

	assert.Equal(t, "Poor", sheet.Rows[2].Cells[10].String())
	assert.Equal(t, "", sheet.Rows[2].Cells[11].String())
}

func TestWriteLeadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteLeadsXLSX(path, nil))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets[0].Rows, 1)
}

func TestReadLeadsCSV(t *testing.T) {
	content := `email,phone,first_name,last_name,company,niche,rating,reviews,verified,created_at
jane@example.com,0821234567,Jane,Doe,Acme Realty,real_estate,4.8,150,true,2026-03-01T10:00:00Z
bob@example.com,,,,,tutors,not-a-number,,false,
`
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	leads, err := ReadLeadsCSV(path)
	require.NoError(t, err)
	require.Len(t, leads, 2)

	jane := leads[0]
	assert.Equal(t, "jane@example.com", jane.Email)
	assert.Equal(t, "Acme Realty", jane.Company)
	require.NotNil(t, jane.Rating)
	assert.InDelta(t, 4.8, *jane.Rating, 0.001)
	require.NotNil(t, jane.Reviews)
	assert.Equal(t, 150, *jane.Reviews)
	assert.True(t, jane.Verified)
	require.NotNil(t, jane.CreatedAt)
	assert.Equal(t, 2026, jane.CreatedAt.Year())

	bob := leads[1]
	// Unparseable cells collapse to nil rather than rejecting the row.
	assert.Nil(t, bob.Rating)
	assert.Nil(t, bob.Reviews)
	assert.Nil(t, bob.CreatedAt)
	assert.False(t, bob.Verified)
}

func TestReadLeadsCSVDateOnlyLayout(t *testing.T) {
	content := "email,created_at\na@example.com,2026-03-01\n"
	path := filepath.Join(t.TempDir(), "dates.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	leads, err := ReadLeadsCSV(path)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	require.NotNil(t, leads[0].CreatedAt)
}

func TestReadLeadsCSVMissingFile(t *testing.T) {
	_, err := ReadLeadsCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
