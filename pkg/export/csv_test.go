package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agencyhub_backend/internal/model"
)

func TestLeadsToCSVEmptyStillHasHeader(t *testing.T) {
	out, err := LeadsToCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, LeadCSVHeader, records[0])
}

func TestLeadsToCSVRows(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	leads := []model.Lead{
		{
			Model:   gorm.Model{ID: 7, CreatedAt: created},
			Name:    `Quote "Heavy" Name`,
			Email:   "quote@example.com",
			Phone:   "+1-555-0100",
			Company: "Comma, Inc",
			Source:  model.LeadSourceReferral,
			Status:  model.LeadStatusQualified,
			Score:   72.5,
		},
	}

	out, err := LeadsToCSV(leads)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	row := records[1]
	assert.Equal(t, "7", row[0])
	assert.Equal(t, `Quote "Heavy" Name`, row[1])
	assert.Equal(t, "Comma, Inc", row[4])
	assert.Equal(t, "REFERRAL", row[5])
	assert.Equal(t, "QUALIFIED", row[6])
	assert.Equal(t, "72.5", row[7])
	assert.Equal(t, "2026-03-14 09:30:00", row[8])
}
