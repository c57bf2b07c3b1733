package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/skillforge/bids-service/internal/model"
)

func sampleReport() model.ActivityReport {
	return model.ActivityReport{
		PeriodStart:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
		TotalProjects: 2,
		TotalBids:     3,
		Projects: []model.ProjectActivity{
			{
				ID: 10, Title: "Marketplace backend", Status: model.ProjectStatusInProgress,
				ClientCompany: "Acme Studio", BidCount: 2,
				Bids: []model.BidActivity{
					{ID: 5, FreelancerName: "Femi Oba", Amount: 2500, Status: model.BidStatusAccepted,
						CreatedAt: time.Date(2026, 8, 10, 9, 30, 0, 0, time.UTC)},
					{ID: 6, FreelancerName: "Dana Ruiz", Amount: 3100, Status: model.BidStatusRejected,
						CreatedAt: time.Date(2026, 8, 11, 14, 0, 0, 0, time.UTC)},
				},
			},
			{
				ID: 11, Title: "Logo refresh", Status: model.ProjectStatusPending,
				ClientCompany: "Acme Studio", BidCount: 1,
			},
		},
	}
}

func TestGenerateWorkbook(t *testing.T) {
	content, err := NewGenerator().Generate(sampleReport())
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "Marketplace backend")
	assert.Contains(t, sheets, "Logo refresh")

	get := func(sheet, cell string) string {
		value, err := file.GetCellValue(sheet, cell)
		require.NoError(t, err)
		return value
	}

	assert.Equal(t, "2026-08-01", get("Summary", "B1"))
	assert.Equal(t, "2026-08-28", get("Summary", "B2"))
	assert.Equal(t, "2", get("Summary", "B3"))
	assert.Equal(t, "3", get("Summary", "B4"))
	assert.Equal(t, "Marketplace backend", get("Summary", "A7"))
	assert.Equal(t, "IN_PROGRESS", get("Summary", "C7"))

	assert.Equal(t, "Femi Oba", get("Marketplace backend", "B7"))
	assert.Equal(t, "2500.00", get("Marketplace backend", "C7"))
	assert.Equal(t, "accepted", get("Marketplace backend", "D7"))
	assert.Equal(t, "rejected", get("Marketplace backend", "D8"))
}

func TestBuildSheetName(t *testing.T) {
	used := map[string]struct{}{"Summary": {}}

	name := buildSheetName("Marketplace backend", 10, used)
	assert.Equal(t, "Marketplace backend", name)
	used[name] = struct{}{}

	// Duplicates get a numeric suffix.
	name = buildSheetName("Marketplace backend", 11, used)
	assert.Equal(t, "Marketplace backend-2", name)
	used[name] = struct{}{}

	// Forbidden characters are replaced and long names capped at 31 runes.
	name = buildSheetName("Q3: report [draft]/final?", 12, used)
	assert.NotContains(t, name, ":")
	assert.NotContains(t, name, "[")
	assert.NotContains(t, name, "/")

	long := buildSheetName("This project title is far longer than excel allows", 13, used)
	assert.LessOrEqual(t, len(long), 31)

	// An empty title falls back to the project id.
	assert.Equal(t, "Project 14", buildSheetName("   ", 14, used))
}
