package http

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/skillforge/bids-service/internal/model"
)

func TestExportReportAsAdmin(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, 1, model.RoleAdmin)

	rec := ts.do(t, http.MethodPost, "/reports/export", admin, gin.H{
		"period_start": "2026-08-01",
		"period_end":   "2026-08-28",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"),
		"marketplace-activity-20260801-20260828.xlsx")

	// The payload is a readable workbook with the summary sheet.
	workbook, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer workbook.Close()
	assert.Contains(t, workbook.GetSheetList(), "Summary")
}

func TestExportReportForbiddenForNonAdmin(t *testing.T) {
	ts := newTestServer(t)
	client := ts.token(t, 7, model.RoleClient)

	rec := ts.do(t, http.MethodPost, "/reports/export", client, gin.H{
		"period_start": "2026-08-01",
		"period_end":   "2026-08-28",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExportReportBadDates(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, 1, model.RoleAdmin)

	rec := ts.do(t, http.MethodPost, "/reports/export", admin, gin.H{
		"period_start": "not-a-date",
		"period_end":   "2026-08-28",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
