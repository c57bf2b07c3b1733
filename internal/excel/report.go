package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/skillforge/bids-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds the marketplace activity workbook: one summary sheet plus
// one detail sheet per project with its bids.
func (g *Generator) Generate(report model.ActivityReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, project := range report.Projects {
		sheetName := buildSheetName(project.Title, project.ID, usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeDetail(file, sheetName, report, project); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.ActivityReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Period start")
	set("B1", formatDate(report.PeriodStart))
	set("A2", "Period end")
	set("B2", formatDate(report.PeriodEnd))
	set("A3", "Projects created")
	set("B3", report.TotalProjects)
	set("A4", "Bids placed")
	set("B4", report.TotalBids)

	tableRow := 6
	set(fmt.Sprintf("A%d", tableRow), "Project")
	set(fmt.Sprintf("B%d", tableRow), "Client")
	set(fmt.Sprintf("C%d", tableRow), "Status")
	set(fmt.Sprintf("D%d", tableRow), "Bids")

	for i, project := range report.Projects {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), project.Title)
		set(fmt.Sprintf("B%d", row), project.ClientCompany)
		set(fmt.Sprintf("C%d", row), string(project.Status))
		set(fmt.Sprintf("D%d", row), project.BidCount)
	}

	_ = file.SetColWidth(sheet, "A", "A", 45)
	_ = file.SetColWidth(sheet, "B", "B", 32)
	_ = file.SetColWidth(sheet, "C", "C", 16)
	_ = file.SetColWidth(sheet, "D", "D", 10)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, report model.ActivityReport, project model.ProjectActivity) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Project")
	set("B1", project.Title)
	set("A2", "Client")
	set("B2", project.ClientCompany)
	set("A3", "Status")
	set("B3", string(project.Status))
	set("A4", "Bids")
	set("B4", project.BidCount)

	tableRow := 6
	headers := []string{"Placed at", "Freelancer", "Amount", "Status"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, bid := range project.Bids {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), formatDateTime(bid.CreatedAt))
		set(fmt.Sprintf("B%d", row), bid.FreelancerName)
		set(fmt.Sprintf("C%d", row), fmt.Sprintf("%.2f", bid.Amount))
		set(fmt.Sprintf("D%d", row), string(bid.Status))
	}

	_ = file.SetColWidth(sheet, "A", "A", 20)
	_ = file.SetColWidth(sheet, "B", "B", 32)
	_ = file.SetColWidth(sheet, "C", "C", 14)
	_ = file.SetColWidth(sheet, "D", "D", 14)
	return nil
}

func buildSheetName(title string, id int64, used map[string]struct{}) string {
	base := strings.TrimSpace(title)
	if base == "" {
		base = fmt.Sprintf("Project %d", id)
	}
	base = sanitizeSheetName(base)

	if len(base) > 31 {
		base = base[:31]
	}

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		nameCandidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = replacer.Replace(value)
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
