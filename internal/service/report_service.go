package service

import (
	"context"
	"fmt"
	"time"

	"github.com/skillforge/bids-service/internal/model"
)

type ReportRepository interface {
	CountProjects(ctx context.Context, from, to time.Time) (int64, error)
	CountBids(ctx context.Context, from, to time.Time) (int64, error)
	ListProjectActivity(ctx context.Context, from, to time.Time) ([]model.ProjectActivity, error)
	ListBidActivity(ctx context.Context, projectID int64) ([]model.BidActivity, error)
}

type ExcelGenerator interface {
	Generate(report model.ActivityReport) ([]byte, error)
}

type ReportService struct {
	repo  ReportRepository
	excel ExcelGenerator
}

func NewReportService(repo ReportRepository, excel ExcelGenerator) *ReportService {
	return &ReportService{repo: repo, excel: excel}
}

type GenerateReportInput struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Principal   model.Principal
}

type GenerateReportResult struct {
	FileName string
	Content  []byte
}

func (s *ReportService) Generate(ctx context.Context, input GenerateReportInput) (*GenerateReportResult, error) {
	if !input.Principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	if input.PeriodStart.IsZero() || input.PeriodEnd.IsZero() {
		return nil, fmt.Errorf("%w: period dates are required", ErrInvalidInput)
	}

	periodStart := dateOnly(input.PeriodStart)
	periodEnd := dateOnly(input.PeriodEnd)
	if periodStart.After(periodEnd) {
		return nil, fmt.Errorf("%w: period_start must be before or equal to period_end", ErrInvalidInput)
	}
	endExclusive := periodEnd.Add(24 * time.Hour)

	totalProjects, err := s.repo.CountProjects(ctx, periodStart, endExclusive)
	if err != nil {
		return nil, err
	}
	totalBids, err := s.repo.CountBids(ctx, periodStart, endExclusive)
	if err != nil {
		return nil, err
	}

	projects, err := s.repo.ListProjectActivity(ctx, periodStart, endExclusive)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		bids, err := s.repo.ListBidActivity(ctx, projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Bids = bids
	}

	report := model.ActivityReport{
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		TotalProjects: totalProjects,
		TotalBids:     totalBids,
		Projects:      projects,
	}

	content, err := s.excel.Generate(report)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("marketplace-activity-%s-%s.xlsx",
		periodStart.Format("20060102"), periodEnd.Format("20060102"))
	return &GenerateReportResult{FileName: fileName, Content: content}, nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
