package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/skillforge/bids-service/internal/model"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) CountProjects(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM projects
		WHERE created_at >= ? AND created_at < ?
	`, from, to).Scan(&total).Error
	return total, err
}

func (r *ReportRepository) CountBids(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM bids
		WHERE created_at >= ? AND created_at < ?
	`, from, to).Scan(&total).Error
	return total, err
}

// ListProjectActivity returns projects created in the period with their
// owning client company and bid counts.
func (r *ReportRepository) ListProjectActivity(ctx context.Context, from, to time.Time) ([]model.ProjectActivity, error) {
	var rows []model.ProjectActivity
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.title,
			p.status,
			c.company_name AS client_company,
			COUNT(b.id) AS bid_count
		FROM projects p
		JOIN clients c ON c.id = p.client_id
		LEFT JOIN bids b ON b.project_id = p.id
		WHERE p.created_at >= ? AND p.created_at < ?
		GROUP BY p.id, p.title, p.status, c.company_name
		ORDER BY p.created_at ASC
	`, from, to).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) ListBidActivity(ctx context.Context, projectID int64) ([]model.BidActivity, error) {
	var rows []model.BidActivity
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			b.id,
			u.name AS freelancer_name,
			b.amount,
			b.status,
			b.created_at
		FROM bids b
		JOIN freelancers f ON f.id = b.freelancer_id
		JOIN users u ON u.id = f.user_id
		WHERE b.project_id = ?
		ORDER BY b.created_at ASC
	`, projectID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
