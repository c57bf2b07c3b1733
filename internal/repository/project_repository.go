package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/skillforge/bids-service/internal/model"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type projectRow struct {
	ID                int64
	Title             string
	Description       string
	Budget            float64
	Status            model.ProjectStatus
	ClientID          int64
	FreelancerID      *int64
	CreatedAt         time.Time
	ClientUserID      int64
	ClientCompanyName string
	ClientName        string
	ClientEmail       string
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	var row projectRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.title,
			p.description,
			p.budget,
			p.status,
			p.client_id,
			p.freelancer_id,
			p.created_at,
			c.user_id AS client_user_id,
			c.company_name AS client_company_name,
			cu.name AS client_name,
			cu.email AS client_email
		FROM projects p
		JOIN clients c ON c.id = p.client_id
		JOIN users cu ON cu.id = c.user_id
		WHERE p.id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return &model.Project{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		Budget:       row.Budget,
		Status:       row.Status,
		ClientID:     row.ClientID,
		FreelancerID: row.FreelancerID,
		CreatedAt:    row.CreatedAt,
		Client: model.Client{
			ID:          row.ClientID,
			UserID:      row.ClientUserID,
			CompanyName: row.ClientCompanyName,
			User: model.User{
				ID:    row.ClientUserID,
				Name:  row.ClientName,
				Email: row.ClientEmail,
				Role:  model.RoleClient,
			},
		},
	}, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project model.Project) (*model.Project, error) {
	var saved model.Project
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO projects (title, description, budget, status, client_id)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, title, description, budget, status, client_id, freelancer_id, created_at
	`,
		project.Title,
		project.Description,
		project.Budget,
		model.ProjectStatusPending,
		project.ClientID,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ProjectRepository) List(ctx context.Context, status *model.ProjectStatus, limit, offset int) ([]model.Project, error) {
	baseQuery := `
		SELECT id, title, description, budget, status, client_id, freelancer_id, created_at
		FROM projects
	`
	args := []interface{}{}
	if status != nil {
		baseQuery += ` WHERE status = ?`
		args = append(args, *status)
	}
	baseQuery += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var projects []model.Project
	if err := r.db.WithContext(ctx).Raw(baseQuery, args...).Scan(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id int64, status model.ProjectStatus) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE projects
		SET status = ?
		WHERE id = ?
	`, status, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
