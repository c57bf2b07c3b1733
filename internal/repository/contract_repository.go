package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/skillforge/bids-service/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

type contractRow struct {
	ID                 int64
	Number             string
	ProjectID          int64
	FreelancerID       int64
	ClientID           int64
	Amount             float64
	StartDate          time.Time
	Status             model.ContractStatus
	CreatedAt          time.Time
	ProjectTitle       string
	ProjectDescription string
	ClientUserID       int64
	ClientCompanyName  string
	ClientName         string
	ClientEmail        string
	FreelancerUserID   int64
	FreelancerHeadline string
	FreelancerName     string
	FreelancerEmail    string
}

// GetByID loads the contract with the parties and project needed to render
// the agreement document.
func (r *ContractRepository) GetByID(ctx context.Context, id int64) (*model.Contract, error) {
	var row contractRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			ct.id,
			ct.number,
			ct.project_id,
			ct.freelancer_id,
			ct.client_id,
			ct.amount,
			ct.start_date,
			ct.status,
			ct.created_at,
			p.title AS project_title,
			p.description AS project_description,
			c.user_id AS client_user_id,
			c.company_name AS client_company_name,
			cu.name AS client_name,
			cu.email AS client_email,
			f.user_id AS freelancer_user_id,
			f.headline AS freelancer_headline,
			fu.name AS freelancer_name,
			fu.email AS freelancer_email
		FROM contracts ct
		JOIN projects p ON p.id = ct.project_id
		JOIN clients c ON c.id = ct.client_id
		JOIN users cu ON cu.id = c.user_id
		JOIN freelancers f ON f.id = ct.freelancer_id
		JOIN users fu ON fu.id = f.user_id
		WHERE ct.id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return &model.Contract{
		ID:           row.ID,
		Number:       row.Number,
		ProjectID:    row.ProjectID,
		FreelancerID: row.FreelancerID,
		ClientID:     row.ClientID,
		Amount:       row.Amount,
		StartDate:    row.StartDate,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt,
		Project: model.Project{
			ID:          row.ProjectID,
			Title:       row.ProjectTitle,
			Description: row.ProjectDescription,
			ClientID:    row.ClientID,
		},
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
		Freelancer: model.Freelancer{
			ID:       row.FreelancerID,
			UserID:   row.FreelancerUserID,
			Headline: row.FreelancerHeadline,
			User: model.User{
				ID:    row.FreelancerUserID,
				Name:  row.FreelancerName,
				Email: row.FreelancerEmail,
				Role:  model.RoleFreelancer,
			},
		},
	}, nil
}
