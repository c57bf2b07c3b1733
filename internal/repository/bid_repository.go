package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/skillforge/bids-service/internal/model"
)

// ErrStateConflict is returned when a guarded write finds the row no longer
// in the state it was loaded in (e.g. two accepts racing on one project).
var ErrStateConflict = errors.New("state conflict")

type BidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

type bidRow struct {
	ID                  int64
	ProjectID           int64
	FreelancerID        int64
	Amount              float64
	Timeline            string
	CoverLetter         string
	Status              model.BidStatus
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ProjectTitle        string
	ProjectDescription  string
	ProjectBudget       float64
	ProjectStatus       model.ProjectStatus
	ProjectClientID     int64
	ProjectFreelancerID *int64
	ProjectCreatedAt    time.Time
	ClientUserID        int64
	ClientCompanyName   string
	ClientName          string
	ClientEmail         string
	FreelancerUserID    int64
	FreelancerHeadline  string
	FreelancerName      string
	FreelancerEmail     string
}

// GetByID loads the bid together with its project (and owning client) and
// freelancer (and user, skills) associations.
func (r *BidRepository) GetByID(ctx context.Context, id int64) (*model.Bid, error) {
	var row bidRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			b.id,
			b.project_id,
			b.freelancer_id,
			b.amount,
			b.timeline,
			b.cover_letter,
			b.status,
			b.created_at,
			b.updated_at,
			p.title AS project_title,
			p.description AS project_description,
			p.budget AS project_budget,
			p.status AS project_status,
			p.client_id AS project_client_id,
			p.freelancer_id AS project_freelancer_id,
			p.created_at AS project_created_at,
			c.user_id AS client_user_id,
			c.company_name AS client_company_name,
			cu.name AS client_name,
			cu.email AS client_email,
			f.user_id AS freelancer_user_id,
			f.headline AS freelancer_headline,
			fu.name AS freelancer_name,
			fu.email AS freelancer_email
		FROM bids b
		JOIN projects p ON p.id = b.project_id
		JOIN clients c ON c.id = p.client_id
		JOIN users cu ON cu.id = c.user_id
		JOIN freelancers f ON f.id = b.freelancer_id
		JOIN users fu ON fu.id = f.user_id
		WHERE b.id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	skills, err := r.listSkills(ctx, row.FreelancerID)
	if err != nil {
		return nil, err
	}

	bid := &model.Bid{
		ID:           row.ID,
		ProjectID:    row.ProjectID,
		FreelancerID: row.FreelancerID,
		Amount:       row.Amount,
		Timeline:     row.Timeline,
		CoverLetter:  row.CoverLetter,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		Project: model.Project{
			ID:           row.ProjectID,
			Title:        row.ProjectTitle,
			Description:  row.ProjectDescription,
			Budget:       row.ProjectBudget,
			Status:       row.ProjectStatus,
			ClientID:     row.ProjectClientID,
			FreelancerID: row.ProjectFreelancerID,
			CreatedAt:    row.ProjectCreatedAt,
			Client: model.Client{
				ID:          row.ProjectClientID,
				UserID:      row.ClientUserID,
				CompanyName: row.ClientCompanyName,
				User: model.User{
					ID:    row.ClientUserID,
					Name:  row.ClientName,
					Email: row.ClientEmail,
					Role:  model.RoleClient,
				},
			},
		},
		Freelancer: model.Freelancer{
			ID:       row.FreelancerID,
			UserID:   row.FreelancerUserID,
			Headline: row.FreelancerHeadline,
			Skills:   skills,
			User: model.User{
				ID:    row.FreelancerUserID,
				Name:  row.FreelancerName,
				Email: row.FreelancerEmail,
				Role:  model.RoleFreelancer,
			},
		},
	}
	return bid, nil
}

func (r *BidRepository) listSkills(ctx context.Context, freelancerID int64) ([]string, error) {
	var skills []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT name
		FROM freelancer_skills
		WHERE freelancer_id = ?
		ORDER BY name ASC
	`, freelancerID).Scan(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *BidRepository) Create(ctx context.Context, bid model.Bid) (*model.Bid, error) {
	var saved model.Bid
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO bids (project_id, freelancer_id, amount, timeline, cover_letter, status)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, project_id, freelancer_id, amount, timeline, cover_letter, status, created_at, updated_at
	`,
		bid.ProjectID,
		bid.FreelancerID,
		bid.Amount,
		bid.Timeline,
		bid.CoverLetter,
		model.BidStatusPending,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// ExistsForProject reports whether the freelancer already has a bid on the
// project, enforcing the one-bid-per-pair rule before insert.
func (r *BidRepository) ExistsForProject(ctx context.Context, projectID, freelancerID int64) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXISTS(SELECT 1 FROM bids WHERE project_id = ? AND freelancer_id = ?)
	`, projectID, freelancerID).Scan(&exists).Error
	return exists, err
}

func (r *BidRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, project_id, freelancer_id, amount, timeline, cover_letter, status, created_at, updated_at
		FROM bids
		WHERE project_id = ?
		ORDER BY created_at ASC
	`, projectID).Scan(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

func (r *BidRepository) ListByFreelancer(ctx context.Context, freelancerID int64) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, project_id, freelancer_id, amount, timeline, cover_letter, status, created_at, updated_at
		FROM bids
		WHERE freelancer_id = ?
		ORDER BY created_at DESC
	`, freelancerID).Scan(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

// UpdateDetails applies the freelancer-editable fields. Only set fields are
// written; the update is guarded on the bid still being pending.
func (r *BidRepository) UpdateDetails(ctx context.Context, id int64, details model.BidDetails) error {
	sets := []string{"updated_at = NOW()"}
	var args []interface{}
	if details.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, *details.Amount)
	}
	if details.Timeline != nil {
		sets = append(sets, "timeline = ?")
		args = append(args, *details.Timeline)
	}
	if details.CoverLetter != nil {
		sets = append(sets, "cover_letter = ?")
		args = append(args, *details.CoverLetter)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE bids SET %s WHERE id = ? AND status = 'pending'`, strings.Join(sets, ", "))
	result := r.db.WithContext(ctx).Exec(query, args...)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStateConflict
	}
	return nil
}

// UpdateStatus moves a pending bid into a new status. The pending guard keeps
// terminal states terminal even under concurrent writers.
func (r *BidRepository) UpdateStatus(ctx context.Context, id int64, status model.BidStatus) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE bids
		SET status = ?, updated_at = NOW()
		WHERE id = ? AND status = 'pending'
	`, status, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStateConflict
	}
	return nil
}

// AcceptBidParams carries the rows the acceptance transition writes. The
// service composes them; the repository applies them atomically.
type AcceptBidParams struct {
	Bid           model.Bid
	Contract      model.Contract
	Notifications []model.Notification
}

// Accept performs the full acceptance transition in one transaction:
// accept the target bid, reject its pending siblings, move the project to
// IN_PROGRESS with the freelancer assigned, insert the contract and the two
// notifications. Any failure rolls back every step. The bid and project
// updates are guarded on their loaded state; a zero-row update aborts with
// ErrStateConflict.
func (r *BidRepository) Accept(ctx context.Context, params AcceptBidParams) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(`
			UPDATE bids
			SET status = 'accepted', updated_at = NOW()
			WHERE id = ? AND status = 'pending'
		`, params.Bid.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStateConflict
		}

		if err := tx.Exec(`
			UPDATE bids
			SET status = 'rejected', updated_at = NOW()
			WHERE project_id = ? AND id <> ? AND status = 'pending'
		`, params.Bid.ProjectID, params.Bid.ID).Error; err != nil {
			return err
		}

		result = tx.Exec(`
			UPDATE projects
			SET status = 'IN_PROGRESS', freelancer_id = ?
			WHERE id = ? AND status = 'PENDING'
		`, params.Bid.FreelancerID, params.Bid.ProjectID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStateConflict
		}

		if err := tx.Exec(`
			INSERT INTO contracts (number, project_id, freelancer_id, client_id, amount, start_date, status)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			params.Contract.Number,
			params.Contract.ProjectID,
			params.Contract.FreelancerID,
			params.Contract.ClientID,
			params.Contract.Amount,
			params.Contract.StartDate,
			params.Contract.Status,
		).Error; err != nil {
			return err
		}

		for _, notification := range params.Notifications {
			if err := tx.Exec(`
				INSERT INTO notifications (user_id, title, message, type, data)
				VALUES (?, ?, ?, ?, ?)
			`,
				notification.UserID,
				notification.Title,
				notification.Message,
				notification.Type,
				notification.Data,
			).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
