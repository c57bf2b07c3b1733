package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillforge/bids-service/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateParams carries a new account and its role profile. The user row and
// the profile row are inserted in one transaction.
type CreateParams struct {
	User        model.User
	CompanyName string
	Headline    string
	Skills      []string
}

func (r *UserRepository) Create(ctx context.Context, params CreateParams) (*model.User, error) {
	var saved model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Raw(`
			INSERT INTO users (email, password_hash, name, role)
			VALUES (?, ?, ?, ?)
			RETURNING id, email, password_hash, name, role, created_at
		`,
			params.User.Email,
			params.User.PasswordHash,
			params.User.Name,
			params.User.Role,
		).Scan(&saved).Error
		if err != nil {
			return err
		}

		switch saved.Role {
		case model.RoleClient:
			if err := tx.Exec(`
				INSERT INTO clients (user_id, company_name)
				VALUES (?, ?)
			`, saved.ID, params.CompanyName).Error; err != nil {
				return err
			}
		case model.RoleFreelancer:
			var freelancerID int64
			err := tx.Raw(`
				INSERT INTO freelancers (user_id, headline)
				VALUES (?, ?)
				RETURNING id
			`, saved.ID, params.Headline).Scan(&freelancerID).Error
			if err != nil {
				return err
			}
			for _, skill := range params.Skills {
				if err := tx.Exec(`
					INSERT INTO freelancer_skills (freelancer_id, name)
					VALUES (?, ?)
					ON CONFLICT DO NOTHING
				`, freelancerID, skill).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, email, password_hash, name, role, created_at
		FROM users
		WHERE email = ?
		LIMIT 1
	`, email).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)
	`, email).Scan(&exists).Error
	return exists, err
}

func (r *UserRepository) GetClientByUserID(ctx context.Context, userID int64) (*model.Client, error) {
	var client model.Client
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, user_id, company_name
		FROM clients
		WHERE user_id = ?
		LIMIT 1
	`, userID).Scan(&client).Error
	if err != nil {
		return nil, err
	}
	if client.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &client, nil
}

func (r *UserRepository) GetFreelancerByUserID(ctx context.Context, userID int64) (*model.Freelancer, error) {
	var freelancer model.Freelancer
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, user_id, headline
		FROM freelancers
		WHERE user_id = ?
		LIMIT 1
	`, userID).Scan(&freelancer).Error
	if err != nil {
		return nil, err
	}
	if freelancer.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &freelancer, nil
}
