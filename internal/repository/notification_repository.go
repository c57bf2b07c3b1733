package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillforge/bids-service/internal/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification model.Notification) (*model.Notification, error) {
	var saved model.Notification
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO notifications (user_id, title, message, type, data)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, user_id, title, message, type, data, is_read, read_at, created_at
	`,
		notification.UserID,
		notification.Title,
		notification.Message,
		notification.Type,
		notification.Data,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *NotificationRepository) ListForUser(ctx context.Context, userID int64) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, user_id, title, message, type, data, is_read, read_at, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID).Scan(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips is_read for the caller's own notification only; marking
// someone else's row behaves like not-found.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = ? AND user_id = ?
	`, id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
