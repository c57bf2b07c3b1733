package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/skillforge/bids-service/internal/model"
)

type NotificationRepository interface {
	ListForUser(ctx context.Context, userID int64) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
}

type NotificationService struct {
	notifications NotificationRepository
}

func NewNotificationService(notifications NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) ListMine(ctx context.Context, principal model.Principal) ([]model.Notification, error) {
	return s.notifications.ListForUser(ctx, principal.UserID)
}

func (s *NotificationService) MarkRead(ctx context.Context, principal model.Principal, id int64) error {
	err := s.notifications.MarkRead(ctx, id, principal.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
