package model

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationTypeBidStatus      NotificationType = "bid_status"
	NotificationTypeBidAccepted    NotificationType = "bid_accepted"
	NotificationTypeProjectStarted NotificationType = "project_started"
)

// Notification is an append-only record surfaced to a user. Data carries the
// related entity ids for UI linking.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Data      datatypes.JSON   `json:"data,omitempty"`
	IsRead    bool             `json:"isRead"`
	ReadAt    *time.Time       `json:"readAt,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
