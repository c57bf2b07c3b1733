package model

import "time"

type ProjectStatus string

const (
	ProjectStatusPending    ProjectStatus = "PENDING"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusOnHold     ProjectStatus = "ON_HOLD"
	ProjectStatusCancelled  ProjectStatus = "CANCELLED"
)

func ParseProjectStatus(raw string) (ProjectStatus, bool) {
	switch ProjectStatus(raw) {
	case ProjectStatusPending, ProjectStatusInProgress, ProjectStatusCompleted,
		ProjectStatusOnHold, ProjectStatusCancelled:
		return ProjectStatus(raw), true
	default:
		return "", false
	}
}

type Project struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Budget       float64       `json:"budget"`
	Status       ProjectStatus `json:"status"`
	ClientID     int64         `json:"clientId"`
	FreelancerID *int64        `json:"freelancerId,omitempty"` // set by bid acceptance
	CreatedAt    time.Time     `json:"createdAt"`
	Client       Client        `json:"client" gorm:"-"`
}
