package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/skillforge/bids-service/internal/model"
)

type ProjectRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	Create(ctx context.Context, project model.Project) (*model.Project, error)
	List(ctx context.Context, status *model.ProjectStatus, limit, offset int) ([]model.Project, error)
	UpdateStatus(ctx context.Context, id int64, status model.ProjectStatus) error
}

type ClientDirectory interface {
	GetClientByUserID(ctx context.Context, userID int64) (*model.Client, error)
}

type ProjectService struct {
	projects ProjectRepository
	clients  ClientDirectory
}

func NewProjectService(projects ProjectRepository, clients ClientDirectory) *ProjectService {
	return &ProjectService{projects: projects, clients: clients}
}

type CreateProjectInput struct {
	Title       string
	Description string
	Budget      float64
}

func (s *ProjectService) Create(ctx context.Context, principal model.Principal, input CreateProjectInput) (*model.Project, error) {
	if !principal.IsClient() {
		return nil, fmt.Errorf("%w: only clients can create projects", ErrPermissionDenied)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.Budget < 0 {
		return nil, fmt.Errorf("%w: budget must not be negative", ErrInvalidInput)
	}

	client, err := s.clients.GetClientByUserID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client profile not found", ErrNotFound)
		}
		return nil, err
	}

	return s.projects.Create(ctx, model.Project{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Budget:      input.Budget,
		ClientID:    client.ID,
	})
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, status *model.ProjectStatus, limit, offset int) ([]model.Project, error) {
	return s.projects.List(ctx, status, limit, offset)
}

// UpdateStatus lets the owning client or an admin move a project through its
// lifecycle. The acceptance transition owns the PENDING -> IN_PROGRESS move;
// this path covers the administrative ones.
func (s *ProjectService) UpdateStatus(ctx context.Context, principal model.Principal, id int64, status model.ProjectStatus) (*model.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.IsAdmin() && project.Client.UserID != principal.UserID {
		return nil, fmt.Errorf("%w: only the project owner can change its status", ErrPermissionDenied)
	}

	if err := s.projects.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}
