package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/bids-service/internal/model"
)

func newTestProjectService(s *fakeState) *ProjectService {
	return NewProjectService(&fakeProjectRepo{s: s}, &fakeDirectory{s: s})
}

func TestProjectServiceCreate(t *testing.T) {
	s := marketplaceFixture()
	svc := newTestProjectService(s)
	client := model.Principal{UserID: 7, Role: model.RoleClient}

	project, err := svc.Create(context.Background(), client, CreateProjectInput{
		Title:       "  Landing page  ",
		Description: "Five pages, responsive.",
		Budget:      1200,
	})
	require.NoError(t, err)
	assert.Equal(t, "Landing page", project.Title)
	assert.Equal(t, model.ProjectStatusPending, project.Status)
	assert.Equal(t, int64(7), project.ClientID)
}

func TestProjectServiceCreateErrors(t *testing.T) {
	svc := newTestProjectService(marketplaceFixture())
	client := model.Principal{UserID: 7, Role: model.RoleClient}

	_, err := svc.Create(context.Background(), model.Principal{UserID: 3, Role: model.RoleFreelancer}, CreateProjectInput{Title: "x"})
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Create(context.Background(), client, CreateProjectInput{Title: "   "})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), client, CreateProjectInput{Title: "x", Budget: -1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), model.Principal{UserID: 55, Role: model.RoleClient}, CreateProjectInput{Title: "x"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProjectServiceUpdateStatus(t *testing.T) {
	s := marketplaceFixture()
	svc := newTestProjectService(s)
	client := model.Principal{UserID: 7, Role: model.RoleClient}

	project, err := svc.UpdateStatus(context.Background(), client, 10, model.ProjectStatusOnHold)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusOnHold, project.Status)

	_, err = svc.UpdateStatus(context.Background(), model.Principal{UserID: 3, Role: model.RoleFreelancer}, 10, model.ProjectStatusCancelled)
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.UpdateStatus(context.Background(), client, 999, model.ProjectStatusOnHold)
	require.ErrorIs(t, err, ErrNotFound)
}
