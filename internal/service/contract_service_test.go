package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/skillforge/bids-service/internal/model"
)

type fakeContractRepo struct {
	contracts map[int64]*model.Contract
}

func (r *fakeContractRepo) GetByID(_ context.Context, id int64) (*model.Contract, error) {
	contract, ok := r.contracts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *contract
	return &copied, nil
}

type fakePDF struct{}

func (fakePDF) Generate(model.Contract) ([]byte, error) { return []byte("%PDF"), nil }

func TestContractServiceAccess(t *testing.T) {
	repo := &fakeContractRepo{contracts: map[int64]*model.Contract{
		1: {
			ID: 1, Number: "CT-1A2B3C4D", Amount: 2500,
			Client:     model.Client{ID: 7, UserID: 7},
			Freelancer: model.Freelancer{ID: 3, UserID: 3},
		},
	}}
	svc := NewContractService(repo, fakePDF{})

	tests := []struct {
		name      string
		principal model.Principal
		wantErr   error
	}{
		{"client party", model.Principal{UserID: 7, Role: model.RoleClient}, nil},
		{"freelancer party", model.Principal{UserID: 3, Role: model.RoleFreelancer}, nil},
		{"admin", model.Principal{UserID: 1, Role: model.RoleAdmin}, nil},
		{"outsider", model.Principal{UserID: 42, Role: model.RoleClient}, ErrPermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Get(context.Background(), tt.principal, 1)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}

	_, err := svc.Get(context.Background(), model.Principal{UserID: 1, Role: model.RoleAdmin}, 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestContractServiceDocument(t *testing.T) {
	repo := &fakeContractRepo{contracts: map[int64]*model.Contract{
		1: {ID: 1, Number: "CT-1A2B3C4D", Freelancer: model.Freelancer{UserID: 3}},
	}}
	svc := NewContractService(repo, fakePDF{})

	doc, err := svc.Document(context.Background(), model.Principal{UserID: 3, Role: model.RoleFreelancer}, 1)
	require.NoError(t, err)
	assert.Equal(t, "contract-CT-1A2B3C4D.pdf", doc.FileName)
	assert.Equal(t, []byte("%PDF"), doc.Content)
}
