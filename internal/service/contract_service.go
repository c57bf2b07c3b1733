package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/skillforge/bids-service/internal/model"
)

type ContractRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Contract, error)
}

type ContractDocumentGenerator interface {
	Generate(contract model.Contract) ([]byte, error)
}

type ContractService struct {
	contracts ContractRepository
	pdf       ContractDocumentGenerator
}

func NewContractService(contracts ContractRepository, pdf ContractDocumentGenerator) *ContractService {
	return &ContractService{contracts: contracts, pdf: pdf}
}

func (s *ContractService) Get(ctx context.Context, principal model.Principal, id int64) (*model.Contract, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !principal.IsAdmin() &&
		contract.Client.UserID != principal.UserID &&
		contract.Freelancer.UserID != principal.UserID {
		return nil, fmt.Errorf("%w: not a party to this contract", ErrPermissionDenied)
	}
	return contract, nil
}

type ContractDocument struct {
	FileName string
	Content  []byte
}

func (s *ContractService) Document(ctx context.Context, principal model.Principal, id int64) (*ContractDocument, error) {
	contract, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*contract)
	if err != nil {
		return nil, err
	}
	return &ContractDocument{
		FileName: fmt.Sprintf("contract-%s.pdf", contract.Number),
		Content:  content,
	}, nil
}
