package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/skillforge/bids-service/internal/config"
	"github.com/skillforge/bids-service/internal/metrics"
	"github.com/skillforge/bids-service/internal/model"
	"github.com/skillforge/bids-service/internal/repository"
)

type BidRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Bid, error)
	Create(ctx context.Context, bid model.Bid) (*model.Bid, error)
	ExistsForProject(ctx context.Context, projectID, freelancerID int64) (bool, error)
	ListByProject(ctx context.Context, projectID int64) ([]model.Bid, error)
	ListByFreelancer(ctx context.Context, freelancerID int64) ([]model.Bid, error)
	UpdateDetails(ctx context.Context, id int64, details model.BidDetails) error
	UpdateStatus(ctx context.Context, id int64, status model.BidStatus) error
	Accept(ctx context.Context, params repository.AcceptBidParams) error
}

type NotificationWriter interface {
	Create(ctx context.Context, notification model.Notification) (*model.Notification, error)
}

type ProjectReader interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
}

type FreelancerDirectory interface {
	GetFreelancerByUserID(ctx context.Context, userID int64) (*model.Freelancer, error)
}

type BidService struct {
	bids          BidRepository
	projects      ProjectReader
	notifications NotificationWriter
	freelancers   FreelancerDirectory
	minAmount     float64
}

func NewBidService(
	bids BidRepository,
	projects ProjectReader,
	notifications NotificationWriter,
	freelancers FreelancerDirectory,
	cfg *config.Config,
) *BidService {
	return &BidService{
		bids:          bids,
		projects:      projects,
		notifications: notifications,
		freelancers:   freelancers,
		minAmount:     cfg.Bids.MinAmount,
	}
}

func (s *BidService) Get(ctx context.Context, id int64) (*model.Bid, error) {
	bid, err := s.bids.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return bid, nil
}

type CreateBidInput struct {
	ProjectID   int64
	Amount      float64
	Timeline    string
	CoverLetter string
}

func (s *BidService) Create(ctx context.Context, principal model.Principal, input CreateBidInput) (*model.Bid, error) {
	if !principal.IsFreelancer() {
		return nil, fmt.Errorf("%w: only freelancers can place bids", ErrPermissionDenied)
	}
	if input.Amount <= s.minAmount {
		return nil, fmt.Errorf("%w: amount must be greater than %.2f", ErrInvalidInput, s.minAmount)
	}

	freelancer, err := s.freelancers.GetFreelancerByUserID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: freelancer profile not found", ErrNotFound)
		}
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project not found", ErrNotFound)
		}
		return nil, err
	}
	if project.Status != model.ProjectStatusPending {
		return nil, fmt.Errorf("%w: project is not open for bids", ErrConflict)
	}

	exists, err := s.bids.ExistsForProject(ctx, project.ID, freelancer.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: bid already placed on this project", ErrConflict)
	}

	return s.bids.Create(ctx, model.Bid{
		ProjectID:    project.ID,
		FreelancerID: freelancer.ID,
		Amount:       input.Amount,
		Timeline:     input.Timeline,
		CoverLetter:  input.CoverLetter,
	})
}

func (s *BidService) ListForProject(ctx context.Context, principal model.Principal, projectID int64) ([]model.Bid, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !principal.IsAdmin() && project.Client.UserID != principal.UserID {
		return nil, fmt.Errorf("%w: only the project owner can list its bids", ErrPermissionDenied)
	}
	return s.bids.ListByProject(ctx, projectID)
}

func (s *BidService) ListMine(ctx context.Context, principal model.Principal) ([]model.Bid, error) {
	if !principal.IsFreelancer() {
		return nil, fmt.Errorf("%w: only freelancers have bids of their own", ErrPermissionDenied)
	}
	freelancer, err := s.freelancers.GetFreelancerByUserID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: freelancer profile not found", ErrNotFound)
		}
		return nil, err
	}
	return s.bids.ListByFreelancer(ctx, freelancer.ID)
}

// UpdateDetails is the freelancer-owner edit path of PUT /bids/:id. Detail
// edits and status changes are separate entry points so a single call can
// never mix them.
func (s *BidService) UpdateDetails(ctx context.Context, principal model.Principal, id int64, details model.BidDetails) (*model.Bid, error) {
	if details.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	if details.Amount != nil && *details.Amount <= s.minAmount {
		return nil, fmt.Errorf("%w: amount must be greater than %.2f", ErrInvalidInput, s.minAmount)
	}

	bid, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(principal, bid); err != nil {
		return nil, err
	}
	if bid.Freelancer.UserID != principal.UserID {
		return nil, fmt.Errorf("%w: only the bid owner can edit bid details", ErrPermissionDenied)
	}
	if bid.Status != model.BidStatusPending {
		return nil, fmt.Errorf("%w: bid is not pending", ErrConflict)
	}

	if err := s.bids.UpdateDetails(ctx, id, details); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, fmt.Errorf("%w: bid is not pending", ErrConflict)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// UpdateStatus is the status-change path of PUT /bids/:id, reserved for the
// project's client owner or an admin. "accepted" runs the full acceptance
// transition; any other allowed status is a plain update plus one
// notification to the freelancer.
func (s *BidService) UpdateStatus(ctx context.Context, principal model.Principal, id int64, status model.BidStatus) (*model.Bid, error) {
	if status != model.BidStatusAccepted && status != model.BidStatusRejected {
		return nil, fmt.Errorf("%w: status must be accepted or rejected", ErrInvalidInput)
	}

	bid, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(principal, bid); err != nil {
		return nil, err
	}
	if bid.Freelancer.UserID == principal.UserID && !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: freelancers cannot change bid status", ErrPermissionDenied)
	}
	if bid.Status != model.BidStatusPending {
		return nil, fmt.Errorf("%w: bid is not pending", ErrConflict)
	}

	if status == model.BidStatusAccepted {
		if err := s.accept(ctx, bid); err != nil {
			return nil, err
		}
		return s.Get(ctx, id)
	}

	if err := s.bids.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return nil, fmt.Errorf("%w: bid is not pending", ErrConflict)
		}
		return nil, err
	}

	payload := notificationPayload(bid)
	if _, err := s.notifications.Create(ctx, model.Notification{
		UserID:  bid.Freelancer.UserID,
		Title:   "Bid Status Updated",
		Message: fmt.Sprintf("Your bid on %q was %s.", bid.Project.Title, status),
		Type:    model.NotificationTypeBidStatus,
		Data:    payload,
	}); err != nil {
		return nil, err
	}
	metrics.IncrementNotificationsCreated(string(model.NotificationTypeBidStatus))

	return s.Get(ctx, id)
}

// accept runs the atomic acceptance transition. The repository guards the
// bid and project state inside the transaction, so a concurrent accept on a
// sibling bid loses cleanly with a conflict.
func (s *BidService) accept(ctx context.Context, bid *model.Bid) error {
	if bid.Project.Status != model.ProjectStatusPending {
		return fmt.Errorf("%w: project is no longer open", ErrConflict)
	}

	payload := notificationPayload(bid)
	params := repository.AcceptBidParams{
		Bid: *bid,
		Contract: model.Contract{
			Number:       contractNumber(),
			ProjectID:    bid.ProjectID,
			FreelancerID: bid.FreelancerID,
			ClientID:     bid.Project.ClientID,
			Amount:       bid.Amount,
			StartDate:    time.Now().UTC(),
			Status:       model.ContractStatusActive,
		},
		Notifications: []model.Notification{
			{
				UserID:  bid.Freelancer.UserID,
				Title:   "Bid Accepted",
				Message: fmt.Sprintf("Your bid on %q was accepted.", bid.Project.Title),
				Type:    model.NotificationTypeBidAccepted,
				Data:    payload,
			},
			{
				UserID:  bid.Project.Client.UserID,
				Title:   "Project Started",
				Message: fmt.Sprintf("Project %q is now in progress.", bid.Project.Title),
				Type:    model.NotificationTypeProjectStarted,
				Data:    payload,
			},
		},
	}

	if err := s.bids.Accept(ctx, params); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return fmt.Errorf("%w: bid or project already transitioned", ErrConflict)
		}
		return err
	}

	metrics.IncrementBidsAccepted()
	metrics.IncrementNotificationsCreated(string(model.NotificationTypeBidAccepted))
	metrics.IncrementNotificationsCreated(string(model.NotificationTypeProjectStarted))
	return nil
}

// Withdraw implements DELETE /bids/:id: the owning freelancer retracts a
// still-pending bid.
func (s *BidService) Withdraw(ctx context.Context, principal model.Principal, id int64) error {
	bid, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if bid.Freelancer.UserID != principal.UserID {
		return fmt.Errorf("%w: only the bid owner can withdraw it", ErrPermissionDenied)
	}
	if bid.Status != model.BidStatusPending {
		return fmt.Errorf("%w: only pending bids can be withdrawn", ErrConflict)
	}

	if err := s.bids.UpdateStatus(ctx, id, model.BidStatusWithdrawn); err != nil {
		if errors.Is(err, repository.ErrStateConflict) {
			return fmt.Errorf("%w: only pending bids can be withdrawn", ErrConflict)
		}
		return err
	}
	return nil
}

// authorize admits the bid's freelancer owner, the project's client owner
// and admins; everyone else gets a permission error.
func (s *BidService) authorize(principal model.Principal, bid *model.Bid) error {
	if principal.IsAdmin() {
		return nil
	}
	if bid.Freelancer.UserID == principal.UserID {
		return nil
	}
	if bid.Project.Client.UserID == principal.UserID {
		return nil
	}
	return fmt.Errorf("%w: not a party to this bid", ErrPermissionDenied)
}

func notificationPayload(bid *model.Bid) datatypes.JSON {
	raw, _ := json.Marshal(map[string]int64{
		"projectId":    bid.ProjectID,
		"bidId":        bid.ID,
		"freelancerId": bid.FreelancerID,
	})
	return datatypes.JSON(raw)
}

func contractNumber() string {
	return "CT-" + strings.ToUpper(uuid.NewString()[:8])
}
