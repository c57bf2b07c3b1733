package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/skillforge/bids-service/internal/model"
	"github.com/skillforge/bids-service/internal/repository"
)

// fakeState is the shared in-memory store behind the per-interface fakes.
type fakeState struct {
	bids            map[int64]*model.Bid
	projects        map[int64]*model.Project
	freelancersByID map[int64]model.Freelancer
	clientsByUser   map[int64]model.Client
	contracts       []model.Contract
	notifications   []model.Notification
	nextBidID       int64
	nextProjectID   int64
}

func newFakeState() *fakeState {
	return &fakeState{
		bids:            map[int64]*model.Bid{},
		projects:        map[int64]*model.Project{},
		freelancersByID: map[int64]model.Freelancer{},
		clientsByUser:   map[int64]model.Client{},
		nextBidID:       100,
		nextProjectID:   100,
	}
}

type fakeBidRepo struct{ s *fakeState }

func (r *fakeBidRepo) GetByID(_ context.Context, id int64) (*model.Bid, error) {
	bid, ok := r.s.bids[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	composed := *bid
	if project, ok := r.s.projects[bid.ProjectID]; ok {
		composed.Project = *project
	}
	composed.Freelancer = r.s.freelancersByID[bid.FreelancerID]
	return &composed, nil
}

func (r *fakeBidRepo) Create(_ context.Context, bid model.Bid) (*model.Bid, error) {
	r.s.nextBidID++
	bid.ID = r.s.nextBidID
	bid.Status = model.BidStatusPending
	stored := bid
	stored.Project = model.Project{}
	stored.Freelancer = model.Freelancer{}
	r.s.bids[bid.ID] = &stored
	return &bid, nil
}

func (r *fakeBidRepo) ExistsForProject(_ context.Context, projectID, freelancerID int64) (bool, error) {
	for _, bid := range r.s.bids {
		if bid.ProjectID == projectID && bid.FreelancerID == freelancerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBidRepo) ListByProject(_ context.Context, projectID int64) ([]model.Bid, error) {
	var bids []model.Bid
	for _, bid := range r.s.bids {
		if bid.ProjectID == projectID {
			bids = append(bids, *bid)
		}
	}
	return bids, nil
}

func (r *fakeBidRepo) ListByFreelancer(_ context.Context, freelancerID int64) ([]model.Bid, error) {
	var bids []model.Bid
	for _, bid := range r.s.bids {
		if bid.FreelancerID == freelancerID {
			bids = append(bids, *bid)
		}
	}
	return bids, nil
}

func (r *fakeBidRepo) UpdateDetails(_ context.Context, id int64, details model.BidDetails) error {
	bid, ok := r.s.bids[id]
	if !ok || bid.Status != model.BidStatusPending {
		return repository.ErrStateConflict
	}
	if details.Amount != nil {
		bid.Amount = *details.Amount
	}
	if details.Timeline != nil {
		bid.Timeline = *details.Timeline
	}
	if details.CoverLetter != nil {
		bid.CoverLetter = *details.CoverLetter
	}
	return nil
}

func (r *fakeBidRepo) UpdateStatus(_ context.Context, id int64, status model.BidStatus) error {
	bid, ok := r.s.bids[id]
	if !ok || bid.Status != model.BidStatusPending {
		return repository.ErrStateConflict
	}
	bid.Status = status
	return nil
}

// Accept mirrors the guarded transaction: all checks first, then all writes,
// so a conflict leaves the state untouched.
func (r *fakeBidRepo) Accept(_ context.Context, params repository.AcceptBidParams) error {
	bid, ok := r.s.bids[params.Bid.ID]
	if !ok || bid.Status != model.BidStatusPending {
		return repository.ErrStateConflict
	}
	project, ok := r.s.projects[params.Bid.ProjectID]
	if !ok || project.Status != model.ProjectStatusPending {
		return repository.ErrStateConflict
	}

	bid.Status = model.BidStatusAccepted
	for _, sibling := range r.s.bids {
		if sibling.ProjectID == params.Bid.ProjectID && sibling.ID != params.Bid.ID &&
			sibling.Status == model.BidStatusPending {
			sibling.Status = model.BidStatusRejected
		}
	}
	freelancerID := params.Bid.FreelancerID
	project.Status = model.ProjectStatusInProgress
	project.FreelancerID = &freelancerID
	r.s.contracts = append(r.s.contracts, params.Contract)
	r.s.notifications = append(r.s.notifications, params.Notifications...)
	return nil
}

type fakeProjectRepo struct{ s *fakeState }

func (r *fakeProjectRepo) GetByID(_ context.Context, id int64) (*model.Project, error) {
	project, ok := r.s.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	composed := *project
	return &composed, nil
}

func (r *fakeProjectRepo) Create(_ context.Context, project model.Project) (*model.Project, error) {
	r.s.nextProjectID++
	project.ID = r.s.nextProjectID
	project.Status = model.ProjectStatusPending
	stored := project
	r.s.projects[project.ID] = &stored
	return &project, nil
}

func (r *fakeProjectRepo) List(_ context.Context, status *model.ProjectStatus, limit, offset int) ([]model.Project, error) {
	var projects []model.Project
	for _, project := range r.s.projects {
		if status != nil && project.Status != *status {
			continue
		}
		projects = append(projects, *project)
	}
	return projects, nil
}

func (r *fakeProjectRepo) UpdateStatus(_ context.Context, id int64, status model.ProjectStatus) error {
	project, ok := r.s.projects[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	project.Status = status
	return nil
}

type fakeNotificationRepo struct{ s *fakeState }

func (r *fakeNotificationRepo) Create(_ context.Context, notification model.Notification) (*model.Notification, error) {
	notification.ID = int64(len(r.s.notifications) + 1)
	r.s.notifications = append(r.s.notifications, notification)
	return &notification, nil
}

func (r *fakeNotificationRepo) ListForUser(_ context.Context, userID int64) ([]model.Notification, error) {
	var result []model.Notification
	for _, notification := range r.s.notifications {
		if notification.UserID == userID {
			result = append(result, notification)
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, userID int64) error {
	for i := range r.s.notifications {
		if r.s.notifications[i].ID == id && r.s.notifications[i].UserID == userID {
			r.s.notifications[i].IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeDirectory struct{ s *fakeState }

func (r *fakeDirectory) GetFreelancerByUserID(_ context.Context, userID int64) (*model.Freelancer, error) {
	for _, freelancer := range r.s.freelancersByID {
		if freelancer.UserID == userID {
			composed := freelancer
			return &composed, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDirectory) GetClientByUserID(_ context.Context, userID int64) (*model.Client, error) {
	client, ok := r.s.clientsByUser[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	composed := client
	return &composed, nil
}

// marketplaceFixture seeds the canonical acceptance scenario: client user 7
// owns PENDING project 10; freelancer users 3 and 4 hold pending bids 5 and
// 6 on it; freelancer user 9 holds withdrawn bid 8.
func marketplaceFixture() *fakeState {
	s := newFakeState()

	s.clientsByUser[7] = model.Client{
		ID: 7, UserID: 7, CompanyName: "Acme Studio",
		User: model.User{ID: 7, Name: "Cara Chen", Email: "cara@acme.test", Role: model.RoleClient},
	}
	s.freelancersByID[3] = model.Freelancer{
		ID: 3, UserID: 3, Headline: "Backend developer",
		User: model.User{ID: 3, Name: "Femi Oba", Email: "femi@dev.test", Role: model.RoleFreelancer},
	}
	s.freelancersByID[4] = model.Freelancer{
		ID: 4, UserID: 4, Headline: "Designer",
		User: model.User{ID: 4, Name: "Dana Ruiz", Email: "dana@dev.test", Role: model.RoleFreelancer},
	}
	s.freelancersByID[9] = model.Freelancer{
		ID: 9, UserID: 9, Headline: "Copywriter",
		User: model.User{ID: 9, Name: "Wes Kim", Email: "wes@dev.test", Role: model.RoleFreelancer},
	}

	s.projects[10] = &model.Project{
		ID: 10, Title: "Marketplace backend", Status: model.ProjectStatusPending,
		ClientID: 7, Budget: 5000,
		Client:   s.clientsByUser[7],
	}

	s.bids[5] = &model.Bid{ID: 5, ProjectID: 10, FreelancerID: 3, Amount: 2500, Status: model.BidStatusPending}
	s.bids[6] = &model.Bid{ID: 6, ProjectID: 10, FreelancerID: 4, Amount: 3100, Status: model.BidStatusPending}
	s.bids[8] = &model.Bid{ID: 8, ProjectID: 10, FreelancerID: 9, Amount: 1800, Status: model.BidStatusWithdrawn}

	return s
}

func newTestBidService(s *fakeState) *BidService {
	return &BidService{
		bids:          &fakeBidRepo{s: s},
		projects:      &fakeProjectRepo{s: s},
		notifications: &fakeNotificationRepo{s: s},
		freelancers:   &fakeDirectory{s: s},
	}
}
