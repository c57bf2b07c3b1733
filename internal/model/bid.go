package model

import "time"

type BidStatus string

const (
	BidStatusPending   BidStatus = "pending"
	BidStatusAccepted  BidStatus = "accepted"
	BidStatusRejected  BidStatus = "rejected"
	BidStatusWithdrawn BidStatus = "withdrawn"
)

func ParseBidStatus(raw string) (BidStatus, bool) {
	switch BidStatus(raw) {
	case BidStatusPending, BidStatusAccepted, BidStatusRejected, BidStatusWithdrawn:
		return BidStatus(raw), true
	default:
		return "", false
	}
}

// Terminal reports whether no further transition may leave the status.
func (s BidStatus) Terminal() bool {
	return s == BidStatusAccepted || s == BidStatusRejected || s == BidStatusWithdrawn
}

// Bid is a freelancer's proposal against an open project. At most one bid
// exists per (project, freelancer) pair.
type Bid struct {
	ID           int64      `json:"id"`
	ProjectID    int64      `json:"projectId"`
	FreelancerID int64      `json:"freelancerId"`
	Amount       float64    `json:"amount"`
	Timeline     string     `json:"timeline"`
	CoverLetter  string     `json:"coverLetter"`
	Status       BidStatus  `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Project      Project    `json:"project" gorm:"-"`
	Freelancer   Freelancer `json:"freelancer" gorm:"-"`
}

// BidDetails are the fields only the owning freelancer may edit, and only
// while the bid is pending.
type BidDetails struct {
	Amount      *float64
	Timeline    *string
	CoverLetter *string
}

func (d BidDetails) Empty() bool {
	return d.Amount == nil && d.Timeline == nil && d.CoverLetter == nil
}
