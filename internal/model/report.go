package model

import "time"

// ActivityReport is the input for the admin xlsx export: a summary of the
// marketplace over a period plus per-project bid detail.
type ActivityReport struct {
	PeriodStart   time.Time
	PeriodEnd     time.Time
	TotalProjects int64
	TotalBids     int64
	Projects      []ProjectActivity
}

type ProjectActivity struct {
	ID            int64
	Title         string
	Status        ProjectStatus
	ClientCompany string
	BidCount      int64
	Bids          []BidActivity `gorm:"-"`
}

type BidActivity struct {
	ID             int64
	FreelancerName string
	Amount         float64
	Status         BidStatus
	CreatedAt      time.Time
}
