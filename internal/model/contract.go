package model

import "time"

type ContractStatus string

const ContractStatusActive ContractStatus = "active"

// Contract is the immutable record created when a bid is accepted, binding
// client, freelancer and project.
type Contract struct {
	ID           int64          `json:"id"`
	Number       string         `json:"number"`
	ProjectID    int64          `json:"projectId"`
	FreelancerID int64          `json:"freelancerId"`
	ClientID     int64          `json:"clientId"`
	Amount       float64        `json:"amount"`
	StartDate    time.Time      `json:"startDate"`
	Status       ContractStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	Project      Project        `json:"project" gorm:"-"`
	Freelancer   Freelancer     `json:"freelancer" gorm:"-"`
	Client       Client         `json:"client" gorm:"-"`
}
