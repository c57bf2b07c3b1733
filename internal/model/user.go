package model

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
)

func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin, RoleClient, RoleFreelancer:
		return Role(raw), true
	default:
		return "", false
	}
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Client is the marketplace profile of a user who posts projects.
type Client struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	CompanyName string `json:"companyName"`
	User        User   `json:"user" gorm:"-"`
}

// Freelancer is the marketplace profile of a user who places bids.
type Freelancer struct {
	ID       int64    `json:"id"`
	UserID   int64    `json:"userId"`
	Headline string   `json:"headline"`
	User     User     `json:"user" gorm:"-"`
	Skills   []string `json:"skills" gorm:"-"`
}

// Principal is the verified identity attached to a request by the auth
// middleware. Handlers and services never read identity from raw headers.
type Principal struct {
	UserID int64
	Role   Role
}

func (p Principal) IsAdmin() bool      { return p.Role == RoleAdmin }
func (p Principal) IsClient() bool     { return p.Role == RoleClient }
func (p Principal) IsFreelancer() bool { return p.Role == RoleFreelancer }
