package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is fixed when the user registers and gates every protected route.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// ParseRole accepts only the two known roles.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleCandidate:
		return RoleCandidate, nil
	case RoleRecruiter:
		return RoleRecruiter, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

type ApplicationStatus string

const (
	StatusApplied  ApplicationStatus = "applied"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// ParseDecision parses a recruiter decision. "applied" is the initial state
// and is never accepted as a target.
func ParseDecision(s string) (ApplicationStatus, bool) {
	switch ApplicationStatus(s) {
	case StatusAccepted:
		return StatusAccepted, true
	case StatusRejected:
		return StatusRejected, true
	default:
		return "", false
	}
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:254" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"size:20;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Job struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Company     string `gorm:"size:200;not null" json:"company"`
	Location    string `gorm:"size:100;not null" json:"location"`
	Salary      *int   `json:"salary"`

	// Owner; always a recruiter at creation time.
	PostedByID uint `gorm:"not null;index" json:"posted_by"`
	PostedBy   User `gorm:"foreignKey:PostedByID" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// Application is unique per (job, candidate); the composite index closes the
// window between the existence check and the insert.
type Application struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	JobID       uint              `gorm:"not null;uniqueIndex:idx_applications_job_candidate" json:"job"`
	Job         Job               `gorm:"foreignKey:JobID" json:"-"`
	CandidateID uint              `gorm:"not null;uniqueIndex:idx_applications_job_candidate;index" json:"candidate"`
	Candidate   User              `gorm:"foreignKey:CandidateID" json:"-"`
	Status      ApplicationStatus `gorm:"size:20;not null" json:"status"`
	AppliedAt   time.Time         `gorm:"autoCreateTime" json:"applied_at"`
}
