package domain

import "time"

// ApplicationStatus represents the status of a writer application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application represents a user's request to be promoted to publisher.
// Status moves from pending to accepted or rejected exactly once; acceptance
// promotes the applicant's role as a side effect.
type Application struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	Reason     string            `json:"reason"`
	Status     ApplicationStatus `json:"status"`
	ReviewedBy *string           `json:"reviewed_by,omitempty"`
	Feedback   *string           `json:"feedback,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Resolved reports whether the application has reached a terminal status.
func (a *Application) Resolved() bool {
	return a.Status == ApplicationAccepted || a.Status == ApplicationRejected
}
