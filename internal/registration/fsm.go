// Package registration drives the step-by-step profile registration
// conversation. Each incoming message advances a Session by one step.
package registration

import (
	"time"

	"uniconnect/internal/domain"
	"uniconnect/internal/models"
	"uniconnect/internal/validation"
)

type Step string

const (
	AwaitingName       Step = "awaiting_name"
	AwaitingAge        Step = "awaiting_age"
	AwaitingDepartment Step = "awaiting_department"
	AwaitingBio        Step = "awaiting_bio"
	AwaitingPhoto      Step = "awaiting_photo"
	Complete           Step = "complete"
)

// Field names the profile field a step collects.
func (s Step) Field() string {
	switch s {
	case AwaitingName:
		return "name"
	case AwaitingAge:
		return "age"
	case AwaitingDepartment:
		return "department"
	case AwaitingBio:
		return "bio"
	case AwaitingPhoto:
		return "photo_ref"
	}
	return ""
}

// Session is one user's registration in progress.
type Session struct {
	UserID     int64     `json:"user_id"`
	Step       Step      `json:"step"`
	Name       string    `json:"name,omitempty"`
	Age        int       `json:"age,omitempty"`
	Department string    `json:"department,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	PhotoRef   string    `json:"photo_ref,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewSession(userID int64, now time.Time) Session {
	return Session{UserID: userID, Step: AwaitingName, UpdatedAt: now}
}

// Input is one user message. PhotoRef is set when the message carries a
// photo; Text holds any text.
type Input struct {
	Text     string
	PhotoRef string
}

// Advance validates in against the current step and moves to the next one.
// On bad input the session is returned unchanged along with the
// *domain.ValidationError.
func Advance(s Session, in Input, l validation.Limits) (Session, error) {
	next := s
	var err error
	switch s.Step {
	case AwaitingName:
		if next.Name, err = l.Name(in.Text); err != nil {
			return s, err
		}
		next.Step = AwaitingAge
	case AwaitingAge:
		if next.Age, err = l.ParseAge(in.Text); err != nil {
			return s, err
		}
		next.Step = AwaitingDepartment
	case AwaitingDepartment:
		if next.Department, err = l.Department(in.Text); err != nil {
			return s, err
		}
		next.Step = AwaitingBio
	case AwaitingBio:
		if next.Bio, err = l.Bio(in.Text); err != nil {
			return s, err
		}
		next.Step = AwaitingPhoto
	case AwaitingPhoto:
		if in.PhotoRef == "" {
			return s, domain.NewValidationError("photo_ref", "a photo is required")
		}
		if next.PhotoRef, err = l.PhotoRef(in.PhotoRef); err != nil {
			return s, err
		}
		next.Step = Complete
	case Complete:
		return s, domain.NewValidationError("step", "registration already complete")
	default:
		return s, domain.NewValidationError("step", "unknown step %q", string(s.Step))
	}
	return next, nil
}

// ProfileInput converts a completed session into a registration.
func (s Session) ProfileInput() models.ProfileInput {
	return models.ProfileInput{
		ID:         s.UserID,
		Name:       s.Name,
		Age:        s.Age,
		Department: s.Department,
		Bio:        s.Bio,
		PhotoRef:   s.PhotoRef,
	}
}
