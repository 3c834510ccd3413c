package registration

import (
	"context"
	"time"

	"uniconnect/internal/logger"
	"uniconnect/internal/models"
	"uniconnect/internal/validation"

	"go.uber.org/zap"
)

// Registrar persists a finished registration.
type Registrar interface {
	Register(ctx context.Context, in models.ProfileInput) (*models.Profile, error)
}

// Result is the state after one submitted message. Profile is set once the
// registration is stored.
type Result struct {
	Session Session         `json:"session"`
	Profile *models.Profile `json:"profile,omitempty"`
}

type Flow struct {
	store     SessionStore
	registrar Registrar
	limits    validation.Limits
	now       func() time.Time
	log       *zap.Logger
}

func NewFlow(store SessionStore, registrar Registrar, limits validation.Limits, log *zap.Logger) *Flow {
	return &Flow{store: store, registrar: registrar, limits: limits, now: time.Now, log: log.Named("registration")}
}

// Start begins a registration at AwaitingName, discarding any session
// already in progress.
func (f *Flow) Start(ctx context.Context, userID int64) (Session, error) {
	s := NewSession(userID, f.now())
	if err := f.store.Save(ctx, s); err != nil {
		return Session{}, err
	}
	f.log.Debug("registration started", logger.UserID(userID))
	return s, nil
}

// Submit feeds one message to the user's session. domain.ErrNotFound means
// no registration is in progress.
func (f *Flow) Submit(ctx context.Context, userID int64, in Input) (Result, error) {
	cur, err := f.store.Get(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	next, err := Advance(*cur, in, f.limits)
	if err != nil {
		return Result{Session: *cur}, err
	}
	next.UpdatedAt = f.now()

	if next.Step != Complete {
		if err := f.store.Save(ctx, next); err != nil {
			return Result{Session: *cur}, err
		}
		return Result{Session: next}, nil
	}

	p, err := f.registrar.Register(ctx, next.ProfileInput())
	if err != nil {
		// keep the collected fields; the user can resend the photo
		cur.UpdatedAt = next.UpdatedAt
		if serr := f.store.Save(ctx, *cur); serr != nil {
			f.log.Warn("saving session after failed registration", logger.UserID(userID), zap.Error(serr))
		}
		return Result{Session: *cur}, err
	}
	if err := f.store.Delete(ctx, userID); err != nil {
		f.log.Warn("deleting finished session", logger.UserID(userID), zap.Error(err))
	}
	return Result{Session: next, Profile: p}, nil
}

func (f *Flow) Cancel(ctx context.Context, userID int64) error {
	return f.store.Delete(ctx, userID)
}

func (f *Flow) Current(ctx context.Context, userID int64) (*Session, error) {
	return f.store.Get(ctx, userID)
}
