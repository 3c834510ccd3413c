package service

import (
	"context"
	"encoding/json"
	"time"

	"uniconnect/internal/domain"
	"uniconnect/internal/logger"
	"uniconnect/internal/models"
	"uniconnect/internal/repository"

	"go.uber.org/zap"
)

// Broadcaster pushes a payload to live connections of a user.
type Broadcaster interface {
	BroadcastToUser(userID int64, payload interface{})
}

// Event is the websocket payload announcing a notification.
type Event struct {
	Type         string               `json:"type"`
	UserID       int64                `json:"user_id"`
	Notification *models.Notification `json:"notification"`
}

type NotificationService struct {
	repo     *repository.NotificationRepository
	profiles *repository.ProfileRepository
	hub      Broadcaster
	timeout  time.Duration
	log      *zap.Logger
}

func NewNotificationService(
	repo *repository.NotificationRepository,
	profiles *repository.ProfileRepository,
	hub Broadcaster,
	timeout time.Duration,
	log *zap.Logger,
) *NotificationService {
	return &NotificationService{repo: repo, profiles: profiles, hub: hub, timeout: timeout, log: log.Named("notifications")}
}

func (s *NotificationService) Notify(ctx context.Context, userID int64, notifType, title, body string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	n := &models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	}
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	if err := s.repo.Create(ctx, n); err != nil {
		return storeErr("notify", err)
	}
	if s.hub != nil {
		s.hub.BroadcastToUser(userID, Event{Type: "notification", UserID: userID, Notification: n})
	}
	return nil
}

// NotifyMatch tells both users about a new match. Failures are logged only;
// the match itself is already stored.
func (s *NotificationService) NotifyMatch(ctx context.Context, a, b int64) {
	for _, pair := range [][2]int64{{a, b}, {b, a}} {
		userID, peerID := pair[0], pair[1]
		body := "You have a new match"
		if p, err := s.peer(ctx, peerID); err == nil {
			body = "You matched with " + p.Name
		}
		err := s.Notify(ctx, userID, domain.NotificationTypeMatch, "New match", body, map[string]interface{}{"match_user_id": peerID})
		if err != nil {
			s.log.Warn("match notification failed", logger.UserID(userID), zap.Error(err))
		}
	}
}

func (s *NotificationService) peer(ctx context.Context, id int64) (*models.Profile, error) {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	return s.profiles.GetByID(ctx, id)
}

func (s *NotificationService) List(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	list, err := s.repo.ListByUserID(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, storeErr("list_notifications", err)
	}
	return list, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID int64, id uint) error {
	ctx, cancel := bounded(ctx, s.timeout)
	defer cancel()
	ok, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return storeErr("mark_read", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
