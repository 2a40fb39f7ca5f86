package service

import (
	"context"
	"errors"
	"log/slog"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/models"
	"mindhaven/internal/http-api/repository"
	"mindhaven/internal/realtime"
)

var ErrNotificationNotFound = errors.New("notification not found or already seen")

type NotificationService interface {
	// Notify persists a notification and pushes it over the live channel.
	// Best-effort by contract: the primary mutation that triggered it has
	// already committed, so callers log the returned error and move on.
	Notify(ctx context.Context, recipientID, actorID string, kind models.NotificationKind, contentType models.ContentType, contentID, rootID, message string) error
	GetInbox(ctx context.Context, recipientID string, page, pageSize int) (*dto.PaginatedNotificationResponse, error)
	CountUnseen(ctx context.Context, recipientID string) (int64, error)
	MarkSeen(ctx context.Context, recipientID, notificationID string) error
	MarkAllSeen(ctx context.Context, recipientID string) error
}

type notificationService struct {
	repo      repository.NotificationRepository
	publisher realtime.Publisher
}

func NewNotificationService(repo repository.NotificationRepository, publisher realtime.Publisher) NotificationService {
	return &notificationService{repo: repo, publisher: publisher}
}

func (s *notificationService) Notify(ctx context.Context, recipientID, actorID string, kind models.NotificationKind, contentType models.ContentType, contentID, rootID, message string) error {
	// Self-action is silent
	if recipientID == actorID {
		return nil
	}

	// Liked-family kinds are deduplicated against an existing unseen row so
	// like/unlike toggling cannot spam the recipient. Comments and replies
	// are each distinct events and always produce a fresh notification.
	if kind.IsLikedKind() {
		exists, err := s.repo.HasUnseen(ctx, recipientID, actorID, contentID, contentType, kind)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
	}

	// Empty actor/root ids become NULL so the uuid columns accept
	// system-generated kinds (achievement unlocks have no acting user).
	var actor, root *string
	if actorID != "" {
		actor = &actorID
	}
	if rootID != "" {
		root = &rootID
	}

	notification := &models.Notification{
		RecipientID: recipientID,
		ActorID:     actor,
		Kind:        kind,
		ContentType: contentType,
		ContentID:   contentID,
		RootID:      root,
		Message:     message,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	s.push(ctx, notification)
	return nil
}

// push sends the live events. Delivery is best-effort: a disconnected
// recipient polls the row later, a broker failure only gets logged.
func (s *notificationService) push(ctx context.Context, notification *models.Notification) {
	event, err := realtime.NewEvent(realtime.EventNewNotification, dto.FromModelToNotificationResponse(notification))
	if err != nil {
		slog.Error("failed to encode notification event", "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, notification.RecipientID, event); err != nil {
		slog.Error("failed to publish notification", "recipient", notification.RecipientID, "error", err)
		return
	}

	unseen, err := s.repo.CountUnseen(ctx, notification.RecipientID)
	if err != nil {
		slog.Error("failed to count unseen notifications", "recipient", notification.RecipientID, "error", err)
		return
	}
	counterEvent, err := realtime.NewEvent(realtime.EventUnseenCount, map[string]int64{"unseen": unseen})
	if err != nil {
		slog.Error("failed to encode counter event", "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, notification.RecipientID, counterEvent); err != nil {
		slog.Error("failed to publish unseen counter", "recipient", notification.RecipientID, "error", err)
	}
}

func (s *notificationService) GetInbox(ctx context.Context, recipientID string, page, pageSize int) (*dto.PaginatedNotificationResponse, error) {
	notifications, total, err := s.repo.GetByRecipient(ctx, recipientID, page, pageSize)
	if err != nil {
		return nil, err
	}

	unseen, err := s.repo.CountUnseen(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, *dto.FromModelToNotificationResponse(&n))
	}

	return dto.NewPaginatedNotificationResponse(responses, int(total), page, pageSize, unseen), nil
}

func (s *notificationService) CountUnseen(ctx context.Context, recipientID string) (int64, error) {
	return s.repo.CountUnseen(ctx, recipientID)
}

func (s *notificationService) MarkSeen(ctx context.Context, recipientID, notificationID string) error {
	affected, err := s.repo.MarkSeen(ctx, recipientID, notificationID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllSeen(ctx context.Context, recipientID string) error {
	return s.repo.MarkAllSeen(ctx, recipientID)
}
