package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/models"
	"mindhaven/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrInvalidReactionKind = errors.New("invalid reaction kind")

type ReactionService interface {
	React(ctx context.Context, userID, contentID string, contentType models.ContentType, kind models.ReactionKind) (*dto.ReactOutcome, error)
	GetReactions(ctx context.Context, contentID string, contentType models.ContentType, callerID string) (*dto.ReactionStateResponse, error)
	ListReactors(ctx context.Context, contentID string, contentType models.ContentType, kind *models.ReactionKind) ([]dto.ReactorResponse, error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	resolver     ContentResolver
	notifier     NotificationService
}

func NewReactionService(reactionRepo repository.ReactionRepository, resolver ContentResolver, notifier NotificationService) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		resolver:     resolver,
		notifier:     notifier,
	}
}

// React sets, switches, or toggles off the caller's reaction on a content
// item. Every mutating outcome returns the full recomputed count map so the
// caller never needs a separate read.
func (s *reactionService) React(ctx context.Context, userID, contentID string, contentType models.ContentType, kind models.ReactionKind) (*dto.ReactOutcome, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReactionKind, kind)
	}

	ref, err := s.resolver.Resolve(ctx, contentType, contentID)
	if err != nil {
		return nil, err
	}

	existing, err := s.reactionRepo.GetByContentAndUser(ctx, contentID, contentType, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	outcome := &dto.ReactOutcome{}

	switch {
	case existing == nil:
		reaction := &models.Reaction{
			ContentID:   contentID,
			ContentType: contentType,
			UserID:      userID,
			Kind:        kind,
		}
		if err := s.reactionRepo.Create(ctx, reaction); err != nil {
			if !isDuplicateKey(err) {
				return nil, err
			}
			// Lost a race with a concurrent request from the same user: the
			// unique index on (content, type, user) rejected the insert.
			// Fall back to updating whatever row won, making retries
			// idempotent instead of erroring.
			winner, lookupErr := s.reactionRepo.GetByContentAndUser(ctx, contentID, contentType, userID)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if winner.Kind != kind {
				if err := s.reactionRepo.UpdateKind(ctx, winner.ID, kind); err != nil {
					return nil, err
				}
			}
			outcome.Updated = &kind
			break
		}
		outcome.Created = &kind

	case existing.Kind == kind:
		// Same kind again: toggle off
		if err := s.reactionRepo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		outcome.Removed = true

	default:
		// Different kind: switch in place, never a second row
		if err := s.reactionRepo.UpdateKind(ctx, existing.ID, kind); err != nil {
			return nil, err
		}
		outcome.Updated = &kind
	}

	// Both fresh reactions and kind switches reach the owner; the
	// liked-family dedup absorbs repeat toggling.
	if outcome.Created != nil || outcome.Updated != nil {
		s.notifyReaction(ctx, ref, userID, contentID, contentType)
	}

	counts, err := s.reactionRepo.CountsByContent(ctx, contentID, contentType)
	if err != nil {
		return nil, err
	}
	outcome.ReactionCounts = dto.NewReactionCounts(counts)
	return outcome, nil
}

// notifyReaction tells the content owner someone reacted. Comment and reply
// targets get the liked-family kinds so repeated toggling is deduplicated.
func (s *reactionService) notifyReaction(ctx context.Context, ref *ContentRef, actorID, contentID string, contentType models.ContentType) {
	kind := models.NotifyReaction
	message := "reacted to your " + string(contentType)
	switch contentType {
	case models.ContentComment:
		kind = models.NotifyCommentLiked
		message = "liked your comment"
	case models.ContentReply:
		kind = models.NotifyReplyLiked
		message = "liked your reply"
	}

	// Best-effort: the reaction row is already committed
	if err := s.notifier.Notify(ctx, ref.OwnerID, actorID, kind, contentType, contentID, ref.RootID, message); err != nil {
		slog.Error("failed to notify content owner", "kind", kind, "error", err)
	}
}

func (s *reactionService) GetReactions(ctx context.Context, contentID string, contentType models.ContentType, callerID string) (*dto.ReactionStateResponse, error) {
	if !contentType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentType, contentType)
	}

	counts, err := s.reactionRepo.CountsByContent(ctx, contentID, contentType)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReactionStateResponse{ReactionCounts: dto.NewReactionCounts(counts)}

	// CallerKind stays nil for unauthenticated reads
	if callerID != "" {
		existing, err := s.reactionRepo.GetByContentAndUser(ctx, contentID, contentType, callerID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			resp.CallerKind = &existing.Kind
		}
	}
	return resp, nil
}

func (s *reactionService) ListReactors(ctx context.Context, contentID string, contentType models.ContentType, kind *models.ReactionKind) ([]dto.ReactorResponse, error) {
	if !contentType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentType, contentType)
	}
	if kind != nil && !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReactionKind, *kind)
	}

	reactions, err := s.reactionRepo.GetReactors(ctx, contentID, contentType, kind)
	if err != nil {
		return nil, err
	}

	reactors := make([]dto.ReactorResponse, 0, len(reactions))
	for _, reaction := range reactions {
		reactors = append(reactors, *dto.FromModelToReactorResponse(&reaction))
	}
	return reactors, nil
}
