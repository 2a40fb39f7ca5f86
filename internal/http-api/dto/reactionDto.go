package dto

import (
	"time"

	"mindhaven/internal/http-api/models"
)

// ReactRequest is the payload for setting/toggling a reaction
type ReactRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// ReactionCounts carries the full per-kind breakdown plus the grand total.
// Every kind in the enum is present, zero-filled, so clients never need a
// follow-up read after a mutation.
type ReactionCounts struct {
	Counts map[models.ReactionKind]int64 `json:"counts"`
	Total  int64                         `json:"total"`
}

// NewReactionCounts zero-fills the map for every known kind before applying
// the observed counts.
func NewReactionCounts(observed map[models.ReactionKind]int64) ReactionCounts {
	counts := make(map[models.ReactionKind]int64, len(models.ReactionKinds))
	var total int64
	for _, kind := range models.ReactionKinds {
		n := observed[kind]
		counts[kind] = n
		total += n
	}
	return ReactionCounts{Counts: counts, Total: total}
}

// ReactOutcome describes what a react call did plus the fresh counts.
// Exactly one of Created/Updated/Removed is set.
type ReactOutcome struct {
	Created *models.ReactionKind `json:"created,omitempty"`
	Updated *models.ReactionKind `json:"updated,omitempty"`
	Removed bool                 `json:"removed,omitempty"`
	ReactionCounts
}

// ReactionStateResponse is the read shape for a content item's reactions.
type ReactionStateResponse struct {
	ReactionCounts
	// CallerKind is nil when the caller is unauthenticated or has no reaction.
	CallerKind *models.ReactionKind `json:"caller_kind"`
}

// ReactorResponse identifies one user who reacted to a content item.
type ReactorResponse struct {
	UserID    string              `json:"user_id"`
	Username  string              `json:"username"`
	AvatarURL string              `json:"avatar_url"`
	Kind      models.ReactionKind `json:"kind"`
	ReactedAt time.Time           `json:"reacted_at"`
}

// FromModelToReactorResponse converts a Reaction with preloaded User
func FromModelToReactorResponse(reaction *models.Reaction) *ReactorResponse {
	resp := &ReactorResponse{
		UserID:    reaction.UserID,
		Kind:      reaction.Kind,
		ReactedAt: reaction.CreatedAt,
	}
	if reaction.User != nil {
		resp.Username = reaction.User.Username
		resp.AvatarURL = reaction.User.AvatarURL
	}
	return resp
}
