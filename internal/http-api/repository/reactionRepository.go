package repository

import (
	"context"

	"mindhaven/internal/http-api/models"

	"gorm.io/gorm"
)

type ReactionRepository interface {
	Create(ctx context.Context, reaction *models.Reaction) error
	UpdateKind(ctx context.Context, reactionID string, kind models.ReactionKind) error
	Delete(ctx context.Context, reactionID string) error
	GetByContentAndUser(ctx context.Context, contentID string, contentType models.ContentType, userID string) (*models.Reaction, error)
	CountsByContent(ctx context.Context, contentID string, contentType models.ContentType) (map[models.ReactionKind]int64, error)
	TotalsByContents(ctx context.Context, contentIDs []string, contentType models.ContentType) (map[string]int64, error)
	GetReactors(ctx context.Context, contentID string, contentType models.ContentType, kind *models.ReactionKind) ([]models.Reaction, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	return r.db.WithContext(ctx).Create(reaction).Error
}

func (r *reactionRepository) UpdateKind(ctx context.Context, reactionID string, kind models.ReactionKind) error {
	return r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("id = ?", reactionID).
		Update("kind", kind).Error
}

func (r *reactionRepository) Delete(ctx context.Context, reactionID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", reactionID).
		Delete(&models.Reaction{}).Error
}

// GetByContentAndUser retrieves the single reaction a user holds on a content
// item, or gorm.ErrRecordNotFound when they have none.
func (r *reactionRepository) GetByContentAndUser(ctx context.Context, contentID string, contentType models.ContentType, userID string) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("content_id = ? AND content_type = ? AND user_id = ?", contentID, contentType, userID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// CountsByContent returns the number of reactions per kind for a content item.
// Kinds with no reactions are absent from the map; the service layer fills
// zeroes so the response always carries the full enum.
func (r *reactionRepository) CountsByContent(ctx context.Context, contentID string, contentType models.ContentType) (map[models.ReactionKind]int64, error) {
	type kindCount struct {
		Kind  models.ReactionKind
		Count int64
	}
	var rows []kindCount
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("kind, COUNT(*) as count").
		Where("content_id = ? AND content_type = ?", contentID, contentType).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ReactionKind]int64, len(rows))
	for _, row := range rows {
		counts[row.Kind] = row.Count
	}
	return counts, nil
}

// TotalsByContents returns the total reaction count per content id for a batch
// of same-typed items, one grouped query instead of one per item.
func (r *reactionRepository) TotalsByContents(ctx context.Context, contentIDs []string, contentType models.ContentType) (map[string]int64, error) {
	totals := make(map[string]int64, len(contentIDs))
	if len(contentIDs) == 0 {
		return totals, nil
	}

	type row struct {
		ContentID string
		Count     int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("content_id, COUNT(*) as count").
		Where("content_id IN ? AND content_type = ?", contentIDs, contentType).
		Group("content_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		totals[row.ContentID] = row.Count
	}
	return totals, nil
}

// GetReactors retrieves the reactions on a content item newest-first with the
// reacting user preloaded, optionally filtered to one kind.
func (r *reactionRepository) GetReactors(ctx context.Context, contentID string, contentType models.ContentType, kind *models.ReactionKind) ([]models.Reaction, error) {
	query := r.db.WithContext(ctx).
		Where("content_id = ? AND content_type = ?", contentID, contentType).
		Preload("User").
		Order("created_at DESC")

	if kind != nil {
		query = query.Where("kind = ?", *kind)
	}

	var reactions []models.Reaction
	if err := query.Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}

func (r *reactionRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
