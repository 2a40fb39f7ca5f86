package database

import (
	"fmt"
	"log/slog"

	"mindhaven/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// defaultAchievements is the built-in catalog. Rows are keyed by Code so
// re-running the seed never duplicates or resets unlock progress.
var defaultAchievements = []models.Achievement{
	{Code: "first_steps", Name: "First Steps", Description: "Earn your first 10 points", Threshold: 10},
	{Code: "opening_up", Name: "Opening Up", Description: "Reach 50 points by sharing and engaging", Threshold: 50},
	{Code: "helping_hand", Name: "Helping Hand", Description: "Reach 150 points supporting the community", Threshold: 150},
	{Code: "steady_presence", Name: "Steady Presence", Description: "Reach 400 points", Threshold: 400},
	{Code: "community_pillar", Name: "Community Pillar", Description: "Reach 1000 points", Threshold: 1000},
}

func seedAchievements(db *gorm.DB, logger *slog.Logger) error {
	for _, achievement := range defaultAchievements {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&achievement).Error
		if err != nil {
			return fmt.Errorf("failed to seed achievement %q: %w", achievement.Code, err)
		}
	}

	logger.Info("Achievement catalog seeded", "count", len(defaultAchievements))
	return nil
}
