package dto

import (
	"time"

	"mindhaven/internal/http-api/models"
)

// AchievementResponse is one catalog entry.
type AchievementResponse struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Threshold   int    `json:"threshold"`
	IconURL     string `json:"icon_url"`
}

func FromModelToAchievementResponse(achievement *models.Achievement) *AchievementResponse {
	return &AchievementResponse{
		ID:          achievement.ID,
		Code:        achievement.Code,
		Name:        achievement.Name,
		Description: achievement.Description,
		Threshold:   achievement.Threshold,
		IconURL:     achievement.IconURL,
	}
}

// UserAchievementResponse is one unlocked achievement with its catalog entry.
type UserAchievementResponse struct {
	Achievement AchievementResponse `json:"achievement"`
	UnlockedAt  time.Time           `json:"unlocked_at"`
}

func FromModelToUserAchievementResponse(unlock *models.UserAchievement) *UserAchievementResponse {
	resp := &UserAchievementResponse{UnlockedAt: unlock.UnlockedAt}
	if unlock.Achievement != nil {
		resp.Achievement = *FromModelToAchievementResponse(unlock.Achievement)
	}
	return resp
}

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Points    int    `json:"points"`
}
