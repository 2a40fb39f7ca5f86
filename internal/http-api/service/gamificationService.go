package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/models"
	"mindhaven/internal/http-api/repository"
)

// PointsAction names a point-earning activity.
type PointsAction string

const (
	ActionPost    PointsAction = "post"
	ActionComment PointsAction = "comment"
	ActionReply   PointsAction = "reply"
	ActionAnswer  PointsAction = "answer"
	ActionStory   PointsAction = "story"
)

// pointValues is the award table per activity.
var pointValues = map[PointsAction]int{
	ActionPost:    10,
	ActionComment: 2,
	ActionReply:   1,
	ActionAnswer:  5,
	ActionStory:   15,
}

var ErrUserNotFound = errors.New("user not found")

type GamificationService interface {
	// AwardPoints is fire-and-forget: contributing content never fails
	// because the points write did.
	AwardPoints(ctx context.Context, userID string, action PointsAction)
	GetCatalog(ctx context.Context) ([]dto.AchievementResponse, error)
	GetUnlocked(ctx context.Context, userID string) ([]dto.UserAchievementResponse, error)
	Leaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error)
}

type gamificationService struct {
	userRepo        repository.UserRepository
	achievementRepo repository.AchievementRepository
	notifier        NotificationService
}

func NewGamificationService(
	userRepo repository.UserRepository,
	achievementRepo repository.AchievementRepository,
	notifier NotificationService,
) GamificationService {
	return &gamificationService{
		userRepo:        userRepo,
		achievementRepo: achievementRepo,
		notifier:        notifier,
	}
}

func (s *gamificationService) AwardPoints(ctx context.Context, userID string, action PointsAction) {
	points, ok := pointValues[action]
	if !ok {
		slog.Warn("unknown points action", "action", action)
		return
	}

	if err := s.userRepo.AddPoints(userID, points); err != nil {
		slog.Error("failed to award points", "user", userID, "action", action, "error", err)
		return
	}

	s.checkUnlocks(ctx, userID)
}

// checkUnlocks grants every catalog achievement whose threshold the user's new
// total crosses. Each unlock fires a system notification with no actor.
func (s *gamificationService) checkUnlocks(ctx context.Context, userID string) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		slog.Error("failed to load user for achievement check", "user", userID, "error", err)
		return
	}

	catalog, err := s.achievementRepo.GetCatalog(ctx)
	if err != nil {
		slog.Error("failed to load achievement catalog", "error", err)
		return
	}

	for _, achievement := range catalog {
		if user.Points < achievement.Threshold {
			// Catalog is threshold-ascending
			break
		}

		unlocked, err := s.achievementRepo.IsUnlocked(ctx, userID, achievement.ID)
		if err != nil {
			slog.Error("failed to check achievement unlock", "achievement", achievement.Code, "error", err)
			continue
		}
		if unlocked {
			continue
		}

		err = s.achievementRepo.Unlock(ctx, &models.UserAchievement{
			UserID:        userID,
			AchievementID: achievement.ID,
		})
		if err != nil {
			// Unique index absorbs the concurrent double-unlock
			if isDuplicateKey(err) {
				continue
			}
			slog.Error("failed to unlock achievement", "achievement", achievement.Code, "error", err)
			continue
		}

		err = s.notifier.Notify(ctx, userID, "", models.NotifyAchievement, "", strconv.FormatInt(achievement.ID, 10), "", "You unlocked "+achievement.Name)
		if err != nil {
			slog.Error("failed to notify achievement unlock", "achievement", achievement.Code, "error", err)
		}
	}
}

func (s *gamificationService) GetCatalog(ctx context.Context) ([]dto.AchievementResponse, error) {
	catalog, err := s.achievementRepo.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AchievementResponse, 0, len(catalog))
	for i := range catalog {
		responses = append(responses, *dto.FromModelToAchievementResponse(&catalog[i]))
	}
	return responses, nil
}

func (s *gamificationService) GetUnlocked(ctx context.Context, userID string) ([]dto.UserAchievementResponse, error) {
	unlocked, err := s.achievementRepo.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserAchievementResponse, 0, len(unlocked))
	for i := range unlocked {
		responses = append(responses, *dto.FromModelToUserAchievementResponse(&unlocked[i]))
	}
	return responses, nil
}

func (s *gamificationService) Leaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	users, err := s.userRepo.TopByPoints(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(users))
	for rank, user := range users {
		entries = append(entries, dto.LeaderboardEntry{
			Rank:      rank + 1,
			UserID:    user.ID,
			Username:  user.Username,
			AvatarURL: user.AvatarURL,
			Points:    user.Points,
		})
	}
	return entries, nil
}
