package service

import (
	"context"
	"errors"
	"log/slog"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/models"
	"mindhaven/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrNotQuestionOwner = errors.New("only the asker can modify this question")
)

type QAService interface {
	Ask(ctx context.Context, userID string, req *dto.CreateQuestionDTO) (*dto.QuestionResponse, error)
	GetQuestion(ctx context.Context, questionID string) (*dto.QuestionResponse, []dto.AnswerResponse, error)
	ListQuestions(ctx context.Context, category string, page, pageSize int) (*dto.PaginatedQuestionResponse, error)
	DeleteQuestion(ctx context.Context, userID, questionID string) error
	Answer(ctx context.Context, userID, questionID string, req *dto.CreateAnswerDTO) (*dto.AnswerResponse, error)
}

type qaService struct {
	questionRepo repository.QuestionRepository
	notifier     NotificationService
	gamification GamificationService
}

func NewQAService(questionRepo repository.QuestionRepository, notifier NotificationService, gamification GamificationService) QAService {
	return &qaService{
		questionRepo: questionRepo,
		notifier:     notifier,
		gamification: gamification,
	}
}

func (s *qaService) Ask(ctx context.Context, userID string, req *dto.CreateQuestionDTO) (*dto.QuestionResponse, error) {
	question := &models.Question{
		UserID:   userID,
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	return dto.FromModelToQuestionResponse(question), nil
}

func (s *qaService) GetQuestion(ctx context.Context, questionID string) (*dto.QuestionResponse, []dto.AnswerResponse, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrQuestionNotFound
		}
		return nil, nil, err
	}

	answers, err := s.questionRepo.GetAnswers(ctx, questionID)
	if err != nil {
		return nil, nil, err
	}

	answerResponses := make([]dto.AnswerResponse, 0, len(answers))
	for i := range answers {
		answerResponses = append(answerResponses, *dto.FromModelToAnswerResponse(&answers[i]))
	}
	return dto.FromModelToQuestionResponse(question), answerResponses, nil
}

func (s *qaService) ListQuestions(ctx context.Context, category string, page, pageSize int) (*dto.PaginatedQuestionResponse, error) {
	questions, total, err := s.questionRepo.GetAll(ctx, category, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, *dto.FromModelToQuestionResponse(&questions[i]))
	}
	return dto.NewPaginatedQuestionResponse(responses, int(total), page, pageSize), nil
}

func (s *qaService) DeleteQuestion(ctx context.Context, userID, questionID string) error {
	affected, err := s.questionRepo.Delete(ctx, questionID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}
		return ErrNotQuestionOwner
	}
	return nil
}

// Answer posts an answer under a question and notifies the asker.
func (s *qaService) Answer(ctx context.Context, userID, questionID string, req *dto.CreateAnswerDTO) (*dto.AnswerResponse, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	answer := &models.Answer{
		QuestionID: questionID,
		UserID:     userID,
		Body:       req.Body,
	}
	if err := s.questionRepo.CreateAnswer(ctx, answer); err != nil {
		return nil, err
	}

	if err := s.notifier.Notify(ctx, question.UserID, userID, models.NotifyAnswer, models.ContentAnswer, answer.ID, questionID, "answered your question"); err != nil {
		slog.Error("failed to notify question asker", "error", err)
	}
	s.gamification.AwardPoints(ctx, userID, ActionAnswer)

	return dto.FromModelToAnswerResponse(answer), nil
}
