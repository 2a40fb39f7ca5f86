package repository

import (
	"context"

	"mindhaven/internal/http-api/models"

	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, questionID, userID string) (int64, error)
	GetByID(ctx context.Context, questionID string) (*models.Question, error)
	GetAll(ctx context.Context, category string, page, pageSize int) ([]models.Question, int64, error)

	CreateAnswer(ctx context.Context, answer *models.Answer) error
	GetAnswerByID(ctx context.Context, answerID string) (*models.Answer, error)
	GetAnswers(ctx context.Context, questionID string) ([]models.Answer, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) Update(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Save(question).Error
}

func (r *questionRepository) Delete(ctx context.Context, questionID, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", questionID, userID).
		Delete(&models.Question{})
	return result.RowsAffected, result.Error
}

func (r *questionRepository) GetByID(ctx context.Context, questionID string) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).
		Where("id = ?", questionID).
		Preload("User").
		First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) GetAll(ctx context.Context, category string, page, pageSize int) ([]models.Question, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Question{})
	if category != "" {
		base = base.Where("category = ?", category)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Preload("User").Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	offset := (page - 1) * pageSize
	var questions []models.Question
	if err := query.Limit(pageSize).Offset(offset).Find(&questions).Error; err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

func (r *questionRepository) CreateAnswer(ctx context.Context, answer *models.Answer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

func (r *questionRepository) GetAnswerByID(ctx context.Context, answerID string) (*models.Answer, error) {
	var answer models.Answer
	err := r.db.WithContext(ctx).
		Where("id = ?", answerID).
		Preload("User").
		First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *questionRepository) GetAnswers(ctx context.Context, questionID string) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Preload("User").
		Order("created_at ASC").
		Find(&answers).Error
	return answers, err
}
