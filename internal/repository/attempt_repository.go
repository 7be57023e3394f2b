package repository

import (
	"skillmatrix_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) FindByID(id uint) (*model.AssessmentAttempt, error) {
	var attempt model.AssessmentAttempt
	if err := r.DB.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) ListByDeveloper(developerID uint) ([]model.AssessmentAttempt, error) {
	var attempts []model.AssessmentAttempt
	err := r.DB.Where("developer_id = ?", developerID).
		Order("started_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByStatus(status model.AttemptStatus) ([]model.AssessmentAttempt, error) {
	var attempts []model.AssessmentAttempt
	err := r.DB.Where("status = ?", status).Order("started_at").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) CountByStatus(status model.AttemptStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AssessmentAttempt{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// Questions returns the sampled snapshot in its original order.
func (r *AttemptRepository) Questions(attemptID uint) ([]model.AttemptQuestion, error) {
	var rows []model.AttemptQuestion
	err := r.DB.Where("attempt_id = ?", attemptID).Order("position").Find(&rows).Error
	return rows, err
}

func (r *AttemptRepository) Answers(attemptID uint) ([]model.AttemptAnswer, error) {
	var answers []model.AttemptAnswer
	err := r.DB.Where("attempt_id = ?", attemptID).Find(&answers).Error
	return answers, err
}

func (r *AttemptRepository) UnreviewedAnswers(attemptID uint) ([]model.AttemptAnswer, error) {
	var answers []model.AttemptAnswer
	err := r.DB.Where("attempt_id = ? AND reviewed = ?", attemptID, false).Find(&answers).Error
	return answers, err
}

func (r *AttemptRepository) FindAnswerByID(id uint) (*model.AttemptAnswer, error) {
	var answer model.AttemptAnswer
	if err := r.DB.First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}
