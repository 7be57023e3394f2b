package repository

import (
	"skillmatrix_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	if err := r.DB.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) ListByComponent(componentID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("component_id = ?", componentID).Order("id").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) ListByComponentAndDifficulty(componentID uint, difficulty int) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("component_id = ? AND difficulty_level = ?", componentID, difficulty).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CountByComponentAndDifficulty(componentID uint, difficulty int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Where("component_id = ? AND difficulty_level = ?", componentID, difficulty).
		Count(&count).Error
	return count, err
}
