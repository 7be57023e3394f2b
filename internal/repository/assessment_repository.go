package repository

import (
	"skillmatrix_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(assessment *model.Assessment) error {
	return r.DB.Create(assessment).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepository) FindByComponentAndLevel(componentID uint, level int) (*model.Assessment, error) {
	var a model.Assessment
	if err := r.DB.Where("component_id = ? AND level = ?", componentID, level).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepository) List() ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.DB.Order("component_id, level").Find(&assessments).Error
	return assessments, err
}

func (r *AssessmentRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Assessment{}).Count(&count).Error
	return count, err
}
