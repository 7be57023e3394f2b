package repository

import (
	"skillmatrix_backend/internal/model"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

func (r *SkillRepository) FindByDeveloperAndComponent(developerID, componentID uint) (*model.SkillLevel, error) {
	var skill model.SkillLevel
	if err := r.DB.Where("developer_id = ? AND component_id = ?", developerID, componentID).First(&skill).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepository) ListByDeveloper(developerID uint) ([]model.SkillLevel, error) {
	var skills []model.SkillLevel
	err := r.DB.Where("developer_id = ?", developerID).Order("component_id").Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) ListAll() ([]model.SkillLevel, error) {
	var skills []model.SkillLevel
	err := r.DB.Order("developer_id, component_id").Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) TrajectoryByDeveloper(developerID uint) ([]model.TrajectoryEvent, error) {
	var events []model.TrajectoryEvent
	err := r.DB.Where("developer_id = ?", developerID).Order("occurred_at").Find(&events).Error
	return events, err
}
