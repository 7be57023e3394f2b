package repository

import (
	"skillmatrix_backend/internal/model"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) ListTeams() ([]model.Team, error) {
	var teams []model.Team
	err := r.DB.Order("id").Find(&teams).Error
	return teams, err
}

func (r *CatalogRepository) FindTeamByID(id uint) (*model.Team, error) {
	var team model.Team
	if err := r.DB.First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *CatalogRepository) CreateTeam(team *model.Team) error {
	return r.DB.Create(team).Error
}

func (r *CatalogRepository) CountTeams() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Team{}).Count(&count).Error
	return count, err
}

func (r *CatalogRepository) ListProjectsByTeam(teamID uint) ([]model.Project, error) {
	var projects []model.Project
	err := r.DB.Where("team_id = ?", teamID).Order("id").Find(&projects).Error
	return projects, err
}

func (r *CatalogRepository) FindProjectByID(id uint) (*model.Project, error) {
	var project model.Project
	if err := r.DB.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *CatalogRepository) CreateProject(project *model.Project) error {
	return r.DB.Create(project).Error
}

func (r *CatalogRepository) CountProjects() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Project{}).Count(&count).Error
	return count, err
}

func (r *CatalogRepository) CountProjectsByTeam(teamID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Project{}).Where("team_id = ?", teamID).Count(&count).Error
	return count, err
}

func (r *CatalogRepository) ListComponentsByProject(projectID uint) ([]model.Component, error) {
	var components []model.Component
	err := r.DB.Where("project_id = ?", projectID).Order("id").Find(&components).Error
	return components, err
}

func (r *CatalogRepository) FindComponentByID(id uint) (*model.Component, error) {
	var component model.Component
	if err := r.DB.First(&component, id).Error; err != nil {
		return nil, err
	}
	return &component, nil
}

func (r *CatalogRepository) ListComponents() ([]model.Component, error) {
	var components []model.Component
	err := r.DB.Order("id").Find(&components).Error
	return components, err
}

func (r *CatalogRepository) CreateComponent(component *model.Component) error {
	return r.DB.Create(component).Error
}
