package service

import (
	"errors"

	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/internal/repository"
	"skillmatrix_backend/internal/util"

	"gorm.io/gorm"
)

// UserService serves the people directory and per-developer detail views.
type UserService struct {
	UserRepo    *repository.UserRepository
	SkillRepo   *repository.SkillRepository
	AttemptRepo *repository.AttemptRepository
	CatalogRepo *repository.CatalogRepository
}

func NewUserService(
	userRepo *repository.UserRepository,
	skillRepo *repository.SkillRepository,
	attemptRepo *repository.AttemptRepository,
	catalogRepo *repository.CatalogRepository,
) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		SkillRepo:   skillRepo,
		AttemptRepo: attemptRepo,
		CatalogRepo: catalogRepo,
	}
}

func (s *UserService) List(role model.UserRole) ([]model.User, error) {
	if role == "" {
		return s.UserRepo.List()
	}
	return s.UserRepo.ListByRole(role)
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Levels returns the developer's skill ledger enriched with component names.
func (s *UserService) Levels(developerID uint) ([]SkillSummary, error) {
	if _, err := s.GetByID(developerID); err != nil {
		return nil, err
	}

	skills, err := s.SkillRepo.ListByDeveloper(developerID)
	if err != nil {
		return nil, err
	}
	summaries := make([]SkillSummary, 0, len(skills))
	for _, skill := range skills {
		summary := SkillSummary{
			ComponentID:   skill.ComponentID,
			CurrentLevel:  skill.CurrentLevel,
			LastLevelUpAt: skill.LastLevelUpAt,
		}
		if component, err := s.CatalogRepo.FindComponentByID(skill.ComponentID); err == nil {
			summary.ComponentName = component.Name
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Attempts returns the developer's attempt history, newest first.
func (s *UserService) Attempts(developerID uint) ([]model.AssessmentAttempt, error) {
	if _, err := s.GetByID(developerID); err != nil {
		return nil, err
	}
	return s.AttemptRepo.ListByDeveloper(developerID)
}
