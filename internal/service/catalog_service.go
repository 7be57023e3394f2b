package service

import (
	"errors"
	"fmt"

	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/internal/repository"
	"skillmatrix_backend/internal/util"

	"gorm.io/gorm"
)

// CatalogService manages the org structure (teams, projects, components) and
// the assessable content built on it (questions, assessment definitions).
type CatalogService struct {
	CatalogRepo    *repository.CatalogRepository
	QuestionRepo   *repository.QuestionRepository
	AssessmentRepo *repository.AssessmentRepository
}

func NewCatalogService(
	catalogRepo *repository.CatalogRepository,
	questionRepo *repository.QuestionRepository,
	assessmentRepo *repository.AssessmentRepository,
) *CatalogService {
	return &CatalogService{
		CatalogRepo:    catalogRepo,
		QuestionRepo:   questionRepo,
		AssessmentRepo: assessmentRepo,
	}
}

func (s *CatalogService) ListTeams() ([]model.Team, error) {
	return s.CatalogRepo.ListTeams()
}

func (s *CatalogService) CreateTeam(name, description string) (*model.Team, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", util.ErrValidation)
	}
	team := &model.Team{Name: name, Description: description}
	if err := s.CatalogRepo.CreateTeam(team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *CatalogService) ListProjects(teamID uint) ([]model.Project, error) {
	if _, err := s.CatalogRepo.FindTeamByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTeamNotFound
		}
		return nil, err
	}
	return s.CatalogRepo.ListProjectsByTeam(teamID)
}

func (s *CatalogService) CreateProject(teamID uint, name, description string) (*model.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", util.ErrValidation)
	}
	if _, err := s.CatalogRepo.FindTeamByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTeamNotFound
		}
		return nil, err
	}
	project := &model.Project{TeamID: teamID, Name: name, Description: description}
	if err := s.CatalogRepo.CreateProject(project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *CatalogService) ListComponents(projectID uint) ([]model.Component, error) {
	if _, err := s.CatalogRepo.FindProjectByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProjectNotFound
		}
		return nil, err
	}
	return s.CatalogRepo.ListComponentsByProject(projectID)
}

func (s *CatalogService) CreateComponent(projectID uint, name, techStack, description string) (*model.Component, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: component name is required", util.ErrValidation)
	}
	if _, err := s.CatalogRepo.FindProjectByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProjectNotFound
		}
		return nil, err
	}
	component := &model.Component{
		ProjectID:   projectID,
		Name:        name,
		TechStack:   techStack,
		Description: description,
	}
	if err := s.CatalogRepo.CreateComponent(component); err != nil {
		return nil, err
	}
	return component, nil
}

type CreateQuestionInput struct {
	ComponentID     uint               `json:"componentId" binding:"required"`
	QuestionText    string             `json:"questionText" binding:"required"`
	Type            model.QuestionType `json:"type" binding:"required"`
	DifficultyLevel int                `json:"difficultyLevel" binding:"required"`
	Options         []string           `json:"options"`
	CorrectAnswer   string             `json:"correctAnswer" binding:"required"`
}

// CreateQuestion adds a question to a component's bank. Multiple-choice
// questions need at least two distinct options, exactly one of which is the
// stored answer; fill-in-blank questions carry no options at all.
func (s *CatalogService) CreateQuestion(in CreateQuestionInput) (*model.Question, error) {
	if _, err := s.CatalogRepo.FindComponentByID(in.ComponentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrComponentNotFound
		}
		return nil, err
	}
	if in.DifficultyLevel < 1 || in.DifficultyLevel > model.MaxSkillLevel {
		return nil, fmt.Errorf("%w: difficulty level must be between 1 and %d", util.ErrValidation, model.MaxSkillLevel)
	}

	question := &model.Question{
		ComponentID:     in.ComponentID,
		QuestionText:    in.QuestionText,
		Type:            in.Type,
		DifficultyLevel: in.DifficultyLevel,
		CorrectAnswer:   in.CorrectAnswer,
	}

	switch in.Type {
	case model.MultipleChoice:
		if err := validateOptions(in.Options, in.CorrectAnswer); err != nil {
			return nil, err
		}
		question.SetOptions(in.Options)
	case model.FillInBlank:
		if len(in.Options) > 0 {
			return nil, fmt.Errorf("%w: fill-in-blank questions cannot have options", util.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: unknown question type %q", util.ErrValidation, in.Type)
	}

	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *CatalogService) ListQuestions(componentID uint) ([]model.Question, error) {
	if _, err := s.CatalogRepo.FindComponentByID(componentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrComponentNotFound
		}
		return nil, err
	}
	return s.QuestionRepo.ListByComponent(componentID)
}

type CreateAssessmentInput struct {
	ComponentID        uint `json:"componentId" binding:"required"`
	Level              int  `json:"level" binding:"required"`
	PassMarkPercentage int  `json:"passMarkPercentage"`
	NumberOfQuestions  int  `json:"numberOfQuestions" binding:"required"`
}

// CreateAssessment defines the gate for one (component, level) pair. The
// question count is checked against the bank at that exact difficulty so an
// undersized assessment is rejected at definition time, not at start time.
func (s *CatalogService) CreateAssessment(in CreateAssessmentInput, createdBy uint) (*model.Assessment, error) {
	if _, err := s.CatalogRepo.FindComponentByID(in.ComponentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrComponentNotFound
		}
		return nil, err
	}
	if in.Level < 1 || in.Level > model.MaxSkillLevel {
		return nil, fmt.Errorf("%w: level must be between 1 and %d", util.ErrValidation, model.MaxSkillLevel)
	}
	if in.PassMarkPercentage == 0 {
		in.PassMarkPercentage = 70
	}
	if in.PassMarkPercentage < 0 || in.PassMarkPercentage > 100 {
		return nil, fmt.Errorf("%w: pass mark must be between 0 and 100", util.ErrValidation)
	}
	if in.NumberOfQuestions < 1 {
		return nil, fmt.Errorf("%w: an assessment needs at least one question", util.ErrValidation)
	}

	if _, err := s.AssessmentRepo.FindByComponentAndLevel(in.ComponentID, in.Level); err == nil {
		return nil, util.ErrAssessmentExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	available, err := s.QuestionRepo.CountByComponentAndDifficulty(in.ComponentID, in.Level)
	if err != nil {
		return nil, err
	}
	if int64(in.NumberOfQuestions) > available {
		return nil, util.ErrInsufficientQuestions
	}

	assessment := &model.Assessment{
		ComponentID:        in.ComponentID,
		Level:              in.Level,
		PassMarkPercentage: in.PassMarkPercentage,
		NumberOfQuestions:  in.NumberOfQuestions,
		CreatedBy:          createdBy,
	}
	if err := s.AssessmentRepo.Create(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *CatalogService) ListAssessments() ([]model.Assessment, error) {
	return s.AssessmentRepo.List()
}

func validateOptions(options []string, correctAnswer string) error {
	if len(options) < 2 {
		return fmt.Errorf("%w: multiple-choice questions need at least two options", util.ErrValidation)
	}
	seen := make(map[string]bool, len(options))
	matches := 0
	for _, opt := range options {
		if seen[opt] {
			return fmt.Errorf("%w: duplicate option %q", util.ErrValidation, opt)
		}
		seen[opt] = true
		if opt == correctAnswer {
			matches++
		}
	}
	if matches != 1 {
		return fmt.Errorf("%w: the correct answer must appear in the options exactly once", util.ErrValidation)
	}
	return nil
}
