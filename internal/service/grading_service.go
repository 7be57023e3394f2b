package service

import (
	"errors"
	"time"

	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/internal/repository"
	"skillmatrix_backend/internal/util"

	"gorm.io/gorm"
)

// GradingService resolves free-text answers that could not be auto-scored.
type GradingService struct {
	AttemptRepo  *repository.AttemptRepository
	QuestionRepo *repository.QuestionRepository
	UserRepo     *repository.UserRepository
	CatalogRepo  *repository.CatalogRepository
	Attempts     *AttemptService
	DB           *gorm.DB
}

func NewGradingService(
	attemptRepo *repository.AttemptRepository,
	questionRepo *repository.QuestionRepository,
	userRepo *repository.UserRepository,
	catalogRepo *repository.CatalogRepository,
	attempts *AttemptService,
	db *gorm.DB,
) *GradingService {
	return &GradingService{
		AttemptRepo:  attemptRepo,
		QuestionRepo: questionRepo,
		UserRepo:     userRepo,
		CatalogRepo:  catalogRepo,
		Attempts:     attempts,
		DB:           db,
	}
}

type UngradedAnswerView struct {
	ID            uint   `json:"id"`
	QuestionText  string `json:"questionText"`
	GivenAnswer   string `json:"givenAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
}

type PendingReviewView struct {
	AttemptID         uint                 `json:"id"`
	DeveloperName     string               `json:"developerName"`
	DeveloperEmail    string               `json:"developerEmail"`
	ComponentName     string               `json:"componentName"`
	Level             int                  `json:"level"`
	Score             int                  `json:"score"`
	TotalQuestions    int                  `json:"totalQuestions"`
	StartedAt         time.Time            `json:"startedAt"`
	UnreviewedAnswers []UngradedAnswerView `json:"unreviewedAnswers"`
}

// PendingReviews lists every attempt waiting on manual grading together with
// its unresolved answers.
func (s *GradingService) PendingReviews() ([]PendingReviewView, error) {
	attempts, err := s.AttemptRepo.ListByStatus(model.AttemptPendingReview)
	if err != nil {
		return nil, err
	}

	views := make([]PendingReviewView, 0, len(attempts))
	for _, attempt := range attempts {
		view := PendingReviewView{
			AttemptID:      attempt.ID,
			Level:          attempt.Level,
			Score:          attempt.Score,
			TotalQuestions: attempt.TotalQuestions,
			StartedAt:      attempt.StartedAt,
		}

		if dev, err := s.UserRepo.FindByID(attempt.DeveloperID); err == nil {
			view.DeveloperName = dev.FullName
			view.DeveloperEmail = dev.Email
		}
		if component, err := s.CatalogRepo.FindComponentByID(attempt.ComponentID); err == nil {
			view.ComponentName = component.Name
		}

		answers, err := s.AttemptRepo.UnreviewedAnswers(attempt.ID)
		if err != nil {
			return nil, err
		}
		for _, answer := range answers {
			av := UngradedAnswerView{
				ID:          answer.ID,
				GivenAnswer: answer.GivenAnswer,
			}
			if q, err := s.QuestionRepo.FindByID(answer.QuestionID); err == nil {
				av.QuestionText = q.QuestionText
				av.CorrectAnswer = q.CorrectAnswer
			}
			view.UnreviewedAnswers = append(view.UnreviewedAnswers, av)
		}
		views = append(views, view)
	}
	return views, nil
}

// Grade resolves one ungraded answer. The reviewed flag is flipped with a
// conditional update so a second grade of the same answer fails instead of
// double-counting, and the score increment is an atomic column expression.
// Resolving the last ungraded answer completes the attempt.
func (s *GradingService) Grade(answerID uint, correct bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var answer model.AttemptAnswer
		if err := tx.First(&answer, answerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrAnswerNotFound
			}
			return err
		}

		res := tx.Model(&model.AttemptAnswer{}).
			Where("id = ? AND reviewed = ?", answerID, false).
			Updates(map[string]interface{}{"reviewed": true, "correct": correct})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrAlreadyGraded
		}

		if correct {
			if err := tx.Model(&model.AssessmentAttempt{}).
				Where("id = ?", answer.AttemptID).
				UpdateColumn("score", gorm.Expr("score + ?", 1)).Error; err != nil {
				return err
			}
		}

		var remaining int64
		if err := tx.Model(&model.AttemptAnswer{}).
			Where("attempt_id = ? AND reviewed = ?", answer.AttemptID, false).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}

		var attempt model.AssessmentAttempt
		if err := tx.First(&attempt, answer.AttemptID).Error; err != nil {
			return err
		}
		return s.Attempts.FinalizeAttempt(tx, &attempt)
	})
}
