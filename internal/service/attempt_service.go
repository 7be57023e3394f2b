package service

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/internal/repository"
	"skillmatrix_backend/internal/util"
	"skillmatrix_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// AttemptService owns the attempt state machine:
// IN_PROGRESS -> PENDING_REVIEW -> COMPLETED, or straight to COMPLETED when
// no answer needs manual grading.
type AttemptService struct {
	AttemptRepo    *repository.AttemptRepository
	InviteRepo     *repository.InviteRepository
	AssessmentRepo *repository.AssessmentRepository
	QuestionRepo   *repository.QuestionRepository
	Skills         *SkillService
	DB             *gorm.DB
}

func NewAttemptService(
	attemptRepo *repository.AttemptRepository,
	inviteRepo *repository.InviteRepository,
	assessmentRepo *repository.AssessmentRepository,
	questionRepo *repository.QuestionRepository,
	skills *SkillService,
	db *gorm.DB,
) *AttemptService {
	return &AttemptService{
		AttemptRepo:    attemptRepo,
		InviteRepo:     inviteRepo,
		AssessmentRepo: assessmentRepo,
		QuestionRepo:   questionRepo,
		Skills:         skills,
		DB:             db,
	}
}

// AttemptQuestionView is a sampled question with the correct answer withheld.
type AttemptQuestionView struct {
	ID              uint               `json:"id"`
	QuestionText    string             `json:"questionText"`
	Type            model.QuestionType `json:"type"`
	DifficultyLevel int                `json:"difficultyLevel"`
	Options         []string           `json:"options,omitempty"`
}

type StartAttemptResult struct {
	AttemptID uint                  `json:"attemptId"`
	Questions []AttemptQuestionView `json:"questions"`
}

type SubmitAnswer struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
}

type SubmitResult struct {
	AttemptID      uint                `json:"id"`
	Score          int                 `json:"score"`
	TotalQuestions int                 `json:"totalQuestions"`
	Passed         *bool               `json:"passed"`
	Status         model.AttemptStatus `json:"status"`
}

// Start consumes the invite and samples the assessment's question set. The
// consume is a conditional update on the pending status, so of N concurrent
// starts on one invite exactly one creates an attempt.
func (s *AttemptService) Start(developerID, inviteID uint) (*StartAttemptResult, error) {
	var result *StartAttemptResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var invite model.AssessmentInvite
		if err := tx.First(&invite, inviteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrInviteNotFound
			}
			return err
		}
		if invite.DeveloperID != developerID {
			return util.ErrPermissionDenied
		}
		if invite.Status == model.InviteExpired {
			return util.ErrInviteExpired
		}

		now := time.Now()
		res := tx.Model(&model.AssessmentInvite{}).
			Where("id = ? AND status = ?", invite.ID, model.InvitePending).
			Updates(map[string]interface{}{"status": model.InviteConsumed, "consumed_at": now, "pending_flag": nil})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrInviteConsumed
		}

		var assessment model.Assessment
		if err := tx.First(&assessment, invite.AssessmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrAssessmentNotFound
			}
			return err
		}

		var bank []model.Question
		if err := tx.Where("component_id = ? AND difficulty_level = ?", assessment.ComponentID, assessment.Level).
			Find(&bank).Error; err != nil {
			return err
		}
		// Re-validated here as defense against the bank shrinking after the
		// assessment was defined.
		if len(bank) < assessment.NumberOfQuestions {
			return util.ErrInsufficientQuestions
		}

		rand.Shuffle(len(bank), func(i, j int) {
			bank[i], bank[j] = bank[j], bank[i]
		})
		sample := bank[:assessment.NumberOfQuestions]

		attempt := &model.AssessmentAttempt{
			InviteID:       invite.ID,
			DeveloperID:    developerID,
			AssessmentID:   assessment.ID,
			ComponentID:    assessment.ComponentID,
			Level:          assessment.Level,
			TotalQuestions: assessment.NumberOfQuestions,
			Status:         model.AttemptInProgress,
			StartedAt:      now,
		}
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		snapshot := make([]model.AttemptQuestion, 0, len(sample))
		views := make([]AttemptQuestionView, 0, len(sample))
		for i, q := range sample {
			snapshot = append(snapshot, model.AttemptQuestion{
				AttemptID:  attempt.ID,
				QuestionID: q.ID,
				Position:   i + 1,
			})
			views = append(views, sanitizeQuestion(&q))
		}
		if err := tx.Create(&snapshot).Error; err != nil {
			return err
		}

		result = &StartAttemptResult{AttemptID: attempt.ID, Questions: views}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.AttemptsStarted.Inc()
	return result, nil
}

// Questions returns the snapshot taken at start time; bank edits after the
// attempt started do not show up here.
func (s *AttemptService) Questions(developerID, attemptID uint) ([]AttemptQuestionView, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.DeveloperID != developerID {
		return nil, util.ErrPermissionDenied
	}

	rows, err := s.AttemptRepo.Questions(attemptID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.QuestionID)
	}
	questions, err := s.QuestionRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	views := make([]AttemptQuestionView, 0, len(rows))
	for _, row := range rows {
		if q, ok := byID[row.QuestionID]; ok {
			views = append(views, sanitizeQuestion(&q))
		}
	}
	return views, nil
}

// Submit grades the attempt. Multiple-choice answers match the stored answer
// exactly (case-sensitive). Fill-in-blank answers match after trimming and
// case folding; a mismatch is queued for manual review instead of being
// marked wrong.
func (s *AttemptService) Submit(developerID, attemptID uint, answers []SubmitAnswer) (*SubmitResult, error) {
	var result *SubmitResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var attempt model.AssessmentAttempt
		if err := tx.First(&attempt, attemptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrAttemptNotFound
			}
			return err
		}
		if attempt.DeveloperID != developerID {
			return util.ErrPermissionDenied
		}
		if attempt.Status != model.AttemptInProgress {
			return util.ErrAttemptNotInProgress
		}

		var snapshot []model.AttemptQuestion
		if err := tx.Where("attempt_id = ?", attempt.ID).Order("position").Find(&snapshot).Error; err != nil {
			return err
		}
		ids := make([]uint, 0, len(snapshot))
		for _, row := range snapshot {
			ids = append(ids, row.QuestionID)
		}
		var questions []model.Question
		if err := tx.Where("id IN ?", ids).Find(&questions).Error; err != nil {
			return err
		}
		byID := make(map[uint]model.Question, len(questions))
		for _, q := range questions {
			byID[q.ID] = q
		}

		given := make(map[uint]string, len(answers))
		for _, a := range answers {
			given[a.QuestionID] = a.Answer
		}

		score := 0
		ungraded := 0
		rows := make([]model.AttemptAnswer, 0, len(snapshot))
		for _, snap := range snapshot {
			q, ok := byID[snap.QuestionID]
			if !ok {
				// Snapshot references a question hard-deleted from the bank;
				// corrupted state for this attempt.
				return util.ErrQuestionNotFound
			}
			row := model.AttemptAnswer{
				AttemptID:   attempt.ID,
				QuestionID:  q.ID,
				GivenAnswer: given[q.ID],
			}
			switch q.Type {
			case model.MultipleChoice:
				row.Reviewed = true
				row.Correct = row.GivenAnswer == q.CorrectAnswer
				if row.Correct {
					score++
				}
			case model.FillInBlank:
				if strings.EqualFold(strings.TrimSpace(row.GivenAnswer), strings.TrimSpace(q.CorrectAnswer)) {
					row.Reviewed = true
					row.Correct = true
					score++
				} else {
					ungraded++
				}
			}
			rows = append(rows, row)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		attempt.Score = score
		if ungraded > 0 {
			attempt.Status = model.AttemptPendingReview
			if err := tx.Save(&attempt).Error; err != nil {
				return err
			}
		} else {
			if err := s.FinalizeAttempt(tx, &attempt); err != nil {
				return err
			}
		}

		result = &SubmitResult{
			AttemptID:      attempt.ID,
			Score:          attempt.Score,
			TotalQuestions: attempt.TotalQuestions,
			Passed:         attempt.Passed,
			Status:         attempt.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FinalizeAttempt resolves pass/fail, completes the attempt and forwards the
// outcome to the skill ledger, all within the caller's transaction.
func (s *AttemptService) FinalizeAttempt(tx *gorm.DB, attempt *model.AssessmentAttempt) error {
	var assessment model.Assessment
	if err := tx.First(&assessment, attempt.AssessmentID).Error; err != nil {
		return err
	}

	// Integer form of score/total*100 >= passMark; total is >= 1 by the
	// assessment invariant.
	passed := attempt.Score*100 >= assessment.PassMarkPercentage*attempt.TotalQuestions
	now := time.Now()
	attempt.Passed = &passed
	attempt.ResolvedAt = &now
	attempt.Status = model.AttemptCompleted
	if err := tx.Save(attempt).Error; err != nil {
		return err
	}

	if err := s.Skills.RecordOutcome(tx, attempt.DeveloperID, attempt.ComponentID,
		attempt.Level, attempt.Score, attempt.TotalQuestions, passed); err != nil {
		return err
	}

	monitoring.AttemptsResolved.WithLabelValues(strconv.FormatBool(passed)).Inc()
	return nil
}

func sanitizeQuestion(q *model.Question) AttemptQuestionView {
	return AttemptQuestionView{
		ID:              q.ID,
		QuestionText:    q.QuestionText,
		Type:            q.Type,
		DifficultyLevel: q.DifficultyLevel,
		Options:         q.OptionList(),
	}
}
