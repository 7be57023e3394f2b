package model

import "time"

type AttemptStatus string

const (
	AttemptInProgress    AttemptStatus = "IN_PROGRESS"
	AttemptPendingReview AttemptStatus = "PENDING_REVIEW"
	AttemptCompleted     AttemptStatus = "COMPLETED"
)

// AssessmentAttempt is one instance of a developer answering an assessment's
// sampled questions. An invite yields at most one attempt.
// swagger:model AssessmentAttempt
type AssessmentAttempt struct {
	BaseModel
	InviteID       uint          `gorm:"not null;uniqueIndex" json:"inviteId"`
	DeveloperID    uint          `gorm:"not null;index" json:"developerId"`
	AssessmentID   uint          `gorm:"not null;index" json:"assessmentId"`
	ComponentID    uint          `gorm:"not null" json:"componentId"`
	Level          int           `gorm:"not null" json:"level"`
	Score          int           `gorm:"default:0" json:"score"`
	TotalQuestions int           `gorm:"not null" json:"totalQuestions"`
	Status         AttemptStatus `gorm:"size:20;not null;default:'IN_PROGRESS';index" json:"status"`
	Passed         *bool         `json:"passed"`
	StartedAt      time.Time     `json:"startedAt"`
	ResolvedAt     *time.Time    `json:"resolvedAt,omitempty"`
}

func (AssessmentAttempt) TableName() string {
	return "assessment_attempts"
}

// AttemptQuestion snapshots the sampled question set at start time so that
// later edits to the question bank cannot alter an in-progress attempt.
type AttemptQuestion struct {
	BaseModel
	AttemptID  uint `gorm:"not null;index" json:"attemptId"`
	QuestionID uint `gorm:"not null" json:"questionId"`
	Position   int  `gorm:"not null" json:"position"`
}

func (AttemptQuestion) TableName() string {
	return "attempt_questions"
}

// AttemptAnswer records one given answer. Rows with Reviewed=false are the
// ungraded answers awaiting manual review.
// swagger:model AttemptAnswer
type AttemptAnswer struct {
	BaseModel
	AttemptID   uint   `gorm:"not null;index" json:"attemptId"`
	QuestionID  uint   `gorm:"not null" json:"questionId"`
	GivenAnswer string `gorm:"size:2000" json:"givenAnswer"`
	Correct     bool   `gorm:"default:false" json:"correct"`
	Reviewed    bool   `gorm:"default:false;index" json:"reviewed"`
}

func (AttemptAnswer) TableName() string {
	return "attempt_answers"
}
