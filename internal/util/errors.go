package util

import "errors"

var (
	// ErrValidation wraps request-level validation failures so they map to 400.
	ErrValidation            = errors.New("validation failed")
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailRegistered       = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidVerification   = errors.New("invalid verification code")
	ErrInvalidSecurityAnswer = errors.New("security answer does not match")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrTeamNotFound          = errors.New("team not found")
	ErrProjectNotFound       = errors.New("project not found")
	ErrComponentNotFound     = errors.New("component not found")
	ErrQuestionNotFound      = errors.New("question not found")
	ErrAssessmentNotFound    = errors.New("assessment not found")
	ErrAssessmentExists      = errors.New("assessment already defined for this component and level")
	ErrInviteNotFound        = errors.New("invite not found")
	ErrInviteConsumed        = errors.New("invite already consumed")
	ErrInviteExpired         = errors.New("invite expired")
	ErrDuplicateInvite       = errors.New("a pending invite already exists for this developer and assessment")
	ErrInsufficientQuestions = errors.New("not enough questions at this difficulty level")
	ErrAttemptNotFound       = errors.New("attempt not found")
	ErrAttemptNotInProgress  = errors.New("attempt is not in progress")
	ErrAnswerNotFound        = errors.New("answer not found")
	ErrAlreadyGraded         = errors.New("answer already graded")
)
