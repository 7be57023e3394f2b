package util

import (
	"errors"
	"net/http"

	"skillmatrix_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the unified API envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// DomainError translates a service-layer sentinel into the matching HTTP status.
// Unknown errors are treated as internal and logged.
func DomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrTeamNotFound),
		errors.Is(err, ErrProjectNotFound),
		errors.Is(err, ErrComponentNotFound),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrAssessmentNotFound),
		errors.Is(err, ErrInviteNotFound),
		errors.Is(err, ErrAttemptNotFound),
		errors.Is(err, ErrAnswerNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInviteConsumed),
		errors.Is(err, ErrInviteExpired),
		errors.Is(err, ErrDuplicateInvite),
		errors.Is(err, ErrAssessmentExists),
		errors.Is(err, ErrAttemptNotInProgress),
		errors.Is(err, ErrAlreadyGraded):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInsufficientQuestions):
		Error(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrEmailRegistered),
		errors.Is(err, ErrInvalidVerification),
		errors.Is(err, ErrInvalidSecurityAnswer):
		BadRequest(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}
