package controller

import (
	"strconv"

	"skillmatrix_backend/internal/service"
	"skillmatrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AssessmentController exposes the invite, attempt and grading lifecycle.
type AssessmentController struct {
	InviteService  *service.InviteService
	AttemptService *service.AttemptService
	GradingService *service.GradingService
}

func NewAssessmentController(
	inviteService *service.InviteService,
	attemptService *service.AttemptService,
	gradingService *service.GradingService,
) *AssessmentController {
	return &AssessmentController{
		InviteService:  inviteService,
		AttemptService: attemptService,
		GradingService: gradingService,
	}
}

// swagger:model CreateInviteRequest
type CreateInviteRequest struct {
	DeveloperID  uint `json:"developerId" binding:"required"`
	AssessmentID uint `json:"assessmentId" binding:"required"`
}

// CreateInvite godoc
// @Summary Invite a developer to sit an assessment
// @Description At most one pending invite may exist per developer and assessment.
// @Tags assessments
// @Accept json
// @Produce json
// @Param body body CreateInviteRequest true "Developer and assessment"
// @Success 201 {object} util.Response{data=model.AssessmentInvite}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Security BearerAuth
// @Router /api/assessments/invite [post]
func (c *AssessmentController) CreateInvite(ctx *gin.Context) {
	var req CreateInviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	invite, err := c.InviteService.Create(req.DeveloperID, req.AssessmentID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, invite)
}

// StartAttempt godoc
// @Summary Consume an invite and start the attempt
// @Description Samples the assessment's questions; the correct answers are withheld.
// @Tags assessments
// @Produce json
// @Param inviteId path int true "Invite ID"
// @Success 200 {object} util.Response{data=service.StartAttemptResult}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 422 {object} util.Response
// @Security BearerAuth
// @Router /api/assessments/start/{inviteId} [post]
func (c *AssessmentController) StartAttempt(ctx *gin.Context) {
	inviteID, err := pathID(ctx, "inviteId")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)

	result, err := c.AttemptService.Start(claims.UserID, inviteID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// AttemptQuestions godoc
// @Summary Fetch the question set snapshotted at start time
// @Tags assessments
// @Produce json
// @Param id path int true "Attempt ID"
// @Success 200 {object} util.Response{data=[]service.AttemptQuestionView}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/assessments/attempts/{id}/questions [get]
func (c *AssessmentController) AttemptQuestions(ctx *gin.Context) {
	attemptID, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)

	questions, err := c.AttemptService.Questions(claims.UserID, attemptID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// swagger:model SubmitAttemptRequest
type SubmitAttemptRequest struct {
	Answers []service.SubmitAnswer `json:"answers" binding:"required"`
}

// SubmitAttempt godoc
// @Summary Submit answers and grade the attempt
// @Description Answers needing manual review leave the attempt in PENDING_REVIEW.
// @Tags assessments
// @Accept json
// @Produce json
// @Param attemptId path int true "Attempt ID"
// @Param body body SubmitAttemptRequest true "Answers keyed by question"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Security BearerAuth
// @Router /api/assessments/submit/{attemptId} [post]
func (c *AssessmentController) SubmitAttempt(ctx *gin.Context) {
	attemptID, err := pathID(ctx, "attemptId")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	var req SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)

	result, err := c.AttemptService.Submit(claims.UserID, attemptID, req.Answers)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// PendingReview godoc
// @Summary List attempts awaiting manual grading
// @Tags assessments
// @Produce json
// @Success 200 {object} util.Response{data=[]service.PendingReviewView}
// @Security BearerAuth
// @Router /api/assessments/pending-review [get]
func (c *AssessmentController) PendingReview(ctx *gin.Context) {
	views, err := c.GradingService.PendingReviews()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// swagger:model GradeRequest
type GradeRequest struct {
	AnswerID uint  `json:"answerId" binding:"required"`
	Correct  *bool `json:"correct" binding:"required"`
}

// Grade godoc
// @Summary Resolve one ungraded answer
// @Description Grading the last ungraded answer completes the attempt.
// @Tags assessments
// @Accept json
// @Produce json
// @Param body body GradeRequest true "Verdict"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Security BearerAuth
// @Router /api/assessments/grade [post]
func (c *AssessmentController) Grade(ctx *gin.Context) {
	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.GradingService.Grade(req.AnswerID, *req.Correct); err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"answerId": req.AnswerID})
}

func pathID(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
