package controller

import (
	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/internal/service"
	"skillmatrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required"`
}

// Register godoc
// @Summary Register a new account
// @Description Creates the account and emails a verification code. The first account becomes root.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration details"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(req.Email, req.FullName)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": user.ID, "email": user.Email})
}

// swagger:model VerifyRequest
type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// Verify godoc
// @Summary Confirm the emailed verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body VerifyRequest true "Email and code"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/auth/verify [post]
func (c *AuthController) Verify(ctx *gin.Context) {
	var req VerifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.VerifyEmail(req.Email, req.Code)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": user.ID, "emailVerified": user.EmailVerified})
}

// swagger:model SetPasswordRequest
type SetPasswordRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8"`
	SecurityQuestion string `json:"securityQuestion" binding:"required"`
	SecurityAnswer   string `json:"securityAnswer" binding:"required"`
}

// SetPassword godoc
// @Summary Finish onboarding by setting a password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SetPasswordRequest true "Password and recovery question"
// @Success 200 {object} util.Response{data=service.AuthResponse}
// @Failure 400 {object} util.Response
// @Router /api/auth/set-password [post]
func (c *AuthController) SetPassword(ctx *gin.Context) {
	var req SetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.SetPassword(req.Email, req.Password, req.SecurityQuestion, req.SecurityAnswer)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Log in with email and password
// @Description Accounts mid-onboarding get needsVerification or needsPassword instead of a token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=service.AuthResponse}
// @Failure 400 {object} util.Response
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// SecurityQuestion godoc
// @Summary Fetch the password-recovery question for an email
// @Tags auth
// @Produce json
// @Param email query string true "Account email"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/auth/security-question [get]
func (c *AuthController) SecurityQuestion(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		util.BadRequest(ctx, "email is required")
		return
	}

	question, err := c.AuthService.SecurityQuestion(email)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"securityQuestion": question})
}

// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	Email          string `json:"email" binding:"required,email"`
	SecurityAnswer string `json:"securityAnswer" binding:"required"`
	NewPassword    string `json:"newPassword" binding:"required,min=8"`
}

// ResetPassword godoc
// @Summary Reset the password via the security answer
// @Tags auth
// @Accept json
// @Produce json
// @Param body body ResetPasswordRequest true "Recovery answer and new password"
// @Success 200 {object} util.Response{data=service.AuthResponse}
// @Failure 400 {object} util.Response
// @Router /api/auth/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.ResetPassword(req.Email, req.SecurityAnswer, req.NewPassword)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// swagger:model InviteUserRequest
type InviteUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=team_admin developer"`
}

// InviteUser godoc
// @Summary Create an account on someone's behalf (admin)
// @Tags auth
// @Accept json
// @Produce json
// @Param body body InviteUserRequest true "New account details"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Security BearerAuth
// @Router /api/auth/invite [post]
func (c *AuthController) InviteUser(ctx *gin.Context) {
	var req InviteUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.InviteUser(req.Email, req.FullName, model.UserRole(req.Role))
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": user.ID, "email": user.Email})
}
