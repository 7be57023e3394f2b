package controller

import (
	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/internal/service"
	"skillmatrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService   *service.UserService
	InviteService *service.InviteService
}

func NewUserController(userService *service.UserService, inviteService *service.InviteService) *UserController {
	return &UserController{
		UserService:   userService,
		InviteService: inviteService,
	}
}

// List godoc
// @Summary List users, optionally filtered by role
// @Tags users
// @Produce json
// @Param role query string false "Role filter" Enums(root, team_admin, developer)
// @Success 200 {object} util.Response{data=[]model.User}
// @Security BearerAuth
// @Router /api/users [get]
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.UserService.List(model.UserRole(ctx.Query("role")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// Get godoc
// @Summary Fetch one user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.GetByID(id)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// Levels godoc
// @Summary Fetch a developer's skill ledger
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} util.Response{data=[]service.SkillSummary}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/users/{id}/levels [get]
func (c *UserController) Levels(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	levels, err := c.UserService.Levels(id)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, levels)
}

// Attempts godoc
// @Summary Fetch a developer's attempt history
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} util.Response{data=[]model.AssessmentAttempt}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/users/{id}/attempts [get]
func (c *UserController) Attempts(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempts, err := c.UserService.Attempts(id)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// Invites godoc
// @Summary Fetch a developer's open invites
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} util.Response{data=[]service.PendingInviteView}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/users/{id}/invites [get]
func (c *UserController) Invites(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := c.UserService.GetByID(id); err != nil {
		util.DomainError(ctx, err)
		return
	}

	invites, err := c.InviteService.PendingForDeveloper(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, invites)
}
