package controller

import (
	"skillmatrix_backend/internal/model"
	"skillmatrix_backend/internal/service"
	"skillmatrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// Admin godoc
// @Summary Admin summary counters
// @Tags dashboard
// @Produce json
// @Success 200 {object} util.Response{data=service.AdminDashboard}
// @Security BearerAuth
// @Router /api/dashboard/admin [get]
func (c *DashboardController) Admin(ctx *gin.Context) {
	dash, err := c.DashboardService.Admin(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dash)
}

// Developer godoc
// @Summary A developer's dashboard
// @Description Developers may only view their own; admins may view anyone's.
// @Tags dashboard
// @Produce json
// @Param id path int true "Developer ID"
// @Success 200 {object} util.Response{data=service.DeveloperDashboard}
// @Failure 403 {object} util.Response
// @Security BearerAuth
// @Router /api/dashboard/developer/{id} [get]
func (c *DashboardController) Developer(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	if claims.Role == model.RoleDeveloper && claims.UserID != id {
		util.Forbidden(ctx)
		return
	}

	dash, err := c.DashboardService.Developer(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dash)
}

// Matrix godoc
// @Summary The developers-by-components skill grid
// @Tags dashboard
// @Produce json
// @Success 200 {object} util.Response{data=service.SkillsMatrix}
// @Security BearerAuth
// @Router /api/dashboard/skills-matrix [get]
func (c *DashboardController) Matrix(ctx *gin.Context) {
	matrix, err := c.DashboardService.Matrix()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, matrix)
}
