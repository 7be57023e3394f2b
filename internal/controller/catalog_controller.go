package controller

import (
	"skillmatrix_backend/internal/service"
	"skillmatrix_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// ListTeams godoc
// @Summary List all teams
// @Tags catalog
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Team}
// @Security BearerAuth
// @Router /api/teams [get]
func (c *CatalogController) ListTeams(ctx *gin.Context) {
	teams, err := c.CatalogService.ListTeams()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, teams)
}

// swagger:model CreateTeamRequest
type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateTeam godoc
// @Summary Create a team
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body CreateTeamRequest true "Team details"
// @Success 201 {object} util.Response{data=model.Team}
// @Security BearerAuth
// @Router /api/teams [post]
func (c *CatalogController) CreateTeam(ctx *gin.Context) {
	var req CreateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	team, err := c.CatalogService.CreateTeam(req.Name, req.Description)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, team)
}

// ListProjects godoc
// @Summary List a team's projects
// @Tags catalog
// @Produce json
// @Param teamId path int true "Team ID"
// @Success 200 {object} util.Response{data=[]model.Project}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/teams/{teamId}/projects [get]
func (c *CatalogController) ListProjects(ctx *gin.Context) {
	teamID, err := pathID(ctx, "teamId")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	projects, err := c.CatalogService.ListProjects(teamID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, projects)
}

// swagger:model CreateProjectRequest
type CreateProjectRequest struct {
	TeamID      uint   `json:"teamId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateProject godoc
// @Summary Create a project under a team
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body CreateProjectRequest true "Project details"
// @Success 201 {object} util.Response{data=model.Project}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/projects [post]
func (c *CatalogController) CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	project, err := c.CatalogService.CreateProject(req.TeamID, req.Name, req.Description)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, project)
}

// ListComponents godoc
// @Summary List a project's components
// @Tags catalog
// @Produce json
// @Param projectId path int true "Project ID"
// @Success 200 {object} util.Response{data=[]model.Component}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/projects/{projectId}/components [get]
func (c *CatalogController) ListComponents(ctx *gin.Context) {
	projectID, err := pathID(ctx, "projectId")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	components, err := c.CatalogService.ListComponents(projectID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, components)
}

// swagger:model CreateComponentRequest
type CreateComponentRequest struct {
	ProjectID   uint   `json:"projectId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	TechStack   string `json:"techStack"`
	Description string `json:"description"`
}

// CreateComponent godoc
// @Summary Create a component under a project
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body CreateComponentRequest true "Component details"
// @Success 201 {object} util.Response{data=model.Component}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/components [post]
func (c *CatalogController) CreateComponent(ctx *gin.Context) {
	var req CreateComponentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	component, err := c.CatalogService.CreateComponent(req.ProjectID, req.Name, req.TechStack, req.Description)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, component)
}

// ListQuestions godoc
// @Summary List a component's question bank
// @Tags catalog
// @Produce json
// @Param componentId path int true "Component ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/components/{componentId}/questions [get]
func (c *CatalogController) ListQuestions(ctx *gin.Context) {
	componentID, err := pathID(ctx, "componentId")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.CatalogService.ListQuestions(componentID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// CreateQuestion godoc
// @Summary Add a question to a component's bank
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body service.CreateQuestionInput true "Question details"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/questions [post]
func (c *CatalogController) CreateQuestion(ctx *gin.Context) {
	var req service.CreateQuestionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.CatalogService.CreateQuestion(req)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// ListAssessments godoc
// @Summary List assessment definitions
// @Tags catalog
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Assessment}
// @Security BearerAuth
// @Router /api/assessments [get]
func (c *CatalogController) ListAssessments(ctx *gin.Context) {
	assessments, err := c.CatalogService.ListAssessments()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assessments)
}

// CreateAssessment godoc
// @Summary Define an assessment for a component and level
// @Description Rejected when the bank lacks enough questions at that difficulty.
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body service.CreateAssessmentInput true "Assessment details"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 422 {object} util.Response
// @Security BearerAuth
// @Router /api/assessments [post]
func (c *CatalogController) CreateAssessment(ctx *gin.Context) {
	var req service.CreateAssessmentInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)

	assessment, err := c.CatalogService.CreateAssessment(req, claims.UserID)
	if err != nil {
		util.DomainError(ctx, err)
		return
	}
	util.Created(ctx, assessment)
}
