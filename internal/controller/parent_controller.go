package controller

import (
	"mathtatag_backend/internal/scoring"
	"mathtatag_backend/internal/service"
	"mathtatag_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ParentController struct {
	TaskService      *service.TaskService
	DashboardService *service.DashboardService
}

func NewParentController(taskService *service.TaskService, dashboardService *service.DashboardService) *ParentController {
	return &ParentController{TaskService: taskService, DashboardService: dashboardService}
}

// Dashboard godoc
// @Summary 家长首页
// @Description 学员前后测评估、提升率、星级以及指定季度的任务进度
// @Tags 家长
// @Produce json
// @Security ApiKeyAuth
// @Param quarter query int false "季度 1-4，默认 1"
// @Success 200 {object} util.Response{data=model.ParentDashboard}
// @Failure 404 {object} util.Response "未关联学员"
// @Router /api/parent/dashboard [get]
func (c *ParentController) Dashboard(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	quarter := util.ParseIntDefault(ctx.Query("quarter"), util.MinQuarter)
	d, err := c.DashboardService.Parent(ctx.Request.Context(), actor.UserID, quarter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, d)
}

// ListTasks godoc
// @Summary 家庭任务列表
// @Tags 家长
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.HomeTask}
// @Router /api/parent/tasks [get]
func (c *ParentController) ListTasks(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	tasks, err := c.TaskService.List(ctx.Request.Context(), actor.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, tasks)
}

// GenerateTasks godoc
// @Summary 生成家庭任务
// @Description 已有任务时直接返回，regenerate=true 时重新生成
// @Tags 家长
// @Produce json
// @Security ApiKeyAuth
// @Param regenerate query bool false "是否重新生成"
// @Success 200 {object} util.Response{data=[]model.HomeTask}
// @Router /api/parent/tasks/generate [post]
func (c *ParentController) GenerateTasks(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	regenerate := ctx.Query("regenerate") == "true"
	tasks, err := c.TaskService.Generate(ctx.Request.Context(), actor.UserID, regenerate)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, tasks)
}

// AdvanceRequest 任务评分 1-5
// swagger:model AdvanceRequest
type AdvanceRequest struct {
	Rating int `json:"rating" binding:"required"`
}

// AdvanceTask godoc
// @Summary 提交评分推进任务
// @Description notdone 提交前评分进入 ongoing，ongoing 提交后评分进入 done
// @Tags 家长
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "任务ID"
// @Param body body AdvanceRequest true "评分"
// @Success 200 {object} util.Response{data=model.HomeTask}
// @Failure 400 {object} util.Response "评分超出范围"
// @Failure 409 {object} util.Response "任务已完成"
// @Router /api/parent/tasks/{id}/advance [post]
func (c *ParentController) AdvanceTask(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	taskID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	var req AdvanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, scoring.ErrInvalidRating.Error())
		return
	}
	task, err := c.TaskService.Advance(ctx.Request.Context(), actor.UserID, taskID, req.Rating)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, task)
}

// ReplaceTask godoc
// @Summary 覆盖任务内容
// @Description 整条替换，后写者生效
// @Tags 家长
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "任务ID"
// @Param body body scoring.Task true "任务"
// @Success 200 {object} util.Response{data=model.HomeTask}
// @Router /api/parent/tasks/{id} [put]
func (c *ParentController) ReplaceTask(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	taskID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	var req scoring.Task
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	task, err := c.TaskService.Replace(ctx.Request.Context(), actor.UserID, taskID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, task)
}
