package controller

import (
	"mathtatag_backend/internal/scoring"
	"mathtatag_backend/internal/service"
	"mathtatag_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClassroomController struct {
	ClassroomService *service.ClassroomService
	LearnerService   *service.LearnerService
	DashboardService *service.DashboardService
	ReportService    *service.ReportService
}

func NewClassroomController(classroomService *service.ClassroomService, learnerService *service.LearnerService, dashboardService *service.DashboardService, reportService *service.ReportService) *ClassroomController {
	return &ClassroomController{
		ClassroomService: classroomService,
		LearnerService:   learnerService,
		DashboardService: dashboardService,
		ReportService:    reportService,
	}
}

// CreateClassroomRequest 创建班级
// swagger:model CreateClassroomRequest
type CreateClassroomRequest struct {
	Name   string `json:"name" binding:"required"`
	School string `json:"school"`
}

// CreateClassroom godoc
// @Summary 创建班级
// @Tags 老师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateClassroomRequest true "班级"
// @Success 201 {object} util.Response{data=model.Classroom}
// @Router /api/teacher/classrooms [post]
func (c *ClassroomController) CreateClassroom(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var req CreateClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	classroom, err := c.ClassroomService.Create(ctx.Request.Context(), actor.UserID, req.Name, req.School)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, classroom)
}

// ListClassrooms godoc
// @Summary 老师的班级列表与看板
// @Tags 老师
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.TeacherDashboard}
// @Router /api/teacher/classrooms [get]
func (c *ClassroomController) ListClassrooms(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	d, err := c.DashboardService.Teacher(ctx.Request.Context(), actor.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, d)
}

// EnrollRequest 添加学员
// swagger:model EnrollRequest
type EnrollRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}

// Enroll godoc
// @Summary 添加学员
// @Tags 老师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "班级ID"
// @Param body body EnrollRequest true "学员"
// @Success 201 {object} util.Response{data=model.Learner}
// @Router /api/teacher/classrooms/{id}/learners [post]
func (c *ClassroomController) Enroll(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	classroomID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	learner, err := c.LearnerService.Enroll(ctx.Request.Context(), actor, classroomID, req.Nickname)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, learner)
}

// ListLearners godoc
// @Summary 班级学员列表
// @Tags 老师
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "班级ID"
// @Success 200 {object} util.Response{data=[]model.Learner}
// @Router /api/teacher/classrooms/{id}/learners [get]
func (c *ClassroomController) ListLearners(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	classroomID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	learners, err := c.LearnerService.ListByClassroom(ctx.Request.Context(), actor, classroomID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, learners)
}

// ScoreRequest 前测/后测成绩，每项 0-10
// swagger:model ScoreRequest
type ScoreRequest struct {
	Pattern *int `json:"pattern" binding:"required"`
	Numbers *int `json:"numbers" binding:"required"`
}

// RecordScore godoc
// @Summary 录入前测或后测
// @Description kind 为 pre 或 post；每项成绩只能录入一次
// @Tags 老师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "学员ID"
// @Param kind path string true "pre 或 post"
// @Param body body ScoreRequest true "成绩"
// @Success 200 {object} util.Response{data=model.Learner}
// @Failure 400 {object} util.Response "成绩超出范围"
// @Failure 409 {object} util.Response "成绩已录入"
// @Router /api/teacher/learners/{id}/scores/{kind} [post]
func (c *ClassroomController) RecordScore(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	kind := scoring.TestKind(ctx.Param("kind"))
	if kind != scoring.PreTest && kind != scoring.PostTest {
		util.BadRequest(ctx, "kind must be pre or post")
		return
	}
	var req ScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	score := scoring.SubScore{Pattern: *req.Pattern, Numbers: *req.Numbers}
	learner, err := c.LearnerService.RecordScore(ctx.Request.Context(), actor, ctx.Param("id"), kind, score)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, learner)
}

// LinkGuardianRequest 关联家长
// swagger:model LinkGuardianRequest
type LinkGuardianRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// LinkGuardian godoc
// @Summary 关联家长账号
// @Tags 老师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "学员ID"
// @Param body body LinkGuardianRequest true "家长邮箱"
// @Success 200 {object} util.Response{data=model.Learner}
// @Router /api/teacher/learners/{id}/guardian [put]
func (c *ClassroomController) LinkGuardian(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var req LinkGuardianRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	learner, err := c.LearnerService.LinkGuardian(ctx.Request.Context(), actor, ctx.Param("id"), req.Email)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, learner)
}

// Dashboard godoc
// @Summary 班级看板
// @Description 汇总、等级分布、优秀与需关注名单、学员评估
// @Tags 老师
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "班级ID"
// @Success 200 {object} util.Response{data=model.ClassDashboard}
// @Router /api/teacher/classrooms/{id}/dashboard [get]
func (c *ClassroomController) Dashboard(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	classroomID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	d, err := c.DashboardService.Class(ctx.Request.Context(), actor, classroomID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, d)
}

// Guardians godoc
// @Summary 班级家长列表
// @Tags 老师
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "班级ID"
// @Success 200 {object} util.Response{data=[]model.GuardianOverview}
// @Router /api/teacher/classrooms/{id}/guardians [get]
func (c *ClassroomController) Guardians(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	classroomID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	rows, err := c.DashboardService.Guardians(ctx.Request.Context(), actor, classroomID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// ExportReport godoc
// @Summary 导出班级报告
// @Description 生成班级看板 JSON 并写入本地或 MinIO 存储
// @Tags 老师
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "班级ID"
// @Success 201 {object} util.Response{data=service.ReportExport}
// @Router /api/teacher/classrooms/{id}/report [post]
func (c *ClassroomController) ExportReport(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	classroomID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	export, err := c.ReportService.ExportClass(ctx.Request.Context(), actor, classroomID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, export)
}
