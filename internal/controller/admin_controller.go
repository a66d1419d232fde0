package controller

import (
	"io"

	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/service"
	"mathtatag_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// 导入文件大小上限
const maxImportBytes = 10 << 20

type AdminController struct {
	AuthService      *service.AuthService
	DashboardService *service.DashboardService
	ImportService    *service.ImportService
}

func NewAdminController(authService *service.AuthService, dashboardService *service.DashboardService, importService *service.ImportService) *AdminController {
	return &AdminController{
		AuthService:      authService,
		DashboardService: dashboardService,
		ImportService:    importService,
	}
}

// CreateTeacherRequest 创建老师账号
// swagger:model CreateTeacherRequest
type CreateTeacherRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	School   string `json:"school"`
	Contact  string `json:"contact"`
}

// CreateTeacher godoc
// @Summary 创建老师账号
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateTeacherRequest true "老师信息"
// @Success 201 {object} util.Response{data=object}
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/admin/teachers [post]
func (c *AdminController) CreateTeacher(ctx *gin.Context) {
	var req CreateTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		School:   req.School,
		Contact:  req.Contact,
	}
	if err := c.AuthService.CreateTeacher(ctx.Request.Context(), user); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": user.ID})
}

// ListTeachers godoc
// @Summary 老师列表
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/admin/teachers [get]
func (c *AdminController) ListTeachers(ctx *gin.Context) {
	teachers, err := c.AuthService.ListTeachers(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, teachers)
}

// Dashboard godoc
// @Summary 管理端看板
// @Description 按老师汇总提升率，并给出全部学员的汇总
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.AdminDashboard}
// @Router /api/admin/dashboard [get]
func (c *AdminController) Dashboard(ctx *gin.Context) {
	d, err := c.DashboardService.Admin(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, d)
}

// Import godoc
// @Summary 导入旧系统数据
// @Description 请求体为旧系统导出的 JSON（Classes / Students / Parents），导入到指定老师名下
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param teacherId query int true "老师ID"
// @Success 200 {object} util.Response{data=service.ImportResult}
// @Failure 400 {object} util.Response "JSON 无效"
// @Router /api/admin/import [post]
func (c *AdminController) Import(ctx *gin.Context) {
	teacherID := util.MustParseUint(ctx.Query("teacherId"))
	if teacherID == 0 {
		util.BadRequest(ctx, "teacherId is required")
		return
	}
	teacher, err := c.AuthService.GetUser(ctx.Request.Context(), teacherID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if teacher.Role != model.Teacher {
		util.BadRequest(ctx, "teacherId does not belong to a teacher")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxImportBytes))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ImportService.Import(ctx.Request.Context(), teacherID, raw)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
