package controller

import (
	"mathtatag_backend/internal/model"
	"mathtatag_backend/internal/service"
	"mathtatag_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// RegisterRequest 家长注册
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	Contact         string `json:"contact"`
	HouseholdIncome string `json:"householdIncome"`
}

// Register godoc
// @Summary 家长注册
// @Description 家长自助注册账号，老师与管理员账号由管理员创建
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "注册信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Contact:         req.Contact,
		HouseholdIncome: req.HouseholdIncome,
	}
	if err := c.AuthService.RegisterParent(ctx.Request.Context(), user); err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// LoginRequest 登录
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 登录
// @Description 邮箱密码登录，返回 JWT
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=object} "登录成功"
// @Failure 401 {object} util.Response "邮箱或密码错误"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"token": token, "user": user})
}

// Me godoc
// @Summary 当前用户
// @Tags 认证
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	user, err := c.AuthService.GetUser(ctx.Request.Context(), actor.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// ProfileRequest 家长资料
// swagger:model ProfileRequest
type ProfileRequest struct {
	Name            string `json:"name"`
	Contact         string `json:"contact"`
	HouseholdIncome string `json:"householdIncome"`
}

// UpdateProfile godoc
// @Summary 更新家长资料
// @Description 更新联系方式与家庭收入区间，收入区间用于任务推荐
// @Tags 家长
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ProfileRequest true "资料"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/parent/profile [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	var req ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	user, err := c.AuthService.UpdateProfile(ctx.Request.Context(), actor.UserID, req.Name, req.Contact, req.HouseholdIncome)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}
