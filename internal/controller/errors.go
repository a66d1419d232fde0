package controller

import (
	"errors"
	"net/http"

	"mathtatag_backend/internal/importer"
	"mathtatag_backend/internal/scoring"
	"mathtatag_backend/internal/service"
	"mathtatag_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError 将业务错误映射为 HTTP 状态码，其余按 500 处理并记录日志
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, scoring.ErrInvalidRating),
		errors.Is(err, util.ErrInvalidSubScore),
		errors.Is(err, util.ErrInvalidSchedule),
		errors.Is(err, util.ErrInvalidTaskStatus),
		errors.Is(err, importer.ErrInvalidDocument):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials),
		errors.Is(err, util.ErrAccountDisabled):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrClassroomNotFound),
		errors.Is(err, util.ErrLearnerNotFound),
		errors.Is(err, util.ErrTaskNotFound),
		errors.Is(err, util.ErrNoGuardian):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, scoring.ErrTaskAlreadyComplete),
		errors.Is(err, util.ErrScoreAlreadyRecorded),
		errors.Is(err, util.ErrTaskStatusLocked),
		errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// actorFrom 从 JWT 声明构造服务层的 Actor，未登录时返回 false
func actorFrom(ctx *gin.Context) (service.Actor, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return service.Actor{}, false
	}
	return service.Actor{UserID: claims.UserID, Role: claims.Role}, true
}

// uintParam 解析路径中的数字 ID，非法时直接返回 400
func uintParam(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}
