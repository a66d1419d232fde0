package app

import (
	"mathtatag_backend/docs"
	"mathtatag_backend/internal/config"
	"mathtatag_backend/internal/middleware"
	"mathtatag_backend/internal/model"
	"mathtatag_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)

		a.registerAdminRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
		a.registerParentRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/teachers", c.admin.CreateTeacher)
		admin.GET("/teachers", c.admin.ListTeachers)
		admin.GET("/dashboard", c.admin.Dashboard)
		admin.POST("/import", c.admin.Import)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/classrooms", c.classroom.CreateClassroom)
		teacher.GET("/classrooms", c.classroom.ListClassrooms)

		classroom := teacher.Group("/classrooms/:id")
		{
			classroom.POST("/learners", c.classroom.Enroll)
			classroom.GET("/learners", c.classroom.ListLearners)
			classroom.GET("/dashboard", c.classroom.Dashboard)
			classroom.GET("/guardians", c.classroom.Guardians)
			classroom.POST("/report", c.classroom.ExportReport)
		}

		learner := teacher.Group("/learners/:id")
		{
			learner.POST("/scores/:kind", c.classroom.RecordScore)
			learner.PUT("/guardian", c.classroom.LinkGuardian)
		}
	}
}

func (a *App) registerParentRoutes(rg *gin.RouterGroup, c *controllers) {
	parent := rg.Group("/parent")
	parent.Use(middleware.RoleMiddleware(model.Parent))
	{
		parent.GET("/dashboard", c.parent.Dashboard)
		parent.PUT("/profile", c.auth.UpdateProfile)

		parent.GET("/tasks", c.parent.ListTasks)
		parent.POST("/tasks/generate", c.parent.GenerateTasks)
		parent.POST("/tasks/:id/advance", c.parent.AdvanceTask)
		parent.PUT("/tasks/:id", c.parent.ReplaceTask)
	}
}
