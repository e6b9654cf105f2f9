package app

import (
	"driveflow_backend/docs"
	"driveflow_backend/internal/config"
	"driveflow_backend/internal/middleware"
	"driveflow_backend/internal/model"

	"driveflow_backend/pkg/monitoring"

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
		a.registerAuthenticatedRoutes(authGroup, c)
	}

	// 3. 驾校管理端
	a.registerSchoolRoutes(router, c, repos, cfg)

	// 4. 平台管理端
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerAuthenticatedRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.auth.UpdateProfile)

	// 车型目录与评分表，登录即可查
	rg.GET("/licenses", c.license.List)
	rg.GET("/licenses/:id/exam-template", c.examTemplate.GetByLicense)
	rg.GET("/exam-templates", c.examTemplate.List)
	rg.GET("/exam-templates/:id", c.examTemplate.Get)

	// 我的报名与课表
	rg.GET("/my/enrollments", c.enrollment.ListMine)
	rg.GET("/my/schedule", c.appointment.MySchedule)
	rg.GET("/enrollments/:id/appointments", c.appointment.ListByEnrollment)

	// 课程预约
	rg.POST("/appointments", c.appointment.Create)
	rg.GET("/appointments/:id", c.appointment.Get)
	rg.DELETE("/appointments/:id", c.appointment.Cancel)

	// 考核评分。谁能评、谁能看由服务层的课程关系判定，
	// 这里不加角色中间件，避免平台管理员被直通放行
	rg.POST("/appointments/:id/evaluations", c.evaluation.Submit)
	rg.GET("/evaluations/:id", c.evaluation.Get)
	rg.GET("/students/:id/evaluations", c.evaluation.ListStudentHistory)
}

func (a *App) registerSchoolRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	school := router.Group("/api/school")
	school.Use(
		middleware.AuthMiddleware(cfg),
		middleware.ActivityMiddleware(repos.user),
		middleware.RoleMiddleware(model.SchoolAdmin),
	)
	{
		// 教练账号
		school.POST("/instructors", c.user.CreateInstructor)
		school.GET("/instructors", c.user.ListInstructors)

		// 教练车
		school.POST("/vehicles", c.vehicle.Create)
		school.GET("/vehicles", c.vehicle.List)
		school.GET("/vehicles/:id", c.vehicle.Get)
		school.PUT("/vehicles/:id", c.vehicle.Update)
		school.DELETE("/vehicles/:id", c.vehicle.Delete)

		// 班型
		school.POST("/teaching-categories", c.teachingCategory.Create)
		school.GET("/teaching-categories", c.teachingCategory.List)
		school.GET("/teaching-categories/:id", c.teachingCategory.Get)
		school.PUT("/teaching-categories/:id", c.teachingCategory.Update)
		school.DELETE("/teaching-categories/:id", c.teachingCategory.Delete)

		// 报名档案
		school.POST("/enrollments", c.enrollment.Create)
		school.GET("/enrollments", c.enrollment.List)
		school.GET("/enrollments/:id", c.enrollment.Get)
		school.PUT("/enrollments/:id", c.enrollment.Update)
		school.POST("/enrollments/:id/instructor", c.enrollment.AssignInstructor)
		school.POST("/enrollments/:id/vehicle", c.enrollment.AssignVehicle)

		// 档案附件
		school.POST("/enrollments/:id/documents", c.document.Upload)
		school.GET("/enrollments/:id/documents", c.document.List)
		school.DELETE("/documents/:id", c.document.Delete)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(
		middleware.AuthMiddleware(cfg),
		middleware.ActivityMiddleware(repos.user),
		middleware.RoleMiddleware(model.SuperAdmin),
	)
	{
		// 用户管理
		admin.GET("/users", c.user.ListUsers)
		admin.GET("/users/:id", c.user.GetUser)
		admin.POST("/users/:id/reset-password", c.user.ResetPassword)
		admin.POST("/users/:id/disable", c.user.DisableUser)

		// 驾校管理
		admin.POST("/schools", c.school.Create)
		admin.GET("/schools", c.school.List)
		admin.GET("/schools/:id", c.school.Get)
		admin.PUT("/schools/:id", c.school.Update)
		admin.DELETE("/schools/:id", c.school.Delete)
		admin.POST("/schools/:id/admins", c.user.CreateSchoolAdmin)

		// 准驾车型目录
		admin.POST("/licenses", c.license.Create)
		admin.PUT("/licenses/:id", c.license.Update)
		admin.DELETE("/licenses/:id", c.license.Delete)
	}
}
