package app

import (
	"course_recommender/docs"
	"course_recommender/internal/config"
	"course_recommender/internal/middleware"
	"course_recommender/internal/model"
	"course_recommender/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	router.GET("/api/health", c.health.HealthCheck)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.ActiveUserMiddleware(repos.user))
	{
		a.registerRecommendationRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/recommendations/stats", c.recommendation.GetAllStats)
	}
}

func (a *App) registerRecommendationRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/recommendations", c.recommendation.GetRecommendations)
	rg.POST("/recommendations/refresh", c.recommendation.RefreshRecommendations)
	rg.GET("/recommendations/stats", c.recommendation.GetMyStats)

	// 推荐反馈
	rg.POST("/recommendations/:courseId/dismiss", c.recommendation.Dismiss)
	rg.POST("/recommendations/:courseId/click", c.recommendation.TrackClick)
	rg.POST("/recommendations/:courseId/enroll", c.recommendation.TrackEnrollment)
}
