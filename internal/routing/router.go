// Package routing wires the middleware stack and the HTTP routes.
package routing

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cwngan/cu2m-backend/internal/handlers"
	"github.com/cwngan/cu2m-backend/internal/managers"
	"github.com/cwngan/cu2m-backend/internal/middleware"
	"github.com/cwngan/cu2m-backend/internal/schemas"
	"github.com/cwngan/cu2m-backend/internal/utils"
)

func InitRouter(databaseMgr managers.DatabaseMgr, mailMgr managers.MailMgr, sessionMgr managers.SessionMgr) *gin.Engine {
	router := gin.New()
	setupCommonMiddleware(router)
	setupRoutes(router, databaseMgr, mailMgr, sessionMgr)

	return router
}

func setupCommonMiddleware(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.InjectTrace())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "PATCH", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Trace-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.SanitizePath())
	router.Use(middleware.LogRequest())
}

func setupRoutes(router *gin.Engine, databaseMgr managers.DatabaseMgr, mailMgr managers.MailMgr, sessionMgr managers.SessionMgr) {
	router.GET("/", func(c *gin.Context) {
		apiVersion := os.Getenv("API_VERSION")
		if apiVersion == "" {
			apiVersion = "main:latest"
		}
		utils.WriteAndLogResponse(c, &schemas.MetadataDTO{
			ApiVersion: apiVersion,
			ApiName:    "CU2M Backend",
		}, http.StatusOK)
	})

	router.GET("/health", func(c *gin.Context) {
		health := &schemas.HealthDTO{Server: true}
		status := http.StatusServiceUnavailable
		if err := databaseMgr.GetPool().Ping(c.Request.Context()); err == nil {
			health.DB = true
			status = http.StatusOK
		}
		utils.WriteAndLogResponse(c, health, status)
	})

	apiRouter := router.Group("/api")
	{
		userRouter := apiRouter.Group("/user")
		userHdl := handlers.NewUserHandler(databaseMgr, sessionMgr, mailMgr)
		userRoutes(userRouter, userHdl, databaseMgr, sessionMgr)

		// The catalog is public so the frontend can offer search before
		// login.
		courseHdl := handlers.NewCourseHandler(databaseMgr)
		apiRouter.GET("/courses", courseHdl.SearchCourses)

		coursePlanHdl := handlers.NewCoursePlanHandler(databaseMgr)
		semesterPlanHdl := handlers.NewSemesterPlanHandler(databaseMgr)

		coursePlanRouter := apiRouter.Group("/course-plans")
		coursePlanRouter.Use(middleware.AuthGuard(databaseMgr, sessionMgr))
		coursePlanRoutes(coursePlanRouter, coursePlanHdl, semesterPlanHdl)

		semesterPlanRouter := apiRouter.Group("/semester-plans")
		semesterPlanRouter.Use(middleware.AuthGuard(databaseMgr, sessionMgr))
		semesterPlanRoutes(semesterPlanRouter, semesterPlanHdl)
	}
}

func userRoutes(userRouter *gin.RouterGroup, userHdl handlers.UserHdl, databaseMgr managers.DatabaseMgr, sessionMgr managers.SessionMgr) {
	userRouter.POST("/signup", middleware.ValidateAndSanitizeStruct(&schemas.SignupRequest{}), userHdl.Signup)
	userRouter.POST("/login", middleware.ValidateAndSanitizeStruct(&schemas.LoginRequest{}), userHdl.Login)
	userRouter.POST("/logout", userHdl.Logout)
	userRouter.POST("/forgot-password", middleware.ValidateAndSanitizeStruct(&schemas.ForgotPasswordRequest{}), userHdl.ForgotPassword)
	userRouter.POST("/verify-token", middleware.ValidateAndSanitizeStruct(&schemas.VerifyTokenRequest{}), userHdl.VerifyToken)
	userRouter.PUT("/reset-password", middleware.ValidateAndSanitizeStruct(&schemas.ResetPasswordRequest{}), userHdl.ResetPassword)
	userRouter.GET("/me", middleware.AuthGuard(databaseMgr, sessionMgr), userHdl.GetMe)
}

func coursePlanRoutes(coursePlanRouter *gin.RouterGroup, coursePlanHdl handlers.CoursePlanHdl, semesterPlanHdl handlers.SemesterPlanHdl) {
	coursePlanRouter.GET("", coursePlanHdl.ListCoursePlans)
	coursePlanRouter.POST("", middleware.ValidateAndSanitizeStruct(&schemas.CoursePlanCreateRequest{}), coursePlanHdl.CreateCoursePlan)
	coursePlanRouter.GET("/:"+utils.CoursePlanIdKey, coursePlanHdl.GetCoursePlan)
	coursePlanRouter.GET("/:"+utils.CoursePlanIdKey+"/semester-plans", semesterPlanHdl.ListSemesterPlans)
	coursePlanRouter.PATCH("/:"+utils.CoursePlanIdKey, middleware.ValidateAndSanitizeStruct(&schemas.CoursePlanUpdateRequest{}), coursePlanHdl.UpdateCoursePlan)
	coursePlanRouter.DELETE("/:"+utils.CoursePlanIdKey, coursePlanHdl.DeleteCoursePlan)
}

func semesterPlanRoutes(semesterPlanRouter *gin.RouterGroup, semesterPlanHdl handlers.SemesterPlanHdl) {
	semesterPlanRouter.POST("", middleware.ValidateAndSanitizeStruct(&schemas.SemesterPlanCreateRequest{}), semesterPlanHdl.CreateSemesterPlan)
	semesterPlanRouter.GET("/:"+utils.SemesterPlanIdKey, semesterPlanHdl.GetSemesterPlan)
	semesterPlanRouter.PUT("/:"+utils.SemesterPlanIdKey, middleware.ValidateAndSanitizeStruct(&schemas.SemesterPlanUpdateRequest{}), semesterPlanHdl.UpdateSemesterPlan)
	semesterPlanRouter.DELETE("/:"+utils.SemesterPlanIdKey, semesterPlanHdl.DeleteSemesterPlan)
}
