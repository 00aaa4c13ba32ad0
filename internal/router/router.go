package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/config"
	"github.com/stemsi/tutorhub-backend/internal/handler"
	"github.com/stemsi/tutorhub-backend/internal/middleware"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/response"
	"github.com/stemsi/tutorhub-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Role         *handler.RoleHandler
	Standard     *handler.StandardHandler
	Subject      *handler.SubjectHandler
	Lecture      *handler.LectureHandler
	Attendance   *handler.AttendanceHandler
	Mark         *handler.MarkHandler
	Homework     *handler.HomeworkHandler
	Note         *handler.NoteHandler
	Media        *handler.MediaHandler
	Announcement *handler.AnnouncementHandler
	Feedback     *handler.FeedbackHandler
	Report       *handler.ReportHandler
	Dashboard    *handler.DashboardHandler
	Health       *handler.HealthHandler
	WS           *handler.WSHandler
}

var perm = middleware.RequirePermission

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.AccessLog(log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Handler panicked")
		response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
	}))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Metrics())

	router.Use(middleware.Brotli())

	// Serve uploaded attachments statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(365 * 24 * time.Hour))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	router.GET("/health", handlers.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	loginLimiter := middleware.NewRateLimiter("login", cfg.LoginRatePerMin, time.Minute)

	auth := router.Group("/api/v1/auth")
	auth.Use(middleware.NoStore())
	{
		auth.POST("/login", loginLimiter.Middleware(), handlers.Auth.Login)

		authed := auth.Group("")
		authed.Use(middleware.RequireAuth(authService), middleware.CheckSession(authService))
		authed.POST("/logout", handlers.Auth.Logout)
		authed.GET("/me", handlers.Auth.Me)
	}

	// ─── 2. WebSocket Group (Query Token Auth) ─────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService), middleware.CheckSession(authService))
	{
		ws.GET("/announcements", handlers.WS.AnnouncementStream)
	}

	// ─── 3. API Group (JWT + Session + RBAC) ───────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.NoStore(), middleware.RequireAuth(authService), middleware.CheckSession(authService))

	api.GET("/dashboard", perm(model.PermissionDashboardRead), handlers.Dashboard.GetDashboardData)
	api.POST("/media/upload", perm(model.PermissionMediaUpload), handlers.Media.UploadMedia)

	// Users
	users := api.Group("/users")
	{
		users.GET("", perm(model.PermissionUsersRead), handlers.User.ListUsers)
		users.GET("/:id", perm(model.PermissionUsersRead), handlers.User.GetUser)
		users.POST("", perm(model.PermissionUsersWrite), handlers.User.CreateUser)
		users.PUT("/:id", perm(model.PermissionUsersWrite), handlers.User.UpdateUser)
		users.DELETE("/:id", perm(model.PermissionUsersWrite), handlers.User.DeleteUser)
		users.POST("/:id/reset-session", perm(model.PermissionUsersResetSession), handlers.User.ResetSession)
	}
	api.GET("/roles", perm(model.PermissionUsersRead), handlers.Role.ListRoles)
	api.GET("/permissions", perm(model.PermissionUsersRead), handlers.Role.GetPermissions)

	// Standards & subjects: everyone reads, admins write.
	standards := api.Group("/standards")
	{
		standards.GET("", handlers.Standard.GetAll)
		standards.GET("/:id", handlers.Standard.Get)
		standards.POST("", perm(model.PermissionCatalogWrite), handlers.Standard.Create)
		standards.PUT("/:id", perm(model.PermissionCatalogWrite), handlers.Standard.Update)
		standards.DELETE("/:id", perm(model.PermissionCatalogWrite), handlers.Standard.Delete)
	}
	subjects := api.Group("/subjects")
	{
		subjects.GET("", handlers.Subject.GetAll)
		subjects.GET("/:id", handlers.Subject.Get)
		subjects.POST("", perm(model.PermissionCatalogWrite), handlers.Subject.Create)
		subjects.PUT("/:id", perm(model.PermissionCatalogWrite), handlers.Subject.Update)
		subjects.DELETE("/:id", perm(model.PermissionCatalogWrite), handlers.Subject.Delete)
	}

	// Lectures. The weekly views are open to every role; students are
	// scoped to their own standard by the handler.
	lectures := api.Group("/lectures")
	{
		lectures.GET("/week", handlers.Lecture.Week)
		lectures.GET("/week.ics", handlers.Lecture.WeekCalendar)

		lectures.GET("", perm(model.PermissionLecturesRead), handlers.Lecture.List)
		lectures.GET("/:id", perm(model.PermissionLecturesRead), handlers.Lecture.Get)
		lectures.POST("", perm(model.PermissionLecturesWrite), handlers.Lecture.Create)
		lectures.PUT("/:id", perm(model.PermissionLecturesWrite), handlers.Lecture.Update)
		lectures.DELETE("/:id", perm(model.PermissionLecturesWrite), handlers.Lecture.Delete)

		lectures.GET("/:id/attendance", perm(model.PermissionAttendanceRead), handlers.Attendance.ListByLecture)
		lectures.PUT("/:id/attendance", perm(model.PermissionAttendanceWrite), handlers.Attendance.Mark)
		lectures.POST("/:id/attendance/bulk", perm(model.PermissionAttendanceWrite), handlers.Attendance.MarkBulk)

		lectures.GET("/:id/marks", perm(model.PermissionMarksRead), handlers.Mark.ListByLecture)
		lectures.PUT("/:id/marks", perm(model.PermissionMarksWrite), handlers.Mark.Record)
	}
	api.DELETE("/attendance/:id", perm(model.PermissionAttendanceWrite), handlers.Attendance.Delete)
	api.DELETE("/marks/:id", perm(model.PermissionMarksWrite), handlers.Mark.Delete)

	// Per-student statistics.
	students := api.Group("/students/:id")
	{
		students.GET("/attendance/summary", perm(model.PermissionAttendanceRead), handlers.Attendance.StudentSummary)
		students.GET("/progress", perm(model.PermissionMarksRead), handlers.Mark.StudentProgress)
	}
	me := api.Group("/me")
	me.Use(middleware.RequireRole(model.RoleStudent))
	{
		me.GET("/attendance/summary", handlers.Attendance.MySummary)
		me.GET("/progress", handlers.Mark.MyProgress)
	}

	// Homework & notes: everyone reads (students only their standard).
	homework := api.Group("/homework")
	{
		homework.GET("", handlers.Homework.List)
		homework.GET("/:id", handlers.Homework.Get)
		homework.POST("", perm(model.PermissionHomeworkWrite), handlers.Homework.Create)
		homework.PUT("/:id", perm(model.PermissionHomeworkWrite), handlers.Homework.Update)
		homework.DELETE("/:id", perm(model.PermissionHomeworkWrite), handlers.Homework.Delete)
	}
	notes := api.Group("/notes")
	{
		notes.GET("", handlers.Note.List)
		notes.GET("/:id", handlers.Note.Get)
		notes.POST("", perm(model.PermissionNotesWrite), handlers.Note.Create)
		notes.PUT("/:id", perm(model.PermissionNotesWrite), handlers.Note.Update)
		notes.DELETE("/:id", perm(model.PermissionNotesWrite), handlers.Note.Delete)
	}

	// Announcements
	announcements := api.Group("/announcements")
	{
		announcements.GET("", handlers.Announcement.List)
		announcements.GET("/:id", handlers.Announcement.Get)
		announcements.POST("", perm(model.PermissionAnnouncementsWrite), handlers.Announcement.Create)
		announcements.PUT("/:id", perm(model.PermissionAnnouncementsWrite), handlers.Announcement.Update)
		announcements.DELETE("/:id", perm(model.PermissionAnnouncementsWrite), handlers.Announcement.Delete)
	}

	// Feedback
	api.POST("/feedback", perm(model.PermissionFeedbackWrite), handlers.Feedback.Submit)
	api.GET("/feedback", perm(model.PermissionFeedbackRead), handlers.Feedback.List)

	// Reports
	reports := api.Group("/reports")
	reports.Use(perm(model.PermissionReportsExport))
	{
		reports.GET("/attendance.xlsx", handlers.Report.AttendanceReport)
		reports.GET("/progress.xlsx", handlers.Report.ProgressReport)
	}

	return router
}
