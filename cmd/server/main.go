package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/tutorhub-backend/internal/config"
	"github.com/stemsi/tutorhub-backend/internal/database"
	"github.com/stemsi/tutorhub-backend/internal/handler"
	"github.com/stemsi/tutorhub-backend/internal/logger"
	"github.com/stemsi/tutorhub-backend/internal/repository"
	"github.com/stemsi/tutorhub-backend/internal/router"
	"github.com/stemsi/tutorhub-backend/internal/scheduler"
	"github.com/stemsi/tutorhub-backend/internal/service"
	"github.com/stemsi/tutorhub-backend/internal/timezone"
	"github.com/stemsi/tutorhub-backend/internal/validator"
	"github.com/stemsi/tutorhub-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("timezone", cfg.SchoolTimezone).
		Msg("Starting TutorHub Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	loc, err := timezone.Load(cfg.SchoolTimezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.SchoolTimezone).Msg("Unknown school timezone")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	standardRepo := repository.NewStandardRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	lectureRepo := repository.NewLectureRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	markRepo := repository.NewMarkRepository(pool)
	homeworkRepo := repository.NewHomeworkRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Redis Adapters ────────────────────────────────────────────────
	sessionStore := service.NewRedisSessionStore(rdb)
	scheduleCache := service.NewRedisScheduleCache(rdb, cfg.ScheduleCacheTTL)
	attendanceQueue := service.NewRedisAttendanceQueue(rdb)
	announcementBus := service.NewRedisAnnouncementBus(rdb, log)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo, sessionStore, log)
	userService := service.NewUserService(userRepo, authService, log)
	standardService := service.NewStandardService(standardRepo, scheduleCache, log)
	subjectService := service.NewSubjectService(subjectRepo, scheduleCache, log)
	lectureService := service.NewLectureService(lectureRepo, userRepo, subjectRepo, standardRepo, scheduleCache, log)
	attendanceService := service.NewAttendanceService(lectureRepo, attendanceRepo, userRepo, attendanceQueue, loc, log)
	markService := service.NewMarkService(lectureRepo, markRepo, attendanceRepo, userRepo, log)
	homeworkService := service.NewHomeworkService(homeworkRepo, subjectRepo, log)
	noteService := service.NewNoteService(noteRepo, subjectRepo, log)
	announcementService := service.NewAnnouncementService(announcementRepo, announcementBus, log)
	feedbackService := service.NewFeedbackService(feedbackRepo, userRepo, log)
	mediaService := service.NewMediaService(cfg, log)
	dashboardService := service.NewDashboardService(dashboardRepo, lectureRepo, loc, log)
	reportService := service.NewReportService(standardRepo, userRepo, lectureRepo, attendanceRepo, markService, lectureService, loc, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, userService),
		User:         handler.NewUserHandler(userService),
		Role:         handler.NewRoleHandler(),
		Standard:     handler.NewStandardHandler(standardService),
		Subject:      handler.NewSubjectHandler(subjectService),
		Lecture:      handler.NewLectureHandler(lectureService, reportService, loc),
		Attendance:   handler.NewAttendanceHandler(attendanceService),
		Mark:         handler.NewMarkHandler(markService),
		Homework:     handler.NewHomeworkHandler(homeworkService),
		Note:         handler.NewNoteHandler(noteService),
		Media:        handler.NewMediaHandler(mediaService),
		Announcement: handler.NewAnnouncementHandler(announcementService),
		Feedback:     handler.NewFeedbackHandler(feedbackService),
		Report:       handler.NewReportHandler(reportService, log),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Health:       handler.NewHealthHandler(pool, func(ctx context.Context) error { return rdb.Ping(ctx).Err() }, log),
		WS:           handler.NewWSHandler(announcementBus, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	attendanceWorker := worker.NewAttendanceWorker(attendanceRepo, rdb, log)
	go attendanceWorker.Start(workerCtx)

	// ─── Scheduled Jobs ───────────────────────────────────────────────
	jobs := scheduler.New(loc, log)
	if err := jobs.AddPrewarm(cfg.PrewarmCron, lectureService); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.PrewarmCron).Msg("Invalid prewarm schedule")
	}
	jobs.Start()

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Build the current week for every standard before accepting traffic
	// so the Monday morning rush hits a warm cache.
	if n, err := lectureService.PrewarmWeek(ctx, timezone.Today(loc)); err != nil {
		log.Warn().Err(err).Msg("Cache prewarm failed")
	} else {
		log.Info().Int("weeks", n).Msg("Schedule cache prewarmed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop cron jobs, letting a running prewarm finish.
	jobs.Stop(shutdownCtx)

	// 3. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
