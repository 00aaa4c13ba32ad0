package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stemsi/tutorhub-backend/internal/config"
	"github.com/stemsi/tutorhub-backend/internal/database"
	"github.com/stemsi/tutorhub-backend/internal/logger"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/progress"
	"github.com/stemsi/tutorhub-backend/internal/repository"
	"github.com/stemsi/tutorhub-backend/internal/service"
	"github.com/stemsi/tutorhub-backend/internal/timezone"
)

const seedPassword = "tutorhub123"

var standards = []model.Standard{
	{Name: "Grade 9", Code: "G9"},
	{Name: "Grade 10", Code: "G10"},
}

var subjectNames = []struct{ name, code string }{
	{"Mathematics", "MATH"},
	{"Science", "SCI"},
	{"English", "ENG"},
}

var studentNames = []string{
	"Aarav Shah", "Diya Patel", "Kabir Mehta", "Ananya Iyer", "Vihaan Rao",
	"Isha Nair", "Arjun Das", "Meera Pillai", "Rohan Gupta", "Sara Khan",
}

// weekPlan is one lecture per subject Monday to Wednesday and a test on Friday.
var weekPlan = []struct {
	offset int
	kind   model.LectureKind
}{
	{1, model.LectureKindLecture},
	{2, model.LectureKindLecture},
	{3, model.LectureKindLecture},
	{5, model.LectureKindTest},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	loc, err := timezone.Load(cfg.SchoolTimezone)
	if err != nil {
		log.Fatal().Err(err).Msg("Unknown school timezone")
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	standardRepo := repository.NewStandardRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	cache := service.NewRedisScheduleCache(rdb, cfg.ScheduleCacheTTL)

	authService := service.NewAuthService(cfg, userRepo, nil, log)
	userService := service.NewUserService(userRepo, authService, log)
	standardService := service.NewStandardService(standardRepo, cache, log)
	subjectService := service.NewSubjectService(subjectRepo, cache, log)
	lectureService := service.NewLectureService(repository.NewLectureRepository(pool), userRepo, subjectRepo, standardRepo, cache, log)

	fmt.Println("=== Seeding TutorHub demo data ===")

	tutor, err := userService.Create(ctx, &model.CreateUserRequest{
		Name:     "Priya Sharma",
		Email:    "tutor@tutorhub.local",
		Role:     model.RoleTutor,
		Password: seedPassword,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create tutor (was the database already seeded?)")
	}
	fmt.Printf("Created tutor %s (ID %d)\n", tutor.Email, tutor.ID)

	weekStart, _ := progress.WeekBounds(timezone.Today(loc))

	lectureCount := 0
	for si := range standards {
		st := standards[si]
		if err := standardService.Create(ctx, &st); err != nil {
			log.Fatal().Err(err).Str("standard", st.Name).Msg("Failed to create standard")
		}
		fmt.Printf("Created standard %s (ID %d)\n", st.Name, st.ID)

		var subjectIDs []int
		for _, sn := range subjectNames {
			sub := &model.Subject{Name: sn.name, Code: sn.code, StandardID: st.ID}
			if err := subjectService.Create(ctx, sub); err != nil {
				log.Fatal().Err(err).Str("subject", sn.name).Msg("Failed to create subject")
			}
			subjectIDs = append(subjectIDs, sub.ID)
		}

		for i, name := range studentNames {
			standardID := st.ID
			_, err := userService.Create(ctx, &model.CreateUserRequest{
				Name:       name,
				Email:      fmt.Sprintf("student%d.%s@tutorhub.local", i+1, st.Code),
				Role:       model.RoleStudent,
				StandardID: &standardID,
				Password:   seedPassword,
			})
			if err != nil && !errors.Is(err, repository.ErrConflict) {
				log.Fatal().Err(err).Str("student", name).Msg("Failed to create student")
			}
		}

		for _, slot := range weekPlan {
			date := weekStart.AddDate(0, 0, slot.offset).Format(model.DateLayout)
			for i, subjectID := range subjectIDs {
				_, err := lectureService.Create(ctx, &model.LectureRequest{
					SubjectID:   subjectID,
					TutorID:     tutor.ID,
					StandardID:  st.ID,
					Date:        date,
					StartTime:   fmt.Sprintf("%02d:00", 9+i+si*3),
					EndTime:     fmt.Sprintf("%02d:50", 9+i+si*3),
					Description: slot.kind,
				})
				if err != nil {
					log.Fatal().Err(err).Str("date", date).Msg("Failed to create lecture")
				}
				lectureCount++
			}
		}
	}

	fmt.Printf("\nSeed completed! %d standards, %d students each, %d lectures. Password: %s\n",
		len(standards), len(studentNames), lectureCount, seedPassword)
}
