package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"strings"

	"github.com/stemsi/tutorhub-backend/internal/config"
	"github.com/stemsi/tutorhub-backend/internal/database"
	"github.com/stemsi/tutorhub-backend/internal/logger"
	"github.com/stemsi/tutorhub-backend/internal/model"
	"github.com/stemsi/tutorhub-backend/internal/repository"
	"github.com/stemsi/tutorhub-backend/internal/service"
	"golang.org/x/term"
)

const minPasswordLen = 6

// create-admin bootstraps the first admin account. Flags skip the matching
// prompts; ADMIN_PASSWORD skips the password prompt for scripted installs.
func main() {
	name := flag.String("name", "", "admin display name")
	email := flag.String("email", "", "admin login email")
	flag.Parse()

	cfg := config.Load()
	log := logger.Component(logger.Setup(cfg.LogLevel, cfg.LogFormat), "create-admin")

	in := bufio.NewReader(os.Stdin)
	if *name == "" {
		*name = prompt(in, "Name")
	}
	if *email == "" {
		*email = prompt(in, "Email")
	}
	if strings.TrimSpace(*name) == "" {
		log.Fatal().Msg("Name is required")
	}
	if _, err := mail.ParseAddress(*email); err != nil {
		log.Fatal().Str("email", *email).Msg("Email is not a valid address")
	}

	password, err := readPassword()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not read password")
	}
	if len(password) < minPasswordLen {
		log.Fatal().Int("min", minPasswordLen).Msg("Password is too short")
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Creating an account never touches sessions, so no session store.
	userRepo := repository.NewUserRepository(pool)
	authService := service.NewAuthService(cfg, userRepo, nil, log)
	userService := service.NewUserService(userRepo, authService, log)

	admin, err := userService.Create(ctx, &model.CreateUserRequest{
		Name:     *name,
		Email:    *email,
		Role:     model.RoleAdmin,
		Password: password,
	})
	if errors.Is(err, repository.ErrConflict) {
		log.Fatal().Str("email", *email).Msg("A user with this email already exists")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("Admin %q <%s> created with ID %d\n", admin.Name, admin.Email, admin.ID)
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

// readPassword takes ADMIN_PASSWORD when set, otherwise prompts twice
// without echo.
func readPassword() (string, error) {
	if p := os.Getenv("ADMIN_PASSWORD"); p != "" {
		return p, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; set ADMIN_PASSWORD")
	}

	fmt.Print("Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	fmt.Print("Repeat password: ")
	second, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
