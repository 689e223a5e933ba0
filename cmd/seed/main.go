package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logging"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAccount "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/account"
)

var categories = []string{
	"general",
	"dermatology",
	"cardiology",
	"orthopedics",
	"endocrinology",
	"neurology",
	"pediatrics",
	"psychiatry",
	"ophthalmology",
	"ent",
}

func main() {
	doctors := flag.Int("doctors", 20, "number of doctors to create")
	patients := flag.Int("patients", 200, "number of patients to create")
	password := flag.String("password", "secret123", "password for every seeded account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Env, cfg.LogLevel)

	if cfg.PersistenceDriver != config.DriverPostgres {
		logger.Fatal().Msg("seed needs PERSISTENCE_DRIVER=postgres")
	}

	gdb, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	users := infraRepo.NewUserGormRepository(gdb)

	gofakeit.Seed(time.Now().UnixNano())
	ctx := context.Background()

	if err := seed(ctx, users, access.RoleDoctor, *doctors, *password, logger); err != nil {
		logger.Fatal().Err(err).Msg("seed doctors")
	}
	if err := seed(ctx, users, access.RolePatient, *patients, *password, logger); err != nil {
		logger.Fatal().Err(err).Msg("seed patients")
	}

	logger.Info().Msg("seed complete")
}

// seed registers count users through the same use case the API uses.
// Duplicate fake emails are skipped.
func seed(
	ctx context.Context,
	users account.Repository,
	role access.Role,
	count int,
	password string,
	logger zerolog.Logger,
) error {

	register := ucAccount.NewRegisterUser(users, nil, role, false)
	minDOB := time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC)
	maxDOB := time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC)

	created := 0
	for i := 0; i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()

		in := ucAccount.RegisterInput{
			Email:     strings.ToLower(fmt.Sprintf("%s.%s.%d@example.com", first, last, gofakeit.Number(1, 99999))),
			Password:  password,
			FirstName: first,
			LastName:  last,
			DOB:       gofakeit.DateRange(minDOB, maxDOB).Format(timezone.DateLayout),
			Telephone: gofakeit.Phone(),
			Address:   gofakeit.Street(),
		}
		if role == access.RoleDoctor {
			in.Category = categories[gofakeit.Number(0, len(categories)-1)]
		}

		_, err := register.Execute(ctx, "", in)
		if errors.Is(err, account.ErrEmailTaken) {
			continue
		}
		if err != nil {
			return err
		}
		created++
	}

	logger.Info().Str("role", string(role)).Int("count", created).Msg("users seeded")
	return nil
}
