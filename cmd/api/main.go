package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/record"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logging"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
	ucAccount "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/account"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

type adapters struct {
	appointments appointment.Repository
	users        account.Repository
	grants       access.GrantRepository
	auditSink    audit.Sink
	locker       lock.Locker
	records      record.ObjectStore
	checks       map[string]handlers.Pinger
	closers      []func() error
}

func (a *adapters) close(log zerolog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn().Err(err).Msg("error closing adapter")
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Env, cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("api stopped")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hours := appointment.ClinicHours{
		Open:       cfg.ClinicOpen,
		Close:      cfg.ClinicClose,
		LunchStart: cfg.LunchStart,
		LunchEnd:   cfg.LunchEnd,
	}
	if err := hours.Validate(); err != nil {
		return fmt.Errorf("clinic hours: %w", err)
	}

	ad, err := buildAdapters(cfg, logger)
	if err != nil {
		return err
	}
	defer ad.close(logger)

	dispatcher := audit.NewDispatcher(audit.New(ad.auditSink), logger)
	defer dispatcher.Close()

	if err := ucAccount.EnsureAdmin(rootCtx, ad.users, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	routes.RegisterRoutes(r, routes.Deps{
		Config:       cfg,
		Log:          logger,
		Appointments: ad.appointments,
		Users:        ad.users,
		Grants:       ad.grants,
		AuditSink:    ad.auditSink,
		Audit:        dispatcher,
		Locker:       ad.locker,
		Records:      ad.records,
		Tokens:       identity.NewJWTProvider(cfg.JWTSecret, cfg.JWTTTL),
		Health:       ad.checks,
		Version:      version,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", cfg.Addr()).
			Str("env", cfg.Env).
			Str("persistence", cfg.PersistenceDriver).
			Str("storage", cfg.StorageDriver).
			Bool("redis", cfg.RedisEnabled()).
			Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-rootCtx.Done():
		logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func buildAdapters(cfg *config.Config, logger zerolog.Logger) (*adapters, error) {
	ad := &adapters{checks: make(map[string]handlers.Pinger)}

	// --------------------------------------------------
	// Persistence
	// --------------------------------------------------
	switch cfg.PersistenceDriver {
	case config.DriverPostgres:
		gdb, err := dbpkg.NewDB(cfg, logger)
		if err != nil {
			return nil, err
		}
		ad.appointments = infraRepo.NewAppointmentGormRepository(gdb)
		ad.users = infraRepo.NewUserGormRepository(gdb)
		ad.grants = infraRepo.NewGrantGormRepository(gdb)
		ad.auditSink = infraRepo.NewAuditGormRepository(gdb)
		ad.checks["postgres"] = handlers.PingFunc(dbpkg.Ping(gdb))
		ad.closers = append(ad.closers, func() error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
		logger.Info().Msg("connected to Postgres")
	default:
		mem := memory.NewStore()
		ad.appointments = mem
		ad.users = mem
		ad.grants = mem
		ad.auditSink = mem
		ad.checks["memory"] = mem
		logger.Warn().Msg("using in-memory persistence, data is lost on restart")
	}

	// --------------------------------------------------
	// Booking lock
	// --------------------------------------------------
	if cfg.RedisEnabled() {
		rdb, err := lock.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			ad.close(logger)
			return nil, fmt.Errorf("redis connection error: %w", err)
		}
		ad.locker = lock.NewRedisLocker(rdb, cfg.LockTTL, cfg.LockWait)
		ad.checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		ad.closers = append(ad.closers, rdb.Close)
		logger.Info().Msg("connected to Redis")
	} else {
		ad.locker = lock.NewLocalLocker(cfg.LockWait)
	}

	// --------------------------------------------------
	// Medical record storage
	// --------------------------------------------------
	switch cfg.StorageDriver {
	case config.DriverS3:
		s3 := storage.NewS3Store(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			UsePathStyle:    cfg.S3UsePathStyle,
			PresignTTL:      cfg.PresignTTL,
		})
		ad.records = s3
		ad.checks["s3"] = s3
	default:
		ad.records = storage.NewMemoryStore()
	}

	return ad, nil
}
