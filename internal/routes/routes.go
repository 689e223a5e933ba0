package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/record"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAccess "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/access"
	ucAccount "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/account"
	ucAdmin "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/admin"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucRecord "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/record"
)

// Deps are the adapters the HTTP layer is built on. main picks the
// implementations (postgres or memory, s3 or memory, redis or local).
type Deps struct {
	Config *config.Config
	Log    zerolog.Logger

	Appointments appointment.Repository
	Users        account.Repository
	Grants       access.GrantRepository
	AuditSink    audit.Sink
	Audit        *audit.Dispatcher
	Locker       lock.Locker
	Records      record.ObjectStore
	Tokens       *identity.JWTProvider

	Health  map[string]handlers.Pinger
	Version string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	log := d.Log

	hours := appointment.ClinicHours{
		Open:       cfg.ClinicOpen,
		Close:      cfg.ClinicClose,
		LunchStart: cfg.LunchStart,
		LunchEnd:   cfg.LunchEnd,
	}

	// ======================================================
	// IDENTITY
	// ======================================================
	gate := identity.NewGate(d.Tokens, d.Users)
	resolver := access.NewResolver(d.Grants)

	// ======================================================
	// USE CASES: ACCOUNTS
	// ======================================================
	registerPatientUC := ucAccount.NewRegisterUser(d.Users, d.Audit, access.RolePatient, cfg.EmailCheckMX)
	registerDoctorUC := ucAccount.NewRegisterUser(d.Users, d.Audit, access.RoleDoctor, cfg.EmailCheckMX)
	loginUC := ucAccount.NewLogin(d.Users, d.Tokens)
	findDoctorsUC := ucAccount.NewFindDoctors(d.Users)
	getProfileUC := ucAccount.NewGetProfile(d.Users)
	updateProfileUC := ucAccount.NewUpdateProfile(d.Users)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(d.Appointments, d.Users, d.Locker, d.Audit, cfg.Timezone)
	cancelUC := ucAppointment.NewCancelAppointment(d.Appointments, d.Audit)
	declineUC := ucAppointment.NewDeclineAppointment(d.Appointments, d.Audit)
	confirmUC := ucAppointment.NewConfirmAppointment(d.Appointments, d.Audit)
	completeUC := ucAppointment.NewCompleteAppointment(d.Appointments, d.Audit)
	getAppointmentUC := ucAppointment.NewGetAppointment(d.Appointments)
	listDoctorUC := ucAppointment.NewListDoctorAppointments(d.Appointments)
	listPatientUC := ucAppointment.NewListPatientAppointments(d.Appointments)
	availabilityUC := ucAppointment.NewGetAvailability(d.Appointments, d.Users, hours, cfg.Timezone)
	dashboardUC := ucAppointment.NewGetPatientDashboard(d.Appointments)

	// ======================================================
	// USE CASES: RECORDS / GRANTS / ADMIN
	// ======================================================
	broker := ucRecord.NewBroker(d.Records, resolver, d.Audit, cfg.MaxUploadBytes)
	grantsUC := ucAccess.NewGrants(d.Grants, d.Users, d.Audit)
	listDoctorsUC := ucAdmin.NewListDoctors(d.Users)
	statsUC := ucAdmin.NewGetDashboardStats(d.Users, d.Appointments)
	auditLogsUC := ucAdmin.NewListAuditLogs(d.AuditSink)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerPatientUC, registerDoctorUC, loginUC, log)
	adminHandler := handlers.NewAdminHandler(listDoctorsUC, statsUC, log)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogsUC, cfg.Timezone, log)
	doctorHandler := handlers.NewDoctorHandler(listDoctorUC, getAppointmentUC, declineUC, confirmUC, completeUC, log)
	patientHandler := handlers.NewPatientHandler(handlers.PatientHandlerDeps{
		FindDoctors:  findDoctorsUC,
		Availability: availabilityUC,
		Book:         bookUC,
		List:         listPatientUC,
		Get:          getAppointmentUC,
		Cancel:       cancelUC,
		Dashboard:    dashboardUC,
	}, log)
	recordHandler := handlers.NewRecordHandler(broker, cfg.MaxUploadBytes, log)
	profileHandler := handlers.NewProfileHandler(getProfileUC, updateProfileUC, log)
	permissionHandler := handlers.NewPermissionHandler(grantsUC, log)
	healthHandler := handlers.NewHealthHandler(d.Health, cfg.Env, d.Version)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Liveness)
		api.GET("/health/ready", healthHandler.Readiness)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register/patient", authHandler.RegisterPatient)
		api.POST("/auth/login", authHandler.Login)
		api.POST(
			"/auth/register/doctor",
			middleware.AuthMiddleware(gate, log),
			middleware.RequireRole(gate, log, access.RoleAdmin),
			authHandler.RegisterDoctor,
		)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(gate, log), middleware.RequireRole(gate, log, access.RoleAdmin))
		{
			admin.GET("/doctors", adminHandler.ListDoctors)
			admin.GET("/dashboard-stats", adminHandler.DashboardStats)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// DOCTOR
		// ------------------------------
		doctor := api.Group("/doctor")
		doctor.Use(middleware.AuthMiddleware(gate, log), middleware.RequireRole(gate, log, access.RoleDoctor))
		{
			doctor.GET("/appointments", doctorHandler.ListAppointments)
			doctor.GET("/appointments/:id", doctorHandler.GetAppointment)
			doctor.PUT("/appointments/decline/:id", doctorHandler.Decline)
			doctor.PUT("/appointments/confirm/:id", doctorHandler.Confirm)
			doctor.PUT("/appointments/complete/:id", doctorHandler.Complete)

			doctor.GET("/medical-records/:patientId", recordHandler.ListForPatient)
			doctor.GET("/medical-records/:patientId/download", recordHandler.DownloadForPatient)
		}

		// ------------------------------
		// PATIENT
		// ------------------------------
		patient := api.Group("/patient")
		patient.Use(middleware.AuthMiddleware(gate, log), middleware.RequireRole(gate, log, access.RolePatient))
		{
			patient.GET("/doctors", patientHandler.FindDoctors)
			patient.GET("/doctors/:id/availability", patientHandler.Availability)

			patient.POST("/appointments/book", patientHandler.Book)
			patient.GET("/appointments", patientHandler.ListAppointments)
			patient.GET("/appointments/:id", patientHandler.GetAppointment)
			patient.DELETE("/appointments/cancel/:id", patientHandler.Cancel)

			patient.POST("/medical-records/upload", recordHandler.Upload)
			patient.GET("/medical-records", recordHandler.ListOwn)
			patient.GET("/medical-records/download", recordHandler.DownloadOwn)

			patient.GET("/dashboard", patientHandler.Dashboard)
			patient.GET("/profile", profileHandler.Get)
			patient.PUT("/profile/update", profileHandler.Update)

			patient.GET("/permissions", permissionHandler.List)
			patient.POST("/permissions", permissionHandler.Grant)
			patient.DELETE("/permissions/:doctorId", permissionHandler.Revoke)
		}
	}
}
