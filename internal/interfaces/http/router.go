package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/naisata/servicios-api/internal/application/auth"
	"github.com/naisata/servicios-api/internal/application/ticket"
	"github.com/naisata/servicios-api/internal/application/usecase"
	"github.com/naisata/servicios-api/internal/domain/entity"
	"github.com/naisata/servicios-api/internal/infrastructure/realtime"
	"github.com/naisata/servicios-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	TicketUC     *ticket.TicketUseCase
	CompanyUC    *usecase.CompanyUseCase
	SiteUC       *usecase.SiteUseCase
	TimeclockUC  *usecase.TimeclockUseCase
	ScheduleUC   *usecase.ScheduleUseCase
	AttendanceUC *usecase.AttendanceUseCase
	VacationUC   *usecase.VacationUseCase
	ConfigUC     *usecase.ConfigUseCase
	Hub          *realtime.Hub
	JWTSecret    string
	Log          *logger.Logger
	Heartbeat    time.Duration   // opcional; DefaultHeartbeat
	Done         <-chan struct{} // se cierra al apagar; libera los streams SSE
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth y configuración de cuenta (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/set-password", authHandler.SetPassword)
	api.Post("/set-signature", authHandler.SetSignature)

	// Firma remota del cliente (público, la liga se comparte por WhatsApp/correo)
	ticketHandler := NewTicketHandler(deps.TicketUC)
	public := api.Group("/ticket")
	public.Get("/:id", ticketHandler.FetchPublic)
	public.Post("/:id/sign", ticketHandler.Sign)
	public.Post("/:id/download-pdf", ticketHandler.RequestDownload)

	// Notificaciones en tiempo real (público)
	eventsHandler := NewEventsHandler(deps.Hub, deps.Log, deps.Heartbeat, deps.Done)
	api.Get("/events", eventsHandler.Stream)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Users
	users := protected.Group("/users", adminOnly)
	users.Get("/", authHandler.ListUsers)
	users.Put("/:id/role", authHandler.AssignRole)
	users.Put("/:id/schedule", authHandler.AssignSchedule)

	// Companies
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", adminOnly, companyHandler.Delete)

	// Sites
	sites := protected.Group("/sites")
	siteHandler := NewSiteHandler(deps.SiteUC)
	sites.Get("/", siteHandler.List)
	sites.Post("/", siteHandler.Create)
	sites.Get("/:id", siteHandler.GetByID)
	sites.Put("/:id", siteHandler.Update)
	sites.Put("/:id/logo", siteHandler.UpdateLogo)
	sites.Delete("/:id", adminOnly, siteHandler.Delete)

	// Tickets
	tickets := protected.Group("/tickets")
	tickets.Post("/", ticketHandler.Create)
	tickets.Get("/:siteId", ticketHandler.ListBySite)
	tickets.Post("/:id/photos", ticketHandler.AppendPhotos)

	// Reloj checador
	timeclockHandler := NewTimeclockHandler(deps.TimeclockUC)
	protected.Get("/settings/timeclock", timeclockHandler.GetSettings)
	protected.Put("/settings/timeclock", adminOnly, timeclockHandler.UpdateSettings)
	protected.Post("/checkin", timeclockHandler.CheckIn)
	protected.Get("/checkins", timeclockHandler.ListCheckIns)

	// Horarios globales
	schedules := protected.Group("/schedules")
	scheduleHandler := NewScheduleHandler(deps.ScheduleUC)
	schedules.Get("/", scheduleHandler.List)
	schedules.Get("/:id", scheduleHandler.GetByID)
	schedules.Post("/", adminOnly, scheduleHandler.Create)
	schedules.Post("/:id", adminOnly, scheduleHandler.Update)
	schedules.Delete("/:id", adminOnly, scheduleHandler.Delete)

	// Asistencia pareada
	attendance := protected.Group("/attendance")
	attendanceHandler := NewAttendanceHandler(deps.AttendanceUC)
	attendance.Get("/", attendanceHandler.List)
	attendance.Post("/", attendanceHandler.Create)
	attendance.Post("/sync", attendanceHandler.Sync)

	// Vacaciones
	vacations := protected.Group("/vacations")
	vacationHandler := NewVacationHandler(deps.VacationUC)
	vacations.Get("/", vacationHandler.List)
	vacations.Post("/", vacationHandler.Create)
	vacations.Put("/:id/status", adminOnly, vacationHandler.UpdateStatus)

	// Configuración general
	configHandler := NewConfigHandler(deps.ConfigUC)
	protected.Get("/config", configHandler.Get)
	protected.Post("/config", adminOnly, configHandler.Merge)
}
