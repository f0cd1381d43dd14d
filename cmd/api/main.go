package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/naisata/servicios-api/internal/application/auth"
	"github.com/naisata/servicios-api/internal/application/ports"
	"github.com/naisata/servicios-api/internal/application/ticket"
	"github.com/naisata/servicios-api/internal/application/usecase"
	"github.com/naisata/servicios-api/internal/domain/repository"
	"github.com/naisata/servicios-api/internal/infrastructure/media"
	"github.com/naisata/servicios-api/internal/infrastructure/memory"
	"github.com/naisata/servicios-api/internal/infrastructure/postgres"
	"github.com/naisata/servicios-api/internal/infrastructure/realtime"
	httpRouter "github.com/naisata/servicios-api/internal/interfaces/http"
	"github.com/naisata/servicios-api/pkg/config"
	"github.com/naisata/servicios-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// repositories puertos de persistencia, independientes del adaptador elegido.
type repositories struct {
	users      repository.UserRepository
	companies  repository.CompanyRepository
	sites      repository.SiteRepository
	tickets    repository.TicketRepository
	settings   repository.SettingsRepository
	checkIns   repository.CheckInRepository
	attendance repository.AttendanceRepository
	schedules  repository.ScheduleRepository
	vacations  repository.VacationRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("media", cfg.Media.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	loc, err := time.LoadLocation(cfg.Timeclock.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.Timeclock.Timezone).Msg("zona horaria del reloj checador")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var repos repositories
	switch cfg.Store.Driver {
	case "memory":
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		repos = repositories{s.Users, s.Companies, s.Sites, s.Tickets, s.Settings, s.CheckIns, s.Attendance, s.Schedules, s.Vacations}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.EnsureSchema {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("crear esquema")
			}
		}
		s := postgres.NewStore(pool)
		repos = repositories{s.Users, s.Companies, s.Sites, s.Tickets, s.Settings, s.CheckIns, s.Attendance, s.Schedules, s.Vacations}
	}

	// Notificaciones: el Hub local siempre; con Redis, los casos de uso publican al
	// puente y cada instancia reenvía a su Hub lo que recibe.
	hub := realtime.NewHub(log.Component("realtime"), realtime.DefaultBufferSize)
	var publisher ports.EventPublisher = hub
	if cfg.Redis.Enabled {
		client, err := realtime.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		bridge := realtime.NewRedisBridge(client, hub, cfg.Redis.ChannelPrefix, log.Component("redis"))
		go func() {
			if err := bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("puente Redis finalizado")
			}
		}()
		publisher = bridge
	}

	mediaStore, err := media.New(ctx, cfg.Media, log.Component("media"))
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de imágenes")
	}

	authUC := auth.NewAuthUseCase(repos.users, mediaStore, publisher,
		auth.Policy{
			EmailDomain:      cfg.Account.EmailDomain,
			RequireSignature: cfg.Account.RequireSignature,
		},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
	ticketUC := ticket.NewTicketUseCase(repos.tickets, repos.sites, repos.companies, mediaStore, publisher, cfg.Ticket.MaxClientDownloads)
	companyUC := usecase.NewCompanyUseCase(repos.companies, repos.sites, repos.tickets, mediaStore, publisher)
	siteUC := usecase.NewSiteUseCase(repos.sites, repos.tickets, mediaStore, publisher)
	timeclockUC := usecase.NewTimeclockUseCase(repos.settings, repos.checkIns, mediaStore, publisher, loc)
	scheduleUC := usecase.NewScheduleUseCase(repos.schedules, publisher)
	attendanceUC := usecase.NewAttendanceUseCase(repos.attendance, mediaStore, publisher)
	vacationUC := usecase.NewVacationUseCase(repos.vacations, publisher)
	configUC := usecase.NewConfigUseCase(repos.settings, publisher)

	// Sin WriteTimeout: los streams SSE permanecen abiertos indefinidamente.
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ReadTimeout:  time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs (generar con `swag init -g cmd/api/main.go`)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Naisata Servicios API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   cfg.App.Name,
			"visores":   hub.Len(),
			"timestamp": time.Now().UTC(),
		})
	})

	if cfg.Media.Driver == "local" {
		app.Static("/uploads", cfg.Media.UploadsPath, fiber.Static{MaxAge: 86400})
	}

	shutdown := make(chan struct{})
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		TicketUC:     ticketUC,
		CompanyUC:    companyUC,
		SiteUC:       siteUC,
		TimeclockUC:  timeclockUC,
		ScheduleUC:   scheduleUC,
		AttendanceUC: attendanceUC,
		VacationUC:   vacationUC,
		ConfigUC:     configUC,
		Hub:          hub,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log.Component("events"),
		Done:         shutdown,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	// Primero los streams SSE; si no, ShutdownWithContext espera a que el visor cierre.
	close(shutdown)
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
