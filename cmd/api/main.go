package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/jhoicas/Gimnasio-api/docs"
	"github.com/jhoicas/Gimnasio-api/internal/application/auth"
	"github.com/jhoicas/Gimnasio-api/internal/application/ports"
	"github.com/jhoicas/Gimnasio-api/internal/application/usecase"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/cache"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/excel"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Gimnasio-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Gimnasio-api/internal/interfaces/http"
	"github.com/jhoicas/Gimnasio-api/pkg/config"
	"github.com/jhoicas/Gimnasio-api/pkg/logger"
)

// repositories persistencia elegida por DB_DRIVER.
type repositories struct {
	users            repository.UserRepository
	clientStatuses   repository.ClientStatusRepository
	subscriptions    repository.SubscriptionRepository
	discoverySources repository.DiscoverySourceRepository
	customers        repository.CustomerRepository
	contacts         repository.CustomerContactRepository
	statuses         repository.CustomerStatusRepository
	tx               usecase.MembershipTxRunner
}

func postgresRepositories(pool *pgxpool.Pool) repositories {
	return repositories{
		users:            postgres.NewUserRepository(pool),
		clientStatuses:   postgres.NewClientStatusRepository(pool),
		subscriptions:    postgres.NewSubscriptionRepository(pool),
		discoverySources: postgres.NewDiscoverySourceRepository(pool),
		customers:        postgres.NewCustomerRepository(pool),
		contacts:         postgres.NewContactRepository(pool),
		statuses:         postgres.NewStatusRepository(pool),
		tx:               postgres.NewTxRunner(pool),
	}
}

func memoryRepositories() repositories {
	r := memory.NewRepositories(memory.NewStore())
	return repositories{
		users:            r.Users,
		clientStatuses:   r.ClientStatuses,
		subscriptions:    r.Subscriptions,
		discoverySources: r.DiscoverySources,
		customers:        r.Customers,
		contacts:         r.Contacts,
		statuses:         r.Statuses,
		tx:               r.Tx,
	}
}

// @title                      Gimnasio API
// @version                    1.0
// @description                Administración de clientes, contactos e historial de estados de un gimnasio.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var repos repositories
	if cfg.DB.InMemory() {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		repos = memoryRepositories()
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.RunMigrations {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		repos = postgresRepositories(pool)
	}

	// Caché de catálogos: Redis si está configurado, si no una caché nula.
	var catalogCache ports.CatalogCache = cache.NewNoop()
	if cfg.Redis.Addr != "" {
		client := cache.NewRedisClient(cfg.Redis)
		defer client.Close()
		rc := cache.NewRedisCache(client, cfg.App.Name+":")
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, se continúa sin caché")
		} else {
			catalogCache = rc
		}
		cancel()
	}

	photos, err := storage.NewLocal(cfg.Storage.PhotoDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Storage.PhotoDir).Msg("almacenamiento de fotos")
	}

	authUC := auth.NewAuthUseCase(repos.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name); err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}

	userUC := usecase.NewUserUseCase(repos.users)
	catalogUC := usecase.NewCatalogUseCase(
		repos.clientStatuses, repos.subscriptions, repos.discoverySources,
		catalogCache, time.Duration(cfg.Redis.TTLSeconds)*time.Second,
	)
	customerUC := usecase.NewCustomerUseCase(usecase.CustomerDeps{
		Customers:        repos.customers,
		Contacts:         repos.contacts,
		Statuses:         repos.statuses,
		ClientStatuses:   repos.clientStatuses,
		Subscriptions:    repos.subscriptions,
		DiscoverySources: repos.discoverySources,
		Tx:               repos.tx,
		Photos:           photos,
		MaxPhotoSize:     cfg.Storage.MaxPhotoSize,
		CURPStrict:       cfg.Membership.CURPStrict,
	})
	contactUC := usecase.NewContactUseCase(repos.contacts, repos.tx)
	statusUC := usecase.NewStatusUseCase(repos.customers, repos.statuses, repos.clientStatuses)
	reportUC := usecase.NewReportUseCase(customerUC, infrapdf.NewCustomerSheetGenerator(cfg.App.Name), excel.NewCustomerExporter())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		// La foto admite hasta MaxPhotoSize; el resto es margen para el multipart.
		BodyLimit: int(cfg.Storage.MaxPhotoSize) + 1<<20,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gimnasio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		CatalogUC:  catalogUC,
		CustomerUC: customerUC,
		ContactUC:  contactUC,
		StatusUC:   statusUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
