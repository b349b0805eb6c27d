// @title                       Pecuadex API
// @version                     1.0
// @description                 API REST de Pecuadex: catálogo, inventario de piezas, compras, ventas, reseñas y cotizaciones.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	_ "github.com/pecuadex/pecuadex-api/docs"
	"github.com/pecuadex/pecuadex-api/internal/application/analytics"
	"github.com/pecuadex/pecuadex-api/internal/application/auth"
	"github.com/pecuadex/pecuadex-api/internal/application/inventory"
	"github.com/pecuadex/pecuadex-api/internal/application/orders"
	"github.com/pecuadex/pecuadex-api/internal/application/ports"
	"github.com/pecuadex/pecuadex-api/internal/application/usecase"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/domain/repository"
	"github.com/pecuadex/pecuadex-api/internal/infrastructure/mail"
	"github.com/pecuadex/pecuadex-api/internal/infrastructure/memory"
	"github.com/pecuadex/pecuadex-api/internal/infrastructure/pdf"
	"github.com/pecuadex/pecuadex-api/internal/infrastructure/postgres"
	"github.com/pecuadex/pecuadex-api/internal/infrastructure/storage"
	"github.com/pecuadex/pecuadex-api/internal/infrastructure/tokenstore"
	httpRouter "github.com/pecuadex/pecuadex-api/internal/interfaces/http"
	"github.com/pecuadex/pecuadex-api/pkg/config"
	"github.com/pecuadex/pecuadex-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: se usa un secreto de desarrollo")
		cfg.JWT.Secret = "pecuadex-dev-secret"
	}

	ctx := context.Background()

	var (
		repos    repository.Repos
		txRunner inventory.TxRunner
	)
	switch cfg.DB.Driver {
	case "memory":
		store := memory.NewStore()
		repos = store.Repos()
		txRunner = memory.NewTxRunner(store)
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(postgres.DSN(cfg.DB)); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos = postgres.NewRepos(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	var tokens ports.TokenStore
	if cfg.Redis.URL != "" {
		rdb, err := tokenstore.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		tokens = tokenstore.NewRedis(rdb)
	} else {
		tokens = tokenstore.NewMemory()
	}

	mailer := mail.New(cfg.SMTP, log)
	docs, err := storage.NewLocal(cfg.Storage.UploadDir, cfg.Storage.PublicURL)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de archivos")
	}

	authUC := auth.NewAuthUseCase(repos.Users, tokens, mailer, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
		RefreshTTL: time.Duration(cfg.JWT.RefreshTTLDays) * 24 * time.Hour,
	}, log)
	roleUC := auth.NewRoleUseCase(repos.Roles, repos.Users)
	if err := roleUC.EnsureRoles(ctx, entity.RoleAdmin, entity.RoleUser, entity.RoleClient); err != nil {
		log.Fatal().Err(err).Msg("roles base")
	}
	if cfg.Admin.Email != "" {
		if _, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.FullName); err != nil {
			log.Error().Err(err).Msg("cuenta administradora")
		}
	}

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AuthUC:       authUC,
		RoleUC:       roleUC,
		ProductoUC:   usecase.NewProductoUseCase(repos.Productos, repos.Componentes, repos.Piezas, repos.Comentarios, repos.Manuales, repos.Users, docs, log),
		PiezaUC:      usecase.NewPiezaUseCase(repos.Piezas),
		ProveedorUC:  usecase.NewProveedorUseCase(repos.Proveedores),
		ComponenteUC: usecase.NewComponenteUseCase(repos.Componentes, repos.Productos, repos.Piezas),
		ManualUC:     usecase.NewManualUseCase(repos.Manuales, repos.Productos, docs, log),
		ComentarioUC: usecase.NewComentarioUseCase(repos.Comentarios, repos.Ventas, repos.Productos, repos.Users),
		ClienteUC:    usecase.NewClienteUseCase(repos.Ventas, repos.Productos, repos.Manuales),
		CotizacionUC: usecase.NewCotizacionUseCase(repos.Cotizac, mailer, pdf.NewCotizacionPDF(), cfg.App.SalesEmail, log),
		MovimientoUC: inventory.NewMovimientoUseCase(txRunner, repos.Piezas, repos.Movimientos),
		CompraUC:     orders.NewCompraUseCase(txRunner, repos.Proveedores, repos.Piezas, repos.Compras, repos.Movimientos),
		VentaUC:      orders.NewVentaUseCase(txRunner, repos.Users, repos.Productos, repos.Componentes, repos.Ventas, log),
		DashboardUC: analytics.NewDashboardUseCase(analytics.Repos{
			Productos:    repos.Productos,
			Ventas:       repos.Ventas,
			Compras:      repos.Compras,
			Proveedores:  repos.Proveedores,
			Piezas:       repos.Piezas,
			Comentarios:  repos.Comentarios,
			Users:        repos.Users,
			Cotizaciones: repos.Cotizac,
		}),
		JWTSecret:     cfg.JWT.Secret,
		Log:           log,
		AppName:       cfg.App.Name,
		CORSOrigins:   cfg.HTTP.CORSOrigins,
		UploadDir:     docs.Dir(),
		UploadURL:     cfg.Storage.PublicURL,
		AuthRateLimit: 20,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Pecuadex API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("sin documentación Swagger")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
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
