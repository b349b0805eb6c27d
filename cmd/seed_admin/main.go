// seed_admin crea los roles base (Admin, User, Client) y la cuenta administradora inicial.
//
// Uso: ADMIN_EMAIL=admin@pecuadex.mx ADMIN_PASSWORD=... go run ./cmd/seed_admin
// Es idempotente: si los roles o la cuenta ya existen no los modifica.
package main

import (
	"context"
	"os"
	"time"

	"github.com/pecuadex/pecuadex-api/internal/application/auth"
	"github.com/pecuadex/pecuadex-api/internal/domain/entity"
	"github.com/pecuadex/pecuadex-api/internal/infrastructure/mail"
	"github.com/pecuadex/pecuadex-api/internal/infrastructure/postgres"
	"github.com/pecuadex/pecuadex-api/internal/infrastructure/tokenstore"
	"github.com/pecuadex/pecuadex-api/pkg/config"
	"github.com/pecuadex/pecuadex-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_admin"})

	if cfg.DB.Driver != "postgres" {
		log.Fatal().Str("db_driver", cfg.DB.Driver).Msg("seed_admin solo aplica a PostgreSQL")
	}
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Error().Msg("ADMIN_EMAIL y ADMIN_PASSWORD son obligatorios")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

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
	repos := postgres.NewRepos(pool)

	if err := auth.NewRoleUseCase(repos.Roles, repos.Users).
		EnsureRoles(ctx, entity.RoleAdmin, entity.RoleUser, entity.RoleClient); err != nil {
		log.Fatal().Err(err).Msg("roles base")
	}

	// No se emiten tokens ni se envía correo: basta el almacén en memoria y el mailer de log.
	authUC := auth.NewAuthUseCase(repos.Users, tokenstore.NewMemory(), mail.NewLogMailer(log), auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	}, log)
	created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.FullName)
	if err != nil {
		log.Fatal().Err(err).Msg("cuenta administradora")
	}
	if created {
		log.Info().Str("email", cfg.Admin.Email).Msg("cuenta administradora creada")
	} else {
		log.Info().Str("email", cfg.Admin.Email).Msg("la cuenta ya existía; sin cambios")
	}
}
