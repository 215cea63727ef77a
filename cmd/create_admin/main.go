// create_admin da de alta el primer admin de una empresa. El registro público
// solo crea usuarios ventas; desde ahí un admin asigna roles por la API.
//
// Uso: go run ./cmd/create_admin <company_id> <email> <password> [nombre]
// Lee la conexión a PostgreSQL de la misma configuración que la API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/Cotizador-api/internal/application/auth"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Cotizador-api/pkg/config"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

func main() {
	in, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "uso: create_admin <company_id> <email> <password> [nombre]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), postgres.NewCompanyRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	user, err := createAdmin(ctx, uc, in)
	if err != nil {
		pool.Close()
		log.Fatal().Err(err).Str("email", in.email).Msg("crear admin")
	}
	log.Info().
		Str("user_id", user.ID).
		Str("company_id", user.CompanyID).
		Str("email", user.Email).
		Msg("admin creado")
}
