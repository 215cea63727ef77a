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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	appanalytics "github.com/jhoicas/Cotizador-api/internal/application/analytics"
	"github.com/jhoicas/Cotizador-api/internal/application/auth"
	"github.com/jhoicas/Cotizador-api/internal/application/joborder"
	"github.com/jhoicas/Cotizador-api/internal/application/payment"
	"github.com/jhoicas/Cotizador-api/internal/application/pricing"
	"github.com/jhoicas/Cotizador-api/internal/application/quotation"
	"github.com/jhoicas/Cotizador-api/internal/application/salesorder"
	"github.com/jhoicas/Cotizador-api/internal/application/usecase"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/cache"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Cotizador-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Cotizador-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Cotizador-api/internal/interfaces/http"
	"github.com/jhoicas/Cotizador-api/pkg/config"
	"github.com/jhoicas/Cotizador-api/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		version, err := postgres.RunMigrations(pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Uint("version", version).Msg("esquema al día")
	}

	// Redis opcional: sin REDIS_ADDR la caché de listas es pass-through
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, se sigue sin caché")
			_ = redisClient.Close()
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}
	priceCache := cache.NewPriceListCache(redisClient, cfg.Redis.TTL)

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	priceListRepo := postgres.NewPriceListRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	salesOrderRepo := postgres.NewSalesOrderRepository(pool)
	jobOrderRepo := postgres.NewJobOrderRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registry := metrics.NewRegistry()
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	pricingUC := pricing.NewUseCase(
		priceListRepo, productRepo, customerRepo, priceCache, registry, cfg.Pricing.Currency, log,
	)
	quotationUC := quotation.NewUseCase(
		quotationRepo, customerRepo, companyRepo, txRunner, pdfGenerator, registry,
		quotation.Config{
			Prefix:   cfg.Numbering.QuotationPrefix,
			MaxItems: cfg.Pricing.MaxItems,
			Currency: cfg.Pricing.Currency,
		}, log,
	)
	salesOrderUC := salesorder.NewUseCase(
		salesOrderRepo, customerRepo, companyRepo, txRunner, pdfGenerator, registry,
		salesorder.Config{
			Prefix:   cfg.Numbering.SalesOrderPrefix,
			MaxItems: cfg.Pricing.MaxItems,
			Currency: cfg.Pricing.Currency,
		}, log,
	)
	jobOrderUC := joborder.NewUseCase(jobOrderRepo, txRunner, cfg.Numbering.JobOrderPrefix, log)
	paymentUC := payment.NewUseCase(salesOrderRepo, txRunner, log)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, cfg.Pricing.Currency)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // PDFs
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(registry.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cotizador API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "db": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", registry.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    usecase.NewCompanyUseCase(companyRepo),
		CustomerUC:   usecase.NewCustomerUseCase(customerRepo),
		ProductUC:    usecase.NewProductUseCase(productRepo),
		PricingUC:    pricingUC,
		QuotationUC:  quotationUC,
		SalesOrderUC: salesOrderUC,
		JobOrderUC:   jobOrderUC,
		PaymentUC:    paymentUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
		JWTIssuer:    cfg.JWT.Issuer,
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
