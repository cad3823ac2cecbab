package main

import (
	"context"
	"net/http"

	webAdapter "billdesk/internal/adapters/web"
	"billdesk/internal/ai"
	"billdesk/internal/config"
	"billdesk/internal/core"
	"billdesk/internal/db"
	"billdesk/internal/logger"
	"billdesk/migrations"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	log := logger.WithComponent("server")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration")
	}
	if err := logger.Setup(cfg.LoggerConfig()); err != nil {
		log.Fatal().Err(err).Msg("logging")
	}
	log = logger.WithComponent("server")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	defer pool.Close()

	if err := migrations.Apply(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migrations")
	}

	customers := core.NewCustomerService(pool)
	vendors := core.NewVendorService(pool)
	products := core.NewProductService(pool)
	purchases := core.NewPurchaseService(pool, logger.WithComponent("purchases"))
	invoices := core.NewInvoiceService(pool, logger.WithComponent("invoices"))
	reports := core.NewReportService(invoices, products, logger.WithComponent("reports"))
	profile := core.NewProfileService(pool)

	var assistant *ai.Client
	if cfg.OpenAIAPIKey != "" {
		assistant = ai.NewClient(cfg.OpenAIAPIKey, logger.WithComponent("ai"))
	} else {
		log.Warn().Msg("OPENAI_API_KEY is not set; assistant endpoints disabled")
	}

	handler := webAdapter.NewHandler(webAdapter.Services{
		Customers: customers,
		Vendors:   vendors,
		Products:  products,
		Purchases: purchases,
		Invoices:  invoices,
		Reports:   reports,
		Profile:   profile,
		Assistant: assistant,
	}, cfg.AllowedOrigins, cfg.AuthJWTSecret, logger.WithComponent("http"))

	log.Info().Str("port", cfg.ServerPort).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
