package main

import (
	"fmt"
	"log"

	"rxbill/internal/config"
	"rxbill/internal/handler"
	"rxbill/internal/repository/postgres"
	"rxbill/internal/router"
	"rxbill/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	pharmacyRepo := postgres.NewPharmacyRepo(db)
	userRepo := postgres.NewUserRepo(db)
	registrationRepo := postgres.NewRegistrationRepo(db)
	productRepo := postgres.NewProductRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	hsnRepo := postgres.NewHSNRepo(db)
	txManager := postgres.NewTxManager(db)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, pharmacyRepo, cfg.JWT)
	pharmacySvc := service.NewPharmacyService(pharmacyRepo)
	userSvc := service.NewUserService(userRepo)
	registrationSvc := service.NewRegistrationService(registrationRepo, cfg.Billing.DefaultInvoicePrefix)
	productSvc := service.NewProductService(productRepo, hsnRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, registrationRepo, productRepo)
	billingSvc := service.NewBillingService(invoiceRepo, registrationRepo, txManager)
	reportSvc := service.NewReportService(invoiceRepo, registrationRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc, billingSvc)
	registrationH := handler.NewRegistrationHandler(registrationSvc)
	productH := handler.NewProductHandler(productSvc, cfg.Billing.HSNSearchLimit)
	reportH := handler.NewReportHandler(reportSvc)
	pharmacyH := handler.NewPharmacyHandler(pharmacySvc)
	userH := handler.NewUserHandler(userSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins,
		authH, invoiceH, registrationH, productH, reportH, pharmacyH, userH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
