package main

import (
	"log"

	"github.com/dsouzac/quotify-api/internal/application/service"
	"github.com/dsouzac/quotify-api/internal/config"
	"github.com/dsouzac/quotify-api/internal/infrastructure/database"
	"github.com/dsouzac/quotify-api/internal/infrastructure/repository"
	"github.com/dsouzac/quotify-api/internal/presentation/http/handler"
	"github.com/dsouzac/quotify-api/internal/presentation/http/routes"
	"github.com/dsouzac/quotify-api/pkg/email"
	"github.com/dsouzac/quotify-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.Host,
		SMTPPort:     cfg.Email.Port,
		SMTPUsername: cfg.Email.Username,
		SMTPPassword: cfg.Email.Password,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.From,
	})

	// Initialize services
	auditService := service.NewAuditService(auditRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	clientService := service.NewClientService(clientRepo)
	companyService := service.NewCompanyService(companyRepo)
	catalogService := service.NewCatalogService(serviceRepo)
	quoteService := service.NewQuoteService(quoteRepo, serviceRepo, clientRepo, companyRepo, auditService, emailService)
	saleService := service.NewSaleService(saleRepo, quoteRepo, auditService)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Client:  handler.NewClientHandler(clientService),
		Company: handler.NewCompanyHandler(companyService),
		Catalog: handler.NewCatalogHandler(catalogService),
		Quote:   handler.NewQuoteHandler(quoteService, saleService),
		Sale:    handler.NewSaleHandler(saleService),
		Audit:   handler.NewAuditHandler(auditService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
