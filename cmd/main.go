package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"warsztatplus/internal/caching"
	"warsztatplus/internal/handlers"
	"warsztatplus/internal/jobs/background"
	"warsztatplus/internal/middleware"
	"warsztatplus/internal/repositories"
	"warsztatplus/internal/services"
	"warsztatplus/pkg/database"
)

func main() {
	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.SeedParts(ctx, pool); err != nil {
		log.Fatalf("Failed to seed parts catalogue: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret; tokens will not survive a restart")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if db, err := strconv.Atoi(raw); err == nil {
			redisDB = db
		}
	}

	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"
	mediaBucket := os.Getenv("MEDIA_BUCKET")
	if mediaBucket == "" {
		mediaBucket = "warsztat-media"
	}

	storage, err := services.NewMinioStorage(minioEndpoint, minioAccessKey, minioSecretKey, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storage.EnsureBucketExists(ctx, mediaBucket); err != nil {
		log.Printf("WARN: failed to ensure media bucket %s: %v", mediaBucket, err)
	}

	// Repositories
	adminRepo := repositories.NewAdminRepo(pool)
	workshopRepo := repositories.NewWorkshopRepo(pool)
	workshopUserRepo := repositories.NewWorkshopUserRepo(pool)
	billingRepo := repositories.NewBillingRepo(pool)
	reportRepo := repositories.NewReportRepo(pool)
	settingsRepo := repositories.NewSettingsRepo(pool)
	auditRepo := repositories.NewAuditLogsRepo(pool)
	mediaRepo := repositories.NewMediaRepo(pool)
	partsRepo := repositories.NewPartsRepo(pool)
	invoiceRepo := repositories.NewInvoiceRepo(pool)
	newsRepo := repositories.NewNewsRepo(pool)

	// Services
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)
	auditSvc := services.NewAuditService(auditRepo)
	settingsSvc := services.NewSettingsService(settingsRepo, cacheSvc, auditSvc)
	authSvc := services.NewAuthService(adminRepo, workshopUserRepo, workshopRepo, cacheSvc, auditSvc, jwtSecret)
	workshopSvc := services.NewWorkshopService(workshopRepo, workshopUserRepo, settingsSvc, cacheSvc, auditSvc)
	billingSvc := services.NewBillingService(billingRepo, workshopRepo, auditSvc)
	reportSvc := services.NewReportService(reportRepo, workshopRepo, settingsSvc, cacheSvc, auditSvc)
	mediaSvc := services.NewMediaService(mediaRepo, reportRepo, storage, mediaBucket)
	partsSvc := services.NewPartsService(partsRepo, auditSvc)
	invoiceSvc := services.NewInvoiceService(invoiceRepo)
	gusSvc := services.NewGUSService(os.Getenv("GUS_BASE_URL"))
	newsSvc := services.NewNewsService(newsRepo, auditSvc)

	if err := settingsSvc.EnsureDefaults(ctx); err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@warsztatplus.pl"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin12345"
		log.Printf("WARNING: ADMIN_PASSWORD not set, using the development default")
	}
	if err := authSvc.EnsureDefaultAdmin(ctx, adminEmail, adminPassword); err != nil {
		log.Fatalf("Failed to seed default admin: %v", err)
	}

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	workshopHandlers := handlers.NewWorkshopHandlers(workshopSvc, billingSvc)
	reportHandlers := handlers.NewReportHandlers(reportSvc)
	settingsHandlers := handlers.NewSettingsHandlers(settingsSvc)
	logsHandlers := handlers.NewAuditLogsHandlers(auditSvc)
	mediaHandlers := handlers.NewMediaHandlers(mediaSvc)
	partsHandlers := handlers.NewPartsHandlers(partsSvc)
	invoiceHandlers := handlers.NewInvoiceHandlers(invoiceSvc)
	gusHandlers := handlers.NewGUSHandlers(gusSvc)
	newsHandlers := handlers.NewNewsHandlers(newsSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	e := echo.New()
	e.Validator = handlers.NewRequestValidator()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Public routes
	e.GET("/health", healthHandlers.Health)
	e.POST("/auth/login", authHandlers.Login)
	e.GET("/workshops/public", workshopHandlers.ListPublicWorkshops)
	e.GET("/reports/public/:vin", reportHandlers.PublicVINLookup)

	// Authenticated routes
	authed := e.Group("", middleware.JWTMiddleware(jwtSecret))
	admin := authed.Group("", middleware.RequireAdmin())
	workshop := authed.Group("", middleware.RequireWorkshop())

	authed.GET("/settings", settingsHandlers.GetSettings)
	authed.GET("/news", newsHandlers.ListNews)
	authed.PATCH("/reports/:id", reportHandlers.UpdateReport)
	authed.GET("/media/:id/url", mediaHandlers.DownloadURL)

	// Admin back office
	admin.GET("/workshops", workshopHandlers.ListWorkshops)
	admin.POST("/workshops", workshopHandlers.CreateWorkshop)
	admin.GET("/workshops/:id", workshopHandlers.GetWorkshop)
	admin.PATCH("/workshops/:id", workshopHandlers.UpdateWorkshop)
	admin.DELETE("/workshops/:id", workshopHandlers.DeleteWorkshop)
	admin.POST("/workshops/:id/termination", workshopHandlers.IssueTermination)
	admin.DELETE("/workshops/:id/termination", workshopHandlers.CancelTermination)
	admin.POST("/workshops/:id/license/extend", workshopHandlers.ExtendLicense)
	admin.POST("/workshops/:id/active", workshopHandlers.SetActive)
	admin.GET("/workshops/:id/billing", workshopHandlers.ListBilling)
	admin.POST("/workshops/:id/billing", workshopHandlers.CreateBilling)
	admin.PATCH("/workshops/:id/billing/:billingId", workshopHandlers.UpdateBilling)
	admin.GET("/reports", reportHandlers.ListReports)
	admin.PATCH("/reports/:id/status", reportHandlers.ModerateReport)
	admin.PATCH("/settings", settingsHandlers.UpdateSettings)
	admin.GET("/logs", logsHandlers.ListLogs)
	admin.GET("/media", mediaHandlers.List)
	admin.DELETE("/media/:id", mediaHandlers.Delete)
	admin.POST("/news", newsHandlers.CreateNews)
	admin.DELETE("/news/:id", newsHandlers.DeleteNews)

	// Workshop panel
	workshop.GET("/workshops/me", workshopHandlers.GetMyWorkshop)
	workshop.POST("/auth/password", authHandlers.ChangePassword)
	workshop.GET("/reports/mine", reportHandlers.ListMyReports)
	workshop.POST("/reports", reportHandlers.CreateReport)
	workshop.POST("/reports/mine", reportHandlers.CreateReport)
	workshop.POST("/media", mediaHandlers.Upload)
	workshop.GET("/parts", partsHandlers.SearchParts)
	workshop.GET("/orders", partsHandlers.ListOrders)
	workshop.POST("/orders", partsHandlers.CreateOrder)
	workshop.GET("/invoices", invoiceHandlers.ListInvoices)
	workshop.POST("/invoices", invoiceHandlers.CreateInvoice)
	workshop.GET("/invoices/next-number", invoiceHandlers.GetNextNumber)
	workshop.GET("/invoices/:id", invoiceHandlers.GetInvoice)
	workshop.GET("/invoices/:id/pdf", invoiceHandlers.DownloadInvoicePDF)
	workshop.GET("/gus/:nip", gusHandlers.LookupNIP)

	auditRetentionDays := 0
	if raw := os.Getenv("AUDIT_RETENTION_DAYS"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil {
			auditRetentionDays = days
		}
	}
	scheduler, err := background.NewJobScheduler(auditSvc, workshopSvc, auditRetentionDays)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop scheduler: %v", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
