package main

import (
	"os"

	_ "github.com/asadtechlead/precise-price-print/api/swagger" // swagger docs
	"github.com/asadtechlead/precise-price-print/internal/database"
	"github.com/asadtechlead/precise-price-print/internal/handler"
	"github.com/asadtechlead/precise-price-print/internal/localstore"
	"github.com/asadtechlead/precise-price-print/internal/mailer"
	"github.com/asadtechlead/precise-price-print/internal/middleware"
	"github.com/asadtechlead/precise-price-print/internal/repository"
	"github.com/asadtechlead/precise-price-print/internal/service"
	"github.com/asadtechlead/precise-price-print/internal/websocket"
	"github.com/asadtechlead/precise-price-print/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Invoicing API
// @version         1.0
// @description     Invoicing backend for small businesses: clients, catalog, invoices, reporting.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := logger.Setup(); err != nil {
		panic(err)
	}
	log := logger.WithComponent("api")

	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info().Msg("no configs/.env file found, using process environment")
	}

	// DATABASE_URL selects Postgres; leave it unset to run on the embedded
	// sqlite file for single-machine deployments.
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" && os.Getenv("DB_HOST") != "" {
		dsn = postgresDSNFromEnv()
	}
	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "invoicing.db"
	}

	db, err := database.NewConnection(dsn, sqlitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if dsn != "" {
		log.Info().Msg("connected to postgres")
	} else {
		log.Info().Str("path", sqlitePath).Msg("running on embedded sqlite")
	}

	// WebSocket hub for change events
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	localStore := localstore.NewStore(db)

	mail := mailer.NewFromEnv()

	userService := service.NewUserService(userRepo)
	clientService := service.NewClientService(clientRepo, auditRepo, txManager)
	catalogService := service.NewCatalogService(productRepo, serviceRepo, auditRepo, txManager)
	invoiceService := service.NewInvoiceService(
		invoiceRepo, clientRepo, productRepo, serviceRepo,
		settingsRepo, auditRepo, txManager, mail, wsHub,
	)
	dashboardService := service.NewDashboardService(invoiceRepo, clientRepo, productRepo, serviceRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	auditService := service.NewAuditService(auditRepo)

	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	productHandler := handler.NewProductHandler(catalogService)
	serviceHandler := handler.NewServiceHandler(catalogService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	auditHandler := handler.NewAuditHandler(auditService)
	localHandler := handler.NewLocalHandler(localStore)

	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, origins)
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Device-ID"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// API routing
	userHandler.RegisterRoutes(router.Group(""))
	clientHandler.RegisterRoutes(router.Group(""))
	productHandler.RegisterRoutes(router.Group(""))
	serviceHandler.RegisterRoutes(router.Group(""))
	invoiceHandler.RegisterRoutes(router.Group(""))
	dashboardHandler.RegisterRoutes(router.Group(""))
	settingsHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	localHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("server listening")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func postgresDSNFromEnv() string {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	sslMode := os.Getenv("DB_SSLMODE")

	if port == "" {
		port = "5432"
	}
	if user == "" {
		user = "postgres"
	}
	if password == "" {
		password = "postgres"
	}
	if name == "" {
		name = "postgres"
	}
	if sslMode == "" {
		sslMode = "disable"
	}

	return "postgres://" + user + ":" + password + "@" + host + ":" + port + "/" + name + "?sslmode=" + sslMode
}
