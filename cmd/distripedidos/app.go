package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/agamariel/distripedidos/internal/auth"
	"github.com/agamariel/distripedidos/internal/config"
	"github.com/agamariel/distripedidos/internal/handlers"
	"github.com/agamariel/distripedidos/internal/migrations"
	"github.com/agamariel/distripedidos/internal/models"
	"github.com/agamariel/distripedidos/internal/services"
	"github.com/agamariel/distripedidos/internal/storage"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// App wires the application and its dependencies together.
type App struct {
	cfg    *config.Config
	dbPool *pgxpool.Pool
	echo   *echo.Echo

	userService *services.UserServiceImpl

	userHandler     *handlers.UserHandler
	orderHandler    *handlers.OrderHandler
	productHandler  *handlers.ProductHandler
	clientHandler   *handlers.ClientHandler
	providerHandler *handlers.ProviderHandler
	courierHandler  *handlers.CourierHandler
	catalogHandler  *handlers.CatalogHandler
	statsHandler    *handlers.StatsHandler
}

// NewApp creates and initializes the application.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{
		cfg: cfg,
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app.initDependencies()

	if err := app.seedAdmin(ctx); err != nil {
		return nil, err
	}

	app.initServer()

	return app, nil
}

// initDatabase runs migrations and opens the connection pool.
func (app *App) initDatabase(ctx context.Context) error {
	if app.cfg.DatabaseURI == "" {
		return fmt.Errorf("DATABASE_URI is required")
	}

	log.Println("Running database migrations...")
	sqlDB, err := sql.Open("pgx", app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to open database connection: %w", err)
	}
	defer sqlDB.Close()

	if err := migrations.Run(sqlDB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Migrations completed successfully")

	poolCfg, err := pgxpool.ParseConfig(app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to parse database config: %w", err)
	}

	// Register the shopspring decimal codec so NUMERIC columns scan into
	// decimal.Decimal without float conversion.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	dbPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		return fmt.Errorf("unable to ping database: %w", err)
	}

	app.dbPool = dbPool
	log.Println("Successfully connected to database")

	return nil
}

// initDependencies wires the storage, service and handler layers.
func (app *App) initDependencies() {
	// Storage layer
	userStorage := storage.NewPostgresUserStorage(app.dbPool)
	orderStorage := storage.NewPostgresOrderStorage(app.dbPool)
	productStorage := storage.NewPostgresProductStorage(app.dbPool)
	clientStorage := storage.NewPostgresClientStorage(app.dbPool)
	providerStorage := storage.NewPostgresProviderStorage(app.dbPool)
	courierStorage := storage.NewPostgresCourierStorage(app.dbPool)
	catalogStorage := storage.NewPostgresCatalogStorage(app.dbPool)
	statsStorage := storage.NewPostgresStatsStorage(app.dbPool)

	// Service layer
	app.userService = services.NewUserService(userStorage, app.cfg.JWTSecret, app.cfg.TokenExpiration)
	orderService := services.NewOrderService(app.dbPool, orderStorage, productStorage, app.cfg.TaxRate)
	productService := services.NewProductService(productStorage)

	// Handler layer
	app.userHandler = handlers.NewUserHandler(app.userService)
	app.orderHandler = handlers.NewOrderHandler(orderService)
	app.productHandler = handlers.NewProductHandler(productService)
	app.clientHandler = handlers.NewClientHandler(clientStorage)
	app.providerHandler = handlers.NewProviderHandler(providerStorage)
	app.courierHandler = handlers.NewCourierHandler(courierStorage)
	app.catalogHandler = handlers.NewCatalogHandler(catalogStorage)
	app.statsHandler = handlers.NewStatsHandler(statsStorage)
}

// seedAdmin creates the initial admin account on an empty users table.
func (app *App) seedAdmin(ctx context.Context) error {
	if app.cfg.AdminPassword == "" {
		log.Println("WARNING: ADMIN_PASSWORD is not set, skipping admin account seeding")
		return nil
	}

	if err := app.userService.EnsureAdmin(ctx, app.cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	return nil
}

// initServer configures the HTTP server and its routes.
func (app *App) initServer() {
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	// Public routes
	e.POST("/api/auth/login", app.userHandler.Login)
	e.GET("/api/products", app.productHandler.List)
	e.GET("/api/products/:id", app.productHandler.Get)
	e.GET("/api/clients", app.clientHandler.List)
	e.GET("/api/clients/:id", app.clientHandler.Get)
	e.GET("/api/providers", app.providerHandler.List)
	e.GET("/api/providers/:id", app.providerHandler.Get)
	e.GET("/api/catalogs/localidades", app.catalogHandler.Localities)
	e.GET("/api/catalogs/zonas", app.catalogHandler.Zones)
	e.GET("/api/catalogs/barrios", app.catalogHandler.Neighborhoods)
	e.GET("/api/catalogs/condiciones-pago", app.catalogHandler.PaymentTerms)
	e.GET("/api/rubros", app.catalogHandler.Categories)
	e.GET("/api/marcas", app.catalogHandler.Brands)

	// Authenticated routes (any role)
	protected := e.Group("/api")
	protected.Use(auth.JWTMiddleware(app.cfg.JWTSecret))
	protected.GET("/orders", app.orderHandler.List)
	protected.GET("/orders/:id", app.orderHandler.Get)
	protected.GET("/repartidores", app.courierHandler.List)
	protected.GET("/repartidores/:id", app.courierHandler.Get)
	protected.GET("/statistics/top-products", app.statsHandler.TopProducts)
	protected.GET("/statistics/top-providers", app.statsHandler.TopProviders)
	protected.GET("/statistics/top-clients", app.statsHandler.TopClients)
	protected.GET("/statistics/client-products/:clientId", app.statsHandler.ClientProducts)

	// Mutations require the admin role
	admin := e.Group("/api")
	admin.Use(auth.JWTMiddleware(app.cfg.JWTSecret))
	admin.Use(auth.RequireRole(models.RoleAdmin))
	admin.POST("/orders", app.orderHandler.Create)
	admin.PUT("/orders/:id", app.orderHandler.Update)
	admin.POST("/products", app.productHandler.Create)
	admin.PUT("/products/:id", app.productHandler.Update)
	admin.DELETE("/products/:id", app.productHandler.Delete)
	admin.POST("/clients", app.clientHandler.Create)
	admin.PUT("/clients/:id", app.clientHandler.Update)
	admin.DELETE("/clients/:id", app.clientHandler.Delete)
	admin.POST("/providers", app.providerHandler.Create)
	admin.PUT("/providers/:id", app.providerHandler.Update)
	admin.DELETE("/providers/:id", app.providerHandler.Delete)
	admin.POST("/repartidores", app.courierHandler.Create)
	admin.PUT("/repartidores/:id", app.courierHandler.Update)
	admin.DELETE("/repartidores/:id", app.courierHandler.Delete)
	admin.POST("/rubros", app.catalogHandler.CreateCategory)
	admin.PUT("/rubros/:id", app.catalogHandler.UpdateCategory)
	admin.POST("/marcas", app.catalogHandler.CreateBrand)
	admin.PUT("/marcas/:id", app.catalogHandler.UpdateBrand)
	admin.POST("/auth/register", app.userHandler.Create)
	admin.GET("/users", app.userHandler.List)
	admin.POST("/users", app.userHandler.Create)
	admin.PUT("/users/:id", app.userHandler.Update)
	admin.DELETE("/users/:id", app.userHandler.Delete)

	app.echo = e
}

// Start runs the HTTP server.
func (app *App) Start() error {
	log.Printf("Starting server on %s", app.cfg.RunAddress)
	if err := app.echo.Start(app.cfg.RunAddress); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

// Shutdown stops the application gracefully.
func (app *App) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")

	if err := app.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if app.dbPool != nil {
		app.dbPool.Close()
	}

	log.Println("Server gracefully stopped")
	return nil
}
