package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go-shop-backoffice/internal/config"
	"go-shop-backoffice/internal/handler"
	"go-shop-backoffice/internal/machine"
	"go-shop-backoffice/internal/middleware"
	"go-shop-backoffice/internal/model"
	"go-shop-backoffice/internal/repository"
	"go-shop-backoffice/internal/service"
	"go-shop-backoffice/internal/ws"
	"go-shop-backoffice/pkg/database"
	"go-shop-backoffice/pkg/jwt"
	"go-shop-backoffice/pkg/logger"
	"go-shop-backoffice/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// 1. Load config and logger
	cfg := config.Load()

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: cfg.LogDevelopment})
	if err != nil {
		log = logger.Default()
		log.Warnw("falling back to default logger", "error", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Setup Database
	db, err := database.ConnectDB(database.Options{DSN: cfg.DSN(), TablePrefix: cfg.TablePrefix(), Log: log})
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	if err := db.AutoMigrate(
		&model.Shop{}, &model.Product{}, &model.Stock{}, &model.Employee{},
		&model.Attendance{}, &model.Expense{}, &model.Vendor{}, &model.SaleRecord{},
	); err != nil {
		log.Fatalw("failed to migrate schema", "error", err)
	}

	// 3. Session revocation
	revoked := revocationStore(ctx, cfg, log)

	// 4. Setup WebSocket Hub
	hub := ws.NewHub(log.WithComponent("ws"))
	go hub.Run(ctx)

	// 5. Dependency Injection (Wiring Layers)
	shopRepo := repository.NewShopRepo(db)
	productRepo := repository.NewProductRepo(db)
	stockRepo := repository.NewStockRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)
	attendanceRepo := repository.NewAttendanceRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	vendorRepo := repository.NewVendorRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	machineCode := machine.Code(cfg.MachineCode)
	log.Infow("machine identity resolved", "shop", cfg.ShopName, "machine_code", machineCode)

	authService := service.NewAuthService(shopRepo, jwt.NewManager(cfg.JWTSecret, cfg.SessionTTL), revoked,
		service.AuthOptions{ShopName: cfg.ShopName, MachineCode: machineCode})
	productService := service.NewProductService(productRepo)
	stockService := service.NewStockService(stockRepo, hub)
	saleService := service.NewSaleService(saleRepo, productRepo, hub, cfg.RecentSalesLimit)
	reportService := service.NewReportService(saleRepo, productRepo)
	dashService := service.NewDashboardService(productRepo, stockRepo, employeeRepo, saleRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.SecureCookie)
	dashHandler := handler.NewDashboardHandler(dashService)
	productHandler := handler.NewProductHandler(productService)
	stockHandler := handler.NewStockHandler(stockService)
	staffHandler := handler.NewStaffHandler(service.NewEmployeeService(employeeRepo), service.NewAttendanceService(attendanceRepo))
	expenseHandler := handler.NewExpenseHandler(service.NewExpenseService(expenseRepo), service.NewVendorService(vendorRepo))
	saleHandler := handler.NewSaleHandler(saleService)
	reportHandler := handler.NewReportHandler(reportService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   "Shop Back Office " + cfg.ShopName,
		BodyLimit: 16 * 1024 * 1024,
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log.WithComponent("http")))
	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	// ============ PUBLIC ROUTES ============
	authHandler.Routes(app.Group("/api"))

	// ============ PROTECTED ROUTES ============
	protected := app.Group("", middleware.RequireShop(authService))
	api := protected.Group("/api")

	// WebSocket Route (the session cookie rides on the upgrade request)
	hub.Routes(protected)

	dashHandler.Routes(api)
	productHandler.Routes(api, protected)
	stockHandler.Routes(api, protected)
	staffHandler.Routes(api, protected)
	expenseHandler.Routes(api, protected)
	saleHandler.Routes(api, protected)
	reportHandler.Routes(api, protected)

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(cfg.Address()); err != nil {
			log.Errorw("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}
	if closer, ok := revoked.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info("Server exited")
}

// revocationStore prefers Redis so logouts survive restarts, and falls back
// to process memory when Redis is not configured or not reachable.
func revocationStore(ctx context.Context, cfg config.Config, log *logger.Logger) session.RevocationStore {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, keeping revoked sessions in memory")
		return session.NewMemoryRevocationStore()
	}

	store := session.NewRedisRevocationStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		log.Warnw("redis unreachable, keeping revoked sessions in memory", "addr", cfg.RedisAddr, "error", err)
		_ = store.Close()
		return session.NewMemoryRevocationStore()
	}
	return store
}
