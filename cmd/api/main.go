package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-restaurant-service/config"
	"github.com/fekuna/omnipos-restaurant-service/internal/auth"
	"github.com/fekuna/omnipos-restaurant-service/internal/server"
	"github.com/fekuna/omnipos-restaurant-service/pkg/broker"
	"github.com/fekuna/omnipos-restaurant-service/pkg/cache"
	"github.com/fekuna/omnipos-restaurant-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-restaurant-service/pkg/i18n"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/fekuna/omnipos-restaurant-service/pkg/middleware"
	"github.com/fekuna/omnipos-restaurant-service/pkg/search"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	catH "github.com/fekuna/omnipos-restaurant-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-restaurant-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-restaurant-service/internal/category/usecase"

	invH "github.com/fekuna/omnipos-restaurant-service/internal/inventory/handler"
	invRepoPkg "github.com/fekuna/omnipos-restaurant-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-restaurant-service/internal/inventory/usecase"

	menuH "github.com/fekuna/omnipos-restaurant-service/internal/menu/handler"
	menuRepoPkg "github.com/fekuna/omnipos-restaurant-service/internal/menu/repository"
	menuUCPkg "github.com/fekuna/omnipos-restaurant-service/internal/menu/usecase"

	orderH "github.com/fekuna/omnipos-restaurant-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/omnipos-restaurant-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-restaurant-service/internal/order/usecase"

	payH "github.com/fekuna/omnipos-restaurant-service/internal/payment/handler"
	payRepoPkg "github.com/fekuna/omnipos-restaurant-service/internal/payment/repository"
	payUCPkg "github.com/fekuna/omnipos-restaurant-service/internal/payment/usecase"

	reportH "github.com/fekuna/omnipos-restaurant-service/internal/report/handler"
	reportListenerPkg "github.com/fekuna/omnipos-restaurant-service/internal/report/listener"
	reportRepoPkg "github.com/fekuna/omnipos-restaurant-service/internal/report/repository"
	reportUCPkg "github.com/fekuna/omnipos-restaurant-service/internal/report/usecase"

	tableH "github.com/fekuna/omnipos-restaurant-service/internal/table/handler"
	tableRepoPkg "github.com/fekuna/omnipos-restaurant-service/internal/table/repository"
	tableUCPkg "github.com/fekuna/omnipos-restaurant-service/internal/table/usecase"

	userH "github.com/fekuna/omnipos-restaurant-service/internal/user/handler"
	userRepoPkg "github.com/fekuna/omnipos-restaurant-service/internal/user/repository"
	userUCPkg "github.com/fekuna/omnipos-restaurant-service/internal/user/usecase"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadEnv()
	i18n.Init()
	decimal.MarshalJSONWithoutQuotes = true

	// 2. Initialize logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(context.Background(), db); err != nil {
			appLogger.Fatal("Could not apply schema", zap.Error(err))
		}
		appLogger.Info("Database schema is up to date")
	}
	tx := postgres.NewTransactor(db)

	// 4. Initialize repositories
	userRepo := userRepoPkg.NewPGRepository(db)
	tableRepo := tableRepoPkg.NewPGRepository(db)
	catRepo := catRepoPkg.NewPGRepository(db)
	menuRepo := menuRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	payRepo := payRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	reportRepo := reportRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 6. Initialize Kafka
	producer := broker.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	reportConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.ReportsTopic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer reportConsumer.Close()
	appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("reports_topic", cfg.Kafka.ReportsTopic))

	// 7. Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch, menu search falls back to the database", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 8. Initialize use cases
	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.TTL)

	userUC := userUCPkg.NewUserUseCase(userRepo, tokens, appLogger)
	tableUC := tableUCPkg.NewTableUseCase(tableRepo, tx, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, redisClient, appLogger)
	menuUC := menuUCPkg.NewMenuUseCase(menuRepo, catRepo, redisClient, esClient, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, userRepo, tableRepo, menuRepo, tx, redisClient, producer, cfg.Kafka.OrdersTopic, appLogger)
	payUC := payUCPkg.NewPaymentUseCase(payRepo, orderRepo, userRepo, tx, producer, cfg.Kafka.PaymentsTopic, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, menuRepo, appLogger)
	reportUC := reportUCPkg.NewReportUseCase(reportRepo, userRepo, tx, appLogger)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if err := userUC.EnsureAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
			appLogger.Fatal("Could not seed admin account", zap.Error(err))
		}
	}

	// 9. Start listeners
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reportListener := reportListenerPkg.NewReportListener(reportConsumer, reportUC, appLogger)
	go reportListener.Start(ctx)

	// 10. Initialize handlers
	router := server.NewRouter(cfg.Server.CORSOrigins, auth.NewGuard(tokens), &server.Handlers{
		User:      userH.NewUserHandler(userUC, appLogger),
		Table:     tableH.NewTableHandler(tableUC, appLogger),
		Category:  catH.NewCategoryHandler(catUC, appLogger),
		Menu:      menuH.NewMenuHandler(menuUC, appLogger),
		Order:     orderH.NewOrderHandler(orderUC, appLogger),
		Payment:   payH.NewPaymentHandler(payUC, appLogger),
		Inventory: invH.NewInventoryHandler(invUC, appLogger),
		Report:    reportH.NewReportHandler(reportUC, appLogger),
	}, appLogger)

	// 11. Start HTTP server
	httpServer := &http.Server{
		Addr:              listenAddr(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// 12. Start gRPC health server
	grpcPort := listenAddr(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcPort)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", grpcPort), zap.Error(err))
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.UnaryLogger(appLogger)),
	)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	go func() {
		appLogger.Info("Starting gRPC server", zap.String("port", grpcPort))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve grpc", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func listenAddr(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
