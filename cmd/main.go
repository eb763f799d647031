package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	calendarpb "github.com/Leganyst/booking-calendar/internal/api/calendar/v1"
	"github.com/Leganyst/booking-calendar/internal/config"
	"github.com/Leganyst/booking-calendar/internal/db"
	"github.com/Leganyst/booking-calendar/internal/export"
	"github.com/Leganyst/booking-calendar/internal/logger"
	"github.com/Leganyst/booking-calendar/internal/model"
	"github.com/Leganyst/booking-calendar/internal/repository"
	"github.com/Leganyst/booking-calendar/internal/service"
	"github.com/Leganyst/booking-calendar/internal/telemetry"
)

const serviceName = "calendar-core"

func main() {
	// 1. .env (если есть) и конфиги из env.
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}
	otelCfg, err := config.LoadTelemetryConfig()
	if err != nil {
		log.Fatalf("load telemetry config: %v", err)
	}

	lg, err := logger.New(appCfg.IsProduction(), appCfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	shutdownTracing, err := telemetry.Setup(context.Background(), otelCfg, serviceName)
	if err != nil {
		lg.Fatal("init tracing", zap.Error(err))
	}

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		lg.Fatal("init db", zap.String("driver", dbCfg.Driver), zap.Error(err))
	}

	// 3. Схема.
	if err := model.Migrate(gormDB); err != nil {
		lg.Fatal("migrate", zap.Error(err))
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		lg.Fatal("sql DB", zap.Error(err))
	}
	defer sqlDB.Close()

	// 4. Репозитории и сервис календаря.
	itemRepo := repository.NewGormBookingItemRepository(gormDB)
	instructorRepo := repository.NewGormInstructorRepository(gormDB)

	opts := []service.Option{service.WithUIDDomain(appCfg.ICSDomain)}
	if appCfg.ExportDir != "" {
		opts = append(opts, service.WithArchive(export.DirSink{Dir: appCfg.ExportDir}))
	}
	calendarSvc := service.NewCalendarService(itemRepo, instructorRepo, lg, opts...)

	// 5. gRPC-сервер.
	grpcServer := grpc.NewServer(
		telemetry.ServerOption(),
		grpc.UnaryInterceptor(service.UnaryLoggingInterceptor(lg)),
	)
	calendarpb.RegisterCalendarServiceServer(grpcServer, calendarSvc)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus(calendarpb.ServiceName, healthpb.HealthCheckResponse_SERVING)

	if !appCfg.IsProduction() {
		reflection.Register(grpcServer)
	}

	lis, err := net.Listen("tcp", appCfg.GRPCAddr)
	if err != nil {
		lg.Fatal("listen", zap.String("addr", appCfg.GRPCAddr), zap.Error(err))
	}

	lg.Info("calendar gRPC server listening",
		zap.String("addr", appCfg.GRPCAddr),
		zap.String("env", appCfg.Env),
		zap.String("db_driver", dbCfg.Driver),
		zap.Bool("tracing", otelCfg.Enabled),
	)

	// 6. Запускаем сервер в горутине.
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			lg.Fatal("grpc serve", zap.Error(err))
		}
	}()

	// 7. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	lg.Info("shutting down gRPC server")
	healthSrv.Shutdown()
	grpcServer.GracefulStop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		lg.Warn("tracing shutdown", zap.Error(err))
	}
}
