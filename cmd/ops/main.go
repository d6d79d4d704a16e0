package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-circle-api/internal/core/config"
	"go-circle-api/internal/core/database"
	"go-circle-api/internal/core/logger"
	"go-circle-api/internal/core/server"
	"go-circle-api/internal/transport/http/router"
)

// 运维面入口：/metrics + 数据查档，和 api 共用一套配置
func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}

	r := router.NewOpsEngine(log, db)

	addr := server.Addr(cfg.App.Ops.Host, cfg.App.Ops.Port)
	srv := server.BuildServer(addr, r, 10*time.Second, 10*time.Second, 60*time.Second)

	log.Info("ops server starting", zap.String("addr", addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ops server start FAILED", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("ops server stopped gracefully")
}
