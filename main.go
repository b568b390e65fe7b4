package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kreditku_backend/internals/configs"
	database "kreditku_backend/internals/databases"
	notifService "kreditku_backend/internals/features/notifications/service"
	scheduler "kreditku_backend/internals/features/users/auth/scheduler"
	helper "kreditku_backend/internals/helpers"
	middlewares "kreditku_backend/internals/middlewares"
	routes "kreditku_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	defer configs.SyncLogger()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		BodyLimit:               helper.MaxUploadBytes + (1 << 20),
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR proxy jika perlu
	})

	middlewares.SetupMiddlewares(app)
	app.Static("/uploads", configs.GetEnv("UPLOAD_DIR", "./uploads"))

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	store := notifService.NewGormStore(database.DB)

	// ⏱ cron cleanup setelah DB siap
	retentionDays := configs.GetEnvInt("NOTIFICATION_RETENTION_DAYS", 90)
	purge := scheduler.Job{Name: "notification_purge", Run: func(jctx context.Context) {
		n, err := store.PurgeReadBefore(jctx, time.Now().AddDate(0, 0, -retentionDays))
		if err != nil {
			configs.Log.Error("purge notifikasi gagal", zap.Error(err))
			return
		}
		configs.Log.Info("notifikasi lama dihapus", zap.Int64("deleted", n))
	}}
	if err := scheduler.StartCleanupCron(ctx, database.DB, purge); err != nil {
		configs.Log.Fatal("scheduler gagal", zap.Error(err))
	}
	notifier := notifService.NewAsyncNotifier(store, store,
		notifService.WithRetry(3, configs.GetEnvDuration("NOTIFY_RETRY_BACKOFF", 200*time.Millisecond)),
		notifService.WithConcurrency(int64(configs.GetEnvInt("NOTIFY_CONCURRENCY", 8))),
	)

	// ✅ Routes
	if err := routes.SetupRoutes(app, database.DB, notifier); err != nil {
		configs.Log.Fatal("setup routes gagal", zap.Error(err))
	}

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	// Start server non-blocking
	go func() {
		configs.Log.Info("✅ Listening", zap.String("port", port))
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			configs.Log.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown: http → notifier → scheduler → pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		configs.Log.Warn("shutdown http", zap.Error(err))
	}
	if err := notifier.Close(shutdownCtx); err != nil {
		configs.Log.Warn("notifikasi belum terkirim semua", zap.Error(err))
	}
	stop()
	database.Close(database.DB)
	configs.Log.Info("server berhenti")
}
