package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"topluluk.link/configs"
	"topluluk.link/configs/configsdatabase"
	"topluluk.link/configs/configslog"
	"topluluk.link/realtime"
	"topluluk.link/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configs.LoadEnv()
	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:       engine,
		AppName:     "topluluk.link",
		ViewsLayout: "layouts/main",
	})

	hub := realtime.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if bridge := realtime.NewRedisBridgeFromEnv(hub); bridge != nil {
		defer bridge.Close()
		go bridge.Run(ctx)
	}

	routes.SetupRoutes(app, hub)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3001"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
		}
	}()
	configslog.SLog.Infof("Sunucu dinlemede: :%s", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
	cancel()
	if err := app.Shutdown(); err != nil {
		configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
	}
}
