package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/config"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/db"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/handlers"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/realtime"
)

func main() {
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		logrus.Fatalf("gagal konek database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("gagal migrasi: %v", err)
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("gagal konek redis: %v", err)
	}

	hub := realtime.NewHub()
	go hub.Run()

	app := handlers.NewApp(handlers.AppDeps{
		DB:              gdb,
		Hub:             hub,
		RDB:             rdb,
		JWTSecret:       cfg.JWTSecret,
		JWTExpiresMin:   cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	})

	logrus.WithField("port", cfg.AppPort).Info("server berjalan")
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logrus.Fatal(err)
	}
}
