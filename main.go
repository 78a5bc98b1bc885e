package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/server"
)

func main() {
	cfg := configs.LoadEnv()

	// DB connect + pool
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("[ERROR] database: %+v", err)
	}
	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("[ERROR] %+v", err)
		}
	}

	rdb := database.ConnectRedis(cfg.RedisAddr, cfg.RedisPass)

	app := server.New(cfg, db, rdb)

	// Start server non-blocking
	go func() {
		log.Printf("[INFO] Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("[ERROR] shutdown: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	database.Close(db)
}
