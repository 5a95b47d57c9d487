package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vaughan-dsouza/blogspot/internal/config"
	"github.com/vaughan-dsouza/blogspot/internal/db"
	"github.com/vaughan-dsouza/blogspot/internal/server"
	"github.com/vaughan-dsouza/blogspot/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.Printf("loaded %s", cfg)

	dbConn, err := db.Connect(cfg.Database.Driver, cfg.Database.URL, db.PoolConfig{
		MaxOpen:     cfg.Database.MaxOpen,
		MaxIdle:     cfg.Database.MaxIdle,
		MaxLifetime: cfg.Database.MaxLifetime,
	})
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()
	log.Println("database connection successful")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.EnsureSchema(ctx, dbConn)
	cancel()
	if err != nil {
		log.Fatalf("db schema: %v", err)
	}
	log.Println("database schema ready")

	handler := server.NewRouter(dbConn, server.Options{
		Auth: services.AuthOptions{
			Secret:     cfg.Auth.JWTSecret,
			TokenTTL:   cfg.Auth.TokenTTL,
			BcryptCost: cfg.Auth.BcryptCost,
		},
		CORSOrigins: cfg.CORS,
		AccessLog:   true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s, API available at http://localhost:%s/api", srv.Addr, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutCancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
