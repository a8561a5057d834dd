package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomchat/backend/internal/api/handler"
	"roomchat/backend/internal/chathub"
	"roomchat/backend/internal/config"
	"roomchat/backend/internal/models"
	"roomchat/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDatabase(cfg config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	if err := db.AutoMigrate(&models.Room{}, &models.Message{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database connection established, migrations complete.")
	return db
}

func main() {
	log.Println("Starting RoomChat Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using environment variables")
	}
	cfg := config.Load()

	db := setupDatabase(cfg)
	s := storage.NewService(db)

	for _, name := range config.SeedRooms {
		if _, err := s.CreateRoom(name); err != nil {
			log.Fatalf("Failed to seed room %q: %v", name, err)
		}
	}

	hub := chathub.NewHub(s)
	go hub.Run()

	r := gin.Default()
	h := handler.NewHandler(hub, s)

	r.GET("/ws", h.ServeWebSocket)
	r.GET("/rooms", h.ListRooms)
	r.GET("/rooms/:name/messages", h.RoomHistory)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Shutdown complete.")
}
