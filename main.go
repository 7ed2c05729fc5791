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

	"github.com/fourline-io/server/config"
	"github.com/fourline-io/server/db"
	"github.com/fourline-io/server/handlers"
	"github.com/fourline-io/server/jobs"
	"github.com/fourline-io/server/middlewares"
	"github.com/fourline-io/server/server"
	"github.com/fourline-io/server/websocket"
)

func main() {
	log.Println("Starting fourline backend server...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()

	// match history is optional; without a database games are simply
	// not recorded
	var recorder server.MatchRecorder
	if cfg.DatabaseURL != "" {
		err := db.InitDB(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.CloseDB()
		recorder = db.MatchStore{}
	} else {
		log.Println("No DB_URI configured, match history disabled")
	}

	if err := db.InitRedis(cfg.RedisURL, cfg.RedisPassword); err != nil {
		log.Printf("Failed to initialize Redis: %v", err)
	}
	defer db.CloseRedis()

	connectionManager := websocket.NewConnectionManager()
	registry := server.NewRegistry(recorder)

	jobs.StartRoomJanitor(registry, connectionManager, cfg.RoomSweepInterval, cfg.RoomIdleTimeout)

	mux := http.NewServeMux()

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.CreateUpgrader(cfg.AllowedOrigins)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("Error during connection upgrade:", err)
			return
		}

		token := r.URL.Query().Get("token")
		websocket.HandleConnection(conn, token, connectionManager, registry)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/api/auth/guest", handlers.HandleGuest)
	mux.HandleFunc("/api/rooms", handlers.MakeHandleRooms(registry))
	if recorder != nil {
		mux.HandleFunc("/api/history", handlers.HandleHistory)
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: middlewares.EnableCORS(mux, cfg.AllowedOrigins),
	}

	log.Printf("Server is listening on port %s\n", cfg.Port)

	go func() {
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Server is shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
