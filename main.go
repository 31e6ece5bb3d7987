package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "freightapi/internal/config"
	intdb "freightapi/internal/db"
	router "freightapi/internal/http"
	"freightapi/internal/repositories"
	"freightapi/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	conn := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	if err := intdb.EnsureSchema(conn); err != nil {
		log.Fatalf("schema setup failed: %v", err)
	}

	// Router (Gin engine)
	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stopSweeper := make(chan struct{})
	if env.BookingTTL > 0 {
		go runExpirySweeper(env.BookingTTL, stopSweeper)
	}

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	close(stopSweeper)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}

// runExpirySweeper periodically cancels Pending bookings that were never
// paid within the TTL and returns their capacity to the ledger.
func runExpirySweeper(ttl time.Duration, stop <-chan struct{}) {
	interval := ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	svc := services.BookingService{
		Bookings: repositories.BookingRepo{},
		Ledger:   services.CapacityLedger{Services: repositories.ServiceRepo{}, RequestID: "sweeper"},
		Notifier: services.NotificationService{
			Notifications: repositories.NotificationRepo{},
			RequestID:     "sweeper",
		},
		RequestID: "sweeper",
	}

	for {
		select {
		case <-ticker.C:
			n, err := svc.ExpireStale(ttl)
			if err != nil {
				log.Printf("expiry sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("expiry sweep cancelled %d stale bookings", n)
			}
		case <-stop:
			return
		}
	}
}
