// jobtrack-matcher-service
//
// Preference-driven job matching and résumé ATS scoring.
// Exposes a REST API used by the Gateway to implement:
//   - scored, filterable job feed        — match scoring per user preferences
//   - preferences CRUD                   — the matching criteria record
//   - status tracking + bounded history  — Applied/Rejected/Selected log
//   - daily 9AM digest                   — top-10 snapshot, one per day
//   - résumé storage + ATS report       — deterministic readiness score
//
// Digests are built by a cron scheduler each morning and on demand; both
// paths share the same once-per-day idempotence gate in Redis.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"jobtrack/matcher-service/internal/config"
	"jobtrack/matcher-service/internal/db"
	"jobtrack/matcher-service/internal/digest"
	"jobtrack/matcher-service/internal/resume"
	"jobtrack/matcher-service/internal/scheduler"
	"jobtrack/matcher-service/internal/tracker"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	if err := godotenv.Load(); err != nil {
		log.Println("[matcher-service] No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[matcher-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[matcher-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[matcher-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[matcher-service] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[matcher-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[matcher-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[matcher-service] Redis connected ✓")

	// ── Services ─────────────────────────────────────────────────────────────
	trackerSvc := tracker.NewService(pool, rdb)
	digestSvc := digest.NewService(rdb, trackerSvc)
	resumeSvc := resume.NewService(pool)

	// ── Digest scheduler ─────────────────────────────────────────────────────
	sched := scheduler.New(trackerSvc, digestSvc, cfg.DigestCron)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[matcher-service] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	tracker.NewHandler(trackerSvc).RegisterRoutes(mux)
	digest.NewHandler(digestSvc).RegisterRoutes(mux)
	resume.NewHandler(resumeSvc).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // exports can be slow to stream
	}

	go func() {
		log.Printf("[matcher-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[matcher-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[matcher-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[matcher-service] Shutdown error: %v", err)
	}
	log.Println("[matcher-service] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "matcher-service",
		"version": version,
	})
}
