// jobboard-listing-service
//
// Listing gateway for the job-board backend. Fetches the full job, company
// and skill collections, keeps them in memory, and serves filtered +
// paginated listing views:
//   - job listing with employment-type / skill / salary-range filters
//   - company listing (paginated, unfiltered)
//   - saved filter presets (PostgreSQL)
//
// Collections are re-fetched on a cron schedule and snapshotted to Redis so
// a restart can come up with stale data when the backend is down.
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

	"jobboard/listing-service/internal/backend"
	"jobboard/listing-service/internal/cache"
	"jobboard/listing-service/internal/config"
	"jobboard/listing-service/internal/db"
	"jobboard/listing-service/internal/filter"
	"jobboard/listing-service/internal/listing"
	"jobboard/listing-service/internal/model"
	"jobboard/listing-service/internal/preset"
	"jobboard/listing-service/internal/scheduler"
	"jobboard/listing-service/internal/server"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	if err := godotenv.Load(); err != nil {
		log.Println("[listing-service] No .env file — using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[listing-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[listing-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[listing-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[listing-service] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[listing-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[listing-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[listing-service] Redis connected ✓")

	// ── Controllers ──────────────────────────────────────────────────────────
	client := backend.New(cfg.BackendBaseURL, cfg.BackendToken)
	snapshots := cache.New(rdb, time.Duration(cfg.SnapshotTTLHours)*time.Hour)

	jobs := listing.New("jobs", cfg.PageSize, snapshotting(snapshots, "jobs", client.FetchJobs), filter.Match)
	jobs.UseFallback(func(ctx context.Context) ([]model.Job, error) {
		return cache.Load[model.Job](ctx, snapshots, "jobs")
	})

	companies := listing.New[model.Company]("companies", cfg.PageSize, snapshotting(snapshots, "companies", client.FetchCompanies), nil)
	companies.UseFallback(func(ctx context.Context) ([]model.Company, error) {
		return cache.Load[model.Company](ctx, snapshots, "companies")
	})

	skills := listing.New[model.Skill]("skills", cfg.PageSize, snapshotting(snapshots, "skills", client.FetchSkills), nil)
	skills.UseFallback(func(ctx context.Context) ([]model.Skill, error) {
		return cache.Load[model.Skill](ctx, snapshots, "skills")
	})

	// ── Scheduler ────────────────────────────────────────────────────────────
	sched := scheduler.New(cfg.RefreshIntervalMinutes, jobs, companies, skills)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[listing-service] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	h := server.NewHandler(jobs, companies, skills, preset.NewStore(pool), sched.RunRefresh)
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[listing-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[listing-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[listing-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[listing-service] Shutdown error: %v", err)
	}
	log.Println("[listing-service] Stopped.")
}

// snapshotting wraps a fetch so every successful result is written to the
// Redis snapshot store. Snapshot write failures are logged, not fatal.
func snapshotting[T any](s *cache.Snapshots, name string, fetch listing.Source[T]) listing.Source[T] {
	return func(ctx context.Context) ([]T, error) {
		items, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if err := cache.Store(ctx, s, name, items); err != nil {
			log.Printf("[listing-service] %v", err)
		}
		return items, nil
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "listing-service",
		"version": version,
	})
}
