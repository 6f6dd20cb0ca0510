package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"scangate/internal/config"
	"scangate/internal/device"
	"scangate/internal/journal"
	"scangate/internal/metrics"
	"scangate/internal/notify"
	"scangate/internal/queue"
	"scangate/internal/recorder"
	"scangate/internal/roster"
	"scangate/internal/scan"
	"scangate/internal/school"
	"scangate/internal/store"
)

// The gateway owns the scan pipeline: the device listener feeds the
// queue, the worker loop below drains it one event at a time through the
// recorder, and every terminal outcome lands in the journal.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	if cfg.SchoolID == "" {
		log.Println("WARNING: SCHOOL_ID not set; every scan will be discarded until it is")
	}

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	journalRepo := journal.NewRepository(db.Client)
	if err := journalRepo.EnsureSchema(ctx); err != nil {
		log.Fatalf("journal schema failed: %v", err)
	}

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, cfg.QueueKey)
	}

	backend := school.New(cfg.SchoolBaseURL, cfg.SchoolID)
	resolver := roster.NewResolver(backend)
	if err := resolver.Refresh(ctx); err != nil {
		log.Printf("WARNING: initial roster fetch failed: %v", err)
		log.Println("scans will resolve as unmatched until a refresh succeeds")
	}
	go resolver.Run(ctx, cfg.RosterRefresh)

	rec := recorder.New(cfg.SchoolID, resolver, backend, notify.Log{})

	listener := device.NewListener(cfg.DeviceFeedURL, q, cfg.ReconnectMin, cfg.ReconnectMax)
	go func() {
		if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("listener stopped: %v", err)
		}
	}()

	msgs, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("gateway started, waiting for scans...")
	for msg := range msgs {
		if msg.Type != queue.TypeScan {
			continue
		}

		var evt scan.Event
		if err := json.Unmarshal(msg.Body, &evt); err != nil {
			log.Printf("queued event decode failed: %v", err)
			continue
		}

		out := rec.Process(ctx, evt)
		metrics.Outcomes.WithLabelValues(string(out.Stage), out.Subject).Inc()
		log.Printf("scan %s: employeeNo=%s stage=%s", out.EventID, out.EmployeeNo, out.Stage)

		if _, err := journalRepo.Record(ctx, out); err != nil {
			log.Printf("journal write failed for %s: %v", out.EventID, err)
		}
	}

	log.Println("gateway stopped")
}
