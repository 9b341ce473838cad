package worker

import (
	"context"
	"log"
	"time"

	"solarscope/internal/ingest"
)

// IngestWorker периодически прогоняет полный цикл инжеста из server-бинаря.
// В cron-режиме (cmd/ingest) воркер не нужен — там расписанием владеет cron.
type IngestWorker struct {
	runner   *ingest.Runner
	interval time.Duration
	stopChan chan struct{}
}

func NewIngestWorker(runner *ingest.Runner, interval time.Duration) *IngestWorker {
	return &IngestWorker{
		runner:   runner,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (w *IngestWorker) Start() {
	log.Printf("Ingest worker started with interval %v", w.interval)

	// Первый прогон сразу, дальше по тикеру
	w.runOnce()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.runOnce()
		case <-w.stopChan:
			log.Println("Ingest worker stopped")
			return
		}
	}
}

func (w *IngestWorker) Stop() {
	select {
	case <-w.stopChan:
	default:
		close(w.stopChan)
	}
}

func (w *IngestWorker) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	report := w.runner.RunAll(ctx)
	log.Printf("Ingest worker run:\n%s", report.String())
}
