package worker

import (
	"log"
	"sync"
	"time"
)

type Worker interface {
	Start()
	Stop()
}

// Scheduler держит фоновые воркеры server-бинаря и гасит их при shutdown.
type Scheduler struct {
	workers  []Worker
	wg       sync.WaitGroup
	stopOnce sync.Once
	mu       sync.Mutex
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) AddWorker(worker Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers = append(s.workers, worker)
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Println("Starting scheduler with", len(s.workers), "workers")

	for _, worker := range s.workers {
		s.wg.Add(1)
		go func(w Worker) {
			defer s.wg.Done()
			w.Start()
		}(worker)
	}
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		log.Println("Stopping scheduler...")

		s.mu.Lock()
		workers := s.workers
		s.mu.Unlock()

		for _, worker := range workers {
			worker.Stop()
		}

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Println("Scheduler stopped gracefully")
		case <-time.After(10 * time.Second):
			log.Println("Scheduler stop timeout")
		}
	})
}
