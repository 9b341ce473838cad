package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

// Source — один адаптер ленты: fetch → normalize → upsert за один вызов.
type Source interface {
	Name() string
	FetchAndStore(ctx context.Context) Outcome
}

// Мягкий потолок на один источник: сумма пер-запросных таймаутов
// с запасом (APOD — до 7 вызовов по 30s).
const sourceTimeout = 5 * time.Minute

// Runner выполняет все источники за один запуск, изолируя их сбои друг
// от друга. preflight проверяет живость хранилища до первого источника.
type Runner struct {
	sources    []Source
	concurrent bool
	preflight  func(ctx context.Context) error
}

func NewRunner(sources []Source, concurrent bool, preflight func(ctx context.Context) error) *Runner {
	return &Runner{
		sources:    sources,
		concurrent: concurrent,
		preflight:  preflight,
	}
}

// RunAll выполняет полный пайплайн каждого источника. Ошибка источника
// попадает в его Outcome и не прерывает остальных; прерывает запуск только
// недоступное хранилище (ErrConnection).
func (r *Runner) RunAll(ctx context.Context) Report {
	report := Report{StartedAt: time.Now().UTC()}
	started := time.Now()

	if r.preflight != nil {
		if err := r.preflight(ctx); err != nil {
			report.Fatal = fmt.Errorf("%w: %v", ErrConnection, err)
			report.Duration = time.Since(started)
			return report
		}
	}

	report.Outcomes = make([]Outcome, len(r.sources))

	if r.concurrent {
		// Источники пишут в разные таблицы, общий только пул соединений
		var eg errgroup.Group
		for i, src := range r.sources {
			i, src := i, src
			eg.Go(func() error {
				report.Outcomes[i] = r.runSource(ctx, src)
				return nil
			})
		}
		eg.Wait()
	} else {
		for i, src := range r.sources {
			report.Outcomes[i] = r.runSource(ctx, src)
		}
	}

	report.Duration = time.Since(started)
	return report
}

func (r *Runner) runSource(ctx context.Context, src Source) (out Outcome) {
	// Паника адаптера не должна уронить соседей
	defer func() {
		if rec := recover(); rec != nil {
			out = Outcome{Source: src.Name(), Err: fmt.Errorf("panic: %v", rec)}
			log.Printf("Ingest %s: recovered from panic: %v", src.Name(), rec)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, sourceTimeout)
	defer cancel()

	log.Printf("Ingest %s: starting", src.Name())
	out = src.FetchAndStore(ctx)
	if out.Source == "" {
		out.Source = src.Name()
	}
	if out.Failed() {
		log.Printf("Ingest %s: failed: %v", src.Name(), out.Err)
	} else {
		log.Printf("Ingest %s: done, written=%d skipped=%d", src.Name(), out.Written, out.Skipped)
	}
	return out
}
