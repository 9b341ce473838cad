// Package fetch разбивает оконный запрос на по-дневные вызовы
// с ограничением числа одновременных запросов.
package fetch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// DayResult — результат вызова за один календарный день: значение или ошибка.
type DayResult[T any] struct {
	Date  time.Time
	Value T
	Err   error
}

// Window вызывает fn по одному разу на каждый день отрезка [start, end]
// включительно, держа не больше limit вызовов в полете одновременно.
// Возвращает только после завершения всех вызовов; ошибка одного дня
// не отменяет и не блокирует остальные. Порядок результатов — по датам.
func Window[T any](ctx context.Context, start, end time.Time, limit int, fn func(ctx context.Context, date time.Time) (T, error)) []DayResult[T] {
	if limit < 1 {
		limit = 1
	}

	var days []time.Time
	for d := truncateDay(start); !d.After(truncateDay(end)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	results := make([]DayResult[T], len(days))

	var eg errgroup.Group
	eg.SetLimit(limit)

	for i, day := range days {
		i, day := i, day
		eg.Go(func() error {
			value, err := fn(ctx, day)
			results[i] = DayResult[T]{Date: day, Value: value, Err: err}
			// Ошибка остается в результате дня и не роняет группу
			return nil
		})
	}
	eg.Wait()

	return results
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
