package ingest

import (
	"errors"
	"fmt"
)

// ErrConnection — хранилище недоступно; единственная ошибка, фатальная
// для всего запуска.
var ErrConnection = errors.New("database unreachable")

// FetchError — сетевой сбой / таймаут / не-2xx при запросе одного источника.
// Источник дает ноль записей, остальные источники не затрагиваются.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: fetch failed: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StoreError — bulk upsert одного источника не прошел; весь батч откатывается,
// остальные источники не затрагиваются.
type StoreError struct {
	Source string
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: store failed: %v", e.Source, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
