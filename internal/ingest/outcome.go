package ingest

import (
	"fmt"
	"strings"
	"time"
)

// Outcome — итог одного источника за один запуск.
type Outcome struct {
	Source  string `json:"source"`
	Written int    `json:"written"`
	Skipped int    `json:"skipped"`
	Err     error  `json:"-"`
}

func (o Outcome) Failed() bool { return o.Err != nil }

// Report — сводка по всем источникам одного запуска.
// Fatal выставляется только когда запуск прерван до выполнения источников
// (недоступная база).
type Report struct {
	StartedAt time.Time
	Duration  time.Duration
	Outcomes  []Outcome
	Fatal     error
}

// Failed возвращает число источников, завершившихся ошибкой.
func (r Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Failed() {
			n++
		}
	}
	return n
}

// String рендерит текстовый отчет для лога cron
func (r Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== SolarScope ingest run %s ===\n", r.StartedAt.Format("2006-01-02 15:04:05"))

	if r.Fatal != nil {
		fmt.Fprintf(&b, "FATAL: %v\n", r.Fatal)
		return b.String()
	}

	for i, o := range r.Outcomes {
		status := "ok"
		if o.Failed() {
			status = fmt.Sprintf("FAILED: %v", o.Err)
		}
		fmt.Fprintf(&b, "[%d/%d] %-15s written=%-5d skipped=%-5d %s\n",
			i+1, len(r.Outcomes), o.Source, o.Written, o.Skipped, status)
	}

	fmt.Fprintf(&b, "=== done in %v, %d source(s) failed ===\n", r.Duration.Round(time.Millisecond), r.Failed())
	return b.String()
}
