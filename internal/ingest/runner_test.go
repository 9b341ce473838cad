package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name    string
	outcome Outcome
	panics  bool
	calls   int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchAndStore(_ context.Context) Outcome {
	s.calls++
	if s.panics {
		panic("nil map write")
	}
	out := s.outcome
	out.Source = s.name
	return out
}

func TestRunAllIsolatesSourceFailure(t *testing.T) {
	apod := &stubSource{name: "apod", outcome: Outcome{Written: 8}}
	neo := &stubSource{name: "asteroids", outcome: Outcome{Err: &FetchError{Source: "asteroids", Err: errors.New("HTTP 503")}}}
	eonet := &stubSource{name: "natural_events", outcome: Outcome{Written: 12, Skipped: 2}}

	runner := NewRunner([]Source{apod, neo, eonet}, false, nil)
	report := runner.RunAll(context.Background())

	require.NoError(t, report.Fatal)
	require.Len(t, report.Outcomes, 3)

	// Падение середины прогона не мешает соседям
	assert.Equal(t, 1, apod.calls)
	assert.Equal(t, 1, eonet.calls)
	assert.Equal(t, 1, report.Failed())

	assert.False(t, report.Outcomes[0].Failed())
	assert.True(t, report.Outcomes[1].Failed())
	assert.False(t, report.Outcomes[2].Failed())
	assert.Equal(t, 12, report.Outcomes[2].Written)
}

func TestRunAllPreflightFailureIsFatal(t *testing.T) {
	src := &stubSource{name: "apod", outcome: Outcome{Written: 1}}
	preflight := func(ctx context.Context) error {
		return errors.New("dial tcp 127.0.0.1:5432: connection refused")
	}

	runner := NewRunner([]Source{src}, false, preflight)
	report := runner.RunAll(context.Background())

	require.Error(t, report.Fatal)
	assert.ErrorIs(t, report.Fatal, ErrConnection)
	assert.Empty(t, report.Outcomes)
	assert.Zero(t, src.calls, "sources must not run after fatal preflight")
}

func TestRunAllRecoversSourcePanic(t *testing.T) {
	bad := &stubSource{name: "solar_events", panics: true}
	good := &stubSource{name: "exoplanets", outcome: Outcome{Written: 5000}}

	runner := NewRunner([]Source{bad, good}, false, nil)
	report := runner.RunAll(context.Background())

	require.NoError(t, report.Fatal)
	require.Len(t, report.Outcomes, 2)
	assert.True(t, report.Outcomes[0].Failed())
	assert.Contains(t, report.Outcomes[0].Err.Error(), "panic")
	assert.Equal(t, 5000, report.Outcomes[1].Written)
}

func TestRunAllConcurrentKeepsOutcomeOrder(t *testing.T) {
	sources := []Source{
		&stubSource{name: "apod", outcome: Outcome{Written: 1}},
		&stubSource{name: "asteroids", outcome: Outcome{Written: 2}},
		&stubSource{name: "mars_photos", outcome: Outcome{Written: 3}},
	}

	runner := NewRunner(sources, true, nil)
	report := runner.RunAll(context.Background())

	require.Len(t, report.Outcomes, 3)
	assert.Equal(t, "apod", report.Outcomes[0].Source)
	assert.Equal(t, "asteroids", report.Outcomes[1].Source)
	assert.Equal(t, "mars_photos", report.Outcomes[2].Source)
}

func TestReportString(t *testing.T) {
	report := Report{
		Outcomes: []Outcome{
			{Source: "apod", Written: 8},
			{Source: "asteroids", Err: &FetchError{Source: "asteroids", Err: errors.New("HTTP 429")}},
		},
	}

	text := report.String()
	assert.Contains(t, text, "[1/2] apod")
	assert.Contains(t, text, "written=8")
	assert.Contains(t, text, "FAILED")
	assert.Contains(t, text, "HTTP 429")
	assert.Contains(t, text, "1 source(s) failed")
}

func TestReportStringFatal(t *testing.T) {
	report := Report{Fatal: ErrConnection}

	text := report.String()
	assert.Contains(t, text, "FATAL")
	assert.False(t, strings.Contains(text, "[1/"))
}
