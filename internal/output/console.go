package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"tamperscan/internal/checks"
)

type ConsoleSink struct {
	writer          io.Writer
	format          string // "text", "json", "ndjson"
	mu              sync.Mutex
	verdict         *checks.Verdict // For JSON aggregate output
	allowedStatuses map[string]bool
}

func NewConsoleSink(w io.Writer, format string, filterStatuses []string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	s := &ConsoleSink{
		writer: w,
		format: format,
	}

	if len(filterStatuses) > 0 {
		s.allowedStatuses = make(map[string]bool)
		for _, st := range filterStatuses {
			// Normalize to uppercase for case-insensitive comparison.
			// The status values are "PASS", "FAIL", "INFO", "SKIPPED".
			s.allowedStatuses[strings.ToUpper(st)] = true
		}
	}

	return s
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *ConsoleSink) writeLocked(v any) error {
	printf := func(format string, args ...any) error {
		_, err := fmt.Fprintf(s.writer, format, args...)
		return err
	}

	// Apply filtering if configured
	if len(s.allowedStatuses) > 0 {
		if o, ok := v.(checks.Outcome); ok {
			if !s.allowedStatuses[string(o.Status)] {
				return nil
			}
		}
	}

	switch s.format {
	case "json":
		if verdict, ok := v.(checks.Verdict); ok {
			s.verdict = &verdict
		}
		// Everything else is folded into the verdict already.
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case checks.Outcome:
			e := eventFromOutcome(t)
			if err := encoder.Encode(e); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case checks.Verdict:
			e := eventFromVerdict(t)
			if err := encoder.Encode(e); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	case "text":
		switch t := v.(type) {
		case checks.Outcome:
			if err := printf("[%s] %s", t.Status, t.CheckID); err != nil {
				return err
			}
			if t.Evidence != "" {
				if err := printf(" - %s", t.Evidence); err != nil {
					return err
				}
			}
			if err := printf("\n"); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case checks.Verdict:
			if t.IsCompromised {
				if err := printf("Verdict: COMPROMISED (%d failing) - %s\n", len(t.FailedChecks), t.Summary); err != nil {
					return err
				}
			} else {
				if err := printf("Verdict: clean (%d checks evaluated)\n", len(t.Outcomes)); err != nil {
					return err
				}
			}
			return flushIfPossible(s.writer)
		default:
			// Ignore lifecycle events in text mode.
			return nil
		}
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.verdict); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}
