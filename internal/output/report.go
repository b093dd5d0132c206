package output

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"tamperscan/internal/checks"
)

// ReportSink renders a human-readable Markdown summary of one detection run.
// Everything is collected during the run and written on Close so the report
// can open with the verdict.
type ReportSink struct {
	path         string
	file         *os.File
	mu           sync.Mutex
	outcomes     []checks.Outcome
	verdict      *checks.Verdict
	exitCode     int
	haveExitCode bool
}

func NewReportSink(path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	return &ReportSink{
		path: path,
		file: f,
	}, nil
}

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case checks.Outcome:
		s.outcomes = append(s.outcomes, t)
	case checks.Verdict:
		s.verdict = &t
	case Event:
		if t.Type == "run.finished" {
			s.exitCode = t.ExitCode
			s.haveExitCode = true
		}
	}
	return nil
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	b.WriteString("# Device Integrity Report\n\n")

	if s.verdict != nil {
		v := s.verdict
		if v.IsCompromised {
			b.WriteString(fmt.Sprintf("**Verdict: COMPROMISED** (%d failing of %d evaluated)\n\n",
				len(v.FailedChecks), len(v.Outcomes)))
		} else {
			b.WriteString(fmt.Sprintf("**Verdict: clean** (%d checks evaluated)\n\n", len(v.Outcomes)))
		}
		b.WriteString(fmt.Sprintf("- Run ID: `%s`\n", v.RunID))
		if !v.StartedAt.IsZero() {
			b.WriteString(fmt.Sprintf("- Started: %s\n", v.StartedAt.UTC().Format("2006-01-02 15:04:05 UTC")))
		}
		b.WriteString(fmt.Sprintf("- Duration: %s\n", v.Duration))
		if s.haveExitCode {
			b.WriteString(fmt.Sprintf("- Exit code: %d\n", s.exitCode))
		}
		b.WriteString("\n")
	}

	outcomes := s.outcomes
	if len(outcomes) == 0 && s.verdict != nil {
		outcomes = s.verdict.Outcomes
	}

	var fails, infos, skips []checks.Outcome
	for _, o := range outcomes {
		switch o.Status {
		case checks.StatusFail:
			fails = append(fails, o)
		case checks.StatusInfo:
			infos = append(infos, o)
		case checks.StatusSkipped:
			skips = append(skips, o)
		}
	}

	b.WriteString("## Evidence\n\n")
	if len(fails) == 0 {
		b.WriteString("- None\n\n")
	} else {
		for _, o := range fails {
			b.WriteString(fmt.Sprintf("- **%s**: %s\n", o.CheckID, o.Evidence))
		}
		b.WriteString("\n")
	}

	if len(infos) > 0 {
		b.WriteString("## Informational\n\n")
		for _, o := range infos {
			b.WriteString(fmt.Sprintf("- **%s**: %s\n", o.CheckID, o.Evidence))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Checks\n\n")
	if len(outcomes) == 0 {
		b.WriteString("No checks were evaluated.\n\n")
	} else {
		b.WriteString("| Check | Status | Detail |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, o := range outcomes {
			b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", o.CheckID, o.Status, o.Evidence))
		}
		b.WriteString("\n")
	}

	if len(skips) > 0 {
		b.WriteString("## Reduced coverage\n\n")
		b.WriteString("Skipped checks gathered no evidence on this target; their scope is not covered by this verdict.\n\n")
		for _, o := range skips {
			b.WriteString(fmt.Sprintf("- **%s**: %s\n", o.CheckID, o.Evidence))
		}
		b.WriteString("\n")
	}

	if _, err := s.file.WriteString(b.String()); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}
