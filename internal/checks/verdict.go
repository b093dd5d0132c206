package checks

import (
	"strings"
	"time"
)

// EvidenceSeparator joins the failing evidence strings in a verdict summary.
const EvidenceSeparator = "; "

// Verdict is the aggregate result of one detection run: an immutable
// snapshot once returned. Outcomes holds every evaluated check in execution
// order; FailedChecks preserves identifier+evidence pairing for programmatic
// handling.
type Verdict struct {
	RunID         string        `json:"run_id"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration_ns"`
	IsCompromised bool          `json:"is_compromised"`
	Outcomes      []Outcome     `json:"outcomes"`
	FailedChecks  []Outcome     `json:"failed_checks,omitempty"`
	Summary       string        `json:"summary,omitempty"`
}

// Aggregate reduces an ordered outcome list into a verdict. Pure and
// deterministic: compromised iff any outcome failed; the summary is the
// failing evidence strings joined with EvidenceSeparator in execution order.
// Run metadata (id, timing) is stamped by the engine.
func Aggregate(outcomes []Outcome) Verdict {
	v := Verdict{Outcomes: outcomes}

	var evidence []string
	for _, o := range outcomes {
		if !o.Failed() {
			continue
		}
		v.FailedChecks = append(v.FailedChecks, o)
		evidence = append(evidence, o.Evidence)
	}
	v.IsCompromised = len(v.FailedChecks) > 0
	v.Summary = strings.Join(evidence, EvidenceSeparator)
	return v
}
