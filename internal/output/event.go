package output

import "tamperscan/internal/checks"

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line), including:
// - run.started
// - check.result
// - run.verdict
// - run.finished
//
// JSON mode remains a single aggregate checks.Verdict document.
type Event struct {
	Type  string `json:"type"`
	RunID string `json:"run_id,omitempty"`
	*checks.Outcome
	Verdict  *checks.Verdict `json:"verdict,omitempty"`
	Checks   int             `json:"checks,omitempty"`
	ExitCode int             `json:"exit_code,omitempty"`
}

func eventFromOutcome(o checks.Outcome) Event {
	return Event{Type: "check.result", Outcome: &o}
}

func eventFromVerdict(v checks.Verdict) Event {
	return Event{Type: "run.verdict", RunID: v.RunID, Verdict: &v}
}
