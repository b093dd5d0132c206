package checks

type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusInfo    Status = "INFO"
	StatusSkipped Status = "SKIPPED"
)

// Outcome is the immutable record of one evaluated check. A FAIL or INFO
// outcome always carries non-empty evidence; a PASS carries none. Checks
// suppressed by the environment classifier produce no Outcome at all, which
// keeps "not evaluated" distinguishable from "evaluated and passed".
type Outcome struct {
	CheckID  CheckID `json:"check_id"`
	Status   Status  `json:"status"`
	Evidence string  `json:"evidence,omitempty"`
}

// Failed reports whether the outcome contributes to a compromised verdict.
func (o Outcome) Failed() bool { return o.Status == StatusFail }

func Pass(id CheckID) Outcome {
	return Outcome{CheckID: id, Status: StatusPass}
}

func Fail(id CheckID, evidence string) Outcome {
	if evidence == "" {
		// A failure without evidence is unactionable; keep the invariant.
		evidence = "unexplained failure from check " + string(id)
	}
	return Outcome{CheckID: id, Status: StatusFail, Evidence: evidence}
}

func Info(id CheckID, evidence string) Outcome {
	return Outcome{CheckID: id, Status: StatusInfo, Evidence: evidence}
}

func Skip(id CheckID, reason string) Outcome {
	return Outcome{CheckID: id, Status: StatusSkipped, Evidence: reason}
}
