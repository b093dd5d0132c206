package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"tamperscan/internal/checks"
)

func TestConsoleSink_Filtering(t *testing.T) {
	tests := []struct {
		name           string
		filterStatuses []string
		input          checks.Outcome
		shouldWrite    bool
	}{
		{
			name:        "no filter - pass",
			input:       checks.Pass(checks.CheckTraceFlag),
			shouldWrite: true,
		},
		{
			name:           "filter FAIL - input PASS",
			filterStatuses: []string{"FAIL"},
			input:          checks.Pass(checks.CheckTraceFlag),
			shouldWrite:    false,
		},
		{
			name:           "filter FAIL - input FAIL",
			filterStatuses: []string{"FAIL"},
			input:          checks.Fail(checks.CheckTraceFlag, "tracer pid 9"),
			shouldWrite:    true,
		},
		{
			name:           "filter FAIL,INFO - input INFO",
			filterStatuses: []string{"FAIL", "INFO"},
			input:          checks.Info(checks.CheckParentProcess, "parent pid is 7"),
			shouldWrite:    true,
		},
		{
			name:           "filter SKIPPED - input SKIPPED",
			filterStatuses: []string{"SKIPPED"},
			input:          checks.Skip(checks.CheckWatchpointScan, "unsupported"),
			shouldWrite:    true,
		},
		{
			name:           "filter SKIPPED - input PASS",
			filterStatuses: []string{"SKIPPED"},
			input:          checks.Pass(checks.CheckTraceFlag),
			shouldWrite:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			sink := NewConsoleSink(&buf, "text", tt.filterStatuses)

			if err := sink.Write(tt.input); err != nil {
				t.Fatalf("Write error: %v", err)
			}

			wroteSomething := buf.Len() > 0
			if tt.shouldWrite && !wroteSomething {
				t.Errorf("expected output, got none")
			}
			if !tt.shouldWrite && wroteSomething {
				t.Errorf("expected no output, got: %q", buf.String())
			}
		})
	}
}

func TestConsoleSink_Filtering_CaseInsensitive(t *testing.T) {
	var buf bytes.Buffer
	// Filter is "fail", input is "FAIL"
	sink := NewConsoleSink(&buf, "text", []string{"fail"})

	if err := sink.Write(checks.Fail(checks.CheckTraceFlag, "tracer pid 9")); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	if buf.Len() == 0 {
		t.Error("expected output for case-insensitive match, got none")
	}
}

func TestConsoleSink_Filtering_NDJSON(t *testing.T) {
	// NDJSON writes immediately
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, "ndjson", []string{"FAIL"})

	// PASS should be ignored
	if err := sink.Write(checks.Pass(checks.CheckTraceFlag)); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	if buf.Len() > 0 {
		t.Errorf("expected no output for PASS, got: %s", buf.String())
	}

	// FAIL should be written
	if err := sink.Write(checks.Fail(checks.CheckTraceFlag, "tracer pid 9")); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	if !strings.Contains(buf.String(), `"status":"FAIL"`) {
		t.Errorf("expected output for FAIL, got: %s", buf.String())
	}
}

func TestConsoleSink_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, "text", nil)

	_ = sink.Write(checks.Fail(checks.CheckLoaderImage, "loaded image matches deny list: frida"))
	_ = sink.Write(checks.Pass(checks.CheckTraceFlag))
	_ = sink.Write(checks.Aggregate([]checks.Outcome{
		checks.Fail(checks.CheckLoaderImage, "loaded image matches deny list: frida"),
		checks.Pass(checks.CheckTraceFlag),
	}))
	if err := sink.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"[FAIL] loader-image - loaded image matches deny list: frida",
		"[PASS] trace-flag",
		"Verdict: COMPROMISED (1 failing)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q; got:\n%s", want, out)
		}
	}
}

func TestConsoleSink_JSONWritesVerdictOnClose(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, "json", nil)

	_ = sink.Write(checks.Pass(checks.CheckTraceFlag))
	_ = sink.Write(checks.Aggregate([]checks.Outcome{checks.Pass(checks.CheckTraceFlag)}))

	if buf.Len() != 0 {
		t.Fatalf("json mode wrote before Close: %q", buf.String())
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	var got checks.Verdict
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal verdict: %v", err)
	}
	if got.IsCompromised || len(got.Outcomes) != 1 {
		t.Fatalf("unexpected verdict document: %+v", got)
	}
}
