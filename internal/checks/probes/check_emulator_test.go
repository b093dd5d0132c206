package probes

import (
	"context"
	"testing"

	"tamperscan/internal/checks"
	"tamperscan/internal/envclass"
)

func TestEmulatorSignal(t *testing.T) {
	t.Run("genuine host passes", func(t *testing.T) {
		out, err := emulatorSignalCheck{}.Evaluate(context.Background(), newTestHost(), envclass.Classification{}, nil)
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if out.Status != checks.StatusPass {
			t.Fatalf("status = %s, want PASS", out.Status)
		}
	})

	t.Run("emulated host fails with the classifier's reason", func(t *testing.T) {
		cls := envclass.Classification{Emulated: true, Reason: "environment variable SIMULATOR_UDID is set"}

		out, err := emulatorSignalCheck{}.Evaluate(context.Background(), newTestHost(), cls, nil)
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if out.Status != checks.StatusFail {
			t.Fatalf("status = %s, want FAIL", out.Status)
		}
		if out.Evidence != cls.Reason {
			t.Errorf("evidence %q, want classifier reason %q", out.Evidence, cls.Reason)
		}
	})
}
