package probes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tamperscan/internal/checks"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
)

func TestRestrictedWrite(t *testing.T) {
	t.Run("all writes refused passes and probes every path", func(t *testing.T) {
		env := newTestHost()
		fs := &fakeFS{}
		env.FS = fs

		out, err := restrictedWriteCheck{}.Evaluate(context.Background(), env, envclass.Classification{}, nil)
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if out.Status != checks.StatusPass {
			t.Fatalf("status = %s, want PASS", out.Status)
		}
		if got, want := len(fs.probeWrites), len(restrictedWritePaths); got != want {
			t.Fatalf("probed %d paths, want %d (%v)", got, want, fs.probeWrites)
		}
	})

	t.Run("accepted write fails and stops probing", func(t *testing.T) {
		env := newTestHost()
		fs := &fakeFS{writable: map[string]bool{"/": true}}
		env.FS = fs

		out, err := restrictedWriteCheck{}.Evaluate(context.Background(), env, envclass.Classification{}, nil)
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if out.Status != checks.StatusFail {
			t.Fatalf("status = %s, want FAIL", out.Status)
		}
		if !strings.Contains(out.Evidence, "/") {
			t.Errorf("evidence %q does not name the writable path", out.Evidence)
		}
		if len(fs.probeWrites) != 1 {
			t.Errorf("probing continued past the failing path: %v", fs.probeWrites)
		}
	})

	t.Run("deadline makes the probe inconclusive, not failing", func(t *testing.T) {
		env := newTestHost()
		block := make(chan struct{})
		defer close(block)
		env.FS = &fakeFS{blockWrites: block}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		out, err := restrictedWriteCheck{}.Evaluate(ctx, env, envclass.Classification{}, nil)
		if !errors.Is(err, host.ErrInconclusive) {
			t.Fatalf("error = %v, want ErrInconclusive", err)
		}
		if out.Status != checks.StatusPass {
			t.Fatalf("status = %s, want PASS on inconclusive probe", out.Status)
		}
	})
}
