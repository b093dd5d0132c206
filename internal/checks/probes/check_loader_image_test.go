package probes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tamperscan/internal/checks"
	"tamperscan/internal/config"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
)

func TestMatchImage(t *testing.T) {
	tests := []struct {
		name        string
		images      []string
		deny        []string
		wantImage   string
		wantPattern string
		wantOK      bool
	}{
		{
			name:   "no match",
			images: []string{"/usr/lib/libc.so", "/usr/lib/libssl.so"},
			deny:   []string{"frida", "substrate"},
		},
		{
			name:        "case-insensitive substring match",
			images:      []string{"/usr/lib/libc.so", "/private/var/FridaGadget.dylib"},
			deny:        []string{"frida"},
			wantImage:   "/private/var/FridaGadget.dylib",
			wantPattern: "frida",
			wantOK:      true,
		},
		{
			name:        "first image wins over pattern order",
			images:      []string{"/lib/substrate.dylib", "/lib/frida-agent.so"},
			deny:        []string{"frida", "substrate"},
			wantImage:   "/lib/substrate.dylib",
			wantPattern: "substrate",
			wantOK:      true,
		},
		{
			name:   "empty pattern never matches",
			images: []string{"/usr/lib/libc.so"},
			deny:   []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			image, pattern, ok := MatchImage(tt.images, tt.deny)
			if ok != tt.wantOK || image != tt.wantImage || pattern != tt.wantPattern {
				t.Fatalf("MatchImage() = (%q, %q, %v), want (%q, %q, %v)",
					image, pattern, ok, tt.wantImage, tt.wantPattern, tt.wantOK)
			}
		})
	}
}

func TestLoaderImage(t *testing.T) {
	t.Run("clean module table passes", func(t *testing.T) {
		env := newTestHost()

		out, err := loaderImageCheck{}.Evaluate(context.Background(), env, envclass.Classification{}, nil)
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if out.Status != checks.StatusPass {
			t.Fatalf("status = %s, want PASS", out.Status)
		}
	})

	t.Run("denied framework fails with image and pattern", func(t *testing.T) {
		env := newTestHost()
		env.Images = fakeImages{images: []string{"/usr/lib/libc.so", "/tmp/FridaGadget.dylib"}}

		out, err := loaderImageCheck{}.Evaluate(context.Background(), env, envclass.Classification{}, nil)
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if out.Status != checks.StatusFail {
			t.Fatalf("status = %s, want FAIL", out.Status)
		}
		if !strings.Contains(out.Evidence, "FridaGadget.dylib") {
			t.Errorf("evidence %q does not name the image", out.Evidence)
		}
	})

	t.Run("caller extra pattern extends the deny list", func(t *testing.T) {
		env := newTestHost()
		env.Images = fakeImages{images: []string{"/opt/agents/inhouse-agent.so"}}
		cfg := &config.Checks{ExtraImages: []string{"inhouse-agent"}}

		out, err := loaderImageCheck{}.Evaluate(context.Background(), env, envclass.Classification{}, cfg)
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if out.Status != checks.StatusFail {
			t.Fatalf("status = %s, want FAIL", out.Status)
		}
	})

	t.Run("unsupported module table skips", func(t *testing.T) {
		env := newTestHost()
		env.Images = fakeImages{err: host.ErrUnsupported}

		out, err := loaderImageCheck{}.Evaluate(context.Background(), env, envclass.Classification{}, nil)
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if out.Status != checks.StatusSkipped {
			t.Fatalf("status = %s, want SKIPPED", out.Status)
		}
	})

	t.Run("snapshot failure is a degraded pass", func(t *testing.T) {
		env := newTestHost()
		env.Images = fakeImages{err: errors.New("maps unreadable")}

		out, err := loaderImageCheck{}.Evaluate(context.Background(), env, envclass.Classification{}, nil)
		if err == nil {
			t.Fatal("Evaluate() error = nil, want degraded-scope error")
		}
		if out.Status != checks.StatusPass {
			t.Fatalf("status = %s, want PASS", out.Status)
		}
	})
}
