// Package envclass distinguishes a virtualized/emulated host from genuine
// hardware. Several probes are meaningless (or legitimately permissive) in an
// emulator: bind-mount style filesystem layouts make host-OS tooling appear
// present, and process duplication is allowed. The runner suppresses or
// reinterprets them there to avoid false positives.
package envclass

import "fmt"

// Classification is the per-run environment verdict consulted by the runner
// and by individual checks.
type Classification struct {
	Emulated bool
	Reason   string
}

// Environment variables conventionally set by emulation/simulation hosts.
// Presence of any is treated as an emulated host.
var emulatorEnvVars = []string{
	"SIMULATOR_DEVICE_NAME",
	"SIMULATOR_RUNTIME_VERSION",
	"SIMULATOR_UDID",
	"QEMU_AUDIO_DRV",
	"ANDROID_EMULATOR",
}

// Classify inspects the compile-time target flag and the runtime environment.
// lookup is injectable for tests (os.LookupEnv in production).
func Classify(lookup func(key string) (string, bool)) Classification {
	if builtForEmulator {
		return Classification{Emulated: true, Reason: "binary built for an emulator target"}
	}
	if lookup == nil {
		return Classification{}
	}
	for _, key := range emulatorEnvVars {
		if _, ok := lookup(key); ok {
			return Classification{
				Emulated: true,
				Reason:   fmt.Sprintf("emulator environment variable %s is set", key),
			}
		}
	}
	return Classification{}
}
