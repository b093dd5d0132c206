package probes

import (
	"context"

	"tamperscan/internal/checks"
	"tamperscan/internal/config"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
)

type emulatorSignalCheck struct{}

func (emulatorSignalCheck) ID() checks.CheckID { return checks.CheckEmulatorSignal }

func (emulatorSignalCheck) Title() string { return "Emulator Signal" }

func (emulatorSignalCheck) Description() string {
	return "Consults the compile-time platform target flag and the runtime environment variables conventionally set by emulation hosts. Either signal fails the check: an emulated host is outside the trust boundary of a genuine device."
}

func (emulatorSignalCheck) Category() checks.Category { return checks.CategoryEnvironment }

func (emulatorSignalCheck) Evaluate(ctx context.Context, env *host.Host, cls envclass.Classification, cfg *config.Checks) (checks.Outcome, error) {
	if cls.Emulated {
		return checks.Fail(checks.CheckEmulatorSignal, cls.Reason), nil
	}
	return checks.Pass(checks.CheckEmulatorSignal), nil
}

func init() {
	checks.Register(emulatorSignalCheck{})
}
