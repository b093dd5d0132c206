package probes

import (
	"context"
	"fmt"
	"strconv"

	"tamperscan/internal/checks"
	"tamperscan/internal/config"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
)

// parentProcessCheck compares the parent pid against the platform's
// first-process pid. A mismatch means the process was not launched by the
// normal supervisor (a debugger launch looks exactly like this), but many
// legitimate launch paths also mismatch, so the default disposition is
// informational rather than failing.
type parentProcessCheck struct {
	strict bool
}

func (c *parentProcessCheck) ID() checks.CheckID { return checks.CheckParentProcess }

func (c *parentProcessCheck) Title() string { return "Parent Process Identity" }

func (c *parentProcessCheck) Description() string {
	return "Compares the parent process identifier against the platform's canonical first-process identifier. A mismatch is reported as informational evidence of an abnormal launch path (for example, under a debugger)."
}

func (c *parentProcessCheck) Category() checks.Category { return checks.CategoryProcess }

func (c *parentProcessCheck) Options() []checks.Option {
	return []checks.Option{
		{
			Name:        "strict",
			Description: "Treat a parent pid mismatch as a failing signal instead of informational evidence",
			Default:     "false",
		},
	}
}

func (c *parentProcessCheck) Configure(opts map[string]string) error {
	if raw, ok := opts["strict"]; ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("option strict: %w", err)
		}
		c.strict = v
	}
	return nil
}

func (c *parentProcessCheck) Evaluate(ctx context.Context, env *host.Host, cls envclass.Classification, cfg *config.Checks) (checks.Outcome, error) {
	ppid := env.Process.ParentPID()
	init := env.Process.InitPID()
	if ppid == init {
		return checks.Pass(checks.CheckParentProcess), nil
	}
	evidence := fmt.Sprintf("parent pid is %d, expected %d", ppid, init)
	if c.strict {
		return checks.Fail(checks.CheckParentProcess, evidence), nil
	}
	return checks.Info(checks.CheckParentProcess, evidence), nil
}

func init() {
	checks.Register(&parentProcessCheck{})
}
