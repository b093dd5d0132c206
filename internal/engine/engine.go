// Package engine walks the selected checks in canonical order against one
// host snapshot and reduces their outcomes into a verdict.
package engine

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tamperscan/internal/checks"
	"tamperscan/internal/config"
	"tamperscan/internal/envclass"
	"tamperscan/internal/host"
	"tamperscan/internal/output"
)

func exitCodeForRun(fatal, partial, compromised bool) int {
	// Exit code contract:
	// 0 = clean run, no compromise evidence
	// 1 = compromise evidence found
	// 2 = partial run (some probes reported degraded scope)
	// 3 = fatal error (detection did not run)
	if fatal {
		return 3
	}
	if partial {
		return 2
	}
	if compromised {
		return 1
	}
	return 0
}

func setupOutputManager(cfg *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()

	// Console Sink
	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(nil, cfg.Output.ConsoleFormat, cfg.Output.ConsoleFilterStatus)); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Emit Sinks (additional structured streams)
	for _, emit := range cfg.Output.Emit {
		es, err := output.NewEmitSink(os.Stdout, emit)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(es); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// File Sink
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Report Sink
	if cfg.Output.Report != "" {
		rs, err := output.NewReportSink(cfg.Output.Report)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(rs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

func applyCheckOptionsIfAny(cfg *config.Config) error {
	// applyCheckOptionsIfAny applies per-check configuration supplied via
	// repeated --set flags.
	//
	// --set values are parsed as "checkID.option=value" and routed to the
	// matching check's Configure method (only checks that implement
	// checks.ConfigurableCheck).
	//
	// Example:
	//   tamperscan detect --set parent-process.strict=true

	if len(cfg.Checks.Set) == 0 {
		return nil
	}

	assignments, err := config.ParseCheckOptionAssignments(cfg.Checks.Set)
	if err != nil {
		return err
	}

	all := checks.List()
	byID := make(map[string]checks.Check, len(all))
	for _, c := range all {
		byID[string(c.ID())] = c
	}

	for checkID, opts := range assignments {
		c, ok := byID[checkID]
		if !ok {
			return fmt.Errorf("unknown check ID %q", checkID)
		}
		cc, ok := c.(checks.ConfigurableCheck)
		if !ok {
			return fmt.Errorf("check %q does not support options", checkID)
		}

		allowed := make(map[string]struct{})
		for _, opt := range cc.Options() {
			allowed[opt.Name] = struct{}{}
		}
		for name := range opts {
			if _, ok := allowed[name]; !ok {
				return fmt.Errorf("unknown option %q for check %q", name, checkID)
			}
		}

		if err := cc.Configure(opts); err != nil {
			return fmt.Errorf("configure check %q: %w", checkID, err)
		}
	}

	return nil
}

// suppressedByClassifier lists the checks an emulated host makes meaningless:
// their failing condition holds legitimately there, so running them would
// manufacture false evidence. Suppressed checks are absent from the verdict,
// never reported as synthetic passes.
func suppressedByClassifier(id checks.CheckID, cls envclass.Classification) bool {
	if !cls.Emulated {
		return false
	}
	return id == checks.CheckSandboxFork
}

// timeBounded marks the checks that perform real filesystem or process
// operations; only these get the probe-timeout deadline.
func timeBounded(id checks.CheckID) bool {
	return id == checks.CheckRestrictedWrite || id == checks.CheckSandboxFork
}

type Engine struct {
	host *host.Host
	log  *logrus.Logger

	// ErrorHook, when set, receives every degraded-probe error alongside
	// logging. Test seam and embedding hook.
	ErrorHook func(id checks.CheckID, err error)
}

func New(h *host.Host, logger *logrus.Logger) *Engine {
	return &Engine{
		host: h,
		log:  logger,
	}
}

// Run executes one detection run: resolve and configure the selected checks,
// classify the environment, evaluate in canonical order with per-category
// short-circuiting, and aggregate into a verdict. The returned exit code
// follows the contract in exitCodeForRun.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) (checks.Verdict, int) {
	selected, err := checks.Resolve(cfg.Checks.Selector)
	if err != nil {
		e.log.WithError(err).Error("Failed to resolve checks")
		return checks.Verdict{}, exitCodeForRun(true, false, false)
	}

	if err := applyCheckOptionsIfAny(cfg); err != nil {
		e.log.WithError(err).Error("Failed to configure checks")
		return checks.Verdict{}, exitCodeForRun(true, false, false)
	}

	outMgr, err := setupOutputManager(cfg)
	if err != nil {
		e.log.WithError(err).Error("Failed to create output sinks")
		return checks.Verdict{}, exitCodeForRun(true, false, false)
	}
	defer outMgr.Close()

	cls := envclass.Classify(e.host.LookupEnv)
	if cls.Emulated {
		e.log.WithField("reason", cls.Reason).Debug("Environment classified as emulated")
	}
	if cfg.Checks.AllDisabled() {
		e.log.Warn("All check categories are disabled; verdict is vacuously clean")
	}

	runID := uuid.NewString()
	started := time.Now()

	_ = outMgr.Write(output.Event{Type: "run.started", RunID: runID, Checks: len(selected)})

	var (
		outcomes       []checks.Outcome
		partial        bool
		failedCategory = make(map[checks.Category]bool)
	)

	for _, c := range selected {
		cat := c.Category()
		if !cfg.Checks.CategoryEnabled(string(cat)) {
			continue
		}
		if suppressedByClassifier(c.ID(), cls) {
			e.log.WithField("check", c.ID()).Debug("Check suppressed by environment classifier")
			continue
		}

		var out checks.Outcome
		if failedCategory[cat] {
			// Evidence for this category is already on the record; the
			// remaining probes of the category are not worth their risk.
			out = checks.Skip(c.ID(), fmt.Sprintf("%s category already failed", cat))
		} else {
			var evalErr error
			out, evalErr = e.evaluate(ctx, c, cls, cfg)
			if evalErr != nil {
				partial = true
				e.log.WithError(evalErr).WithField("check", c.ID()).Warn("Probe reported degraded scope")
				if e.ErrorHook != nil {
					e.ErrorHook(c.ID(), evalErr)
				}
			}
			if out.Failed() {
				failedCategory[cat] = true
			}
		}

		outcomes = append(outcomes, out)
		_ = outMgr.Write(out)
	}

	verdict := checks.Aggregate(outcomes)
	verdict.RunID = runID
	verdict.StartedAt = started
	verdict.Duration = time.Since(started)

	_ = outMgr.Write(verdict)

	code := exitCodeForRun(false, partial, verdict.IsCompromised)
	_ = outMgr.Write(output.Event{Type: "run.finished", RunID: runID, ExitCode: code})
	return verdict, code
}

func (e *Engine) evaluate(ctx context.Context, c checks.Check, cls envclass.Classification, cfg *config.Config) (checks.Outcome, error) {
	if timeBounded(c.ID()) && cfg.Runtime.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Runtime.ProbeTimeout)
		defer cancel()
	}
	return c.Evaluate(ctx, e.host, cls, &cfg.Checks)
}
