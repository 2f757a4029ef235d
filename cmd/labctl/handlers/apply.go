package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"

	"github.com/IBM/vmware-l4-automation/internal/reconcile"
	"github.com/IBM/vmware-l4-automation/internal/ui/summary"
)

// ErrActionsFailed is returned by Apply when the run ended with failed
// actions. The result summary has already been printed.
var ErrActionsFailed = errors.New("reconciliation incomplete")

// ApplyOptions are the apply-only flags.
type ApplyOptions struct {
	TaskTimeout     time.Duration // overrides LABCTL_TIMEOUT_TASK_WAIT when set
	PollInterval    time.Duration // overrides LABCTL_TASK_POLL_INTERVAL when set
	TFVarsOut       string
	MetricsTextfile string
	VerifySources   bool
}

// Apply resolves the environment and converges it on the configured lab.
//
// The workflow:
//  1. Loads settings and looks up the lab
//  2. Optionally verifies that every catalog item source exists in COS
//  3. Resolves the director site, VDC and credentials
//  4. Probes, plans and executes the missing actions
//  5. Prints the result and writes the optional tfvars and metrics files
func Apply(ctx context.Context, v *viper.Viper, configPath string, opts ApplyOptions) error {
	rt, err := prepare(v, configPath)
	if err != nil {
		return err
	}
	if opts.TaskTimeout > 0 {
		rt.timeouts.TaskWait = opts.TaskTimeout
	}
	if opts.PollInterval > 0 {
		rt.timeouts.TaskPollInterval = opts.PollInterval
	}

	if opts.VerifySources {
		if err := rt.verifySources(ctx); err != nil {
			return err
		}
	}

	env, desired, err := rt.resolve(ctx)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := reconcile.NewMetrics(registry)

	rec := newReconciler(env, rt.lab, rt.timeouts, rt.observer,
		reconcile.WithObserver(rt.observer),
		reconcile.WithMetrics(metrics),
		reconcile.WithTaskTimeout(rt.timeouts.TaskWait),
		reconcile.WithPollInterval(rt.timeouts.TaskPollInterval),
	)

	result, err := rec.Reconcile(ctx, desired)
	if opts.MetricsTextfile != "" {
		if werr := prometheus.WriteToTextfile(opts.MetricsTextfile, registry); werr != nil {
			rt.observer.Printf("Failed to write metrics to %s: %v", opts.MetricsTextfile, werr)
		}
	}
	if err != nil {
		return fmt.Errorf("reconciliation aborted: %w", err)
	}

	fmt.Print(summary.RenderResult(result))

	if opts.TFVarsOut != "" {
		if err := writeTFVars(opts.TFVarsOut, result); err != nil {
			return err
		}
	}

	if failed := result.Failed(); len(failed) > 0 {
		return fmt.Errorf("%w: %d of %d actions failed", ErrActionsFailed, len(failed), len(result.Entries))
	}
	return nil
}

// writeTFVars writes the workspace variables of a run that created the
// workspace. Runs that found it in place have nothing to write.
func writeTFVars(path string, result *reconcile.Result) error {
	if result.Variables == nil {
		fmt.Printf("\nWorkspace was not created in this run; %s not written.\n", path)
		return nil
	}
	if err := summary.WriteTFVars(path, result.Variables); err != nil {
		return fmt.Errorf("failed to write tfvars: %w", err)
	}
	fmt.Printf("\nTerraform variables written to %s\n", path)
	return nil
}
