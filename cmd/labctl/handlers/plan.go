package handlers

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/IBM/vmware-l4-automation/internal/reconcile"
	"github.com/IBM/vmware-l4-automation/internal/ui/summary"
)

// Plan resolves the environment, probes it and prints the actions an apply
// would take. Nothing is written.
func Plan(ctx context.Context, v *viper.Viper, configPath string) error {
	rt, err := prepare(v, configPath)
	if err != nil {
		return err
	}

	env, desired, err := rt.resolve(ctx)
	if err != nil {
		return err
	}

	rec := newReconciler(env, rt.lab, rt.timeouts, rt.observer, reconcile.WithObserver(rt.observer))
	plan, err := rec.Plan(ctx, desired)
	if err != nil {
		return fmt.Errorf("failed to plan: %w", err)
	}

	fmt.Print(summary.RenderPlan(plan))
	return nil
}
