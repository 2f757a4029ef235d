// Package handlers implements the business logic of the labctl commands.
//
// Collaborators are created through package-level factory variables so
// tests can replace them.
package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/IBM/vmware-l4-automation/internal/config"
	"github.com/IBM/vmware-l4-automation/internal/environment"
	"github.com/IBM/vmware-l4-automation/internal/observability"
	"github.com/IBM/vmware-l4-automation/internal/platform/cos"
	"github.com/IBM/vmware-l4-automation/internal/platform/iam"
	"github.com/IBM/vmware-l4-automation/internal/platform/rest"
	"github.com/IBM/vmware-l4-automation/internal/platform/schematics"
	"github.com/IBM/vmware-l4-automation/internal/platform/vcd"
	"github.com/IBM/vmware-l4-automation/internal/platform/vcfaas"
	"github.com/IBM/vmware-l4-automation/internal/reconcile"
	"github.com/IBM/vmware-l4-automation/internal/remote"
	"github.com/IBM/vmware-l4-automation/internal/ui/summary"
	"github.com/IBM/vmware-l4-automation/internal/util/retry"
)

// Viper keys for the optional COS HMAC credentials used by source checks.
const (
	keyCOSAccessKey = "cos_access_key"
	keyCOSSecretKey = "cos_secret_key"
)

// Resolver locates the target environment.
type Resolver interface {
	Resolve(ctx context.Context, req environment.Request) (*environment.Environment, error)
}

// Reconciler plans and converges a desired state.
type Reconciler interface {
	Plan(ctx context.Context, desired reconcile.DesiredState) (*reconcile.Plan, error)
	Reconcile(ctx context.Context, desired reconcile.DesiredState) (*reconcile.Result, error)
}

// SourceVerifier checks that catalog item sources exist.
type SourceVerifier interface {
	Verify(ctx context.Context, sources []cos.Source) []cos.Check
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newResolver creates the environment resolver.
	newResolver = func(timeouts *config.Timeouts, observer observability.Observer) Resolver {
		opts := restOptions(timeouts, observer)
		sites := func(region, iamToken string) environment.Sites {
			return vcfaas.NewClient(vcfaas.RegionEndpoint(region), iamToken, opts...)
		}
		return environment.NewResolver(iam.NewClient(iam.DefaultEndpoint, opts...), sites, observer)
	}

	// newReconciler creates a reconciler bound to the resolved environment.
	newReconciler = func(env *environment.Environment, lab config.Lab, timeouts *config.Timeouts, observer observability.Observer, opts ...reconcile.Option) Reconciler {
		restOpts := restOptions(timeouts, observer)
		client := remote.New(
			vcd.NewClient(env.DirectorURL, env.VCDSession, restOpts...),
			schematics.NewClient(schematics.DefaultEndpoint, env.IAMToken, restOpts...),
			lab.Workspace.Description,
		)
		return reconcile.NewReconciler(client, client, client, opts...)
	}

	// newVerifier creates the COS source verifier.
	newVerifier = func(creds cos.Credentials) SourceVerifier {
		return cos.NewVerifier(creds)
	}

	// loadRegistry loads the lab registry.
	loadRegistry = config.LoadRegistry
)

// restOptions builds the shared HTTP policy from the configured timeouts.
func restOptions(timeouts *config.Timeouts, observer observability.Observer) []rest.Option {
	return []rest.Option{
		rest.WithTimeout(timeouts.HTTP),
		rest.WithRetry(
			retry.WithMaxAttempts(timeouts.RetryMaxAttempts),
			retry.WithInitialDelay(timeouts.RetryInitialDelay),
			retry.WithOnRetry(func(attempt int, delay time.Duration, err error) {
				observer.Printf("Request failed (attempt %d), retrying in %s: %v", attempt, delay, err)
			}),
		),
	}
}

// runtime is the state every remote command starts from.
type runtime struct {
	settings *config.Settings
	lab      config.Lab
	timeouts *config.Timeouts
	observer observability.Observer
	cosCreds cos.Credentials
}

// prepare loads settings, builds the logger and looks up the lab.
func prepare(v *viper.Viper, configPath string) (*runtime, error) {
	if err := config.ReadSettingsFile(v, configPath); err != nil {
		return nil, err
	}

	settings, err := config.LoadSettings(v)
	if err != nil {
		return nil, fmt.Errorf("%w\n\nRun 'labctl init' to create %s or pass the flags explicitly", err, config.SettingsFileName)
	}

	logger, err := observability.NewLogger(observability.LogOptions{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		Writer: os.Stderr,
	})
	if err != nil {
		return nil, err
	}

	registry, err := loadRegistry(settings.LabsFile)
	if err != nil {
		return nil, err
	}
	lab, err := registry.Lookup(settings.Lab)
	if err != nil {
		return nil, err
	}

	return &runtime{
		settings: settings,
		lab:      lab,
		timeouts: config.LoadTimeouts(),
		observer: observability.NewZerologObserver(logger),
		cosCreds: cos.Credentials{
			AccessKey: v.GetString(keyCOSAccessKey),
			SecretKey: v.GetString(keyCOSSecretKey),
		},
	}, nil
}

// resolve locates the environment and builds the desired state of the lab.
func (rt *runtime) resolve(ctx context.Context) (*environment.Environment, reconcile.DesiredState, error) {
	env, err := newResolver(rt.timeouts, rt.observer).Resolve(ctx, environment.RequestFromSettings(rt.settings))
	if err != nil {
		return nil, reconcile.DesiredState{}, fmt.Errorf("failed to resolve environment: %w", err)
	}
	return env, env.DesiredState(rt.lab, rt.settings.APIKey), nil
}

// sources lists the catalog item sources of the lab.
func (rt *runtime) sources() []cos.Source {
	out := make([]cos.Source, len(rt.lab.Items))
	for i, item := range rt.lab.Items {
		out[i] = cos.Source{Name: item.Name, URL: item.Source}
	}
	return out
}

// verifySources HEADs every source and prints the checks. An error is
// returned when any source is missing.
func (rt *runtime) verifySources(ctx context.Context) error {
	checks := newVerifier(rt.cosCreds).Verify(ctx, rt.sources())
	fmt.Print(summary.RenderChecks(checks))

	var missing int
	for _, c := range checks {
		if !c.OK() {
			missing++
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d catalog item sources are unavailable", missing, len(checks))
	}
	return nil
}
