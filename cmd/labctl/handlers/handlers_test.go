package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/IBM/vmware-l4-automation/internal/config"
	"github.com/IBM/vmware-l4-automation/internal/environment"
	"github.com/IBM/vmware-l4-automation/internal/observability"
	"github.com/IBM/vmware-l4-automation/internal/platform/cos"
	"github.com/IBM/vmware-l4-automation/internal/reconcile"
)

// saveAndRestoreFactories saves and restores the factory function variables.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origNewResolver := newResolver
	origNewReconciler := newReconciler
	origNewVerifier := newVerifier
	origLoadRegistry := loadRegistry

	t.Cleanup(func() {
		newResolver = origNewResolver
		newReconciler = origNewReconciler
		newVerifier = origNewVerifier
		loadRegistry = origLoadRegistry
	})
}

// captureOutput captures stdout during f.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// testSettings writes a settings file and returns a viper with the API key
// set, as the environment would.
func testSettings(t *testing.T) (*viper.Viper, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.SettingsFileName)
	content := "region: us-south\nsite: dal-site\nvdc: vdc-1\nlab: petclinic\nlog_format: json\nlog_level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	v := config.NewViper()
	v.Set(config.KeyAPIKey, "test-api-key")
	return v, path
}

func testEnvironment() *environment.Environment {
	return &environment.Environment{
		Region:        "us-south",
		SiteID:        "site-1",
		SiteName:      "dal-site",
		VDCID:         "vdc-id",
		VDCName:       "vdc-1",
		DirectorURL:   "https://dal.vcd.test",
		OrgName:       "org-1",
		ResourceGroup: "rg-1",
		PublicIP:      "150.1.2.3",
		IAMToken:      "iam-token",
	}
}

type fakeResolver struct {
	env *environment.Environment
	err error
	req environment.Request
}

func (f *fakeResolver) Resolve(_ context.Context, req environment.Request) (*environment.Environment, error) {
	f.req = req
	return f.env, f.err
}

type fakeReconciler struct {
	plan       *reconcile.Plan
	planErr    error
	result     *reconcile.Result
	err        error
	desired    reconcile.DesiredState
	reconciled bool
}

func (f *fakeReconciler) Plan(_ context.Context, desired reconcile.DesiredState) (*reconcile.Plan, error) {
	f.desired = desired
	return f.plan, f.planErr
}

func (f *fakeReconciler) Reconcile(_ context.Context, desired reconcile.DesiredState) (*reconcile.Result, error) {
	f.desired = desired
	f.reconciled = true
	return f.result, f.err
}

type fakeVerifier struct {
	missing map[string]bool
	calls   int
}

func (f *fakeVerifier) Verify(_ context.Context, sources []cos.Source) []cos.Check {
	f.calls++
	checks := make([]cos.Check, len(sources))
	for i, src := range sources {
		checks[i].Source = src
		if f.missing[src.Name] {
			checks[i].Err = cos.ErrObjectNotFound
		} else {
			checks[i].Info = &cos.ObjectInfo{Size: 1024}
		}
	}
	return checks
}

// useFakes installs fakes for every factory and returns them.
func useFakes(t *testing.T) (*fakeResolver, *fakeReconciler, *fakeVerifier) {
	t.Helper()
	saveAndRestoreFactories(t)

	res := &fakeResolver{env: testEnvironment()}
	rec := &fakeReconciler{}
	ver := &fakeVerifier{missing: map[string]bool{}}

	newResolver = func(*config.Timeouts, observability.Observer) Resolver { return res }
	newReconciler = func(*environment.Environment, config.Lab, *config.Timeouts, observability.Observer, ...reconcile.Option) Reconciler {
		return rec
	}
	newVerifier = func(cos.Credentials) SourceVerifier { return ver }

	return res, rec, ver
}

var errBoom = errors.New("boom")
