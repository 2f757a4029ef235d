package reconcile

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/IBM/vmware-l4-automation/internal/tasks"
)

var errInjected = errors.New("injected failure")

type fakeCatalog struct {
	record CatalogRecord
	items  []string
	ready  bool
}

type fakeSpace struct {
	ref         IPSpaceRef
	ranges      []string
	allocations []string
}

type fakeTask struct {
	script    []tasks.Status
	pos       int
	onSuccess func()
}

// fakeControlPlane is an in-memory VCD and Schematics stand-in. Catalog
// creation and item uploads complete through tasks that follow a script;
// their effect becomes visible once the task reports success.
type fakeControlPlane struct {
	mu sync.Mutex

	catalogs   []*fakeCatalog
	workspaces map[string][]WorkspaceRecord
	spaces     []*fakeSpace
	tasks      map[string]*fakeTask

	// failures keyed by operation name, or "upload:<item>".
	failures map[string]error
	// scripts keyed by "catalog:<name>" or "upload:<item>"; default
	// running then success.
	scripts map[string][]tasks.Status

	created []WorkspaceSpec
	calls   []string
	nextID  int
}

func newFakeControlPlane() *fakeControlPlane {
	return &fakeControlPlane{
		workspaces: make(map[string][]WorkspaceRecord),
		tasks:      make(map[string]*fakeTask),
		failures:   make(map[string]error),
		scripts:    make(map[string][]tasks.Status),
	}
}

func (f *fakeControlPlane) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeControlPlane) record(call string) error {
	f.calls = append(f.calls, call)
	return f.failures[call]
}

func (f *fakeControlPlane) addCatalog(name string, items ...string) *fakeCatalog {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id("cat")
	c := &fakeCatalog{
		record: CatalogRecord{ID: id, Name: name, Href: "https://vcd.test/api/catalog/" + id},
		items:  items,
		ready:  true,
	}
	f.catalogs = append(f.catalogs, c)
	return c
}

func (f *fakeControlPlane) addWorkspace(scope, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workspaces[scope] = append(f.workspaces[scope], WorkspaceRecord{ID: f.id("ws"), Name: name})
}

func (f *fakeControlPlane) addSpace(name string, ranges []string, allocations ...string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.id("ips")
	f.spaces = append(f.spaces, &fakeSpace{ref: IPSpaceRef{ID: id, Name: name}, ranges: ranges, allocations: allocations})
	return id
}

func (f *fakeControlPlane) fail(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = errInjected
}

func (f *fakeControlPlane) script(key string, statuses ...tasks.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts[key] = statuses
}

func (f *fakeControlPlane) callCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == prefix || strings.HasPrefix(c, prefix+":") {
			n++
		}
	}
	return n
}

func (f *fakeControlPlane) writeCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		if c == "create catalog" || c == "create workspace" || c == "allocate ip" || strings.HasPrefix(c, "upload:") {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeControlPlane) startTask(key string, onSuccess func()) string {
	script, ok := f.scripts[key]
	if !ok {
		script = []tasks.Status{tasks.Running, tasks.Success}
	}
	ref := "https://vcd.test/api/task/" + f.id("task")
	f.tasks[ref] = &fakeTask{script: script, onSuccess: onSuccess}
	return ref
}

func (f *fakeControlPlane) ListCatalogs(_ context.Context, name string) ([]CatalogRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("list catalogs"); err != nil {
		return nil, err
	}
	var out []CatalogRecord
	for _, c := range f.catalogs {
		if c.record.Name == name {
			out = append(out, c.record)
		}
	}
	return out, nil
}

func (f *fakeControlPlane) GetCatalogItems(_ context.Context, catalog CatalogRecord) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("get catalog items"); err != nil {
		return nil, err
	}
	for _, c := range f.catalogs {
		if c.record.ID == catalog.ID {
			return slices.Clone(c.items), nil
		}
	}
	return nil, fmt.Errorf("catalog %s not found", catalog.ID)
}

func (f *fakeControlPlane) CreateCatalog(_ context.Context, name string) (CatalogRecord, []string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("create catalog"); err != nil {
		return CatalogRecord{}, nil, err
	}
	id := f.id("cat")
	c := &fakeCatalog{record: CatalogRecord{ID: id, Name: name, Href: "https://vcd.test/api/catalog/" + id}}
	f.catalogs = append(f.catalogs, c)
	ref := f.startTask("catalog:"+name, func() { c.ready = true })
	return c.record, []string{ref}, nil
}

func (f *fakeControlPlane) UploadCatalogItem(_ context.Context, catalog CatalogRecord, item CatalogItem) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("upload:" + item.Name); err != nil {
		return nil, err
	}
	for _, c := range f.catalogs {
		if c.record.ID != catalog.ID {
			continue
		}
		if !c.ready {
			return nil, fmt.Errorf("catalog %s is busy", catalog.Name)
		}
		ref := f.startTask("upload:"+item.Name, func() { c.items = append(c.items, item.Name) })
		return []string{ref}, nil
	}
	return nil, fmt.Errorf("catalog %s not found", catalog.ID)
}

func (f *fakeControlPlane) ListWorkspaces(_ context.Context, scope string) ([]WorkspaceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("list workspaces"); err != nil {
		return nil, err
	}
	return slices.Clone(f.workspaces[scope]), nil
}

func (f *fakeControlPlane) CreateWorkspace(_ context.Context, spec WorkspaceSpec) (WorkspaceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("create workspace"); err != nil {
		return WorkspaceRecord{}, err
	}
	rec := WorkspaceRecord{ID: f.id("ws"), Name: spec.Name}
	f.workspaces[spec.Scope] = append(f.workspaces[spec.Scope], rec)
	f.created = append(f.created, spec)
	return rec, nil
}

func (f *fakeControlPlane) ListIPSpaces(context.Context) ([]IPSpaceRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("list ip spaces"); err != nil {
		return nil, err
	}
	out := make([]IPSpaceRef, 0, len(f.spaces))
	for _, s := range f.spaces {
		out = append(out, s.ref)
	}
	return out, nil
}

func (f *fakeControlPlane) space(id string) (*fakeSpace, error) {
	for _, s := range f.spaces {
		if s.ref.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("IP space %s not found", id)
}

func (f *fakeControlPlane) GetIPSpaceRanges(_ context.Context, id string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("get ip space"); err != nil {
		return nil, err
	}
	s, err := f.space(id)
	if err != nil {
		return nil, err
	}
	return slices.Clone(s.ranges), nil
}

func (f *fakeControlPlane) ListIPAllocations(_ context.Context, id string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("list ip allocations"); err != nil {
		return nil, err
	}
	s, err := f.space(id)
	if err != nil {
		return nil, err
	}
	return slices.Clone(s.allocations), nil
}

func (f *fakeControlPlane) AllocateIP(_ context.Context, id, address string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("allocate ip"); err != nil {
		return err
	}
	s, err := f.space(id)
	if err != nil {
		return err
	}
	s.allocations = append(s.allocations, address)
	return nil
}

// PollTask implements tasks.Poller. Each poll advances the script; the
// last status repeats.
func (f *fakeControlPlane) PollTask(_ context.Context, ref string) (tasks.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[ref]
	if !ok {
		return "", fmt.Errorf("task %s not found", ref)
	}
	status := t.script[min(t.pos, len(t.script)-1)]
	t.pos++
	if status == tasks.Success && t.onSuccess != nil {
		t.onSuccess()
		t.onSuccess = nil
	}
	return status, nil
}

type staticMinter struct {
	token string
	err   error
	calls int
}

func (m *staticMinter) MintToken(context.Context) (string, error) {
	m.calls++
	return m.token, m.err
}

func petClinicDesired() DesiredState {
	return DesiredState{
		Catalog: "PetClinic",
		Items: []CatalogItem{
			{Name: "A", Source: "https://cos.test/labs/a.ovf"},
			{Name: "B", Source: "https://cos.test/labs/b.ovf"},
			{Name: "C", Source: "https://cos.test/labs/c.ovf"},
		},
		Workspace: WorkspaceSpec{
			Name:         "petclinic-us-south",
			Scope:        "rg-1",
			Repository:   "https://github.com/IBM/vmware-l4-automation.git",
			Folder:       "petclinic",
			TemplateType: "terraform_v1.6",
			Location:     "us-south",
			Variables: []Variable{
				{Name: "ibmcloud_api_key", Value: "secret-key", Secure: true},
				{Name: "public_ip", Value: "10.0.0.5"},
			},
			TokenVariable: "vmware_api_token",
		},
		PublicIP: "10.0.0.5",
	}
}
