package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/IBM/vmware-l4-automation/internal/platform/schematics"
	"github.com/IBM/vmware-l4-automation/internal/platform/vcd"
)

// MockDirector is a mock of the Cloud Director API surface.
type MockDirector struct {
	mock.Mock
}

// QueryCatalogs returns catalogs by name.
func (m *MockDirector) QueryCatalogs(ctx context.Context, name string) ([]vcd.CatalogRecord, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vcd.CatalogRecord), args.Error(1)
}

// GetCatalog returns the catalog at href.
func (m *MockDirector) GetCatalog(ctx context.Context, href string) (*vcd.Catalog, error) {
	args := m.Called(ctx, href)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vcd.Catalog), args.Error(1)
}

// CreateCatalog creates a catalog.
func (m *MockDirector) CreateCatalog(ctx context.Context, name, description string) (*vcd.Catalog, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vcd.Catalog), args.Error(1)
}

// UploadOVF imports an OVF into a catalog.
func (m *MockDirector) UploadOVF(ctx context.Context, catalogID, itemName, sourceHref, description string) (*vcd.CatalogItem, []vcd.Task, error) {
	args := m.Called(ctx, catalogID, itemName, sourceHref, description)
	var item *vcd.CatalogItem
	if v := args.Get(0); v != nil {
		item = v.(*vcd.CatalogItem)
	}
	var started []vcd.Task
	if v := args.Get(1); v != nil {
		started = v.([]vcd.Task)
	}
	return item, started, args.Error(2)
}

// GetTask returns the task at href.
func (m *MockDirector) GetTask(ctx context.Context, href string) (*vcd.Task, error) {
	args := m.Called(ctx, href)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vcd.Task), args.Error(1)
}

// ListIPSpaces returns the visible IP spaces.
func (m *MockDirector) ListIPSpaces(ctx context.Context) ([]vcd.IPSpace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vcd.IPSpace), args.Error(1)
}

// GetIPSpace returns one IP space.
func (m *MockDirector) GetIPSpace(ctx context.Context, id string) (*vcd.IPSpace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vcd.IPSpace), args.Error(1)
}

// ListIPAllocations returns the allocations of an IP space.
func (m *MockDirector) ListIPAllocations(ctx context.Context, id string) ([]vcd.IPAllocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]vcd.IPAllocation), args.Error(1)
}

// AllocateIP allocates an address.
func (m *MockDirector) AllocateIP(ctx context.Context, id, address string) (string, error) {
	args := m.Called(ctx, id, address)
	return args.String(0), args.Error(1)
}

// CreateAPIToken mints an API token.
func (m *MockDirector) CreateAPIToken(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

// MockWorkspaces is a mock of the Schematics workspace API.
type MockWorkspaces struct {
	mock.Mock
}

// ListWorkspaces returns workspaces in a resource group.
func (m *MockWorkspaces) ListWorkspaces(ctx context.Context, resourceGroup string) ([]schematics.Workspace, error) {
	args := m.Called(ctx, resourceGroup)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schematics.Workspace), args.Error(1)
}

// CreateWorkspace creates a workspace.
func (m *MockWorkspaces) CreateWorkspace(ctx context.Context, req schematics.CreateWorkspaceRequest) (*schematics.Workspace, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schematics.Workspace), args.Error(1)
}
