// Package remote implements the reconciliation capability set over the
// Cloud Director and Schematics API clients.
package remote

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/IBM/vmware-l4-automation/internal/platform/schematics"
	"github.com/IBM/vmware-l4-automation/internal/platform/vcd"
	"github.com/IBM/vmware-l4-automation/internal/reconcile"
	"github.com/IBM/vmware-l4-automation/internal/tasks"
)

// TokenNamePrefix prefixes the names of minted API tokens.
const TokenNamePrefix = "TOKEN-"

// Director is the Cloud Director API surface used by Client.
type Director interface {
	QueryCatalogs(ctx context.Context, name string) ([]vcd.CatalogRecord, error)
	GetCatalog(ctx context.Context, href string) (*vcd.Catalog, error)
	CreateCatalog(ctx context.Context, name, description string) (*vcd.Catalog, error)
	UploadOVF(ctx context.Context, catalogID, itemName, sourceHref, description string) (*vcd.CatalogItem, []vcd.Task, error)
	GetTask(ctx context.Context, href string) (*vcd.Task, error)
	ListIPSpaces(ctx context.Context) ([]vcd.IPSpace, error)
	GetIPSpace(ctx context.Context, id string) (*vcd.IPSpace, error)
	ListIPAllocations(ctx context.Context, id string) ([]vcd.IPAllocation, error)
	AllocateIP(ctx context.Context, id, address string) (string, error)
	CreateAPIToken(ctx context.Context, name string) (string, error)
}

// Workspaces is the Schematics API surface used by Client.
type Workspaces interface {
	ListWorkspaces(ctx context.Context, resourceGroup string) ([]schematics.Workspace, error)
	CreateWorkspace(ctx context.Context, req schematics.CreateWorkspaceRequest) (*schematics.Workspace, error)
}

var (
	_ reconcile.Remote      = (*Client)(nil)
	_ reconcile.TokenMinter = (*Client)(nil)
	_ tasks.Poller          = (*Client)(nil)

	_ Director   = (*vcd.Client)(nil)
	_ Workspaces = (*schematics.Client)(nil)
)

// Client adapts the platform clients to the reconciler.
type Client struct {
	director    Director
	workspaces  Workspaces
	description string
}

// New creates a Client. description is set on created catalogs and items.
func New(director Director, workspaces Workspaces, description string) *Client {
	return &Client{director: director, workspaces: workspaces, description: description}
}

// ListCatalogs implements reconcile.Remote.
func (c *Client) ListCatalogs(ctx context.Context, name string) ([]reconcile.CatalogRecord, error) {
	records, err := c.director.QueryCatalogs(ctx, name)
	if err != nil {
		return nil, err
	}
	out := make([]reconcile.CatalogRecord, 0, len(records))
	for _, r := range records {
		out = append(out, reconcile.CatalogRecord{ID: r.ID(), Name: r.Name, Href: r.Href})
	}
	return out, nil
}

// GetCatalogItems implements reconcile.Remote.
func (c *Client) GetCatalogItems(ctx context.Context, catalog reconcile.CatalogRecord) ([]string, error) {
	cat, err := c.director.GetCatalog(ctx, catalog.Href)
	if err != nil {
		return nil, err
	}
	return cat.ItemNames(), nil
}

// CreateCatalog implements reconcile.Remote.
func (c *Client) CreateCatalog(ctx context.Context, name string) (reconcile.CatalogRecord, []string, error) {
	cat, err := c.director.CreateCatalog(ctx, name, c.description)
	if err != nil {
		return reconcile.CatalogRecord{}, nil, err
	}

	id := vcd.IDFromURN(cat.ID)
	if id == "" {
		id = vcd.IDFromHref(cat.Href)
	}
	record := reconcile.CatalogRecord{ID: id, Name: cat.Name, Href: cat.Href}
	if record.Name == "" {
		record.Name = name
	}
	return record, taskRefs(cat.Tasks.List()), nil
}

// UploadCatalogItem implements reconcile.Remote.
func (c *Client) UploadCatalogItem(ctx context.Context, catalog reconcile.CatalogRecord, item reconcile.CatalogItem) ([]string, error) {
	_, started, err := c.director.UploadOVF(ctx, catalog.ID, item.Name, item.Source, c.description)
	if err != nil {
		return nil, err
	}
	return taskRefs(started), nil
}

// ListWorkspaces implements reconcile.Remote.
func (c *Client) ListWorkspaces(ctx context.Context, scope string) ([]reconcile.WorkspaceRecord, error) {
	list, err := c.workspaces.ListWorkspaces(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := make([]reconcile.WorkspaceRecord, 0, len(list))
	for _, w := range list {
		out = append(out, reconcile.WorkspaceRecord{ID: w.ID, Name: w.Name})
	}
	return out, nil
}

// CreateWorkspace implements reconcile.Remote.
func (c *Client) CreateWorkspace(ctx context.Context, spec reconcile.WorkspaceSpec) (reconcile.WorkspaceRecord, error) {
	ws, err := c.workspaces.CreateWorkspace(ctx, WorkspaceRequest(spec))
	if err != nil {
		return reconcile.WorkspaceRecord{}, err
	}
	return reconcile.WorkspaceRecord{ID: ws.ID, Name: ws.Name}, nil
}

// WorkspaceRequest converts a workspace spec to a Schematics creation
// request.
func WorkspaceRequest(spec reconcile.WorkspaceSpec) schematics.CreateWorkspaceRequest {
	vars := make([]schematics.Variable, 0, len(spec.Variables))
	for _, v := range spec.Variables {
		vars = append(vars, schematics.Variable{Name: v.Name, Value: v.Value, Secure: v.Secure})
	}
	return schematics.CreateWorkspaceRequest{
		Name:          spec.Name,
		Type:          []string{spec.TemplateType},
		Location:      spec.Location,
		Description:   spec.Description,
		ResourceGroup: spec.Scope,
		TemplateRepo:  schematics.TemplateRepo{URL: spec.Repository},
		TemplateData: []schematics.TemplateData{{
			Folder:        spec.Folder,
			Type:          spec.TemplateType,
			Compact:       true,
			Variablestore: vars,
		}},
	}
}

// ListIPSpaces implements reconcile.Remote.
func (c *Client) ListIPSpaces(ctx context.Context) ([]reconcile.IPSpaceRef, error) {
	spaces, err := c.director.ListIPSpaces(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]reconcile.IPSpaceRef, 0, len(spaces))
	for _, s := range spaces {
		out = append(out, reconcile.IPSpaceRef{ID: s.ID, Name: s.Name})
	}
	return out, nil
}

// GetIPSpaceRanges implements reconcile.Remote.
func (c *Client) GetIPSpaceRanges(ctx context.Context, id string) ([]string, error) {
	space, err := c.director.GetIPSpace(ctx, id)
	if err != nil {
		return nil, err
	}
	return space.IPSpaceInternalScope, nil
}

// ListIPAllocations implements reconcile.Remote.
func (c *Client) ListIPAllocations(ctx context.Context, id string) ([]string, error) {
	allocs, err := c.director.ListIPAllocations(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(allocs))
	for _, a := range allocs {
		out = append(out, a.Value)
	}
	return out, nil
}

// AllocateIP implements reconcile.Remote. The allocation is complete once
// the request is accepted.
func (c *Client) AllocateIP(ctx context.Context, id, address string) error {
	_, err := c.director.AllocateIP(ctx, id, address)
	return err
}

// PollTask implements tasks.Poller.
func (c *Client) PollTask(ctx context.Context, ref string) (tasks.Status, error) {
	task, err := c.director.GetTask(ctx, ref)
	if err != nil {
		return "", err
	}
	return tasks.Status(task.Status), nil
}

// MintToken implements reconcile.TokenMinter by creating a uniquely named
// Cloud Director API token.
func (c *Client) MintToken(ctx context.Context) (string, error) {
	name := TokenNamePrefix + uuid.NewString()
	token, err := c.director.CreateAPIToken(ctx, name)
	if err != nil {
		return "", fmt.Errorf("create API token %s: %w", name, err)
	}
	return token, nil
}

func taskRefs(list []vcd.Task) []string {
	refs := make([]string, 0, len(list))
	for _, t := range list {
		if t.Href != "" {
			refs = append(refs, t.Href)
		}
	}
	return refs
}
