package reconcile

import (
	"context"
	"fmt"

	"github.com/IBM/vmware-l4-automation/internal/observability"
	"github.com/IBM/vmware-l4-automation/internal/util/netutil"
)

const phaseProbe = "probe"

// Prober reads the remote state relevant to a DesiredState. Queries run
// sequentially.
type Prober struct {
	remote   Remote
	observer observability.Observer
}

// NewProber creates a Prober. A nil observer discards events.
func NewProber(remote Remote, observer observability.Observer) *Prober {
	if observer == nil {
		observer = observability.Nop()
	}
	return &Prober{remote: remote, observer: observer}
}

// Probe builds a Snapshot for desired. Any failed query aborts the probe
// with a *RemoteQueryError.
func (p *Prober) Probe(ctx context.Context, desired DesiredState) (*Snapshot, error) {
	snap := &Snapshot{}

	catalog, err := p.findCatalog(ctx, desired.Catalog)
	if err != nil {
		return nil, err
	}
	snap.Catalog = catalog

	missing, err := p.missingItems(ctx, catalog, desired.Items)
	if err != nil {
		return nil, err
	}
	snap.MissingItems = missing

	workspace, err := p.findWorkspace(ctx, desired.Workspace)
	if err != nil {
		return nil, err
	}
	snap.Workspace = workspace

	spaceID, allocated, err := p.resolveAddress(ctx, desired.PublicIP)
	if err != nil {
		return nil, err
	}
	snap.IPSpaceID = spaceID
	snap.IPAllocated = allocated

	return snap, nil
}

func (p *Prober) findCatalog(ctx context.Context, name string) (*CatalogRecord, error) {
	records, err := p.remote.ListCatalogs(ctx, name)
	if err != nil {
		return nil, &RemoteQueryError{Op: "list catalogs", Err: err}
	}

	var matches []CatalogRecord
	for _, r := range records {
		if r.Name == name {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 0:
		observability.LogResourceMissing(p.observer, phaseProbe, "catalog", name)
		return nil, nil
	case 1:
		observability.LogResourceExists(p.observer, phaseProbe, "catalog", name, matches[0].ID)
		return &matches[0], nil
	default:
		return nil, &AmbiguousResourceError{Kind: "catalog", Name: name, Count: len(matches)}
	}
}

// missingItems returns the desired items not present in catalog, in
// desired order.
func (p *Prober) missingItems(ctx context.Context, catalog *CatalogRecord, items []CatalogItem) ([]CatalogItem, error) {
	if catalog == nil {
		return append([]CatalogItem(nil), items...), nil
	}

	names, err := p.remote.GetCatalogItems(ctx, *catalog)
	if err != nil {
		return nil, &RemoteQueryError{Op: "get catalog items", Err: err}
	}

	present := make(map[string]struct{}, len(names))
	for _, n := range names {
		present[n] = struct{}{}
	}

	var missing []CatalogItem
	for _, item := range items {
		if _, ok := present[item.Name]; ok {
			observability.LogResourceExists(p.observer, phaseProbe, "catalog item", item.Name, catalog.ID)
			continue
		}
		observability.LogResourceMissing(p.observer, phaseProbe, "catalog item", item.Name)
		missing = append(missing, item)
	}
	return missing, nil
}

func (p *Prober) findWorkspace(ctx context.Context, spec WorkspaceSpec) (*WorkspaceRecord, error) {
	records, err := p.remote.ListWorkspaces(ctx, spec.Scope)
	if err != nil {
		return nil, &RemoteQueryError{Op: "list workspaces", Err: err}
	}

	var matches []WorkspaceRecord
	for _, r := range records {
		if r.Name == spec.Name {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 0:
		observability.LogResourceMissing(p.observer, phaseProbe, "workspace", spec.Name)
		return nil, nil
	case 1:
		observability.LogResourceExists(p.observer, phaseProbe, "workspace", spec.Name, matches[0].ID)
		return &matches[0], nil
	default:
		return nil, &AmbiguousResourceError{Kind: "workspace", Name: spec.Name, Count: len(matches)}
	}
}

// resolveAddress finds the first IP space, in enumeration order, whose
// internal ranges contain address, and whether address is already
// allocated there.
func (p *Prober) resolveAddress(ctx context.Context, address string) (string, bool, error) {
	spaces, err := p.remote.ListIPSpaces(ctx)
	if err != nil {
		return "", false, &RemoteQueryError{Op: "list IP spaces", Err: err}
	}

	var spaceID string
	for _, space := range spaces {
		ranges, err := p.remote.GetIPSpaceRanges(ctx, space.ID)
		if err != nil {
			return "", false, &RemoteQueryError{Op: "get IP space " + space.ID, Err: err}
		}

		ok, err := netutil.RangeContains(ranges, address)
		if err != nil {
			return "", false, &RemoteQueryError{
				Op:  "get IP space " + space.ID,
				Err: fmt.Errorf("malformed internal scope: %w", err),
			}
		}
		if ok {
			spaceID = space.ID
			break
		}
	}
	if spaceID == "" {
		return "", false, &NoIPSpaceError{Address: address}
	}

	allocations, err := p.remote.ListIPAllocations(ctx, spaceID)
	if err != nil {
		return "", false, &RemoteQueryError{Op: "list IP allocations", Err: err}
	}

	for _, a := range allocations {
		if a == address {
			observability.LogResourceExists(p.observer, phaseProbe, "public IP", address, spaceID)
			return spaceID, true, nil
		}
	}
	observability.LogResourceMissing(p.observer, phaseProbe, "public IP", address)
	return spaceID, false, nil
}
