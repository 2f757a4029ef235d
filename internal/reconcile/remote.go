package reconcile

import "context"

// Remote is the control-plane capability set used by the prober and the
// executor. Methods that start asynchronous work return task references.
type Remote interface {
	ListCatalogs(ctx context.Context, name string) ([]CatalogRecord, error)
	GetCatalogItems(ctx context.Context, catalog CatalogRecord) ([]string, error)
	CreateCatalog(ctx context.Context, name string) (CatalogRecord, []string, error)
	UploadCatalogItem(ctx context.Context, catalog CatalogRecord, item CatalogItem) ([]string, error)

	ListWorkspaces(ctx context.Context, scope string) ([]WorkspaceRecord, error)
	CreateWorkspace(ctx context.Context, spec WorkspaceSpec) (WorkspaceRecord, error)

	ListIPSpaces(ctx context.Context) ([]IPSpaceRef, error)
	GetIPSpaceRanges(ctx context.Context, id string) ([]string, error)
	ListIPAllocations(ctx context.Context, id string) ([]string, error)
	AllocateIP(ctx context.Context, id, address string) error
}

// TokenMinter produces the secret embedded in the workspace token variable.
type TokenMinter interface {
	MintToken(ctx context.Context) (string, error)
}

// TokenMinterFunc adapts a function to TokenMinter.
type TokenMinterFunc func(ctx context.Context) (string, error)

// MintToken implements TokenMinter.
func (f TokenMinterFunc) MintToken(ctx context.Context) (string, error) {
	return f(ctx)
}
