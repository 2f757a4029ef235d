package reconcile

import "fmt"

// ActionKind tags the variant held by an Action.
type ActionKind string

// Action kinds, in execution order.
const (
	KindCreateCatalog     ActionKind = "CreateCatalog"
	KindUploadCatalogItem ActionKind = "UploadCatalogItem"
	KindCreateWorkspace   ActionKind = "CreateWorkspace"
	KindAllocatePublicIP  ActionKind = "AllocatePublicIP"
)

// Action is one planned change. Only the fields of its Kind are set.
type Action struct {
	Kind ActionKind

	Catalog   string        // CreateCatalog
	Item      CatalogItem   // UploadCatalogItem
	Workspace WorkspaceSpec // CreateWorkspace
	IPSpaceID string        // AllocatePublicIP
	Address   string        // AllocatePublicIP
}

// CreateCatalog returns an action creating the named catalog.
func CreateCatalog(name string) Action {
	return Action{Kind: KindCreateCatalog, Catalog: name}
}

// UploadCatalogItem returns an action importing item into the catalog.
func UploadCatalogItem(item CatalogItem) Action {
	return Action{Kind: KindUploadCatalogItem, Item: item}
}

// CreateWorkspace returns an action creating the workspace.
func CreateWorkspace(spec WorkspaceSpec) Action {
	return Action{Kind: KindCreateWorkspace, Workspace: spec}
}

// AllocatePublicIP returns an action allocating address from an IP space.
func AllocatePublicIP(ipSpaceID, address string) Action {
	return Action{Kind: KindAllocatePublicIP, IPSpaceID: ipSpaceID, Address: address}
}

// Target names the resource the action applies to.
func (a Action) Target() string {
	switch a.Kind {
	case KindCreateCatalog:
		return a.Catalog
	case KindUploadCatalogItem:
		return a.Item.Name
	case KindCreateWorkspace:
		return a.Workspace.Name
	case KindAllocatePublicIP:
		return a.Address
	default:
		return ""
	}
}

// ResourceType is the kind of resource the action manages.
func (a Action) ResourceType() string {
	switch a.Kind {
	case KindCreateCatalog:
		return "catalog"
	case KindUploadCatalogItem:
		return "catalog item"
	case KindCreateWorkspace:
		return "workspace"
	case KindAllocatePublicIP:
		return "public IP"
	default:
		return "unknown"
	}
}

func (a Action) String() string {
	return fmt.Sprintf("%s(%s)", a.Kind, a.Target())
}
