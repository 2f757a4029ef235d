package reconcile

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/IBM/vmware-l4-automation/internal/util/netutil"
)

// DesiredState is the set of resources a lab needs.
type DesiredState struct {
	Catalog   string
	Items     []CatalogItem
	Workspace WorkspaceSpec
	PublicIP  string
}

// CatalogItem is an image template and the location it is imported from.
type CatalogItem struct {
	Name   string
	Source string
}

// WorkspaceSpec fully describes the automation workspace.
type WorkspaceSpec struct {
	Name         string
	Scope        string // resource group
	Repository   string
	Folder       string
	TemplateType string
	Location     string
	Description  string
	Variables    []Variable

	// TokenVariable names the secure variable whose value is minted right
	// before the workspace is created.
	TokenVariable string
}

// Variable is one workspace input.
type Variable struct {
	Name   string
	Value  string
	Secure bool
}

const redacted = "********"

// DisplayValue returns the value, or a mask for secure variables.
func (v Variable) DisplayValue() string {
	if v.Secure {
		return redacted
	}
	return v.Value
}

func (v Variable) String() string {
	return v.Name + "=" + v.DisplayValue()
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (v Variable) MarshalZerologObject(e *zerolog.Event) {
	e.Str("name", v.Name).Str("value", v.DisplayValue()).Bool("secure", v.Secure)
}

// Validate checks the invariants the planner relies on.
func (d DesiredState) Validate() error {
	if d.Catalog == "" {
		return fmt.Errorf("%w: catalog name is empty", ErrInvalidDesiredState)
	}

	seen := make(map[string]struct{}, len(d.Items))
	for _, item := range d.Items {
		if item.Name == "" {
			return fmt.Errorf("%w: catalog item with empty name", ErrInvalidDesiredState)
		}
		if _, dup := seen[item.Name]; dup {
			return fmt.Errorf("%w: duplicate catalog item %q", ErrInvalidDesiredState, item.Name)
		}
		seen[item.Name] = struct{}{}
	}

	if d.Workspace.Name == "" {
		return fmt.Errorf("%w: workspace name is empty", ErrInvalidDesiredState)
	}

	if _, err := netutil.ParseAddress(d.PublicIP); err != nil {
		return fmt.Errorf("%w: public IP: %v", ErrInvalidDesiredState, err)
	}

	return nil
}

// CatalogRecord identifies an existing catalog.
type CatalogRecord struct {
	ID   string
	Name string
	Href string
}

// WorkspaceRecord identifies an existing workspace.
type WorkspaceRecord struct {
	ID   string
	Name string
}

// IPSpaceRef identifies an IP space.
type IPSpaceRef struct {
	ID   string
	Name string
}

// Snapshot is the normalized remote state relevant to a DesiredState.
type Snapshot struct {
	Catalog      *CatalogRecord
	MissingItems []CatalogItem
	Workspace    *WorkspaceRecord
	IPSpaceID    string
	IPAllocated  bool
}
