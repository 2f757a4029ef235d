package testing

import (
	"slices"

	"github.com/IBM/vmware-l4-automation/internal/reconcile"
)

// DesiredStateBuilder provides a fluent interface for constructing test
// desired states. Each method returns a new builder (immutable) for
// chaining.
type DesiredStateBuilder struct {
	d reconcile.DesiredState
}

// NewDesiredStateBuilder creates a builder for a small lab with sensible
// defaults.
func NewDesiredStateBuilder() *DesiredStateBuilder {
	return &DesiredStateBuilder{
		d: reconcile.DesiredState{
			Catalog: "PetClinic",
			Items: []reconcile.CatalogItem{
				{Name: "A", Source: "https://cos.test/labs/a.ovf"},
			},
			Workspace: reconcile.WorkspaceSpec{
				Name:         "petclinic-us-south",
				Scope:        "rg-1",
				Repository:   "https://github.com/IBM/vmware-l4-automation.git",
				Folder:       "petclinic",
				TemplateType: "terraform_v1.6",
				Location:     "us-south",
				Description:  "Created by automation",
				Variables: []reconcile.Variable{
					{Name: "ibmcloud_api_key", Value: "api-key", Secure: true},
					{Name: "ibmcloud_region", Value: "us-south"},
				},
				TokenVariable: "vmware_api_token",
			},
			PublicIP: "10.0.0.5",
		},
	}
}

// WithCatalog sets the catalog name.
func (b *DesiredStateBuilder) WithCatalog(name string) *DesiredStateBuilder {
	nb := b.clone()
	nb.d.Catalog = name
	return nb
}

// WithItems replaces the catalog items. Sources are derived from names.
func (b *DesiredStateBuilder) WithItems(names ...string) *DesiredStateBuilder {
	nb := b.clone()
	nb.d.Items = nil
	for _, n := range names {
		nb.d.Items = append(nb.d.Items, reconcile.CatalogItem{Name: n, Source: "https://cos.test/labs/" + n + ".ovf"})
	}
	return nb
}

// WithWorkspace sets the workspace name and scope.
func (b *DesiredStateBuilder) WithWorkspace(name, scope string) *DesiredStateBuilder {
	nb := b.clone()
	nb.d.Workspace.Name = name
	nb.d.Workspace.Scope = scope
	return nb
}

// WithVariable appends a workspace variable.
func (b *DesiredStateBuilder) WithVariable(name, value string, secure bool) *DesiredStateBuilder {
	nb := b.clone()
	nb.d.Workspace.Variables = append(nb.d.Workspace.Variables, reconcile.Variable{Name: name, Value: value, Secure: secure})
	return nb
}

// WithPublicIP sets the target address.
func (b *DesiredStateBuilder) WithPublicIP(ip string) *DesiredStateBuilder {
	nb := b.clone()
	nb.d.PublicIP = ip
	return nb
}

// Build returns the desired state.
func (b *DesiredStateBuilder) Build() reconcile.DesiredState {
	return b.clone().d
}

func (b *DesiredStateBuilder) clone() *DesiredStateBuilder {
	d := b.d
	d.Items = slices.Clone(b.d.Items)
	d.Workspace.Variables = slices.Clone(b.d.Workspace.Variables)
	return &DesiredStateBuilder{d: d}
}
