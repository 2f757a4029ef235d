package testing

import (
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/IBM/vmware-l4-automation/internal/platform/vcd"
)

// PublicSpaceID is the IP space used by DirectorFixture.
const PublicSpaceID = "urn:vcloud:ipSpace:public"

// DirectorFixture provides pre-configured director mocks for common lab
// states.
type DirectorFixture struct {
	mock *MockDirector
}

// NewDirectorFixture creates a new fixture.
func NewDirectorFixture() *DirectorFixture {
	return &DirectorFixture{mock: &MockDirector{}}
}

// Mock returns the underlying MockDirector for custom expectations.
func (f *DirectorFixture) Mock() *MockDirector {
	return f.mock
}

// WithPublicSpace registers one IP space covering cidr with the given
// allocations. Returns the same mock for chaining.
func (f *DirectorFixture) WithPublicSpace(cidr string, allocated ...string) *MockDirector {
	allocs := make([]vcd.IPAllocation, 0, len(allocated))
	for i, a := range allocated {
		allocs = append(allocs, vcd.IPAllocation{ID: fmt.Sprintf("alloc-%d", i), Type: vcd.FloatingIP, Value: a})
	}
	f.mock.On("ListIPSpaces", mock.Anything).Return([]vcd.IPSpace{{ID: PublicSpaceID, Name: "public"}}, nil)
	f.mock.On("GetIPSpace", mock.Anything, PublicSpaceID).Return(&vcd.IPSpace{
		ID:                   PublicSpaceID,
		Name:                 "public",
		IPSpaceInternalScope: []string{cidr},
	}, nil)
	f.mock.On("ListIPAllocations", mock.Anything, PublicSpaceID).Return(allocs, nil)
	return f.mock
}

// WithCatalog registers a catalog holding items. Returns the same mock for
// chaining.
func (f *DirectorFixture) WithCatalog(name, href string, items ...string) *MockDirector {
	refs := make([]vcd.Reference, 0, len(items))
	for _, it := range items {
		refs = append(refs, vcd.Reference{Name: it, Href: href + "/item/" + it})
	}
	cat := &vcd.Catalog{ID: "urn:vcloud:catalog:" + vcd.IDFromHref(href), Name: name, Href: href}
	cat.CatalogItems = &struct {
		CatalogItem []vcd.Reference `json:"catalogItem"`
	}{CatalogItem: refs}

	f.mock.On("QueryCatalogs", mock.Anything, name).Return([]vcd.CatalogRecord{{Name: name, Href: href}}, nil)
	f.mock.On("GetCatalog", mock.Anything, href).Return(cat, nil)
	return f.mock
}

// WithoutCatalog registers an empty catalog query for name.
func (f *DirectorFixture) WithoutCatalog(name string) *MockDirector {
	f.mock.On("QueryCatalogs", mock.Anything, name).Return([]vcd.CatalogRecord{}, nil)
	return f.mock
}
