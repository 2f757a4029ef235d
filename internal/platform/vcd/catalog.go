package vcd

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CatalogRecord is a catalog query result.
type CatalogRecord struct {
	Name                  string `json:"name"`
	Href                  string `json:"href"`
	OwnerName             string `json:"ownerName,omitempty"`
	NumberOfVAppTemplates int    `json:"numberOfVAppTemplates,omitempty"`
}

// ID returns the catalog UUID.
func (r CatalogRecord) ID() string {
	return IDFromHref(r.Href)
}

// Catalog is a catalog with its item references.
type Catalog struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Href         string `json:"href"`
	CatalogItems *struct {
		CatalogItem []Reference `json:"catalogItem"`
	} `json:"catalogItems"`
	Tasks *TaskList `json:"tasks,omitempty"`
}

// ItemNames returns the names of the catalog's items.
func (c *Catalog) ItemNames() []string {
	if c.CatalogItems == nil {
		return nil
	}
	names := make([]string, 0, len(c.CatalogItems.CatalogItem))
	for _, ref := range c.CatalogItems.CatalogItem {
		names = append(names, ref.Name)
	}
	return names
}

type queryPage[T any] struct {
	Total  int `json:"total"`
	Page   int `json:"page"`
	Record []T `json:"record"`
}

// QueryCatalogs returns every catalog whose name equals name, following
// query pages until all records are read.
func (c *Client) QueryCatalogs(ctx context.Context, name string) ([]CatalogRecord, error) {
	var records []CatalogRecord

	for page := 1; ; page++ {
		var out queryPage[CatalogRecord]
		_, err := c.legacy(ctx, getRequest("api/catalogs/query", url.Values{
			"filter":   {"name==" + name},
			"format":   {"records"},
			"pageSize": {strconv.Itoa(c.pageSize)},
			"page":     {strconv.Itoa(page)},
		}), &out)
		if err != nil {
			return nil, fmt.Errorf("query catalogs named %q: %w", name, err)
		}

		records = append(records, out.Record...)
		if page*c.pageSize >= out.Total || len(out.Record) == 0 {
			break
		}
	}

	return records, nil
}

// GetCatalog fetches the catalog at href.
func (c *Client) GetCatalog(ctx context.Context, href string) (*Catalog, error) {
	var cat Catalog
	if _, err := c.legacy(ctx, getRequest(href, nil), &cat); err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	return &cat, nil
}

// CreateCatalog creates a catalog in the session's org. The returned catalog
// carries the creation task.
func (c *Client) CreateCatalog(ctx context.Context, name, description string) (*Catalog, error) {
	body, err := marshalXML(adminCatalogParams{Name: name, Description: description})
	if err != nil {
		return nil, err
	}

	var cat Catalog
	_, err = c.legacy(ctx, postRequest(
		"api/admin/org/"+c.session.OrgID+"/catalogs", body, contentTypeAdminCatalog,
	), &cat)
	if err != nil {
		return nil, fmt.Errorf("create catalog %q: %w", name, err)
	}
	return &cat, nil
}

// CatalogItem is a catalog item as returned by an upload.
type CatalogItem struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Href   string    `json:"href"`
	Entity Reference `json:"entity"`
	Tasks  *TaskList `json:"tasks,omitempty"`
}

type vAppTemplate struct {
	Href  string    `json:"href"`
	Tasks *TaskList `json:"tasks,omitempty"`
}

// UploadOVF imports the OVF at sourceHref into the catalog as itemName and
// returns the import tasks. When the upload response carries no task, the
// tasks of the created vApp template are used.
func (c *Client) UploadOVF(ctx context.Context, catalogID, itemName, sourceHref, description string) (*CatalogItem, []Task, error) {
	body, err := marshalXML(uploadVAppTemplateParams{
		Name:        itemName,
		SourceHref:  sourceHref,
		Description: description,
	})
	if err != nil {
		return nil, nil, err
	}

	var item CatalogItem
	_, err = c.legacy(ctx, postRequest(
		"api/catalog/"+catalogID+"/action/upload", body, contentTypeUploadParams,
	), &item)
	if err != nil {
		return nil, nil, fmt.Errorf("upload %q to catalog %s: %w", itemName, catalogID, err)
	}

	if tasks := item.Tasks.List(); len(tasks) > 0 {
		return &item, tasks, nil
	}
	if item.Entity.Href == "" {
		return &item, nil, nil
	}

	var tmpl vAppTemplate
	if _, err := c.legacy(ctx, getRequest(item.Entity.Href, nil), &tmpl); err != nil {
		return &item, nil, fmt.Errorf("get template for %q: %w", itemName, err)
	}
	return &item, tmpl.Tasks.List(), nil
}
