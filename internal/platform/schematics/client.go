// Package schematics is a client for the IBM Cloud Schematics workspace API.
package schematics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/IBM/vmware-l4-automation/internal/platform/rest"
)

// DefaultEndpoint is the global Schematics API endpoint.
const DefaultEndpoint = "https://schematics.cloud.ibm.com"

const listLimit = 100

// Variable is one entry of a workspace variable store.
type Variable struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Secure      bool   `json:"secure,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// Workspace is a Schematics workspace.
type Workspace struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ResourceGroup string   `json:"resource_group"`
	Location      string   `json:"location"`
	Status        string   `json:"status"`
	Type          []string `json:"type"`
}

// TemplateRepo points at the Git repository holding the template.
type TemplateRepo struct {
	URL string `json:"url"`
}

// TemplateData describes the template inside the repository.
type TemplateData struct {
	Folder        string     `json:"folder"`
	Type          string     `json:"type"`
	Compact       bool       `json:"compact"`
	Variablestore []Variable `json:"variablestore"`
}

// CreateWorkspaceRequest is the body of a workspace creation.
type CreateWorkspaceRequest struct {
	Name          string         `json:"name"`
	Type          []string       `json:"type"`
	Location      string         `json:"location"`
	Description   string         `json:"description"`
	ResourceGroup string         `json:"resource_group"`
	Tags          []string       `json:"tags"`
	TemplateRepo  TemplateRepo   `json:"template_repo"`
	TemplateData  []TemplateData `json:"template_data"`
}

// Client calls the Schematics API with an IAM token.
type Client struct {
	rest *rest.Client
}

// NewClient creates a Schematics client.
func NewClient(endpoint, iamToken string, opts ...rest.Option) *Client {
	opts = append([]rest.Option{
		rest.WithBearer(iamToken),
		rest.WithHeader("Accept", "application/json"),
	}, opts...)
	return &Client{rest: rest.New(endpoint, opts...)}
}

// ListWorkspaces returns every workspace in resourceGroup. An empty
// resource group lists all workspaces the token can see.
func (c *Client) ListWorkspaces(ctx context.Context, resourceGroup string) ([]Workspace, error) {
	header := http.Header{}
	if resourceGroup != "" {
		header.Set("resource_group", resourceGroup)
	}

	var all []Workspace
	for offset := 0; ; {
		var out struct {
			Offset     int         `json:"offset"`
			Limit      int         `json:"limit"`
			Count      int         `json:"count"`
			Workspaces []Workspace `json:"workspaces"`
		}
		_, err := c.rest.JSON(ctx, rest.Request{
			Method: http.MethodGet,
			Path:   "v1/workspaces",
			Query: url.Values{
				"offset": {strconv.Itoa(offset)},
				"limit":  {strconv.Itoa(listLimit)},
			},
			Header: header,
		}, &out)
		if err != nil {
			return nil, fmt.Errorf("list workspaces: %w", err)
		}

		all = append(all, out.Workspaces...)
		offset += len(out.Workspaces)
		if len(out.Workspaces) == 0 || offset >= out.Count {
			return all, nil
		}
	}
}

// CreateWorkspace creates a workspace. Creation is synchronous from the
// caller's point of view; the returned workspace carries its id.
func (c *Client) CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (*Workspace, error) {
	if req.Tags == nil {
		req.Tags = []string{}
	}
	body, err := rest.EncodeJSON(req)
	if err != nil {
		return nil, err
	}

	var ws Workspace
	if _, err := c.rest.JSON(ctx, rest.Request{
		Method:      http.MethodPost,
		Path:        "v1/workspaces",
		Body:        body,
		ContentType: "application/json",
	}, &ws); err != nil {
		return nil, fmt.Errorf("create workspace %s: %w", req.Name, err)
	}
	return &ws, nil
}
