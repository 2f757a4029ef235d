package vcd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/IBM/vmware-l4-automation/internal/platform/rest"
)

// FloatingIP is the allocation type for single public addresses.
const FloatingIP = "FLOATING_IP"

// IPSpace is a pool of addresses managed by Cloud Director.
type IPSpace struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Type                 string   `json:"type,omitempty"`
	IPSpaceInternalScope []string `json:"ipSpaceInternalScope"`
	IPSpaceExternalScope string   `json:"ipSpaceExternalScope,omitempty"`
}

// IPAllocation is an address allocated from an IP space.
type IPAllocation struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Value string `json:"value"`
	Usage string `json:"usageState,omitempty"`
}

type cloudAPIPage[T any] struct {
	ResultTotal int `json:"resultTotal"`
	PageCount   int `json:"pageCount"`
	Page        int `json:"page"`
	PageSize    int `json:"pageSize"`
	Values      []T `json:"values"`
}

func listAll[T any](ctx context.Context, c *Client, p string) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		var out cloudAPIPage[T]
		_, err := c.cloudAPI(ctx, getRequest(p, url.Values{
			"page":     {strconv.Itoa(page)},
			"pageSize": {strconv.Itoa(c.pageSize)},
		}), &out)
		if err != nil {
			return nil, err
		}
		all = append(all, out.Values...)
		if page >= out.PageCount || len(out.Values) == 0 {
			return all, nil
		}
	}
}

// ListIPSpaces returns the IP spaces visible to the tenant.
func (c *Client) ListIPSpaces(ctx context.Context) ([]IPSpace, error) {
	spaces, err := listAll[IPSpace](ctx, c, "cloudapi/1.0.0/ipSpaces")
	if err != nil {
		return nil, fmt.Errorf("list IP spaces: %w", err)
	}
	return spaces, nil
}

// GetIPSpace returns one IP space including its internal scope.
func (c *Client) GetIPSpace(ctx context.Context, id string) (*IPSpace, error) {
	var space IPSpace
	if _, err := c.cloudAPI(ctx, getRequest("cloudapi/1.0.0/ipSpaces/"+id, nil), &space); err != nil {
		return nil, fmt.Errorf("get IP space %s: %w", id, err)
	}
	return &space, nil
}

// ListIPAllocations returns the allocations in an IP space.
func (c *Client) ListIPAllocations(ctx context.Context, id string) ([]IPAllocation, error) {
	allocs, err := listAll[IPAllocation](ctx, c, "cloudapi/1.0.0/ipSpaces/"+id+"/allocations")
	if err != nil {
		return nil, fmt.Errorf("list allocations of IP space %s: %w", id, err)
	}
	return allocs, nil
}

// AllocateIP requests address as a floating IP from the IP space and
// returns the task href from the Location header, if any.
func (c *Client) AllocateIP(ctx context.Context, id, address string) (string, error) {
	body, err := rest.EncodeJSON(map[string]any{
		"type":     FloatingIP,
		"quantity": 1,
		"value":    address,
	})
	if err != nil {
		return "", err
	}

	resp, err := c.cloudAPI(ctx, rest.Request{
		Method:      http.MethodPost,
		Path:        "cloudapi/1.0.0/ipSpaces/" + id + "/allocate",
		Body:        body,
		ContentType: "application/json",
	}, nil)
	if err != nil {
		return "", fmt.Errorf("allocate %s from IP space %s: %w", address, id, err)
	}
	return resp.Header.Get("Location"), nil
}
