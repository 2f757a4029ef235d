// Package vcfaas is a client for the IBM Cloud VCFaaS API (director sites
// and virtual data centers) and for opening Cloud Director sessions with an
// IAM token.
package vcfaas

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/IBM/vmware-l4-automation/internal/platform/rest"
)

// SessionTokenHeader carries the VCD access token on session responses.
const SessionTokenHeader = "X-VMWARE-VCLOUD-ACCESS-TOKEN"

const sessionAccept = "application/*;version=39.0"

// ErrNoSessionToken is returned when a session response lacks the token header.
var ErrNoSessionToken = errors.New("vcfaas: session response has no access token")

// RegionEndpoint returns the VCFaaS API endpoint of region.
func RegionEndpoint(region string) string {
	return fmt.Sprintf("https://api.%s.vmware.cloud.ibm.com", region)
}

// DirectorSite is a VCFaaS director site.
type DirectorSite struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// SiteRef is the director site reference embedded in a VDC.
type SiteRef struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ResourceGroupRef identifies an IBM Cloud resource group.
type ResourceGroupRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Edge is a VDC edge gateway.
type Edge struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	PublicIPs []string `json:"public_ips"`
}

// VDC is a VCFaaS virtual data center.
type VDC struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	OrgName       string           `json:"org_name"`
	DirectorSite  SiteRef          `json:"director_site"`
	ResourceGroup ResourceGroupRef `json:"resource_group"`
	Edges         []Edge           `json:"edges"`
}

// Session is an open Cloud Director session.
type Session struct {
	AccessToken string
	OrgID       string
	OrgName     string
}

// Client calls the VCFaaS API with an IAM token.
type Client struct {
	rest     *rest.Client
	iamToken string
}

// NewClient creates a client for endpoint authenticated with iamToken.
func NewClient(endpoint, iamToken string, opts ...rest.Option) *Client {
	opts = append([]rest.Option{
		rest.WithBearer(iamToken),
		rest.WithHeader("Accept", "application/json"),
	}, opts...)
	return &Client{rest: rest.New(endpoint, opts...), iamToken: iamToken}
}

// ListDirectorSites returns the director sites visible to the account.
func (c *Client) ListDirectorSites(ctx context.Context) ([]DirectorSite, error) {
	var out struct {
		DirectorSites []DirectorSite `json:"director_sites"`
	}
	if _, err := c.rest.JSON(ctx, rest.Request{Method: http.MethodGet, Path: "v1/director_sites"}, &out); err != nil {
		return nil, fmt.Errorf("list director sites: %w", err)
	}
	return out.DirectorSites, nil
}

// ListVDCs returns the virtual data centers in the region.
func (c *Client) ListVDCs(ctx context.Context) ([]VDC, error) {
	var out struct {
		VDCs []VDC `json:"vdcs"`
	}
	if _, err := c.rest.JSON(ctx, rest.Request{Method: http.MethodGet, Path: "v1/vdcs"}, &out); err != nil {
		return nil, fmt.Errorf("list VDCs: %w", err)
	}
	return out.VDCs, nil
}

// Session opens a Cloud Director session for org at directorURL using the
// IAM token and returns the VCD bearer token and the org id.
func (c *Client) Session(ctx context.Context, directorURL, org string) (*Session, error) {
	var out struct {
		Org struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"org"`
	}

	header := http.Header{}
	header.Set("Authorization", fmt.Sprintf("Bearer %s; org=%s", c.iamToken, org))
	header.Set("Accept", sessionAccept)

	resp, err := c.rest.JSON(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   strings.TrimRight(directorURL, "/") + "/cloudapi/1.0.0/sessions",
		Header: header,
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("open director session for org %s: %w", org, err)
	}

	token := resp.Header.Get(SessionTokenHeader)
	if token == "" {
		return nil, ErrNoSessionToken
	}

	return &Session{
		AccessToken: token,
		OrgID:       orgUUID(out.Org.ID),
		OrgName:     org,
	}, nil
}

// orgUUID strips the URN prefix from an org id ("urn:vcloud:org:<uuid>").
func orgUUID(id string) string {
	if i := strings.LastIndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return id
}
