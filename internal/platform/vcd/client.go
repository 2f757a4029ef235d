package vcd

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/IBM/vmware-l4-automation/internal/platform/rest"
)

const (
	apiVersion     = "38.1"
	acceptLegacy   = "application/*+json;version=" + apiVersion
	acceptCloudAPI = "application/json;version=" + apiVersion

	defaultPageSize = 128
)

// Session identifies the tenant a client acts for.
type Session struct {
	AccessToken string
	OrgName     string
	OrgID       string
}

// Client is a Cloud Director client bound to one tenant session.
type Client struct {
	rest     *rest.Client
	session  Session
	pageSize int
}

// NewClient creates a client for the director at directorURL
// (scheme and host only, e.g. https://dirw002.eu-de.vmware.cloud.ibm.com).
func NewClient(directorURL string, session Session, opts ...rest.Option) *Client {
	opts = append([]rest.Option{rest.WithBearer(session.AccessToken)}, opts...)
	return &Client{
		rest:     rest.New(directorURL, opts...),
		session:  session,
		pageSize: defaultPageSize,
	}
}

// DirectorURL returns the director base URL.
func (c *Client) DirectorURL() string {
	return c.rest.BaseURL()
}

// Session returns the tenant session the client uses.
func (c *Client) Session() Session {
	return c.session
}

func (c *Client) legacy(ctx context.Context, req rest.Request, out any) (*rest.Response, error) {
	if req.Header == nil {
		req.Header = http.Header{}
	}
	req.Header.Set("Accept", acceptLegacy)
	return c.rest.JSON(ctx, req, out)
}

func (c *Client) cloudAPI(ctx context.Context, req rest.Request, out any) (*rest.Response, error) {
	if req.Header == nil {
		req.Header = http.Header{}
	}
	req.Header.Set("Accept", acceptCloudAPI)
	return c.rest.JSON(ctx, req, out)
}

func getRequest(p string, q url.Values) rest.Request {
	return rest.Request{Method: http.MethodGet, Path: p, Query: q}
}

func postRequest(p string, body []byte, contentType string) rest.Request {
	return rest.Request{Method: http.MethodPost, Path: p, Body: body, ContentType: contentType}
}

// Reference points at another entity.
type Reference struct {
	Href string `json:"href"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}

// IDFromURN returns the trailing UUID of an URN such as
// "urn:vcloud:catalog:<uuid>".
func IDFromURN(urn string) string {
	if i := strings.LastIndexByte(urn, ':'); i >= 0 {
		return urn[i+1:]
	}
	return urn
}

// IDFromHref returns the last path element of an href.
func IDFromHref(href string) string {
	return path.Base(strings.TrimRight(href, "/"))
}
