package vcd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/IBM/vmware-l4-automation/internal/platform/rest"
)

// ErrNoRefreshToken is returned when the token exchange yields no token.
var ErrNoRefreshToken = errors.New("vcd: token exchange returned no refresh token")

type oauthClient struct {
	ClientID   string   `json:"client_id"`
	ClientName string   `json:"client_name"`
	GrantTypes []string `json:"grant_types"`
}

// CreateAPIToken registers an OAuth client called name in the tenant and
// exchanges the current session for its refresh token, which is the API
// token value.
func (c *Client) CreateAPIToken(ctx context.Context, name string) (string, error) {
	body, err := rest.EncodeJSON(map[string]string{"client_name": name})
	if err != nil {
		return "", err
	}

	base := "oauth/tenant/" + url.PathEscape(c.session.OrgName)

	var reg oauthClient
	if _, err := c.rest.JSON(ctx, rest.Request{
		Method:      http.MethodPost,
		Path:        base + "/register",
		Header:      c.tenantHeader(),
		Body:        body,
		ContentType: "application/json",
	}, &reg); err != nil {
		return "", fmt.Errorf("register API client %s: %w", name, err)
	}
	if reg.ClientID == "" || len(reg.GrantTypes) == 0 {
		return "", fmt.Errorf("register API client %s: incomplete registration", name)
	}

	form := url.Values{
		"grant_type": {reg.GrantTypes[0]},
		"client_id":  {reg.ClientID},
		"assertion":  {c.session.AccessToken},
	}

	var tok struct {
		RefreshToken string `json:"refresh_token"`
	}
	if _, err := c.rest.JSON(ctx, rest.Request{
		Method:      http.MethodPost,
		Path:        base + "/token",
		Header:      c.tenantHeader(),
		Body:        []byte(form.Encode()),
		ContentType: "application/x-www-form-urlencoded",
	}, &tok); err != nil {
		return "", fmt.Errorf("exchange API token %s: %w", name, err)
	}
	if tok.RefreshToken == "" {
		return "", ErrNoRefreshToken
	}

	return tok.RefreshToken, nil
}

func (c *Client) tenantHeader() http.Header {
	h := http.Header{}
	h.Set("Accept", acceptCloudAPI)
	h.Set("X-VMWARE-VCLOUD-AUTH-CONTEXT", c.session.OrgName)
	h.Set("X-VMWARE-VCLOUD-TENANT-CONTEXT", c.session.OrgID)
	return h
}
