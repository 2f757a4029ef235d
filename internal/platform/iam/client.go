// Package iam exchanges IBM Cloud API keys for IAM access tokens.
package iam

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/IBM/vmware-l4-automation/internal/platform/rest"
)

// DefaultEndpoint is the public IBM Cloud IAM endpoint.
const DefaultEndpoint = "https://iam.cloud.ibm.com"

const apiKeyGrantType = "urn:ibm:params:oauth:grant-type:apikey"

var (
	// ErrEmptyAPIKey is returned when no API key is supplied.
	ErrEmptyAPIKey = errors.New("iam: api key is empty")
	// ErrNoAccessToken is returned when IAM answers without a token.
	ErrNoAccessToken = errors.New("iam: response did not contain an access token")
)

// Token is an IAM access token.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Expiration   int64  `json:"expiration"`
}

// Client talks to the IAM identity service.
type Client struct {
	rest *rest.Client
}

// NewClient creates an IAM client for endpoint.
func NewClient(endpoint string, opts ...rest.Option) *Client {
	opts = append([]rest.Option{rest.WithHeader("Accept", "application/json")}, opts...)
	return &Client{rest: rest.New(endpoint, opts...)}
}

// RequestToken exchanges apiKey for an access token.
func (c *Client) RequestToken(ctx context.Context, apiKey string) (*Token, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}

	form := url.Values{
		"grant_type": {apiKeyGrantType},
		"apikey":     {apiKey},
	}

	var tok Token
	if _, err := c.rest.JSON(ctx, rest.Request{
		Method:      http.MethodPost,
		Path:        "identity/token",
		Body:        []byte(form.Encode()),
		ContentType: "application/x-www-form-urlencoded",
	}, &tok); err != nil {
		return nil, fmt.Errorf("request IAM token: %w", err)
	}

	if tok.AccessToken == "" {
		return nil, ErrNoAccessToken
	}
	return &tok, nil
}
