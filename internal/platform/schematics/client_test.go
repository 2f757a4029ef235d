package schematics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListWorkspaces_Paging(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/workspaces", r.URL.Path)
		assert.Equal(t, "rg-1", r.Header.Get("resource_group"))
		assert.Equal(t, "Bearer iam", r.Header.Get("Authorization"))
		switch r.URL.Query().Get("offset") {
		case "0":
			_, _ = w.Write([]byte(`{"offset":0,"limit":100,"count":2,"workspaces":[{"id":"w1","name":"petclinic-eu-de"}]}`))
		case "1":
			_, _ = w.Write([]byte(`{"offset":1,"limit":100,"count":2,"workspaces":[{"id":"w2","name":"other"}]}`))
		default:
			t.Errorf("unexpected offset %s", r.URL.Query().Get("offset"))
		}
	}))
	defer srv.Close()

	ws, err := NewClient(srv.URL, "iam").ListWorkspaces(context.Background(), "rg-1")
	require.NoError(t, err)
	require.Len(t, ws, 2)
	assert.Equal(t, "petclinic-eu-de", ws[0].Name)
	assert.Equal(t, "w2", ws[1].ID)
}

func TestCreateWorkspace(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)

		var req CreateWorkspaceRequest
		assert.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "petclinic-eu-de", req.Name)
		assert.Equal(t, []string{"terraform_v1.6"}, req.Type)
		assert.Equal(t, "rg-1", req.ResourceGroup)
		assert.Equal(t, []string{}, req.Tags)
		if assert.Len(t, req.TemplateData, 1) {
			assert.True(t, req.TemplateData[0].Compact)
			assert.Equal(t, "petclinic", req.TemplateData[0].Folder)
			assert.Contains(t, req.TemplateData[0].Variablestore, Variable{Name: "vmware_api_token", Value: "tok", Secure: true})
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = fmt.Fprintf(w, `{"id":"petclinic-eu-de.soW.abc","name":%q}`, req.Name)
	}))
	defer srv.Close()

	ws, err := NewClient(srv.URL, "iam").CreateWorkspace(context.Background(), CreateWorkspaceRequest{
		Name:          "petclinic-eu-de",
		Type:          []string{"terraform_v1.6"},
		Location:      "us-south",
		ResourceGroup: "rg-1",
		TemplateRepo:  TemplateRepo{URL: "https://github.com/IBM/vmware-l4-automation.git"},
		TemplateData: []TemplateData{{
			Folder:  "petclinic",
			Type:    "terraform_v1.6",
			Compact: true,
			Variablestore: []Variable{
				{Name: "ibmcloud_region", Value: "eu-de"},
				{Name: "vmware_api_token", Value: "tok", Secure: true},
			},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "petclinic-eu-de.soW.abc", ws.ID)
}
