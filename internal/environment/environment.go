// Package environment resolves the VCFaaS target of a run (director site,
// VDC, organization and public address) and builds the desired state of a
// lab for it.
package environment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/IBM/vmware-l4-automation/internal/config"
	"github.com/IBM/vmware-l4-automation/internal/observability"
	"github.com/IBM/vmware-l4-automation/internal/platform/iam"
	"github.com/IBM/vmware-l4-automation/internal/platform/vcd"
	"github.com/IBM/vmware-l4-automation/internal/platform/vcfaas"
	"github.com/IBM/vmware-l4-automation/internal/reconcile"
)

const phase = "environment"

// Variable names of the workspace variable store.
const (
	VarAPIKey      = "ibmcloud_api_key"
	VarRegion      = "ibmcloud_region"
	VarSiteName    = "director_site_name"
	VarDirectorURL = "director_url"
	VarOrg         = "director_org"
	VarAPIToken    = "vmware_api_token"
	VarVDCName     = "vdc_name"
	VarPublicIP    = "public_ip"
)

var (
	ErrSiteNotFound = errors.New("director site not found")
	ErrVDCNotFound  = errors.New("VDC not found")
	ErrNoPublicIP   = errors.New("VDC edge has no public IP")
)

// Authenticator exchanges an API key for an IAM token.
type Authenticator interface {
	RequestToken(ctx context.Context, apiKey string) (*iam.Token, error)
}

// Sites is the VCFaaS API surface used during resolution.
type Sites interface {
	ListDirectorSites(ctx context.Context) ([]vcfaas.DirectorSite, error)
	ListVDCs(ctx context.Context) ([]vcfaas.VDC, error)
	Session(ctx context.Context, directorURL, org string) (*vcfaas.Session, error)
}

// SitesFactory creates a Sites client for a region and IAM token.
type SitesFactory func(region, iamToken string) Sites

// Request names the target of a run.
type Request struct {
	APIKey        string
	Region        string
	Site          string
	VDC           string
	ResourceGroup string // overrides the VDC's resource group when set
}

// RequestFromSettings builds a Request from loaded settings.
func RequestFromSettings(s *config.Settings) Request {
	return Request{
		APIKey:        s.APIKey,
		Region:        s.Region,
		Site:          s.Site,
		VDC:           s.VDC,
		ResourceGroup: s.ResourceGroup,
	}
}

// Environment is the resolved target. It holds credentials and must not
// be logged as a whole.
type Environment struct {
	Region        string
	SiteID        string
	SiteName      string
	VDCID         string
	VDCName       string
	DirectorURL   string // scheme and host only
	OrgName       string
	OrgID         string
	ResourceGroup string
	PublicIP      string

	IAMToken   string
	VCDSession vcd.Session
}

// Resolver resolves environments.
type Resolver struct {
	auth     Authenticator
	sites    SitesFactory
	observer observability.Observer
}

// NewResolver creates a Resolver. A nil observer discards events.
func NewResolver(auth Authenticator, sites SitesFactory, observer observability.Observer) *Resolver {
	if observer == nil {
		observer = observability.Nop()
	}
	return &Resolver{auth: auth, sites: sites, observer: observer}
}

// Resolve authenticates and locates the director site, VDC and public
// address named by req, then opens a Cloud Director session. Credentials
// are obtained once and not refreshed.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Environment, error) {
	start := time.Now()
	observability.LogPhaseStart(r.observer, phase)

	env, err := r.resolve(ctx, req)
	if err != nil {
		observability.LogPhaseFailed(r.observer, phase, err)
		return nil, err
	}

	observability.LogPhaseComplete(r.observer, phase, time.Since(start))
	return env, nil
}

func (r *Resolver) resolve(ctx context.Context, req Request) (*Environment, error) {
	token, err := r.auth.RequestToken(ctx, req.APIKey)
	if err != nil {
		return nil, err
	}
	sites := r.sites(req.Region, token.AccessToken)

	site, err := findSite(ctx, sites, req.Site)
	if err != nil {
		return nil, err
	}
	r.observer.Printf("Director site %s (%s)", site.Name, site.ID)

	vdc, err := findVDC(ctx, sites, site.ID, req.VDC)
	if err != nil {
		return nil, err
	}

	directorURL, err := siteOrigin(vdc.DirectorSite.URL)
	if err != nil {
		return nil, err
	}

	publicIP, err := firstPublicIP(vdc)
	if err != nil {
		return nil, err
	}

	resourceGroup := vdc.ResourceGroup.ID
	if req.ResourceGroup != "" {
		resourceGroup = req.ResourceGroup
	}

	session, err := sites.Session(ctx, directorURL, vdc.OrgName)
	if err != nil {
		return nil, err
	}
	r.observer.Printf("Opened director session for org %s at %s", vdc.OrgName, directorURL)

	return &Environment{
		Region:        req.Region,
		SiteID:        site.ID,
		SiteName:      site.Name,
		VDCID:         vdc.ID,
		VDCName:       vdc.Name,
		DirectorURL:   directorURL,
		OrgName:       vdc.OrgName,
		OrgID:         session.OrgID,
		ResourceGroup: resourceGroup,
		PublicIP:      publicIP,
		IAMToken:      token.AccessToken,
		VCDSession: vcd.Session{
			AccessToken: session.AccessToken,
			OrgName:     session.OrgName,
			OrgID:       session.OrgID,
		},
	}, nil
}

func findSite(ctx context.Context, sites Sites, name string) (*vcfaas.DirectorSite, error) {
	list, err := sites.ListDirectorSites(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Name == name {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrSiteNotFound, name)
}

func findVDC(ctx context.Context, sites Sites, siteID, name string) (*vcfaas.VDC, error) {
	list, err := sites.ListVDCs(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].DirectorSite.ID == siteID && list[i].Name == name {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q on site %s", ErrVDCNotFound, name, siteID)
}

// siteOrigin reduces a director site URL to scheme and host.
func siteOrigin(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid director site URL %q", raw)
	}
	return u.Scheme + "://" + u.Host, nil
}

func firstPublicIP(vdc *vcfaas.VDC) (string, error) {
	if len(vdc.Edges) == 0 || len(vdc.Edges[0].PublicIPs) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoPublicIP, vdc.Name)
	}
	return vdc.Edges[0].PublicIPs[0], nil
}

// WorkspaceName is the deployed workspace name of a lab in a region.
func WorkspaceName(lab config.Lab, region string) string {
	return lab.Workspace.Name + "-" + region
}

// DesiredState builds the desired state of lab in e. apiKey is stored as a
// secure workspace variable; the API token variable is left for the
// reconciler to mint.
func (e *Environment) DesiredState(lab config.Lab, apiKey string) reconcile.DesiredState {
	items := make([]reconcile.CatalogItem, 0, len(lab.Items))
	for _, it := range lab.Items {
		items = append(items, reconcile.CatalogItem{Name: it.Name, Source: it.Source})
	}

	return reconcile.DesiredState{
		Catalog: lab.Catalog,
		Items:   items,
		Workspace: reconcile.WorkspaceSpec{
			Name:         WorkspaceName(lab, e.Region),
			Scope:        e.ResourceGroup,
			Repository:   lab.Workspace.Repository,
			Folder:       lab.Workspace.Folder,
			TemplateType: lab.Workspace.TemplateType,
			Location:     lab.Workspace.Location,
			Description:  lab.Workspace.Description,
			Variables: []reconcile.Variable{
				{Name: VarAPIKey, Value: apiKey, Secure: true},
				{Name: VarRegion, Value: e.Region},
				{Name: VarSiteName, Value: e.SiteName},
				{Name: VarDirectorURL, Value: e.DirectorURL + "/api"},
				{Name: VarOrg, Value: e.OrgName},
				{Name: VarAPIToken, Secure: true},
				{Name: VarVDCName, Value: e.VDCName},
				{Name: VarPublicIP, Value: e.PublicIP},
			},
			TokenVariable: VarAPIToken,
		},
		PublicIP: e.PublicIP,
	}
}
