package cos

import (
	"context"
	"fmt"
	"sync"

	"github.com/IBM/vmware-l4-automation/internal/util/async"
)

// Source is a named object URL to verify.
type Source struct {
	Name string
	URL  string
}

// Check is the verification outcome of one source.
type Check struct {
	Source
	Info *ObjectInfo
	Err  error
}

// OK reports whether the source exists.
func (c Check) OK() bool {
	return c.Err == nil
}

// Verifier HEADs sources, reusing one client per endpoint.
type Verifier struct {
	creds     Credentials
	newClient func(ctx context.Context, endpoint string, creds Credentials) (*Client, error)

	mu      sync.Mutex
	clients map[string]*Client
}

// NewVerifier creates a Verifier using creds for every endpoint.
func NewVerifier(creds Credentials) *Verifier {
	return &Verifier{
		creds:     creds,
		newClient: NewClient,
		clients:   map[string]*Client{},
	}
}

func (v *Verifier) client(ctx context.Context, endpoint string) (*Client, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if c, ok := v.clients[endpoint]; ok {
		return c, nil
	}
	c, err := v.newClient(ctx, endpoint, v.creds)
	if err != nil {
		return nil, err
	}
	v.clients[endpoint] = c
	return c, nil
}

// Verify checks every source concurrently. The result order matches sources.
func (v *Verifier) Verify(ctx context.Context, sources []Source) []Check {
	checks := make([]Check, len(sources))
	tasks := make([]async.Task, len(sources))

	for i, src := range sources {
		checks[i].Source = src
		tasks[i] = async.Task{
			Name: src.Name,
			Func: func(ctx context.Context) error {
				info, err := v.verifyOne(ctx, src)
				checks[i].Info = info
				checks[i].Err = err
				return err
			},
		}
	}

	_ = async.RunParallel(ctx, tasks)
	return checks
}

func (v *Verifier) verifyOne(ctx context.Context, src Source) (*ObjectInfo, error) {
	obj, err := ParseObjectURL(src.URL)
	if err != nil {
		return nil, err
	}
	c, err := v.client(ctx, obj.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("client for %s: %w", obj.Endpoint, err)
	}
	return c.Head(ctx, obj.Bucket, obj.Key)
}
