package cos

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    Object
		wantErr bool
	}{
		{
			name: "cos public image",
			raw:  "https://s3.us-east.cloud-object-storage.appdomain.cloud/vcfaas-lab-images/ibm-vcfaas-lab-apache2.ovf",
			want: Object{
				Endpoint: "https://s3.us-east.cloud-object-storage.appdomain.cloud",
				Bucket:   "vcfaas-lab-images",
				Key:      "ibm-vcfaas-lab-apache2.ovf",
			},
		},
		{
			name: "nested key",
			raw:  "http://localhost:9000/bucket/dir/file.ovf",
			want: Object{Endpoint: "http://localhost:9000", Bucket: "bucket", Key: "dir/file.ovf"},
		},
		{name: "no key", raw: "https://host/bucket", wantErr: true},
		{name: "no scheme", raw: "host/bucket/key", wantErr: true},
		{name: "ftp", raw: "ftp://host/bucket/key", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseObjectURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.False(t, isNotFoundError(nil))
	assert.False(t, isNotFoundError(errors.New("boom")))
	assert.True(t, isNotFoundError(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.False(t, isNotFoundError(&smithy.GenericAPIError{Code: "AccessDenied"}))
}

func newObjectServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		switch r.URL.Path {
		case "/images/apache.ovf":
			w.Header().Set("Content-Type", "text/xml")
			w.Header().Set("Content-Length", "2048")
			w.Header().Set("Last-Modified", "Mon, 02 Jan 2006 15:04:05 GMT")
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Head(t *testing.T) {
	srv := newObjectServer(t)

	c, err := NewClient(context.Background(), srv.URL, Credentials{})
	require.NoError(t, err)

	info, err := c.Head(context.Background(), "images", "apache.ovf")
	require.NoError(t, err)
	assert.EqualValues(t, 2048, info.Size)
	assert.Equal(t, "text/xml", info.ContentType)
	assert.Equal(t, 2006, info.LastModified.Year())

	_, err = c.Head(context.Background(), "images", "missing.ovf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestVerifier_Verify(t *testing.T) {
	srv := newObjectServer(t)

	v := NewVerifier(Credentials{})
	checks := v.Verify(context.Background(), []Source{
		{Name: "apache", URL: srv.URL + "/images/apache.ovf"},
		{Name: "mysql", URL: srv.URL + "/images/mysql.ovf"},
		{Name: "broken", URL: "not-a-url"},
	})

	require.Len(t, checks, 3)
	assert.True(t, checks[0].OK())
	assert.EqualValues(t, 2048, checks[0].Info.Size)
	assert.ErrorIs(t, checks[1].Err, ErrObjectNotFound)
	assert.Error(t, checks[2].Err)
	assert.Len(t, v.clients, 1)
}
