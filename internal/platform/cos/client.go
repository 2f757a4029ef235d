package cos

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// defaultRegion is accepted by every COS endpoint for signing.
const defaultRegion = "us-standard"

// ErrObjectNotFound is returned when an object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Object locates one object in a store.
type Object struct {
	Endpoint string
	Bucket   string
	Key      string
}

// ParseObjectURL splits a path-style object URL into endpoint, bucket and key.
func ParseObjectURL(raw string) (Object, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Object{}, fmt.Errorf("invalid object URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return Object{}, fmt.Errorf("invalid object URL %q: expected http(s)://host/bucket/key", raw)
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if !ok || bucket == "" || key == "" {
		return Object{}, fmt.Errorf("invalid object URL %q: expected http(s)://host/bucket/key", raw)
	}

	return Object{
		Endpoint: u.Scheme + "://" + u.Host,
		Bucket:   bucket,
		Key:      key,
	}, nil
}

// ObjectInfo is the metadata returned by a HEAD request.
type ObjectInfo struct {
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Credentials are optional HMAC keys.
type Credentials struct {
	AccessKey string
	SecretKey string
}

// Client wraps the S3 client for one endpoint.
type Client struct {
	s3 *s3.Client
}

// NewClient creates a client for endpoint. Empty credentials make anonymous
// requests.
func NewClient(ctx context.Context, endpoint string, creds Credentials) (*Client, error) {
	var provider aws.CredentialsProvider = aws.AnonymousCredentials{}
	if creds.AccessKey != "" {
		provider = credentials.NewStaticCredentialsProvider(creds.AccessKey, creds.SecretKey, "")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(provider),
		config.WithRegion(defaultRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &Client{s3: client}, nil
}

// Head returns the metadata of bucket/key.
func (c *Client) Head(ctx context.Context, bucket, key string) (*ObjectInfo, error) {
	out, err := c.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("%s/%s: %w", bucket, key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to head object %s/%s: %w", bucket, key, err)
	}

	info := &ObjectInfo{
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
	}
	if out.LastModified != nil {
		info.LastModified = *out.LastModified
	}
	return info, nil
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	// S3-compatible services do not always map to the SDK types.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchBucket", "404":
			return true
		}
	}

	return false
}
