package storage

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DataCommons reads preprocessed source files from the public S3-compatible
// bucket that publishes them. Access is anonymous; downloads are attempted
// once and never retried.
type DataCommons struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewDataCommons creates a data commons client from the storage configuration.
func NewDataCommons(cfg Config) (*DataCommons, error) {
	// Minio expects endpoint without scheme
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 60
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Strict connection setup timeouts; transfer duration is bounded by the
	// caller's context.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	client, err := minio.New(endpoint, &minio.Options{
		// The bucket is public; empty static credentials select anonymous access.
		Creds:     credentials.NewStaticV4("", "", ""),
		Secure:    cfg.UseSSL,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create data commons client: %w", err)
	}

	return &DataCommons{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Fetch downloads one object from the data commons to dest. The object name
// is relative to the configured prefix, e.g. "NEI Data Files/point_1.parquet".
func (d *DataCommons) Fetch(ctx context.Context, object, dest string) error {
	key := object
	if d.prefix != "" {
		key = d.prefix + "/" + object
	}
	obj, err := d.client.GetObject(ctx, d.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("fetching %s: %w", key, err)
	}
	defer obj.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dest, err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(f, obj); err != nil {
		f.Close()
		os.Remove(dest)
		return fmt.Errorf("downloading %s: %w", key, err)
	}
	return f.Close()
}

// FetchURL performs a single plain HTTP GET and returns the response body.
// Failures are not retried; callers log them and continue with whatever
// partial result they have.
func FetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requesting %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
