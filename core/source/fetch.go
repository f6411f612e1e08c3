package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
)

// Fetcher resolves source locations to their raw bytes. It understands
// three kinds of references: local file paths, http(s) URLs and
// s3://bucket/key objects.
type Fetcher struct {
	cfg  Config
	http *http.Client
	// s3 is created on first use so local-only runs need no storage
	// credentials. Fetch may be called from several goroutines, so the
	// init is guarded.
	s3Once sync.Once
	s3     Client
	s3Err  error
}

// NewFetcher builds a fetcher from the source configuration.
func NewFetcher(cfg Config) *Fetcher {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Fetcher{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// Fetch resolves one source reference.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case strings.HasPrefix(ref, "s3://"):
		return f.fetchS3(ctx, ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return f.fetchHTTP(ctx, ref)
	default:
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("reading source %s: %w", ref, err)
		}
		return data, nil
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching source %s: %w", url, err)
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching source %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching source %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetching source %s: %w", url, err)
	}
	return data, nil
}

func (f *Fetcher) fetchS3(ctx context.Context, ref string) ([]byte, error) {
	bucket, key, err := splitS3Ref(ref)
	if err != nil {
		return nil, err
	}
	f.s3Once.Do(func() {
		if f.s3 == nil {
			f.s3, f.s3Err = NewClient(f.cfg.S3, f.cfg.TimeoutSeconds)
		}
	})
	if f.s3Err != nil {
		return nil, f.s3Err
	}
	obj, err := f.s3.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetching source %s: %w", ref, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("fetching source %s: %w", ref, err)
	}
	return data, nil
}

// splitS3Ref splits s3://bucket/key/path into its bucket and key parts.
func splitS3Ref(ref string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(ref, "s3://")
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 reference %q, want s3://bucket/key", ref)
	}
	return bucket, key, nil
}
