package bundle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrStatusNotOK is returned when an HTTP statistics fetch answers with
// a non-200 status.
var ErrStatusNotOK = errors.New("bundle: unexpected HTTP status")

// Source fetches the raw bundler statistics document. Implementations
// cover the places a deployment keeps its stats file: on disk next to
// the bundle, behind a dev-server HTTP endpoint, or in object storage.
type Source interface {
	// Fetch returns the raw stats bytes.
	Fetch(ctx context.Context) ([]byte, error)
}

// FileSource reads statistics from a local file.
type FileSource struct {
	// Path is the stats file location.
	Path string
}

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("bundle: read stats file %s: %w", s.Path, err)
	}
	return data, nil
}

// HTTPSource fetches statistics over HTTP, typically from a dev-mode
// bundler serving its stats endpoint.
type HTTPSource struct {
	// URL is the stats endpoint.
	URL string

	// Client is the HTTP client to use. Nil means a default client with
	// a 30 second timeout.
	Client *http.Client
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("bundle: build stats request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bundle: fetch stats from %s: %w", s.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bundle: fetch stats from %s: %w: %s", s.URL, ErrStatusNotOK, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bundle: read stats response: %w", err)
	}
	return data, nil
}

// S3Source fetches statistics from an S3 object, for deployments that
// publish build output to object storage.
//
// The client comes from aws-sdk-go-v2:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	src := &bundle.S3Source{
//		Client: s3.NewFromConfig(cfg),
//		Bucket: "my-builds",
//		Key:    "frontend/stats.json",
//	}
type S3Source struct {
	Client *s3.Client
	Bucket string
	Key    string
}

// Fetch implements Source.
func (s *S3Source) Fetch(ctx context.Context) ([]byte, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("bundle: fetch stats from s3://%s/%s: %w", s.Bucket, s.Key, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("bundle: read s3 stats body: %w", err)
	}
	return data, nil
}
