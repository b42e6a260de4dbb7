package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/jonathan/brand-ad-studio/internal/logger"
)

// resumableChunkSize is the chunk size of resumable uploads, and so the progress granularity
const resumableChunkSize = 256 * 1024

// GCSOptions configures a GCSStore
type GCSOptions struct {
	Bucket          string
	CredentialsFile string
	// EmulatorHost points the client at a fake-gcs-server instance
	EmulatorHost  string
	PublicBaseURL string
}

// GCSStore is an ObjectStore backed by a Google Cloud Storage bucket
type GCSStore struct {
	client        *storage.Client
	bucket        string
	publicBaseURL string
	log           *logger.Logger
}

// NewGCSStore creates a GCS client for the configured bucket
func NewGCSStore(ctx context.Context, opts GCSOptions, log *logger.Logger) (*GCSStore, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("missing GCS bucket name")
	}
	if log == nil {
		log = logger.Nop()
	}

	var clientOpts []option.ClientOption
	switch {
	case opts.EmulatorHost != "":
		_ = os.Setenv("STORAGE_EMULATOR_HOST", strings.TrimRight(opts.EmulatorHost, "/"))
		clientOpts = append(clientOpts, option.WithoutAuthentication())
	case opts.CredentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile), option.WithScopes(storage.ScopeReadWrite))
	default:
		clientOpts = append(clientOpts, option.WithScopes(storage.ScopeReadWrite))
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	log.Info("object storage initialized", "bucket", opts.Bucket, "emulator_host", opts.EmulatorHost)
	return &GCSStore{
		client:        client,
		bucket:        opts.Bucket,
		publicBaseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
		log:           log.With("service", "GCSStore"),
	}, nil
}

// Close releases the storage client
func (s *GCSStore) Close() error {
	return s.client.Close()
}

// Upload writes r to key with a resumable upload, reporting progress per chunk
func (s *GCSStore) Upload(ctx context.Context, key string, r io.Reader, size int64, progress ProgressFunc) (*Object, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ChunkSize = resumableChunkSize
	if ct := ContentTypeForKey(key); ct != "" {
		w.ContentType = ct
	}
	if progress != nil {
		w.ProgressFunc = func(written int64) {
			progress(percent(written, size))
		}
	}

	n, err := io.Copy(w, r)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close GCS writer: %w", err)
	}
	if progress != nil {
		progress(100)
	}

	s.log.Debug("object uploaded", "key", key, "bytes", n)
	return &Object{Key: key, Size: n, ContentType: w.ContentType, URL: s.PublicURL(key)}, nil
}

// Download opens a reader for key. The caller closes it.
func (s *GCSStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		cancel()
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open GCS reader: %w", err)
	}
	return &readCloserWithCancel{ReadCloser: r, cancel: cancel}, nil
}

// Delete removes key
func (s *GCSStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := s.client.Bucket(s.bucket).Object(key).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, s.bucket, err)
	}
	return nil
}

// List returns the keys under prefix
func (s *GCSStore) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	out := []string{}
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		out = append(out, attrs.Name)
	}
	return out, nil
}

// PublicURL is the download URL of key
func (s *GCSStore) PublicURL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
}

// readCloserWithCancel cancels the reader's context on Close
type readCloserWithCancel struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (r *readCloserWithCancel) Close() error {
	err := r.ReadCloser.Close()
	if r.cancel != nil {
		r.cancel()
	}
	return err
}
