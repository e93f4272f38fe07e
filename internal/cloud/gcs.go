package cloud

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/nexo-finance/nexo/internal/domain"
)

// gcsBackupObject is the fixed object name inside the bucket. The bucket
// itself plays the role of the document id.
const gcsBackupObject = "nexo/backup.json"

// GCSClient stores the backup as a single object in a Google Cloud
// Storage bucket. The credential is a path to a service account key
// file; when empty, Application Default Credentials apply.
type GCSClient struct {
	Bucket string
}

// NewGCSClient returns a client that reads and writes backups in bucket.
func NewGCSClient(bucket string) *GCSClient {
	return &GCSClient{Bucket: bucket}
}

// SupportsDiscovery implements Client. The bucket is fixed, so a backup
// can be located without a stored document id.
func (c *GCSClient) SupportsDiscovery() bool { return true }

// Verify implements Client by fetching the bucket attributes.
func (c *GCSClient) Verify(ctx context.Context, apiKey string) error {
	client, err := c.newClient(ctx, apiKey)
	if err != nil {
		return opErr("verify", domain.ProviderGCS, fmt.Errorf("%w: %v", ErrInvalidCredential, err))
	}
	defer client.Close()

	if _, err := client.Bucket(c.Bucket).Attrs(ctx); err != nil {
		return opErr("verify", domain.ProviderGCS, fmt.Errorf("%w: %v", ErrUnreachable, err))
	}
	return nil
}

// FindBackup implements Client by probing the backup object.
func (c *GCSClient) FindBackup(ctx context.Context, apiKey string) (string, error) {
	client, err := c.newClient(ctx, apiKey)
	if err != nil {
		return "", opErr("find backup", domain.ProviderGCS, fmt.Errorf("%w: %v", ErrInvalidCredential, err))
	}
	defer client.Close()

	_, err = client.Bucket(c.Bucket).Object(gcsBackupObject).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return "", opErr("find backup", domain.ProviderGCS, ErrBackupNotFound)
	}
	if err != nil {
		return "", opErr("find backup", domain.ProviderGCS, fmt.Errorf("%w: %v", ErrUnreachable, err))
	}
	return gcsBackupObject, nil
}

// Pull implements Client.
func (c *GCSClient) Pull(ctx context.Context, apiKey, binID string) (*domain.Bundle, error) {
	client, err := c.newClient(ctx, apiKey)
	if err != nil {
		return nil, opErr("pull", domain.ProviderGCS, fmt.Errorf("%w: %v", ErrInvalidCredential, err))
	}
	defer client.Close()

	r, err := client.Bucket(c.Bucket).Object(c.objectName(binID)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, opErr("pull", domain.ProviderGCS, ErrBackupNotFound)
	}
	if err != nil {
		return nil, opErr("pull", domain.ProviderGCS, fmt.Errorf("%w: %v", ErrUnreachable, err))
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, opErr("pull", domain.ProviderGCS, fmt.Errorf("%w: %v", ErrUnreachable, err))
	}
	bundle, _, err := domain.ParseBundle(data)
	if err != nil {
		return nil, opErr("pull", domain.ProviderGCS, fmt.Errorf("%w: %v", ErrMalformedPayload, err))
	}
	return bundle, nil
}

// Push implements Client. Writes are bounded so a stalled connection
// cannot hold the writer open indefinitely.
func (c *GCSClient) Push(ctx context.Context, apiKey, binID string, b *domain.Bundle) (string, error) {
	content, err := b.Encode()
	if err != nil {
		return "", opErr("push", domain.ProviderGCS, err)
	}
	client, err := c.newClient(ctx, apiKey)
	if err != nil {
		return "", opErr("push", domain.ProviderGCS, fmt.Errorf("%w: %v", ErrInvalidCredential, err))
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	name := c.objectName(binID)
	w := client.Bucket(c.Bucket).Object(name).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(content); err != nil {
		_ = w.Close()
		return "", opErr("push", domain.ProviderGCS, fmt.Errorf("%w: %v", ErrUnreachable, err))
	}
	if err := w.Close(); err != nil {
		return "", opErr("push", domain.ProviderGCS, fmt.Errorf("%w: %v", ErrUnreachable, err))
	}
	return name, nil
}

func (c *GCSClient) objectName(binID string) string {
	if binID == "" {
		return gcsBackupObject
	}
	return binID
}

func (c *GCSClient) newClient(ctx context.Context, apiKey string) (*storage.Client, error) {
	if apiKey == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(apiKey))
}
