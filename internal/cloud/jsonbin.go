package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nexo-finance/nexo/internal/domain"
)

const defaultJSONBinBaseURL = "https://api.jsonbin.io/v3"

// jsonbinBinName labels bins created by this system in the JSONBin
// dashboard.
const jsonbinBinName = "nexo-backup"

// JSONBinClient stores the backup as a JSONBin v3 bin. A master key is
// not tied to a single bin, so there is no discovery: restoring needs the
// bin id that was handed out at creation time.
type JSONBinClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewJSONBinClient returns a client against the public JSONBin API.
// baseURL overrides the endpoint when non-empty.
func NewJSONBinClient(baseURL string) *JSONBinClient {
	if baseURL == "" {
		baseURL = defaultJSONBinBaseURL
	}
	return &JSONBinClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SupportsDiscovery implements Client.
func (c *JSONBinClient) SupportsDiscovery() bool { return false }

// FindBackup implements Client. JSONBin cannot enumerate bins from the
// credential alone.
func (c *JSONBinClient) FindBackup(ctx context.Context, apiKey string) (string, error) {
	return "", opErr("find backup", domain.ProviderJSONBin, ErrDiscoveryUnsupported)
}

// Verify implements Client by listing uncategorized bins, the cheapest
// authenticated endpoint.
func (c *JSONBinClient) Verify(ctx context.Context, apiKey string) error {
	resp, err := c.do(ctx, http.MethodGet, "/c/uncategorized/bins", apiKey, nil)
	if err != nil {
		return opErr("verify", domain.ProviderJSONBin, fmt.Errorf("%w: %v", ErrUnreachable, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return opErr("verify", domain.ProviderJSONBin, ErrInvalidCredential)
	case resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound:
		return opErr("verify", domain.ProviderJSONBin, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode))
	}
	return nil
}

type jsonbinEnvelope struct {
	Record   json.RawMessage `json:"record"`
	Metadata struct {
		ID string `json:"id"`
	} `json:"metadata"`
}

// Pull implements Client.
func (c *JSONBinClient) Pull(ctx context.Context, apiKey, binID string) (*domain.Bundle, error) {
	if binID == "" {
		return nil, opErr("pull", domain.ProviderJSONBin, ErrMissingBinID)
	}
	resp, err := c.do(ctx, http.MethodGet, "/b/"+binID+"/latest", apiKey, nil)
	if err != nil {
		return nil, opErr("pull", domain.ProviderJSONBin, fmt.Errorf("%w: %v", ErrUnreachable, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, opErr("pull", domain.ProviderJSONBin, ErrBackupNotFound)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, opErr("pull", domain.ProviderJSONBin, ErrInvalidCredential)
	case resp.StatusCode >= 300:
		return nil, opErr("pull", domain.ProviderJSONBin, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode))
	}

	var env jsonbinEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, opErr("pull", domain.ProviderJSONBin, fmt.Errorf("%w: %v", ErrMalformedPayload, err))
	}
	bundle, _, err := domain.ParseBundle(env.Record)
	if err != nil {
		return nil, opErr("pull", domain.ProviderJSONBin, fmt.Errorf("%w: %v", ErrMalformedPayload, err))
	}
	return bundle, nil
}

// Push implements Client. An empty binID creates a new bin; otherwise the
// existing bin is overwritten in place.
func (c *JSONBinClient) Push(ctx context.Context, apiKey, binID string, b *domain.Bundle) (string, error) {
	content, err := b.Encode()
	if err != nil {
		return "", opErr("push", domain.ProviderJSONBin, err)
	}

	method, path := http.MethodPost, "/b"
	if binID != "" {
		method, path = http.MethodPut, "/b/"+binID
	}
	resp, err := c.do(ctx, method, path, apiKey, bytes.NewReader(content))
	if err != nil {
		return "", opErr("push", domain.ProviderJSONBin, fmt.Errorf("%w: %v", ErrUnreachable, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", opErr("push", domain.ProviderJSONBin, ErrBackupNotFound)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", opErr("push", domain.ProviderJSONBin, ErrInvalidCredential)
	case resp.StatusCode >= 300:
		return "", opErr("push", domain.ProviderJSONBin, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode))
	}

	var env jsonbinEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", opErr("push", domain.ProviderJSONBin, fmt.Errorf("%w: %v", ErrMalformedPayload, err))
	}
	if env.Metadata.ID != "" {
		return env.Metadata.ID, nil
	}
	return binID, nil
}

func (c *JSONBinClient) do(ctx context.Context, method, path, apiKey string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Master-Key", apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		req.Header.Set("X-Bin-Name", jsonbinBinName)
		req.Header.Set("X-Bin-Private", "true")
	}
	return c.HTTP.Do(req)
}
