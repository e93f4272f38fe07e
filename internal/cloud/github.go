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

// Gist naming convention. Discovery scans the account's gists for a file
// with this exact name; both sides of the convention must stay in lockstep.
const (
	gistBackupFile        = "nexo_backup.json"
	gistBackupDescription = "Nexo Finance Backup"
)

const defaultGitHubBaseURL = "https://api.github.com"

// GitHubClient stores the backup as a secret gist holding a single file.
// The personal access token doubles as the account identity: discovery
// lists the token's gists and picks the one carrying the backup file.
type GitHubClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewGitHubClient returns a client against the public GitHub API. baseURL
// overrides the endpoint when non-empty.
func NewGitHubClient(baseURL string) *GitHubClient {
	if baseURL == "" {
		baseURL = defaultGitHubBaseURL
	}
	return &GitHubClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SupportsDiscovery implements Client. GitHub backups are discoverable
// from the token alone.
func (c *GitHubClient) SupportsDiscovery() bool { return true }

// Verify implements Client by fetching the authenticated user.
func (c *GitHubClient) Verify(ctx context.Context, apiKey string) error {
	resp, err := c.do(ctx, http.MethodGet, "/user", apiKey, nil)
	if err != nil {
		return opErr("verify", domain.ProviderGitHub, fmt.Errorf("%w: %v", ErrUnreachable, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return opErr("verify", domain.ProviderGitHub, ErrInvalidCredential)
	case resp.StatusCode >= 300:
		return opErr("verify", domain.ProviderGitHub, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode))
	}
	return nil
}

type gistSummary struct {
	ID          string                     `json:"id"`
	Description string                     `json:"description"`
	Files       map[string]json.RawMessage `json:"files"`
}

// FindBackup implements Client. It walks the account's gists looking for
// the backup file by name.
func (c *GitHubClient) FindBackup(ctx context.Context, apiKey string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/gists?per_page=100", apiKey, nil)
	if err != nil {
		return "", opErr("find backup", domain.ProviderGitHub, fmt.Errorf("%w: %v", ErrUnreachable, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", opErr("find backup", domain.ProviderGitHub, ErrInvalidCredential)
	case resp.StatusCode >= 300:
		return "", opErr("find backup", domain.ProviderGitHub, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode))
	}

	var gists []gistSummary
	if err := json.NewDecoder(resp.Body).Decode(&gists); err != nil {
		return "", opErr("find backup", domain.ProviderGitHub, fmt.Errorf("%w: %v", ErrMalformedPayload, err))
	}
	for _, g := range gists {
		if _, ok := g.Files[gistBackupFile]; ok {
			return g.ID, nil
		}
	}
	return "", opErr("find backup", domain.ProviderGitHub, ErrBackupNotFound)
}

type gistFile struct {
	Content   string `json:"content"`
	Truncated bool   `json:"truncated,omitempty"`
	RawURL    string `json:"raw_url,omitempty"`
}

type gistDetail struct {
	ID    string              `json:"id"`
	Files map[string]gistFile `json:"files"`
}

// Pull implements Client.
func (c *GitHubClient) Pull(ctx context.Context, apiKey, binID string) (*domain.Bundle, error) {
	resp, err := c.do(ctx, http.MethodGet, "/gists/"+binID, apiKey, nil)
	if err != nil {
		return nil, opErr("pull", domain.ProviderGitHub, fmt.Errorf("%w: %v", ErrUnreachable, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, opErr("pull", domain.ProviderGitHub, ErrBackupNotFound)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, opErr("pull", domain.ProviderGitHub, ErrInvalidCredential)
	case resp.StatusCode >= 300:
		return nil, opErr("pull", domain.ProviderGitHub, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode))
	}

	var detail gistDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, opErr("pull", domain.ProviderGitHub, fmt.Errorf("%w: %v", ErrMalformedPayload, err))
	}
	file, ok := detail.Files[gistBackupFile]
	if !ok {
		return nil, opErr("pull", domain.ProviderGitHub, ErrBackupNotFound)
	}

	content := []byte(file.Content)
	if file.Truncated && file.RawURL != "" {
		content, err = c.fetchRaw(ctx, apiKey, file.RawURL)
		if err != nil {
			return nil, opErr("pull", domain.ProviderGitHub, err)
		}
	}

	bundle, _, err := domain.ParseBundle(content)
	if err != nil {
		return nil, opErr("pull", domain.ProviderGitHub, fmt.Errorf("%w: %v", ErrMalformedPayload, err))
	}
	return bundle, nil
}

// Push implements Client. An empty binID creates a fresh secret gist.
func (c *GitHubClient) Push(ctx context.Context, apiKey, binID string, b *domain.Bundle) (string, error) {
	content, err := b.Encode()
	if err != nil {
		return "", opErr("push", domain.ProviderGitHub, err)
	}
	payload := map[string]any{
		"description": gistBackupDescription,
		"public":      false,
		"files": map[string]any{
			gistBackupFile: map[string]string{"content": string(content)},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", opErr("push", domain.ProviderGitHub, err)
	}

	method, path := http.MethodPost, "/gists"
	if binID != "" {
		method, path = http.MethodPatch, "/gists/"+binID
	}
	resp, err := c.do(ctx, method, path, apiKey, bytes.NewReader(body))
	if err != nil {
		return "", opErr("push", domain.ProviderGitHub, fmt.Errorf("%w: %v", ErrUnreachable, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", opErr("push", domain.ProviderGitHub, ErrBackupNotFound)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", opErr("push", domain.ProviderGitHub, ErrInvalidCredential)
	case resp.StatusCode >= 300:
		return "", opErr("push", domain.ProviderGitHub, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode))
	}

	var detail gistDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return "", opErr("push", domain.ProviderGitHub, fmt.Errorf("%w: %v", ErrMalformedPayload, err))
	}
	return detail.ID, nil
}

func (c *GitHubClient) do(ctx context.Context, method, path, apiKey string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.HTTP.Do(req)
}

func (c *GitHubClient) fetchRaw(ctx context.Context, apiKey, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
