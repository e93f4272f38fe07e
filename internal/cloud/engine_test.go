package cloud

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nexo-finance/nexo/internal/domain"
	"github.com/nexo-finance/nexo/internal/ledger"
	"github.com/nexo-finance/nexo/internal/notify"
	"github.com/nexo-finance/nexo/internal/storage"
)

type mockClient struct {
	VerifyFunc     func(ctx context.Context, apiKey string) error
	FindBackupFunc func(ctx context.Context, apiKey string) (string, error)
	PullFunc       func(ctx context.Context, apiKey, binID string) (*domain.Bundle, error)
	PushFunc       func(ctx context.Context, apiKey, binID string, b *domain.Bundle) (string, error)
	discovery      bool
	networkCalls   int
}

func (m *mockClient) SupportsDiscovery() bool { return m.discovery }

func (m *mockClient) Verify(ctx context.Context, apiKey string) error {
	m.networkCalls++
	if m.VerifyFunc == nil {
		return nil
	}
	return m.VerifyFunc(ctx, apiKey)
}

func (m *mockClient) FindBackup(ctx context.Context, apiKey string) (string, error) {
	m.networkCalls++
	if m.FindBackupFunc == nil {
		return "", ErrBackupNotFound
	}
	return m.FindBackupFunc(ctx, apiKey)
}

func (m *mockClient) Pull(ctx context.Context, apiKey, binID string) (*domain.Bundle, error) {
	m.networkCalls++
	if m.PullFunc == nil {
		return &domain.Bundle{}, nil
	}
	return m.PullFunc(ctx, apiKey, binID)
}

func (m *mockClient) Push(ctx context.Context, apiKey, binID string, b *domain.Bundle) (string, error) {
	m.networkCalls++
	if m.PushFunc == nil {
		return "pushed-id", nil
	}
	return m.PushFunc(ctx, apiKey, binID, b)
}

func newTestEngine(t *testing.T, online bool, clients map[domain.Provider]Client) (*Engine, *ledger.Store, *notify.Center) {
	t.Helper()
	store := ledger.Open(storage.NewMemKV(), zerolog.Nop())
	toasts := notify.NewCenter(nil)
	checker := OnlineFunc(func(ctx context.Context) bool { return online })
	return NewEngine(store, checker, toasts, clients, zerolog.Nop()), store, toasts
}

func TestSanitizeKey(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  ghp_abc  ", "ghp_abc"},
		{`"ghp_abc"`, "ghp_abc"},
		{"Bearer ghp_abc", "ghp_abc"},
		{"token ghp_abc", "ghp_abc"},
		{"'ghp_abc'", "ghp_abc"},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := SanitizeKey(c.in); got != c.want {
			t.Errorf("SanitizeKey(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEngine_FindBackupOfflineShortCircuits(t *testing.T) {
	mock := &mockClient{discovery: true}
	e, _, _ := newTestEngine(t, false, map[domain.Provider]Client{domain.ProviderGitHub: mock})

	_, err := e.FindExistingBackup(context.Background(), domain.ProviderGitHub, "tok")
	if !errors.Is(err, ErrOffline) {
		t.Fatalf("err = %v, want ErrOffline", err)
	}
	if mock.networkCalls != 0 {
		t.Errorf("provider was called %d times while offline", mock.networkCalls)
	}
}

func TestEngine_FindBackupWithoutDiscovery(t *testing.T) {
	mock := &mockClient{discovery: false}
	e, _, _ := newTestEngine(t, true, map[domain.Provider]Client{domain.ProviderJSONBin: mock})

	_, err := e.FindExistingBackup(context.Background(), domain.ProviderJSONBin, "key")
	if !errors.Is(err, ErrDiscoveryUnsupported) {
		t.Fatalf("err = %v, want ErrDiscoveryUnsupported", err)
	}
}

func TestEngine_LoginEmptyToken(t *testing.T) {
	e, store, _ := newTestEngine(t, true, nil)

	err := e.LoginWithToken(context.Background(), `  ""  `)
	if !errors.Is(err, ErrEmptyCredential) {
		t.Fatalf("err = %v, want ErrEmptyCredential", err)
	}
	if store.Onboarded() {
		t.Error("Onboarding completed on empty token")
	}
}

func TestEngine_LoginOffline(t *testing.T) {
	mock := &mockClient{discovery: true}
	e, _, toasts := newTestEngine(t, false, map[domain.Provider]Client{domain.ProviderGitHub: mock})

	err := e.LoginWithToken(context.Background(), "ghp_tok")
	if !errors.Is(err, ErrOffline) {
		t.Fatalf("err = %v, want ErrOffline", err)
	}
	if mock.networkCalls != 0 {
		t.Error("provider touched while offline")
	}
	if got, ok := toasts.Current(); !ok || got.Severity != notify.Error {
		t.Errorf("toast = %+v, %v; want error toast", got, ok)
	}
}

func TestEngine_LoginInvalidToken(t *testing.T) {
	mock := &mockClient{
		discovery:  true,
		VerifyFunc: func(ctx context.Context, apiKey string) error { return ErrInvalidCredential },
	}
	e, store, _ := newTestEngine(t, true, map[domain.Provider]Client{domain.ProviderGitHub: mock})

	err := e.LoginWithToken(context.Background(), "bad")
	if !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("err = %v, want ErrInvalidCredential", err)
	}
	if e.Status() != StatusError {
		t.Errorf("status = %s, want error", e.Status())
	}
	if store.Onboarded() {
		t.Error("Onboarding completed on invalid token")
	}
}

func TestEngine_LoginRestoresExistingBackup(t *testing.T) {
	amount := decimal.RequireFromString("99.50")
	remote := &domain.Bundle{
		Transactions: []domain.Transaction{{ID: "t1", Title: "Remota", Amount: amount, Type: domain.Income, Category: "salario"}},
	}
	mock := &mockClient{
		discovery:      true,
		FindBackupFunc: func(ctx context.Context, apiKey string) (string, error) { return "gist-42", nil },
		PullFunc: func(ctx context.Context, apiKey, binID string) (*domain.Bundle, error) {
			if binID != "gist-42" {
				t.Errorf("pulled bin %q, want gist-42", binID)
			}
			return remote, nil
		},
	}
	e, store, _ := newTestEngine(t, true, map[domain.Provider]Client{domain.ProviderGitHub: mock})

	if err := e.LoginWithToken(context.Background(), "Bearer ghp_tok"); err != nil {
		t.Fatalf("LoginWithToken: %v", err)
	}

	if got := store.Transactions(); len(got) != 1 || got[0].Title != "Remota" {
		t.Errorf("transactions after restore = %+v", got)
	}
	cfg := store.Profile().CloudConfig
	if cfg == nil || !cfg.Enabled || cfg.Provider != domain.ProviderGitHub {
		t.Fatalf("cloud config = %+v", cfg)
	}
	if cfg.APIKey != "ghp_tok" {
		t.Errorf("stored key = %q, want sanitized token", cfg.APIKey)
	}
	if cfg.BinID != "gist-42" || cfg.LastSync == nil {
		t.Errorf("cfg binId/lastSync = %q/%v", cfg.BinID, cfg.LastSync)
	}
	if !store.Onboarded() {
		t.Error("Onboarding not marked complete")
	}
	if e.Status() != StatusConnected {
		t.Errorf("status = %s, want connected", e.Status())
	}
}

func TestEngine_LoginFreshAccount(t *testing.T) {
	mock := &mockClient{
		discovery:      true,
		FindBackupFunc: func(ctx context.Context, apiKey string) (string, error) { return "", ErrBackupNotFound },
	}
	e, store, _ := newTestEngine(t, true, map[domain.Provider]Client{domain.ProviderGitHub: mock})

	if err := e.LoginWithToken(context.Background(), "ghp_tok"); err != nil {
		t.Fatalf("LoginWithToken: %v", err)
	}

	cfg := store.Profile().CloudConfig
	if cfg == nil || !cfg.Enabled || cfg.BinID != "" {
		t.Fatalf("cloud config = %+v, want enabled with empty binId", cfg)
	}
	if !store.Onboarded() {
		t.Error("Onboarding not marked complete on fresh branch")
	}
	if e.Status() != StatusConnected {
		t.Errorf("status = %s, want connected", e.Status())
	}
}

func TestEngine_SyncNotConfigured(t *testing.T) {
	e, _, _ := newTestEngine(t, true, nil)

	if err := e.Sync(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestEngine_SyncRecordsBinIDAndLastSync(t *testing.T) {
	var pushed *domain.Bundle
	mock := &mockClient{
		discovery: true,
		PushFunc: func(ctx context.Context, apiKey, binID string, b *domain.Bundle) (string, error) {
			pushed = b
			return "gist-new", nil
		},
	}
	e, store, _ := newTestEngine(t, true, map[domain.Provider]Client{domain.ProviderGitHub: mock})
	store.UpdateCloudConfig(domain.CloudConfig{Enabled: true, Provider: domain.ProviderGitHub, APIKey: "ghp_tok"})

	if err := e.Sync(context.Background()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if pushed == nil || pushed.Transactions == nil {
		t.Fatal("push did not receive a full snapshot")
	}
	cfg := store.Profile().CloudConfig
	if cfg.BinID != "gist-new" || cfg.LastSync == nil {
		t.Errorf("cfg after sync = %+v", cfg)
	}
	if e.Status() != StatusConnected {
		t.Errorf("status = %s, want connected", e.Status())
	}
}

func TestEngine_SyncPushFailure(t *testing.T) {
	mock := &mockClient{
		discovery: true,
		PushFunc: func(ctx context.Context, apiKey, binID string, b *domain.Bundle) (string, error) {
			return "", opErr("push", domain.ProviderGitHub, ErrUnreachable)
		},
	}
	e, store, toasts := newTestEngine(t, true, map[domain.Provider]Client{domain.ProviderGitHub: mock})
	store.UpdateCloudConfig(domain.CloudConfig{Enabled: true, Provider: domain.ProviderGitHub, APIKey: "ghp_tok"})

	if err := e.Sync(context.Background()); !errors.Is(err, ErrUnreachable) {
		t.Fatalf("err = %v, want ErrUnreachable", err)
	}
	if e.Status() != StatusError {
		t.Errorf("status = %s, want error", e.Status())
	}
	if cfg := store.Profile().CloudConfig; cfg.LastSync != nil {
		t.Error("lastSync recorded on a failed push")
	}
	if got, ok := toasts.Current(); !ok || got.Severity != notify.Error {
		t.Errorf("toast = %+v, %v; want error toast", got, ok)
	}
}

func TestEngine_ManualRestoreMissingBinID(t *testing.T) {
	mock := &mockClient{discovery: false}
	e, store, _ := newTestEngine(t, true, map[domain.Provider]Client{domain.ProviderJSONBin: mock})
	store.UpdateCloudConfig(domain.CloudConfig{Enabled: true, Provider: domain.ProviderJSONBin, APIKey: "master-key"})

	err := e.ManualRestore(context.Background())
	if !errors.Is(err, ErrMissingBinID) {
		t.Fatalf("err = %v, want ErrMissingBinID", err)
	}
	if e.Status() != StatusError {
		t.Errorf("status = %s, want error", e.Status())
	}
}

func TestEngine_ManualRestoreDiscoversLostBinID(t *testing.T) {
	mock := &mockClient{
		discovery:      true,
		FindBackupFunc: func(ctx context.Context, apiKey string) (string, error) { return "gist-found", nil },
	}
	e, store, _ := newTestEngine(t, true, map[domain.Provider]Client{domain.ProviderGitHub: mock})
	store.UpdateCloudConfig(domain.CloudConfig{Enabled: true, Provider: domain.ProviderGitHub, APIKey: "ghp_tok"})

	if err := e.ManualRestore(context.Background()); err != nil {
		t.Fatalf("ManualRestore: %v", err)
	}
	if cfg := store.Profile().CloudConfig; cfg.BinID != "gist-found" {
		t.Errorf("binId = %q, want discovered id", cfg.BinID)
	}
}

func TestEngine_ManualRestoreOffline(t *testing.T) {
	mock := &mockClient{discovery: true}
	e, store, _ := newTestEngine(t, false, map[domain.Provider]Client{domain.ProviderGitHub: mock})
	store.UpdateCloudConfig(domain.CloudConfig{Enabled: true, Provider: domain.ProviderGitHub, APIKey: "ghp_tok", BinID: "gist-1"})

	if err := e.ManualRestore(context.Background()); !errors.Is(err, ErrOffline) {
		t.Fatalf("err = %v, want ErrOffline", err)
	}
	if mock.networkCalls != 0 {
		t.Error("provider touched while offline")
	}
}
