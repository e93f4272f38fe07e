package cloud

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nexo-finance/nexo/internal/domain"
	"github.com/nexo-finance/nexo/internal/ledger"
	"github.com/nexo-finance/nexo/internal/notify"
)

// Status is the engine's connection state. Error is reachable from any
// state; a successful operation always lands on Connected.
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusError        Status = "error"
)

// Engine drives backup operations against the configured provider and
// keeps the durable cloud configuration in the store up to date.
type Engine struct {
	mu      sync.Mutex
	status  Status
	store   *ledger.Store
	clients map[domain.Provider]Client
	online  Checker
	toasts  *notify.Center
	log     zerolog.Logger
	now     func() time.Time
}

// NewEngine wires the engine. clients maps each supported provider to
// its backup client; toasts may not be nil.
func NewEngine(store *ledger.Store, online Checker, toasts *notify.Center, clients map[domain.Provider]Client, log zerolog.Logger) *Engine {
	return &Engine{
		status:  StatusDisconnected,
		store:   store,
		clients: clients,
		online:  online,
		toasts:  toasts,
		log:     log.With().Str("component", "cloud").Logger(),
		now:     time.Now,
	}
}

// Status returns the current connection state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Engine) setStatus(s Status) {
	e.mu.Lock()
	e.status = s
	e.mu.Unlock()
}

func (e *Engine) client(p domain.Provider) (Client, error) {
	c, ok := e.clients[p]
	if !ok {
		return nil, opErr("client", p, ErrUnknownProvider)
	}
	return c, nil
}

// VerifyKey checks a credential against a provider without touching any
// stored configuration.
func (e *Engine) VerifyKey(ctx context.Context, provider domain.Provider, apiKey string) error {
	apiKey = SanitizeKey(apiKey)
	if apiKey == "" {
		return opErr("verify key", provider, ErrEmptyCredential)
	}
	if !e.online.Online(ctx) {
		return opErr("verify key", provider, ErrOffline)
	}
	c, err := e.client(provider)
	if err != nil {
		return err
	}
	return c.Verify(ctx, apiKey)
}

// FindExistingBackup locates the remote backup document for a credential.
// Offline short-circuits before any provider call.
func (e *Engine) FindExistingBackup(ctx context.Context, provider domain.Provider, apiKey string) (string, error) {
	if !e.online.Online(ctx) {
		return "", opErr("find backup", provider, ErrOffline)
	}
	c, err := e.client(provider)
	if err != nil {
		return "", err
	}
	if !c.SupportsDiscovery() {
		return "", opErr("find backup", provider, ErrDiscoveryUnsupported)
	}
	return c.FindBackup(ctx, SanitizeKey(apiKey))
}

// Restore pulls the remote document and merges it into the local store.
// Callers handle connectivity, status and user messaging.
func (e *Engine) Restore(ctx context.Context, provider domain.Provider, apiKey, binID string) error {
	c, err := e.client(provider)
	if err != nil {
		return err
	}
	bundle, err := c.Pull(ctx, SanitizeKey(apiKey), binID)
	if err != nil {
		return err
	}
	e.store.Import(bundle)
	return nil
}

// LoginWithToken runs the first-time GitHub flow: sanitize the token,
// verify it, look for an existing backup, and either restore it or start
// fresh. Onboarding is marked complete on both branches.
func (e *Engine) LoginWithToken(ctx context.Context, token string) error {
	const provider = domain.ProviderGitHub

	key := SanitizeKey(token)
	if key == "" {
		return opErr("login", provider, ErrEmptyCredential)
	}

	if !e.online.Online(ctx) {
		e.toasts.Error("Sin conexión a internet")
		e.setStatus(StatusError)
		return opErr("login", provider, ErrOffline)
	}

	e.setStatus(StatusConnecting)

	c, err := e.client(provider)
	if err != nil {
		e.setStatus(StatusError)
		return err
	}

	if err := c.Verify(ctx, key); err != nil {
		e.setStatus(StatusError)
		if errors.Is(err, ErrInvalidCredential) {
			e.toasts.Error("Token inválido")
		} else {
			e.toasts.Error("No se pudo conectar a GitHub")
		}
		return err
	}

	e.toasts.Success("Buscando copia de seguridad...")

	binID, err := c.FindBackup(ctx, key)
	switch {
	case err == nil:
		if err := e.Restore(ctx, provider, key, binID); err != nil {
			e.setStatus(StatusError)
			e.toasts.Error("Error al restaurar el respaldo")
			return err
		}
		now := e.now()
		e.store.UpdateCloudConfig(domain.CloudConfig{
			Enabled:  true,
			Provider: provider,
			APIKey:   key,
			BinID:    binID,
			LastSync: &now,
		})
		e.store.SetOnboarded(true)
		e.setStatus(StatusConnected)
		e.toasts.Success("Datos restaurados exitosamente.")
		e.log.Info().Str("bin_id", binID).Msg("login restored existing backup")
		return nil

	case errors.Is(err, ErrBackupNotFound):
		e.store.UpdateCloudConfig(domain.CloudConfig{
			Enabled:  true,
			Provider: provider,
			APIKey:   key,
			BinID:    "",
		})
		e.store.SetOnboarded(true)
		e.setStatus(StatusConnected)
		e.toasts.Success("Sesión iniciada. Creando respaldo nuevo.")
		e.log.Info().Msg("login found no backup, starting fresh")
		return nil

	default:
		e.setStatus(StatusError)
		e.toasts.Error("No se pudo conectar a GitHub")
		return err
	}
}

// Sync pushes the full local snapshot to the configured provider,
// creating the remote document on first push, and records the document
// id and sync time in the durable configuration.
func (e *Engine) Sync(ctx context.Context) error {
	cfg := e.store.Profile().CloudConfig
	if cfg == nil || !cfg.Enabled || SanitizeKey(cfg.APIKey) == "" {
		return opErr("sync", "", ErrNotConfigured)
	}
	provider := cfg.Provider
	if provider == "" {
		provider = domain.ProviderGitHub
	}

	if !e.online.Online(ctx) {
		e.toasts.Error("Sin conexión a internet")
		e.setStatus(StatusError)
		return opErr("sync", provider, ErrOffline)
	}

	c, err := e.client(provider)
	if err != nil {
		e.setStatus(StatusError)
		return err
	}

	e.setStatus(StatusConnecting)

	binID, err := c.Push(ctx, SanitizeKey(cfg.APIKey), SanitizeKey(cfg.BinID), e.store.Export())
	if err != nil {
		e.setStatus(StatusError)
		e.toasts.Error("Error al sincronizar")
		e.log.Error().Err(err).Str("provider", string(provider)).Msg("sync push failed")
		return err
	}

	now := e.now()
	updated := *cfg
	updated.BinID = binID
	updated.LastSync = &now
	e.store.UpdateCloudConfig(updated)

	e.setStatus(StatusConnected)
	e.toasts.Success("Datos sincronizados en la nube")
	e.log.Info().Str("provider", string(provider)).Str("bin_id", binID).Msg("sync pushed snapshot")
	return nil
}

// ManualRestore pulls the remote document for the configured provider
// and applies it locally. Providers with discovery can recover a lost
// document id; those without one fail when it is missing.
func (e *Engine) ManualRestore(ctx context.Context) error {
	cfg := e.store.Profile().CloudConfig
	if cfg == nil || SanitizeKey(cfg.APIKey) == "" {
		return opErr("restore", "", ErrNotConfigured)
	}
	provider := cfg.Provider
	if provider == "" {
		provider = domain.ProviderGitHub
	}
	key := SanitizeKey(cfg.APIKey)
	binID := SanitizeKey(cfg.BinID)

	if !e.online.Online(ctx) {
		e.toasts.Error("No tienes conexión a internet")
		e.setStatus(StatusError)
		return opErr("restore", provider, ErrOffline)
	}

	c, err := e.client(provider)
	if err != nil {
		e.setStatus(StatusError)
		return err
	}

	e.setStatus(StatusConnecting)

	if binID == "" {
		if !c.SupportsDiscovery() {
			e.setStatus(StatusError)
			e.toasts.Error("Falta el Bin ID para restaurar")
			return opErr("restore", provider, ErrMissingBinID)
		}
		e.toasts.Success("Buscando ID de respaldo...")
		binID, err = c.FindBackup(ctx, key)
		if err != nil {
			e.setStatus(StatusError)
			if errors.Is(err, ErrBackupNotFound) {
				e.toasts.Error("No se encontró ningún respaldo")
			} else {
				e.toasts.Error("Error de red al buscar el respaldo")
			}
			return err
		}
	}

	e.toasts.Success("Restaurando...")

	if err := e.Restore(ctx, provider, key, binID); err != nil {
		e.setStatus(StatusError)
		e.toasts.Error("Error al restaurar")
		e.log.Error().Err(err).Str("provider", string(provider)).Msg("restore pull failed")
		return err
	}

	updated := *cfg
	updated.BinID = binID
	e.store.UpdateCloudConfig(updated)

	e.setStatus(StatusConnected)
	e.toasts.Success("Datos restaurados.")
	e.log.Info().Str("provider", string(provider)).Str("bin_id", binID).Msg("restore applied remote snapshot")
	return nil
}
