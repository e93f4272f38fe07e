package cloud

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nexo-finance/nexo/internal/domain"
)

func TestJSONBinClient_DiscoveryUnsupported(t *testing.T) {
	c := NewJSONBinClient("http://unused")
	if c.SupportsDiscovery() {
		t.Error("SupportsDiscovery = true")
	}
	if _, err := c.FindBackup(context.Background(), "key"); !errors.Is(err, ErrDiscoveryUnsupported) {
		t.Fatalf("err = %v, want ErrDiscoveryUnsupported", err)
	}
}

func TestJSONBinClient_PullUnwrapsRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Master-Key"); got != "master" {
			t.Errorf("X-Master-Key = %q", got)
		}
		if r.URL.Path != "/b/bin-1/latest" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"record": {"userCurrency": "MXN"}, "metadata": {"id": "bin-1"}}`)
	}))
	defer srv.Close()

	c := NewJSONBinClient(srv.URL)
	b, err := c.Pull(context.Background(), "master", "bin-1")
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	if b.UserCurrency != "MXN" {
		t.Errorf("userCurrency = %q", b.UserCurrency)
	}
}

func TestJSONBinClient_PullWithoutBinID(t *testing.T) {
	c := NewJSONBinClient("http://unused")
	if _, err := c.Pull(context.Background(), "master", ""); !errors.Is(err, ErrMissingBinID) {
		t.Fatalf("err = %v, want ErrMissingBinID", err)
	}
}

func TestJSONBinClient_PullNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewJSONBinClient(srv.URL)
	if _, err := c.Pull(context.Background(), "master", "gone"); !errors.Is(err, ErrBackupNotFound) {
		t.Fatalf("err = %v, want ErrBackupNotFound", err)
	}
}

func TestJSONBinClient_PushCreatesThenUpdates(t *testing.T) {
	var gotMethod, gotPath, gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotName = r.Header.Get("X-Bin-Name")
		fmt.Fprint(w, `{"metadata": {"id": "bin-9"}}`)
	}))
	defer srv.Close()

	c := NewJSONBinClient(srv.URL)
	bundle := &domain.Bundle{Transactions: []domain.Transaction{}}

	id, err := c.Push(context.Background(), "master", "", bundle)
	if err != nil {
		t.Fatalf("Push create: %v", err)
	}
	if id != "bin-9" || gotMethod != http.MethodPost || gotPath != "/b" || gotName != "nexo-backup" {
		t.Errorf("create: id=%q method=%s path=%s name=%q", id, gotMethod, gotPath, gotName)
	}

	if _, err := c.Push(context.Background(), "master", "bin-9", bundle); err != nil {
		t.Fatalf("Push update: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/b/bin-9" {
		t.Errorf("update: method=%s path=%s", gotMethod, gotPath)
	}
}

func TestJSONBinClient_VerifyRejectedKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewJSONBinClient(srv.URL)
	if err := c.Verify(context.Background(), "bad"); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("err = %v, want ErrInvalidCredential", err)
	}
}
