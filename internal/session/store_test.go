package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/mentora/mentora/pkg/client"
	"github.com/mentora/mentora/pkg/domain"
)

// checkInvariant fails the test if the session ever has a profile without a
// token backing it.
func checkInvariant(t *testing.T, s Session) {
	t.Helper()
	if s.User != nil && s.Token == "" {
		t.Fatal("session has a user but no token")
	}
}

func tempVault(t *testing.T) *Vault {
	t.Helper()
	return NewVaultAt(filepath.Join(t.TempDir(), "token"))
}

func authServer(t *testing.T, profile domain.Profile) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(client.LoginResponse{ //nolint:errcheck
				AccessToken: "tok-valid", User: profile,
			})
		case "/auth/me":
			if r.Header.Get("Authorization") != "Bearer tok-valid" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"}) //nolint:errcheck
				return
			}
			json.NewEncoder(w).Encode(profile) //nolint:errcheck
		case "/auth/logout":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInitializeNoToken(t *testing.T) {
	srv := authServer(t, domain.Profile{ID: uuid.New()})
	store := NewStore(client.New(srv.URL, ""), tempVault(t))

	store.Initialize(context.Background())

	sess := store.Session()
	checkInvariant(t, sess)
	if sess.Loading {
		t.Error("Loading still true after Initialize")
	}
	if sess.LoggedIn() {
		t.Error("logged in without a stored token")
	}
}

func TestInitializeValidToken(t *testing.T) {
	profile := domain.Profile{ID: uuid.New(), Email: "amara@example.lk", Role: domain.RoleStudent}
	srv := authServer(t, profile)
	vault := tempVault(t)
	if err := vault.Write("tok-valid"); err != nil {
		t.Fatal(err)
	}
	store := NewStore(client.New(srv.URL, ""), vault)

	store.Initialize(context.Background())

	sess := store.Session()
	checkInvariant(t, sess)
	if !sess.LoggedIn() {
		t.Fatal("not logged in with a valid stored token")
	}
	if sess.User.ID != profile.ID {
		t.Errorf("User.ID = %v, want %v", sess.User.ID, profile.ID)
	}
}

func TestInitializeExpiredTokenSilentDowngrade(t *testing.T) {
	srv := authServer(t, domain.Profile{ID: uuid.New()})
	vault := tempVault(t)
	if err := vault.Write("tok-expired"); err != nil {
		t.Fatal(err)
	}
	store := NewStore(client.New(srv.URL, ""), vault)

	store.Initialize(context.Background())

	sess := store.Session()
	checkInvariant(t, sess)
	if sess.LoggedIn() || sess.Token != "" {
		t.Errorf("session = %+v, want fully cleared", sess)
	}
	if vault.Read() != "" {
		t.Error("expired token still in durable storage")
	}
}

func TestInitializeNetworkErrorKeepsToken(t *testing.T) {
	// Unreachable backend: the token must survive so a later run can retry.
	vault := tempVault(t)
	if err := vault.Write("tok-valid"); err != nil {
		t.Fatal(err)
	}
	store := NewStore(client.New("http://127.0.0.1:1", ""), vault)

	store.Initialize(context.Background())

	sess := store.Session()
	checkInvariant(t, sess)
	if sess.LoggedIn() {
		t.Error("logged in despite unreachable backend")
	}
	if sess.Token != "tok-valid" {
		t.Errorf("Token = %q, want the stored token kept", sess.Token)
	}
	if vault.Read() != "tok-valid" {
		t.Error("durable token removed on a transient failure")
	}
}

func TestLoginPersistsBeforeMemory(t *testing.T) {
	profile := domain.Profile{ID: uuid.New(), Role: domain.RoleStudent}
	srv := authServer(t, profile)
	vault := tempVault(t)
	store := NewStore(client.New(srv.URL, ""), vault)
	store.Initialize(context.Background())

	if err := store.Login(context.Background(), "amara@example.lk", "secret1"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	sess := store.Session()
	checkInvariant(t, sess)
	if !sess.LoggedIn() || sess.Token != "tok-valid" {
		t.Errorf("session = %+v", sess)
	}
	if vault.Read() != "tok-valid" {
		t.Error("token not written to durable storage")
	}
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"}) //nolint:errcheck
	}))
	defer srv.Close()
	vault := tempVault(t)
	store := NewStore(client.New(srv.URL, ""), vault)
	store.Initialize(context.Background())

	err := store.Login(context.Background(), "amara@example.lk", "wrong")
	if err == nil {
		t.Fatal("Login() = nil error")
	}
	if got := client.ErrorMessage(err); got != "Incorrect email or password" {
		t.Errorf("message = %q, want the backend text verbatim", got)
	}

	sess := store.Session()
	checkInvariant(t, sess)
	if sess.LoggedIn() || sess.Token != "" || vault.Read() != "" {
		t.Error("failed login mutated session state")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	profile := domain.Profile{ID: uuid.New()}
	srv := authServer(t, profile)
	vault := tempVault(t)
	if err := vault.Write("tok-valid"); err != nil {
		t.Fatal(err)
	}
	store := NewStore(client.New(srv.URL, ""), vault)
	store.Initialize(context.Background())

	store.Logout(context.Background())

	sess := store.Session()
	checkInvariant(t, sess)
	if sess.LoggedIn() || sess.Token != "" {
		t.Errorf("session = %+v, want cleared", sess)
	}
	if vault.Read() != "" {
		t.Error("durable token survived logout")
	}
}

func TestLogoutClearsDespiteBackendFailure(t *testing.T) {
	tests := []struct {
		name    string
		baseURL func(t *testing.T) string
	}{
		{
			name: "server error",
			baseURL: func(t *testing.T) string {
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					if r.URL.Path == "/auth/logout" {
						w.WriteHeader(http.StatusInternalServerError)
						return
					}
					json.NewEncoder(w).Encode(domain.Profile{ID: uuid.New()}) //nolint:errcheck
				}))
				t.Cleanup(srv.Close)
				return srv.URL
			},
		},
		{
			name:    "unreachable",
			baseURL: func(t *testing.T) string { return "http://127.0.0.1:1" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vault := tempVault(t)
			if err := vault.Write("tok-valid"); err != nil {
				t.Fatal(err)
			}
			store := NewStore(client.New(tt.baseURL(t), ""), vault)
			store.Initialize(context.Background())

			store.Logout(context.Background())

			sess := store.Session()
			checkInvariant(t, sess)
			if sess.LoggedIn() || sess.Token != "" {
				t.Errorf("session = %+v, want cleared even when the backend fails", sess)
			}
			if vault.Read() != "" {
				t.Error("durable token survived a failed-notify logout")
			}
		})
	}
}

func TestVaultEnvOverride(t *testing.T) {
	t.Setenv(tokenEnvVar, "tok-env")
	vault := tempVault(t)
	if err := vault.Write("tok-file"); err != nil {
		t.Fatal(err)
	}
	if got := vault.Read(); got != "tok-env" {
		t.Errorf("Read() = %q, want the env var to win", got)
	}
}

func TestVaultDeleteMissingFile(t *testing.T) {
	vault := tempVault(t)
	if err := vault.Delete(); err != nil {
		t.Errorf("Delete() on missing file = %v, want nil", err)
	}
}

func TestVaultWritePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	vault := NewVaultAt(path)
	if err := vault.Write("tok"); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode = %o, want 0600", perm)
	}
}
