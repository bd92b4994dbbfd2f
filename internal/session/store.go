// Package session owns the client-side credential lifecycle: the durable
// token, the resolved profile, and the authorization decisions derived from
// them. The Store is the single writer of session state; views read
// snapshots and never mutate.
package session

import (
	"context"
	"fmt"

	"github.com/mentora/mentora/pkg/client"
	"github.com/mentora/mentora/pkg/domain"
)

// Session is a snapshot of the current credential state.
//
// Invariant: User is non-nil only when Token is non-empty and was validated
// against the backend within this process's lifetime.
type Session struct {
	Token   string
	User    *domain.Profile
	Loading bool
}

// LoggedIn reports whether a validated profile is present.
func (s Session) LoggedIn() bool {
	return s.User != nil
}

// Store mediates all session mutations. Durable-storage writes happen in the
// same call as the in-memory mutation so the file and memory never disagree.
type Store struct {
	api   *client.Client
	vault *Vault
	sess  Session
}

// NewStore creates a store in the loading state; call Initialize to hydrate.
func NewStore(api *client.Client, vault *Vault) *Store {
	return &Store{api: api, vault: vault, sess: Session{Loading: true}}
}

// Session returns the current snapshot.
func (s *Store) Session() Session {
	return s.sess
}

// Initialize hydrates the token from durable storage and validates it with
// the backend. An invalid or expired token is cleared silently; a transient
// network failure keeps the token but leaves the profile unresolved so the
// user can retry by logging in. Always terminates with Loading false.
func (s *Store) Initialize(ctx context.Context) {
	defer func() { s.sess.Loading = false }()

	token := s.vault.Read()
	if token == "" {
		return
	}
	s.api.SetToken(token)
	s.sess.Token = token

	me, err := s.api.Me(ctx)
	if err != nil {
		if client.IsAuthFailure(err) {
			// Expired or revoked token: silent downgrade to logged-out.
			s.vault.Delete() //nolint:errcheck
			s.api.SetToken("")
			s.sess.Token = ""
		}
		return
	}
	s.sess.User = me
}

// Login exchanges credentials for a token. On failure the prior session
// state is left untouched and the backend's message is returned. No retry.
func (s *Store) Login(ctx context.Context, email, password string) error {
	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("session.Login: %w", err)
	}
	// Persist before mutating memory; a failed write must not leave a
	// session that will not survive a restart.
	if err := s.vault.Write(res.AccessToken); err != nil {
		return fmt.Errorf("session.Login: %w", err)
	}
	s.api.SetToken(res.AccessToken)
	user := res.User
	s.sess = Session{Token: res.AccessToken, User: &user}
	return nil
}

// Register creates an account without establishing a session; the caller
// logs in separately. Backend validation errors are returned verbatim.
func (s *Store) Register(ctx context.Context, req client.RegisterRequest) (*domain.Profile, error) {
	p, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("session.Register: %w", err)
	}
	return p, nil
}

// Logout notifies the backend on a best-effort basis, then clears the
// durable token and in-memory state unconditionally.
func (s *Store) Logout(ctx context.Context) {
	if s.sess.Token != "" {
		s.api.Logout(ctx) //nolint:errcheck // logout proceeds regardless of network outcome
	}
	s.vault.Delete() //nolint:errcheck
	s.api.SetToken("")
	s.sess = Session{}
}
