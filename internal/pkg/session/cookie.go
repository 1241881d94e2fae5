package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/pkg/hash"
)

const signedPrefix = "s:"

// CookieOptions shapes the session cookie.
type CookieOptions struct {
	Name     string
	MaxAge   time.Duration
	Secure   bool
	HTTPOnly bool
	Path     string
}

// Manager issues, resolves and revokes cookie sessions.
type Manager struct {
	store  Store
	signer hash.Signer
	opts   CookieOptions
}

// NewManager returns a Manager. Empty Name and Path default to "sid" and "/".
func NewManager(store Store, signer hash.Signer, opts CookieOptions) *Manager {
	if opts.Name == "" {
		opts.Name = "sid"
	}
	if opts.Path == "" {
		opts.Path = "/"
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 10 * time.Minute
	}

	return &Manager{store: store, signer: signer, opts: opts}
}

// Issue creates a session for identity and returns the cookie to send.
func (m *Manager) Issue(ctx context.Context, identity Identity) (*http.Cookie, error) {
	id, err := m.store.Create(ctx, identity)
	if err != nil {
		return nil, err
	}

	return m.cookie(m.encode(id), int(m.opts.MaxAge/time.Second)), nil
}

// Revoke destroys the session id and returns a cookie that clears it client side.
func (m *Manager) Revoke(ctx context.Context, id string) (*http.Cookie, error) {
	if id != "" {
		if err := m.store.Destroy(ctx, id); err != nil {
			return nil, err
		}
	}

	return m.cookie("", -1), nil
}

// Resolve implements router.SessionResolver: a valid cookie attaches Current to
// the request context; anything else leaves the request untouched.
func (m *Manager) Resolve(r *http.Request) *http.Request {
	c, err := r.Cookie(m.opts.Name)
	if err != nil {
		return r
	}

	id, ok := m.decode(c.Value)
	if !ok {
		slog.WarnContext(r.Context(), "session cookie signature mismatch")
		return r
	}

	identity, err := m.store.Get(r.Context(), id)
	if errors.Is(err, goerror.ErrNotFound) {
		return r
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load session", "error", err)
		return r
	}

	return r.WithContext(WithCurrent(r.Context(), Current{ID: id, Identity: *identity}))
}

func (m *Manager) encode(id string) string {
	return signedPrefix + id + "." + m.signer.Sign(id)
}

func (m *Manager) decode(value string) (string, bool) {
	rest, ok := strings.CutPrefix(value, signedPrefix)
	if !ok {
		return "", false
	}

	dot := strings.LastIndexByte(rest, '.')
	if dot <= 0 {
		return "", false
	}

	id, sig := rest[:dot], rest[dot+1:]
	if !m.signer.Verify(id, sig) {
		return "", false
	}

	return id, true
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.Name,
		Value:    value,
		Path:     m.opts.Path,
		MaxAge:   maxAge,
		Secure:   m.opts.Secure,
		HttpOnly: m.opts.HTTPOnly,
		SameSite: http.SameSiteLaxMode,
	}
}
