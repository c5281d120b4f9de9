package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"
	"net/http"
	"time"
	"ui-market/internal/logger"
	"ui-market/internal/middleware"

	"golang.org/x/oauth2"
)

// OIDCAuthenticator is implemented by *auth.Authenticator.
type OIDCAuthenticator interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	ExchangeSubject(ctx context.Context, code string) (string, error)
}

// AuthHandler holds the dependencies for the authentication handlers.
type AuthHandler struct {
	auth    OIDCAuthenticator
	session middleware.SessionManager
	log     logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(a OIDCAuthenticator, sm middleware.SessionManager, log logger.Logger) *AuthHandler {
	return &AuthHandler{auth: a, session: sm, log: log}
}

// handleLogin redirects the user to the OIDC provider to log in.
// It uses a random 'state' string for CSRF protection.
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := randString(16)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	// Store the state in a short-lived cookie to verify on callback.
	http.SetCookie(w, &http.Cookie{
		Name:     "state",
		Value:    state,
		Path:     "/",
		MaxAge:   int(10 * time.Minute / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
	})
	http.Redirect(w, r, h.auth.AuthCodeURL(state), http.StatusFound)
}

// handleCallback is the redirect URL for the OIDC provider. On success the
// verified subject is stored in the session.
func (h *AuthHandler) handleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("state")
	if err != nil {
		http.Error(w, "state cookie not found", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		http.Error(w, "state did not match", http.StatusBadRequest)
		return
	}

	subject, err := h.auth.ExchangeSubject(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		h.log.Error(err, "OIDC callback failed")
		http.Error(w, "Login failed", http.StatusUnauthorized)
		return
	}

	// A new token on privilege change prevents session fixation.
	if err := h.session.RenewToken(r.Context()); err != nil {
		h.log.Error(err, "Failed to renew session token")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.session.Put(r.Context(), middleware.SessionSubjectKey, subject)

	http.SetCookie(w, &http.Cookie{Name: "state", Path: "/", MaxAge: -1})
	h.log.With(map[string]interface{}{"subject": subject}).Info("User logged in")
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleLogout ends the session.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Destroy(r.Context()); err != nil {
		h.log.Error(err, "Failed to destroy session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// randString is a helper function to generate a random string for the 'state' parameter.
func randString(nByte int) (string, error) {
	b := make([]byte, nByte)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
