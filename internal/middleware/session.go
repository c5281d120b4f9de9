package middleware

import (
	"context"
	"net/http"
)

// SessionSubjectKey is the session key holding the logged-in OIDC subject.
const SessionSubjectKey = "user_subject"

// SessionManager is the part of *scs.SessionManager the login flow and the
// identity middleware use.
type SessionManager interface {
	LoadAndSave(next http.Handler) http.Handler
	Put(ctx context.Context, key string, val interface{})
	GetString(ctx context.Context, key string) string
	RenewToken(ctx context.Context) error
	Destroy(ctx context.Context) error
}

// loadUser builds the request's UserInfo from the session subject. Roles are
// looked up only when a RoleLister is available.
func loadUser(r *http.Request, sm SessionManager, roles RoleLister) *UserInfo {
	subject := sm.GetString(r.Context(), SessionSubjectKey)
	if subject == "" {
		return &UserInfo{Subject: AnonymousSubject}
	}
	userInfo := &UserInfo{Subject: subject}
	if roles != nil {
		userInfo.Roles, _ = roles.GetRolesForUser(subject)
	}
	return userInfo
}
