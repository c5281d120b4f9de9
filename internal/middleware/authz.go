package middleware

import "net/http"

// Enforcer is the subset of casbin.IEnforcer the authorizer needs.
type Enforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
}

// RoleLister is implemented by enforcers that can report a subject's roles.
type RoleLister interface {
	GetRolesForUser(name string, domain ...string) ([]string, error)
}

// Identify loads the session subject into the request context so that
// templates and handlers can tell who is logged in. It never rejects a request.
func Identify(sm SessionManager, roles RoleLister) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(SetUserInfo(r.Context(), loadUser(r, sm, roles))))
		})
	}
}

// Authorizer creates a new middleware for authorization.
// It checks the user's permissions using Casbin based on session data.
// Anonymous visitors are sent to the login page instead of getting a 403.
func Authorizer(e Enforcer, sm SessionManager) func(http.Handler) http.Handler {
	roles, _ := e.(RoleLister)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userInfo := loadUser(r, sm, roles)
			r = r.WithContext(SetUserInfo(r.Context(), userInfo))

			allowed, err := e.Enforce(userInfo.Subject, r.URL.Path, r.Method)
			if err != nil {
				http.Error(w, "Authorization error", http.StatusInternalServerError)
				return
			}
			if !allowed {
				if userInfo.IsAnonymous() && r.Method == http.MethodGet {
					http.Redirect(w, r, "/auth/login", http.StatusFound)
					return
				}
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
