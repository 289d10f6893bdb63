// internal/acl/middleware.go
//
// Chi middleware helpers that enforce RBAC on the session role.  The host
// router already gates /admin and /api/super-admin; handlers mount these as
// a second line so they stay safe when wired without the router.

package acl

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/shopfront/internal/auth"
)

// RequireRole ensures the caller's session role is one of names.
func RequireRole(names ...string) func(http.Handler) http.Handler {
	if len(names) == 0 {
		panic("acl.RequireRole: at least one role name must be supplied")
	}
	allowSet := make(map[string]struct{}, len(names))
	for _, n := range names {
		allowSet[n] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := auth.FromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized)
				return
			}
			if _, ok := allowSet[sess.Role]; !ok {
				zap.L().Info("acl role denied",
					zap.String("user", sess.UserID),
					zap.String("role", sess.Role),
					zap.String("path", r.URL.Path))
				writeError(w, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin allows every role that may open the admin dashboard.
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(auth.RoleSuperAdmin, auth.RoleStoreOwner, auth.RoleStaff)
}

func writeError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": http.StatusText(status)})
}
