// internal/auth/context.go
//
// Session identity carried on the request context.
//
// Usage
// -----
//
//	ctx = auth.WithSession(ctx, &auth.Session{UserID: "u1", Role: auth.RoleStaff})
//	sess, ok := auth.FromContext(ctx)
//
// Notes
// -----
//   - The router reads only Role.  Handlers may read UserID and Email.
//   - A nil *Session means “signed out”.
package auth

import "context"

// Role names issued in session tokens.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleStoreOwner = "STORE_OWNER"
	RoleStaff      = "STAFF"
	RoleCustomer   = "CUSTOMER"
)

// Session is the decoded, verified identity of the caller.
type Session struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the role may enter the admin dashboard.
func (s *Session) IsAdmin() bool {
	if s == nil {
		return false
	}
	switch s.Role {
	case RoleSuperAdmin, RoleStoreOwner, RoleStaff:
		return true
	}
	return false
}

// HasRole reports whether the session carries exactly role.
func (s *Session) HasRole(role string) bool {
	return s != nil && s.Role == role
}

// sessionKey is unexported to avoid context-key collisions.
type sessionKey struct{}

// WithSession returns a child context carrying sess.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// FromContext returns the session stored by WithSession.  ok is false when
// none is set.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
