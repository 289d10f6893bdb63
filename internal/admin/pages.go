package admin

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/yanizio/shopfront/internal/auth"
	"github.com/yanizio/shopfront/internal/session"
	"github.com/yanizio/shopfront/internal/store"
)

type dashboardData struct {
	Session      *auth.Session
	CurrentStore string
	StoreName    string
	Pickable     []store.Record
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.FromContext(r.Context())
	data := dashboardData{Session: sess}
	if id, ok := session.CurrentStore(r); ok {
		data.CurrentStore = id
		// A stale cookie just shows the bare id.
		if rec, err := h.Stores.ByID(r.Context(), id); err == nil {
			data.StoreName = rec.Name
		}
	}

	pickable, err := h.pickable(r.Context(), sess)
	if err != nil {
		zap.L().Error("dashboard stores", zap.String("user", sess.UserID), zap.Error(err))
	}
	data.Pickable = pickable
	render(w, dashboardTemplate, data)
}

// pickable lists the stores sess may select: every active store for
// SUPER_ADMIN, its memberships for everyone else.
func (h *Handler) pickable(ctx context.Context, sess *auth.Session) ([]store.Record, error) {
	if sess.HasRole(auth.RoleSuperAdmin) {
		return h.Stores.AllActive(ctx)
	}
	if h.MemberOf == nil {
		return nil, nil
	}

	ids, err := h.MemberOf(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]store.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := h.Stores.ByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue // membership of a deleted store
		}
		if err != nil {
			return out, err
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	render(w, signInTemplate, struct{ CallbackURL string }{
		CallbackURL: SafeCallback(r.URL.Query().Get("callbackUrl")),
	})
}

// SafeCallback keeps callbackUrl on this site.  Anything that is not a
// local absolute path becomes "/admin".
func SafeCallback(raw string) string {
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, `/\`) {
		return "/admin"
	}
	return raw
}

func render(w http.ResponseWriter, tpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		zap.L().Error("admin render", zap.String("template", tpl.Name()), zap.Error(err))
	}
}

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Admin</title></head>
<body>
<h1>Dashboard</h1>
<p class="who">{{ .Session.Email }} ({{ .Session.Role }})</p>
{{ if .CurrentStore }}<p class="current-store" data-store-id="{{ .CurrentStore }}">Managing {{ if .StoreName }}{{ .StoreName }}{{ else }}store {{ .CurrentStore }}{{ end }}</p>
{{ else }}<p class="current-store">No store selected.</p>
{{ end }}{{ if .Pickable }}<ul class="store-picker">
{{ range .Pickable }}<li data-pick-id="{{ .ID }}">{{ if .Name }}{{ .Name }}{{ else }}{{ .Slug }}{{ end }}</li>
{{ end }}</ul>
{{ end }}</body>
</html>
`))

var signInTemplate = template.Must(template.New("signin").Parse(`<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>Sign in</title></head>
<body>
<h1>Sign in</h1>
<p>Sign in with your identity provider, then continue.</p>
<a class="continue" href="{{ .CallbackURL }}">Continue</a>
</body>
</html>
`))
