// internal/admin/admin.go
//
// Platform-side HTTP surface: the admin dashboard, the super-admin store
// list, the current-store picker, a sign-in stub and the health probe.
//
// Context
// -------
// These routes live on the platform paths the host router passes through
// untouched (/admin, /api/…, /signin).  The router has already applied its
// coarse role gates by the time a request lands here; each group re-checks
// with acl middleware so the handlers are safe to mount on their own.
//
// Workflow
// --------
//
//	POST /api/admin/current-store {"storeId":"s1"}
//	  └─ acl.RequireAdmin → Stores.ByID("s1") → AccessFunc(sess, "s1")
//	                      → session.SetCurrentStore
//
// Notes
// -----
//   - JSON errors are {"error": "<status text>"} like the router's.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/shopfront/internal/acl"
	"github.com/yanizio/shopfront/internal/auth"
	"github.com/yanizio/shopfront/internal/session"
	"github.com/yanizio/shopfront/internal/store"
)

// Stores is the slice of the store repository the admin routes read.
type Stores interface {
	AllActive(ctx context.Context) ([]store.Record, error)
	ByID(ctx context.Context, id string) (*store.Record, error)
}

// AccessFunc decides whether sess may manage storeID.
type AccessFunc func(ctx context.Context, sess *auth.Session, storeID string) (bool, error)

// MembershipFunc lists the ids of stores userID is a member of.
type MembershipFunc func(ctx context.Context, userID string) ([]string, error)

// Handler groups the platform routes.
type Handler struct {
	Stores    Stores
	CanManage AccessFunc
	MemberOf  MembershipFunc // nil hides the store picker for non super-admins
}

// Routes returns a router meant to be mounted at "/".
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/api/healthz", h.healthz)
	r.Get("/signin", h.signIn)
	r.Post("/api/auth/signout", h.signOut)

	r.Group(func(r chi.Router) {
		r.Use(acl.RequireAdmin())
		r.Get("/admin", h.dashboard)
		r.Post("/api/admin/current-store", h.selectStore)
		r.Delete("/api/admin/current-store", h.clearStore)
	})

	r.Group(func(r chi.Router) {
		r.Use(acl.RequireRole(auth.RoleSuperAdmin))
		r.Get("/api/super-admin/stores", h.listStores)
	})
	return r
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type storeSummary struct {
	ID           string  `json:"id"`
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	CustomDomain *string `json:"customDomain"`
}

func (h *Handler) listStores(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Stores.AllActive(r.Context())
	if err != nil {
		zap.L().Error("list stores", zap.Error(err))
		writeError(w, http.StatusInternalServerError)
		return
	}
	out := make([]storeSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, storeSummary{
			ID:           rec.ID,
			Slug:         rec.Slug,
			Name:         rec.Name,
			CustomDomain: rec.CustomDomain,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"stores": out})
}

type selectRequest struct {
	StoreID string `json:"storeId"`
}

func (h *Handler) selectStore(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.FromContext(r.Context())

	var req selectRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil || req.StoreID == "" {
		writeError(w, http.StatusBadRequest)
		return
	}

	if _, err := h.Stores.ByID(r.Context(), req.StoreID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound)
			return
		}
		zap.L().Error("store by id", zap.String("store", req.StoreID), zap.Error(err))
		writeError(w, http.StatusInternalServerError)
		return
	}

	ok, err := h.CanManage(r.Context(), sess, req.StoreID)
	if err != nil {
		zap.L().Error("store access check",
			zap.String("user", sess.UserID),
			zap.String("store", req.StoreID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError)
		return
	}
	if !ok {
		writeError(w, http.StatusForbidden)
		return
	}

	session.SetCurrentStore(w, r, req.StoreID)
	writeJSON(w, http.StatusOK, map[string]string{"storeId": req.StoreID})
}

func (h *Handler) clearStore(w http.ResponseWriter, r *http.Request) {
	session.ClearCurrentStore(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	session.Logout(w, r)
	session.ClearCurrentStore(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int) {
	writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
}
