package ui

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/upb/greeting-app/internal/ui/assets"
	"github.com/upb/greeting-app/middleware"
	"go.uber.org/zap"
	gomponents "maragu.dev/gomponents"
)

// Handler serves the greeting shell, its fragment and its static assets.
type Handler struct {
	client     *Client
	logger     *zap.Logger
	production bool
	staticDir  string
}

// NewHandler creates a new ui Handler. staticDir is served from disk outside
// production when it exists; otherwise the embedded assets are used.
func NewHandler(client *Client, logger *zap.Logger, production bool, staticDir string) *Handler {
	return &Handler{
		client:     client,
		logger:     logger,
		production: production,
		staticDir:  staticDir,
	}
}

// Mount registers the shell routes on r. Missing assets are handed to
// Fallback(notFound).
func (h *Handler) Mount(r chi.Router, notFound http.Handler) {
	r.Get("/", h.Page)
	r.Get("/ui/greeting", h.Greeting)
	r.Handle("/static/*", http.StripPrefix("/static/", h.Static(h.Fallback(notFound))))
}

// Page renders the shell in its loading state.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, shellPage(View{State: StateLoading}))
}

// Greeting fetches the username once, bound to the request context, and
// renders the settled fragment.
func (h *Handler) Greeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.client.GetUsername(ctx)
	if err != nil {
		if ctx.Err() != nil {
			h.logger.Debug("greeting request cancelled",
				zap.String("request_id", middleware.GetRequestIDFromContext(ctx)))
			return
		}
		h.logger.Warn("failed to load username",
			zap.String("request_id", middleware.GetRequestIDFromContext(ctx)),
			zap.Error(err))
		renderHTML(w, http.StatusOK, greetingContent(View{State: StateError, Err: err.Error()}))
		return
	}

	renderHTML(w, http.StatusOK, greetingContent(View{State: StateSuccess, Username: user.Username}))
}

// Static serves shell assets and hands anything that is not a regular file
// to miss. Production serves the embedded files with a one day cache lifetime.
func (h *Handler) Static(miss http.Handler) http.Handler {
	assetFS, err := h.assetFS()
	if err != nil {
		h.logger.Error("embedded assets unavailable", zap.Error(err))
		return miss
	}
	files := http.FileServer(http.FS(assetFS))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if info, err := fs.Stat(assetFS, name); err != nil || info.IsDir() {
			miss.ServeHTTP(w, r)
			return
		}
		if h.production {
			w.Header().Set("Cache-Control", "public, max-age=86400")
		}
		files.ServeHTTP(w, r)
	})
}

// assetFS picks the on-disk static dir outside production when it exists,
// otherwise the embedded assets.
func (h *Handler) assetFS() (fs.FS, error) {
	if !h.production && h.staticDir != "" {
		if info, err := os.Stat(h.staticDir); err == nil && info.IsDir() {
			return os.DirFS(h.staticDir), nil
		}
	}
	return fs.Sub(assets.StaticFS(), "static")
}

// Fallback serves the shell for unmatched non-API GETs in production and
// delegates everything else to notFound.
func (h *Handler) Fallback(notFound http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.production && r.Method == http.MethodGet && !isAPIPath(r.URL.Path) {
			h.Page(w, r)
			return
		}
		notFound.ServeHTTP(w, r)
	}
}

func isAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
