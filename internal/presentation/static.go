package presentation

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/RaikyD/stitch-storefront/internal/auth"
)

//go:embed web/*
var webFS embed.FS

// accountPages are shell pages only a signed-in user may open.
var accountPages = []string{"/addresses", "/profile"}

// MountStatic serves the page shell. Paths that are not files, such as
// /boutique/b1/service/s1/measurements, get index.html so the page can route.
// Account pages send anonymous visitors to the login page first.
func MountStatic(r chi.Router, sessions *auth.Holder) {
	sub, _ := fs.Sub(webFS, "web")
	files := http.FileServer(http.FS(sub))
	shell := func(w http.ResponseWriter, req *http.Request) {
		http.ServeFileFS(w, req, sub, "index.html")
	}

	gated := r.With(sessions.Middleware, sessions.RequireAuth)
	for _, p := range accountPages {
		gated.Get(p, shell)
	}

	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		name := strings.TrimPrefix(path.Clean(req.URL.Path), "/")
		if name == "" || name == "." {
			shell(w, req)
			return
		}
		if st, err := fs.Stat(sub, name); err != nil || st.IsDir() {
			shell(w, req)
			return
		}
		files.ServeHTTP(w, req)
	})
}
