package preview

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves a built site from its output directory.
type Server struct {
	router chi.Router
	dir    string
	log    *slog.Logger
}

// NewServer creates a preview server rooted at dir.
func NewServer(dir string, log *slog.Logger) *Server {
	s := &Server{
		dir: dir,
		log: log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(NoCache)

	r.Get("/health", s.handleHealth)
	r.Get("/feed.xml", s.handleFeed)
	r.Handle("/*", http.FileServer(hiddenFileSystem{http.Dir(s.dir)}))

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/atom+xml; charset=utf-8")
	http.ServeFile(w, r, filepath.Join(s.dir, "feed.xml"))
}
