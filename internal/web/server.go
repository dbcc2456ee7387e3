// Package web serves the public portfolio, the admin dashboard and the
// admin REST API.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/auth"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/site"
	"github.com/Zachkp/portfolio/internal/theme"
	"github.com/Zachkp/portfolio/internal/visitors"
)

//go:embed templates/*.html
var templateFS embed.FS

// Deps are the services the server routes to.
type Deps struct {
	Store   *content.Store
	Auth    *auth.Service
	Tracker *visitors.Tracker
	Mailer  contact.Mailer
	Theme   *theme.Attribute
}

// Server is the portfolio HTTP server.
type Server struct {
	cfg    *config.Config
	deps   Deps
	pages  *site.Builder
	engine *gin.Engine
	srv    *http.Server
	now    func() time.Time
}

// New builds the gin engine with every route registered.
func New(cfg *config.Config, deps Deps) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:   cfg,
		deps:  deps,
		pages: site.NewBuilder(site.NewMarkdown()),
		now:   time.Now,
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)
	r.MaxMultipartMemory = cfg.MaxUploadBytes()
	if deps.Tracker != nil {
		r.Use(deps.Tracker.Middleware())
	}
	r.Static("/uploads", cfg.UploadDir)

	s.publicRoutes(r)
	s.adminRoutes(r)
	s.engine = r
	return s, nil
}

// Handler exposes the engine, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("portfolio listening on %s", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if s.deps.Tracker != nil {
		s.deps.Tracker.Wait()
	}
	return nil
}

// jsonError writes the admin API failure envelope.
func jsonError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "error": msg})
}
