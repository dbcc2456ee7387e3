package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/admin"
	"github.com/Zachkp/portfolio/internal/auth"
	"github.com/Zachkp/portfolio/internal/content"
)

const (
	sessionCookie = "admin_session"
	userKey       = "admin_user"
)

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (s *Server) adminRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})
	r.POST("/admin/login", s.login)
	r.GET("/admin/logout", s.logout)

	pages := r.Group("/admin")
	pages.Use(s.requireSession(false))
	pages.GET("/dashboard", s.dashboard)
	pages.GET("/export/stats", s.exportStats)

	api := r.Group("/admin/api")
	api.Use(s.requireSession(true))
	api.GET("/stats", s.stats)
	api.GET("/profile", s.getProfile)
	api.POST("/profile", s.saveProfile)
	api.GET("/:resource", s.listResource)
	api.POST("/:resource", s.saveResource)
	api.DELETE("/:resource", s.deleteResource)
}

func (s *Server) clientHash(c *gin.Context) string {
	if s.deps.Tracker == nil {
		return "-"
	}
	return s.deps.Tracker.HashIP(c.ClientIP())
}

func (s *Server) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"error": "Invalid credentials",
		})
		return
	}

	ctx := c.Request.Context()
	user, err := s.deps.Auth.Authenticate(ctx, form.Username, form.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.Printf("Failed admin login attempt from %s", s.clientHash(c))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"error": "Invalid credentials",
		})
		return
	}
	if err != nil {
		log.Printf("web: login: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Login failed"})
		return
	}

	token, err := s.deps.Auth.StartSession(ctx, user.ID)
	if err != nil {
		log.Printf("web: starting session: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Login failed"})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(auth.SessionTTL.Seconds()), "/", "", c.Request.TLS != nil, true)
	log.Printf("Admin login successful from %s", s.clientHash(c))
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (s *Server) logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		if err := s.deps.Auth.EndSession(c.Request.Context(), token); err != nil {
			log.Printf("web: logout: %v", err)
		}
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	log.Printf("Admin logout from %s", s.clientHash(c))
	c.Redirect(http.StatusFound, "/admin/login")
}

// requireSession rejects requests without a live session. API requests get
// a 401 JSON body; pages redirect to the login form.
func (s *Server) requireSession(api bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(sessionCookie)
		user, err := s.deps.Auth.Session(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrNoSession) {
				log.Printf("web: session lookup: %v", err)
			}
			if api {
				jsonError(c, http.StatusUnauthorized, "authentication required")
				return
			}
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// section is one collection on the dashboard.
type section struct {
	Resource content.Resource
	Cards    []admin.Card
}

func (s *Server) dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	data := gin.H{"user": c.MustGet(userKey)}

	if s.deps.Tracker != nil {
		stats, err := s.deps.Tracker.Stats(ctx)
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		data["stats"] = stats
	}

	profile, err := s.deps.Store.Profile(ctx)
	if err != nil && !errors.Is(err, content.ErrNotFound) {
		log.Printf("web: loading profile: %v", err)
	}
	data["profile"] = profile

	var sections []section
	for _, r := range content.Resources {
		cards, err := s.cards(c, r)
		if err != nil {
			log.Printf("web: loading %s: %v", r, err)
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"error": "Failed to load " + r.Label(),
			})
			return
		}
		sections = append(sections, section{Resource: r, Cards: cards})
	}
	data["sections"] = sections

	c.HTML(http.StatusOK, "admin-dashboard.html", data)
}

func (s *Server) cards(c *gin.Context, r content.Resource) ([]admin.Card, error) {
	coll, err := s.deps.Store.Collection(r)
	if err != nil {
		return nil, err
	}
	recs, err := coll.Records(c.Request.Context())
	if err != nil {
		return nil, err
	}
	out := make([]admin.Card, len(recs))
	for i, rec := range recs {
		out[i] = admin.CardFor(rec)
	}
	return out, nil
}

func (s *Server) stats(c *gin.Context) {
	if s.deps.Tracker == nil {
		jsonError(c, http.StatusNotFound, "visitor tracking disabled")
		return
	}
	stats, err := s.deps.Tracker.Stats(c.Request.Context())
	if err != nil {
		jsonError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) exportStats(c *gin.Context) {
	if s.deps.Tracker == nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Visitor tracking disabled"})
		return
	}
	stats, err := s.deps.Tracker.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
	log.Printf("Admin stats exported by %s", s.clientHash(c))
	c.JSON(http.StatusOK, stats)
}

// parseForm accepts both form-encoded and multipart bodies, capped at the
// configured upload size.
func (s *Server) parseForm(c *gin.Context) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes())
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return c.Request.ParseMultipartForm(s.cfg.MaxUploadBytes())
	}
	return c.Request.ParseForm()
}

func formError(c *gin.Context, err error) {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) || strings.Contains(err.Error(), "request body too large") {
		jsonError(c, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	jsonError(c, http.StatusBadRequest, "malformed form")
}

func (s *Server) resource(c *gin.Context) (content.Resource, content.Collection, bool) {
	r, err := content.ParseResource(c.Param("resource"))
	if err != nil {
		jsonError(c, http.StatusNotFound, "unknown resource")
		return "", nil, false
	}
	coll, err := s.deps.Store.Collection(r)
	if err != nil {
		jsonError(c, http.StatusNotFound, "unknown resource")
		return "", nil, false
	}
	return r, coll, true
}

func (s *Server) listResource(c *gin.Context) {
	r, coll, ok := s.resource(c)
	if !ok {
		return
	}
	list, err := coll.ListAny(c.Request.Context())
	if err != nil {
		log.Printf("web: listing %s: %v", r, err)
		jsonError(c, http.StatusInternalServerError, "failed to load "+r.Label())
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) saveResource(c *gin.Context) {
	r, coll, ok := s.resource(c)
	if !ok {
		return
	}
	if err := s.parseForm(c); err != nil {
		formError(c, err)
		return
	}

	id, err := coll.Save(c.Request.Context(), c.Request.PostForm)
	var verr *content.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonError(c, http.StatusBadRequest, verr.Error())
		return
	case errors.Is(err, content.ErrNotFound):
		jsonError(c, http.StatusNotFound, "Item not found")
		return
	case err != nil:
		log.Printf("web: saving %s: %v", r, err)
		jsonError(c, http.StatusInternalServerError, "failed to save "+r.Label())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

func (s *Server) deleteResource(c *gin.Context) {
	r, coll, ok := s.resource(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		jsonError(c, http.StatusBadRequest, "id must be a number")
		return
	}

	err = coll.Delete(c.Request.Context(), id)
	if errors.Is(err, content.ErrNotFound) {
		jsonError(c, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		log.Printf("web: deleting %s %d: %v", r, id, err)
		jsonError(c, http.StatusInternalServerError, "failed to delete "+r.Label())
		return
	}
	log.Printf("%s %d deleted by admin from %s", r.Label(), id, s.clientHash(c))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
