package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/site"
)

func (s *Server) publicRoutes(r *gin.Engine) {
	r.GET("/", s.index)
	// HTMX navigation fragment, re-highlighted from section visibility reports
	r.GET("/nav", s.nav)

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	// HTMX contact form endpoint, returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})
	r.POST("/contact", s.submitContact)

	r.GET("/api/theme", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"theme": s.deps.Theme.Get()})
	})
	r.GET("/ws/theme", s.themeFeed)
}

func (s *Server) index(c *gin.Context) {
	snap, err := s.deps.Store.Snapshot(c.Request.Context())
	if err != nil {
		log.Printf("web: loading portfolio: %v", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"error": "Failed to load portfolio",
		})
		return
	}
	nav := site.NewNavTracker(c.Query("section"))
	c.HTML(http.StatusOK, "index.html", s.pages.Build(snap, s.deps.Theme.Get(), nav, s.now()))
}

// nav starts from the section the page last highlighted and applies the
// visibility entries it reports. Malformed entries are skipped.
func (s *Server) nav(c *gin.Context) {
	tracker := site.NewNavTracker(c.Query("active"))
	var seen []site.Visibility
	for _, raw := range c.QueryArray("visible") {
		if v, ok := site.ParseVisibility(raw); ok {
			seen = append(seen, v)
		}
	}
	tracker.Observe(seen...)
	c.HTML(http.StatusOK, "nav.html", tracker.Links())
}

func (s *Server) submitContact(c *gin.Context) {
	var msg contact.Message
	if err := c.ShouldBind(&msg); err != nil {
		c.HTML(http.StatusBadRequest, "contact-error.html", gin.H{
			"error": contactProblem(err),
		})
		return
	}

	if err := s.deps.Mailer.Send(c.Request.Context(), msg); err != nil {
		log.Printf("web: contact: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

// contactProblem turns a binding failure into a message for the visitor.
func contactProblem(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Please fill in every field."
	}
	switch fe := verrs[0]; {
	case fe.Field() == "Email" && fe.Tag() == "email":
		return "Please enter a valid email address."
	case fe.Tag() == "max":
		return "Your message is too long."
	default:
		return "Please fill in every field."
	}
}
