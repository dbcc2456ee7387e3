package web

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/content"
)

// uploadPattern lists the file types the profile form accepts.
const uploadPattern = "*.{png,jpg,jpeg,gif,pdf,svg}"

// AllowedUpload reports whether a submitted file name has an accepted extension.
func AllowedUpload(name string) bool {
	ok, err := doublestar.Match(uploadPattern, strings.ToLower(path.Base(filepath.ToSlash(name))))
	return err == nil && ok
}

func (s *Server) getProfile(c *gin.Context) {
	p, err := s.deps.Store.Profile(c.Request.Context())
	if errors.Is(err, content.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	if err != nil {
		log.Printf("web: loading profile: %v", err)
		jsonError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) saveProfile(c *gin.Context) {
	if err := s.parseForm(c); err != nil {
		formError(c, err)
		return
	}
	ctx := c.Request.Context()

	p, err := s.deps.Store.Profile(ctx)
	if errors.Is(err, content.ErrNotFound) {
		p = &content.Profile{}
	} else if err != nil {
		log.Printf("web: loading profile: %v", err)
		jsonError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if err := p.Apply(c.Request.PostForm); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	for field, dst := range map[string]*string{
		"profile_picture": &p.ProfilePicture,
		"resume":          &p.Resume,
	} {
		saved, err := s.storeUpload(c, field)
		if err != nil {
			log.Printf("web: storing %s: %v", field, err)
			jsonError(c, http.StatusInternalServerError, "failed to store upload")
			return
		}
		if saved != "" {
			*dst = saved
		}
	}

	var verr *content.ValidationError
	err = s.deps.Store.SaveProfile(ctx, p)
	switch {
	case errors.As(err, &verr):
		jsonError(c, http.StatusBadRequest, verr.Error())
		return
	case err != nil:
		log.Printf("web: saving profile: %v", err)
		jsonError(c, http.StatusInternalServerError, "failed to save profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": p.ID})
}

// storeUpload saves the file in field under a generated name and returns
// its public URL. A missing file or a disallowed type yields "".
func (s *Server) storeUpload(c *gin.Context, field string) (string, error) {
	if c.Request.MultipartForm == nil {
		return "", nil
	}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !AllowedUpload(fh.Filename) {
		log.Printf("web: rejected %s upload %q", field, fh.Filename)
		return "", nil
	}
	return s.saveFile(c, fh)
}

func (s *Server) saveFile(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, filepath.Join(s.cfg.UploadDir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
