package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/visitors"
)

// API is the admin REST surface the panel drives.
type API interface {
	List(ctx context.Context, r content.Resource) ([]content.Record, error)
	Save(ctx context.Context, r content.Resource, form url.Values) (int64, error)
	Delete(ctx context.Context, r content.Resource, id int64) error
	Profile(ctx context.Context) (*content.Profile, error)
	SaveProfile(ctx context.Context, form url.Values, files map[string]string) error
}

// APIError is a failed admin API call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("admin api: status %d", e.Status)
	}
	return fmt.Sprintf("admin api: status %d: %s", e.Status, e.Message)
}

// ErrLoginFailed is returned by Login for rejected credentials.
var ErrLoginFailed = errors.New("login failed")

// Client talks to a running portfolio server. It keeps the session cookie
// set by Login in its jar.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parsing server url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// Login authenticates against /admin/login.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{"username": {username}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/login", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/admin/dashboard" {
		return ErrLoginFailed
	}
	return nil
}

// result is the envelope of every mutating admin API call.
type result struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("admin request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading admin response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var r result
		_ = json.Unmarshal(body, &r)
		return &APIError{Status: resp.StatusCode, Message: r.Error}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding admin response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) mutate(req *http.Request) (int64, error) {
	var r result
	if err := c.do(req, &r); err != nil {
		return 0, err
	}
	if !r.Success {
		return 0, &APIError{Status: http.StatusOK, Message: r.Error}
	}
	return r.ID, nil
}

// NewRecord returns an empty record of the resource's type.
func NewRecord(r content.Resource) (content.Record, error) {
	switch r {
	case content.Experiences:
		return &content.Experience{}, nil
	case content.Projects:
		return &content.Project{}, nil
	case content.Technologies:
		return &content.Technology{}, nil
	case content.Educations:
		return &content.Education{}, nil
	case content.Achievements:
		return &content.Achievement{}, nil
	}
	return nil, fmt.Errorf("%w: %q", content.ErrUnknownResource, r)
}

// List fetches a collection in server order.
func (c *Client) List(ctx context.Context, r content.Resource) ([]content.Record, error) {
	var raw []json.RawMessage
	if err := c.get(ctx, "/admin/api/"+string(r), &raw); err != nil {
		return nil, err
	}
	out := make([]content.Record, 0, len(raw))
	for _, item := range raw {
		rec, err := NewRecord(r)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(item, rec); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", r, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Save posts form, form-encoded, to the resource endpoint.
func (c *Client) Save(ctx context.Context, r content.Resource, form url.Values) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/api/"+string(r), strings.NewReader(form.Encode()))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.mutate(req)
}

// Delete removes the record with id.
func (c *Client) Delete(ctx context.Context, r content.Resource, id int64) error {
	u := c.baseURL + "/admin/api/" + string(r) + "?id=" + strconv.FormatInt(id, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	_, err = c.mutate(req)
	return err
}

// Profile fetches the profile. A server without one yields an empty profile.
func (c *Client) Profile(ctx context.Context) (*content.Profile, error) {
	var p content.Profile
	if err := c.get(ctx, "/admin/api/profile", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile posts the profile form. files maps upload fields
// (profile_picture, resume) to local paths; with files the request is
// multipart.
func (c *Client) SaveProfile(ctx context.Context, form url.Values, files map[string]string) error {
	var (
		body        io.Reader
		contentType string
	)
	if len(files) == 0 {
		body = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	} else {
		buf := &bytes.Buffer{}
		mw := multipart.NewWriter(buf)
		for k, vals := range form {
			for _, v := range vals {
				if err := mw.WriteField(k, v); err != nil {
					return err
				}
			}
		}
		for field, path := range files {
			if err := attach(mw, field, path); err != nil {
				return err
			}
		}
		if err := mw.Close(); err != nil {
			return err
		}
		body, contentType = buf, mw.FormDataContentType()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/api/profile", body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	_, err = c.mutate(req)
	return err
}

func attach(mw *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", field, err)
	}
	defer f.Close()
	w, err := mw.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}

// Stats fetches the visitor summary.
func (c *Client) Stats(ctx context.Context) (*visitors.Stats, error) {
	var s visitors.Stats
	if err := c.get(ctx, "/admin/api/stats", &s); err != nil {
		return nil, err
	}
	return &s, nil
}
