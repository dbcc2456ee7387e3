package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/Zachkp/portfolio/internal/content"
)

type call struct {
	Method string
	Path   string
	Query  string
	Form   url.Values
}

// fakeServer records admin API calls and serves canned responses.
type fakeServer struct {
	mu      sync.Mutex
	calls   []call
	list    []map[string]any
	saveErr bool
	listErr bool
}

func (f *fakeServer) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		f.mu.Lock()
		f.calls = append(f.calls, call{r.Method, r.URL.Path, r.URL.RawQuery, r.PostForm})
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/admin/login":
			if r.PostForm.Get("password") != "right" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "admin_session", Value: "tok", Path: "/"})
			w.Header().Set("Location", "/admin/dashboard")
			w.WriteHeader(http.StatusFound)
		case r.Method == http.MethodGet && f.listErr:
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]any{"error": "database is locked"})
		case r.Method == http.MethodGet:
			list := f.list
			if list == nil {
				list = []map[string]any{}
			}
			json.NewEncoder(w).Encode(list)
		case f.saveErr:
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "company: is required"})
		default:
			json.NewEncoder(w).Encode(map[string]any{"success": true, "id": 1})
		}
	})
}

func (f *fakeServer) recorded() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

type banners struct {
	mu  sync.Mutex
	got []Banner
}

func (b *banners) Notify(x Banner) {
	b.mu.Lock()
	b.got = append(b.got, x)
	b.mu.Unlock()
}

func setupPanel(t *testing.T, fake *fakeServer, confirm bool) (*Panel, *banners) {
	t.Helper()
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	b := &banners{}
	return NewPanel(client, ConfirmFunc(func(string) bool { return confirm }), b), b
}

func TestSubmitExperiencePostsAndRefetches(t *testing.T) {
	fake := &fakeServer{list: []map[string]any{
		{"id": 1, "position": "Engineer", "company": "Acme", "start_date": "2020-01", "current": true},
	}}
	panel, b := setupPanel(t, fake, true)
	ctx := context.Background()

	panel.OpenCreate(content.Experiences)
	form := url.Values{
		"position":   {"Engineer"},
		"company":    {"Acme"},
		"start_date": {"2020-01"},
		"current":    {"true"},
	}
	if err := panel.Submit(ctx, content.Experiences, form); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	calls := fake.recorded()
	if len(calls) != 2 {
		t.Fatalf("calls = %+v", calls)
	}
	post := calls[0]
	if post.Method != http.MethodPost || post.Path != "/admin/api/experience" {
		t.Errorf("first call %s %s", post.Method, post.Path)
	}
	for k, v := range form {
		if post.Form.Get(k) != v[0] {
			t.Errorf("posted %s = %q, want %q", k, post.Form.Get(k), v[0])
		}
	}
	if calls[1].Method != http.MethodGet || calls[1].Path != "/admin/api/experience" {
		t.Errorf("second call %s %s, want re-fetch", calls[1].Method, calls[1].Path)
	}

	if len(b.got) != 1 || b.got[0] != (Banner{Success, "Experience saved successfully!"}) {
		t.Errorf("banners = %+v", b.got)
	}
	if panel.Modal() != nil {
		t.Error("modal still open")
	}
	cards := panel.Cards(content.Experiences)
	if len(cards) != 1 || cards[0].Date != "2020-01 - Present" || cards[0].Subtitle != "Acme" {
		t.Errorf("cards = %+v", cards)
	}
}

func TestSubmitFailureShowsErrorBanner(t *testing.T) {
	fake := &fakeServer{saveErr: true}
	panel, b := setupPanel(t, fake, true)

	err := panel.Submit(context.Background(), content.Projects, url.Values{"title": {"x"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if apiErr, ok := err.(*APIError); !ok || apiErr.Status != http.StatusBadRequest {
		t.Errorf("err = %v", err)
	}
	if len(fake.recorded()) != 1 {
		t.Errorf("failed save re-fetched: %+v", fake.recorded())
	}
	if len(b.got) != 1 || b.got[0] != (Banner{Failure, "Error saving project"}) {
		t.Errorf("banners = %+v", b.got)
	}
}

func TestDeleteWithoutConfirmationSendsNothing(t *testing.T) {
	fake := &fakeServer{}
	panel, b := setupPanel(t, fake, false)

	sent, err := panel.Delete(context.Background(), content.Experiences, 5)
	if err != nil || sent {
		t.Fatalf("Delete = %v, %v", sent, err)
	}
	if calls := fake.recorded(); len(calls) != 0 {
		t.Errorf("requests sent: %+v", calls)
	}
	if len(b.got) != 0 {
		t.Errorf("banners = %+v", b.got)
	}
}

func TestDeleteConfirmed(t *testing.T) {
	fake := &fakeServer{}
	panel, b := setupPanel(t, fake, true)

	sent, err := panel.Delete(context.Background(), content.Experiences, 5)
	if err != nil || !sent {
		t.Fatalf("Delete = %v, %v", sent, err)
	}
	calls := fake.recorded()
	if len(calls) != 2 || calls[0].Method != http.MethodDelete || calls[0].Query != "id=5" {
		t.Errorf("calls = %+v", calls)
	}
	if b.got[0] != (Banner{Success, "Item deleted successfully!"}) {
		t.Errorf("banners = %+v", b.got)
	}
}

func TestRefetchFailureAfterWriteShowsErrorBanner(t *testing.T) {
	ctx := context.Background()

	fake := &fakeServer{listErr: true}
	panel, b := setupPanel(t, fake, true)
	if err := panel.Submit(ctx, content.Experiences, url.Values{"position": {"Engineer"}}); err == nil {
		t.Error("Submit hid the failed re-fetch")
	}
	want := []Banner{{Success, "Experience saved successfully!"}, {Failure, "Error loading experience"}}
	if len(b.got) != 2 || b.got[0] != want[0] || b.got[1] != want[1] {
		t.Errorf("submit banners = %+v", b.got)
	}

	fake = &fakeServer{listErr: true}
	panel, b = setupPanel(t, fake, true)
	sent, err := panel.Delete(ctx, content.Projects, 3)
	if !sent || err == nil {
		t.Errorf("Delete = %v, %v", sent, err)
	}
	want = []Banner{{Success, "Item deleted successfully!"}, {Failure, "Error loading project"}}
	if len(b.got) != 2 || b.got[0] != want[0] || b.got[1] != want[1] {
		t.Errorf("delete banners = %+v", b.got)
	}
}

func TestLoadAllFailureShowsOneBanner(t *testing.T) {
	fake := &fakeServer{listErr: true}
	panel, b := setupPanel(t, fake, true)
	if err := panel.LoadAll(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(b.got) != 1 || b.got[0] != (Banner{Failure, "Error loading data"}) {
		t.Errorf("banners = %+v", b.got)
	}
}

func TestOpenEditPrefillsFromRecord(t *testing.T) {
	fake := &fakeServer{list: []map[string]any{
		{"id": 3, "name": "Go", "category": "Backend", "proficiency": 5},
		{"id": 4, "name": "CSS"},
	}}
	panel, _ := setupPanel(t, fake, true)
	ctx := context.Background()

	m, err := panel.OpenEdit(ctx, content.Technologies, 3)
	if err != nil || m == nil {
		t.Fatalf("OpenEdit = %v, %v", m, err)
	}
	if m.Title != "Edit Technology" || !m.Editing() {
		t.Errorf("modal %+v", m)
	}
	if m.Values.Get("id") != "3" || m.Values.Get("name") != "Go" || m.Values.Get("proficiency") != "5" {
		t.Errorf("values %v", m.Values)
	}

	if m, err := panel.OpenEdit(ctx, content.Technologies, 99); m != nil || err != nil {
		t.Errorf("missing id opened %v, %v", m, err)
	}

	create := panel.OpenCreate(content.Educations)
	if create.Title != "Add Education" || create.Editing() || len(create.Values) != 0 {
		t.Errorf("create modal %+v", create)
	}
}

func TestLogin(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()
	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx := context.Background()

	if err := client.Login(ctx, "admin", "wrong"); err != ErrLoginFailed {
		t.Errorf("wrong password: %v", err)
	}
	if err := client.Login(ctx, "admin", "right"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	u, _ := url.Parse(srv.URL + "/admin/api/experience")
	if cookies := client.client.Jar.Cookies(u); len(cookies) != 1 || cookies[0].Name != "admin_session" {
		t.Errorf("cookies = %v", cookies)
	}
}

func TestCardFor(t *testing.T) {
	tests := []struct {
		name string
		rec  content.Record
		want Card
	}{
		{
			"project without stack",
			&content.Project{ID: 1, Title: "P", Description: "d", GithubURL: "https://github.com/x"},
			Card{ID: 1, Title: "P", Subtitle: "Technologies: Not specified", Description: "d",
				Links: []Link{{"GitHub", "https://github.com/x"}}},
		},
		{
			"education",
			&content.Education{ID: 2, Degree: "BSc", Institution: "Uni", Field: "CS", StartDate: "2019", EndDate: "2023", Description: "Honours"},
			Card{ID: 2, Title: "BSc", Subtitle: "Uni", Date: "2019 - 2023", Description: "CS", Notes: "Honours"},
		},
		{
			"achievement defaults",
			&content.Achievement{ID: 3, Title: "Award"},
			Card{ID: 3, Title: "Award", Subtitle: "Not specified", Date: "No date"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CardFor(tt.rec)
			if got.ID != tt.want.ID || got.Title != tt.want.Title || got.Subtitle != tt.want.Subtitle ||
				got.Date != tt.want.Date || got.Description != tt.want.Description || got.Notes != tt.want.Notes ||
				len(got.Links) != len(tt.want.Links) {
				t.Errorf("got %+v\nwant %+v", got, tt.want)
			}
			for i := range got.Links {
				if got.Links[i] != tt.want.Links[i] {
					t.Errorf("link %d = %+v", i, got.Links[i])
				}
			}
		})
	}

	tech := CardFor(&content.Technology{ID: 4, Name: "Go"})
	if tech.Icon != "fas fa-code" || tech.Subtitle != "Uncategorized" || len(tech.Dots) != 5 || !tech.Dots[2] || tech.Dots[3] {
		t.Errorf("technology card %+v", tech)
	}
}
