package visitors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/db"
)

func setupTracker(t *testing.T) *Tracker {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	tr, err := NewTracker(database)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	return tr
}

func TestHashIP(t *testing.T) {
	tr := setupTracker(t)
	a := tr.HashIP("203.0.113.7")
	if len(a) != 16 {
		t.Fatalf("hash length %d", len(a))
	}
	if a != tr.HashIP("203.0.113.7") {
		t.Error("hash not stable")
	}
	if a == tr.HashIP("203.0.113.8") {
		t.Error("different IPs hashed equal")
	}

	other := setupTracker(t)
	if a == other.HashIP("203.0.113.7") {
		t.Error("salt not applied")
	}
}

func TestTracked(t *testing.T) {
	tests := map[string]bool{
		"/":                 true,
		"/projects":         true,
		"/static/css/a.css": false,
		"/uploads/x.png":    false,
		"/admin/dashboard":  false,
		"/favicon.ico":      false,
		"/privacy":          false,
		"/api/theme":        false,
	}
	for path, want := range tests {
		if got := Tracked(path); got != want {
			t.Errorf("Tracked(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestMiddlewareRecordsAndRespectsDNT(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tr := setupTracker(t)

	r := gin.New()
	r.Use(tr.Middleware())
	r.GET("/*path", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for _, tc := range []struct {
		path string
		dnt  bool
	}{
		{"/", false},
		{"/", true},
		{"/admin/dashboard", false},
		{"/about", false},
	} {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		req.Header.Set("User-Agent", "test-agent")
		if tc.dnt {
			req.Header.Set("DNT", "1")
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status %d", tc.path, w.Code)
		}
	}
	tr.Wait()

	stats, err := tr.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalVisitors != 2 {
		t.Errorf("total = %d, want 2", stats.TotalVisitors)
	}
	if stats.UniqueVisitors != 1 {
		t.Errorf("unique = %d, want 1", stats.UniqueVisitors)
	}
	if len(stats.RecentVisitors) != 2 || stats.RecentVisitors[0].UserAgent != "test-agent" {
		t.Errorf("recent = %+v", stats.RecentVisitors)
	}
}

func TestStatsWindowsAndCleanup(t *testing.T) {
	tr := setupTracker(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	record := func(at time.Time, ip, path string) {
		t.Helper()
		tr.now = func() time.Time { return at }
		if err := tr.Record(ctx, ip, "ua", path); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	record(now.Add(-2*time.Hour), "1.1.1.1", "/")
	record(now.Add(-3*24*time.Hour), "2.2.2.2", "/")
	record(now.Add(-20*24*time.Hour), "3.3.3.3", "/projects")
	record(now.AddDate(-2, 0, 0), "4.4.4.4", "/")

	tr.now = func() time.Time { return now }
	stats, err := tr.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalVisitors != 4 || stats.UniqueVisitors != 4 {
		t.Errorf("total/unique = %d/%d", stats.TotalVisitors, stats.UniqueVisitors)
	}
	if stats.VisitorsToday != 1 {
		t.Errorf("today = %d, want 1", stats.VisitorsToday)
	}
	if stats.VisitorsThisWeek != 2 {
		t.Errorf("week = %d, want 2", stats.VisitorsThisWeek)
	}
	if len(stats.TopPaths) != 2 || stats.TopPaths[0].Path != "/" || stats.TopPaths[0].Visits != 3 {
		t.Errorf("top paths = %+v", stats.TopPaths)
	}

	n, err := tr.Cleanup(ctx)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if n != 1 {
		t.Errorf("cleaned %d rows, want 1", n)
	}
}
