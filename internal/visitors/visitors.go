// Package visitors records privacy-conscious page hits and summarises them
// for the admin dashboard. Raw IP addresses are never stored or logged.
package visitors

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/auth"
	"github.com/Zachkp/portfolio/internal/db"
)

// Retention is how long visitor rows are kept.
const Retention = "-12 months"

// Visit is one recorded page hit.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// PathStat counts hits on one path.
type PathStat struct {
	Path   string `json:"path"`
	Visits int64  `json:"visits"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisitors    int64      `json:"total_visitors"`
	UniqueVisitors   int64      `json:"unique_visitors"`
	VisitorsToday    int64      `json:"visitors_today"`
	VisitorsThisWeek int64      `json:"visitors_this_week"`
	TopPaths         []PathStat `json:"top_paths"`
	RecentVisitors   []Visit    `json:"recent_visitors"`
}

// Tracker hashes and stores visits.
type Tracker struct {
	db   *db.DB
	salt string
	now  func() time.Time
	wg   sync.WaitGroup
}

// NewTracker creates a Tracker with a fresh random salt, so hashes cannot be
// joined across restarts.
func NewTracker(d *db.DB) (*Tracker, error) {
	salt, err := auth.GenerateToken()
	if err != nil {
		return nil, err
	}
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
	return &Tracker{db: d, salt: salt, now: time.Now}, nil
}

// HashIP returns a salted, truncated SHA-256 of ip. It is stable for the
// lifetime of the tracker.
func (t *Tracker) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + t.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Record stores one visit.
func (t *Tracker) Record(ctx context.Context, ip, userAgent, path string) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)`,
		t.HashIP(ip), userAgent, path, t.now().UTC().Format(time.DateTime))
	if err != nil {
		return fmt.Errorf("recording visitor: %w", err)
	}
	return nil
}

// Wait blocks until background recordings started by the middleware finish.
func (t *Tracker) Wait() { t.wg.Wait() }

var skipPrefixes = []string{"/static/", "/images/", "/uploads/", "/admin/", "/favicon", "/privacy", "/api/", "/ws/"}

// Tracked reports whether path counts as a public page view.
func Tracked(path string) bool {
	for _, p := range skipPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

// Middleware records public page views in the background. Requests carrying
// DNT: 1 are not recorded.
func (t *Tracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !Tracked(path) || c.GetHeader("DNT") == "1" || c.Request.Method != "GET" {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			if err := t.Record(context.Background(), ip, ua, path); err != nil {
				log.Printf("visitors: %v", err)
			}
		}()
		c.Next()
	}
}

// Cleanup deletes visits older than the retention window.
func (t *Tracker) Cleanup(ctx context.Context) (int64, error) {
	res, err := t.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < datetime(?, ?)`,
		t.now().UTC().Format(time.DateTime), Retention)
	if err != nil {
		return 0, fmt.Errorf("cleaning up visitors: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than 12 months", n)
	}
	return n, nil
}

// Stats summarises recorded visits.
func (t *Tracker) Stats(ctx context.Context) (*Stats, error) {
	now := t.now().UTC().Format(time.DateTime)
	stats := &Stats{TopPaths: []PathStat{}, RecentVisitors: []Visit{}}

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE DATE(timestamp) = DATE(?)`, []any{now}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= datetime(?, '-7 days')`, []any{now}},
	}
	for _, c := range counts {
		if err := t.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("visitor stats: %w", err)
		}
	}

	rows, err := t.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS visits
		FROM visitors
		GROUP BY path
		ORDER BY visits DESC, path
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}
	for rows.Next() {
		var p PathStat
		if err := rows.Scan(&p.Path, &p.Visits); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning top paths: %w", err)
		}
		stats.TopPaths = append(stats.TopPaths, p)
	}
	rows.Close()

	recent, err := t.Recent(ctx, 50)
	if err != nil {
		return nil, err
	}
	stats.RecentVisitors = recent
	return stats, nil
}

// Recent returns the latest visits, newest first.
func (t *Tracker) Recent(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	out := make([]Visit, 0, limit)
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning visitor: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
