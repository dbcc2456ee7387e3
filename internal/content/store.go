package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Zachkp/portfolio/internal/db"
)

// Resource names one of the five editable list collections. The value is
// the path segment used by the admin API.
type Resource string

const (
	Experiences  Resource = "experience"
	Projects     Resource = "projects"
	Technologies Resource = "technologies"
	Educations   Resource = "education"
	Achievements Resource = "achievements"
)

// Resources lists every collection in admin tab order.
var Resources = []Resource{Experiences, Projects, Technologies, Educations, Achievements}

// ErrUnknownResource is returned for a path segment that names no collection.
var ErrUnknownResource = errors.New("unknown resource")

// ParseResource validates a resource path segment.
func ParseResource(s string) (Resource, error) {
	for _, r := range Resources {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownResource, s)
}

// Label is the human-readable singular used in messages.
func (r Resource) Label() string {
	switch r {
	case Projects:
		return "project"
	case Technologies:
		return "technology"
	case Achievements:
		return "achievement"
	default:
		return string(r)
	}
}

// Collection is the resource-agnostic view of a list store the HTTP layer uses.
type Collection interface {
	ListAny(ctx context.Context) (any, error)
	Records(ctx context.Context) ([]Record, error)
	// Save creates a record, or updates the one named by a non-empty "id".
	Save(ctx context.Context, form url.Values) (int64, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// querier is the part of *sql.DB and *sql.Tx the writes need.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Table stores one record type in one SQLite table.
type Table[T any, P interface {
	*T
	Record
}] struct {
	db      *db.DB
	name    string
	columns []string
	orderBy string
}

func newTable[T any, P interface {
	*T
	Record
}](d *db.DB, name, orderBy string, columns ...string) *Table[T, P] {
	return &Table[T, P]{db: d, name: name, columns: columns, orderBy: orderBy}
}

func (t *Table[T, P]) selectSQL() string {
	return fmt.Sprintf("SELECT id, %s FROM %s", strings.Join(t.columns, ", "), t.name)
}

// List returns every record in display order. It never returns nil.
func (t *Table[T, P]) List(ctx context.Context) ([]T, error) {
	rows, err := t.db.QueryContext(ctx, t.selectSQL()+" ORDER BY "+t.orderBy)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", t.name, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		var rec T
		if err := rows.Scan(P(&rec).scanDest()...); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", t.name, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (t *Table[T, P]) ListAny(ctx context.Context) (any, error) {
	return t.List(ctx)
}

// Records lists the table as Record values.
func (t *Table[T, P]) Records(ctx context.Context) ([]Record, error) {
	list, err := t.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Record, len(list))
	for i := range list {
		out[i] = P(&list[i])
	}
	return out, nil
}

// Get returns the record with the given id or ErrNotFound.
func (t *Table[T, P]) Get(ctx context.Context, id int64) (*T, error) {
	var rec T
	err := t.db.QueryRowContext(ctx, t.selectSQL()+" WHERE id = ?", id).Scan(P(&rec).scanDest()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s %d: %w", t.name, id, err)
	}
	return &rec, nil
}

// Create inserts rec and stores the new id on it.
func (t *Table[T, P]) Create(ctx context.Context, rec *T) (int64, error) {
	return t.insert(ctx, t.db, rec)
}

func (t *Table[T, P]) insert(ctx context.Context, q querier, rec *T) (int64, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.name, strings.Join(t.columns, ", "), placeholders)
	res, err := q.ExecContext(ctx, query, P(rec).args()...)
	if err != nil {
		return 0, fmt.Errorf("inserting %s: %w", t.name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading %s id: %w", t.name, err)
	}
	P(rec).SetKey(id)
	return id, nil
}

// Update overwrites every column of the stored record with rec.
func (t *Table[T, P]) Update(ctx context.Context, rec *T) error {
	sets := make([]string, len(t.columns))
	for i, c := range t.columns {
		sets[i] = c + " = ?"
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.name, strings.Join(sets, ", "))
	args := append(P(rec).args(), P(rec).Key())
	res, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating %s: %w", t.name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *Table[T, P]) Save(ctx context.Context, form url.Values) (int64, error) {
	if raw := strings.TrimSpace(form.Get("id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, &ValidationError{Field: "id", Reason: "must be a number"}
		}
		rec, err := t.Get(ctx, id)
		if err != nil {
			return 0, err
		}
		if err := P(rec).Apply(form); err != nil {
			return 0, err
		}
		if err := P(rec).Validate(); err != nil {
			return 0, err
		}
		return id, t.Update(ctx, rec)
	}

	var rec T
	if err := P(&rec).Apply(form); err != nil {
		return 0, err
	}
	if err := P(&rec).Validate(); err != nil {
		return 0, err
	}
	return t.Create(ctx, &rec)
}

func (t *Table[T, P]) Delete(ctx context.Context, id int64) error {
	res, err := t.db.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting %s %d: %w", t.name, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *Table[T, P]) Count(ctx context.Context) (int, error) {
	var n int
	if err := t.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.name).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", t.name, err)
	}
	return n, nil
}

// Store provides CRUD access to all portfolio content.
type Store struct {
	db           *db.DB
	Experiences  *Table[Experience, *Experience]
	Projects     *Table[Project, *Project]
	Technologies *Table[Technology, *Technology]
	Educations   *Table[Education, *Education]
	Achievements *Table[Achievement, *Achievement]
}

// NewStore creates a Store backed by the given database.
func NewStore(d *db.DB) *Store {
	return &Store{
		db: d,
		Experiences: newTable[Experience](d, "experience", "order_index, id",
			"company", "position", "start_date", "end_date", "current", "description", "order_index"),
		Projects: newTable[Project](d, "projects", "order_index, id",
			"title", "description", "technologies", "project_url", "github_url", "image", "featured", "order_index"),
		Technologies: newTable[Technology](d, "technologies", "order_index, id",
			"name", "category", "proficiency", "icon", "order_index"),
		Educations: newTable[Education](d, "education", "id",
			"institution", "degree", "field", "start_date", "end_date", "current", "description"),
		Achievements: newTable[Achievement](d, "achievements", "id",
			"title", "description", "date", "issuer", "image"),
	}
}

// Collection returns the store for r.
func (s *Store) Collection(r Resource) (Collection, error) {
	switch r {
	case Experiences:
		return s.Experiences, nil
	case Projects:
		return s.Projects, nil
	case Technologies:
		return s.Technologies, nil
	case Educations:
		return s.Educations, nil
	case Achievements:
		return s.Achievements, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownResource, r)
}

// Profile returns the single profile row or ErrNotFound.
func (s *Store) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, title, department, bio, profile_picture, resume,
		       email, phone, location, updated_at
		FROM profile ORDER BY id LIMIT 1`).Scan(
		&p.ID, &p.Name, &p.Title, &p.Department, &p.Bio, &p.ProfilePicture, &p.Resume,
		&p.Email, &p.Phone, &p.Location, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return &p, nil
}

// SaveProfile inserts the profile when p.ID is zero, otherwise updates it.
func (s *Store) SaveProfile(ctx context.Context, p *Profile) error {
	return saveProfile(ctx, s.db, p)
}

func saveProfile(ctx context.Context, q querier, p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == 0 {
		res, err := q.ExecContext(ctx, `
			INSERT INTO profile (name, title, department, bio, profile_picture, resume, email, phone, location)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Name, p.Title, p.Department, p.Bio, p.ProfilePicture, p.Resume, p.Email, p.Phone, p.Location)
		if err != nil {
			return fmt.Errorf("inserting profile: %w", err)
		}
		p.ID, err = res.LastInsertId()
		return err
	}

	_, err := q.ExecContext(ctx, `
		UPDATE profile SET name = ?, title = ?, department = ?, bio = ?, profile_picture = ?,
		       resume = ?, email = ?, phone = ?, location = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		p.Name, p.Title, p.Department, p.Bio, p.ProfilePicture, p.Resume, p.Email, p.Phone, p.Location, p.ID)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}

// Snapshot is everything the public page shows.
type Snapshot struct {
	Profile      *Profile
	Experiences  []Experience
	Projects     []Project
	Technologies []Technology
	Educations   []Education
	Achievements []Achievement
}

// Snapshot loads the profile and every collection. A missing profile is not an error.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	snap.Profile, err = s.Profile(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if snap.Experiences, err = s.Experiences.List(ctx); err != nil {
		return nil, err
	}
	if snap.Projects, err = s.Projects.List(ctx); err != nil {
		return nil, err
	}
	if snap.Technologies, err = s.Technologies.List(ctx); err != nil {
		return nil, err
	}
	if snap.Educations, err = s.Educations.List(ctx); err != nil {
		return nil, err
	}
	if snap.Achievements, err = s.Achievements.List(ctx); err != nil {
		return nil, err
	}
	return &snap, nil
}
