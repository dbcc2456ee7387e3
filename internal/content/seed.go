package content

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Document is the YAML layout accepted by Import.
type Document struct {
	Profile      *Profile      `yaml:"profile,omitempty"`
	Experiences  []Experience  `yaml:"experience,omitempty"`
	Projects     []Project     `yaml:"projects,omitempty"`
	Technologies []Technology  `yaml:"technologies,omitempty"`
	Educations   []Education   `yaml:"education,omitempty"`
	Achievements []Achievement `yaml:"achievements,omitempty"`
}

// ImportResult counts what Import wrote.
type ImportResult struct {
	Profile bool
	Records int
}

// DecodeDocument parses a YAML content document.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding content document: %w", err)
	}
	return &doc, nil
}

// Validate checks the profile and every record before anything is written.
func (d *Document) Validate() error {
	if d.Profile != nil {
		if err := d.Profile.Validate(); err != nil {
			return fmt.Errorf("importing profile: %w", err)
		}
	}
	return firstError(
		func() error { return validateAll("experience", d.Experiences) },
		func() error { return validateAll("projects", d.Projects) },
		func() error { return validateAll("technologies", d.Technologies) },
		func() error { return validateAll("education", d.Educations) },
		func() error { return validateAll("achievements", d.Achievements) },
	)
}

func validateAll[T any, P interface {
	*T
	Record
}](name string, recs []T) error {
	for i := range recs {
		if err := P(&recs[i]).Validate(); err != nil {
			return fmt.Errorf("importing %s #%d: %w", name, i+1, err)
		}
	}
	return nil
}

// Import writes doc into the store in one transaction. Records are always
// appended; the profile replaces the existing one. On error nothing is
// stored and the zero result is returned.
func (s *Store) Import(ctx context.Context, doc *Document, progress func()) (ImportResult, error) {
	if err := doc.Validate(); err != nil {
		return ImportResult{}, err
	}

	var profile *Profile
	if doc.Profile != nil {
		p := *doc.Profile
		if existing, err := s.Profile(ctx); err == nil {
			p.ID = existing.ID
		} else if !errors.Is(err, ErrNotFound) {
			return ImportResult{}, err
		}
		profile = &p
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, fmt.Errorf("starting import: %w", err)
	}
	defer tx.Rollback()

	var res ImportResult
	step := func() {
		res.Records++
		if progress != nil {
			progress()
		}
	}
	if profile != nil {
		if err := saveProfile(ctx, tx, profile); err != nil {
			return ImportResult{}, fmt.Errorf("importing profile: %w", err)
		}
		res.Profile = true
	}
	err = firstError(
		func() error { return insertAll(ctx, tx, s.Experiences, doc.Experiences, step) },
		func() error { return insertAll(ctx, tx, s.Projects, doc.Projects, step) },
		func() error { return insertAll(ctx, tx, s.Technologies, doc.Technologies, step) },
		func() error { return insertAll(ctx, tx, s.Educations, doc.Educations, step) },
		func() error { return insertAll(ctx, tx, s.Achievements, doc.Achievements, step) },
	)
	if err != nil {
		return ImportResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("committing import: %w", err)
	}
	return res, nil
}

// firstError runs fns in order and stops at the first failure.
func firstError(fns ...func() error) error {
	for _, fn := range fns {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

func insertAll[T any, P interface {
	*T
	Record
}](ctx context.Context, q querier, t *Table[T, P], recs []T, step func()) error {
	for i := range recs {
		if _, err := t.insert(ctx, q, &recs[i]); err != nil {
			return fmt.Errorf("importing %s: %w", t.name, err)
		}
		step()
	}
	return nil
}

// Len reports how many list records doc holds.
func (d *Document) Len() int {
	return len(d.Experiences) + len(d.Projects) + len(d.Technologies) + len(d.Educations) + len(d.Achievements)
}

// SeedDefaults fills an empty database with the sample portfolio. Tables
// that already hold rows are left alone.
func (s *Store) SeedDefaults(ctx context.Context) error {
	doc := SampleDocument()

	if _, err := s.Profile(ctx); errors.Is(err, ErrNotFound) {
		if err := s.SaveProfile(ctx, doc.Profile); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	empty := func(c Collection) (bool, error) {
		n, err := c.Count(ctx)
		return n == 0, err
	}
	partial := &Document{}
	if ok, err := empty(s.Experiences); err != nil {
		return err
	} else if ok {
		partial.Experiences = doc.Experiences
	}
	if ok, err := empty(s.Projects); err != nil {
		return err
	} else if ok {
		partial.Projects = doc.Projects
	}
	if ok, err := empty(s.Technologies); err != nil {
		return err
	} else if ok {
		partial.Technologies = doc.Technologies
	}
	if ok, err := empty(s.Educations); err != nil {
		return err
	} else if ok {
		partial.Educations = doc.Educations
	}
	_, err := s.Import(ctx, partial, nil)
	return err
}
