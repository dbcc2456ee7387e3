// Package admin drives the admin REST API: a client for a running server
// and the panel controller that turns its collections into cards, edit
// modals and status banners.
package admin

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"

	"github.com/Zachkp/portfolio/internal/content"
)

// DeletePrompt is the question asked before anything is deleted.
const DeletePrompt = "Are you sure you want to delete this item?"

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

type BannerKind string

const (
	Success BannerKind = "success"
	Failure BannerKind = "error"
)

// Banner is a transient status message.
type Banner struct {
	Kind BannerKind
	Text string
}

// Notifier displays banners.
type Notifier interface {
	Notify(b Banner)
}

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(b Banner)

func (f NotifyFunc) Notify(b Banner) { f(b) }

// Modal is the state of an open create or edit form.
type Modal struct {
	Resource content.Resource
	Title    string
	// Values pre-fills the form fields. Empty for create.
	Values url.Values
	ID     int64
}

// Editing reports whether the modal edits an existing record.
func (m *Modal) Editing() bool { return m.ID != 0 }

// Panel is the admin panel controller. One Panel serves one operator.
type Panel struct {
	api     API
	confirm Confirmer
	notify  Notifier

	mu      sync.Mutex
	tab     string
	records map[content.Resource][]content.Record
	cards   map[content.Resource][]Card
	modal   *Modal
}

// NewPanel creates a panel on the profile tab.
func NewPanel(api API, confirm Confirmer, notify Notifier) *Panel {
	return &Panel{
		api:     api,
		confirm: confirm,
		notify:  notify,
		tab:     "profile",
		records: map[content.Resource][]content.Record{},
		cards:   map[content.Resource][]Card{},
	}
}

func title(r content.Resource) string {
	l := r.Label()
	return strings.ToUpper(l[:1]) + l[1:]
}

func (p *Panel) banner(kind BannerKind, text string) {
	if p.notify != nil {
		p.notify.Notify(Banner{Kind: kind, Text: text})
	}
}

// Load fetches one collection and rebuilds its cards. A failure raises an
// error banner naming the collection.
func (p *Panel) Load(ctx context.Context, r content.Resource) error {
	if err := p.fetch(ctx, r); err != nil {
		p.banner(Failure, "Error loading "+r.Label())
		return err
	}
	return nil
}

func (p *Panel) fetch(ctx context.Context, r content.Resource) error {
	recs, err := p.api.List(ctx, r)
	if err != nil {
		log.Printf("admin: loading %s: %v", r, err)
		return err
	}
	cards := make([]Card, len(recs))
	for i, rec := range recs {
		cards[i] = CardFor(rec)
	}

	p.mu.Lock()
	p.records[r] = recs
	p.cards[r] = cards
	p.mu.Unlock()
	return nil
}

// LoadAll fetches every collection. Any failure raises one error banner.
func (p *Panel) LoadAll(ctx context.Context) error {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		first error
	)
	for _, r := range content.Resources {
		wg.Add(1)
		go func(r content.Resource) {
			defer wg.Done()
			if err := p.fetch(ctx, r); err != nil {
				mu.Lock()
				if first == nil {
					first = err
				}
				mu.Unlock()
			}
		}(r)
	}
	wg.Wait()
	if first != nil {
		p.banner(Failure, "Error loading data")
	}
	return first
}

// ShowTab switches tabs and loads the tab's collection when it has one.
func (p *Panel) ShowTab(ctx context.Context, tab string) error {
	p.mu.Lock()
	p.tab = tab
	p.mu.Unlock()

	r, err := content.ParseResource(tab)
	if err != nil {
		// profile and preview tabs have nothing to load
		return nil
	}
	return p.Load(ctx, r)
}

func (p *Panel) Tab() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tab
}

// Cards returns the last loaded cards of r.
func (p *Panel) Cards(r content.Resource) []Card {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Card(nil), p.cards[r]...)
}

// OpenCreate opens an empty modal for a new record.
func (p *Panel) OpenCreate(r content.Resource) *Modal {
	m := &Modal{Resource: r, Title: "Add " + title(r), Values: url.Values{}}
	p.mu.Lock()
	p.modal = m
	p.mu.Unlock()
	return m
}

// OpenEdit fetches r fresh and opens a modal pre-filled from the record
// with id. An id that is no longer listed opens nothing.
func (p *Panel) OpenEdit(ctx context.Context, r content.Resource, id int64) (*Modal, error) {
	recs, err := p.api.List(ctx, r)
	if err != nil {
		log.Printf("admin: loading %s: %v", r.Label(), err)
		p.banner(Failure, "Error loading "+r.Label())
		return nil, err
	}
	for _, rec := range recs {
		if rec.Key() == id {
			m := &Modal{Resource: r, Title: "Edit " + title(r), Values: rec.Values(), ID: id}
			p.mu.Lock()
			p.modal = m
			p.mu.Unlock()
			return m, nil
		}
	}
	return nil, nil
}

// Modal returns the open modal, if any.
func (p *Panel) Modal() *Modal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.modal
}

// Close dismisses the open modal.
func (p *Panel) Close() {
	p.mu.Lock()
	p.modal = nil
	p.mu.Unlock()
}

// Submit posts form to r. On success the modal closes and r is re-fetched.
func (p *Panel) Submit(ctx context.Context, r content.Resource, form url.Values) error {
	if _, err := p.api.Save(ctx, r, form); err != nil {
		log.Printf("admin: saving %s: %v", r.Label(), err)
		p.banner(Failure, "Error saving "+r.Label())
		return err
	}
	p.banner(Success, title(r)+" saved successfully!")
	p.Close()
	return p.Load(ctx, r)
}

// Delete asks for confirmation and deletes the record. It reports whether
// a request was sent.
func (p *Panel) Delete(ctx context.Context, r content.Resource, id int64) (bool, error) {
	if p.confirm == nil || !p.confirm.Confirm(DeletePrompt) {
		return false, nil
	}
	if err := p.api.Delete(ctx, r, id); err != nil {
		log.Printf("admin: deleting %s %d: %v", r, id, err)
		p.banner(Failure, "Error deleting item")
		return true, err
	}
	p.banner(Success, "Item deleted successfully!")
	return true, p.Load(ctx, r)
}

// SaveProfile posts the profile form with optional uploads.
func (p *Panel) SaveProfile(ctx context.Context, form url.Values, files map[string]string) error {
	if err := p.api.SaveProfile(ctx, form, files); err != nil {
		log.Printf("admin: saving profile: %v", err)
		p.banner(Failure, "Error updating profile")
		return err
	}
	p.banner(Success, "Profile updated successfully!")
	return nil
}

// Profile loads the profile form values.
func (p *Panel) Profile(ctx context.Context) (url.Values, error) {
	prof, err := p.api.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return prof.Values(), nil
}
