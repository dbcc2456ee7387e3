package site

import (
	"strconv"
	"strings"
	"sync"
)

// Section is a named block of the public page.
type Section struct {
	ID    string
	Label string
}

// Sections are the page blocks in display order.
var Sections = []Section{
	{"home", "Home"},
	{"about", "About"},
	{"experience", "Experience"},
	{"projects", "Projects"},
	{"skills", "Skills"},
	{"education", "Education"},
	{"contact", "Contact"},
}

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Href   string
	Label  string
	Active bool
}

// NavLinks builds the navigation bar with the link for active highlighted.
func NavLinks(active string) []NavLink {
	links := make([]NavLink, len(Sections))
	for i, s := range Sections {
		links[i] = NavLink{Href: "#" + s.ID, Label: s.Label, Active: s.ID == active}
	}
	return links
}

// ActiveThreshold is the visible fraction at which a section takes over the
// navigation highlight.
const ActiveThreshold = 0.5

// Visibility reports how much of a section is on screen, from 0 to 1.
type Visibility struct {
	ID    string
	Ratio float64
}

// NavTracker follows which section is being read. Each reported section
// that reaches the threshold becomes active; later entries in a batch win.
// Sections dropping below the threshold never clear the highlight.
type NavTracker struct {
	mu     sync.Mutex
	active string
}

// NewNavTracker starts with active highlighted, or the first section when
// active is not a known section.
func NewNavTracker(active string) *NavTracker {
	if !known(active) {
		active = Sections[0].ID
	}
	return &NavTracker{active: active}
}

// Observe applies a batch of visibility changes and returns the active section.
func (n *NavTracker) Observe(entries ...Visibility) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, e := range entries {
		if e.Ratio >= ActiveThreshold && known(e.ID) {
			n.active = e.ID
		}
	}
	return n.active
}

func (n *NavTracker) Active() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

// Links is NavLinks for the tracked section.
func (n *NavTracker) Links() []NavLink {
	return NavLinks(n.Active())
}

func known(id string) bool {
	for _, s := range Sections {
		if s.ID == id {
			return true
		}
	}
	return false
}

// ParseVisibility reads an "id:ratio" pair as reported by the page.
func ParseVisibility(s string) (Visibility, bool) {
	id, ratio, ok := strings.Cut(s, ":")
	if !ok || id == "" {
		return Visibility{}, false
	}
	r, err := strconv.ParseFloat(ratio, 64)
	if err != nil || r < 0 || r > 1 {
		return Visibility{}, false
	}
	return Visibility{ID: id, Ratio: r}, true
}
