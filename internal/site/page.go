// Package site builds the view model of the public portfolio page.
package site

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/theme"
)

// Entry is a timeline item: experience or education.
type Entry struct {
	ID          int64
	Title       string
	Subtitle    string
	Period      string
	Detail      string
	Description template.HTML
}

type ProjectView struct {
	content.Project
	Body  template.HTML
	Stack []string
}

type SkillView struct {
	Name   string
	Icon   string
	Level  int
	Dots   []bool
	Detail string
}

// SkillGroup is the technologies of one category, in order.
type SkillGroup struct {
	Category string
	Skills   []SkillView
}

type AchievementView struct {
	content.Achievement
	Body template.HTML
}

// Stat is an animated number in the about section. Frames holds the values
// the page steps through, one per CounterTick.
type Stat struct {
	Label  string
	Target int
	Frames []int
}

func newStat(label string, target int) Stat {
	return Stat{Label: label, Target: target, Frames: NewCounter(target).Frames()}
}

// FrameList is Frames joined with commas for a data attribute.
func (s Stat) FrameList() string {
	parts := make([]string, len(s.Frames))
	for i, v := range s.Frames {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// Page is everything the index template renders.
type Page struct {
	Title        string
	Theme        theme.Theme
	Profile      content.Profile
	Bio          template.HTML
	Nav          []NavLink
	Stats        []Stat
	Experiences  []Entry
	Educations   []Entry
	Projects     []ProjectView
	Featured     []ProjectView
	Skills       []SkillGroup
	Achievements []AchievementView
	Year         int
}

// Builder turns a content snapshot into a Page.
type Builder struct {
	md *Markdown
}

func NewBuilder(md *Markdown) *Builder {
	return &Builder{md: md}
}

// Build maps snap to the page view model with the navigation highlight
// taken from nav; a nil nav highlights the first section. A missing profile
// yields an empty one titled "Portfolio".
func (b *Builder) Build(snap *content.Snapshot, th theme.Theme, nav *NavTracker, now time.Time) *Page {
	if nav == nil {
		nav = NewNavTracker("")
	}
	p := &Page{
		Title: "Portfolio",
		Theme: th,
		Nav:   nav.Links(),
		Year:  now.Year(),
	}
	if snap.Profile != nil {
		p.Profile = *snap.Profile
		p.Bio = b.md.Render(snap.Profile.Bio)
		p.Title = snap.Profile.Name + " - " + snap.Profile.Title
	}

	for _, e := range snap.Experiences {
		p.Experiences = append(p.Experiences, Entry{
			ID:          e.ID,
			Title:       e.Position,
			Subtitle:    e.Company,
			Period:      content.Period(e.StartDate, e.EndDate, e.Current),
			Description: b.md.Render(e.Description),
		})
	}
	for _, e := range snap.Educations {
		p.Educations = append(p.Educations, Entry{
			ID:          e.ID,
			Title:       e.Degree,
			Subtitle:    e.Institution,
			Period:      content.Period(e.StartDate, e.EndDate, e.Current),
			Detail:      e.Field,
			Description: b.md.Render(e.Description),
		})
	}
	for _, pr := range snap.Projects {
		v := ProjectView{Project: pr, Body: b.md.Render(pr.Description), Stack: splitList(pr.Technologies)}
		p.Projects = append(p.Projects, v)
		if pr.Featured {
			p.Featured = append(p.Featured, v)
		}
	}
	for _, a := range snap.Achievements {
		p.Achievements = append(p.Achievements, AchievementView{Achievement: a, Body: b.md.Render(a.Description)})
	}
	p.Skills = groupSkills(snap.Technologies)

	p.Stats = []Stat{
		newStat("Years Experience", yearsOfExperience(snap.Experiences, now)),
		newStat("Projects", len(snap.Projects)),
		newStat("Technologies", len(snap.Technologies)),
	}
	return p
}

func groupSkills(techs []content.Technology) []SkillGroup {
	var groups []SkillGroup
	index := map[string]int{}
	for _, t := range techs {
		cat := t.Category
		if cat == "" {
			cat = "Other"
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, SkillGroup{Category: cat})
		}
		level := t.Level()
		dots := make([]bool, content.MaxProficiency)
		for d := range dots {
			dots[d] = d < level
		}
		groups[i].Skills = append(groups[i].Skills, SkillView{
			Name:  t.Name,
			Icon:  t.IconClass(),
			Level: level,
			Dots:  dots,
		})
	}
	return groups
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// yearsOfExperience counts whole years since the earliest start year found
// in the experience list. Unparseable dates are ignored.
func yearsOfExperience(exps []content.Experience, now time.Time) int {
	earliest := 0
	for _, e := range exps {
		if y := findYear(e.StartDate); y > 0 && (earliest == 0 || y < earliest) {
			earliest = y
		}
	}
	if earliest == 0 || earliest > now.Year() {
		return 0
	}
	return now.Year() - earliest
}

// findYear returns the first run of exactly four digits in s.
func findYear(s string) int {
	run := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] >= '0' && s[i] <= '9' {
			run++
			continue
		}
		if run == 4 {
			y, _ := strconv.Atoi(s[i-4 : i])
			return y
		}
		run = 0
	}
	return 0
}
