package admin

import (
	"github.com/Zachkp/portfolio/internal/content"
)

// Link is an outbound link on a card.
type Link struct {
	Label string
	URL   string
}

// Card is the display form of one record in an admin list.
type Card struct {
	ID          int64
	Title       string
	Subtitle    string
	Date        string
	Description string
	// Notes is a second description line; only education uses it.
	Notes string
	Links []Link
	// Icon and Dots are set for technologies only.
	Icon string
	Dots []bool
}

// CardFor maps a record to its card.
func CardFor(rec content.Record) Card {
	switch v := rec.(type) {
	case *content.Experience:
		return Card{
			ID:          v.ID,
			Title:       v.Position,
			Subtitle:    v.Company,
			Date:        content.Period(v.StartDate, v.EndDate, v.Current),
			Description: v.Description,
		}
	case *content.Project:
		c := Card{
			ID:          v.ID,
			Title:       v.Title,
			Subtitle:    "Technologies: " + orDefault(v.Technologies, "Not specified"),
			Description: v.Description,
		}
		if v.ProjectURL != "" {
			c.Links = append(c.Links, Link{"Live Demo", v.ProjectURL})
		}
		if v.GithubURL != "" {
			c.Links = append(c.Links, Link{"GitHub", v.GithubURL})
		}
		return c
	case *content.Technology:
		dots := make([]bool, content.MaxProficiency)
		for i := range dots {
			dots[i] = i < v.Level()
		}
		return Card{
			ID:       v.ID,
			Title:    v.Name,
			Subtitle: orDefault(v.Category, "Uncategorized"),
			Icon:     v.IconClass(),
			Dots:     dots,
		}
	case *content.Education:
		return Card{
			ID:          v.ID,
			Title:       v.Degree,
			Subtitle:    v.Institution,
			Date:        content.Period(v.StartDate, v.EndDate, v.Current),
			Description: v.Field,
			Notes:       v.Description,
		}
	case *content.Achievement:
		return Card{
			ID:          v.ID,
			Title:       v.Title,
			Subtitle:    orDefault(v.Issuer, "Not specified"),
			Date:        orDefault(v.Date, "No date"),
			Description: v.Description,
		}
	}
	return Card{ID: rec.Key()}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
