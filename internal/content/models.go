package content

import (
	"net/url"
	"strconv"
	"time"
)

// Record is implemented by the pointer types of the five list resources.
type Record interface {
	Key() int64
	SetKey(id int64)
	// Apply copies the fields present in v onto the record.
	Apply(v url.Values) error
	// Values encodes the record the way its edit form submits it.
	Values() url.Values
	Validate() error

	scanDest() []any
	args() []any
}

type Profile struct {
	ID             int64     `json:"id" yaml:"-"`
	Name           string    `json:"name" yaml:"name"`
	Title          string    `json:"title" yaml:"title"`
	Department     string    `json:"department" yaml:"department"`
	Bio            string    `json:"bio" yaml:"bio"`
	ProfilePicture string    `json:"profile_picture" yaml:"profile_picture,omitempty"`
	Resume         string    `json:"resume" yaml:"resume,omitempty"`
	Email          string    `json:"email" yaml:"email,omitempty"`
	Phone          string    `json:"phone" yaml:"phone,omitempty"`
	Location       string    `json:"location" yaml:"location,omitempty"`
	UpdatedAt      time.Time `json:"updated_at" yaml:"-"`
}

func (p *Profile) Apply(v url.Values) error {
	applyString(v, "name", &p.Name)
	applyString(v, "title", &p.Title)
	applyString(v, "department", &p.Department)
	applyString(v, "bio", &p.Bio)
	applyString(v, "email", &p.Email)
	applyString(v, "phone", &p.Phone)
	applyString(v, "location", &p.Location)
	return nil
}

func (p *Profile) Values() url.Values {
	return url.Values{
		"name":       {p.Name},
		"title":      {p.Title},
		"department": {p.Department},
		"bio":        {p.Bio},
		"email":      {p.Email},
		"phone":      {p.Phone},
		"location":   {p.Location},
	}
}

func (p *Profile) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"name", p.Name}, {"title", p.Title}, {"department", p.Department}, {"bio", p.Bio},
	} {
		if err := required(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

type Experience struct {
	ID          int64  `json:"id" yaml:"-"`
	Company     string `json:"company" yaml:"company"`
	Position    string `json:"position" yaml:"position"`
	StartDate   string `json:"start_date" yaml:"start_date"`
	EndDate     string `json:"end_date" yaml:"end_date,omitempty"`
	Current     bool   `json:"current" yaml:"current,omitempty"`
	Description string `json:"description" yaml:"description,omitempty"`
	OrderIndex  int    `json:"order_index" yaml:"order_index,omitempty"`
}

func (e *Experience) Key() int64      { return e.ID }
func (e *Experience) SetKey(id int64) { e.ID = id }

func (e *Experience) Apply(v url.Values) error {
	applyString(v, "company", &e.Company)
	applyString(v, "position", &e.Position)
	applyString(v, "start_date", &e.StartDate)
	applyString(v, "end_date", &e.EndDate)
	applyBool(v, "current", &e.Current)
	applyString(v, "description", &e.Description)
	return applyInt(v, "order_index", &e.OrderIndex)
}

func (e *Experience) Values() url.Values {
	v := url.Values{
		"company":     {e.Company},
		"position":    {e.Position},
		"start_date":  {e.StartDate},
		"end_date":    {e.EndDate},
		"current":     {formBool(e.Current)},
		"description": {e.Description},
		"order_index": {strconv.Itoa(e.OrderIndex)},
	}
	formID(v, e.ID)
	return v
}

func (e *Experience) Validate() error {
	if err := required("company", e.Company); err != nil {
		return err
	}
	if err := required("position", e.Position); err != nil {
		return err
	}
	return required("start_date", e.StartDate)
}

func (e *Experience) scanDest() []any {
	return []any{&e.ID, &e.Company, &e.Position, &e.StartDate, &e.EndDate, &e.Current, &e.Description, &e.OrderIndex}
}

func (e *Experience) args() []any {
	return []any{e.Company, e.Position, e.StartDate, e.EndDate, e.Current, e.Description, e.OrderIndex}
}

type Education struct {
	ID          int64  `json:"id" yaml:"-"`
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree" yaml:"degree"`
	Field       string `json:"field" yaml:"field,omitempty"`
	StartDate   string `json:"start_date" yaml:"start_date,omitempty"`
	EndDate     string `json:"end_date" yaml:"end_date,omitempty"`
	Current     bool   `json:"current" yaml:"current,omitempty"`
	Description string `json:"description" yaml:"description,omitempty"`
}

func (e *Education) Key() int64      { return e.ID }
func (e *Education) SetKey(id int64) { e.ID = id }

func (e *Education) Apply(v url.Values) error {
	applyString(v, "institution", &e.Institution)
	applyString(v, "degree", &e.Degree)
	applyString(v, "field", &e.Field)
	applyString(v, "start_date", &e.StartDate)
	applyString(v, "end_date", &e.EndDate)
	applyBool(v, "current", &e.Current)
	applyString(v, "description", &e.Description)
	return nil
}

func (e *Education) Values() url.Values {
	v := url.Values{
		"institution": {e.Institution},
		"degree":      {e.Degree},
		"field":       {e.Field},
		"start_date":  {e.StartDate},
		"end_date":    {e.EndDate},
		"current":     {formBool(e.Current)},
		"description": {e.Description},
	}
	formID(v, e.ID)
	return v
}

func (e *Education) Validate() error {
	if err := required("institution", e.Institution); err != nil {
		return err
	}
	return required("degree", e.Degree)
}

func (e *Education) scanDest() []any {
	return []any{&e.ID, &e.Institution, &e.Degree, &e.Field, &e.StartDate, &e.EndDate, &e.Current, &e.Description}
}

func (e *Education) args() []any {
	return []any{e.Institution, e.Degree, e.Field, e.StartDate, e.EndDate, e.Current, e.Description}
}

type Project struct {
	ID           int64  `json:"id" yaml:"-"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	Technologies string `json:"technologies" yaml:"technologies,omitempty"`
	ProjectURL   string `json:"project_url" yaml:"project_url,omitempty"`
	GithubURL    string `json:"github_url" yaml:"github_url,omitempty"`
	Image        string `json:"image" yaml:"image,omitempty"`
	Featured     bool   `json:"featured" yaml:"featured,omitempty"`
	OrderIndex   int    `json:"order_index" yaml:"order_index,omitempty"`
}

func (p *Project) Key() int64      { return p.ID }
func (p *Project) SetKey(id int64) { p.ID = id }

func (p *Project) Apply(v url.Values) error {
	applyString(v, "title", &p.Title)
	applyString(v, "description", &p.Description)
	applyString(v, "technologies", &p.Technologies)
	applyString(v, "project_url", &p.ProjectURL)
	applyString(v, "github_url", &p.GithubURL)
	applyString(v, "image", &p.Image)
	applyBool(v, "featured", &p.Featured)
	return applyInt(v, "order_index", &p.OrderIndex)
}

func (p *Project) Values() url.Values {
	v := url.Values{
		"title":        {p.Title},
		"description":  {p.Description},
		"technologies": {p.Technologies},
		"project_url":  {p.ProjectURL},
		"github_url":   {p.GithubURL},
		"image":        {p.Image},
		"featured":     {formBool(p.Featured)},
		"order_index":  {strconv.Itoa(p.OrderIndex)},
	}
	formID(v, p.ID)
	return v
}

func (p *Project) Validate() error {
	if err := required("title", p.Title); err != nil {
		return err
	}
	return required("description", p.Description)
}

func (p *Project) scanDest() []any {
	return []any{&p.ID, &p.Title, &p.Description, &p.Technologies, &p.ProjectURL, &p.GithubURL, &p.Image, &p.Featured, &p.OrderIndex}
}

func (p *Project) args() []any {
	return []any{p.Title, p.Description, p.Technologies, p.ProjectURL, p.GithubURL, p.Image, p.Featured, p.OrderIndex}
}

type Achievement struct {
	ID          int64  `json:"id" yaml:"-"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description,omitempty"`
	Date        string `json:"date" yaml:"date,omitempty"`
	Issuer      string `json:"issuer" yaml:"issuer,omitempty"`
	Image       string `json:"image" yaml:"image,omitempty"`
}

func (a *Achievement) Key() int64      { return a.ID }
func (a *Achievement) SetKey(id int64) { a.ID = id }

func (a *Achievement) Apply(v url.Values) error {
	applyString(v, "title", &a.Title)
	applyString(v, "description", &a.Description)
	applyString(v, "date", &a.Date)
	applyString(v, "issuer", &a.Issuer)
	applyString(v, "image", &a.Image)
	return nil
}

func (a *Achievement) Values() url.Values {
	v := url.Values{
		"title":       {a.Title},
		"description": {a.Description},
		"date":        {a.Date},
		"issuer":      {a.Issuer},
		"image":       {a.Image},
	}
	formID(v, a.ID)
	return v
}

func (a *Achievement) Validate() error {
	return required("title", a.Title)
}

func (a *Achievement) scanDest() []any {
	return []any{&a.ID, &a.Title, &a.Description, &a.Date, &a.Issuer, &a.Image}
}

func (a *Achievement) args() []any {
	return []any{a.Title, a.Description, a.Date, a.Issuer, a.Image}
}

// Technology proficiency runs from 1 to 5; zero means unrated.
type Technology struct {
	ID          int64  `json:"id" yaml:"-"`
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category,omitempty"`
	Proficiency int    `json:"proficiency" yaml:"proficiency,omitempty"`
	Icon        string `json:"icon" yaml:"icon,omitempty"`
	OrderIndex  int    `json:"order_index" yaml:"order_index,omitempty"`
}

const (
	MaxProficiency     = 5
	DefaultProficiency = 3
	DefaultIcon        = "fas fa-code"
)

// Level is the proficiency to display. Unrated technologies show the default.
func (t Technology) Level() int {
	if t.Proficiency == 0 {
		return DefaultProficiency
	}
	return t.Proficiency
}

// IconClass is the icon to display, falling back to a generic code icon.
func (t Technology) IconClass() string {
	if t.Icon == "" {
		return DefaultIcon
	}
	return t.Icon
}

func (t *Technology) Key() int64      { return t.ID }
func (t *Technology) SetKey(id int64) { t.ID = id }

func (t *Technology) Apply(v url.Values) error {
	applyString(v, "name", &t.Name)
	applyString(v, "category", &t.Category)
	applyString(v, "icon", &t.Icon)
	if err := applyInt(v, "proficiency", &t.Proficiency); err != nil {
		return err
	}
	return applyInt(v, "order_index", &t.OrderIndex)
}

func (t *Technology) Values() url.Values {
	v := url.Values{
		"name":        {t.Name},
		"category":    {t.Category},
		"proficiency": {strconv.Itoa(t.Proficiency)},
		"icon":        {t.Icon},
		"order_index": {strconv.Itoa(t.OrderIndex)},
	}
	formID(v, t.ID)
	return v
}

func (t *Technology) Validate() error {
	if err := required("name", t.Name); err != nil {
		return err
	}
	if t.Proficiency < 0 || t.Proficiency > MaxProficiency {
		return &ValidationError{Field: "proficiency", Reason: "must be between 1 and 5"}
	}
	return nil
}

func (t *Technology) scanDest() []any {
	return []any{&t.ID, &t.Name, &t.Category, &t.Proficiency, &t.Icon, &t.OrderIndex}
}

func (t *Technology) args() []any {
	return []any{t.Name, t.Category, t.Proficiency, t.Icon, t.OrderIndex}
}

// Period formats a date range the way cards show it.
func Period(start, end string, current bool) string {
	if current {
		end = "Present"
	}
	return start + " - " + end
}
