package content

const sampleBio = `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
different language, experimenting with tools, or solving tricky problems.`

// SampleDocument is the demonstration content a fresh install starts with.
func SampleDocument() *Document {
	return &Document{
		Profile: &Profile{
			Name:       "Your Name",
			Title:      "Full Stack Developer",
			Department: "Software Engineering",
			Bio:        sampleBio,
			Email:      "your.email@example.com",
			Phone:      "+1234567890",
			Location:   "Your City, Country",
		},
		Experiences: []Experience{
			{
				Company:     "Sample Company",
				Position:    "Full Stack Developer",
				StartDate:   "Jan 2023",
				EndDate:     "Present",
				Current:     true,
				Description: "Developed and maintained web applications using modern technologies.",
			},
		},
		Projects: []Project{
			{
				Title: "Portfolio Website",
				Description: `A responsive portfolio website built with Go, the Gin framework and SQLite,
with an admin panel for editing every section and an animated night sky background.`,
				Technologies: "Go, Gin, SQLite, HTML, CSS",
				ProjectURL:   "https://example.com",
				GithubURL:    "https://github.com/example/portfolio",
				Featured:     true,
			},
			{
				Title: "Terminal Mail Client",
				Description: `A terminal-based email client built in Go with fuzzyfinder capabilities
using the Charmbracelet TUI framework and go-imap.`,
				Technologies: "Go, Bubble Tea, IMAP",
				OrderIndex:   1,
			},
		},
		Technologies: []Technology{
			{Name: "Go", Category: "Backend", Proficiency: 5, Icon: "fab fa-golang", OrderIndex: 0},
			{Name: "SQLite", Category: "Backend", Proficiency: 4, Icon: "fas fa-database", OrderIndex: 1},
			{Name: "JavaScript", Category: "Frontend", Proficiency: 4, Icon: "fab fa-js", OrderIndex: 2},
			{Name: "HTML5", Category: "Frontend", Proficiency: 5, Icon: "fab fa-html5", OrderIndex: 3},
			{Name: "CSS3", Category: "Frontend", Proficiency: 4, Icon: "fab fa-css3", OrderIndex: 4},
		},
		Educations: []Education{
			{
				Institution: "Western Governors University",
				Degree:      "Bachelor of Computer Science",
				Field:       "Computer Science",
				StartDate:   "Sept 2019",
				EndDate:     "May 2023",
				Description: "Relevant coursework: Data Structures, Algorithms, Web Development.",
			},
		},
	}
}
