package config

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:        8080,
		Database:    "data/portfolio.db",
		UploadDir:   "static/uploads",
		MaxUploadMB: 16,
		GinMode:     "debug",
		Admin: AdminConfig{
			Username: "admin",
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
		Theme: ThemeConfig{
			NightStart: 18,
			NightEnd:   6,
		},
		Effects: EffectsConfig{
			Width:  1280,
			Height: 720,
			FPS:    60,
		},
	}
}
