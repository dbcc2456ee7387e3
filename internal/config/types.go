package config

// Config is the full runtime configuration of the portfolio server and tools.
type Config struct {
	Port        int    `koanf:"port" yaml:"port"`
	Database    string `koanf:"database" yaml:"database"`
	UploadDir   string `koanf:"upload_dir" yaml:"upload_dir"`
	MaxUploadMB int64  `koanf:"max_upload_mb" yaml:"max_upload_mb"`
	GinMode     string `koanf:"gin_mode" yaml:"gin_mode"`

	Admin   AdminConfig   `koanf:"admin" yaml:"admin"`
	SMTP    SMTPConfig    `koanf:"smtp" yaml:"smtp"`
	Theme   ThemeConfig   `koanf:"theme" yaml:"theme"`
	Effects EffectsConfig `koanf:"effects" yaml:"effects"`
}

// AdminConfig seeds the first admin account. Password may be empty, in which
// case a random one is generated on first start.
type AdminConfig struct {
	Username string `koanf:"username" yaml:"username"`
	Password string `koanf:"password" yaml:"password,omitempty"`
}

// SMTPConfig configures delivery of contact form messages.
type SMTPConfig struct {
	Host string `koanf:"host" yaml:"host"`
	Port string `koanf:"port" yaml:"port"`
	User string `koanf:"user" yaml:"user,omitempty"`
	Pass string `koanf:"pass" yaml:"pass,omitempty"`
	To   string `koanf:"to" yaml:"to,omitempty"`
}

// Configured reports whether credentials are present.
func (s SMTPConfig) Configured() bool {
	return s.User != "" && s.Pass != ""
}

// ThemeConfig controls the day/night selection.
type ThemeConfig struct {
	NightStart int    `koanf:"night_start" yaml:"night_start"`
	NightEnd   int    `koanf:"night_end" yaml:"night_end"`
	Fixed      string `koanf:"fixed" yaml:"fixed,omitempty"`
}

// EffectsConfig sizes the background effects scene for the simulate and
// preview commands.
type EffectsConfig struct {
	Width  int    `koanf:"width" yaml:"width"`
	Height int    `koanf:"height" yaml:"height"`
	FPS    int    `koanf:"fps" yaml:"fps"`
	Seed   uint64 `koanf:"seed" yaml:"seed"`
}
