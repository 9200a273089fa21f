package conf

// Config is the TOML file layout; each embedded section is its own table
type Config struct {
	Overlay `toml:"Overlay"`
	Hotkey  `toml:"Hotkey"`
	Mirror  `toml:"Mirror"`
	Auth    `toml:"Auth"`
	Log     `toml:"Log"`
}

type Overlay struct {
	FontSize int
	FontFace string
	X        int
	Y        int
	Width    int
}

type Hotkey struct {
	Key       string
	Modifiers []string
}

type Mirror struct {
	Enabled bool
	Listen  string
}

type Auth struct {
	Users map[string]string
}

type Log struct {
	Level string
}
