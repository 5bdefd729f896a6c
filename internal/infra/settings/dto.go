package settings

// File mirrors knockbot.toml.
type File struct {
	DataDir     string `koanf:"data_dir"`
	Credentials string `koanf:"credentials"`

	HTTP struct {
		Timeout   string `koanf:"timeout"`
		UserAgent string `koanf:"user_agent"`
	} `koanf:"http"`

	History struct {
		Backend string `koanf:"backend"`
		Dir     string `koanf:"dir"`
	} `koanf:"history"`

	Sources  []SourceDTO  `koanf:"sources"`
	Variants []VariantDTO `koanf:"variants"`
}

type SourceDTO struct {
	Name   string `koanf:"name"`
	URL    string `koanf:"url"`
	Format string `koanf:"format"`
	Field  string `koanf:"field"`
}

type VariantDTO struct {
	Name       string      `koanf:"name"`
	Weight     *int        `koanf:"weight"`
	FirstNames []string    `koanf:"first_names"`
	Surnames   []string    `koanf:"surnames"`
	Template   TemplateDTO `koanf:"template"`
}

type TemplateDTO struct {
	Salutation string `koanf:"salutation"`
	Response   string `koanf:"response"`
	Who        string `koanf:"who"`
}
