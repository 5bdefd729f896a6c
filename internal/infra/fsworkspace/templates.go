package fsworkspace

import "embed"

//go:embed templates/knockbot.toml templates/data/credentials.yaml
var templatesFS embed.FS
