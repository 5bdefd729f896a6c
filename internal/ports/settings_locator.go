package ports

// SettingsLocator finds the knockbot.toml that applies to a directory.
type SettingsLocator interface {
	FindConfig(startDir string) (string, error)
}
