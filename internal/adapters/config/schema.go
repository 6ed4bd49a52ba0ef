package config

// Settingsfile represents the structure of the ppm.yaml settings file.
type Settingsfile struct {
	Installer *string  `yaml:"installer"`
	Shell     []string `yaml:"shell"`
	Manifest  string   `yaml:"manifest"`
	Quiet     bool     `yaml:"quiet"`
}
