package domain

const (
	// ManifestFileName is the default name of the manifest file.
	ManifestFileName = "requirements.json"

	// ConfigFileName is the default name of the settings file.
	ConfigFileName = "ppm.yaml"

	// ConfigEnvVar names the environment variable that overrides the settings file path.
	ConfigEnvVar = "PPM_CONFIG"

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
