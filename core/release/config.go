package release

// Config holds configuration for the release endpoints.
type Config struct {
	// IndexURL is the release index queried for the latest tag.
	IndexURL string `mapstructure:"index_url" default:"https://api.github.com/repos/BeamMP/BeamMP-Server/releases/latest"`
	// DownloadURL is the well-known "latest" artifact URL.
	DownloadURL string `mapstructure:"download_url" default:"https://github.com/BeamMP/BeamMP-Server/releases/latest/download/BeamMP-Server.exe"`
	// AssetName is the release asset preferred over DownloadURL when the index lists it.
	AssetName string `mapstructure:"asset_name" default:"BeamMP-Server.exe"`
	// UserAgent identifies this client to the release index.
	UserAgent string `mapstructure:"user_agent" default:"WindowsGSM"`
	// TimeoutSeconds bounds connection setup and index requests.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// DownloadTimeoutSeconds bounds a whole artifact download.
	DownloadTimeoutSeconds int `mapstructure:"download_timeout_seconds" default:"600"`
}
