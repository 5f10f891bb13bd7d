package lifecycle

import (
	"path/filepath"

	"beammp-manager/core/serverconfig"
)

// Config describes the managed instance: where it lives and the
// authoritative values pushed into its configuration on every start.
type Config struct {
	// Dir is the instance working directory.
	Dir string `mapstructure:"dir" default:"./serverfiles"`
	// Executable is the server binary file name inside Dir.
	Executable string `mapstructure:"executable" default:"BeamMP-Server.exe"`
	// ConfigFile is the server configuration document inside Dir.
	ConfigFile string `mapstructure:"config_file" default:"ServerConfig.toml"`
	// ManifestFile records the installed release tag.
	ManifestFile string `mapstructure:"manifest_file" default:"version.log"`

	ServerID   string `mapstructure:"server_id" default:"1"`
	ServerName string `mapstructure:"server_name" default:"BeamMP Server"`
	Port       int    `mapstructure:"port" default:"30814"`
	AuthKey    string `mapstructure:"auth_key" default:""`
	MaxPlayers int    `mapstructure:"max_players" default:"12"`
	Map        string `mapstructure:"map" default:"/levels/west_coast_usa/info.json"`
}

// Layout returns the file layout of the instance.
func (c Config) Layout() Layout {
	return Layout{
		Dir:          c.Dir,
		Executable:   c.Executable,
		ConfigFile:   c.ConfigFile,
		ManifestFile: c.ManifestFile,
	}
}

// Authoritative returns the values reconciled into the configuration
// document.
func (c Config) Authoritative() serverconfig.Authoritative {
	return serverconfig.Authoritative{
		ServerID:   c.ServerID,
		ServerName: c.ServerName,
		Port:       c.Port,
		AuthKey:    c.AuthKey,
		MaxPlayers: c.MaxPlayers,
		StartMap:   c.Map,
	}
}

// Layout names the files of one instance.
type Layout struct {
	Dir          string
	Executable   string
	ConfigFile   string
	ManifestFile string
}

func (l Layout) ExecutablePath() string { return filepath.Join(l.Dir, l.Executable) }

func (l Layout) ConfigPath() string { return filepath.Join(l.Dir, l.ConfigFile) }

func (l Layout) ManifestPath() string { return filepath.Join(l.Dir, l.ManifestFile) }
