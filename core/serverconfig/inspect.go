package serverconfig

import (
	"beammp-manager/core/errs"

	"github.com/pelletier/go-toml/v2"
)

// Settings are the managed values currently present in a document.
type Settings struct {
	Name       string `toml:"Name" json:"name"`
	Port       int    `toml:"Port" json:"port"`
	AuthKey    string `toml:"AuthKey" json:"-"`
	MaxPlayers int    `toml:"MaxPlayers" json:"max_players"`
	Map        string `toml:"Map" json:"map"`
}

// HasAuthKey reports whether an auth key is configured.
func (s Settings) HasAuthKey() bool {
	return s.AuthKey != ""
}

type settingsFile struct {
	General Settings `toml:"General"`
}

// Inspect decodes the managed values from doc. Unlike Reconcile it requires
// the whole document to be valid TOML.
func Inspect(doc Document) (Settings, error) {
	if err := checkText(doc.content); err != nil {
		return Settings{}, err
	}
	var f settingsFile
	if err := toml.Unmarshal(doc.content, &f); err != nil {
		return Settings{}, errs.New(errs.KindMalformedConfig, "inspect config", err)
	}
	return f.General, nil
}
