package odds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlayerRef is one entry of the known-player reference list. Aliases cover
// accent-stripped and nickname spellings that OCR or the board itself may use;
// odds matched via an alias are stored under the canonical Name.
type PlayerRef struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases,omitempty"`
}

func (p PlayerRef) searchTerms() []string {
	return append([]string{p.Name}, p.Aliases...)
}

// Built-in reference list. Override with LoadPlayersFile when the deployment
// tracks a different league.
var defaultPlayers = []PlayerRef{
	{Name: "Mbappé", Aliases: []string{"Mbappe", "Kylian"}},
	{Name: "Vinicius", Aliases: []string{"Vinícius"}},
	{Name: "Benzema"},
	{Name: "Bellingham"},
	{Name: "Griezmann"},
	{Name: "Morata"},
	{Name: "Haaland"},
	{Name: "Lewandowski"},
	{Name: "Messi"},
	{Name: "Neymar"},
	{Name: "Kane"},
	{Name: "Salah"},
}

var activePlayers = defaultPlayers

func knownPlayers() []PlayerRef {
	return activePlayers
}

// LoadPlayersFile replaces the built-in reference list with one loaded from a
// YAML file of the form:
//
//	players:
//	  - name: Mbappé
//	    aliases: [Mbappe, Kylian]
//
// Call once at startup, before any parsing.
func LoadPlayersFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read players file: %w", err)
	}
	var doc struct {
		Players []PlayerRef `yaml:"players"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse players file: %w", err)
	}
	if len(doc.Players) == 0 {
		return fmt.Errorf("players file %s lists no players", path)
	}
	activePlayers = doc.Players
	return nil
}
