// Package league holds the team registry the simulator draws matchups from.
// The engine itself only ever sees the two-element (home, away) pair.
package league

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gridironlabs/gridiron/internal/game"
)

// Team is one franchise record as stored in the teams file.
type Team struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
	Abbr string `yaml:"abbr"`
}

// Info converts the record to the engine's team identity type.
func (t Team) Info() game.TeamInfo {
	return game.TeamInfo{ID: t.ID, Name: t.Name, Abbr: t.Abbr}
}

type teamsFile struct {
	Teams []Team `yaml:"teams"`
}

// Registry is an immutable set of teams, looked up by abbreviation.
type Registry struct {
	teams  []Team
	byAbbr map[string]Team
}

// Load reads a YAML teams file from disk.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open teams file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a YAML teams document.
func Parse(r io.Reader) (*Registry, error) {
	var file teamsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse teams file: %w", err)
	}
	if len(file.Teams) < 2 {
		return nil, fmt.Errorf("teams file defines %d teams, need at least 2", len(file.Teams))
	}
	return newRegistry(file.Teams)
}

func newRegistry(teams []Team) (*Registry, error) {
	reg := &Registry{
		teams:  teams,
		byAbbr: make(map[string]Team, len(teams)),
	}
	seen := make(map[int]bool, len(teams))
	for _, team := range teams {
		if team.Abbr == "" || team.Name == "" {
			return nil, fmt.Errorf("team %d is missing a name or abbreviation", team.ID)
		}
		if seen[team.ID] {
			return nil, fmt.Errorf("duplicate team id %d", team.ID)
		}
		seen[team.ID] = true
		key := strings.ToUpper(team.Abbr)
		if _, dup := reg.byAbbr[key]; dup {
			return nil, fmt.Errorf("duplicate team abbreviation %q", team.Abbr)
		}
		reg.byAbbr[key] = team
	}
	return reg, nil
}

// Default returns the built-in eight-team registry used when no teams file
// is configured.
func Default() *Registry {
	reg, err := newRegistry([]Team{
		{ID: 1, Name: "Springfield Atoms", Abbr: "SPR"},
		{ID: 2, Name: "Shelbyville Sharks", Abbr: "SHV"},
		{ID: 3, Name: "Capital City Goats", Abbr: "CAP"},
		{ID: 4, Name: "Ogdenville Outlaws", Abbr: "OGD"},
		{ID: 5, Name: "North Haverbrook Monorails", Abbr: "NHB"},
		{ID: 6, Name: "Brockway Bears", Abbr: "BRK"},
		{ID: 7, Name: "Cypress Creek Cougars", Abbr: "CYP"},
		{ID: 8, Name: "Waverly Hills Wolves", Abbr: "WAV"},
	})
	if err != nil {
		panic("built-in registry is invalid: " + err.Error())
	}
	return reg
}

// Teams returns all registered teams.
func (r *Registry) Teams() []Team {
	out := make([]Team, len(r.teams))
	copy(out, r.teams)
	return out
}

// ByAbbr looks a team up by abbreviation, case-insensitively.
func (r *Registry) ByAbbr(abbr string) (Team, bool) {
	team, ok := r.byAbbr[strings.ToUpper(abbr)]
	return team, ok
}

// Pair resolves a (home, away) matchup by abbreviation. The two teams must
// be distinct.
func (r *Registry) Pair(homeAbbr, awayAbbr string) (home, away game.TeamInfo, err error) {
	h, ok := r.ByAbbr(homeAbbr)
	if !ok {
		return home, away, fmt.Errorf("unknown home team %q", homeAbbr)
	}
	a, ok := r.ByAbbr(awayAbbr)
	if !ok {
		return home, away, fmt.Errorf("unknown away team %q", awayAbbr)
	}
	if h.ID == a.ID {
		return home, away, fmt.Errorf("team %q cannot play itself", homeAbbr)
	}
	return h.Info(), a.Info(), nil
}
