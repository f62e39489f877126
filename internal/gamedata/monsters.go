package gamedata

import (
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

// SpawnPolicy says how many copies a single monster draw produces.
type SpawnPolicy string

const (
	SpawnSingle SpawnPolicy = "single"
	SpawnDouble SpawnPolicy = "double"
	SpawnTriple SpawnPolicy = "triple"
	SpawnSwarm  SpawnPolicy = "swarm"
	SpawnGroup  SpawnPolicy = "group"
)

const (
	swarmMin = 3
	swarmMax = 5
)

// Copies returns the number of copies one draw of this policy places.
// Swarm consumes a roll from rng; the other policies are fixed.
func (p SpawnPolicy) Copies(rng *rand.Rand) int {
	switch p {
	case SpawnDouble:
		return 2
	case SpawnTriple:
		return 3
	case SpawnSwarm:
		return swarmMin + rng.Intn(swarmMax-swarmMin+1)
	default:
		// Group spawns have no formation logic yet and place a single copy.
		return 1
	}
}

// MonsterDef defines a monster template loaded from JSON.
type MonsterDef struct {
	ID          string      `json:"id"`          // Unique identifier (e.g., "goblin")
	Name        string      `json:"name"`        // Display name (e.g., "Goblin")
	Glyph       string      `json:"glyph"`       // Single character for rendering
	Color       string      `json:"color"`       // Hex color code
	HP          int         `json:"hp"`          // Base hit points
	Defense     int         `json:"defense"`     // Base defense value
	Power       int         `json:"power"`       // Base attack power
	FieldOfView int         `json:"fieldOfView"` // Sight radius
	XP          int         `json:"xp"`          // Experience granted on defeat
	Capacity    int         `json:"capacity"`    // Inventory slots
	Spawn       SpawnPolicy `json:"spawn"`
	Flying      bool        `json:"flying,omitempty"`
	WeaponTypes []string    `json:"weaponTypes,omitempty"` // Weapon types it may spawn holding
	Resists     []string    `json:"resists,omitempty"`
	Immune      []string    `json:"immune,omitempty"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (m *MonsterDef) GlyphRune() rune {
	if len(m.Glyph) == 0 {
		return '?'
	}
	return []rune(m.Glyph)[0]
}

// TCellColor returns the color as a tcell.Color.
func (m *MonsterDef) TCellColor() tcell.Color {
	return ColorOr(m.Color, tcell.ColorWhite)
}

// MonstersFile represents the structure of monsters.json.
type MonstersFile struct {
	Player   MonsterDef   `json:"player"`
	Monsters []MonsterDef `json:"monsters"`
}

// LoadMonsters loads monster definitions from the embedded monsters.json file.
func LoadMonsters() (*MonstersFile, error) {
	file, err := Load[MonstersFile]("monsters.json")
	if err != nil {
		return nil, err
	}
	return &file, nil
}
