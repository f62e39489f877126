package gamedata

import "github.com/gdamore/tcell/v2"

// QualityDef describes one quality tier for equipment.
type QualityDef struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Attributes int     `json:"attributes"` // Number of bonus kinds the tier boosts
	Multiplier float64 `json:"multiplier"`
	Magical    bool    `json:"magical"`
}

// TCellColor returns the tier color as a tcell.Color.
func (q *QualityDef) TCellColor() tcell.Color {
	return ColorOr(q.Color, tcell.ColorWhite)
}

// QualitiesFile represents the structure of qualities.json.
type QualitiesFile struct {
	Qualities []QualityDef `json:"qualities"`
	// Chances weights quality ids by floor.
	Chances WeightedTable `json:"chances"`
	// AttributeBase is the unscaled value each bonus kind adds.
	AttributeBase map[BonusKind]int `json:"attributeBase"`
	// Attributes fixes the order attribute draws sample from.
	Attributes []BonusKind `json:"attributes"`
	Abilities  []string    `json:"abilities"`
}

// LoadQualities loads quality tiers from the embedded qualities.json file.
func LoadQualities() (*QualitiesFile, error) {
	file, err := Load[QualitiesFile]("qualities.json")
	if err != nil {
		return nil, err
	}
	file.Chances.sort()
	return &file, nil
}
