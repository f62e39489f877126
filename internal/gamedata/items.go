package gamedata

import (
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

// ItemKind classifies item templates.
type ItemKind string

const (
	ItemConsumable ItemKind = "consumable"
	ItemEquippable ItemKind = "equippable"
	ItemAmmo       ItemKind = "ammo"
	ItemKey        ItemKind = "key"
)

// Slot is an equipment slot.
type Slot string

const (
	SlotWeapon  Slot = "weapon"
	SlotRanged  Slot = "ranged"
	SlotArmor   Slot = "armor"
	SlotUtility Slot = "utility"
	SlotAmmo    Slot = "ammo"
)

// Slots lists every equipment slot in a fixed order.
var Slots = []Slot{SlotWeapon, SlotRanged, SlotArmor, SlotUtility, SlotAmmo}

// BonusKind enumerates the stats an equippable can modify.
type BonusKind string

const (
	BonusDefense        BonusKind = "defense"
	BonusMeleeDamage    BonusKind = "melee_damage"
	BonusRangedDamage   BonusKind = "ranged_damage"
	BonusRangedDistance BonusKind = "ranged_distance"
	BonusFieldOfView    BonusKind = "field_of_view"
)

// ConsumableDef describes the effect of a usable item.
type ConsumableDef struct {
	Effect string `json:"effect"` // heal, confusion, lightning, fireball
	Amount int    `json:"amount,omitempty"`
	Turns  int    `json:"turns,omitempty"`
	Range  int    `json:"range,omitempty"`
	Radius int    `json:"radius,omitempty"`
}

// EquippableDef describes a wearable or wieldable item.
type EquippableDef struct {
	Slot       Slot              `json:"slot"`
	WeaponType string            `json:"weaponType,omitempty"`
	DamageType string            `json:"damageType,omitempty"`
	Bonuses    map[BonusKind]int `json:"bonuses,omitempty"`
	// Quality tiers are rolled for this item when it spawns.
	Quality bool `json:"quality,omitempty"`
}

// QuantityRange bounds the stack size rolled at spawn time.
type QuantityRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Roll returns a quantity within the range, inclusive.
func (q QuantityRange) Roll(rng *rand.Rand) int {
	if q.Max <= q.Min {
		return max(q.Min, 1)
	}
	return q.Min + rng.Intn(q.Max-q.Min+1)
}

// ItemDef defines an item template loaded from JSON.
type ItemDef struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Glyph      string         `json:"glyph"`
	Color      string         `json:"color"`
	Kind       ItemKind       `json:"kind"`
	Consumable *ConsumableDef `json:"consumable,omitempty"`
	Equippable *EquippableDef `json:"equippable,omitempty"`
	Quantity   *QuantityRange `json:"quantity,omitempty"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (i *ItemDef) GlyphRune() rune {
	if len(i.Glyph) == 0 {
		return '?'
	}
	return []rune(i.Glyph)[0]
}

// TCellColor returns the color as a tcell.Color.
func (i *ItemDef) TCellColor() tcell.Color {
	return ColorOr(i.Color, tcell.ColorWhite)
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
