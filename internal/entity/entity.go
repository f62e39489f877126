// Package entity provides the actors and items that populate a level.
package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/vaultdelve/internal/gamedata"
)

// Kind distinguishes actors from items.
type Kind int

const (
	KindActor Kind = iota
	KindItem
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindActor:
		return "actor"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

// Entity is a single instance of a monster, item or the player.
// Optional behaviour lives in the component pointers; a nil component
// means the entity does not have that capability.
type Entity struct {
	ID             string
	TemplateID     string
	Kind           Kind
	Name           string
	Glyph          rune
	Color          tcell.Color
	X, Y           int
	BlocksMovement bool
	Spawn          gamedata.SpawnPolicy
	Quantity       int

	Fighter    *Fighter
	Inventory  *Inventory
	Equipment  *Equipment
	Equippable *Equippable
	Consumable *Consumable
}

// IsActor reports whether the entity is an actor.
func (e *Entity) IsActor() bool {
	return e.Kind == KindActor
}

// IsItem reports whether the entity is an item.
func (e *Entity) IsItem() bool {
	return e.Kind == KindItem
}

// IsAlive reports whether the entity is an actor with hit points left.
func (e *Entity) IsAlive() bool {
	return e.Fighter != nil && e.Fighter.HP > 0
}

// IsKey reports whether the entity is a key.
func (e *Entity) IsKey() bool {
	return e.Consumable != nil && e.Consumable.Kind == ConsumableKey
}

// KeyID returns the room id a key opens, or "" for anything that is not a key.
func (e *Entity) KeyID() string {
	if !e.IsKey() {
		return ""
	}
	return e.Consumable.KeyID
}

// Move updates the entity position by the given delta.
func (e *Entity) Move(dx, dy int) {
	e.X += dx
	e.Y += dy
}

// Place sets the entity position.
func (e *Entity) Place(x, y int) {
	e.X = x
	e.Y = y
}

// Position returns the current x, y coordinates.
func (e *Entity) Position() (int, int) {
	return e.X, e.Y
}

// Bonus returns the total equipment bonus of the given kind.
func (e *Entity) Bonus(kind gamedata.BonusKind) int {
	if e.Equipment == nil {
		return 0
	}
	return e.Equipment.Bonus(kind)
}

// Die turns an actor into a non-blocking remains marker and returns the
// items it was carrying so the caller can drop them.
func (e *Entity) Die() []*Entity {
	e.BlocksMovement = false
	e.Glyph = '%'
	e.Color = tcell.NewRGBColor(191, 0, 0)
	e.Name = "remains of " + e.Name
	if e.Fighter != nil {
		e.Fighter.HP = 0
	}
	if e.Inventory == nil {
		return nil
	}
	if e.Equipment != nil {
		e.Equipment.Clear()
	}
	return e.Inventory.Drain()
}
