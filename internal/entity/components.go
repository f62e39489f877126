package entity

import (
	"errors"
	"slices"

	"github.com/samdwyer/vaultdelve/internal/gamedata"
)

// ErrInventoryFull is returned when an inventory has no free slot.
var ErrInventoryFull = errors.New("inventory full")

// Fighter holds the combat-facing stats of an actor.
type Fighter struct {
	HP          int
	MaxHP       int
	Defense     int
	Power       int
	FieldOfView int
	XP          int
	Flying      bool
	Resists     []string
	Immune      []string
}

// TakeDamage reduces HP by amount and returns the damage actually taken.
func (f *Fighter) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, f.HP)
	f.HP -= actual
	return actual
}

// Heal restores up to amount HP and returns the amount actually healed.
func (f *Fighter) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, f.MaxHP-f.HP)
	f.HP += actual
	return actual
}

// ResistsType reports whether damage of the given type is halved.
func (f *Fighter) ResistsType(damageType string) bool {
	return slices.Contains(f.Resists, damageType)
}

// ImmuneTo reports whether damage of the given type is ignored.
func (f *Fighter) ImmuneTo(damageType string) bool {
	return slices.Contains(f.Immune, damageType)
}

// Inventory is an ordered bag of items.
type Inventory struct {
	Capacity int
	Items    []*Entity
}

// NewInventory creates an empty inventory with the given capacity.
func NewInventory(capacity int) *Inventory {
	return &Inventory{Capacity: capacity}
}

// Add puts an item into the inventory, failing when it is full.
// Ammo merges into an existing stack of the same template.
func (inv *Inventory) Add(item *Entity) error {
	if item.Equippable != nil && item.Equippable.Slot == gamedata.SlotAmmo {
		for _, held := range inv.Items {
			if held.TemplateID == item.TemplateID {
				held.Quantity += item.Quantity
				return nil
			}
		}
	}
	if inv.Capacity > 0 && len(inv.Items) >= inv.Capacity {
		return ErrInventoryFull
	}
	inv.Items = append(inv.Items, item)
	return nil
}

// Stash puts an item into the inventory regardless of capacity. Monsters
// use it to carry their weapon and any keys handed to them.
func (inv *Inventory) Stash(item *Entity) {
	inv.Items = append(inv.Items, item)
}

// Remove takes the item out of the inventory, reporting whether it was held.
func (inv *Inventory) Remove(item *Entity) bool {
	i := slices.Index(inv.Items, item)
	if i < 0 {
		return false
	}
	inv.Items = slices.Delete(inv.Items, i, i+1)
	return true
}

// KeyFor returns the held key that opens roomID, or nil.
func (inv *Inventory) KeyFor(roomID string) *Entity {
	if roomID == "" {
		return nil
	}
	for _, item := range inv.Items {
		if item.KeyID() == roomID {
			return item
		}
	}
	return nil
}

// Keys returns every key held.
func (inv *Inventory) Keys() []*Entity {
	var keys []*Entity
	for _, item := range inv.Items {
		if item.IsKey() {
			keys = append(keys, item)
		}
	}
	return keys
}

// Len returns the number of items held.
func (inv *Inventory) Len() int {
	return len(inv.Items)
}

// Drain empties the inventory and returns what it held.
func (inv *Inventory) Drain() []*Entity {
	items := inv.Items
	inv.Items = nil
	return items
}

// Quality records the tier rolled for an equippable at spawn time.
type Quality struct {
	ID      string
	Name    string
	Boosted []gamedata.BonusKind
	Ability string // Magical ability, empty for mundane tiers
}

// Equippable is a single equipment description. Slot and weapon tags
// replace a type hierarchy; bonuses are keyed by enumerated kind.
type Equippable struct {
	Slot       gamedata.Slot
	WeaponType string
	DamageType string
	Bonuses    map[gamedata.BonusKind]int
	Quality    *Quality
}

// Bonus returns the bonus of the given kind.
func (eq *Equippable) Bonus(kind gamedata.BonusKind) int {
	return eq.Bonuses[kind]
}

// Equipment maps slots to equipped items.
type Equipment struct {
	slots map[gamedata.Slot]*Entity
}

// NewEquipment creates empty equipment.
func NewEquipment() *Equipment {
	return &Equipment{slots: make(map[gamedata.Slot]*Entity)}
}

// Equip puts item in its slot and returns whatever it displaced.
func (e *Equipment) Equip(item *Entity) *Entity {
	if item.Equippable == nil {
		return nil
	}
	slot := item.Equippable.Slot
	previous := e.slots[slot]
	e.slots[slot] = item
	return previous
}

// Unequip empties a slot and returns the item that was in it.
func (e *Equipment) Unequip(slot gamedata.Slot) *Entity {
	item := e.slots[slot]
	delete(e.slots, slot)
	return item
}

// Item returns the item in slot, or nil.
func (e *Equipment) Item(slot gamedata.Slot) *Entity {
	return e.slots[slot]
}

// IsEquipped reports whether item occupies its slot.
func (e *Equipment) IsEquipped(item *Entity) bool {
	return item.Equippable != nil && e.slots[item.Equippable.Slot] == item
}

// Clear empties every slot.
func (e *Equipment) Clear() {
	clear(e.slots)
}

// Bonus sums the bonus of the given kind over every equipped slot.
func (e *Equipment) Bonus(kind gamedata.BonusKind) int {
	total := 0
	for _, slot := range gamedata.Slots {
		if item := e.slots[slot]; item != nil && item.Equippable != nil {
			total += item.Equippable.Bonus(kind)
		}
	}
	return total
}

// ConsumableKind names the effect of a consumable.
type ConsumableKind string

const (
	ConsumableHeal      ConsumableKind = "heal"
	ConsumableConfusion ConsumableKind = "confusion"
	ConsumableLightning ConsumableKind = "lightning"
	ConsumableFireball  ConsumableKind = "fireball"
	ConsumableKey       ConsumableKind = "key"
)

// Consumable describes a single-use item. Keys carry the room id they open.
type Consumable struct {
	Kind   ConsumableKind
	Amount int
	Turns  int
	Range  int
	Radius int
	KeyID  string
}
