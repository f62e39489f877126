package entity

import (
	"fmt"
	"maps"
	"math/rand"

	"github.com/google/uuid"

	"github.com/samdwyer/vaultdelve/internal/gamedata"
)

// Spawner instantiates entities from registry templates. Every instance is a
// fresh value; nothing mutable is shared with the template or other copies.
// All randomness, including instance ids, comes from rng so that a seeded
// generator always yields the same entities.
type Spawner struct {
	registry *gamedata.Registry
	rng      *rand.Rand
	floor    int
}

// NewSpawner creates a spawner for the given floor.
func NewSpawner(registry *gamedata.Registry, rng *rand.Rand, floor int) *Spawner {
	return &Spawner{registry: registry, rng: rng, floor: floor}
}

// Registry returns the template registry the spawner reads from.
func (s *Spawner) Registry() *gamedata.Registry {
	return s.registry
}

func (s *Spawner) newID() string {
	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		// math/rand never fails to read.
		panic(err)
	}
	return id.String()
}

// Player creates the player actor.
func (s *Spawner) Player() *Entity {
	e := s.actor(s.registry.Player())
	e.TemplateID = "player"
	return e
}

// Monster creates a monster from the template with the given id. Monsters
// that may hold weapons get a random allowed weapon equipped.
func (s *Spawner) Monster(id string, x, y int) (*Entity, error) {
	def := s.registry.Monster(id)
	if def == nil {
		return nil, fmt.Errorf("monster %w %q", gamedata.ErrUnknownTemplate, id)
	}

	e := s.actor(def)
	e.Place(x, y)

	if len(def.WeaponTypes) > 0 {
		choice := def.WeaponTypes[s.rng.Intn(len(def.WeaponTypes))]
		if weaponDef := s.registry.WeaponFor(choice); weaponDef != nil {
			weapon := s.item(weaponDef, false)
			e.Inventory.Stash(weapon)
			e.Equipment.Equip(weapon)
		}
	}

	return e, nil
}

func (s *Spawner) actor(def *gamedata.MonsterDef) *Entity {
	return &Entity{
		ID:             s.newID(),
		TemplateID:     def.ID,
		Kind:           KindActor,
		Name:           def.Name,
		Glyph:          def.GlyphRune(),
		Color:          def.TCellColor(),
		BlocksMovement: true,
		Spawn:          def.Spawn,
		Quantity:       1,
		Fighter: &Fighter{
			HP:          def.HP,
			MaxHP:       def.HP,
			Defense:     def.Defense,
			Power:       def.Power,
			FieldOfView: def.FieldOfView,
			XP:          def.XP,
			Flying:      def.Flying,
			Resists:     append([]string(nil), def.Resists...),
			Immune:      append([]string(nil), def.Immune...),
		},
		Inventory: NewInventory(def.Capacity),
		Equipment: NewEquipment(),
	}
}

// Item creates an item from the template with the given id. Ammo rolls a
// stack size and quality-bearing equipment rolls a tier for the floor.
func (s *Spawner) Item(id string, x, y int) (*Entity, error) {
	def := s.registry.Item(id)
	if def == nil {
		return nil, fmt.Errorf("item %w %q", gamedata.ErrUnknownTemplate, id)
	}
	e := s.item(def, true)
	e.Place(x, y)
	return e, nil
}

func (s *Spawner) item(def *gamedata.ItemDef, rollQuality bool) *Entity {
	e := &Entity{
		ID:         s.newID(),
		TemplateID: def.ID,
		Kind:       KindItem,
		Name:       def.Name,
		Glyph:      def.GlyphRune(),
		Color:      def.TCellColor(),
		Quantity:   1,
	}

	if c := def.Consumable; c != nil {
		e.Consumable = &Consumable{
			Kind:   ConsumableKind(c.Effect),
			Amount: c.Amount,
			Turns:  c.Turns,
			Range:  c.Range,
			Radius: c.Radius,
		}
	}
	if def.Kind == gamedata.ItemKey {
		e.Consumable = &Consumable{Kind: ConsumableKey}
	}

	if eq := def.Equippable; eq != nil {
		e.Equippable = &Equippable{
			Slot:       eq.Slot,
			WeaponType: eq.WeaponType,
			DamageType: eq.DamageType,
			Bonuses:    maps.Clone(eq.Bonuses),
		}
		if e.Equippable.Bonuses == nil {
			e.Equippable.Bonuses = make(map[gamedata.BonusKind]int)
		}
		if rollQuality && eq.Quality && def.Kind != gamedata.ItemAmmo {
			s.applyQuality(e)
		}
	}

	if def.Quantity != nil {
		e.Quantity = def.Quantity.Roll(s.rng)
	}

	return e
}

// Key mints the key that opens roomID.
func (s *Spawner) Key(roomID string) *Entity {
	e := s.item(s.registry.Item(gamedata.KeyTemplateID), false)
	e.Consumable.KeyID = roomID
	e.Name = "Key to " + roomID
	return e
}
