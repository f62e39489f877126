package gamedata

import (
	"errors"
	"fmt"
)

// ErrUnknownTemplate is returned when a table references a template id that
// no data file defines.
var ErrUnknownTemplate = errors.New("unknown template")

// Registry holds every loaded template and table, keyed by id.
type Registry struct {
	player    MonsterDef
	monsters  map[string]*MonsterDef
	monsterIx []MonsterDef
	items     map[string]*ItemDef
	itemIx    []ItemDef
	qualities map[string]*QualityDef
	quality   *QualitiesFile
	tables    *SpawnTables
}

// NewRegistry creates a registry from loaded definitions and checks that
// every table entry resolves to a template.
func NewRegistry(monsters *MonstersFile, items []ItemDef, qualities *QualitiesFile, tables *SpawnTables) (*Registry, error) {
	r := &Registry{
		player:    monsters.Player,
		monsters:  make(map[string]*MonsterDef),
		monsterIx: monsters.Monsters,
		items:     make(map[string]*ItemDef),
		itemIx:    items,
		qualities: make(map[string]*QualityDef),
		quality:   qualities,
		tables:    tables,
	}
	for i := range r.monsterIx {
		r.monsters[r.monsterIx[i].ID] = &r.monsterIx[i]
	}
	for i := range r.itemIx {
		r.items[r.itemIx[i].ID] = &r.itemIx[i]
	}
	for i := range qualities.Qualities {
		r.qualities[qualities.Qualities[i].ID] = &qualities.Qualities[i]
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) validate() error {
	for _, id := range r.tables.Monsters.IDs() {
		if r.monsters[id] == nil {
			return fmt.Errorf("monster table: %w %q", ErrUnknownTemplate, id)
		}
	}
	for _, table := range []WeightedTable{r.tables.Items, r.tables.Vault} {
		for _, id := range table.IDs() {
			if r.items[id] == nil {
				return fmt.Errorf("item table: %w %q", ErrUnknownTemplate, id)
			}
		}
	}
	for _, id := range r.quality.Chances.IDs() {
		if r.qualities[id] == nil {
			return fmt.Errorf("quality table: %w %q", ErrUnknownTemplate, id)
		}
	}
	for _, m := range r.monsterIx {
		for _, wt := range m.WeaponTypes {
			if r.WeaponFor(wt) == nil {
				return fmt.Errorf("monster %s weapon: %w %q", m.ID, ErrUnknownTemplate, wt)
			}
		}
	}
	if r.items[KeyTemplateID] == nil {
		return fmt.Errorf("%w %q", ErrUnknownTemplate, KeyTemplateID)
	}
	return nil
}

// KeyTemplateID is the item template minted for locked rooms.
const KeyTemplateID = "key"

// LoadRegistry loads every embedded data file into a registry.
func LoadRegistry() (*Registry, error) {
	monsters, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	if len(monsters.Monsters) == 0 {
		return nil, errors.New("no monsters loaded from monsters.json")
	}
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}
	qualities, err := LoadQualities()
	if err != nil {
		return nil, err
	}
	tables, err := LoadSpawnTables()
	if err != nil {
		return nil, err
	}
	return NewRegistry(monsters, items, qualities, tables)
}

// MustLoadRegistry loads a registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Player returns the player template.
func (r *Registry) Player() *MonsterDef {
	return &r.player
}

// Monster returns the monster definition with the given ID, or nil if not found.
func (r *Registry) Monster(id string) *MonsterDef {
	return r.monsters[id]
}

// Item returns the item definition with the given ID, or nil if not found.
func (r *Registry) Item(id string) *ItemDef {
	return r.items[id]
}

// Quality returns the quality tier with the given ID, or nil if not found.
func (r *Registry) Quality(id string) *QualityDef {
	return r.qualities[id]
}

// Qualities returns the quality tiers and their roll tables.
func (r *Registry) Qualities() *QualitiesFile {
	return r.quality
}

// Tables returns the spawn tables.
func (r *Registry) Tables() *SpawnTables {
	return r.tables
}

// WeaponFor returns the first melee or ranged weapon template of the given
// weapon type, or nil if none exists.
func (r *Registry) WeaponFor(weaponType string) *ItemDef {
	for i := range r.itemIx {
		eq := r.itemIx[i].Equippable
		if eq != nil && eq.WeaponType == weaponType && (eq.Slot == SlotWeapon || eq.Slot == SlotRanged) {
			return &r.itemIx[i]
		}
	}
	return nil
}

// Monsters returns all monster definitions.
func (r *Registry) Monsters() []MonsterDef {
	return r.monsterIx
}

// Items returns all item definitions.
func (r *Registry) Items() []ItemDef {
	return r.itemIx
}
