package combat

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/samdwyer/vaultdelve/internal/entity"
	"github.com/samdwyer/vaultdelve/internal/gamedata"
)

func newTestSpawner(t *testing.T) *entity.Spawner {
	t.Helper()
	registry, err := gamedata.LoadRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}
	return entity.NewSpawner(registry, rand.New(rand.NewSource(1)), 1)
}

// newFighter builds a bare actor with the given stats.
func newFighter(name string, hp, power, defense int) *entity.Entity {
	return &entity.Entity{
		Name:           name,
		Kind:           entity.KindActor,
		BlocksMovement: true,
		Fighter:        &entity.Fighter{HP: hp, MaxHP: hp, Power: power, Defense: defense},
		Inventory:      entity.NewInventory(5),
		Equipment:      entity.NewEquipment(),
	}
}

func TestCalculateDamage(t *testing.T) {
	tests := []struct {
		name     string
		power    int
		defense  int
		resists  []string
		immune   []string
		expected int
	}{
		{"basic", 5, 2, nil, nil, 3},
		{"minimum 1", 1, 10, nil, nil, 1},
		{"resisted", 9, 1, []string{DamageUnarmed}, nil, 4},
		{"resisted minimum", 1, 10, []string{DamageUnarmed}, nil, 0},
		{"immune", 9, 1, nil, []string{DamageUnarmed}, 0},
		{"other resistance", 9, 1, []string{"fire"}, nil, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attacker := newFighter("attacker", 10, tt.power, 0)
			defender := newFighter("defender", 10, 0, tt.defense)
			defender.Fighter.Resists = tt.resists
			defender.Fighter.Immune = tt.immune

			if got := CalculateDamage(attacker, defender); got != tt.expected {
				t.Errorf("CalculateDamage = %d, want %d", got, tt.expected)
			}
			if defender.Fighter.HP != 10 {
				t.Errorf("CalculateDamage changed HP to %d", defender.Fighter.HP)
			}
		})
	}
}

func TestWeaponSetsDamageType(t *testing.T) {
	s := newTestSpawner(t)
	goblin, err := s.Monster("goblin", 0, 0)
	if err != nil {
		t.Fatalf("Monster(goblin) error: %v", err)
	}

	weapon := goblin.Equipment.Item(gamedata.SlotWeapon)
	if weapon == nil {
		t.Fatal("Goblin has no weapon")
	}
	if got := DamageType(goblin); got != weapon.Equippable.DamageType {
		t.Errorf("DamageType = %q, want %q", got, weapon.Equippable.DamageType)
	}

	bare := newFighter("bare", 1, 1, 0)
	if got := DamageType(bare); got != DamageUnarmed {
		t.Errorf("Unarmed DamageType = %q, want %q", got, DamageUnarmed)
	}
}

func TestResolveKillDropsInventory(t *testing.T) {
	s := newTestSpawner(t)
	attacker := newFighter("Player", 100, 50, 0)
	orc, err := s.Monster("orc", 4, 4)
	if err != nil {
		t.Fatalf("Monster(orc) error: %v", err)
	}
	key := s.Key("1_3")
	orc.Inventory.Stash(key)
	held := orc.Inventory.Len()

	result := Resolve(attacker, orc)

	if !result.Killed {
		t.Fatalf("Orc should die, HP = %d", orc.Fighter.HP)
	}
	if orc.BlocksMovement || orc.IsAlive() {
		t.Error("Dead orc still blocks or lives")
	}
	if len(result.Dropped) != held {
		t.Errorf("Dropped %d items, want %d", len(result.Dropped), held)
	}
	found := false
	for _, item := range result.Dropped {
		if item == key {
			found = true
		}
	}
	if !found {
		t.Error("Key not among dropped items")
	}
	if !strings.Contains(result.Message, "dies") {
		t.Errorf("Message = %q, want death notice", result.Message)
	}
}

func TestResolveImmune(t *testing.T) {
	attacker := newFighter("Player", 10, 5, 0)
	defender := newFighter("Rat", 4, 1, 0)
	defender.Fighter.Immune = []string{DamageUnarmed}

	result := Resolve(attacker, defender)

	if !result.Immune || result.Damage != 0 || result.Killed {
		t.Errorf("Result = %+v, want immune with no damage", result)
	}
	if defender.Fighter.HP != 4 {
		t.Errorf("HP = %d, want 4", defender.Fighter.HP)
	}
}

func TestResolveDeadTarget(t *testing.T) {
	attacker := newFighter("Player", 10, 5, 0)
	defender := newFighter("Rat", 0, 1, 0)

	result := Resolve(attacker, defender)
	if result.Damage != 0 || result.Killed {
		t.Errorf("Attacking a dead target = %+v", result)
	}
}
