package entity

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/samdwyer/vaultdelve/internal/gamedata"
)

func newTestSpawner(t *testing.T, seed int64, floor int) *Spawner {
	t.Helper()
	registry, err := gamedata.LoadRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}
	return NewSpawner(registry, rand.New(rand.NewSource(seed)), floor)
}

func TestSpawnMonsterIsFreshInstance(t *testing.T) {
	s := newTestSpawner(t, 1, 1)

	a, err := s.Monster("orc", 3, 4)
	if err != nil {
		t.Fatalf("Monster(orc) error: %v", err)
	}
	b, err := s.Monster("orc", 5, 6)
	if err != nil {
		t.Fatalf("Monster(orc) error: %v", err)
	}

	if a.ID == b.ID {
		t.Errorf("Two spawns share id %s", a.ID)
	}
	if a.X != 3 || a.Y != 4 {
		t.Errorf("Position = (%d,%d), want (3,4)", a.X, a.Y)
	}

	a.Fighter.HP = 1
	a.Fighter.Resists[0] = "fire"
	if b.Fighter.HP != b.Fighter.MaxHP {
		t.Errorf("Mutating one orc changed another: HP = %d", b.Fighter.HP)
	}
	if b.Fighter.Resists[0] != "bludgeoning" {
		t.Errorf("Resists shared between instances: %v", b.Fighter.Resists)
	}
	if got := s.Registry().Monster("orc").Resists[0]; got != "bludgeoning" {
		t.Errorf("Template resists mutated: %q", got)
	}
}

func TestSpawnMonsterWeapon(t *testing.T) {
	s := newTestSpawner(t, 2, 1)

	goblin, err := s.Monster("goblin", 0, 0)
	if err != nil {
		t.Fatalf("Monster(goblin) error: %v", err)
	}

	weapon := goblin.Equipment.Item(gamedata.SlotWeapon)
	if weapon == nil {
		t.Fatal("Goblin spawned without a weapon")
	}
	if weapon.TemplateID != "dagger" && weapon.TemplateID != "club" {
		t.Errorf("Goblin weapon = %s, want dagger or club", weapon.TemplateID)
	}
	if goblin.Inventory.Len() != 1 {
		t.Errorf("Goblin inventory has %d items, want 1", goblin.Inventory.Len())
	}
	if goblin.Bonus(gamedata.BonusMeleeDamage) <= 0 {
		t.Error("Equipped weapon gives no melee bonus")
	}

	rat, err := s.Monster("rat", 0, 0)
	if err != nil {
		t.Fatalf("Monster(rat) error: %v", err)
	}
	if rat.Inventory.Len() != 0 {
		t.Errorf("Rat inventory has %d items, want 0", rat.Inventory.Len())
	}
}

func TestSpawnUnknownTemplate(t *testing.T) {
	s := newTestSpawner(t, 3, 1)

	if _, err := s.Monster("dragon", 0, 0); !errors.Is(err, gamedata.ErrUnknownTemplate) {
		t.Errorf("Monster(dragon) error = %v, want ErrUnknownTemplate", err)
	}
	if _, err := s.Item("crown", 0, 0); !errors.Is(err, gamedata.ErrUnknownTemplate) {
		t.Errorf("Item(crown) error = %v, want ErrUnknownTemplate", err)
	}
}

func TestSpawnAmmoQuantity(t *testing.T) {
	s := newTestSpawner(t, 4, 1)

	for i := 0; i < 50; i++ {
		arrow, err := s.Item("arrow", 0, 0)
		if err != nil {
			t.Fatalf("Item(arrow) error: %v", err)
		}
		if arrow.Quantity < 5 || arrow.Quantity > 15 {
			t.Fatalf("Arrow quantity = %d, want 5..15", arrow.Quantity)
		}
		if arrow.Equippable.Quality != nil {
			t.Fatal("Ammo rolled a quality tier")
		}
	}
}

func TestSpawnQuality(t *testing.T) {
	s := newTestSpawner(t, 5, 3)

	base := s.Registry().Item("sword").Equippable.Bonuses[gamedata.BonusMeleeDamage]

	for i := 0; i < 50; i++ {
		sword, err := s.Item("sword", 0, 0)
		if err != nil {
			t.Fatalf("Item(sword) error: %v", err)
		}
		q := sword.Equippable.Quality
		if q == nil {
			t.Fatal("Sword spawned without quality")
		}
		tier := s.Registry().Quality(q.ID)
		if len(q.Boosted) != tier.Attributes {
			t.Errorf("%s boosted %d attributes, want %d", q.Name, len(q.Boosted), tier.Attributes)
		}
		if tier.Magical && q.Ability == "" {
			t.Errorf("%s has no magical ability", q.Name)
		}
		if !tier.Magical && q.Ability != "" {
			t.Errorf("%s has ability %q", q.Name, q.Ability)
		}
		if sword.Equippable.Bonus(gamedata.BonusMeleeDamage) < base {
			t.Errorf("Quality lowered melee bonus below base %d", base)
		}
	}

	if got := s.Registry().Item("sword").Equippable.Bonuses[gamedata.BonusMeleeDamage]; got != base {
		t.Errorf("Template bonus mutated: %d, want %d", got, base)
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	s1 := newTestSpawner(t, 99, 2)
	s2 := newTestSpawner(t, 99, 2)

	for _, id := range []string{"troll", "goblin", "bat"} {
		a, _ := s1.Monster(id, 0, 0)
		b, _ := s2.Monster(id, 0, 0)
		if a.ID != b.ID {
			t.Errorf("Monster(%s) id mismatch: %s != %s", id, a.ID, b.ID)
		}
	}
	for _, id := range []string{"long_bow", "chain_mail", "rock"} {
		a, _ := s1.Item(id, 0, 0)
		b, _ := s2.Item(id, 0, 0)
		if a.ID != b.ID || a.Name != b.Name || a.Quantity != b.Quantity {
			t.Errorf("Item(%s) mismatch: %+v != %+v", id, a, b)
		}
	}
}

func TestKey(t *testing.T) {
	s := newTestSpawner(t, 6, 1)

	key := s.Key("1_4")
	if !key.IsKey() {
		t.Fatal("Key() did not produce a key")
	}
	if key.KeyID() != "1_4" {
		t.Errorf("KeyID = %q, want %q", key.KeyID(), "1_4")
	}
	if key.Kind != KindItem {
		t.Errorf("Key kind = %v, want item", key.Kind)
	}

	holder := s.Player()
	holder.Inventory.Stash(key)
	if holder.Inventory.KeyFor("1_4") != key {
		t.Error("KeyFor did not find held key")
	}
	if holder.Inventory.KeyFor("1_5") != nil {
		t.Error("KeyFor matched the wrong room")
	}
	if holder.Inventory.KeyFor("") != nil {
		t.Error("KeyFor matched an empty room id")
	}
}

func TestInventoryCapacity(t *testing.T) {
	s := newTestSpawner(t, 7, 1)
	inv := NewInventory(1)

	potion, _ := s.Item("health_potion", 0, 0)
	if err := inv.Add(potion); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	other, _ := s.Item("health_potion", 0, 0)
	if err := inv.Add(other); !errors.Is(err, ErrInventoryFull) {
		t.Errorf("Add to full inventory error = %v, want ErrInventoryFull", err)
	}

	inv.Stash(other)
	if inv.Len() != 2 {
		t.Errorf("Stash ignored: Len = %d, want 2", inv.Len())
	}
	if !inv.Remove(potion) || inv.Len() != 1 {
		t.Error("Remove failed")
	}
	if inv.Remove(potion) {
		t.Error("Remove of absent item reported true")
	}
}

func TestInventoryAmmoStacks(t *testing.T) {
	s := newTestSpawner(t, 8, 1)
	inv := NewInventory(1)

	a, _ := s.Item("arrow", 0, 0)
	b, _ := s.Item("arrow", 0, 0)
	want := a.Quantity + b.Quantity

	if err := inv.Add(a); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if err := inv.Add(b); err != nil {
		t.Fatalf("Add of matching ammo to full inventory error: %v", err)
	}
	if inv.Len() != 1 || inv.Items[0].Quantity != want {
		t.Errorf("Stack = %d items, quantity %d; want 1 item, quantity %d", inv.Len(), inv.Items[0].Quantity, want)
	}
}

func TestEquipmentBonus(t *testing.T) {
	eq := NewEquipment()
	item := func(slot gamedata.Slot, kind gamedata.BonusKind, v int) *Entity {
		return &Entity{Kind: KindItem, Equippable: &Equippable{
			Slot:    slot,
			Bonuses: map[gamedata.BonusKind]int{kind: v},
		}}
	}

	sword := item(gamedata.SlotWeapon, gamedata.BonusMeleeDamage, 4)
	armor := item(gamedata.SlotArmor, gamedata.BonusDefense, 3)
	lantern := item(gamedata.SlotUtility, gamedata.BonusFieldOfView, 5)

	eq.Equip(sword)
	eq.Equip(armor)
	eq.Equip(lantern)

	tests := []struct {
		kind gamedata.BonusKind
		want int
	}{
		{gamedata.BonusMeleeDamage, 4},
		{gamedata.BonusDefense, 3},
		{gamedata.BonusFieldOfView, 5},
		{gamedata.BonusRangedDamage, 0},
	}
	for _, tt := range tests {
		if got := eq.Bonus(tt.kind); got != tt.want {
			t.Errorf("Bonus(%s) = %d, want %d", tt.kind, got, tt.want)
		}
	}

	dagger := item(gamedata.SlotWeapon, gamedata.BonusMeleeDamage, 2)
	if prev := eq.Equip(dagger); prev != sword {
		t.Error("Equip did not return displaced weapon")
	}
	if got := eq.Bonus(gamedata.BonusMeleeDamage); got != 2 {
		t.Errorf("Bonus after swap = %d, want 2", got)
	}
	if !eq.IsEquipped(dagger) || eq.IsEquipped(sword) {
		t.Error("IsEquipped wrong after swap")
	}
	eq.Unequip(gamedata.SlotArmor)
	if got := eq.Bonus(gamedata.BonusDefense); got != 0 {
		t.Errorf("Bonus after unequip = %d, want 0", got)
	}
}

func TestDieDropsInventory(t *testing.T) {
	s := newTestSpawner(t, 9, 1)

	orc, _ := s.Monster("orc", 2, 2)
	orc.Inventory.Stash(s.Key("1_2"))
	held := orc.Inventory.Len()

	dropped := orc.Die()
	if len(dropped) != held {
		t.Errorf("Die dropped %d items, want %d", len(dropped), held)
	}
	if orc.IsAlive() || orc.BlocksMovement {
		t.Error("Dead orc still alive or blocking")
	}
	if orc.Inventory.Len() != 0 {
		t.Error("Inventory not emptied")
	}
	if orc.Bonus(gamedata.BonusMeleeDamage) != 0 {
		t.Error("Equipment not cleared")
	}
}

func TestFighterDamageAndHeal(t *testing.T) {
	f := &Fighter{HP: 10, MaxHP: 10}

	if got := f.TakeDamage(4); got != 4 || f.HP != 6 {
		t.Errorf("TakeDamage(4) = %d, HP = %d; want 4, 6", got, f.HP)
	}
	if got := f.Heal(10); got != 4 || f.HP != 10 {
		t.Errorf("Heal(10) = %d, HP = %d; want 4, 10", got, f.HP)
	}
	if got := f.TakeDamage(25); got != 10 || f.HP != 0 {
		t.Errorf("TakeDamage(25) = %d, HP = %d; want 10, 0", got, f.HP)
	}
	if got := f.TakeDamage(-1); got != 0 {
		t.Errorf("TakeDamage(-1) = %d, want 0", got)
	}
}
