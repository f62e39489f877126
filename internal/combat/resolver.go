// Package combat resolves bump attacks between actors.
package combat

import (
	"fmt"

	"github.com/samdwyer/vaultdelve/internal/entity"
	"github.com/samdwyer/vaultdelve/internal/gamedata"
)

// DamageUnarmed is the damage type of an actor with no weapon.
const DamageUnarmed = "bludgeoning"

// Result contains the outcome of one melee attack.
type Result struct {
	Damage     int
	DamageType string
	Resisted   bool
	Immune     bool
	Killed     bool
	// Dropped holds what the defender was carrying when it died.
	Dropped []*entity.Entity
	Message string
}

// DamageType returns the damage type dealt by the actor's melee weapon.
func DamageType(attacker *entity.Entity) string {
	if attacker.Equipment != nil {
		if w := attacker.Equipment.Item(gamedata.SlotWeapon); w != nil && w.Equippable.DamageType != "" {
			return w.Equippable.DamageType
		}
	}
	return DamageUnarmed
}

// CalculateDamage returns the damage a melee attack would deal without
// applying it: attack power plus melee bonus minus total defense, at least
// 1, halved when resisted and zero when the defender is immune.
func CalculateDamage(attacker, defender *entity.Entity) int {
	if attacker.Fighter == nil || defender.Fighter == nil {
		return 0
	}

	damage := attacker.Fighter.Power + attacker.Bonus(gamedata.BonusMeleeDamage) -
		defender.Fighter.Defense - defender.Bonus(gamedata.BonusDefense)
	if damage < 1 {
		damage = 1
	}

	dt := DamageType(attacker)
	switch {
	case defender.Fighter.ImmuneTo(dt):
		return 0
	case defender.Fighter.ResistsType(dt):
		damage /= 2
	}
	return damage
}

// Resolve applies a melee attack. A defender brought to 0 HP dies and its
// inventory is returned in Result.Dropped for the caller to place.
func Resolve(attacker, defender *entity.Entity) Result {
	if attacker.Fighter == nil || defender.Fighter == nil || !defender.IsAlive() {
		return Result{Message: fmt.Sprintf("%s swings at nothing.", attacker.Name)}
	}

	dt := DamageType(attacker)
	result := Result{
		DamageType: dt,
		Immune:     defender.Fighter.ImmuneTo(dt),
		Resisted:   defender.Fighter.ResistsType(dt),
	}
	result.Damage = defender.Fighter.TakeDamage(CalculateDamage(attacker, defender))

	switch {
	case result.Immune:
		result.Message = fmt.Sprintf("%s attacks %s but it is immune to %s.", attacker.Name, defender.Name, dt)
	case result.Damage == 0:
		result.Message = fmt.Sprintf("%s attacks %s but does no damage.", attacker.Name, defender.Name)
	default:
		result.Message = fmt.Sprintf("%s attacks %s for %d hit points.", attacker.Name, defender.Name, result.Damage)
	}

	if !defender.IsAlive() {
		name := defender.Name
		result.Killed = true
		result.Dropped = defender.Die()
		result.Message += fmt.Sprintf(" %s dies!", name)
	}

	return result
}
