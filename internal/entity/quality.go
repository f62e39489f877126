package entity

import "math"

// applyQuality rolls a quality tier for the spawner's floor and boosts a
// random subset of attributes by the tier multiplier.
func (s *Spawner) applyQuality(e *Entity) {
	q := s.registry.Qualities()

	picks := q.Chances.Pick(s.rng, s.floor, 1)
	if len(picks) == 0 {
		return
	}
	tier := s.registry.Quality(picks[0])
	if tier == nil {
		return
	}

	quality := &Quality{ID: tier.ID, Name: tier.Name}

	count := min(tier.Attributes, len(q.Attributes))
	for _, i := range s.rng.Perm(len(q.Attributes))[:count] {
		kind := q.Attributes[i]
		value := int(math.Round(float64(q.AttributeBase[kind]) * tier.Multiplier))
		e.Equippable.Bonuses[kind] += value
		quality.Boosted = append(quality.Boosted, kind)
	}

	if tier.Magical && len(q.Abilities) > 0 {
		quality.Ability = q.Abilities[s.rng.Intn(len(q.Abilities))]
	}

	e.Equippable.Quality = quality
	e.Name = tier.Name + " " + e.Name
	e.Color = tier.TCellColor()
}
