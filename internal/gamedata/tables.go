package gamedata

import (
	"math/rand"
	"slices"
)

// Entry is a single weighted template reference.
type Entry struct {
	ID     string `json:"id"`
	Weight int    `json:"weight"`
}

// Tier lists the entries that become available from MinFloor onward.
type Tier struct {
	MinFloor int     `json:"minFloor"`
	Entries  []Entry `json:"entries"`
}

// WeightedTable is a floor-stratified weighted table. The effective table
// for a floor is the union of every tier at or below it, where a later tier
// overrides the weight of an id that an earlier tier already introduced.
type WeightedTable struct {
	Tiers []Tier `json:"tiers"`
}

// NewWeightedTable builds a table from tiers, sorting them by MinFloor.
func NewWeightedTable(tiers ...Tier) WeightedTable {
	t := WeightedTable{Tiers: tiers}
	t.sort()
	return t
}

func (t *WeightedTable) sort() {
	slices.SortStableFunc(t.Tiers, func(a, b Tier) int {
		return a.MinFloor - b.MinFloor
	})
}

// Effective resolves the table for the given floor. Entries keep the order
// in which their id first appeared so that draws are reproducible.
func (t WeightedTable) Effective(floor int) []Entry {
	var result []Entry
	index := make(map[string]int)

	for _, tier := range t.Tiers {
		if tier.MinFloor > floor {
			break
		}
		for _, e := range tier.Entries {
			if i, ok := index[e.ID]; ok {
				result[i].Weight = e.Weight
				continue
			}
			index[e.ID] = len(result)
			result = append(result, e)
		}
	}

	return result
}

// Pick draws n ids with replacement from the effective table for floor.
// It returns nil when the effective table has no positive weight.
func (t WeightedTable) Pick(rng *rand.Rand, floor, n int) []string {
	entries := t.Effective(floor)

	total := 0
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total <= 0 || n <= 0 {
		return nil
	}

	picks := make([]string, 0, n)
	for range n {
		roll := rng.Intn(total)
		cumulative := 0
		for _, e := range entries {
			if e.Weight <= 0 {
				continue
			}
			cumulative += e.Weight
			if roll < cumulative {
				picks = append(picks, e.ID)
				break
			}
		}
	}
	return picks
}

// IDs returns every id referenced by any tier.
func (t WeightedTable) IDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, tier := range t.Tiers {
		for _, e := range tier.Entries {
			if !seen[e.ID] {
				seen[e.ID] = true
				ids = append(ids, e.ID)
			}
		}
	}
	return ids
}

// Step is one step of a CountTable.
type Step struct {
	MinFloor int `json:"minFloor"`
	Value    int `json:"value"`
}

// CountTable maps a floor to the value of the highest step at or below it.
type CountTable []Step

// ValueFor returns the step value for floor, or 0 if no step applies.
func (c CountTable) ValueFor(floor int) int {
	value := 0
	best := -1
	for _, s := range c {
		if s.MinFloor <= floor && s.MinFloor > best {
			best = s.MinFloor
			value = s.Value
		}
	}
	return value
}

// SpawnTables groups every table the population engine reads.
type SpawnTables struct {
	Items       WeightedTable `json:"items"`
	Monsters    WeightedTable `json:"monsters"`
	Vault       WeightedTable `json:"vault"`
	MaxItems    CountTable    `json:"maxItems"`
	MaxMonsters CountTable    `json:"maxMonsters"`
	VaultItems  CountTable    `json:"vaultItems"`
}

// LoadSpawnTables loads the embedded spawn_tables.json file.
func LoadSpawnTables() (*SpawnTables, error) {
	tables, err := Load[SpawnTables]("spawn_tables.json")
	if err != nil {
		return nil, err
	}
	tables.Items.sort()
	tables.Monsters.sort()
	tables.Vault.sort()
	return &tables, nil
}
