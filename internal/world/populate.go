package world

import (
	"context"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/vaultdelve/internal/entity"
	"github.com/samdwyer/vaultdelve/internal/gamedata"
	"github.com/samdwyer/vaultdelve/internal/telemetry"
)

// populate spawns monsters and items into every room. Vaults get a fixed
// number of items from the vault table and no monsters; normal rooms get a
// random number of each, bounded by the floor's count tables.
func (g *Generator) populate(ctx context.Context) error {
	_, span := telemetry.Tracer("world").Start(ctx, "level.populate")
	defer span.End()

	tables := g.registry.Tables()

	occupied := mapset.New[Point]()
	for _, e := range g.level.Entities() {
		occupied.Put(Point{e.X, e.Y})
	}

	skipped := 0
	for _, room := range g.level.Rooms {
		var err error
		var n int
		if room.IsLocked() {
			n, err = g.populateVault(room, tables, &occupied)
		} else {
			n, err = g.populateRoom(room, tables, &occupied)
		}
		if err != nil {
			span.RecordError(err)
			return err
		}
		skipped += n
	}

	span.SetAttributes(
		attribute.Int("populate.entities", len(g.level.Entities())),
		attribute.Int("populate.skipped", skipped),
	)
	return nil
}

func (g *Generator) populateVault(room *Room, tables *gamedata.SpawnTables, occupied *mapset.Set[Point]) (int, error) {
	count := tables.VaultItems.ValueFor(g.floor)
	skipped := 0
	for _, id := range tables.Vault.Pick(g.rng, g.floor, count) {
		ok, err := g.spawnItem(room, id, occupied)
		if err != nil {
			return skipped, err
		}
		if !ok {
			skipped++
		}
	}
	return skipped, nil
}

func (g *Generator) populateRoom(room *Room, tables *gamedata.SpawnTables, occupied *mapset.Set[Point]) (int, error) {
	monsterCount := g.rng.Intn(tables.MaxMonsters.ValueFor(g.floor) + 1)
	itemCount := g.rng.Intn(tables.MaxItems.ValueFor(g.floor) + 1)

	monsters := tables.Monsters.Pick(g.rng, g.floor, monsterCount)
	items := tables.Items.Pick(g.rng, g.floor, itemCount)

	skipped := 0
	for _, id := range items {
		ok, err := g.spawnItem(room, id, occupied)
		if err != nil {
			return skipped, err
		}
		if !ok {
			skipped++
		}
	}

	for _, id := range monsters {
		def := g.registry.Monster(id)
		copies := 1
		if def != nil {
			copies = def.Spawn.Copies(g.rng)
		}
		for range copies {
			ok, err := g.spawnMonster(room, id, occupied)
			if err != nil {
				return skipped, err
			}
			if !ok {
				skipped++
			}
		}
	}
	return skipped, nil
}

// randomInner rolls a cell in the room's interior and reports whether it is free.
func (g *Generator) randomInner(room *Room, occupied *mapset.Set[Point]) (Point, bool) {
	in := room.Rect.Inner()
	p := Point{
		X: in.X1 + g.rng.Intn(in.X2-in.X1+1),
		Y: in.Y1 + g.rng.Intn(in.Y2-in.Y1+1),
	}
	return p, !occupied.Has(p)
}

func (g *Generator) spawnItem(room *Room, id string, occupied *mapset.Set[Point]) (bool, error) {
	p, free := g.randomInner(room, occupied)
	if !free {
		return false, nil
	}
	e, err := g.spawner.Item(id, p.X, p.Y)
	if err != nil {
		return false, err
	}
	g.place(room, e, occupied)
	return true, nil
}

func (g *Generator) spawnMonster(room *Room, id string, occupied *mapset.Set[Point]) (bool, error) {
	p, free := g.randomInner(room, occupied)
	if !free {
		return false, nil
	}
	e, err := g.spawner.Monster(id, p.X, p.Y)
	if err != nil {
		return false, err
	}
	g.place(room, e, occupied)
	return true, nil
}

func (g *Generator) place(room *Room, e *entity.Entity, occupied *mapset.Set[Point]) {
	g.level.AddEntity(e)
	room.AddEntity(e)
	occupied.Put(Point{e.X, e.Y})
}
