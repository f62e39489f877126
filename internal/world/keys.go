package world

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/vaultdelve/internal/entity"
	"github.com/samdwyer/vaultdelve/internal/logger"
	"github.com/samdwyer/vaultdelve/internal/telemetry"
)

// carrier is a monster together with the room it spawned in.
type carrier struct {
	monster *entity.Entity
	roomID  string
}

// distributeKeys hands every minted key to a monster. Monsters standing
// where the player can walk without opening any vault are preferred, then
// any monster outside the key's vault, then any monster at all. With no
// monsters on the floor the key is left lying in the entry room.
func (g *Generator) distributeKeys(ctx context.Context, keys []*entity.Entity) {
	_, span := telemetry.Tracer("world").Start(ctx, "level.keys")
	defer span.End()

	if len(keys) == 0 {
		return
	}

	var all []carrier
	for _, room := range g.level.Rooms {
		for _, m := range room.Monsters() {
			all = append(all, carrier{monster: m, roomID: room.ID})
		}
	}

	reachable := g.level.Reachable(g.level.UpStairs, nil)
	dropped := 0

	for _, key := range keys {
		target := key.KeyID()

		var open, outside []carrier
		for _, c := range all {
			if c.roomID == target {
				continue
			}
			outside = append(outside, c)
			if reachable.Has(Point{c.monster.X, c.monster.Y}) {
				open = append(open, c)
			}
		}

		pool := open
		if len(pool) == 0 {
			pool = outside
		}
		if len(pool) == 0 {
			pool = all
		}
		if len(pool) == 0 {
			g.dropKey(key)
			dropped++
			continue
		}

		chosen := pool[g.rng.Intn(len(pool))]
		chosen.monster.Inventory.Stash(key)
		logger.Debug("key assigned", "floor", g.floor, "room", target, "carrier", chosen.monster.Name, "carrier_room", chosen.roomID)
	}

	span.SetAttributes(
		attribute.Int("keys.minted", len(keys)),
		attribute.Int("keys.dropped", dropped),
	)
}

// dropKey leaves a key on a free interior cell of the entry room, or on the
// up-stairs when the room is full.
func (g *Generator) dropKey(key *entity.Entity) {
	entry := g.level.Rooms[0]
	in := entry.Rect.Inner()
	spot := g.level.UpStairs

	found := false
	for y := in.Y1; y <= in.Y2 && !found; y++ {
		for x := in.X1; x <= in.X2; x++ {
			if !g.level.Occupied(x, y) {
				spot = Point{x, y}
				found = true
				break
			}
		}
	}

	key.Place(spot.X, spot.Y)
	g.level.AddEntity(key)
	entry.AddEntity(key)
	logger.Warning("no monster can carry key, dropped in entry room", "floor", g.floor, "room", key.KeyID(), "x", spot.X, "y", spot.Y)
}
