package world

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/vaultdelve/internal/entity"
	"github.com/samdwyer/vaultdelve/internal/logger"
	"github.com/samdwyer/vaultdelve/internal/telemetry"
)

const (
	north = iota
	east
	south
	west
)

var directions = [4]Point{
	north: {0, -1},
	east:  {1, 0},
	south: {0, 1},
	west:  {-1, 0},
}

// opening is a room's wall cell that a tunnel has cut through.
type opening struct {
	Point
	candidate bool
}

// discoverDoors finds where tunnels break through each room's wall and
// places doors there. A room other than the entry room whose wall is broken
// exactly once becomes a locked vault, and a key is minted for it.
func (g *Generator) discoverDoors(ctx context.Context) []*entity.Entity {
	_, span := telemetry.Tracer("world").Start(ctx, "level.doors")
	defer span.End()

	var keys []*entity.Entity
	doors := 0

	for i, room := range g.level.Rooms {
		openings := g.scanWall(room)

		var candidates []Point
		for _, o := range openings {
			if o.candidate {
				candidates = append(candidates, o.Point)
			}
		}

		entry := i == 0
		switch {
		case len(openings) == 1 && len(candidates) == 1 && !entry:
			c := candidates[0]
			g.level.placeDoor(&Door{X: c.X, Y: c.Y, Locked: true, RoomID: room.ID})
			room.Type = RoomLocked
			key := g.spawner.Key(room.ID)
			keys = append(keys, key)
			g.level.Keys = append(g.level.Keys, key)
			doors++
			logger.Debug("vault locked", "floor", g.floor, "room", room.ID, "x", c.X, "y", c.Y)

		case len(openings) == 1 && len(candidates) == 1:
			c := candidates[0]
			g.level.placeDoor(&Door{X: c.X, Y: c.Y, RoomID: room.ID})
			doors++

		case len(openings) == 1:
			// A lone opening that cannot hold a door leaves the room ungated.
			logger.Debug("single opening without door slot", "floor", g.floor, "room", room.ID)

		default:
			for _, c := range candidates {
				g.level.placeDoor(&Door{X: c.X, Y: c.Y, RoomID: room.ID})
				doors++
			}
		}
	}

	span.SetAttributes(
		attribute.Int("doors.placed", doors),
		attribute.Int("doors.locked", len(keys)),
	)
	return keys
}

// scanWall returns the wall cells of room that are open. A door already
// placed by a neighbouring room counts as an opening but is never a
// candidate for a second door.
func (g *Generator) scanWall(room *Room) []opening {
	var openings []opening

	for _, p := range room.Rect.Perimeter() {
		t := g.level.TileAt(p.X, p.Y)
		if t.Kind != KindFloor && !t.IsDoor() {
			continue
		}
		o := opening{Point: p}
		if t.Kind == KindFloor {
			o.candidate = g.isDoorSlot(room, p)
		}
		openings = append(openings, o)
	}

	return openings
}

// isDoorSlot reports whether a broken wall cell can take a door: exactly one
// open neighbour outside the room, and walls on exactly one opposing pair of
// sides.
func (g *Generator) isDoorSlot(room *Room, p Point) bool {
	external := 0
	var wall [4]bool

	for dir, d := range directions {
		nx, ny := p.X+d.X, p.Y+d.Y
		if !g.level.InBounds(nx, ny) {
			continue
		}
		t := g.level.TileAt(nx, ny)
		switch {
		case (t.Walkable || t.IsDoor()) && !room.Rect.InInner(nx, ny):
			external++
		case t.Kind == KindWall:
			wall[dir] = true
		}
	}

	if external != 1 {
		return false
	}
	vertical := wall[north] && wall[south] && !wall[east] && !wall[west]
	horizontal := wall[east] && wall[west] && !wall[north] && !wall[south]
	return vertical || horizontal
}
