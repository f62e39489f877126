package world

import (
	"iter"
	"slices"

	"github.com/samdwyer/vaultdelve/internal/entity"
)

// Level is one generated floor: its tile grid, rooms, doors and entities.
type Level struct {
	Floor      int
	Width      int
	Height     int
	Tiles      [][]Tile
	Rooms      []*Room
	Doors      map[Point]*Door
	UpStairs   Point
	DownStairs Point
	// Keys lists every key minted for this floor, wherever it now lives.
	Keys []*entity.Entity

	entities []*entity.Entity
}

// NewLevel creates a level filled with walls.
func NewLevel(floor, width, height int) *Level {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	return &Level{
		Floor:  floor,
		Width:  width,
		Height: height,
		Tiles:  tiles,
		Doors:  make(map[Point]*Door),
	}
}

// InBounds reports whether the position lies on the grid.
func (l *Level) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// TileAt returns the tile at the given position. Out of bounds reads as wall.
func (l *Level) TileAt(x, y int) Tile {
	if !l.InBounds(x, y) {
		return TileWall
	}
	return l.Tiles[y][x]
}

// SetTile replaces the tile at the given position.
func (l *Level) SetTile(x, y int, t Tile) {
	if l.InBounds(x, y) {
		l.Tiles[y][x] = t
	}
}

// IsPassable returns true if the given position can be walked on.
func (l *Level) IsPassable(x, y int) bool {
	return l.TileAt(x, y).IsPassable()
}

// DoorAt returns the door at the given position, or nil.
func (l *Level) DoorAt(x, y int) *Door {
	return l.Doors[Point{x, y}]
}

// RoomAt returns the room whose interior contains the position, or nil.
func (l *Level) RoomAt(x, y int) *Room {
	for _, r := range l.Rooms {
		if r.Rect.InInner(x, y) {
			return r
		}
	}
	return nil
}

// RoomByID returns the room with the given id, or nil.
func (l *Level) RoomByID(id string) *Room {
	for _, r := range l.Rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// AddEntity places an entity on the level.
func (l *Level) AddEntity(e *entity.Entity) {
	l.entities = append(l.entities, e)
}

// RemoveEntity takes an entity off the level, reporting whether it was there.
func (l *Level) RemoveEntity(e *entity.Entity) bool {
	i := slices.Index(l.entities, e)
	if i < 0 {
		return false
	}
	l.entities = slices.Delete(l.entities, i, i+1)
	return true
}

// Entities returns every entity on the level in placement order.
func (l *Level) Entities() []*entity.Entity {
	return l.entities
}

// Actors yields the live actors on the level.
func (l *Level) Actors() iter.Seq[*entity.Entity] {
	return func(yield func(*entity.Entity) bool) {
		for _, e := range l.entities {
			if e.IsActor() && e.IsAlive() {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Items yields the items lying on the level.
func (l *Level) Items() iter.Seq[*entity.Entity] {
	return func(yield func(*entity.Entity) bool) {
		for _, e := range l.entities {
			if e.IsItem() {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// EntityAt returns the first entity at the position, or nil.
func (l *Level) EntityAt(x, y int) *entity.Entity {
	for _, e := range l.entities {
		if e.X == x && e.Y == y {
			return e
		}
	}
	return nil
}

// BlockingEntityAt returns the entity blocking movement at the position, or nil.
func (l *Level) BlockingEntityAt(x, y int) *entity.Entity {
	for _, e := range l.entities {
		if e.BlocksMovement && e.X == x && e.Y == y {
			return e
		}
	}
	return nil
}

// ItemsAt returns the items lying at the position.
func (l *Level) ItemsAt(x, y int) []*entity.Entity {
	var items []*entity.Entity
	for e := range l.Items() {
		if e.X == x && e.Y == y {
			items = append(items, e)
		}
	}
	return items
}

// Occupied reports whether any entity stands at the position.
func (l *Level) Occupied(x, y int) bool {
	return l.EntityAt(x, y) != nil
}
