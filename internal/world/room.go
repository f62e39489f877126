package world

import (
	"fmt"

	"github.com/samdwyer/vaultdelve/internal/entity"
)

// Point is a map coordinate.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle whose outer ring is the room's wall.
// X2 and Y2 are inclusive perimeter coordinates.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// NewRect creates a rectangle at (x, y) with the given width and height.
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Center returns the center coordinates of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Inner returns the carved interior, excluding the one-tile border.
func (r Rect) Inner() Rect {
	return Rect{X1: r.X1 + 1, Y1: r.Y1 + 1, X2: r.X2 - 1, Y2: r.Y2 - 1}
}

// Contains returns true if the point lies on or inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// InInner returns true if the point lies in the carved interior.
func (r Rect) InInner(x, y int) bool {
	return r.Inner().Contains(x, y)
}

// OnPerimeter returns true if the point lies on the wall ring.
func (r Rect) OnPerimeter(x, y int) bool {
	if !r.Contains(x, y) {
		return false
	}
	return x == r.X1 || x == r.X2 || y == r.Y1 || y == r.Y2
}

// Perimeter returns the wall ring in column-major order.
func (r Rect) Perimeter() []Point {
	pts := make([]Point, 0, 2*(r.X2-r.X1+r.Y2-r.Y1))
	for x := r.X1; x <= r.X2; x++ {
		for y := r.Y1; y <= r.Y2; y++ {
			if x == r.X1 || x == r.X2 || y == r.Y1 || y == r.Y2 {
				pts = append(pts, Point{x, y})
			}
		}
	}
	return pts
}

// Intersects returns true if this rectangle overlaps another. Overlap is
// closed on x and open on y, so two rooms may share a horizontal wall row
// but never a vertical wall column. The relation is symmetric.
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 &&
		r.X2 >= other.X1 &&
		r.Y1 < other.Y2 &&
		r.Y2 > other.Y1
}

// RoomType marks whether a room is gated by a locked door.
type RoomType int

const (
	RoomNormal RoomType = iota
	RoomLocked
)

// String returns the room type name.
func (t RoomType) String() string {
	switch t {
	case RoomNormal:
		return "normal"
	case RoomLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// ParseRoomType parses a name produced by RoomType.String.
func ParseRoomType(s string) (RoomType, error) {
	switch s {
	case "normal":
		return RoomNormal, nil
	case "locked":
		return RoomLocked, nil
	default:
		return RoomNormal, fmt.Errorf("unknown room type %q", s)
	}
}

// Room is an accepted rectangle with its identity and contents.
type Room struct {
	ID       string
	Type     RoomType
	Rect     Rect
	Entities []*entity.Entity
}

// RoomID formats the id of the room created by the given placement attempt.
func RoomID(floor, attempt int) string {
	return fmt.Sprintf("%d_%d", floor, attempt)
}

// IsLocked reports whether the room is gated.
func (r *Room) IsLocked() bool {
	return r.Type == RoomLocked
}

// AddEntity records an entity as spawned in this room.
func (r *Room) AddEntity(e *entity.Entity) {
	r.Entities = append(r.Entities, e)
}

// Monsters returns the live actors spawned in this room.
func (r *Room) Monsters() []*entity.Entity {
	var monsters []*entity.Entity
	for _, e := range r.Entities {
		if e.IsActor() && e.IsAlive() {
			monsters = append(monsters, e)
		}
	}
	return monsters
}

// Center returns the center of the room.
func (r *Room) Center() (int, int) {
	return r.Rect.Center()
}
