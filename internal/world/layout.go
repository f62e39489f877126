package world

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/vaultdelve/internal/entity"
	"github.com/samdwyer/vaultdelve/internal/logger"
	"github.com/samdwyer/vaultdelve/internal/telemetry"
)

const (
	// Default level dimensions
	DefaultWidth  = 80
	DefaultHeight = 43

	DefaultMaxRooms    = 30
	DefaultRoomMinSize = 6
	DefaultRoomMaxSize = 10
)

// ErrInvalidParams is returned when generation parameters cannot produce a level.
var ErrInvalidParams = errors.New("invalid generation parameters")

// Params controls the size and density of generated levels.
type Params struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	MaxRooms    int `yaml:"max_rooms"`
	RoomMinSize int `yaml:"room_min_size"`
	RoomMaxSize int `yaml:"room_max_size"`
}

// DefaultParams returns the standard 80x43 layout parameters.
func DefaultParams() Params {
	return Params{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		MaxRooms:    DefaultMaxRooms,
		RoomMinSize: DefaultRoomMinSize,
		RoomMaxSize: DefaultRoomMaxSize,
	}
}

// Validate checks that the parameters admit at least one room. The first
// placement attempt always succeeds when they do.
func (p Params) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: grid %dx%d must be positive", ErrInvalidParams, p.Width, p.Height)
	case p.MaxRooms < 1:
		return fmt.Errorf("%w: max rooms %d must be at least 1", ErrInvalidParams, p.MaxRooms)
	case p.RoomMinSize < 2:
		return fmt.Errorf("%w: room min size %d must be at least 2", ErrInvalidParams, p.RoomMinSize)
	case p.RoomMaxSize < p.RoomMinSize:
		return fmt.Errorf("%w: room max size %d is below min size %d", ErrInvalidParams, p.RoomMaxSize, p.RoomMinSize)
	case p.RoomMaxSize >= p.Width || p.RoomMaxSize >= p.Height:
		return fmt.Errorf("%w: room max size %d does not fit a %dx%d grid", ErrInvalidParams, p.RoomMaxSize, p.Width, p.Height)
	}
	return nil
}

// layout places up to MaxRooms non-overlapping rooms, carves their interiors,
// joins each to the previous accepted room with an L-shaped tunnel and
// places the stairs. The player, if any, starts at the first room's center.
func (g *Generator) layout(ctx context.Context, player *entity.Entity) {
	_, span := telemetry.Tracer("world").Start(ctx, "level.layout")
	defer span.End()

	p := g.params
	level := g.level
	var prev *Room
	rejected := 0

	for attempt := 1; attempt <= p.MaxRooms; attempt++ {
		w := p.RoomMinSize + g.rng.Intn(p.RoomMaxSize-p.RoomMinSize+1)
		h := p.RoomMinSize + g.rng.Intn(p.RoomMaxSize-p.RoomMinSize+1)
		x := g.rng.Intn(p.Width - w)
		y := g.rng.Intn(p.Height - h)

		rect := NewRect(x, y, w, h)
		if g.overlapsAny(rect) {
			rejected++
			continue
		}

		room := &Room{ID: RoomID(g.floor, attempt), Type: RoomNormal, Rect: rect}
		g.carve(rect.Inner())

		cx, cy := rect.Center()
		if prev == nil {
			level.UpStairs = Point{cx, cy}
			if player != nil {
				player.Place(cx, cy)
				level.AddEntity(player)
			}
		} else {
			px, py := prev.Center()
			g.tunnel(px, py, cx, cy)
		}
		level.DownStairs = Point{cx, cy}

		level.Rooms = append(level.Rooms, room)
		prev = room
		logger.Debug("room accepted", "floor", g.floor, "room", room.ID, "x", x, "y", y, "w", w, "h", h)
	}

	// Up-stairs win when both stairs share the single room's center.
	level.SetTile(level.DownStairs.X, level.DownStairs.Y, TileDownStairs)
	level.SetTile(level.UpStairs.X, level.UpStairs.Y, TileUpStairs)

	span.SetAttributes(
		attribute.Int("layout.attempts", p.MaxRooms),
		attribute.Int("layout.rooms", len(level.Rooms)),
		attribute.Int("layout.rejected", rejected),
	)
}

func (g *Generator) overlapsAny(rect Rect) bool {
	for _, r := range g.level.Rooms {
		if rect.Intersects(r.Rect) {
			return true
		}
	}
	return false
}

// carve sets every tile in the rectangle to floor.
func (g *Generator) carve(r Rect) {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			g.level.SetTile(x, y, TileFloor)
		}
	}
}

// tunnel carves an L-shaped corridor between two points. The bend goes
// horizontal-first or vertical-first with equal chance.
func (g *Generator) tunnel(x1, y1, x2, y2 int) {
	if g.rng.Intn(2) == 0 {
		g.carveHorizontalTunnel(x1, x2, y1)
		g.carveVerticalTunnel(y1, y2, x2)
	} else {
		g.carveVerticalTunnel(y1, y2, x1)
		g.carveHorizontalTunnel(x1, x2, y2)
	}
}

// carveHorizontalTunnel carves a horizontal tunnel.
func (g *Generator) carveHorizontalTunnel(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		g.level.SetTile(x, y, TileFloor)
	}
}

// carveVerticalTunnel carves a vertical tunnel.
func (g *Generator) carveVerticalTunnel(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		g.level.SetTile(x, y, TileFloor)
	}
}
