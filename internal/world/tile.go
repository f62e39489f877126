// Package world provides level generation and map management.
package world

import "github.com/gdamore/tcell/v2"

// TileKind classifies a map cell.
type TileKind uint8

const (
	KindWall TileKind = iota
	KindFloor
	KindClosedDoor
	KindOpenDoor
	KindLockedDoor
	KindUpStairs
	KindDownStairs
)

// String returns the kind name.
func (k TileKind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindFloor:
		return "floor"
	case KindClosedDoor:
		return "closed_door"
	case KindOpenDoor:
		return "open_door"
	case KindLockedDoor:
		return "locked_door"
	case KindUpStairs:
		return "up_stairs"
	case KindDownStairs:
		return "down_stairs"
	default:
		return "unknown"
	}
}

// Glyph is how a tile is drawn.
type Glyph struct {
	Rune rune
	Fg   tcell.Color
	Bg   tcell.Color
}

// Tile is an immutable cell value. Light is used for cells in view and Dark
// for remembered cells.
type Tile struct {
	Kind        TileKind
	Walkable    bool
	Transparent bool
	Light       Glyph
	Dark        Glyph
}

var (
	colorWallLight  = tcell.NewRGBColor(130, 110, 50)
	colorWallDark   = tcell.NewRGBColor(0, 0, 100)
	colorFloorLight = tcell.NewRGBColor(200, 180, 50)
	colorFloorDark  = tcell.NewRGBColor(50, 50, 150)
	colorDoor       = tcell.NewRGBColor(139, 69, 19)
	colorLocked     = tcell.NewRGBColor(255, 215, 0)
	colorStairs     = tcell.NewRGBColor(255, 255, 255)
)

func newTile(kind TileKind, walkable, transparent bool, r rune, fg, lightBg, darkBg tcell.Color) Tile {
	return Tile{
		Kind:        kind,
		Walkable:    walkable,
		Transparent: transparent,
		Light:       Glyph{Rune: r, Fg: fg, Bg: lightBg},
		Dark:        Glyph{Rune: r, Fg: tcell.ColorGray, Bg: darkBg},
	}
}

// Predefined tiles. Closed and locked doors block both movement and sight.
var (
	TileWall       = newTile(KindWall, false, false, '#', tcell.ColorWhite, colorWallLight, colorWallDark)
	TileFloor      = newTile(KindFloor, true, true, '.', tcell.ColorWhite, colorFloorLight, colorFloorDark)
	TileClosedDoor = newTile(KindClosedDoor, false, false, '+', colorDoor, colorFloorLight, colorFloorDark)
	TileOpenDoor   = newTile(KindOpenDoor, true, true, '\'', colorDoor, colorFloorLight, colorFloorDark)
	TileLockedDoor = newTile(KindLockedDoor, false, false, '+', colorLocked, colorFloorLight, colorFloorDark)
	TileUpStairs   = newTile(KindUpStairs, true, true, '<', colorStairs, colorFloorLight, colorFloorDark)
	TileDownStairs = newTile(KindDownStairs, true, true, '>', colorStairs, colorFloorLight, colorFloorDark)
)

// TileOf returns the predefined tile for a kind.
func TileOf(kind TileKind) Tile {
	switch kind {
	case KindFloor:
		return TileFloor
	case KindClosedDoor:
		return TileClosedDoor
	case KindOpenDoor:
		return TileOpenDoor
	case KindLockedDoor:
		return TileLockedDoor
	case KindUpStairs:
		return TileUpStairs
	case KindDownStairs:
		return TileDownStairs
	default:
		return TileWall
	}
}

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t.Walkable
}

// IsDoor reports whether the tile is a door in any state.
func (t Tile) IsDoor() bool {
	return t.Kind == KindClosedDoor || t.Kind == KindOpenDoor || t.Kind == KindLockedDoor
}

// IsStairs reports whether the tile is a staircase.
func (t Tile) IsStairs() bool {
	return t.Kind == KindUpStairs || t.Kind == KindDownStairs
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return t.Light.Rune
}
