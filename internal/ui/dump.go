package ui

import (
	"fmt"
	"strings"

	"github.com/gookit/color"

	"github.com/samdwyer/vaultdelve/internal/world"
)

var (
	dumpWall   = color.Style{color.FgGray}
	dumpFloor  = color.Style{color.FgDarkGray}
	dumpDoor   = color.Style{color.FgYellow}
	dumpLocked = color.Style{color.FgYellow, color.OpBold, color.OpUnderscore}
	dumpStairs = color.Style{color.FgWhite, color.OpBold}
	dumpPlayer = color.Style{color.FgGreen, color.OpBold}
)

// Dump renders a snapshot as text, one line per map row, with entities
// drawn over the tiles. Actors hide items on the same cell. With colorize
// set, tiles and entities carry ANSI colors.
func Dump(s world.Snapshot, colorize bool) string {
	type cell struct {
		glyph string
		hex   string
		actor bool
	}

	overlay := make(map[world.Point]cell)
	for _, e := range s.Entities {
		p := world.Point{X: e.X, Y: e.Y}
		actor := e.Kind == "actor" && e.Alive
		if prev, ok := overlay[p]; ok && prev.actor && !actor {
			continue
		}
		overlay[p] = cell{glyph: e.Glyph, hex: e.Color, actor: actor}
	}

	locked := make(map[world.Point]bool)
	for _, d := range s.Doors {
		if d.Locked {
			locked[world.Point{X: d.X, Y: d.Y}] = true
		}
	}

	var b strings.Builder
	for y, row := range s.Rows {
		for x, r := range []rune(row) {
			p := world.Point{X: x, Y: y}
			if c, ok := overlay[p]; ok && c.glyph != "" {
				b.WriteString(paintEntity(c.glyph, c.hex, c.glyph == "@", colorize))
				continue
			}
			b.WriteString(paintTile(r, locked[p], colorize))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func paintTile(r rune, locked, colorize bool) string {
	s := string(r)
	if !colorize {
		return s
	}
	switch r {
	case '#':
		return dumpWall.Sprint(s)
	case '.':
		return dumpFloor.Sprint(s)
	case '+', '\'':
		if locked {
			return dumpLocked.Sprint(s)
		}
		return dumpDoor.Sprint(s)
	case '<', '>':
		return dumpStairs.Sprint(s)
	default:
		return s
	}
}

func paintEntity(glyph, hex string, player, colorize bool) string {
	switch {
	case !colorize:
		return glyph
	case player:
		return dumpPlayer.Sprint(glyph)
	case hex != "":
		return color.HEX(hex).Sprint(glyph)
	default:
		return glyph
	}
}

// Summary describes a snapshot in one line per room.
func Summary(s world.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Floor %d: %dx%d, %d rooms, %d doors, %d entities\n",
		s.Floor, s.Width, s.Height, len(s.Rooms), len(s.Doors), len(s.Entities))
	for _, r := range s.Rooms {
		fmt.Fprintf(&b, "  room %-6s %-6s (%d,%d)-(%d,%d)\n", r.ID, r.Type, r.Rect.X1, r.Rect.Y1, r.Rect.X2, r.Rect.Y2)
	}
	for _, e := range s.Entities {
		if len(e.Carrying) > 0 {
			fmt.Fprintf(&b, "  %s at (%d,%d) carries %s\n", e.Name, e.X, e.Y, strings.Join(e.Carrying, ", "))
		}
	}
	return b.String()
}

// Legend explains the dump glyphs.
func Legend() string {
	return "Legend: # wall  . floor  + door (locked doors underlined)  ' open door  < up  > down  @ player\n"
}
