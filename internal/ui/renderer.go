package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/vaultdelve/internal/entity"
	"github.com/samdwyer/vaultdelve/internal/world"
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the level, its entities, the status line and the message log.
// Items are drawn before actors so an actor standing on an item hides it.
func (r *Renderer) Render(level *world.Level, player *entity.Entity, status string, messages []string) {
	r.screen.Clear()

	for y := 0; y < level.Height; y++ {
		for x := 0; x < level.Width; x++ {
			tile := level.TileAt(x, y)
			r.screen.SetContent(x, y, tile.Rune(), TileStyle(tile))
		}
	}

	for e := range level.Items() {
		r.drawEntity(e)
	}
	for e := range level.Actors() {
		if e != player {
			r.drawEntity(e)
		}
	}
	if player != nil {
		r.screen.SetContent(player.X, player.Y, player.Glyph, EntityStyle(player).Bold(true))
	}

	r.RenderMessage(status, level.Height)
	for i, msg := range messages {
		r.RenderMessage(msg, level.Height+1+i)
	}

	r.screen.Show()
}

func (r *Renderer) drawEntity(e *entity.Entity) {
	r.screen.SetContent(e.X, e.Y, e.Glyph, EntityStyle(e))
}

// TileStyle returns the lit style of a tile.
func TileStyle(tile world.Tile) tcell.Style {
	return tcell.StyleDefault.Foreground(tile.Light.Fg).Background(tile.Light.Bg)
}

// EntityStyle returns the style an entity is drawn with.
func EntityStyle(e *entity.Entity) tcell.Style {
	return tcell.StyleDefault.Foreground(e.Color)
}

// RenderMessage displays a message on the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	x := 0
	for _, ch := range msg {
		r.screen.SetContent(x, y, ch, style)
		x++
	}
}

// RenderCentered draws a one-line notice in the middle of the screen.
func (r *Renderer) RenderCentered(msg string) {
	r.screen.Clear()
	w, h := r.screen.Size()
	x := (w - len([]rune(msg))) / 2
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	for _, ch := range msg {
		r.screen.SetContent(x, h/2, ch, style)
		x++
	}
	r.screen.Show()
}
