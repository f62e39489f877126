package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/vaultdelve/internal/entity"
	"github.com/samdwyer/vaultdelve/internal/world"
)

func TestRenderDrawsLevelAndEntities(t *testing.T) {
	screen, err := NewSimulationScreen(20, 12)
	if err != nil {
		t.Fatalf("NewSimulationScreen error: %v", err)
	}
	defer screen.Close()

	level := world.NewLevel(1, 10, 6)
	for x := 1; x < 9; x++ {
		level.SetTile(x, 2, world.TileFloor)
	}
	level.SetTile(8, 2, world.TileDownStairs)

	player := &entity.Entity{Kind: entity.KindActor, Name: "Player", Glyph: '@', Color: tcell.ColorWhite, X: 2, Y: 2,
		Fighter: &entity.Fighter{HP: 1, MaxHP: 1}}
	potion := &entity.Entity{Kind: entity.KindItem, Name: "Health Potion", Glyph: '!', Color: tcell.ColorPurple, X: 4, Y: 2}
	buried := &entity.Entity{Kind: entity.KindItem, Name: "Rock", Glyph: '*', X: 2, Y: 2}
	level.AddEntity(player)
	level.AddEntity(potion)
	level.AddEntity(buried)

	NewRenderer(screen).Render(level, player, "Floor 1", []string{"Welcome"})

	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, '#'},
		{1, 2, '.'},
		{8, 2, '>'},
		{4, 2, '!'},
		{2, 2, '@'},
		{0, 6, 'F'},
		{0, 7, 'W'},
	}
	for _, tt := range tests {
		if got := screen.RuneAt(tt.x, tt.y); got != tt.want {
			t.Errorf("RuneAt(%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestTileStyleUsesLightGlyph(t *testing.T) {
	fg, bg, _ := TileStyle(world.TileLockedDoor).Decompose()
	if fg != world.TileLockedDoor.Light.Fg || bg != world.TileLockedDoor.Light.Bg {
		t.Errorf("TileStyle colors = %v/%v, want %v/%v", fg, bg, world.TileLockedDoor.Light.Fg, world.TileLockedDoor.Light.Bg)
	}
}
