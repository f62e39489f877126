package game

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/vaultdelve/internal/entity"
	"github.com/samdwyer/vaultdelve/internal/gamedata"
	"github.com/samdwyer/vaultdelve/internal/ui"
	"github.com/samdwyer/vaultdelve/internal/world"
)

// corridorGame builds a game on a hand-made floor 1: a corridor from the
// up-stairs at x=1 to the down-stairs at x=10, with a weak orc at x=2
// carrying the key to a locked door at x=5.
func corridorGame(t *testing.T) (*Game, *world.Level, *entity.Entity) {
	t.Helper()
	registry, err := gamedata.LoadRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}
	w := NewWorld(1, world.DefaultParams(), registry)
	spawner := entity.NewSpawner(registry, FloorRand(1, 1), 1)

	level := world.NewLevel(1, 12, 5)
	for x := 1; x <= 10; x++ {
		level.SetTile(x, 2, world.TileFloor)
	}
	level.UpStairs = world.Point{X: 1, Y: 2}
	level.DownStairs = world.Point{X: 10, Y: 2}
	level.SetTile(1, 2, world.TileUpStairs)
	level.SetTile(10, 2, world.TileDownStairs)

	door := &world.Door{X: 5, Y: 2, Locked: true, RoomID: "1_2"}
	level.Doors[world.Point{X: 5, Y: 2}] = door
	level.SetTile(5, 2, door.Tile())

	orc, err := spawner.Monster("orc", 2, 2)
	if err != nil {
		t.Fatalf("Monster(orc) error: %v", err)
	}
	orc.Fighter.HP = 1
	orc.Fighter.Resists = nil
	key := spawner.Key("1_2")
	orc.Inventory.Stash(key)
	level.Keys = append(level.Keys, key)
	level.AddEntity(orc)

	w.Player.Place(1, 2)
	level.AddEntity(w.Player)
	w.Floors[1] = level
	w.CurrentFloor = 1

	screen, err := ui.NewSimulationScreen(80, 50)
	if err != nil {
		t.Fatalf("NewSimulationScreen error: %v", err)
	}
	t.Cleanup(screen.Close)

	return NewWithScreen(screen, w), level, orc
}

func press(g *Game, r rune) {
	g.handleKeyEvent(context.Background(), tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func right(g *Game) {
	g.handleKeyEvent(context.Background(), tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
}

func TestBumpKillsMonsterAndDropsLoot(t *testing.T) {
	g, level, orc := corridorGame(t)

	right(g)

	if orc.IsAlive() {
		t.Fatalf("Orc survived with HP %d", orc.Fighter.HP)
	}
	if g.world.Player.X != 1 {
		t.Error("Player moved while attacking")
	}
	if n := len(level.ItemsAt(2, 2)); n != 2 {
		t.Errorf("Items dropped at orc = %d, want weapon and key", n)
	}
}

func TestPickUpUnlockAndOpenDoor(t *testing.T) {
	g, level, _ := corridorGame(t)
	p := g.world.Player

	right(g) // kill the orc
	right(g) // step onto its remains
	press(g, 'g')
	press(g, 'g')
	if p.Inventory.KeyFor("1_2") == nil {
		t.Fatalf("Key not picked up; messages: %v", g.Messages())
	}
	if len(level.ItemsAt(2, 2)) != 0 {
		t.Error("Picked up items still on the floor")
	}

	right(g)
	right(g)
	if p.X != 4 {
		t.Fatalf("Player at x=%d, want 4", p.X)
	}

	right(g) // unlock
	d := level.DoorAt(5, 2)
	if d.Locked {
		t.Fatalf("Door still locked; messages: %v", g.Messages())
	}
	if p.Inventory.KeyFor("1_2") != nil {
		t.Error("Key not consumed")
	}

	right(g) // open
	if !d.Open {
		t.Fatal("Door not opened")
	}
	right(g) // step into doorway
	right(g)
	if p.X != 6 {
		t.Fatalf("Player at x=%d, want 6", p.X)
	}

	press(g, 'c')
	if d.Open || level.TileAt(5, 2).Kind != world.KindClosedDoor {
		t.Error("Door not closed")
	}
}

func TestLockedDoorWithoutKey(t *testing.T) {
	g, level, orc := corridorGame(t)
	level.RemoveEntity(orc)
	g.world.Player.Place(4, 2)

	right(g)

	if !level.DoorAt(5, 2).Locked {
		t.Error("Door unlocked without a key")
	}
	msgs := g.Messages()
	if len(msgs) == 0 || msgs[len(msgs)-1] != "The door is locked." {
		t.Errorf("Messages = %v", msgs)
	}
}

func TestStairsRoundTripAndSurface(t *testing.T) {
	g, level, _ := corridorGame(t)
	p := g.world.Player

	press(g, '>')
	if g.world.CurrentFloor != 1 {
		t.Fatal("Descended without standing on the stairs")
	}

	p.Place(10, 2)
	press(g, '>')
	if g.world.CurrentFloor != 2 {
		t.Fatalf("CurrentFloor = %d, want 2", g.world.CurrentFloor)
	}
	second := g.world.Level()
	if p.X != second.UpStairs.X || p.Y != second.UpStairs.Y {
		t.Errorf("Player at (%d,%d), want floor 2 up stairs %v", p.X, p.Y, second.UpStairs)
	}

	press(g, '<')
	if g.world.Level() != level {
		t.Fatal("Ascend did not return to the cached corridor floor")
	}
	if p.X != 10 || p.Y != 2 {
		t.Errorf("Player at (%d,%d), want down stairs (10,2)", p.X, p.Y)
	}

	p.Place(1, 2)
	press(g, '<')
	if g.State() != StateSurfaced || g.running {
		t.Errorf("State = %v, running = %v after leaving the dungeon", g.State(), g.running)
	}
}

func TestQuitKeys(t *testing.T) {
	g, _, _ := corridorGame(t)
	press(g, 'q')
	if g.running {
		t.Error("q did not stop the game")
	}

	g, _, _ = corridorGame(t)
	g.handleKeyEvent(context.Background(), tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if g.running {
		t.Error("Esc did not stop the game")
	}
}

func TestMessageLogIsBounded(t *testing.T) {
	g, _, _ := corridorGame(t)
	for range maxMessages + 3 {
		press(g, 'g')
	}
	if len(g.Messages()) != maxMessages {
		t.Errorf("Messages = %d, want %d", len(g.Messages()), maxMessages)
	}
}

func TestRenderShowsStatus(t *testing.T) {
	g, _, _ := corridorGame(t)
	g.render()

	if got := g.screen.RuneAt(1, 2); got != '@' {
		t.Errorf("Player cell = %q, want '@'", got)
	}
	if got := g.screen.RuneAt(0, 5); got != 'F' {
		t.Errorf("Status line starts with %q, want 'F'", got)
	}
}
