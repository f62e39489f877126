package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/vaultdelve/internal/combat"
	"github.com/samdwyer/vaultdelve/internal/entity"
	"github.com/samdwyer/vaultdelve/internal/logger"
	"github.com/samdwyer/vaultdelve/internal/telemetry"
	"github.com/samdwyer/vaultdelve/internal/ui"
	"github.com/samdwyer/vaultdelve/internal/world"
)

const maxMessages = 4

// Game holds the entire game state.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	world    *World
	state    State
	running  bool
	messages []string
}

// New creates a game on a fresh terminal screen.
func New(w *World) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, w), nil
}

// NewWithScreen creates a game drawing to the given screen.
func NewWithScreen(screen *ui.Screen, w *World) *Game {
	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		world:    w,
		state:    StateExplore,
		running:  true,
	}
}

// State returns the current game state.
func (g *Game) State() State {
	return g.state
}

// Messages returns the most recent messages, oldest first.
func (g *Game) Messages() []string {
	return g.messages
}

// Start enters floor 1.
func (g *Game) Start(ctx context.Context) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.init")
	defer span.End()

	level, err := g.world.Descend(ctx)
	if err != nil {
		return err
	}
	span.SetAttributes(
		attribute.Int64("game.seed", g.world.Seed),
		attribute.Int("level.rooms", len(level.Rooms)),
	)
	g.message(fmt.Sprintf("You enter the dungeon. Seed %d.", g.world.Seed))
	return nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	if err := g.Start(ctx); err != nil {
		return err
	}

	for g.running {
		g.render()
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

func (g *Game) render() {
	level := g.world.Level()
	if level == nil {
		return
	}
	p := g.world.Player
	keys := 0
	if p.Inventory != nil {
		keys = len(p.Inventory.Keys())
	}
	status := fmt.Sprintf("Floor %d  HP %d/%d  Items %d  Keys %d",
		level.Floor, p.Fighter.HP, p.Fighter.MaxHP, p.Inventory.Len(), keys)
	g.renderer.Render(level, p, status, g.messages)
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.tryMove(0, -1)
	case tcell.KeyDown:
		g.tryMove(0, 1)
	case tcell.KeyLeft:
		g.tryMove(-1, 0)
	case tcell.KeyRight:
		g.tryMove(1, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'g', ',':
			g.pickUp()
		case 'c':
			g.closeAdjacentDoor()
		case '>':
			g.takeStairs(ctx, true)
		case '<':
			g.takeStairs(ctx, false)
		}
	}
}

// tryMove moves the player, or acts on what stands in the way: attack a
// monster, open a closed door, unlock a locked one with a carried key.
func (g *Game) tryMove(dx, dy int) {
	if g.state != StateExplore {
		return
	}
	level := g.world.Level()
	p := g.world.Player
	nx, ny := p.X+dx, p.Y+dy

	if target := level.BlockingEntityAt(nx, ny); target != nil && target != p {
		g.attack(level, target)
		return
	}

	if d := level.DoorAt(nx, ny); d != nil && !d.Open {
		g.useDoor(level, d)
		return
	}

	if level.IsPassable(nx, ny) {
		p.Move(dx, dy)
		if items := level.ItemsAt(nx, ny); len(items) > 0 {
			g.message(fmt.Sprintf("You see %s here.", items[0].Name))
		}
	}
}

func (g *Game) attack(level *world.Level, target *entity.Entity) {
	x, y := target.X, target.Y
	result := combat.Resolve(g.world.Player, target)
	g.message(result.Message)

	for _, item := range result.Dropped {
		item.Place(x, y)
		level.AddEntity(item)
	}
	if result.Killed {
		logger.Debug("monster killed", "floor", level.Floor, "monster", target.TemplateID, "dropped", len(result.Dropped))
	}
}

func (g *Game) useDoor(level *world.Level, d *world.Door) {
	if d.Locked {
		err := level.UnlockDoor(d.X, d.Y, g.world.Player)
		switch {
		case errors.Is(err, world.ErrNoMatchingKey):
			g.message("The door is locked.")
			return
		case err != nil:
			g.message(err.Error())
			return
		}
		g.message(fmt.Sprintf("You unlock the door to room %s.", d.RoomID))
		return
	}

	if err := level.OpenDoor(d.X, d.Y); err != nil {
		g.message(err.Error())
		return
	}
	g.message("You open the door.")
}

func (g *Game) closeAdjacentDoor() {
	level := g.world.Level()
	p := g.world.Player
	for _, d := range [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
		door := level.DoorAt(p.X+d[0], p.Y+d[1])
		if door == nil || !door.Open {
			continue
		}
		if err := level.CloseDoor(door.X, door.Y); err != nil {
			g.message(fmt.Sprintf("You cannot close the door: %v.", err))
			return
		}
		g.message("You close the door.")
		return
	}
	g.message("There is no open door here.")
}

func (g *Game) pickUp() {
	level := g.world.Level()
	p := g.world.Player
	items := level.ItemsAt(p.X, p.Y)
	if len(items) == 0 {
		g.message("There is nothing here to pick up.")
		return
	}

	item := items[0]
	if err := p.Inventory.Add(item); err != nil {
		if errors.Is(err, entity.ErrInventoryFull) {
			g.message("Your inventory is full.")
			return
		}
		g.message(err.Error())
		return
	}
	level.RemoveEntity(item)
	g.message(fmt.Sprintf("You pick up %s.", item.Name))
}

func (g *Game) takeStairs(ctx context.Context, down bool) {
	level := g.world.Level()
	p := g.world.Player
	here := world.Point{X: p.X, Y: p.Y}

	switch {
	case down && here == level.DownStairs:
		next, err := g.world.Descend(ctx)
		if err != nil {
			logger.Error("descend failed", "error", err)
			g.message(err.Error())
			return
		}
		g.message(fmt.Sprintf("You descend to floor %d.", next.Floor))

	case !down && here == level.UpStairs:
		prev, err := g.world.Ascend(ctx)
		if err != nil {
			logger.Error("ascend failed", "error", err)
			g.message(err.Error())
			return
		}
		if prev == nil {
			g.state = StateSurfaced
			g.running = false
			g.message("You climb out of the dungeon.")
			return
		}
		g.message(fmt.Sprintf("You climb to floor %d.", prev.Floor))

	case down:
		g.message("There are no stairs down here.")
	default:
		g.message("There are no stairs up here.")
	}
}

func (g *Game) message(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
