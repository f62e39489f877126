package game

import (
	"context"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/vaultdelve/internal/entity"
	"github.com/samdwyer/vaultdelve/internal/gamedata"
	"github.com/samdwyer/vaultdelve/internal/logger"
	"github.com/samdwyer/vaultdelve/internal/telemetry"
	"github.com/samdwyer/vaultdelve/internal/world"
)

// floorSeedStride separates the RNG streams of consecutive floors.
const floorSeedStride = 1000

// LevelSaver persists generated floors.
type LevelSaver interface {
	SaveLevel(ctx context.Context, seed int64, snap world.Snapshot) error
}

// World is the stack of floors visited in one run. Each floor is generated
// once from its own RNG stream and cached, so revisiting a floor returns it
// as it was left. A World is not safe for concurrent use.
type World struct {
	Seed         int64
	Params       world.Params
	Floors       map[int]*world.Level
	CurrentFloor int
	Player       *entity.Entity

	registry *gamedata.Registry
	saver    LevelSaver
}

// NewWorld creates a run above floor 1. Call Descend to enter the dungeon.
func NewWorld(seed int64, params world.Params, registry *gamedata.Registry) *World {
	rng := rand.New(rand.NewSource(seed))
	return &World{
		Seed:     seed,
		Params:   params,
		Floors:   make(map[int]*world.Level),
		Player:   entity.NewSpawner(registry, rng, 0).Player(),
		registry: registry,
	}
}

// SetSaver archives every floor as it is generated.
func (w *World) SetSaver(s LevelSaver) {
	w.saver = s
}

// FloorRand returns the RNG stream used to generate a floor.
func FloorRand(seed int64, floor int) *rand.Rand {
	return rand.New(rand.NewSource(seed + int64(floor)*floorSeedStride))
}

// Level returns the current floor, or nil outside the dungeon.
func (w *World) Level() *world.Level {
	return w.Floors[w.CurrentFloor]
}

// InDungeon reports whether the player is on a floor.
func (w *World) InDungeon() bool {
	return w.CurrentFloor > 0
}

// Descend moves the player one floor down, generating the floor on first
// visit. The player arrives on the up-stairs.
func (w *World) Descend(ctx context.Context) (*world.Level, error) {
	ctx, span := telemetry.Tracer("game").Start(ctx, "world.descend")
	defer span.End()

	target := w.CurrentFloor + 1
	span.SetAttributes(attribute.Int("world.from", w.CurrentFloor), attribute.Int("world.to", target))

	level, cached := w.Floors[target]
	if !cached {
		w.leave()
		var err error
		level, err = w.generate(ctx, target)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		w.CurrentFloor = target
		span.SetAttributes(attribute.Bool("world.generated", true))
		logger.Info("descended", "floor", target, "generated", true)
		return level, nil
	}

	w.leave()
	w.arrive(level, level.UpStairs)
	w.CurrentFloor = target
	logger.Info("descended", "floor", target, "generated", false)
	return level, nil
}

// Ascend moves the player one floor up, arriving on that floor's
// down-stairs. Ascending from floor 1 leaves the dungeon: the run is
// exited and a nil level is returned.
func (w *World) Ascend(ctx context.Context) (*world.Level, error) {
	ctx, span := telemetry.Tracer("game").Start(ctx, "world.ascend")
	defer span.End()

	target := w.CurrentFloor - 1
	span.SetAttributes(attribute.Int("world.from", w.CurrentFloor), attribute.Int("world.to", target))

	if target < 1 {
		w.Exit()
		logger.Info("left the dungeon")
		return nil, nil
	}

	w.leave()
	level, cached := w.Floors[target]
	if !cached {
		var err error
		level, err = w.generate(ctx, target)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
	}
	w.arrive(level, level.DownStairs)
	w.CurrentFloor = target

	logger.Info("ascended", "floor", target)
	return level, nil
}

// Exit drops every cached floor and takes the player out of the dungeon.
func (w *World) Exit() {
	w.leave()
	clear(w.Floors)
	w.CurrentFloor = 0
}

// generate builds and caches a floor. The player is placed by generation
// at the up-stairs.
func (w *World) generate(ctx context.Context, floor int) (*world.Level, error) {
	level, err := world.Generate(ctx, w.Params, floor, w.registry, FloorRand(w.Seed, floor), w.Player)
	if err != nil {
		return nil, fmt.Errorf("generate floor %d: %w", floor, err)
	}
	w.Floors[floor] = level

	if w.saver != nil {
		if err := w.saver.SaveLevel(ctx, w.Seed, level.Snapshot()); err != nil {
			logger.Warning("failed to archive floor", "floor", floor, "error", err)
		}
	}
	return level, nil
}

func (w *World) leave() {
	if level := w.Level(); level != nil {
		level.RemoveEntity(w.Player)
	}
}

// arrive places the player on level at p, or on the nearest free walkable
// neighbour when something already blocks p.
func (w *World) arrive(level *world.Level, p world.Point) {
	spot := p
	if level.BlockingEntityAt(p.X, p.Y) != nil {
	search:
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				x, y := p.X+dx, p.Y+dy
				if level.IsPassable(x, y) && level.BlockingEntityAt(x, y) == nil {
					spot = world.Point{X: x, Y: y}
					break search
				}
			}
		}
	}
	w.Player.Place(spot.X, spot.Y)
	level.AddEntity(w.Player)
}
