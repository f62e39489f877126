package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/vaultdelve/internal/entity"
	"github.com/samdwyer/vaultdelve/internal/gamedata"
	"github.com/samdwyer/vaultdelve/internal/logger"
	"github.com/samdwyer/vaultdelve/internal/telemetry"
)

// Generator builds one level. Each stage reads what the previous stage left
// on the shared level: layout, then doors, then population, then keys.
type Generator struct {
	params   Params
	floor    int
	registry *gamedata.Registry
	rng      *rand.Rand
	spawner  *entity.Spawner
	level    *Level
}

// NewGenerator creates a generator for the given floor. All randomness is
// drawn from rng.
func NewGenerator(params Params, floor int, registry *gamedata.Registry, rng *rand.Rand) *Generator {
	return &Generator{
		params:   params,
		floor:    floor,
		registry: registry,
		rng:      rng,
		spawner:  entity.NewSpawner(registry, rng, floor),
	}
}

// Generate validates the parameters and builds a fresh level. The player,
// when given, is placed at the entry room's center.
func (g *Generator) Generate(ctx context.Context, player *entity.Entity) (*Level, error) {
	if err := g.params.Validate(); err != nil {
		return nil, err
	}
	if g.registry == nil {
		return nil, fmt.Errorf("%w: no template registry", ErrInvalidParams)
	}

	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "level.generate")
	defer span.End()

	startTime := time.Now()
	g.level = NewLevel(g.floor, g.params.Width, g.params.Height)

	g.layout(ctx, player)
	keys := g.discoverDoors(ctx)
	if err := g.populate(ctx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("populate floor %d: %w", g.floor, err)
	}
	g.distributeKeys(ctx, keys)

	locked := 0
	for _, r := range g.level.Rooms {
		if r.IsLocked() {
			locked++
		}
	}

	span.SetAttributes(
		attribute.Int("level.floor", g.floor),
		attribute.Int("level.width", g.level.Width),
		attribute.Int("level.height", g.level.Height),
		attribute.Int("level.rooms", len(g.level.Rooms)),
		attribute.Int("level.doors", len(g.level.Doors)),
		attribute.Int("level.locked_rooms", locked),
		attribute.Int("level.keys", len(keys)),
		attribute.Int("level.entities", len(g.level.Entities())),
		attribute.Int64("level.generation_ms", time.Since(startTime).Milliseconds()),
	)
	logger.Debug("level generated",
		"floor", g.floor,
		"rooms", len(g.level.Rooms),
		"doors", len(g.level.Doors),
		"locked", locked,
		"entities", len(g.level.Entities()),
	)

	return g.level, nil
}

// Generate builds a level for floor with a one-off generator.
func Generate(ctx context.Context, params Params, floor int, registry *gamedata.Registry, rng *rand.Rand, player *entity.Entity) (*Level, error) {
	return NewGenerator(params, floor, registry, rng).Generate(ctx, player)
}
