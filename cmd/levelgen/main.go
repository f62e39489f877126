// Command levelgen generates dungeon floors without the terminal UI and
// prints them as text. It can archive what it generates and reprint
// archived floors.
//
// Usage:
//
//	levelgen -seed 42 -floors 3
//	levelgen -seed 42 -floors 5 -archive
//	levelgen -seed 42 -load 3
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/samdwyer/vaultdelve/internal/archive"
	"github.com/samdwyer/vaultdelve/internal/game"
	"github.com/samdwyer/vaultdelve/internal/gamedata"
	"github.com/samdwyer/vaultdelve/internal/logger"
	"github.com/samdwyer/vaultdelve/internal/ui"
	"github.com/samdwyer/vaultdelve/internal/world"
)

func main() {
	configPath := flag.String("config", "vaultdelve.yaml", "Path to config file")
	seed := flag.Int64("seed", 0, "Dungeon seed (overrides config)")
	floors := flag.Int("floors", 1, "Number of floors to generate")
	useArchive := flag.Bool("archive", false, "Save generated floors to the level archive")
	load := flag.Int("load", 0, "Print an archived floor instead of generating")
	list := flag.Bool("list", false, "List archived floors for the seed")
	colorMode := flag.String("color", "auto", "Color output: auto, always or never")
	output := flag.String("output", "", "Write to file instead of stdout")
	legend := flag.Bool("legend", false, "Print a glyph legend")
	flag.Parse()

	if err := run(options{
		configPath: *configPath,
		seed:       *seed,
		floors:     *floors,
		archive:    *useArchive,
		load:       *load,
		list:       *list,
		colorMode:  *colorMode,
		output:     *output,
		legend:     *legend,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	seed       int64
	floors     int
	archive    bool
	load       int
	list       bool
	colorMode  string
	output     string
	legend     bool
}

func run(opts options) error {
	cfg, err := game.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
	if opts.floors < 1 {
		return fmt.Errorf("floors must be at least 1, got %d", opts.floors)
	}

	if err := logger.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logger.Close()

	colorize, err := wantColor(opts.colorMode, opts.output, cfg.Dungeon.Width)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var store *archive.Store
	if opts.archive || opts.load > 0 || opts.list || cfg.Archive.Enabled {
		store, err = archive.Open(cfg.Archive.Config)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	var snaps []world.Snapshot
	switch {
	case opts.list:
		return listArchived(ctx, store, cfg.Seed)
	case opts.load > 0:
		snap, err := store.LoadLevel(ctx, cfg.Seed, opts.load)
		if err != nil {
			return fmt.Errorf("load seed %d floor %d: %w", cfg.Seed, opts.load, err)
		}
		snaps = append(snaps, snap)
	default:
		registry, err := gamedata.LoadRegistry()
		if err != nil {
			return err
		}
		w := game.NewWorld(cfg.Seed, cfg.Dungeon, registry)
		if store != nil {
			w.SetSaver(store)
		}
		for range opts.floors {
			level, err := w.Descend(ctx)
			if err != nil {
				return err
			}
			snaps = append(snaps, level.Snapshot())
		}
	}

	var b strings.Builder
	for _, snap := range snaps {
		fmt.Fprintf(&b, "Seed %d\n", cfg.Seed)
		b.WriteString(ui.Summary(snap))
		b.WriteString(ui.Dump(snap, colorize))
		b.WriteByte('\n')
	}
	if opts.legend {
		b.WriteString(ui.Legend())
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(b.String()), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
		logger.Always("levels written", "path", opts.output, "seed", cfg.Seed, "floors", len(snaps))
		return nil
	}

	fmt.Print(b.String())
	return nil
}

func listArchived(ctx context.Context, store *archive.Store, seed int64) error {
	summaries, err := store.ListLevels(ctx, seed)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Printf("No archived floors for seed %d\n", seed)
		return nil
	}
	for _, s := range summaries {
		fmt.Printf("seed %d floor %d: %d rooms, %d locked, %d entities\n", s.Seed, s.Floor, s.Rooms, s.Locked, s.Entities)
	}
	return nil
}

// wantColor resolves the color mode. Auto colors only a terminal stdout
// wide enough to hold a row.
func wantColor(mode, output string, rowWidth int) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		if output != "" {
			return false, nil
		}
		fd := int(os.Stdout.Fd())
		if !term.IsTerminal(fd) {
			return false, nil
		}
		width, _, err := term.GetSize(fd)
		if err != nil {
			return false, nil
		}
		return width >= rowWidth, nil
	default:
		return false, fmt.Errorf("unknown color mode %q", mode)
	}
}
