package ui

import (
	"strings"
	"testing"

	"github.com/samdwyer/vaultdelve/internal/world"
)

func testSnapshot() world.Snapshot {
	return world.Snapshot{
		Floor:  1,
		Width:  6,
		Height: 3,
		Rows: []string{
			"######",
			"#<..+#",
			"######",
		},
		Doors: []world.DoorSnapshot{{X: 4, Y: 1, Locked: true, RoomID: "1_2"}},
		Rooms: []world.RoomSnapshot{{ID: "1_1", Type: "normal", Rect: world.NewRect(0, 0, 5, 2)}},
		Entities: []world.EntitySnapshot{
			{Name: "Rock", Kind: "item", Glyph: "*", X: 3, Y: 1},
			{Name: "Rat", Kind: "actor", Glyph: "r", Color: "#7F3F00", Alive: true, X: 3, Y: 1, Carrying: []string{"key:1_2"}},
			{Name: "Player", Kind: "actor", Glyph: "@", Alive: true, X: 1, Y: 1},
		},
	}
}

func TestDumpPlain(t *testing.T) {
	got := Dump(testSnapshot(), false)
	want := "######\n#@.r+#\n######\n"
	if got != want {
		t.Errorf("Dump =\n%s\nwant\n%s", got, want)
	}
}

func TestDumpItemUnderActor(t *testing.T) {
	s := testSnapshot()
	// Reverse so the item comes after the actor on the same cell.
	s.Entities[0], s.Entities[1] = s.Entities[1], s.Entities[0]

	lines := strings.Split(Dump(s, false), "\n")
	if lines[1] != "#@.r+#" {
		t.Errorf("Row 1 = %q, want actor drawn over item", lines[1])
	}
}

func TestDumpColorKeepsGlyphs(t *testing.T) {
	got := Dump(testSnapshot(), true)
	for _, glyph := range []string{"@", "r", "+", "#"} {
		if !strings.Contains(got, glyph) {
			t.Errorf("Colored dump missing %q", glyph)
		}
	}
}

func TestSummary(t *testing.T) {
	got := Summary(testSnapshot())
	if !strings.Contains(got, "Floor 1: 6x3, 1 rooms, 1 doors, 3 entities") {
		t.Errorf("Summary header wrong:\n%s", got)
	}
	if !strings.Contains(got, "Rat at (3,1) carries key:1_2") {
		t.Errorf("Summary missing carrier line:\n%s", got)
	}
}
