package world

import (
	"errors"
	"slices"

	"github.com/samdwyer/vaultdelve/internal/entity"
	"github.com/samdwyer/vaultdelve/internal/logger"
)

var (
	ErrNoDoor        = errors.New("no door there")
	ErrDoorLocked    = errors.New("door is locked")
	ErrNoMatchingKey = errors.New("no key for this door")
	ErrDoorBlocked   = errors.New("something is in the doorway")
)

// Door is a door placed on a room's wall ring. A locked door
// always has exactly one key on the floor whose key id is RoomID.
type Door struct {
	X, Y   int
	Open   bool
	Locked bool
	RoomID string
}

// Tile returns the tile that represents the door's current state.
func (d *Door) Tile() Tile {
	switch {
	case d.Locked:
		return TileLockedDoor
	case d.Open:
		return TileOpenDoor
	default:
		return TileClosedDoor
	}
}

func (l *Level) placeDoor(d *Door) {
	l.Doors[Point{d.X, d.Y}] = d
	l.SetTile(d.X, d.Y, d.Tile())
}

// OpenDoor opens the door at the position.
func (l *Level) OpenDoor(x, y int) error {
	d := l.DoorAt(x, y)
	if d == nil {
		return ErrNoDoor
	}
	if d.Locked {
		return ErrDoorLocked
	}
	d.Open = true
	l.SetTile(x, y, d.Tile())
	return nil
}

// CloseDoor closes the door at the position.
func (l *Level) CloseDoor(x, y int) error {
	d := l.DoorAt(x, y)
	if d == nil {
		return ErrNoDoor
	}
	if l.Occupied(x, y) {
		return ErrDoorBlocked
	}
	d.Open = false
	l.SetTile(x, y, d.Tile())
	return nil
}

// UnlockDoor unlocks the door at the position with a key from the holder's
// inventory. The key is consumed.
func (l *Level) UnlockDoor(x, y int, holder *entity.Entity) error {
	d := l.DoorAt(x, y)
	if d == nil {
		return ErrNoDoor
	}
	if !d.Locked {
		return nil
	}
	if holder.Inventory == nil {
		return ErrNoMatchingKey
	}
	key := holder.Inventory.KeyFor(d.RoomID)
	if key == nil {
		return ErrNoMatchingKey
	}

	holder.Inventory.Remove(key)
	if i := slices.Index(l.Keys, key); i >= 0 {
		l.Keys = slices.Delete(l.Keys, i, i+1)
	}
	d.Locked = false
	l.SetTile(x, y, d.Tile())

	logger.Debug("door unlocked", "room", d.RoomID, "x", x, "y", y)
	return nil
}
