package world

import (
	"github.com/samdwyer/vaultdelve/internal/entity"
	"github.com/samdwyer/vaultdelve/internal/gamedata"
)

// Snapshot is a serialisable view of a level.
type Snapshot struct {
	Floor      int              `yaml:"floor" json:"floor"`
	Width      int              `yaml:"width" json:"width"`
	Height     int              `yaml:"height" json:"height"`
	Rows       []string         `yaml:"rows" json:"rows"`
	UpStairs   Point            `yaml:"up_stairs" json:"upStairs"`
	DownStairs Point            `yaml:"down_stairs" json:"downStairs"`
	Rooms      []RoomSnapshot   `yaml:"rooms" json:"rooms"`
	Doors      []DoorSnapshot   `yaml:"doors" json:"doors"`
	Entities   []EntitySnapshot `yaml:"entities" json:"entities"`
}

// RoomSnapshot is the serialisable form of a Room.
type RoomSnapshot struct {
	ID   string `yaml:"id" json:"id"`
	Type string `yaml:"type" json:"type"`
	Rect Rect   `yaml:"rect" json:"rect"`
}

// DoorSnapshot is the serialisable form of a Door.
type DoorSnapshot struct {
	X      int    `yaml:"x" json:"x"`
	Y      int    `yaml:"y" json:"y"`
	Open   bool   `yaml:"open" json:"open"`
	Locked bool   `yaml:"locked" json:"locked"`
	RoomID string `yaml:"room_id" json:"roomId"`
}

// EntitySnapshot is the serialisable form of an entity on the map.
type EntitySnapshot struct {
	ID       string   `yaml:"id" json:"id"`
	Template string   `yaml:"template" json:"template"`
	Name     string   `yaml:"name" json:"name"`
	Kind     string   `yaml:"kind" json:"kind"`
	Glyph    string   `yaml:"glyph" json:"glyph"`
	Color    string   `yaml:"color" json:"color"`
	Alive    bool     `yaml:"alive,omitempty" json:"alive,omitempty"`
	X        int      `yaml:"x" json:"x"`
	Y        int      `yaml:"y" json:"y"`
	Quantity int      `yaml:"quantity,omitempty" json:"quantity,omitempty"`
	KeyID    string   `yaml:"key_id,omitempty" json:"keyId,omitempty"`
	Carrying []string `yaml:"carrying,omitempty" json:"carrying,omitempty"`
}

// Snapshot captures the level's current state. Doors are listed in
// row-major order.
func (l *Level) Snapshot() Snapshot {
	s := Snapshot{
		Floor:      l.Floor,
		Width:      l.Width,
		Height:     l.Height,
		Rows:       l.Rows(),
		UpStairs:   l.UpStairs,
		DownStairs: l.DownStairs,
	}

	for _, r := range l.Rooms {
		s.Rooms = append(s.Rooms, RoomSnapshot{ID: r.ID, Type: r.Type.String(), Rect: r.Rect})
	}

	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if d := l.DoorAt(x, y); d != nil {
				s.Doors = append(s.Doors, DoorSnapshot{X: d.X, Y: d.Y, Open: d.Open, Locked: d.Locked, RoomID: d.RoomID})
			}
		}
	}

	for _, e := range l.entities {
		s.Entities = append(s.Entities, snapshotEntity(e))
	}

	return s
}

func snapshotEntity(e *entity.Entity) EntitySnapshot {
	es := EntitySnapshot{
		ID:       e.ID,
		Template: e.TemplateID,
		Name:     e.Name,
		Kind:     e.Kind.String(),
		Glyph:    string(e.Glyph),
		Color:    gamedata.HexString(e.Color),
		Alive:    e.IsActor() && e.IsAlive(),
		X:        e.X,
		Y:        e.Y,
		KeyID:    e.KeyID(),
	}
	if e.Quantity > 1 {
		es.Quantity = e.Quantity
	}
	if e.Inventory != nil {
		for _, item := range e.Inventory.Items {
			name := item.TemplateID
			if item.IsKey() {
				name += ":" + item.KeyID()
			}
			es.Carrying = append(es.Carrying, name)
		}
	}
	return es
}

// Rows renders the tile grid as one string per row.
func (l *Level) Rows() []string {
	rows := make([]string, l.Height)
	buf := make([]rune, l.Width)
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			buf[x] = l.Tiles[y][x].Rune()
		}
		rows[y] = string(buf)
	}
	return rows
}
