package world

import "github.com/zyedidia/generic/mapset"

// Reachable flood-fills from start over walkable tiles and doors. Closed
// doors count as passable since they can be opened; a locked door is
// passable only when unlocked returns true for it. A nil unlocked treats
// every locked door as a wall.
func (l *Level) Reachable(start Point, unlocked func(*Door) bool) *mapset.Set[Point] {
	reachable := mapset.New[Point]()
	if !l.InBounds(start.X, start.Y) {
		return &reachable
	}

	queue := []Point{start}
	reachable.Put(start)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range directions {
			n := Point{current.X + d.X, current.Y + d.Y}
			if !l.InBounds(n.X, n.Y) || reachable.Has(n) {
				continue
			}
			if !l.canPass(n, unlocked) {
				continue
			}
			reachable.Put(n)
			queue = append(queue, n)
		}
	}

	return &reachable
}

func (l *Level) canPass(p Point, unlocked func(*Door) bool) bool {
	t := l.TileAt(p.X, p.Y)
	if t.Walkable {
		return true
	}
	if !t.IsDoor() {
		return false
	}
	d := l.DoorAt(p.X, p.Y)
	if d == nil || !d.Locked {
		return true
	}
	return unlocked != nil && unlocked(d)
}
