package store

import "time"

// idGenerator hands out one strictly increasing sequence shared by every
// collection. Ids follow the wall clock in milliseconds but never repeat,
// even for several creations within the same millisecond.
type idGenerator struct {
	last int64
	now  func() time.Time
}

func (g *idGenerator) next() int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// observe moves the floor past ids already in use.
func (g *idGenerator) observe(max int64) {
	if max > g.last {
		g.last = max
	}
}
