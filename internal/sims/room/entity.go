package room

// Condition is the cleanliness state of a tile.
type Condition uint8

const (
	Clean Condition = iota
	BeingCleaned
	Dirty
)

func (c Condition) String() string {
	switch c {
	case Clean:
		return "clean"
	case BeingCleaned:
		return "being-cleaned"
	case Dirty:
		return "dirty"
	default:
		return "unknown"
	}
}

// Agent is either a *Tile or a *Cleaner. Consumers switch on the concrete type.
type Agent interface {
	agent()
}

// Tile is a stationary floor cell.
type Tile struct {
	ID        int
	Condition Condition
}

// Cleaner is a mobile agent. Target is set only while the targeted tile is
// BeingCleaned.
type Cleaner struct {
	ID     int
	Target *Tile
}

func (*Tile) agent()    {}
func (*Cleaner) agent() {}
