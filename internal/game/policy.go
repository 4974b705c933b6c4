package game

// CommandKind identifies what a policy asks the ship to do.
type CommandKind uint8

const (
	CommandIdle CommandKind = iota
	CommandMove
	CommandShoot
)

// String returns the string representation of a command kind.
func (k CommandKind) String() string {
	switch k {
	case CommandIdle:
		return "idle"
	case CommandMove:
		return "move"
	case CommandShoot:
		return "shoot"
	default:
		return "unknown"
	}
}

// Command is one policy decision.
type Command struct {
	Kind   CommandKind
	Column int // Used by CommandMove only
}

// Idle returns the do-nothing command.
func Idle() Command { return Command{Kind: CommandIdle} }

// MoveTo returns a command sending the ship to a column.
func MoveTo(column int) Command { return Command{Kind: CommandMove, Column: column} }

// Shoot returns a fire command.
func Shoot() Command { return Command{Kind: CommandShoot} }

// TargetInfo describes a remaining enemy.
type TargetInfo struct {
	ID     int
	Col    int
	Row    int
	Health int
}

// ProjectileInfo describes a bullet in flight.
type ProjectileInfo struct {
	Col int
	Row float64
}

// View is the read-only surface a policy decides from.
type View interface {
	Columns() int
	ShipColumn() float64
	ShipRow() int
	CanAct() bool
	IsComplete() bool
	Targets() []TargetInfo
	Projectiles() []ProjectileInfo
}

// Policy chooses the ship's next command. Decide is only called when the
// state can act and must not retain the view.
type Policy interface {
	Decide(v View) Command
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(v View) Command

// Decide calls f(v).
func (f PolicyFunc) Decide(v View) Command {
	return f(v)
}

// Columns returns the grid width.
func (s *State) Columns() int {
	return s.columns
}

// ShipColumn returns the ship's current, possibly fractional, column.
func (s *State) ShipColumn() float64 {
	return s.ship.X
}

// ShipRow returns the row the ship flies in.
func (s *State) ShipRow() int {
	return s.params.ShipRow
}

// Targets returns the remaining enemies in collection order.
func (s *State) Targets() []TargetInfo {
	out := make([]TargetInfo, len(s.enemies))
	for i, e := range s.enemies {
		out[i] = TargetInfo{ID: e.ID, Col: e.Col, Row: e.Row, Health: e.Health}
	}
	return out
}

// Projectiles returns the bullets in flight.
func (s *State) Projectiles() []ProjectileInfo {
	out := make([]ProjectileInfo, len(s.bullets))
	for i, b := range s.bullets {
		out[i] = ProjectileInfo{Col: b.Col, Row: b.Row}
	}
	return out
}

var _ View = (*State)(nil)
