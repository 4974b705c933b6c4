package game

// Params holds the tunable rules of a run. The zero value is not usable;
// start from DefaultParams.
type Params struct {
	ShipSpeed       float64 // Columns travelled per step
	BulletSpeed     float64 // Rows travelled per step
	ShootCooldown   int     // Steps between two shots
	ShipStartColumn int     // Clamped to the last grid column
	ShipRow         int     // Row the ship flies in, below the grid
	StarCount       int     // Background particles
	BulletExitRow   float64 // Bullets above this row leave the field
}

// DefaultParams returns the standard rules.
// Speeds are powers of two so positions stay exact in binary floating point.
func DefaultParams() Params {
	return Params{
		ShipSpeed:       0.5,
		BulletSpeed:     0.5,
		ShootCooldown:   4,
		ShipStartColumn: 25,
		ShipRow:         Days + 3,
		StarCount:       100,
		BulletExitRow:   -10,
	}
}

// Validate checks that the rules describe a playable run.
func (p Params) Validate() error {
	if p.ShipSpeed <= 0 {
		return invalidInput("BAD_PARAMS", "ship speed must be positive, got %v", p.ShipSpeed)
	}
	if p.BulletSpeed <= 0 {
		return invalidInput("BAD_PARAMS", "bullet speed must be positive, got %v", p.BulletSpeed)
	}
	if p.ShootCooldown < 0 {
		return invalidInput("BAD_PARAMS", "shoot cooldown must not be negative, got %d", p.ShootCooldown)
	}
	if p.ShipStartColumn < 0 {
		return invalidInput("BAD_PARAMS", "ship start column must not be negative, got %d", p.ShipStartColumn)
	}
	if p.ShipRow < Days {
		return invalidInput("BAD_PARAMS", "ship row must be below the grid (>= %d), got %d", Days, p.ShipRow)
	}
	if p.StarCount < 0 {
		return invalidInput("BAD_PARAMS", "star count must not be negative, got %d", p.StarCount)
	}
	if p.BulletExitRow >= 0 {
		return invalidInput("BAD_PARAMS", "bullet exit row must be above the grid (< 0), got %v", p.BulletExitRow)
	}
	return nil
}
