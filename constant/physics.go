package constant

// World geometry in world units; the adapter scales to terminal cells
const (
	WorldWidth  = 320.0
	WorldHeight = 180.0
	GroundLevel = 170.0
)

// Integration tweakables, per fixed step
const (
	Gravity      = 0.9
	MaxFallSpeed = 14.0
	MoveForce    = 1.6
	MaxRunSpeed  = 6.0
	JumpForce    = -11.0
	GroundDrag   = 0.8 // fraction of vx kept per step while grounded and no input
)

// Object sizes
const (
	PlayerWidth  = 12.0
	PlayerHeight = 16.0
	KingWidth    = 24.0
	KingHeight   = 28.0
	MinionWidth  = 10.0
	MinionHeight = 10.0
)

// Minion behaviour
const (
	MinionHopForce = -7.0
	MinionRunForce = 2.5
	BumpImpulse    = 5.0
)
