package constant

import "time"

// Game Loop Timing
const (
	// FrameUpdateInterval is the refresh interval of the terminal adapter (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// SimulationStep is the fixed physics step (30 Hz)
	SimulationStep = time.Second / 30

	// MaxCatchUpSteps caps fixed steps run in one refresh; the excess is dropped
	MaxCatchUpSteps = 8

	// KeyRelease is how long a key counts as held after its last press report
	// Terminals report presses and repeats only, never releases
	KeyRelease = 120 * time.Millisecond

	// InputQueueSize bounds events buffered between polls
	InputQueueSize = 256
)

// Roster Limits
const (
	RosterSize  = 32
	MinionCount = 6
)
