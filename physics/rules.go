package physics

import "github.com/lixenwraith/pigpen/constant"

// Rules are the integration parameters applied by Object.Update, per fixed step
// Zero Ground or Width disables the corresponding clamp
type Rules struct {
	Gravity      float32
	MaxFallSpeed float32 // 0 = uncapped
	Ground       float32 // y of the floor surface, objects rest with y+height == Ground
	Width        float32 // world width, objects kept within [0, Width-width]
}

// DefaultRules are the game's tweakables
var DefaultRules = Rules{
	Gravity:      constant.Gravity,
	MaxFallSpeed: constant.MaxFallSpeed,
	Ground:       constant.GroundLevel,
	Width:        constant.WorldWidth,
}
