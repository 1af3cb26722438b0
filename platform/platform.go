// Package platform adapts a terminal, an audio device and a clock to the game
// core. The core only sees the Handler, Host and Canvas contracts
package platform

// Handler receives platform callbacks
// Every method except MusicCallback runs on the simulation goroutine, input
// in the order the terminal reported it
type Handler interface {
	// OnSetup runs once after the screen is initialized, before the first frame
	OnSetup()

	// OnUpdate runs once per refresh with the canvas size in cells and the
	// platform clock in seconds
	OnUpdate(width, height int, seconds float64)

	OnKey(code KeyCode, pressed bool)
	OnText(r rune)
	OnMouseButton(index int, pressed bool)
	OnMouseMove(x, y int)
	OnMouseWheel(dx, dy float64)

	// MusicCallback runs on the audio goroutine and overwrites out with the
	// next frames of music before one-shots are mixed on top
	MusicCallback(out []float32, frames int)
}

// Host is what the core may call back into
type Host interface {
	// Error reports an unrecoverable failure; it does not return
	Error(msg string)
}

// Canvas is the drawing surface handed to the core
type Canvas interface {
	Size() (width, height int)
	Clear()
	Plot(x, y int, r rune, c Color)
	Print(x, y int, s string, c Color)
}

// Color is a small palette independent of the terminal backend
type Color uint8

const (
	ColorDefault Color = iota
	ColorPink
	ColorGold
	ColorBrown
	ColorGreen
	ColorWhite
	ColorRed
	ColorGray
)
