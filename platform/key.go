package platform

import "fmt"

// KeyCode identifies a physical key
// Printable ASCII keys use their lowercase character value, so KeyCode('a')
// is the A key; named keys start above the ASCII range
type KeyCode uint16

const KeyNone KeyCode = 0

const KeySpace KeyCode = ' '

// Named keys
const (
	KeyEscape KeyCode = 256 + iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

var keyNames = map[KeyCode]string{
	KeyNone:      "none",
	KeySpace:     "space",
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdn",
}

// KeyForRune returns the key that types r, KeyNone outside printable ASCII
func KeyForRune(r rune) KeyCode {
	if r < 0x20 || r > 0x7e {
		return KeyNone
	}
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return KeyCode(r)
}

// String returns human-readable key name
func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k > 0x20 && k < 0x7f {
		return string(rune(k))
	}
	return fmt.Sprintf("key(%d)", uint16(k))
}

// TextRune maps r to the character delivered to OnText
// Anything outside printable ASCII becomes '?'
func TextRune(r rune) rune {
	if r < 0x20 || r > 0x7e {
		return '?'
	}
	return r
}
