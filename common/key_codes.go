package common

import "strings"

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeySpace = 32 // Spacebar (ASCII)

	Key0 = 48 // 0 key (ASCII)
	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
	Key4 = 52 // 4 key (ASCII)
	Key5 = 53 // 5 key (ASCII)
	Key6 = 54 // 6 key (ASCII)
	Key7 = 55 // 7 key (ASCII)
	Key8 = 56 // 8 key (ASCII)
	Key9 = 57 // 9 key (ASCII)
)

// Letter keys share their upper-case ASCII codes.
const (
	KeyA = 65
	KeyB = 66
	KeyC = 67
	KeyD = 68
	KeyE = 69
	KeyF = 70
	KeyG = 71
	KeyH = 72
	KeyI = 73
	KeyJ = 74
	KeyK = 75
	KeyL = 76
	KeyM = 77
	KeyN = 78
	KeyO = 79
	KeyP = 80
	KeyQ = 81
	KeyR = 82
	KeyS = 83
	KeyT = 84
	KeyU = 85
	KeyV = 86
	KeyW = 87
	KeyX = 88
	KeyY = 89
	KeyZ = 90
)

// Non-printable keys (GLFW)
const (
	KeyEsc       = 256
	KeyEnter     = 257
	KeyTab       = 258
	KeyBackspace = 259
	KeyRight     = 262
	KeyLeft      = 263
	KeyDown      = 264
	KeyUp        = 265
	KeyKPEnter   = 335

	KeyKP1 = 321
	KeyKP2 = 322
	KeyKP3 = 323
	KeyKP4 = 324
	KeyKP5 = 325
	KeyKP6 = 326
)

// keyNames maps the lower-cased names accepted in configuration files to key codes.
var keyNames = map[string]uint32{
	"space":     KeySpace,
	"0":         Key0,
	"1":         Key1,
	"2":         Key2,
	"3":         Key3,
	"4":         Key4,
	"5":         Key5,
	"6":         Key6,
	"7":         Key7,
	"8":         Key8,
	"9":         Key9,
	"esc":       KeyEsc,
	"escape":    KeyEsc,
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"tab":       KeyTab,
	"backspace": KeyBackspace,
	"right":     KeyRight,
	"left":      KeyLeft,
	"down":      KeyDown,
	"up":        KeyUp,
	"kpenter":   KeyKPEnter,
	"kp1":       KeyKP1,
	"kp2":       KeyKP2,
	"kp3":       KeyKP3,
	"kp4":       KeyKP4,
	"kp5":       KeyKP5,
	"kp6":       KeyKP6,
}

// KeyByName resolves a key name such as "Right", "Space" or "1" to its virtual key code.
// Lookup is case-insensitive and ignores surrounding whitespace.
//
// Parameters:
//   - name: the key name
//
// Returns:
//   - uint32: the key code, or 0 when the name is unknown
//   - bool: true if the name was recognised
func KeyByName(name string) (uint32, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if len(key) == 1 && key[0] >= 'a' && key[0] <= 'z' {
		return uint32(key[0]-'a') + KeyA, true
	}
	code, ok := keyNames[key]
	return code, ok
}
