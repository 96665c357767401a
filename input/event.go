package input

import "fmt"

// Key is a physical key code. Values match GLFW's key tokens so the window
// layer can convert with a plain integer cast.
type Key int

const KeyUnknown Key = -1

const (
	Key0 Key = 48 + iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

const (
	KeyA Key = 65 + iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
)

const (
	KeyEscape     Key = 256
	KeyLeftShift  Key = 340
	KeyRightShift Key = 344
)

func (k Key) String() string {
	switch {
	case k >= Key0 && k <= Key9:
		return string(rune('0' + k - Key0))
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + k - KeyA))
	case k == KeyEscape:
		return "Esc"
	case k == KeyLeftShift, k == KeyRightShift:
		return "Shift"
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Action is the key transition reported with an event.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// Mod is a modifier bitmask.
type Mod int

const (
	ModShift Mod = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Event is a single keyboard event as delivered by the window.
type Event struct {
	Key    Key
	Action Action
	Mods   Mod
}

// Shifted reports whether Shift was held.
func (e Event) Shifted() bool {
	return e.Mods&ModShift == ModShift
}
