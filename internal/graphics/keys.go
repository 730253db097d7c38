package graphics

import (
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"

	"corebell/internal/input"
)

// keyNames maps raylib keys to the names used by input.Chord.
var keyNames = func() map[int32]string {
	m := map[int32]string{
		rl.KeyDelete:    "delete",
		rl.KeyBackspace: "backspace",
		rl.KeyEscape:    "escape",
		rl.KeyEnter:     "enter",
		rl.KeyTab:       "tab",
		rl.KeySpace:     "space",
		rl.KeyHome:      "home",
		rl.KeyEnd:       "end",
	}
	for k := int32(rl.KeyA); k <= rl.KeyZ; k++ {
		m[k] = string(rune('a' + k - rl.KeyA))
	}
	for k := int32(rl.KeyZero); k <= rl.KeyNine; k++ {
		m[k] = string(rune('0' + k - rl.KeyZero))
	}
	for k := int32(rl.KeyF1); k <= rl.KeyF12; k++ {
		m[k] = "f" + strconv.Itoa(int(k-rl.KeyF1)+1)
	}
	return m
}()

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}

// pressedChords drains raylib's key queue into chords for this frame.
func pressedChords() []input.Chord {
	var out []input.Chord
	ctrl, shift := ctrlDown(), shiftDown()
	for k := rl.GetKeyPressed(); k != 0; k = rl.GetKeyPressed() {
		if name, ok := keyNames[k]; ok {
			out = append(out, input.Chord{Key: name, Ctrl: ctrl, Shift: shift})
		}
	}
	return out
}
