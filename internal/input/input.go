// Package input maps key chords to editor actions. It has no window
// dependency; the graphics loop turns key events into Chords.
package input

import (
	"fmt"
	"sort"
	"strings"

	"corebell/internal/scene"
)

// Action is something a key press asks the editor to do.
type Action int

const (
	ActionNone Action = iota
	ActionTranslate
	ActionRotate
	ActionScale
	ActionDelete
	ActionDeselect
	ActionSave
	ActionOpen
	ActionTerminal
	ActionSimulate
)

var actionNames = map[Action]string{
	ActionTranslate: "translate",
	ActionRotate:    "rotate",
	ActionScale:     "scale",
	ActionDelete:    "delete",
	ActionDeselect:  "deselect",
	ActionSave:      "save",
	ActionOpen:      "open",
	ActionTerminal:  "terminal",
	ActionSimulate:  "simulate",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "none"
}

// Chord is a key with modifiers. Key is a lower-case name such as "t",
// "delete" or "escape".
type Chord struct {
	Key   string
	Ctrl  bool
	Shift bool
}

func (c Chord) String() string {
	var b strings.Builder
	if c.Ctrl {
		b.WriteString("ctrl+")
	}
	if c.Shift {
		b.WriteString("shift+")
	}
	b.WriteString(c.Key)
	return b.String()
}

// ParseChord parses "ctrl+s", "shift+delete" or "t". "cmd" is an alias for ctrl.
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	var c Chord
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == len(parts)-1 {
			c.Key = p
			break
		}
		switch p {
		case "ctrl", "control", "cmd", "super":
			c.Ctrl = true
		case "shift":
			c.Shift = true
		default:
			return Chord{}, fmt.Errorf("unknown modifier %q in %q", p, s)
		}
	}
	if c.Key == "" {
		return Chord{}, fmt.Errorf("missing key in %q", s)
	}
	return c, nil
}

// Bindings maps chords to actions.
type Bindings map[Chord]Action

// DefaultBindings returns t/r/s for modes, Delete and Backspace to remove,
// Escape for the terminal, Ctrl+S to save, Ctrl+O to open and P to toggle the simulation.
func DefaultBindings() Bindings {
	return Bindings{
		{Key: "t"}:              ActionTranslate,
		{Key: "r"}:              ActionRotate,
		{Key: "s"}:              ActionScale,
		{Key: "delete"}:         ActionDelete,
		{Key: "backspace"}:      ActionDelete,
		{Key: "escape"}:         ActionTerminal,
		{Key: "s", Ctrl: true}:  ActionSave,
		{Key: "o", Ctrl: true}:  ActionOpen,
		{Key: "p"}:              ActionSimulate,
		{Key: "d", Shift: true}: ActionDeselect,
	}
}

// Lookup returns the action bound to c, or ActionNone.
func (b Bindings) Lookup(c Chord) Action {
	return b[c]
}

// Bind parses chord and binds it to the named action. An action of "none" unbinds.
func (b Bindings) Bind(chord, action string) error {
	c, err := ParseChord(chord)
	if err != nil {
		return err
	}
	if action == "none" {
		delete(b, c)
		return nil
	}
	for a, name := range actionNames {
		if name == action {
			b[c] = a
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", action)
}

// Keys returns the distinct key names used by b, sorted. The graphics loop polls these.
func (b Bindings) Keys() []string {
	seen := make(map[string]bool)
	var out []string
	for c := range b {
		if !seen[c.Key] {
			seen[c.Key] = true
			out = append(out, c.Key)
		}
	}
	sort.Strings(out)
	return out
}

// Hooks are the application-level handlers for actions the editor cannot do itself.
type Hooks struct {
	Save     func()
	Open     func()
	Terminal func()
}

// Dispatch performs a on ed. It reports whether a was handled.
func Dispatch(ed *scene.Editor, a Action, h Hooks) bool {
	switch a {
	case ActionTranslate:
		ed.SetMode(scene.ModeTranslate)
	case ActionRotate:
		ed.SetMode(scene.ModeRotate)
	case ActionScale:
		ed.SetMode(scene.ModeScale)
	case ActionDelete:
		ed.RemoveSelected()
	case ActionDeselect:
		ed.Selection.Deselect()
	case ActionSimulate:
		ed.SetSimulate(!ed.Simulating())
	case ActionSave:
		return call(h.Save)
	case ActionOpen:
		return call(h.Open)
	case ActionTerminal:
		return call(h.Terminal)
	default:
		return false
	}
	return true
}

func call(fn func()) bool {
	if fn == nil {
		return false
	}
	fn()
	return true
}
