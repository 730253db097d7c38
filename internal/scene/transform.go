package scene

import (
	"fmt"
	"strings"
)

// Mode selects which manipulation the gizmo performs.
type Mode int

const (
	ModeTranslate Mode = iota
	ModeRotate
	ModeScale
)

func (m Mode) String() string {
	switch m {
	case ModeTranslate:
		return "translate"
	case ModeRotate:
		return "rotate"
	case ModeScale:
		return "scale"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts the mode name, its first letter, or "move" for translate.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "translate", "t", "move":
		return ModeTranslate, nil
	case "rotate", "r":
		return ModeRotate, nil
	case "scale", "s":
		return ModeScale, nil
	}
	return 0, fmt.Errorf("unknown transform mode %q (use translate, rotate or scale)", s)
}

// minScale keeps scale nudges from collapsing or mirroring an object.
const minScale = 0.01

// Transform is the translate/rotate/scale state machine. Every transition is
// allowed; there are no automatic ones.
type Transform struct {
	mode  Mode
	reg   *Registry
	sel   *Selection
	gizmo Gizmo
}

// NewTransform starts in ModeTranslate and keeps gizmo attached to sel.
// A nil gizmo is allowed.
func NewTransform(reg *Registry, sel *Selection, gizmo Gizmo) *Transform {
	if gizmo == nil {
		gizmo = noGizmo{}
	}
	t := &Transform{mode: ModeTranslate, reg: reg, sel: sel, gizmo: gizmo}
	sel.OnChange(t.reattach)
	return t
}

// Mode returns the current mode.
func (t *Transform) Mode() Mode {
	return t.mode
}

// SetMode switches mode. With a selection the gizmo is re-attached in the new
// mode; the selection itself never changes.
func (t *Transform) SetMode(m Mode) {
	t.mode = m
	t.reattach(t.sel.IDs())
}

func (t *Transform) reattach(ids []ID) {
	if len(ids) == 0 {
		t.gizmo.Detach()
		return
	}
	t.gizmo.Attach(ids, t.mode)
}

// Nudge applies the current mode along axis (0=X, 1=Y, 2=Z) to every selected
// object: translate and scale add amount, rotate adds amount radians.
// Returns how many objects changed.
func (t *Transform) Nudge(axis int, amount float32) int {
	if axis < 0 || axis > 2 {
		return 0
	}
	n := 0
	for _, id := range t.sel.IDs() {
		o, ok := t.reg.Get(id)
		if !ok {
			continue
		}
		switch t.mode {
		case ModeTranslate:
			o.Position[axis] += amount
		case ModeRotate:
			o.Rotation[axis] += amount
		case ModeScale:
			o.Scale[axis] += amount
			if o.Scale[axis] < minScale {
				o.Scale[axis] = minScale
			}
		}
		if t.reg.SetTransform(id, o.Position, o.Rotation, o.Scale) {
			n++
		}
	}
	return n
}
