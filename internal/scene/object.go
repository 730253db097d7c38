package scene

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	uuid "github.com/satori/go.uuid"
)

// ID identifies an object for the lifetime of one editing session. IDs are not persisted.
type ID uuid.UUID

// NilID is the zero ID; no registered object ever has it.
var NilID = ID(uuid.Nil)

func newID() ID {
	return ID(uuid.NewV4())
}

// ParseID parses the canonical UUID text form.
func ParseID(s string) (ID, error) {
	u, err := uuid.FromString(strings.TrimSpace(s))
	if err != nil {
		return NilID, err
	}
	return ID(u), nil
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Short is the first 8 hex digits, enough to tell objects apart in the terminal and inspector.
func (id ID) Short() string {
	return id.String()[:8]
}

// Color is an 8-bit RGB triple.
type Color [3]uint8

// RGB builds a Color from its channels.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b}
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

func (c Color) String() string {
	return c.Hex()
}

// ParseColor parses #RGB or #RRGGBB (the leading # is optional).
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	var out Color
	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			v, ok := hexNibble(hex[i])
			if !ok {
				return Color{}, fmt.Errorf("invalid color %q", s)
			}
			out[i] = v * 17
		}
	case 6:
		for i := 0; i < 3; i++ {
			hi, ok1 := hexNibble(hex[2*i])
			lo, ok2 := hexNibble(hex[2*i+1])
			if !ok1 || !ok2 {
				return Color{}, fmt.Errorf("invalid color %q", s)
			}
			out[i] = hi<<4 | lo
		}
	default:
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	return out, nil
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler (#rrggbb).
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Object is the geometric description of one scene object. An object has a
// physics body exactly when Mass > 0 and the registry has a physics
// collaborator.
//
// Rotation holds XYZ Euler angles in radians, composed as Rx*Ry*Rz acting on
// column vectors, so Z turns first. EulerToQuat defines that convention: the
// physics body gets its quaternion and the renderer draws its matrix.
type Object struct {
	ID       ID
	Kind     Kind
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Color    Color
	Mass     float32
}

// Quat returns the object's orientation as a quaternion.
func (o Object) Quat() mgl32.Quat {
	return EulerToQuat(o.Rotation)
}

// EulerToQuat converts XYZ Euler angles (radians) to a quaternion.
func EulerToQuat(e mgl32.Vec3) mgl32.Quat {
	return mgl32.AnglesToQuat(e[0], e[1], e[2], mgl32.XYZ)
}

// SameOrientation reports whether a and b describe the same rotation. q and -q
// are the same orientation.
func SameOrientation(a, b mgl32.Quat) bool {
	return math32.Abs(a.Normalize().Dot(b.Normalize())) > 1-1e-5
}

// QuatToEuler is the inverse of EulerToQuat. The Y angle is in [-π/2, π/2].
func QuatToEuler(q mgl32.Quat) mgl32.Vec3 {
	q = q.Normalize()
	w, x, y, z := q.W, q.V[0], q.V[1], q.V[2]
	sy := 2 * (x*z + w*y)
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}
	ex := math32.Atan2(-2*(y*z-w*x), 1-2*(x*x+y*y))
	ey := math32.Asin(sy)
	ez := math32.Atan2(-2*(x*y-w*z), 1-2*(y*y+z*z))
	return mgl32.Vec3{ex, ey, ez}
}
