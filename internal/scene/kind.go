package scene

import (
	"fmt"
	"strings"
)

// Kind is the primitive shape of a scene object.
type Kind int

const (
	KindCube Kind = iota
	KindSphere
	KindCylinder
	KindCone
	KindTorus
	KindPlane
	KindIcosahedron
	KindDodecahedron
	KindTetrahedron
	kindCount
)

var kindNames = [kindCount]string{
	"cube",
	"sphere",
	"cylinder",
	"cone",
	"torus",
	"plane",
	"icosahedron",
	"dodecahedron",
	"tetrahedron",
}

// Kinds returns every recognized kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// KindNames returns the type tags of every recognized kind (e.g. for prompts and help text).
func KindNames() []string {
	out := make([]string, 0, kindCount)
	for _, n := range kindNames {
		out = append(out, n)
	}
	return out
}

// Valid reports whether k is one of the recognized kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a type tag ("cube", "Sphere", ...) to a Kind.
// Unrecognized tags return an error wrapping ErrUnknownKind.
func ParseKind(tag string) (Kind, error) {
	t := strings.ToLower(strings.TrimSpace(tag))
	for i, n := range kindNames {
		if n == t {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, tag)
}

// MarshalText implements encoding.TextMarshaler so kinds serialize as their tag.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
