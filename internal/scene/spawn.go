package scene

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxSpawn caps a single bulk spawn.
const MaxSpawn = 500

// Pattern arranges bulk-spawned objects.
type Pattern int

const (
	PatternGrid Pattern = iota
	PatternLine
	PatternRandom
)

// ParsePattern accepts grid, line, random (or spread). Empty means grid.
func ParsePattern(s string) (Pattern, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "grid":
		return PatternGrid, nil
	case "line":
		return PatternLine, nil
	case "random", "spread":
		return PatternRandom, nil
	}
	return 0, fmt.Errorf("unknown pattern %q (use grid, line or random)", s)
}

// Layout returns count positions around origin. Grid fills rows of
// ceil(sqrt(count)) columns on XZ; line runs along +X; random scatters on XZ
// within a square that grows with count.
func Layout(p Pattern, count int, origin mgl32.Vec3, spacing float32, rnd *rand.Rand) []mgl32.Vec3 {
	if count <= 0 {
		return nil
	}
	if spacing <= 0 {
		spacing = 2
	}
	out := make([]mgl32.Vec3, 0, count)
	cols := int(math32.Ceil(math32.Sqrt(float32(count))))
	half := spacing * float32(count) / 4
	if half < 5 {
		half = 5
	}
	for i := 0; i < count; i++ {
		var pos mgl32.Vec3
		switch p {
		case PatternLine:
			pos = mgl32.Vec3{origin[0] + float32(i)*spacing, origin[1], origin[2]}
		case PatternRandom:
			pos = mgl32.Vec3{
				origin[0] + (rnd.Float32()*2-1)*half,
				origin[1],
				origin[2] + (rnd.Float32()*2-1)*half,
			}
		default:
			row, col := i/cols, i%cols
			pos = mgl32.Vec3{origin[0] + float32(col)*spacing, origin[1], origin[2] + float32(row)*spacing}
		}
		out = append(out, pos)
	}
	return out
}

// SpawnRequest describes a bulk spawn. A zero Kinds slice means every kind
// chosen at random. When ScaleMin and ScaleMax are both set each object gets a
// random size between them; otherwise Options.Size applies.
type SpawnRequest struct {
	Kinds    []Kind
	Count    int
	Pattern  Pattern
	Origin   mgl32.Vec3
	Spacing  float32
	Options  Options
	ScaleMin *mgl32.Vec3
	ScaleMax *mgl32.Vec3
}

// Spawn adds objects per req without touching the selection. Count is clamped
// to MaxSpawn. Returns the ids created before any error.
func (e *Editor) Spawn(req SpawnRequest, rnd *rand.Rand) ([]ID, error) {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}
	count := req.Count
	if count < 1 {
		count = 1
	}
	if count > MaxSpawn {
		count = MaxSpawn
	}
	kinds := req.Kinds
	if len(kinds) == 0 {
		kinds = Kinds()
	}
	ids := make([]ID, 0, count)
	for _, pos := range Layout(req.Pattern, count, req.Origin, req.Spacing, rnd) {
		o := req.Options.clone()
		p := pos
		o.Position = &p
		if req.ScaleMin != nil && req.ScaleMax != nil {
			var s mgl32.Vec3
			for i := 0; i < 3; i++ {
				s[i] = req.ScaleMin[i] + rnd.Float32()*(req.ScaleMax[i]-req.ScaleMin[i])
			}
			// columns rest on the spawn plane
			o.Position[1] += s[1] / 2
			o.Size = &s
		}
		id, err := e.Registry.Add(kinds[rnd.Intn(len(kinds))], o)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	e.log.Info("spawned %d objects", len(ids))
	return ids, nil
}
