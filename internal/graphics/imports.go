package graphics

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// importedModel is a model file drawn as reference geometry. It is not a
// scene object: it cannot be selected and is never saved.
type importedModel struct {
	model rl.Model
	at    mgl32.Vec3
	scale float32
}

// ImportModel loads a glTF, OBJ or other raylib-supported model and draws it
// at at with a uniform scale. Must be called on the window thread.
func (r *Renderer) ImportModel(path string, at mgl32.Vec3, scale float32) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	m := rl.LoadModel(path)
	if m.MeshCount == 0 {
		rl.UnloadModel(m)
		return fmt.Errorf("%s: no meshes", path)
	}
	r.imports = append(r.imports, importedModel{model: m, at: at, scale: scale})
	return nil
}

// ClearImports unloads every imported model and returns how many there were.
func (r *Renderer) ClearImports() int {
	n := len(r.imports)
	for _, im := range r.imports {
		rl.UnloadModel(im.model)
	}
	r.imports = nil
	return n
}

func (r *Renderer) drawImports() {
	for _, im := range r.imports {
		rl.DrawModel(im.model, rl.NewVector3(im.at[0], im.at[1], im.at[2]), im.scale, rl.White)
	}
}
