package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"corebell/internal/debug"
	"corebell/internal/input"
	"corebell/internal/scene"
	"corebell/internal/terminal"
	"corebell/internal/ui"
)

// App ties the editor to the window: it polls input, steps the editor and
// draws the scene with its overlays. Update and Draw are the two callbacks
// handed to Run.
type App struct {
	Editor    *scene.Editor
	View      *View
	Renderer  *Renderer
	Gizmo     *Gizmo
	Terminal  *terminal.Terminal
	Debug     *debug.Debug
	UI        *ui.Engine
	Inspector *ui.Inspector
	Bindings  input.Bindings
	Hooks     input.Hooks

	font        rl.Font
	fontPath    string
	fontPending bool
	nodes       []*ui.Node
}

// NewApp returns an App over ed, drawing with r and g, with default key
// bindings. Hooks.Terminal defaults to toggling term.
func NewApp(ed *scene.Editor, r *Renderer, g *Gizmo, term *terminal.Terminal) *App {
	a := &App{
		Editor:    ed,
		View:      NewView(),
		Renderer:  r,
		Gizmo:     g,
		Terminal:  term,
		Debug:     debug.New(),
		UI:        ui.New(),
		Inspector: ui.NewInspector(),
		Bindings:  input.DefaultBindings(),
	}
	return a
}

// SetFont queues a font file for the overlay. It is loaded on the next Draw,
// once the window exists. An empty path restores raylib's default font.
func (a *App) SetFont(path string) {
	a.fontPath = path
	a.fontPending = true
}

// Update runs once per frame before drawing.
func (a *App) Update(dt float32) {
	typing := a.Terminal.IsOpen()
	if typing {
		a.pollTerminal()
	}
	hooks := a.Hooks
	if hooks.Terminal == nil {
		hooks.Terminal = func() { a.Terminal.Toggle() }
	}
	for _, c := range pressedChords() {
		act := a.Bindings.Lookup(c)
		// only the terminal toggle gets through while typing
		if typing && act != input.ActionTerminal {
			continue
		}
		input.Dispatch(a.Editor, act, hooks)
	}

	a.View.Update(!a.Terminal.IsOpen())
	a.Renderer.SetView(a.View.Camera)
	if !a.Gizmo.Update(a.View, a.Editor.Registry, a.Editor.Transform) && !a.View.flying {
		a.pick()
	}
	a.Editor.Step(dt)
}

func (a *App) pick() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	var id scene.ID
	hit := false
	if m, ok := a.Renderer.Pick(a.View.Ray()); ok {
		id, hit = a.Editor.Registry.MeshOwner(m)
	}
	a.Editor.Click(id, hit, shiftDown())
}

func (a *App) pollTerminal() {
	t := a.Terminal
	if rl.IsKeyPressed(rl.KeyV) && ctrlDown() {
		t.Type(rl.GetClipboardText())
	} else {
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			t.Type(string(rune(c)))
		}
	}
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace):
		t.Backspace()
	case rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter):
		t.Submit()
	case rl.IsKeyPressed(rl.KeyUp):
		t.HistoryPrev()
	case rl.IsKeyPressed(rl.KeyDown):
		t.HistoryNext()
	}
}

// Draw renders the 3D scene, then the inspector, debug lines and terminal.
func (a *App) Draw() {
	a.loadFont()
	a.View.Draw(func() {
		a.Renderer.Render()
		a.Gizmo.Draw(a.Editor.Registry)
	})

	sel, ok := ui.Describe(a.Editor)
	a.nodes = a.Inspector.AppendNodes(a.nodes[:0], ok && a.UI.HasStylesheet(), sel)
	a.UI.SetNodes(a.nodes)
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	a.drawBoxes(a.UI.Layout(w, h))
	a.drawDebug(a.Debug.Lines(rl.GetFPS(), a.Editor), w)
	a.drawTerminal(w, h)
}

func (a *App) loadFont() {
	if !a.fontPending {
		return
	}
	a.fontPending = false
	if a.font.Texture.ID != 0 {
		rl.UnloadFont(a.font)
		a.font = rl.Font{}
	}
	if a.fontPath == "" {
		return
	}
	f := rl.LoadFontEx(a.fontPath, 64, nil)
	if f.Texture.ID == 0 {
		a.Editor.Log().Error("font: cannot load %s", a.fontPath)
		return
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	a.font = f
}
