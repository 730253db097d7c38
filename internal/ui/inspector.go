package ui

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"corebell/internal/scene"
)

// Inspector is a right-side panel that shows the primary selected object.
// It owns its nodes and updates their text when AppendNodes is called with visible true.
type Inspector struct {
	panel    *Node
	title    *Node
	name     *Node
	position *Node
	rotation *Node
	scale    *Node
	color    *Node
	physics  *Node
	mode     *Node
}

// NewInspector creates an Inspector with nodes styled by the engine's CSS (.inspector, .inspector-title, etc.).
func NewInspector() *Inspector {
	return &Inspector{
		panel:    NewNode("panel", "inspector", "", ""),
		title:    NewNode("label", "inspector-title", "", "Inspector"),
		name:     NewNode("label", "inspector-name", "", ""),
		position: NewNode("label", "inspector-position", "", ""),
		rotation: NewNode("label", "inspector-rotation", "", ""),
		scale:    NewNode("label", "inspector-scale", "", ""),
		color:    NewNode("label", "inspector-color", "", ""),
		physics:  NewNode("label", "inspector-physics", "", ""),
		mode:     NewNode("label", "inspector-mode", "", ""),
	}
}

// Selection holds the data shown in the inspector.
type Selection struct {
	Object  scene.Object
	Count   int
	Physics bool
	Mode    scene.Mode
}

// Describe reads the inspector data from ed. ok is false when nothing is selected.
func Describe(ed *scene.Editor) (sel Selection, ok bool) {
	id, ok := ed.Selection.Primary()
	if !ok {
		return Selection{}, false
	}
	obj, ok := ed.Registry.Get(id)
	if !ok {
		return Selection{}, false
	}
	return Selection{
		Object:  obj,
		Count:   ed.Selection.Len(),
		Physics: ed.Registry.HasBody(id),
		Mode:    ed.Transform.Mode(),
	}, true
}

// AppendNodes appends inspector nodes to dst when visible is true, after updating labels from sel.
// When visible is false, dst is returned unchanged.
func (in *Inspector) AppendNodes(dst []*Node, visible bool, sel Selection) []*Node {
	if !visible {
		return dst
	}
	o := sel.Object
	in.title.Text = "Inspector"
	if sel.Count > 1 {
		in.title.Text = fmt.Sprintf("Inspector (%d selected)", sel.Count)
	}
	in.name.Text = fmt.Sprintf("%s %s", o.Kind, o.ID.Short())
	in.position.Text = fmt.Sprintf("Position: %.2f, %.2f, %.2f", o.Position[0], o.Position[1], o.Position[2])
	in.rotation.Text = fmt.Sprintf("Rotation: %.1f, %.1f, %.1f",
		mgl32.RadToDeg(o.Rotation[0]), mgl32.RadToDeg(o.Rotation[1]), mgl32.RadToDeg(o.Rotation[2]))
	in.scale.Text = fmt.Sprintf("Scale: %.2f, %.2f, %.2f", o.Scale[0], o.Scale[1], o.Scale[2])
	in.color.Text = "Color: " + o.Color.Hex()
	if sel.Physics {
		in.physics.Text = fmt.Sprintf("Physics: On (mass %.2g)", o.Mass)
	} else {
		in.physics.Text = "Physics: Off"
	}
	in.mode.Text = "Mode: " + sel.Mode.String()
	return append(dst, in.panel, in.title, in.name, in.position, in.rotation, in.scale, in.color, in.physics, in.mode)
}
