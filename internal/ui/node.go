package ui

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, Width, Height float32
}

// Node is a single UI element: panel, label, etc. It has optional class and id for CSS matching,
// bounds (position and size), and optional text for labels.
type Node struct {
	Type   string // "panel", "label", etc.
	Class  string // e.g. "menu" for .menu
	ID     string // e.g. "main" for #main
	Bounds Rect
	Text   string // for label-type nodes
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}

// matches reports whether a simple selector (.class, #id or a type name) applies to n.
func (n *Node) matches(sel string) bool {
	switch {
	case sel == "":
		return false
	case sel[0] == '.':
		return n.Class == sel[1:]
	case sel[0] == '#':
		return n.ID == sel[1:]
	case sel == "*":
		return true
	}
	return n.Type == sel
}
