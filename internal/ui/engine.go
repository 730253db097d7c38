package ui

import "os"

// Box is a node ready to draw: its screen rectangle and resolved style.
type Box struct {
	Node  *Node
	Rect  Rect
	Style ComputedStyle
}

// Engine holds the current stylesheet and nodes and lays them out for the draw loop.
// Draw order is node order (first node drawn first, then on top the next).
// Resolved styles are cached and only recomputed when sheet or nodes change.
type Engine struct {
	sheet        *Stylesheet
	nodes        []*Node
	cachedStyles []ComputedStyle
	cacheValid   bool
}

// New creates an empty UI engine (no stylesheet, no nodes).
func New() *Engine {
	return &Engine{}
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	sheet, err := ReadCSS(f)
	if err != nil {
		return err
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded or merged CSS).
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	e.cacheValid = false
}

// HasStylesheet returns whether a CSS file has been loaded.
func (e *Engine) HasStylesheet() bool {
	return e.sheet != nil && len(e.sheet.Rules) > 0
}

// SetNodes replaces all nodes. Passing the same slice contents again keeps the style cache.
func (e *Engine) SetNodes(nodes []*Node) {
	if sameNodes(e.nodes, nodes) {
		return
	}
	e.nodes = append(e.nodes[:0:0], nodes...)
	e.cacheValid = false
}

func sameNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Layout resolves styles (cached) and positions every visible node on a screen of w by h pixels.
// Percentage positions place the node's box so that 0% is flush left/top and 100% flush right/bottom.
func (e *Engine) Layout(w, h int32) []Box {
	if !e.cacheValid {
		e.cachedStyles = make([]ComputedStyle, len(e.nodes))
		for i, n := range e.nodes {
			e.cachedStyles[i] = ResolveProps(e.sheet.Resolve(n))
		}
		e.cacheValid = true
	}
	boxes := make([]Box, 0, len(e.nodes))
	for i, n := range e.nodes {
		style := e.cachedStyles[i]
		if style.Hidden {
			continue
		}
		r := n.Bounds
		if style.Width > 0 {
			r.Width = float32(style.Width)
		}
		if style.Height > 0 {
			r.Height = float32(style.Height)
		}
		r.X, r.Y = float32(style.Left), float32(style.Top)
		if style.LeftPct >= 0 {
			r.X = float32((w - int32(r.Width)) * style.LeftPct / 100)
		}
		if style.TopPct >= 0 {
			r.Y = float32((h - int32(r.Height)) * style.TopPct / 100)
		}
		n.Bounds = r
		boxes = append(boxes, Box{Node: n, Rect: r, Style: style})
	}
	return boxes
}
