package scene

// Selection holds the selected objects in selection order; the last one is
// the primary. Each selected mesh shows the highlight material. The material
// it had when it entered the selection is captured once and restored exactly
// when it leaves.
type Selection struct {
	reg       *Registry
	highlight Material
	ids       []ID
	originals map[ID]Material
	onChange  []func([]ID)
}

// NewSelection returns an empty selection bound to reg. Removing an object
// from reg evicts it from the selection in the same call.
func NewSelection(reg *Registry, highlight Material) *Selection {
	s := &Selection{
		reg:       reg,
		highlight: highlight,
		originals: make(map[ID]Material),
	}
	reg.OnRemove(s.evict)
	reg.restyle = s.restyle
	return s
}

// OnChange registers fn to run after every change with the new selection.
func (s *Selection) OnChange(fn func([]ID)) {
	s.onChange = append(s.onChange, fn)
}

// Select makes id the only selected object. Unknown ids are ignored.
func (s *Selection) Select(id ID) bool {
	if !s.reg.Has(id) {
		return false
	}
	if len(s.ids) == 1 && s.ids[0] == id {
		return true
	}
	for _, other := range s.ids {
		if other != id {
			s.revert(other)
		}
	}
	s.ids = append(s.ids[:0], id)
	s.apply(id)
	s.changed()
	return true
}

// ToggleAdd adds id to the selection (shift-click). Adding an id that is already selected changes nothing.
func (s *Selection) ToggleAdd(id ID) bool {
	if !s.reg.Has(id) {
		return false
	}
	if s.Contains(id) {
		return true
	}
	s.ids = append(s.ids, id)
	s.apply(id)
	s.changed()
	return true
}

// Deselect clears the selection and restores every highlighted mesh.
func (s *Selection) Deselect() {
	if len(s.ids) == 0 {
		return
	}
	for _, id := range s.ids {
		s.revert(id)
	}
	s.ids = s.ids[:0]
	s.changed()
}

// IDs returns the selected ids in selection order.
func (s *Selection) IDs() []ID {
	out := make([]ID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Primary returns the most recently selected id.
func (s *Selection) Primary() (ID, bool) {
	if len(s.ids) == 0 {
		return NilID, false
	}
	return s.ids[len(s.ids)-1], true
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id ID) bool {
	for _, o := range s.ids {
		if o == id {
			return true
		}
	}
	return false
}

// Len returns the number of selected objects.
func (s *Selection) Len() int {
	return len(s.ids)
}

func (s *Selection) apply(id ID) {
	m := s.reg.mesh(id)
	if m == nil {
		return
	}
	if _, captured := s.originals[id]; !captured {
		s.originals[id] = m.Material()
	}
	m.SetMaterial(s.highlight)
}

func (s *Selection) revert(id ID) {
	orig, ok := s.originals[id]
	if !ok {
		return
	}
	delete(s.originals, id)
	if m := s.reg.mesh(id); m != nil {
		m.SetMaterial(orig)
	}
}

// evict drops a removed object. Its mesh is already released so nothing is restored.
func (s *Selection) evict(id ID) {
	delete(s.originals, id)
	for i, o := range s.ids {
		if o == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			s.changed()
			return
		}
	}
}

// restyle records a new base material for a selected object so deselect restores it.
func (s *Selection) restyle(id ID, m Material) bool {
	if _, ok := s.originals[id]; !ok {
		return false
	}
	s.originals[id] = m
	return true
}

func (s *Selection) changed() {
	ids := s.IDs()
	for _, fn := range s.onChange {
		fn(ids)
	}
}
