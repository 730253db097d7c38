package scene

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRegistryAddDefaults(t *testing.T) {
	r := &fakeRenderer{}
	reg := NewRegistry(r, nil)

	id, err := reg.Add(KindCube, Options{})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	o, ok := reg.Get(id)
	if !ok {
		t.Fatal("Get after Add: not found")
	}
	if o.Position != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Position = %v, want (0,1,0)", o.Position)
	}
	if o.Scale != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Scale = %v, want (1,1,1)", o.Scale)
	}
	if o.Color != RGB(0, 0xff, 0) {
		t.Errorf("Color = %v, want #00ff00", o.Color)
	}
	m := meshOf(reg, id)
	if m.material.Color != o.Color || m.material.Opacity != 1 {
		t.Errorf("mesh material = %+v", m.material)
	}
	if m.pos != o.Position {
		t.Errorf("mesh pos = %v, want %v", m.pos, o.Position)
	}
}

func TestRegistryAddOverrides(t *testing.T) {
	reg := NewRegistry(&fakeRenderer{}, nil)
	id, err := reg.Add(KindSphere, Options{
		Position: Vec3(3, 4, 5),
		Color:    ColorPtr(RGB(1, 2, 3)),
	})
	if err != nil {
		t.Fatal(err)
	}
	o, _ := reg.Get(id)
	if o.Position != (mgl32.Vec3{3, 4, 5}) || o.Color != RGB(1, 2, 3) {
		t.Errorf("object = %+v", o)
	}
	if o.Scale != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Scale = %v, want default", o.Scale)
	}
}

func TestRegistryAddInvalidKind(t *testing.T) {
	reg := NewRegistry(&fakeRenderer{}, nil)
	_, err := reg.Add(Kind(99), Options{})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Add(99) err = %v, want ErrUnknownKind", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Len = %d, want 0", reg.Len())
	}
}

func TestRegistryRendererFailure(t *testing.T) {
	reg := NewRegistry(&fakeRenderer{fail: true}, nil)
	if _, err := reg.Add(KindCube, Options{}); err == nil {
		t.Error("Add with failing renderer: want error")
	}
	if reg.Len() != 0 {
		t.Errorf("Len = %d, want 0", reg.Len())
	}
}

func TestRegistrySizeTracksAddsAndRemoves(t *testing.T) {
	r := &fakeRenderer{}
	reg := NewRegistry(r, nil)
	var ids []ID
	for _, k := range Kinds() {
		id, err := reg.Add(k, Options{})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}
	removed := 0
	for i, id := range ids {
		if i%2 == 0 {
			reg.Remove(id)
			removed++
		}
	}
	reg.Remove(ids[0])   // already gone
	reg.Remove(newID()) // never existed
	if got, want := reg.Len(), len(ids)-removed; got != want {
		t.Errorf("Len = %d, want %d", got, want)
	}
	if r.live() != reg.Len() {
		t.Errorf("live meshes = %d, want %d", r.live(), reg.Len())
	}
}

func TestRegistryRemoveThenGet(t *testing.T) {
	reg := NewRegistry(&fakeRenderer{}, nil)
	id, _ := reg.Add(KindCube, Options{})
	for _, ref := range []ID{id, newID(), NilID} {
		reg.Remove(ref)
		if _, ok := reg.Get(ref); ok {
			t.Errorf("Get(%s) after Remove: found", ref)
		}
	}
}

func TestRegistryInsertionOrder(t *testing.T) {
	reg := NewRegistry(&fakeRenderer{}, nil)
	a, _ := reg.Add(KindCube, Options{})
	b, _ := reg.Add(KindSphere, Options{})
	c, _ := reg.Add(KindCone, Options{})
	reg.Remove(b)
	ids := reg.IDs()
	if len(ids) != 2 || ids[0] != a || ids[1] != c {
		t.Errorf("IDs = %v, want [%s %s]", ids, a, c)
	}
}

func TestRegistryOnRemoveIsSynchronous(t *testing.T) {
	reg := NewRegistry(&fakeRenderer{}, nil)
	id, _ := reg.Add(KindCube, Options{})
	var got []ID
	reg.OnRemove(func(r ID) {
		if reg.Has(r) {
			t.Error("listener ran before the entry was dropped")
		}
		got = append(got, r)
	})
	reg.Remove(id)
	if len(got) != 1 || got[0] != id {
		t.Errorf("listener got %v, want [%s]", got, id)
	}
}

// rekey swaps the random id of old for id so prefix lookups are deterministic.
func rekey(t *testing.T, reg *Registry, old ID, s string) ID {
	t.Helper()
	id, err := ParseID(s)
	if err != nil {
		t.Fatal(err)
	}
	e := reg.entries[old]
	e.obj.ID = id
	delete(reg.entries, old)
	reg.entries[id] = e
	for i := range reg.order {
		if reg.order[i] == old {
			reg.order[i] = id
		}
	}
	return id
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry(&fakeRenderer{}, nil)
	a, _ := reg.Add(KindCube, Options{})
	b, _ := reg.Add(KindSphere, Options{})
	a = rekey(t, reg, a, "abcdef01-0000-4000-8000-000000000001")
	b = rekey(t, reg, b, "12345678-0000-4000-8000-000000000002")

	tests := []struct {
		ref  string
		want ID
		ok   bool
	}{
		{"1", a, true},
		{"2", b, true},
		{"3", NilID, false},
		{"0", NilID, false},
		{a.String(), a, true},
		{b.Short(), b, true},
		{"", NilID, false},
		{"zzzz", NilID, false},
		{"12345678", b, true},
		{"123", b, true},
		{"99", NilID, false},
	}
	for _, tt := range tests {
		got, ok := reg.Lookup(tt.ref)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Lookup(%q) = %s, %v; want %s, %v", tt.ref, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRegistrySetDefaults(t *testing.T) {
	reg := NewRegistry(&fakeRenderer{}, nil)
	reg.SetDefaults(KindCube, Options{Color: ColorPtr(RGB(9, 9, 9))})
	id, _ := reg.Add(KindCube, Options{})
	o, _ := reg.Get(id)
	if o.Color != RGB(9, 9, 9) {
		t.Errorf("Color = %v, want #090909", o.Color)
	}
	if o.Position != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Position = %v, want built-in default", o.Position)
	}
}

func TestRegistryPhysicsBodies(t *testing.T) {
	p := &fakePhysics{}
	reg := NewRegistry(&fakeRenderer{}, p)
	still, _ := reg.Add(KindCube, Options{})
	falling, _ := reg.Add(KindSphere, Options{Mass: Float(2)})
	if reg.HasBody(still) {
		t.Error("massless object got a body")
	}
	if !reg.HasBody(falling) {
		t.Fatal("object with mass has no body")
	}

	p.Step(1)
	reg.SyncPoses()
	o, _ := reg.Get(falling)
	if o.Position[1] != 0 {
		t.Errorf("after step y = %v, want 0", o.Position[1])
	}
	if meshOf(reg, falling).pos != o.Position {
		t.Error("mesh not synced to body pose")
	}

	reg.Remove(falling)
	if !p.bodies[0].removed {
		t.Error("body not released on Remove")
	}
}

func TestRegistrySyncPosesKeepsRotation(t *testing.T) {
	p := &fakePhysics{}
	reg := NewRegistry(&fakeRenderer{}, p)
	id, _ := reg.Add(KindCube, Options{Mass: Float(1)})
	o, _ := reg.Get(id)
	rot := mgl32.Vec3{0, 2, 0}
	reg.SetTransform(id, o.Position, rot, o.Scale)

	p.Step(1)
	reg.SyncPoses()
	o, _ = reg.Get(id)
	if o.Rotation != rot {
		t.Errorf("rotation = %v, want %v", o.Rotation, rot)
	}
	if meshOf(reg, id).rot != rot {
		t.Errorf("mesh rotation = %v, want %v", meshOf(reg, id).rot, rot)
	}
}

func TestRegistrySyncPosesFollowsTurnedBody(t *testing.T) {
	p := &fakePhysics{}
	reg := NewRegistry(&fakeRenderer{}, p)
	id, _ := reg.Add(KindCube, Options{Mass: Float(1)})
	p.bodies[0].rot = EulerToQuat(mgl32.Vec3{0.3, 0, 0})

	reg.SyncPoses()
	o, _ := reg.Get(id)
	if !o.Rotation.ApproxEqualThreshold(mgl32.Vec3{0.3, 0, 0}, 1e-4) {
		t.Errorf("rotation = %v, want [0.3 0 0]", o.Rotation)
	}
}

func TestRegistrySetPhysics(t *testing.T) {
	p := &fakePhysics{}
	reg := NewRegistry(&fakeRenderer{}, p)
	id, _ := reg.Add(KindCube, Options{})
	reg.SetPhysics(id, true)
	o, _ := reg.Get(id)
	if !reg.HasBody(id) || o.Mass != 1 {
		t.Errorf("SetPhysics(on): body=%v mass=%v", reg.HasBody(id), o.Mass)
	}
	reg.SetPhysics(id, false)
	o, _ = reg.Get(id)
	if reg.HasBody(id) || o.Mass != 0 || !p.bodies[0].removed {
		t.Errorf("SetPhysics(off): body=%v mass=%v", reg.HasBody(id), o.Mass)
	}
}

func TestRegistrySetTransformPushesToBody(t *testing.T) {
	p := &fakePhysics{}
	reg := NewRegistry(&fakeRenderer{}, p)
	id, _ := reg.Add(KindCube, Options{Mass: Float(1)})
	reg.SetTransform(id, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{}, mgl32.Vec3{2, 2, 2})
	b := p.bodies[0]
	if b.pos != (mgl32.Vec3{1, 2, 3}) || b.scale != (mgl32.Vec3{2, 2, 2}) {
		t.Errorf("body pos=%v scale=%v", b.pos, b.scale)
	}
	if reg.SetTransform(newID(), mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}) {
		t.Error("SetTransform on unknown id reported success")
	}
}

func TestRegistryMeshOwner(t *testing.T) {
	reg := NewRegistry(&fakeRenderer{}, nil)
	id, _ := reg.Add(KindTorus, Options{})
	got, ok := reg.MeshOwner(reg.mesh(id))
	if !ok || got != id {
		t.Errorf("MeshOwner = %s, %v", got, ok)
	}
	if _, ok := reg.MeshOwner(&fakeMesh{}); ok {
		t.Error("MeshOwner of foreign mesh: found")
	}
}
