package clicks

import "testing"

func TestRegistryHit(t *testing.T) {
	var r Registry[Identity]
	r.Push(10, 5, Identity{Name: "a"})
	r.Push(15, 0, Identity{Name: "empty"})
	r.Push(15, 3, Identity{Name: "b", Instance: "1"})
	r.Push(20, 4, Identity{Name: "c"})

	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (zero width dropped)", r.Len())
	}

	tests := []struct {
		x    float64
		want string
		ok   bool
	}{
		{x: 9.99},
		{x: 10, want: "a", ok: true},
		{x: 14.5, want: "a", ok: true},
		{x: 15, want: "b", ok: true},
		{x: 18},
		{x: 19.5},
		{x: 20, want: "c", ok: true},
		{x: 23.9, want: "c", ok: true},
		{x: 24},
	}

	for _, tt := range tests {
		got, ok := r.Hit(tt.x)
		if ok != tt.ok || got.Name != tt.want {
			t.Errorf("Hit(%v) = %q, %v; want %q, %v", tt.x, got.Name, ok, tt.want, tt.ok)
		}
	}
}

func TestRegistryHitRegion(t *testing.T) {
	var r Registry[string]
	r.Push(0, 4, "one")
	r.Push(4, 6, "two")

	reg, ok := r.HitRegion(7)
	if !ok || reg.Key != "two" || reg.X != 4 || reg.Width != 6 {
		t.Errorf("HitRegion(7) = %+v, %v", reg, ok)
	}

	var empty Registry[string]
	if _, ok := empty.Hit(0); ok {
		t.Error("empty registry should never hit")
	}
}

func TestRegistryMarshalJSON(t *testing.T) {
	var r Registry[string]
	b, err := r.MarshalJSON()
	if err != nil || string(b) != "[]" {
		t.Errorf("empty MarshalJSON() = %s, %v", b, err)
	}
	r.Push(1, 2, "x")
	b, err = r.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if want := `[{"x":1,"width":2,"key":"x"}]`; string(b) != want {
		t.Errorf("MarshalJSON() = %s, want %s", b, want)
	}
}
