package clicks

import (
	"encoding/json"
	"sort"
)

// Region maps the half-open interval [X, X+Width) to Key.
type Region[K any] struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
	Key   K       `json:"key"`
}

func (r Region[K]) contains(x float64) bool {
	return x >= r.X && x < r.X+r.Width
}

// Registry is the list of click regions produced by one layout pass.
// Regions are pushed left to right and never overlap. A new layout builds a
// new Registry; old ones must not be queried against it.
type Registry[K any] struct {
	regions []Region[K]
}

// Push appends a region. Zero-width regions are ignored.
func (r *Registry[K]) Push(x, width float64, key K) {
	if width <= 0 {
		return
	}
	r.regions = append(r.regions, Region[K]{X: x, Width: width, Key: key})
}

// Hit returns the key of the region containing x.
func (r Registry[K]) Hit(x float64) (K, bool) {
	reg, ok := r.HitRegion(x)
	return reg.Key, ok
}

// HitRegion is Hit returning the whole region.
func (r Registry[K]) HitRegion(x float64) (Region[K], bool) {
	i := sort.Search(len(r.regions), func(i int) bool {
		return r.regions[i].X+r.regions[i].Width > x
	})
	if i < len(r.regions) && r.regions[i].contains(x) {
		return r.regions[i], true
	}
	return Region[K]{}, false
}

func (r Registry[K]) Regions() []Region[K] { return r.regions }

func (r Registry[K]) Len() int { return len(r.regions) }

func (r Registry[K]) MarshalJSON() ([]byte, error) {
	if r.regions == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.regions)
}
