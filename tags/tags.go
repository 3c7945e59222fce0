// Package tags models the workspace tags drawn at the left of the bar.
package tags

import (
	"slices"

	"termbar/clicks"
)

type Tag struct {
	Name    string `json:"name"`
	Focused bool   `json:"focused"`
	Active  bool   `json:"active"`
	Urgent  bool   `json:"urgent"`
}

// Source supplies tags and reacts to clicks on them. Click reports whether
// the tags changed. LayoutName is the window manager's current layout, or
// "" when there is none to show.
type Source interface {
	Tags() []Tag
	LayoutName() string
	Click(name string, button clicks.Button) bool
}

// Static is a Source with a fixed set of tags. The first tag starts focused.
// A left click focuses a tag, a right click marks an unfocused tag inactive,
// and any click clears urgency.
type Static struct {
	tags   []Tag
	layout string
}

func NewStatic(names []string, layoutName string) *Static {
	s := &Static{tags: make([]Tag, len(names)), layout: layoutName}
	for i, n := range names {
		s.tags[i] = Tag{Name: n}
	}
	if len(s.tags) > 0 {
		s.tags[0].Focused = true
		s.tags[0].Active = true
	}
	return s
}

func (s *Static) Tags() []Tag        { return slices.Clone(s.tags) }
func (s *Static) LayoutName() string { return s.layout }

func (s *Static) Click(name string, button clicks.Button) bool {
	i := s.index(name)
	if i < 0 {
		return false
	}
	before := slices.Clone(s.tags)
	s.tags[i].Urgent = false
	switch button {
	case clicks.ButtonLeft:
		for j := range s.tags {
			s.tags[j].Focused = j == i
		}
		s.tags[i].Active = true
	case clicks.ButtonRight:
		if !s.tags[i].Focused {
			s.tags[i].Active = false
		}
	}
	return !slices.Equal(before, s.tags)
}

func (s *Static) index(name string) int {
	return slices.IndexFunc(s.tags, func(t Tag) bool { return t.Name == name })
}
