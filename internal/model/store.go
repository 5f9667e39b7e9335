package model

import (
	"maps"
	"slices"
)

// Store is a self-contained snapshot of a cell's persisted fields. It is the
// payload of history commands: complete for create and delete, partial
// (only the changed fields) for edits. A Store never shares containers with
// a live cell.
type Store struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	Type       string   `json:"type,omitempty"`
	Layer      string   `json:"layer,omitempty"`
	Data       Data     `json:"data,omitempty"`
	LinkChild  Links    `json:"linkChild,omitempty"`
	LinkRely   Links    `json:"linkRely,omitempty"`
	LinkParent []string `json:"linkParent,omitempty"`
}

// Clone returns a deep copy.
func (s Store) Clone() Store {
	out := s
	out.Data = s.Data.Clone()
	out.LinkChild = s.LinkChild.Clone()
	out.LinkRely = s.LinkRely.Clone()
	if s.LinkParent != nil {
		out.LinkParent = append([]string{}, s.LinkParent...)
	}
	return out
}

// Merge overlays the partial store o and returns the result. Unset values
// and nil link slots are kept as markers, so merging two edits still
// deletes on replay. A nil LinkParent in o leaves the parents untouched.
func (s Store) Merge(o Store) Store {
	return s.overlay(o, true)
}

// Apply overlays the partial store o and returns the result, resolving the
// markers: unset values delete their field and nil slots delete their slot.
func (s Store) Apply(o Store) Store {
	return s.overlay(o, false)
}

func (s Store) overlay(o Store, keepMarkers bool) Store {
	out := s.Clone()
	if len(o.Data) > 0 && out.Data == nil {
		out.Data = Data{}
	}
	for k, v := range o.Data {
		if !v.IsSet() && !keepMarkers {
			delete(out.Data, k)
			continue
		}
		out.Data[k] = v
	}
	out.LinkChild = overlayLinks(out.LinkChild, o.LinkChild, keepMarkers)
	out.LinkRely = overlayLinks(out.LinkRely, o.LinkRely, keepMarkers)
	if o.LinkParent != nil {
		out.LinkParent = append([]string{}, o.LinkParent...)
	}
	return out
}

func overlayLinks(dst, src Links, keepMarkers bool) Links {
	if len(src) > 0 && dst == nil {
		dst = Links{}
	}
	for k, ids := range src {
		if ids == nil {
			if keepMarkers {
				dst[k] = nil
			} else {
				delete(dst, k)
			}
			continue
		}
		dst[k] = append([]string{}, ids...)
	}
	return dst
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	return slices.Sorted(maps.Keys(m))
}
