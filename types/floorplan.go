package types

// Group is a named rectangular region of the floor plan that contains
// resources, e.g. a room or a zone within one.
//
// Coordinates are in floor plan units with the origin at the top left.
type Group struct {
	// ID uniquely identifies the group across the snapshot.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// X and Y locate the top-left corner.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Width and Height give the rectangle extent.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Color is an optional display color (e.g. "#aaccee").
	Color string `json:"color,omitempty"`
}

// Contains reports whether the point lies inside the group's rectangle.
// Bounds are inclusive, so a resource sitting exactly on the edge counts
// as contained.
func (g Group) Contains(x, y float64) bool {
	return x >= g.X && x <= g.X+g.Width &&
		y >= g.Y && y <= g.Y+g.Height
}

// Overlaps reports whether two groups share interior area.
// Touching edges do not overlap.
func (g Group) Overlaps(o Group) bool {
	return g.X < o.X+o.Width && g.X+g.Width > o.X &&
		g.Y < o.Y+o.Height && g.Y+g.Height > o.Y
}

// Resource is an assignable unit (a seat) positioned inside a group.
type Resource struct {
	// ID uniquely identifies the resource across the snapshot.
	// Resource IDs also define the deterministic placement order:
	// the engine scans candidates in ascending ID order.
	ID string `json:"id"`

	// GroupID names the containing group.
	GroupID string `json:"group_id"`

	// Number is the display number within the group.
	Number int `json:"number"`

	// X and Y locate the resource on the floor plan. Must fall inside
	// the containing group's rectangle.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Properties is an open-ended capability bag, e.g.
	// {"window": true, "outlet": true}. Properties with a false value
	// count as absent.
	Properties map[string]bool `json:"properties,omitempty"`
}

// HasProperty reports whether the resource offers the given property.
func (r Resource) HasProperty(name string) bool {
	return r.Properties[name]
}

// SatisfiesAll reports whether the resource offers every listed
// requirement. An empty requirement list is satisfied by any resource.
func (r Resource) SatisfiesAll(requirements []string) bool {
	for _, req := range requirements {
		if !r.Properties[req] {
			return false
		}
	}

	return true
}

// SatisfiesAny reports whether the resource offers at least one of the
// listed requirements. An empty requirement list reports false.
func (r Resource) SatisfiesAny(requirements []string) bool {
	for _, req := range requirements {
		if r.Properties[req] {
			return true
		}
	}

	return false
}
