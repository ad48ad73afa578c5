package joints

import "github.com/cwbudde/algo-rig/rig/rotation"

// AttributeKind is the transform category a joint attribute belongs to.
type AttributeKind uint8

const (
	Translation AttributeKind = iota
	Rotation
	Scale

	attributeKindCount
)

func (k AttributeKind) String() string {
	switch k {
	case Translation:
		return "translation"
	case Rotation:
		return "rotation"
	case Scale:
		return "scale"
	default:
		return "unknown"
	}
}

// BehaviorFilter selects which rows of a Reader are materialized. A row is
// kept when the kind of the attribute it drives is enabled.
type BehaviorFilter struct {
	reader Reader
	keep   [attributeKindCount]bool
}

// NewBehaviorFilter returns a filter over r keeping the given attribute
// kinds. With no kinds every row is kept.
func NewBehaviorFilter(r Reader, kinds ...AttributeKind) *BehaviorFilter {
	f := &BehaviorFilter{reader: r}
	if len(kinds) == 0 {
		for i := range f.keep {
			f.keep[i] = true
		}
		return f
	}
	for _, k := range kinds {
		if k < attributeKindCount {
			f.keep[k] = true
		}
	}
	return f
}

// Reader returns the filtered source.
func (f *BehaviorFilter) Reader() Reader { return f.reader }

// Keeps reports whether rows driving kind are materialized.
func (f *BehaviorFilter) Keeps(kind AttributeKind) bool {
	return kind < attributeKindCount && f.keep[kind]
}

func (f *BehaviorFilter) keepsAttribute(attr int, r rotation.Representation) bool {
	kind, _ := ClassifyAttribute(attr, r)
	return f.Keeps(kind)
}
