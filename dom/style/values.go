package style

import (
	"fmt"
	"sync/atomic"
)

// ComputedValues is the frozen result of cascading the rules matched for an
// element (or pseudo-element). Computed values are shared freely between
// holders and are never mutated after construction; a change in style always
// results in a new instance.
//
// nil is not a legal ComputedValues. Clients use a *ComputedValues as an opaque
// handle, reading properties with Get.
type ComputedValues struct {
	props  *PropertyMap
	serial uint64
}

var valuesSerial atomic.Uint64

// NewComputedValues freezes a property map into computed values. The map is
// copied, so clients may continue to use pmap.
func NewComputedValues(pmap *PropertyMap) *ComputedValues {
	return &ComputedValues{
		props:  pmap.Clone(),
		serial: valuesSerial.Add(1),
	}
}

// Get returns the value of a property. The second return value is false if
// the property has not been set during the cascade.
func (cv *ComputedValues) Get(key string) (Property, bool) {
	return cv.props.Property(key)
}

// Value returns the value of a property or NullStyle.
func (cv *ComputedValues) Value(key string) Property {
	p, _ := cv.props.Property(key)
	return p
}

// Display is a shortcut to read the "display" property.
func (cv *ComputedValues) Display() Property {
	return cv.Value("display")
}

// Group returns a copy of the property group with a given name, or nil.
func (cv *ComputedValues) Group(groupname string) *PropertyGroup {
	g := cv.props.Group(groupname)
	if g == nil {
		return nil
	}
	return g.clone()
}

// Properties returns a thawed copy of all the properties, ready to be used
// as the starting point for another cascade.
func (cv *ComputedValues) Properties() *PropertyMap {
	return cv.props.Clone()
}

// Equal is true if two sets of computed values agree on every property.
func (cv *ComputedValues) Equal(other *ComputedValues) bool {
	return len(cv.DifferingGroups(other)) == 0
}

// DifferingGroups returns the names of the property groups in which two sets
// of computed values differ.
func (cv *ComputedValues) DifferingGroups(other *ComputedValues) []string {
	if cv == other {
		return nil
	}
	var diff []string
	seen := make(map[string]bool)
	for _, name := range cv.props.GroupNames() {
		seen[name] = true
		if !cv.props.Group(name).Equal(other.props.Group(name)) {
			diff = append(diff, name)
		}
	}
	for _, name := range other.props.GroupNames() {
		if !seen[name] && len(other.props.Group(name).Properties()) > 0 {
			diff = append(diff, name)
		}
	}
	return diff
}

// InheritedEqual is true if two sets of computed values agree on every
// inheritable property, i.e. children styled from either would be equal.
func (cv *ComputedValues) InheritedEqual(other *ComputedValues) bool {
	if cv == other {
		return true
	}
	for _, kv := range cv.inherited() {
		if other.Value(kv.Key) != kv.Value {
			return false
		}
	}
	for _, kv := range other.inherited() {
		if cv.Value(kv.Key) != kv.Value {
			return false
		}
	}
	return true
}

// Inherited returns all inheritable properties with their values.
func (cv *ComputedValues) Inherited() []KeyValue {
	return cv.inherited()
}

func (cv *ComputedValues) inherited() []KeyValue {
	var r []KeyValue
	for _, name := range cv.props.GroupNames() {
		for _, kv := range cv.props.Group(name).Properties() {
			if IsCascading(kv.Key) {
				r = append(r, kv)
			}
		}
	}
	return r
}

// We do not print the whole property map, which tends to be verbose in
// trace output.
func (cv *ComputedValues) String() string {
	return fmt.Sprintf("ComputedValues#%d{display: %s}", cv.serial, cv.Display())
}
