package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strings"
)

// Property is a raw value for a CSS property. For example, with
//
//     color: black
//
// a property value of "black" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient helpers.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial"
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit"
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// --- CSS Property Groups ----------------------------------------------

// PropertyGroup is a collection of propertes sharing a common topic.
// CSS knows a whole lot of properties. We split them up into organisatorial
// groups.
//
// The mapping of property into groups is documented with
// GroupNameFromPropertyKey[...].
type PropertyGroup struct {
	name      string
	propsDict map[string]Property
}

// NewPropertyGroup creates a new empty property group, given its name.
func NewPropertyGroup(groupname string) *PropertyGroup {
	return &PropertyGroup{name: groupname}
}

// Name returns the name of the property group. Once named (during
// construction), property groups may not be renamed.
func (pg *PropertyGroup) Name() string {
	return pg.name
}

// Stringer for property groups; used for debugging.
func (pg *PropertyGroup) String() string {
	s := "[" + pg.name + "] =\n"
	for _, kv := range pg.Properties() {
		s += fmt.Sprintf("  %s = %s\n", kv.Key, kv.Value)
	}
	return s
}

// Properties returns all properties of a group, sorted by key.
func (pg *PropertyGroup) Properties() []KeyValue {
	r := make([]KeyValue, 0, len(pg.propsDict))
	for k, v := range pg.propsDict {
		r = append(r, KeyValue{k, v})
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Key < r[j].Key })
	return r
}

// IsSet is a predicated wether a property is set within this group.
func (pg *PropertyGroup) IsSet(key string) bool {
	if pg == nil || pg.propsDict == nil {
		return false
	}
	v, ok := pg.propsDict[key]
	return ok && !v.IsEmpty()
}

// Get a property's value.
func (pg *PropertyGroup) Get(key string) (Property, bool) {
	if pg == nil || pg.propsDict == nil {
		return NullStyle, false
	}
	p, ok := pg.propsDict[key]
	return p, ok
}

// Set a property's value. Overwrites an existing value, if present.
//
// Style property values are always converted to lower case.
func (pg *PropertyGroup) Set(key string, p Property) {
	p = Property(strings.ToLower(strings.TrimSpace(string(p))))
	if pg.propsDict == nil {
		pg.propsDict = make(map[string]Property)
	}
	pg.propsDict[key] = p
}

// Add a property's value. Does not overwrite an existing value, i.e., does nothing
// if a value is already set.
func (pg *PropertyGroup) Add(key string, p Property) {
	if _, exists := pg.Get(key); !exists {
		pg.Set(key, p)
	}
}

// Equal compares two groups property by property.
func (pg *PropertyGroup) Equal(other *PropertyGroup) bool {
	if pg == other {
		return true
	}
	if len(pg.propsDictOrNil()) != len(other.propsDictOrNil()) {
		return false
	}
	for k, v := range pg.propsDictOrNil() {
		if w, ok := other.Get(k); !ok || w != v {
			return false
		}
	}
	return true
}

func (pg *PropertyGroup) propsDictOrNil() map[string]Property {
	if pg == nil {
		return nil
	}
	return pg.propsDict
}

func (pg *PropertyGroup) clone() *PropertyGroup {
	npg := NewPropertyGroup(pg.name)
	if len(pg.propsDict) > 0 {
		npg.propsDict = make(map[string]Property, len(pg.propsDict))
		for k, v := range pg.propsDict {
			npg.propsDict[k] = v
		}
	}
	return npg
}

// GroupNameFromPropertyKey returns the style property group name for a
// style property.
// Example:
//    GroupNameFromPropertyKey("margin-top") => "Margins"
//
// Unknown style property keys will return a group name of "X".
func GroupNameFromPropertyKey(key string) string {
	groupname, found := groupNameFromPropertyKey[key]
	if !found {
		groupname = PGX
	}
	return groupname
}

// Symbolic names for string literals, denoting PropertyGroups.
const (
	PGMargins   = "Margins"
	PGPadding   = "Padding"
	PGBorder    = "Border"
	PGDimension = "Dimension"
	PGDisplay   = "Display"
	PGRegion    = "Region"
	PGColor     = "Color"
	PGText      = "Text"
	PGX         = "X"
)

var groupNameFromPropertyKey = map[string]string{
	"margin-top":                 PGMargins, // Margins
	"margin-left":                PGMargins,
	"margin-right":               PGMargins,
	"margin-bottom":              PGMargins,
	"padding-top":                PGPadding, // Padding
	"padding-left":               PGPadding,
	"padding-right":              PGPadding,
	"padding-bottom":             PGPadding,
	"border-top-color":           PGBorder, // Border
	"border-left-color":          PGBorder,
	"border-right-color":         PGBorder,
	"border-bottom-color":        PGBorder,
	"border-top-width":           PGBorder,
	"border-left-width":          PGBorder,
	"border-right-width":         PGBorder,
	"border-bottom-width":        PGBorder,
	"border-top-style":           PGBorder,
	"border-left-style":          PGBorder,
	"border-right-style":         PGBorder,
	"border-bottom-style":        PGBorder,
	"border-top-left-radius":     PGBorder,
	"border-top-right-radius":    PGBorder,
	"border-bottom-left-radius":  PGBorder,
	"border-bottom-right-radius": PGBorder,
	"width":                      PGDimension, // Dimension
	"height":                     PGDimension,
	"min-width":                  PGDimension,
	"min-height":                 PGDimension,
	"max-width":                  PGDimension,
	"max-height":                 PGDimension,
	"display":                    PGDisplay, // Display
	"float":                      PGDisplay,
	"visibility":                 PGDisplay,
	"position":                   PGDisplay,
	"top":                        PGDisplay,
	"right":                      PGDisplay,
	"bottom":                     PGDisplay,
	"left":                       PGDisplay,
	"flow-into":                  PGRegion,
	"flow-from":                  PGRegion,
	"color":                      PGColor,
	"background-color":           PGColor,
	"direction":                  PGText,
	"white-space":                PGText,
	"word-spacing":               PGText,
	"letter-spacing":             PGText,
	"word-break":                 PGText,
	"word-wrap":                  PGText,
	"line-height":                PGText,
	"overflow-wrap":              PGText,
	"hyphens":                    PGText,
	"content":                    PGText,
}

// IsCascading returns wether the standard behaviour for a propery is to be
// inherited or not, i.e., a child element receives the parent's value unless
// it sets one itself.
func IsCascading(key string) bool {
	if strings.HasPrefix(key, "list-style") {
		return true
	}
	switch key {
	case "color", "cursor", "direction", "flow-into", "flow-from":
		return true
	case "letter-spacing", "line-height", "quotes", "visibility", "white-space":
		return true
	case "word-spacing", "word-break", "word-wrap":
		return true
	}
	return false
}

// SplitCompoundProperty splits up a shortcut property into its individual
// components. Returns a slice of key-value pairs representing the
// individual (fine grained) style properties.
// Example:
//    SplitCompountProperty("padding", "3px")
// will return
//    "padding-top"    => "3px"
//    "padding-right"  => "3px"
//    "padding-bottom" => "3px"
//    "padding-left  " => "3px"
// For the logic behind this, refer to e.g.
// https://www.w3schools.com/css/css_padding.asp .
func SplitCompoundProperty(key string, value Property) ([]KeyValue, error) {
	fields := strings.Fields(value.String())
	switch key {
	case "margin":
		return feazeCompound4("margin", "", fourDirs, fields)
	case "padding":
		return feazeCompound4("padding", "", fourDirs, fields)
	case "border-color":
		return feazeCompound4("border", "color", fourDirs, fields)
	case "border-width":
		return feazeCompound4("border", "width", fourDirs, fields)
	case "border-style":
		return feazeCompound4("border", "style", fourDirs, fields)
	case "border-radius":
		return feazeCompound4("border", "radius", fourCorners, fields)
	}
	return nil, fmt.Errorf("not recognized as compound property: %s", key)
}

// IsCompoundProperty is true for the shortcut properties SplitCompoundProperty
// knows how to split.
func IsCompoundProperty(key string) bool {
	switch key {
	case "margin", "padding", "border-color", "border-width", "border-style", "border-radius":
		return true
	}
	return false
}

// CSS logic to distribute individual values from compound shortcuts is as
// follows: https://www.w3schools.com/css/css_border.asp
func feazeCompound4(pre string, suf string, dirs [4]string, fields []string) ([]KeyValue, error) {
	l := len(fields)
	if l == 0 || l > 4 {
		return nil, fmt.Errorf("expecting 1-4 values for %s-%s", pre, suf)
	}
	r := make([]KeyValue, 4)
	r[0] = KeyValue{p(pre, suf, dirs[0]), Property(fields[0])}
	if l >= 2 {
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[1])}
		if l >= 3 {
			r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[2])}
			if l == 4 {
				r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[3])}
			} else {
				r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
			}
		} else {
			r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
			r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
		}
	} else {
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[0])}
		r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
		r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[0])}
	}
	return r, nil
}

var fourDirs = [4]string{"top", "right", "bottom", "left"}
var fourCorners = [4]string{"top-right", "bottom-right", "bottom-left", "top-left"}

func p(prefix string, suffix string, tag string) string {
	if suffix == "" {
		return prefix + "-" + tag
	}
	if prefix == "" {
		return tag + "-" + suffix
	}
	return prefix + "-" + tag + "-" + suffix
}

// --- Property Map -----------------------------------------------------

// PropertyMap holds CSS properties. nil is a legal (empty) property map.
// A property map contains zero or more property groups.
type PropertyMap struct {
	// As CSS defines a whole lot of properties, we segment them into logical groups.
	m map[string]*PropertyGroup // into struct to make it opaque for clients
}

// NewPropertyMap returns a new empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{m: make(map[string]*PropertyGroup)}
}

func (pmap *PropertyMap) String() string {
	s := "Property Map = {\n"
	for _, name := range pmap.GroupNames() {
		s += pmap.m[name].String()
	}
	s += "}"
	return s
}

// Size returns the number of property groups.
func (pmap *PropertyMap) Size() int {
	if pmap == nil {
		return 0
	}
	return len(pmap.m)
}

// GroupNames returns the names of all property groups present, sorted.
func (pmap *PropertyMap) GroupNames() []string {
	if pmap == nil {
		return nil
	}
	names := make([]string, 0, len(pmap.m))
	for name := range pmap.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Group returns the property group for a group name or nil.
func (pmap *PropertyMap) Group(groupname string) *PropertyGroup {
	if pmap == nil {
		return nil
	}
	return pmap.m[groupname]
}

// Property returns a style property value, together with an indicator
// wether it has been found in the properties map.
// No cascading is performed
func (pmap *PropertyMap) Property(key string) (Property, bool) {
	group := pmap.Group(GroupNameFromPropertyKey(key))
	if group == nil {
		return NullStyle, false
	}
	return group.Get(key)
}

// Add adds a property to this property map, e.g.,
//
//    pm.Add("funny-margin", "big")
//
// An existing value is overwritten.
func (pmap *PropertyMap) Add(key string, value Property) {
	if pmap == nil {
		return
	}
	if pmap.m == nil {
		pmap.m = make(map[string]*PropertyGroup)
	}
	groupname := GroupNameFromPropertyKey(key)
	group, found := pmap.m[groupname]
	if !found {
		group = NewPropertyGroup(groupname)
		pmap.m[groupname] = group
	}
	group.Set(key, value)
}

// Clone creates a deep copy of a property map.
func (pmap *PropertyMap) Clone() *PropertyMap {
	c := NewPropertyMap()
	if pmap == nil {
		return c
	}
	for name, g := range pmap.m {
		c.m[name] = g.clone()
	}
	return c
}
