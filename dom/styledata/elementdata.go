package styledata

import (
	"fmt"

	"github.com/npillmayer/restyle/dom/style/restyle"
)

// RestyleKindTag tells the kind of work a restyle of an element needs.
type RestyleKindTag uint8

// Kinds of restyles.
const (
	MatchAndCascade         RestyleKindTag = iota // selector matching plus cascade
	CascadeWithReplacements                       // replace some rules, e.g. of the style attribute, then cascade
	CascadeOnly                                   // cascade only, e.g. for changed inherited values
)

// RestyleKind is the kind of restyle an element needs. Hint is set for
// CascadeWithReplacements only.
type RestyleKind struct {
	Kind RestyleKindTag
	Hint restyle.Hint
}

func (rk RestyleKind) String() string {
	switch rk.Kind {
	case MatchAndCascade:
		return "MatchAndCascade"
	case CascadeWithReplacements:
		return fmt.Sprintf("CascadeWithReplacements(%v)", rk.Hint)
	}
	return "CascadeOnly"
}

// ElementData is the style data of an element. Styles are present once the
// element has been styled, restyle data is present while an invalidation is
// pending.
//
// ElementData must be guarded against concurrent access by the client.
type ElementData struct {
	styles  *ElementStyles
	restyle *RestyleData
}

// NewElementData creates element data, with existing styles or nil.
func NewElementData(existing *ElementStyles) *ElementData {
	return &ElementData{styles: existing}
}

// HasStyles is true if the element has been styled.
func (d *ElementData) HasStyles() bool {
	return d.styles != nil
}

// HasCurrentStyles is true if the element has been styled and there are no
// invalidations pending.
func (d *ElementData) HasCurrentStyles() bool {
	return d.HasStyles() && (d.restyle == nil || !d.restyle.HasInvalidations())
}

// RestyleKind classifies the restyle an element needs. It must not be called
// for elements with current styles, and the restyle hint must have been
// finalized (see RestyleData.ComputeFinalHint).
func (d *ElementData) RestyleKind() RestyleKind {
	assertThat(!d.HasCurrentStyles(), "restyle kind requested for element with current styles")
	if !d.HasStyles() {
		return RestyleKind{Kind: MatchAndCascade}
	}
	hint := d.restyle.Hint.Bits()
	if hint.Contains(restyle.Self) {
		return RestyleKind{Kind: MatchAndCascade}
	}
	if !hint.IsEmpty() {
		return RestyleKind{Kind: CascadeWithReplacements, Hint: hint}
	}
	assertThat(d.restyle.Recascade, "element is dirty without any reason")
	return RestyleKind{Kind: CascadeOnly}
}

// GetStyles returns the element's styles, or nil.
func (d *ElementData) GetStyles() *ElementStyles {
	return d.styles
}

// Styles returns the element's styles. It panics for unstyled elements.
func (d *ElementData) Styles() *ElementStyles {
	assertThat(d.styles != nil, "styles of unstyled element accessed")
	return d.styles
}

// StylesAndRestyle returns the styles, which have to be present, together with
// the restyle data, if any.
func (d *ElementData) StylesAndRestyle() (*ElementStyles, *RestyleData) {
	return d.Styles(), d.restyle
}

// SetStyles replaces the element's styles. Pending snapshots must have been
// expanded beforehand.
func (d *ElementData) SetStyles(styles *ElementStyles) {
	assertThat(d.restyle == nil || d.restyle.Snapshot.IsNone(),
		"traversal should have expanded snapshots")
	d.styles = styles
}

// ClearStyles drops the element's styles and any restyle data, returning
// the element to the unstyled state. It returns the backing snapshots, if any.
func (d *ElementData) ClearStyles() []*restyle.Snapshot {
	d.styles = nil
	return d.ClearRestyle()
}

// HasRestyle is true if restyle data is present.
func (d *ElementData) HasRestyle() bool {
	return d.restyle != nil
}

// ClearRestyle drops the restyle data. It returns the backing snapshots, if
// any, for the owner of the snapshot pool to release.
func (d *ElementData) ClearRestyle() []*restyle.Snapshot {
	if d.restyle == nil {
		return nil
	}
	s := d.restyle.Snapshot.Release()
	d.restyle = nil
	return s
}

// EnsureRestyle returns the restyle data, creating it if necessary.
// The element must have been styled.
func (d *ElementData) EnsureRestyle() *RestyleData {
	assertThat(d.styles != nil, "restyling unstyled element")
	if d.restyle == nil {
		d.restyle = &RestyleData{}
	}
	return d.restyle
}

// GetRestyle returns the restyle data, or nil.
func (d *ElementData) GetRestyle() *RestyleData {
	return d.restyle
}

// Restyle returns the restyle data. It panics if there is none.
func (d *ElementData) Restyle() *RestyleData {
	assertThat(d.restyle != nil, "restyle data of clean element accessed")
	return d.restyle
}

// State returns a short description of the element's state.
func (d *ElementData) State() string {
	switch {
	case !d.HasStyles():
		return "unstyled"
	case d.HasCurrentStyles():
		return "clean"
	}
	return "dirty"
}

func (d *ElementData) String() string {
	if d.restyle == nil {
		return fmt.Sprintf("ElementData{%s}", d.State())
	}
	return fmt.Sprintf("ElementData{%s, %v}", d.State(), d.restyle)
}
