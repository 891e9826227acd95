package selectors

// PseudoElement identifies a CSS pseudo-element.
type PseudoElement uint8

// Pseudo-elements we know of. Eager pseudo-elements come first, their order
// defines their slot index.
const (
	NoPseudoElement PseudoElement = iota
	Before
	After
	FirstLine
	FirstLetter
	Selection
	Marker
	Placeholder
	Backdrop
	pseudoElementCount
)

// EagerPseudoCount is the number of eager pseudo-elements.
const EagerPseudoCount = 4

var pseudoNames = [...]string{"", "before", "after", "first-line", "first-letter",
	"selection", "marker", "placeholder", "backdrop"}

func (pe PseudoElement) String() string {
	if pe >= pseudoElementCount {
		return "::?"
	}
	if pe == NoPseudoElement {
		return ""
	}
	return "::" + pseudoNames[pe]
}

// IsEager is true for pseudo-elements which are styled along with their
// originating element.
func (pe PseudoElement) IsEager() bool {
	return pe >= Before && pe <= FirstLetter
}

// EagerIndex returns the slot index of an eager pseudo-element. It panics for
// non-eager pseudo-elements.
func (pe PseudoElement) EagerIndex() int {
	assertThat(pe.IsEager(), "%v is not an eager pseudo-element", pe)
	return int(pe - Before)
}

// PseudoFromEagerIndex is the inverse of EagerIndex.
func PseudoFromEagerIndex(i int) PseudoElement {
	assertThat(i >= 0 && i < EagerPseudoCount, "eager pseudo-element index %d out of range", i)
	return Before + PseudoElement(i)
}

// ParsePseudoElement returns the pseudo-element for a name like "before".
// Names we do not support return false.
func ParsePseudoElement(name string) (PseudoElement, bool) {
	if name == "" {
		return NoPseudoElement, true
	}
	for i := Before; i < pseudoElementCount; i++ {
		if pseudoNames[i] == name {
			return i, true
		}
	}
	return NoPseudoElement, false
}

// EagerPseudoElements returns all the eager pseudo-elements in slot order.
func EagerPseudoElements() []PseudoElement {
	return []PseudoElement{Before, After, FirstLine, FirstLetter}
}
