package styledata

import (
	"fmt"

	"github.com/npillmayer/restyle/dom/style"
	"github.com/npillmayer/restyle/dom/style/ruletree"
)

// ComputedStyle pairs the rule node matched for an element (or pseudo-element)
// with the values cascaded from it.
//
// Values are absent only in a transient window of the styling algorithm
// (a partial style). Every ComputedStyle observed outside of that window has
// values.
type ComputedStyle struct {
	Rules  ruletree.StrongRuleNode // the rule node of the matched rules
	values *style.ComputedValues
}

// NewComputedStyle creates a complete style.
func NewComputedStyle(rules ruletree.StrongRuleNode, values *style.ComputedValues) ComputedStyle {
	assertThat(values != nil, "complete style needs values")
	return ComputedStyle{Rules: rules, values: values}
}

// NewPartialComputedStyle creates a style for a rule node, with values to be
// filled in later by SetValues.
func NewPartialComputedStyle(rules ruletree.StrongRuleNode) ComputedStyle {
	return ComputedStyle{Rules: rules}
}

// Values returns the computed values. It panics for partial styles.
func (cs *ComputedStyle) Values() *style.ComputedValues {
	assertThat(cs.values != nil, "values of partial style accessed")
	return cs.values
}

// SetValues fills in or replaces the computed values.
func (cs *ComputedStyle) SetValues(values *style.ComputedValues) {
	cs.values = values
}

// SetRules replaces the rule node.
func (cs *ComputedStyle) SetRules(rules ruletree.StrongRuleNode) {
	cs.Rules = rules
}

// IsPartial is true if the style has no values yet.
func (cs *ComputedStyle) IsPartial() bool {
	return cs.values == nil
}

// Values are too verbose for tracing, we just print the rules.
func (cs ComputedStyle) String() string {
	return fmt.Sprintf("ComputedStyle{rules: %v, values: ..}", cs.Rules)
}
