package cssom

import (
	"errors"

	"github.com/npillmayer/restyle/dom/style"
)

// ErrEmptyStyleSheet is returned by parsers for input without any rules.
var ErrEmptyStyleSheet = errors.New("stylesheet contains no rules")

// StyleSheet is an interface to abstract away a stylesheet-implementation.
// In order to de-couple implementations of CSS-stylesheets from the
// construction of the styled node tree, we introduce an interface
// for CSS stylesheets. Clients for the styling engine will have to
// provide a concrete implementation of this interface (e.g., see
// package douceuradapter).
//
// Rules returns the same Rule instances on every call, as rules are
// identified by the engine, not compared by content.
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet, in document order
}

// Rule is the type stylesheets consists of.
//
// See interface StyleSheet.
type Rule interface {
	Selector() string            // the prelude / selectors of the rule
	Properties() []string        // property keys, e.g. "margin-top"
	Value(string) style.Property // property value for key, e.g. "15px"
	IsImportant(string) bool     // is property key marked as important?
}

// Declarations returns the properties of a rule as key-value pairs, in the
// order they have been declared. Compound properties like "margin" are split
// up into their components. Properties whose important-flag does not equal
// important are skipped.
func Declarations(r Rule, important bool) []style.KeyValue {
	var kvs []style.KeyValue
	for _, key := range r.Properties() {
		if r.IsImportant(key) != important {
			continue
		}
		value := r.Value(key)
		if style.IsCompoundProperty(key) {
			split, err := style.SplitCompoundProperty(key, value)
			if err != nil {
				tracer().Infof("skipping property %s: %v", key, err)
				continue
			}
			kvs = append(kvs, split...)
			continue
		}
		kvs = append(kvs, style.KeyValue{Key: key, Value: value})
	}
	return kvs
}

// HasImportant is true if any property of a rule is marked as important.
func HasImportant(r Rule) bool {
	for _, key := range r.Properties() {
		if r.IsImportant(key) {
			return true
		}
	}
	return false
}
