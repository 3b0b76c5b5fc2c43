// Package serializer turns model values into plain maps honoring exclusion
// rules, so related records can be embedded without serializing cycles.
//
// A rule is a dotted field path, optionally prefixed with "-":
// "-hero_powers" drops the hero_powers field, "-hero_powers.hero" keeps
// hero_powers but drops hero from every record inside it. Every entity adds
// its own SerializeRules to the rules it receives from its parent.
package serializer

import (
	"reflect"
	"strings"
)

// Field is one named attribute of a serializable value, in output order.
type Field struct {
	Name  string
	Value any
}

// Serializable is implemented by every model exposed through the API.
type Serializable interface {
	SerializeFields() []Field
	SerializeRules() []string
}

// ToDict serializes v applying rules on top of the entity's own rules.
// A nil v yields nil.
func ToDict(v Serializable, rules ...string) map[string]any {
	if isNil(v) {
		return nil
	}
	excluded := parseRules(append(append([]string{}, rules...), v.SerializeRules()...))

	out := make(map[string]any)
	for _, f := range v.SerializeFields() {
		if excluded.drops(f.Name) {
			continue
		}
		out[f.Name] = serializeValue(f.Value, excluded.nested(f.Name))
	}
	return out
}

// ToDicts serializes each element of vs with the same rules. Elements are
// addressed in place, so a slice of model values can be passed directly.
func ToDicts[T any, P interface {
	*T
	Serializable
}](vs []T, rules ...string) []map[string]any {
	out := make([]map[string]any, 0, len(vs))
	for i := range vs {
		out = append(out, ToDict(P(&vs[i]), rules...))
	}
	return out
}

func serializeValue(value any, rules []string) any {
	switch v := value.(type) {
	case nil:
		return nil
	case Serializable:
		if isNil(v) {
			return nil
		}
		return ToDict(v, rules...)
	case []Serializable:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			out = append(out, ToDict(item, rules...))
		}
		return out
	default:
		return value
	}
}

type ruleSet [][]string

func parseRules(rules []string) ruleSet {
	set := make(ruleSet, 0, len(rules))
	for _, r := range rules {
		r = strings.TrimPrefix(strings.TrimSpace(r), "-")
		if r == "" {
			continue
		}
		set = append(set, strings.Split(r, "."))
	}
	return set
}

func (s ruleSet) drops(field string) bool {
	for _, path := range s {
		if len(path) == 1 && path[0] == field {
			return true
		}
	}
	return false
}

// nested returns the rules that apply below field, with field stripped.
func (s ruleSet) nested(field string) []string {
	var out []string
	for _, path := range s {
		if len(path) > 1 && path[0] == field {
			out = append(out, "-"+strings.Join(path[1:], "."))
		}
	}
	return out
}

// isNil catches typed nil pointers stored in the interface.
func isNil(v Serializable) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
