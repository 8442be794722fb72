package domain

import (
	"fmt"
	"sort"
)

// IDField is the field read by the default id resolver
const IDField = "id"

// Resource is one row of the table: a flat record loaded from disk
type Resource map[string]any

// ResourceID returns the value of the id field
func (r Resource) ResourceID() (string, bool) {
	return r.FieldString(IDField)
}

// FieldString renders a field as text
func (r Resource) FieldString(name string) (string, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// Keys returns the field names sorted, id first
func (r Resource) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		if k != IDField {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if _, ok := r[IDField]; ok {
		keys = append([]string{IDField}, keys...)
	}
	return keys
}

// ResourceName is the noun used for resources in labels
type ResourceName struct {
	Singular string `toml:"singular" validate:"required_with=Plural"`
	Plural   string `toml:"plural" validate:"required_with=Singular"`
}

// PickResult is what a picking session produces
type PickResult struct {
	Selected    []string `json:"selected" yaml:"selected"`
	AllSelected bool     `json:"all_selected" yaml:"all_selected"`
	Removed     []string `json:"removed,omitempty" yaml:"removed,omitempty"`
	Confirmed   bool     `json:"-" yaml:"-"`
}
