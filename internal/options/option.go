package options

import (
	"sort"
	"strings"
)

// Option is a selectable item. It is either a bare piece of text or a record
// of named fields. A nil *Option means "no option".
type Option struct {
	text   string
	fields map[string]string
}

// Text creates a primitive option
func Text(s string) *Option {
	return &Option{text: s}
}

// Record creates a structured option from its fields
func Record(fields map[string]string) *Option {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return &Option{fields: copied}
}

// Texts is a convenience for building a list of primitive options
func Texts(values ...string) []*Option {
	list := make([]*Option, 0, len(values))
	for _, v := range values {
		list = append(list, Text(v))
	}
	return list
}

// IsRecord reports whether the option carries named fields
func (o *Option) IsRecord() bool {
	return o != nil && o.fields != nil
}

// Field returns the named field of a record option
func (o *Option) Field(name string) (string, bool) {
	if !o.IsRecord() {
		return "", false
	}
	v, ok := o.fields[name]
	return v, ok
}

// String renders the option itself. Records render as sorted key=value pairs.
func (o *Option) String() string {
	if o == nil {
		return ""
	}
	if !o.IsRecord() {
		return o.text
	}
	names := make([]string, 0, len(o.fields))
	for name := range o.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+o.fields[name])
	}
	return strings.Join(parts, ", ")
}

// Keys selects the fields used to read a record option.
// Empty keys fall back to the option itself.
type Keys struct {
	Label string
	Value string
	// Equality is the single accessor used to decide whether two options are
	// the same. When empty it follows Label.
	Equality string
}

// EqualityKey returns the key used for option equality
func (k Keys) EqualityKey() string {
	if k.Equality != "" {
		return k.Equality
	}
	return k.Label
}

// DeriveLabel extracts the display label of an option
func DeriveLabel(opt *Option, labelKey string) string {
	return derive(opt, labelKey)
}

// DeriveValue extracts the comparison value of an option
func DeriveValue(opt *Option, valueKey string) string {
	return derive(opt, valueKey)
}

func derive(opt *Option, key string) string {
	if opt == nil {
		return ""
	}
	if opt.IsRecord() && key != "" {
		return opt.fields[key]
	}
	return opt.String()
}

// Equal reports whether two options are the same under the given key.
// An absent option is never equal to anything.
func Equal(a, b *Option, key string) bool {
	if a == nil || b == nil {
		return false
	}
	return DeriveLabel(a, key) == DeriveLabel(b, key)
}

// IndexOf returns the position of the first option equal to target, or -1
func IndexOf(list []*Option, target *Option, key string) int {
	for i, opt := range list {
		if Equal(opt, target, key) {
			return i
		}
	}
	return -1
}

// Contains reports whether list holds an option equal to target
func Contains(list []*Option, target *Option, key string) bool {
	return IndexOf(list, target, key) >= 0
}

// FindByLabel returns the first option whose label is exactly label
func FindByLabel(list []*Option, label, labelKey string) *Option {
	if label == "" {
		return nil
	}
	for _, opt := range list {
		if DeriveLabel(opt, labelKey) == label {
			return opt
		}
	}
	return nil
}
