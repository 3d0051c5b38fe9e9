package convert

import (
	"slices"

	"golang.org/x/text/language"
)

// Registry is the ordered set of locale codes seen during one conversion.
// Registration order decides table column order.
type Registry struct {
	codes []string
	seen  map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Register adds code if it is new and reports whether it was.
func (r *Registry) Register(code string) bool {
	if _, ok := r.seen[code]; ok {
		return false
	}
	r.seen[code] = struct{}{}
	r.codes = append(r.codes, code)
	return true
}

// Contains reports whether code has been registered.
func (r *Registry) Contains(code string) bool {
	_, ok := r.seen[code]
	return ok
}

// Locales returns the registered codes in first-seen order.
func (r *Registry) Locales() []string {
	return slices.Clone(r.codes)
}

// Len returns the number of registered codes.
func (r *Registry) Len() int {
	return len(r.codes)
}

// ValidTag reports whether code is a well-formed BCP 47 language tag.
// Underscore separators such as "pt_BR" are accepted.
func ValidTag(code string) bool {
	_, err := language.Parse(code)
	return err == nil
}
