// Package capability describes the feature groups a backend instance can serve.
package capability

import (
	"sort"
	"strings"
)

// Capability is one logical feature group of the backend.
type Capability string

const (
	Users         Capability = "users"
	Links         Capability = "links"
	Analytics     Capability = "analytics"
	Notifications Capability = "notifications"
)

// All lists every known capability in a stable order.
var All = []Capability{Users, Links, Analytics, Notifications}

// Set is the resolved group of capabilities a process serves.
type Set map[Capability]bool

// Parse resolves a SERVICE_TYPE value. It accepts a single capability name,
// a comma-separated list, or "all". Unknown names are returned separately
// so the caller can warn about them.
func Parse(value string) (Set, []string) {
	set := Set{}
	var unknown []string

	for _, part := range strings.Split(value, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if name == "all" {
			for _, c := range All {
				set[c] = true
			}
			continue
		}
		if !known(Capability(name)) {
			unknown = append(unknown, name)
			continue
		}
		set[Capability(name)] = true
	}

	return set, unknown
}

func known(c Capability) bool {
	for _, k := range All {
		if k == c {
			return true
		}
	}
	return false
}

// Has reports whether c is served.
func (s Set) Has(c Capability) bool {
	return s[c]
}

// String renders the set as a sorted, comma-separated list.
func (s Set) String() string {
	if len(s) == 0 {
		return "none"
	}
	names := make([]string, 0, len(s))
	for c := range s {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}
