// Package devices reshapes generated lines with poetic devices.
package devices

import (
	"strings"
	"unicode"
)

// Name identifies a poetic device.
type Name string

// Supported devices.
const (
	Alliteration Name = "Alliteration"
	Repetition   Name = "Repetition"
	Rhyme        Name = "Rhyme"
	Metaphor     Name = "Metaphor"
)

// Order is the fixed application order of the devices.
var Order = []Name{Alliteration, Repetition, Rhyme, Metaphor}

// Set is a selection of devices. Membership is all that matters; Apply
// always follows Order.
type Set map[Name]struct{}

// Parse builds a Set from names, ignoring case and unknown names.
func Parse(names []string) Set {
	set := Set{}
	for _, raw := range names {
		if name, ok := Lookup(raw); ok {
			set[name] = struct{}{}
		}
	}
	return set
}

// Lookup resolves a device name case-insensitively.
func Lookup(raw string) (Name, bool) {
	raw = strings.TrimSpace(raw)
	for _, name := range Order {
		if strings.EqualFold(raw, string(name)) {
			return name, true
		}
	}
	return "", false
}

// Has reports whether name is selected.
func (s Set) Has(name Name) bool {
	_, ok := s[name]
	return ok
}

// Toggle flips the selection of name.
func (s Set) Toggle(name Name) {
	if s.Has(name) {
		delete(s, name)
		return
	}
	s[name] = struct{}{}
}

// Names returns the selected devices in application order.
func (s Set) Names() []string {
	out := make([]string, 0, len(s))
	for _, name := range Order {
		if s.Has(name) {
			out = append(out, string(name))
		}
	}
	return out
}

type transform func([]string) []string

var transforms = map[Name]transform{
	Alliteration: applyAlliteration,
	Repetition:   applyRepetition,
	Rhyme:        applyRhyme,
	Metaphor:     applyMetaphor,
}

// Apply runs the selected devices over lines in Order and joins the result
// with newlines. With no devices selected the lines are joined unchanged.
func Apply(lines []string, set Set) string {
	out := append([]string(nil), lines...)
	for _, name := range Order {
		if !set.Has(name) {
			continue
		}
		out = transforms[name](out)
	}
	return strings.Join(out, "\n")
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
