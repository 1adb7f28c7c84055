// Package model defines the data structures for mutation path discovery.
package model

import "strings"

// Path represents a file system path.
type Path string

// TypeName is a fully-qualified type identifier as reported by the remote
// registry, e.g. "core::option::Option<glam::Vec2>".
type TypeName string

// Short returns the display form with module qualifiers stripped from every
// segment, including segments nested inside generic arguments:
// "core::option::Option<glam::Vec2>" becomes "Option<Vec2>".
func (t TypeName) Short() string {
	s := string(t)

	var b strings.Builder

	b.Grow(len(s))

	segStart := 0

	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == ':' && i+1 < len(s) && s[i+1] == ':':
			segStart = i + 2
			i++
		case s[i] == '<' || s[i] == '>' || s[i] == ',' || s[i] == '(' || s[i] == ')' || s[i] == ' ':
			b.WriteString(s[segStart:i])
			b.WriteByte(s[i])

			segStart = i + 1
		}
	}

	b.WriteString(s[segStart:])

	return b.String()
}

// Variant returns the fully-qualified "Type::Variant" label for one of this
// type's enum variants.
func (t TypeName) Variant(name string) string {
	return string(t) + "::" + name
}

// ShortVariant returns the "Type::Variant" label in short display form.
func (t TypeName) ShortVariant(name string) string {
	return t.Short() + "::" + name
}
